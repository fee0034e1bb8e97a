/*
Package migration provides framework to test migration of the Keychain smart
contract.

Keychain contract stores ownership data of identities. The contract is
updated on the fly, so data migration must be performed accurately, without
losing bound keys. The package provides services of Neo blockchain and
particular contract needed for testing. Test blockchain environment can be
based on "real" data from the remote blockchain instances or on dumps prepared
by the test itself.
*/
package migration

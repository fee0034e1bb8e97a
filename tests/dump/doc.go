/*
Package dump provides I/O operations for collected states of the Neo smart
contracts.

State collection (including storage) allows you to emulate work with "live"
Keychain contract: dumps pulled from public networks by cmd/dump are replayed
by the migration tests before the contract update. Tests may also prepare
dumps themselves to reproduce storage of the older contract versions.

The package works with dumps stored in the file system using human-readable
encoding.
*/
package dump

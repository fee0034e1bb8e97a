/*
Package keychain contains implementation of the Keychain contract.

Keychain is an identity controlled by a set of up to five keys (script hashes).
Keychains are grouped into domains. A domain defines the fee a key pays to be
bound to a keychain, the account collecting fees and the number of votes
required to change the key set of a keychain.

The first key creates the keychain. Any other change of the key set is done in
two steps: a key of the keychain proposes to add or remove a key and other
keys vote for the proposal. Only one proposal per keychain may be in flight.
A single rejecting vote cancels it. The proposal is applied when either the
number of approving votes reaches the domain threshold (if it is positive) or
every key of the keychain approves. Key addition additionally requires the new
key to verify itself paying the domain fee. Removal of the only key destroys
the keychain at once.

Other contracts use HasKey and HasVerifiedKey methods to authorize operations
on behalf of keychains.

# Contract notifications

DomainCreated notification. This notification is produced when the committee
registers a domain.

	DomainCreated
	  - name: name
	    type: String
	  - name: authority
	    type: Hash160

DomainUpdated notification. This notification is produced when the domain
authority changes domain settings.

	DomainUpdated
	  - name: name
	    type: String

DomainClosed notification. This notification is produced when the domain is
removed.

	DomainClosed
	  - name: name
	    type: String

KeychainCreated notification. This notification is produced when a keychain is
created.

	KeychainCreated
	  - name: id
	    type: Hash256
	  - name: domain
	    type: String
	  - name: name
	    type: String
	  - name: key
	    type: Hash160

KeychainDestroyed notification. This notification is produced when the last
key is removed from the keychain.

	KeychainDestroyed
	  - name: id
	    type: Hash256

ActionProposed notification. This notification is produced when a key of the
keychain proposes to add (type 1) or remove (type 2) a key.

	ActionProposed
	  - name: id
	    type: Hash256
	  - name: actionType
	    type: Integer
	  - name: key
	    type: Hash160
	  - name: proposer
	    type: Hash160

VoteCast notification. This notification is produced when a key votes for the
pending action.

	VoteCast
	  - name: id
	    type: Hash256
	  - name: voter
	    type: Hash160
	  - name: approve
	    type: Boolean

ActionRejected notification. This notification is produced when the pending
action is cancelled by a rejecting vote.

	ActionRejected
	  - name: id
	    type: Hash256
	  - name: voter
	    type: Hash160

KeyVerified notification. This notification is produced when the key being
added verifies itself.

	KeyVerified
	  - name: id
	    type: Hash256
	  - name: key
	    type: Hash160

KeyAdded notification. This notification is produced when a key is bound to the
keychain.

	KeyAdded
	  - name: id
	    type: Hash256
	  - name: key
	    type: Hash160

KeyRemoved notification. This notification is produced when a key is unbound
from the keychain.

	KeyRemoved
	  - name: id
	    type: Hash256
	  - name: key
	    type: Hash160
*/
package keychain

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'd' + <domain> -> std.Serialize(Domain)
    domain settings
  - 'k' + <id> -> std.Serialize(Keychain)
    keychain, id is SHA256(<domain> + '.' + <name>)
  - 's' + <id> -> std.Serialize(KeychainState)
    threshold snapshot and pending action of the keychain
  - 'p' + <domain> + '.' + <key> -> std.Serialize(KeyPointer)
    keychain the key is bound to

# Versions
Every record starts with its version. Records of unexpected versions are
rejected. Version 1 keychains are converted by the contract update.

# Deposits
Creator of a keychain, its state and key pointer records locks
keychainconst.StorageDeposit GAS per record in the contract. Deposits are
released when records are deleted: to the domain treasury for a key removed by
vote, to the signer when the keychain is destroyed and to the key itself when
its verified addition is rejected.
*/

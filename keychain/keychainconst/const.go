package keychainconst

const (
	// MaxKeys is the maximum number of keys bound to a single keychain.
	MaxKeys = 5

	// MinNameLength is the minimum length of a keychain name in bytes.
	MinNameLength = 3
	// MaxNameLength is the maximum length of domain and keychain names in bytes.
	MaxNameLength = 32

	// DefaultActionThreshold is the action threshold of a freshly created
	// domain. Zero means every key of the keychain must approve an action.
	DefaultActionThreshold = 0

	// StorageDeposit is the amount of GAS (in fractions) locked in the contract
	// for every keychain record (keychain, keychain state, key pointer). It is
	// paid by the party creating the record and released when the record is
	// deleted.
	StorageDeposit = 1000_0000
)

// Versions of the records stored by the contract.
const (
	DomainVersion         = 1
	KeychainVersion       = 2
	KeyVersion            = 0
	LegacyKeychainVersion = 1
)

// Types of pending keychain actions.
const (
	ActionNone = iota
	ActionAddKey
	ActionRemoveKey
)

// Authorization errors.
const (
	// ErrNotDomainAdmin is thrown when the signer is not the domain authority.
	ErrNotDomainAdmin = "signer is not a domain admin"
	// ErrSignerNotInKeychain is thrown when the signer is not a key of the keychain.
	ErrSignerNotInKeychain = "signer is not in the keychain"
	// ErrInvalidVerifier is thrown when the verifying key is not the one being added.
	ErrInvalidVerifier = "verifier must be the key being added"
)

// Validation errors.
const (
	ErrInvalidName   = "invalid name: must be lowercase letters, digits, '-' or '_'"
	ErrNameTooLong   = "name too long"
	ErrNameTooShort  = "name too short"
	ErrInvalidKey    = "invalid key"
	ErrInvalidAmount = "invalid amount"

	// ErrInvalidThreshold is thrown when the action threshold is out of [0, MaxKeys].
	ErrInvalidThreshold = "invalid action threshold"
	// ErrMaxKeys is thrown when no more keys can be added to the keychain.
	ErrMaxKeys = "keychain has the maximum number of keys"
	// ErrKeyAlreadyExists is thrown when the key is already bound to some
	// keychain of the domain.
	ErrKeyAlreadyExists = "key already exists"
	// ErrKeyNotFound is thrown when the key is not on the keychain.
	ErrKeyNotFound = "key not found on the keychain"
)

// State errors.
const (
	ErrDomainNotFound        = "domain does not exist"
	ErrDomainAlreadyExists   = "domain already exists"
	ErrKeychainNotFound      = "keychain does not exist"
	ErrKeychainAlreadyExists = "keychain already exists"

	// ErrPendingActionExists is thrown on an attempt to propose an action
	// while another one is in flight.
	ErrPendingActionExists = "pending action already exists"
	// ErrNoPendingAction is thrown when there is no action to vote for or verify.
	ErrNoPendingAction = "no pending action"
)

// Economic errors.
const (
	ErrNotEnoughGAS = "not enough GAS"
)

// Configuration errors.
const (
	ErrInvalidTreasury = "invalid treasury"
	ErrInvalidVersion  = "unsupported record version"
)

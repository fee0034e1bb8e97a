package keychain

import (
	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
)

const (
	domainPrefix     = 'd'
	keychainPrefix   = 'k'
	statePrefix      = 's'
	keyPointerPrefix = 'p'

	// nameSeparator can't appear in a valid name, so joining names with it is
	// unambiguous.
	nameSeparator = "."
)

// checkName panics if name is not a valid domain or keychain name. Length is
// checked first so that oversized input is rejected before anything else.
func checkName(name string, minLength int) {
	l := len(name)
	if l > keychainconst.MaxNameLength {
		panic(keychainconst.ErrNameTooLong)
	}
	if l < minLength {
		panic(keychainconst.ErrNameTooShort)
	}
	for i := 0; i < l; i++ {
		if !isNameChar(name[i]) {
			panic(keychainconst.ErrInvalidName)
		}
	}
}

// isValidName is checkName returning false instead of panicking.
func isValidName(name string, minLength int) bool {
	l := len(name)
	if l < minLength || l > keychainconst.MaxNameLength {
		return false
	}
	for i := 0; i < l; i++ {
		if !isNameChar(name[i]) {
			return false
		}
	}
	return true
}

// isNameChar checks whether provided char is a lowercase letter, a number,
// a hyphen or an underscore.
func isNameChar(c uint8) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

func checkKey(key interop.Hash160) {
	if len(key) != interop.Hash160Len {
		panic(keychainconst.ErrInvalidKey)
	}
}

// deriveKeychainID returns identifier of the keychain with the given name in
// the domain. Both names must be valid.
func deriveKeychainID(domain, name string) interop.Hash256 {
	return crypto.Sha256([]byte(domain + nameSeparator + name))
}

func domainKey(name string) []byte {
	return append([]byte{domainPrefix}, []byte(name)...)
}

func keychainKey(id interop.Hash256) []byte {
	return append([]byte{keychainPrefix}, id...)
}

func stateKey(id interop.Hash256) []byte {
	return append([]byte{statePrefix}, id...)
}

// keyPointerKey is unique per key within a domain, so there is at most one
// pointer for every key in it.
func keyPointerKey(domain string, key interop.Hash160) []byte {
	return append(keyPointerPrefixOf(domain), key...)
}

func keyPointerPrefixOf(domain string) []byte {
	return append([]byte{keyPointerPrefix}, []byte(domain+nameSeparator)...)
}

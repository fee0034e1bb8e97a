package keychain

import (
	"github.com/keychain-dev/keychain-contract/common"
	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Keychain is an identity controlled by a set of bound keys.
	Keychain struct {
		Version int
		Name    string
		Domain  string
		// NumKeys always equals len(Keys).
		NumKeys int
		// Keys are bound keys, each of them has a KeyPointer.
		Keys []interop.Hash160
	}

	// KeyPointer proves that the key is bound to the keychain. There is at
	// most one pointer per key in a domain.
	KeyPointer struct {
		Version  int
		Keychain interop.Hash256
		Key      interop.Hash160
		// Deposit is the GAS locked for the pointer record.
		Deposit int
	}

	// KeychainState holds quorum policy and the in-flight action of the
	// keychain.
	KeychainState struct {
		Version  int
		Keychain interop.Hash256
		// ActionThreshold is copied from the domain when the keychain is
		// created and is not affected by later domain updates.
		ActionThreshold int
		Pending         PendingAction
		// Deposit is the GAS locked for the keychain and state records.
		Deposit int
	}
)

// CreateKeychain creates keychain in the domain with key as its only key.
// Transaction must be witnessed by the key. Key pays storage deposit for the
// keychain, its state and the key pointer.
//
// It produces KeychainCreated notification.
func CreateKeychain(domain, name string, key interop.Hash160) {
	checkName(name, keychainconst.MinNameLength)
	checkKey(key)
	common.CheckWitness(key)

	ctx := storage.GetContext()
	d := getDomain(ctx, domain)

	id := deriveKeychainID(d.Name, name)
	if storage.Get(ctx, keychainKey(id)) != nil {
		panic(keychainconst.ErrKeychainAlreadyExists)
	}
	if storage.Get(ctx, keyPointerKey(d.Name, key)) != nil {
		panic(keychainconst.ErrKeyAlreadyExists)
	}

	putKeychain(ctx, id, Keychain{
		Version: keychainconst.KeychainVersion,
		Name:    name,
		Domain:  d.Name,
		NumKeys: 1,
		Keys:    []interop.Hash160{key},
	})
	putState(ctx, id, KeychainState{
		Version:         keychainconst.KeychainVersion,
		Keychain:        id,
		ActionThreshold: d.ActionThreshold,
		Pending:         idleAction(),
		Deposit:         lockDeposit(key, 2),
	})
	putKeyPointer(ctx, d.Name, KeyPointer{
		Version:  keychainconst.KeyVersion,
		Keychain: id,
		Key:      key,
		Deposit:  lockDeposit(key, 1),
	})

	runtime.Notify("KeychainCreated", id, d.Name, name, key)
}

// GetKeychain returns the keychain with the given name.
func GetKeychain(domain, name string) Keychain {
	ctx := storage.GetReadOnlyContext()
	return getKeychain(ctx, keychainID(domain, name))
}

// GetKeychainState returns quorum policy and pending action of the keychain.
func GetKeychainState(domain, name string) KeychainState {
	ctx := storage.GetReadOnlyContext()
	return getState(ctx, keychainID(domain, name))
}

// Keys returns the keys bound to the keychain.
func Keys(domain, name string) []interop.Hash160 {
	return GetKeychain(domain, name).Keys
}

// KeychainID returns identifier of the keychain with the given name. The
// keychain doesn't have to exist.
func KeychainID(domain, name string) interop.Hash256 {
	return keychainID(domain, name)
}

// KeychainOfKey returns identifier of the keychain the key is bound to in the
// domain or nil if the key is not bound.
func KeychainOfKey(domain string, key interop.Hash160) interop.Hash256 {
	checkName(domain, 1)
	checkKey(key)

	ptr, ok := findKeyPointer(storage.GetReadOnlyContext(), domain, key)
	if !ok {
		return nil
	}
	return ptr.Keychain
}

// HasKey checks whether the key is on the keychain. It is intended to be
// called by other contracts authorizing actions on behalf of keychains, so
// it returns false for malformed arguments instead of failing.
func HasKey(domain, name string, key interop.Hash160) bool {
	if !isValidName(domain, 1) || !isValidName(name, keychainconst.MinNameLength) || len(key) != interop.Hash160Len {
		return false
	}

	ctx := storage.GetReadOnlyContext()
	id := deriveKeychainID(domain, name)
	if storage.Get(ctx, keychainKey(id)) == nil {
		return false
	}

	return indexOf(getKeychain(ctx, id).Keys, key) >= 0
}

// HasVerifiedKey is like HasKey but also checks that the key pointer of the
// key refers to this keychain.
func HasVerifiedKey(domain, name string, key interop.Hash160) bool {
	if !HasKey(domain, name, key) {
		return false
	}

	ptr, ok := findKeyPointer(storage.GetReadOnlyContext(), domain, key)
	return ok && ptr.Keychain.Equals(deriveKeychainID(domain, name))
}

// KeyPointers returns iterator over KeyPointer records of all keys bound in
// the domain.
func KeyPointers(domain string) iterator.Iterator {
	checkName(domain, 1)

	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, keyPointerPrefixOf(domain), storage.ValuesOnly|storage.DeserializeValues)
}

func keychainID(domain, name string) interop.Hash256 {
	checkName(domain, 1)
	checkName(name, keychainconst.MinNameLength)
	return deriveKeychainID(domain, name)
}

// indexOf returns position of the key in keys or -1.
func indexOf(keys []interop.Hash160, key interop.Hash160) int {
	for i := range keys {
		if keys[i].Equals(key) {
			return i
		}
	}
	return -1
}

// swapRemove removes the element at index i replacing it with the last one.
func swapRemove(keys []interop.Hash160, i int) []interop.Hash160 {
	last := len(keys) - 1
	res := []interop.Hash160{}
	for j := 0; j < last; j++ {
		if j == i {
			res = append(res, keys[last])
		} else {
			res = append(res, keys[j])
		}
	}
	return res
}

// destroyKeychain removes all records of the single-key keychain and hands
// their deposits over to the given account.
func destroyKeychain(ctx storage.Context, id interop.Hash256, kc Keychain, st KeychainState, to interop.Hash160) {
	dropVerifiedAction(ctx, kc.Domain, st.Pending)

	ptr := deleteKeyPointer(ctx, kc.Domain, kc.Keys[0])
	storage.Delete(ctx, keychainKey(id))
	storage.Delete(ctx, stateKey(id))

	reclaim(to, st.Deposit+ptr.Deposit)

	runtime.Notify("KeyRemoved", id, kc.Keys[0])
	runtime.Notify("KeychainDestroyed", id)
}

func getKeychain(ctx storage.Context, id interop.Hash256) Keychain {
	raw := common.GetSerialized(ctx, keychainKey(id))
	if raw == nil {
		panic(keychainconst.ErrKeychainNotFound)
	}

	kc := raw.(Keychain)
	if kc.Version != keychainconst.KeychainVersion {
		panic(keychainconst.ErrInvalidVersion)
	}

	return kc
}

func putKeychain(ctx storage.Context, id interop.Hash256, kc Keychain) {
	common.SetSerialized(ctx, keychainKey(id), kc)
}

func getState(ctx storage.Context, id interop.Hash256) KeychainState {
	raw := common.GetSerialized(ctx, stateKey(id))
	if raw == nil {
		panic(keychainconst.ErrKeychainNotFound)
	}

	st := raw.(KeychainState)
	if st.Version != keychainconst.KeychainVersion {
		panic(keychainconst.ErrInvalidVersion)
	}

	return st
}

func putState(ctx storage.Context, id interop.Hash256, st KeychainState) {
	common.SetSerialized(ctx, stateKey(id), st)
}

func findKeyPointer(ctx storage.Context, domain string, key interop.Hash160) (KeyPointer, bool) {
	raw := common.GetSerialized(ctx, keyPointerKey(domain, key))
	if raw == nil {
		return KeyPointer{}, false
	}

	ptr := raw.(KeyPointer)
	if ptr.Version != keychainconst.KeyVersion {
		panic(keychainconst.ErrInvalidVersion)
	}

	return ptr, true
}

func putKeyPointer(ctx storage.Context, domain string, ptr KeyPointer) {
	common.SetSerialized(ctx, keyPointerKey(domain, ptr.Key), ptr)
}

// deleteKeyPointer removes pointer of the key and returns it.
func deleteKeyPointer(ctx storage.Context, domain string, key interop.Hash160) KeyPointer {
	ptr, ok := findKeyPointer(ctx, domain, key)
	if !ok {
		panic(keychainconst.ErrKeyNotFound)
	}

	storage.Delete(ctx, keyPointerKey(domain, key))
	return ptr
}

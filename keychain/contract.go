package keychain

import (
	"github.com/keychain-dev/keychain-contract/common"
	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// legacyKey is a key of the version 1 keychain. Unverified keys were
	// stored in the keychain along with the verified ones.
	legacyKey struct {
		Key      interop.Hash160
		Verified bool
	}

	// keychainV1 is the version 1 keychain layout. It had no state record.
	keychainV1 struct {
		Version int
		Name    string
		Domain  string
		NumKeys int
		Keys    []legacyKey
	}
)

// stateRecordsVersion is the first contract version storing keychains of
// keychainconst.KeychainVersion.
const stateRecordsVersion = 2_000

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)

		common.CheckVersion(version)

		if version < stateRecordsVersion {
			migrateKeychains(storage.GetContext())
		}

		return
	}

	runtime.Log("keychain contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("keychain contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// migrateKeychains converts every stored version 1 keychain to the current
// layout creating its state record and rewriting pointers of its keys.
// Pointers of verified keys exceeding keychainconst.MaxKeys are removed.
// Migrated records have no storage deposit.
func migrateKeychains(ctx storage.Context) {
	ids := []interop.Hash256{}

	it := storage.Find(ctx, []byte{keychainPrefix}, storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		ids = append(ids, iterator.Value(it).(interop.Hash256))
	}

	for i := range ids {
		legacy := common.GetSerialized(ctx, keychainKey(ids[i])).(keychainV1)
		if legacy.Version != keychainconst.LegacyKeychainVersion {
			continue
		}

		// Find returns keys as buffers, records refer to keychains by byte
		// strings.
		id := deriveKeychainID(legacy.Domain, legacy.Name)

		kc, ok := upgradeKeychain(legacy)
		if !ok {
			storage.Delete(ctx, keychainKey(id))
			runtime.Notify("KeychainDestroyed", id)
			continue
		}

		threshold := keychainconst.DefaultActionThreshold
		if storage.Get(ctx, domainKey(kc.Domain)) != nil {
			threshold = getDomain(ctx, kc.Domain).ActionThreshold
		}

		putKeychain(ctx, id, kc)
		for j := range legacy.Keys {
			k := legacy.Keys[j]
			if k.Verified && indexOf(kc.Keys, k.Key) < 0 {
				storage.Delete(ctx, keyPointerKey(kc.Domain, k.Key))
			}
		}
		for j := range kc.Keys {
			putKeyPointer(ctx, kc.Domain, KeyPointer{
				Version:  keychainconst.KeyVersion,
				Keychain: id,
				Key:      kc.Keys[j],
				Deposit:  0,
			})
		}
		putState(ctx, id, KeychainState{
			Version:         keychainconst.KeychainVersion,
			Keychain:        id,
			ActionThreshold: threshold,
			Pending:         idleAction(),
			Deposit:         0,
		})
	}

	runtime.Log("keychains migrated")
}

// upgradeKeychain converts version 1 keychain to the current version. Keys
// that were never verified have no key pointers and are dropped. It returns
// false if no keys are left.
func upgradeKeychain(old keychainV1) (Keychain, bool) {
	kc := Keychain{
		Version: keychainconst.KeychainVersion,
		Name:    old.Name,
		Domain:  old.Domain,
		Keys:    []interop.Hash160{},
	}

	for i := range old.Keys {
		if old.Keys[i].Verified && len(kc.Keys) < keychainconst.MaxKeys {
			kc.Keys = append(kc.Keys, old.Keys[i].Key)
		}
	}
	kc.NumKeys = len(kc.Keys)

	return kc, kc.NumKeys > 0
}

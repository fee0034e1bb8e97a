package keychain_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/keychain-dev/keychain-contract/common"
	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	rpckeychain "github.com/keychain-dev/keychain-contract/rpc/keychain"
	"github.com/keychain-dev/keychain-contract/tests/dump"
	"github.com/keychain-dev/keychain-contract/tests/migration"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const name = "keychain"

func TestMigration(t *testing.T) {
	err := dump.IterateDumps("../testdata", func(id dump.ID, r *dump.Reader) {
		t.Run(id.String()+"/"+name, func(t *testing.T) {
			testMigrationFromDump(t, r)
		})
	})
	require.NoError(t, err)
}

func keychainKey(id util.Uint256) []byte {
	return append([]byte{'k'}, id.BytesBE()...)
}

func stateKey(id util.Uint256) []byte {
	return append([]byte{'s'}, id.BytesBE()...)
}

// legacyKeychain is a decoded version 1 keychain.
type legacyKeychain struct {
	id       util.Uint256
	name     string
	domain   string
	verified []util.Uint160
}

func decodeLegacyKeychain(t testing.TB, key, value []byte) (legacyKeychain, bool) {
	item, err := stackitem.Deserialize(value)
	require.NoError(t, err)

	fields := item.Value().([]stackitem.Item)
	version, err := fields[0].TryInteger()
	require.NoError(t, err)
	if version.Int64() != keychainconst.LegacyKeychainVersion {
		return legacyKeychain{}, false
	}

	id, err := util.Uint256DecodeBytesBE(key[1:])
	require.NoError(t, err)

	res := legacyKeychain{id: id}

	b, err := fields[1].TryBytes()
	require.NoError(t, err)
	res.name = string(b)

	b, err = fields[2].TryBytes()
	require.NoError(t, err)
	res.domain = string(b)

	for _, k := range fields[4].Value().([]stackitem.Item) {
		kf := k.Value().([]stackitem.Item)
		verified, err := kf[1].TryBool()
		require.NoError(t, err)
		if !verified {
			continue
		}

		b, err := kf[0].TryBytes()
		require.NoError(t, err)
		h, err := util.Uint160DecodeBytesBE(b)
		require.NoError(t, err)
		res.verified = append(res.verified, h)
	}

	return res, true
}

func testMigrationFromDump(t *testing.T, d *dump.Reader) *migration.Contract {
	// gather values which can't be fetched via contract API
	var legacy []legacyKeychain

	c := migration.NewContract(t, d, name, migration.ContractOptions{
		StorageDumpHandler: func(key, value []byte) {
			if len(key) == 1+util.Uint256Size && key[0] == 'k' {
				if kc, ok := decodeLegacyKeychain(t, key, value); ok {
					legacy = append(legacy, kc)
				}
			}
		},
	})

	c.CheckUpdateSuccess(t)

	for _, kc := range legacy {
		if len(kc.verified) == 0 {
			require.Nil(t, c.GetStorageItem(keychainKey(kc.id)), "keychain without verified keys should be removed")
			require.Nil(t, c.GetStorageItem(stateKey(kc.id)))
			continue
		}

		res := new(rpckeychain.Keychain)
		require.NoError(t, res.FromStackItem(c.Call(t, "getKeychain", kc.domain, kc.name)))
		require.EqualValues(t, keychainconst.KeychainVersion, res.Version.Int64())
		require.EqualValues(t, len(res.Keys), res.NumKeys.Int64())
		require.LessOrEqual(t, len(res.Keys), keychainconst.MaxKeys)
		require.Subset(t, kc.verified, res.Keys)

		st := new(rpckeychain.KeychainState)
		require.NoError(t, st.FromStackItem(c.Call(t, "getKeychainState", kc.domain, kc.name)))
		require.Equal(t, kc.id, st.Keychain)
		require.EqualValues(t, keychainconst.ActionNone, st.Pending.ActionType.Int64())
		require.Zero(t, st.Deposit.Int64())

		for i := range res.Keys {
			c.CheckTrue(t, "hasVerifiedKey", kc.domain, kc.name, res.Keys[i])
		}
	}

	c.CheckUpdateFail(t, common.ErrAlreadyUpdated)

	return c
}

// legacyStorage collects storage items of the version 1 contract.
type legacyStorage struct {
	items [][2][]byte
}

func (s *legacyStorage) put(key []byte, value stackitem.Item) {
	b, err := stackitem.Serialize(value)
	if err != nil {
		panic(err)
	}
	s.items = append(s.items, [2][]byte{key, b})
}

func (s *legacyStorage) putDomain(name string, threshold int64) {
	s.put(append([]byte{'d'}, name...), stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(keychainconst.DomainVersion),
		stackitem.Make(name),
		stackitem.Make(util.Uint160{1}.BytesBE()),
		stackitem.Make(util.Uint160{2}.BytesBE()),
		stackitem.Make(0),
		stackitem.Make(threshold),
	}))
}

func (s *legacyStorage) putKeychain(domain, name string, keys []util.Uint160, verified []bool) util.Uint256 {
	id := rpckeychain.KeychainID(domain, name)

	legacyKeys := make([]stackitem.Item, len(keys))
	for i := range keys {
		legacyKeys[i] = stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(keys[i].BytesBE()),
			stackitem.Make(verified[i]),
		})

		if verified[i] {
			s.put(bytes.Join([][]byte{{'p'}, []byte(domain + "."), keys[i].BytesBE()}, nil),
				stackitem.NewStruct([]stackitem.Item{
					stackitem.Make(id.BytesBE()),
					stackitem.Make(keys[i].BytesBE()),
				}))
		}
	}

	s.put(keychainKey(id), stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(keychainconst.LegacyKeychainVersion),
		stackitem.Make(name),
		stackitem.Make(domain),
		stackitem.Make(len(keys)),
		stackitem.Make(legacyKeys),
	}))

	return id
}

// newLegacyDump writes dump of the version 1 contract with the given storage
// and returns reader of it.
func newLegacyDump(t *testing.T, s *legacyStorage) *dump.Reader {
	const src = "testdata/legacy"

	ctr := neotest.CompileFile(t, util.Uint160{}, src, filepath.Join(src, "config.yml"))

	dir := t.TempDir()
	cr, err := dump.NewCreator(dir, dump.ID{Label: "legacy", Block: 1})
	require.NoError(t, err)

	w := cr.AddContract(name, state.Contract{
		ContractBase: state.ContractBase{
			ID:       1,
			Hash:     ctr.Hash,
			NEF:      *ctr.NEF,
			Manifest: *ctr.Manifest,
		},
	})
	for i := range s.items {
		require.NoError(t, w.Write(s.items[i][0], s.items[i][1]))
	}
	require.NoError(t, cr.Flush())
	require.NoError(t, cr.Close())

	var res *dump.Reader
	err = dump.IterateDumps(dir, func(_ dump.ID, r *dump.Reader) {
		res = r
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestMigrationFromLegacyStorage(t *testing.T) {
	var keys, crowd []util.Uint160
	for i := 1; i <= keychainconst.MaxKeys+2; i++ {
		keys = append(keys, util.Uint160{byte(i), 0xaa})
		crowd = append(crowd, util.Uint160{byte(i), 0xbb})
	}

	var s legacyStorage
	s.putDomain("legacy", 2)
	alpha := s.putKeychain("legacy", "alpha", keys[:3], []bool{true, false, true})
	omega := s.putKeychain("legacy", "omega", keys[3:4], []bool{false})
	beta := s.putKeychain("closed", "beta", keys[4:5], []bool{true})

	all := make([]bool, len(crowd))
	for i := range all {
		all[i] = true
	}
	s.putKeychain("closed", "crowded", crowd, all)

	c := testMigrationFromDump(t, newLegacyDump(t, &s))

	v, err := c.Call(t, "version").TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, common.Version, v.Int64())
	require.Zero(t, c.GASBalance())

	kc := new(rpckeychain.Keychain)
	require.NoError(t, kc.FromStackItem(c.Call(t, "getKeychain", "legacy", "alpha")))
	require.Equal(t, []util.Uint160{keys[0], keys[2]}, kc.Keys)

	st := new(rpckeychain.KeychainState)
	require.NoError(t, st.FromStackItem(c.Call(t, "getKeychainState", "legacy", "alpha")))
	require.Equal(t, alpha, st.Keychain)
	require.EqualValues(t, 2, st.ActionThreshold.Int64())

	require.Equal(t, stackitem.Null{}, c.Call(t, "keychainOfKey", "legacy", keys[1]))
	// migrated references are byte strings like the ones of new records
	require.Equal(t, stackitem.Make(alpha.BytesBE()), c.Call(t, "keychainOfKey", "legacy", keys[0]))
	require.Equal(t, stackitem.Make(alpha.BytesBE()), c.Call(t, "keychainOfKey", "legacy", keys[2]))

	require.Nil(t, c.GetStorageItem(keychainKey(omega)))

	// domain is gone, default threshold is used
	require.NoError(t, st.FromStackItem(c.Call(t, "getKeychainState", "closed", "beta")))
	require.Equal(t, beta, st.Keychain)
	require.EqualValues(t, keychainconst.DefaultActionThreshold, st.ActionThreshold.Int64())

	require.NoError(t, kc.FromStackItem(c.Call(t, "getKeychain", "closed", "crowded")))
	require.Equal(t, crowd[:keychainconst.MaxKeys], kc.Keys)
	for _, k := range crowd[keychainconst.MaxKeys:] {
		require.Equal(t, stackitem.Null{}, c.Call(t, "keychainOfKey", "closed", k))
	}
}

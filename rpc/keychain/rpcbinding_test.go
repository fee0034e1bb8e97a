package keychain

import (
	"crypto/sha256"
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	method string
	params []any
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.method, t.params = operation, params
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	t.method, t.params = operation, params
	return t.res, t.err
}

func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}

func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

type testAct struct {
	testInv
}

func (t *testAct) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	t.method, t.params = method, params
	return new(transaction.Transaction), t.err
}

func (t *testAct) MakeRun(script []byte) (*transaction.Transaction, error) {
	return nil, t.err
}

func (t *testAct) MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error) {
	t.method, t.params = method, params
	return new(transaction.Transaction), t.err
}

func (t *testAct) MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	return nil, t.err
}

func (t *testAct) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	t.method, t.params = method, params
	return util.Uint256{1}, 100, t.err
}

func (t *testAct) SendRun(script []byte) (util.Uint256, uint32, error) {
	return util.Uint256{}, 0, t.err
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{State: "HALT", Stack: items}
}

func TestKeychainID(t *testing.T) {
	id := KeychainID("domination", "silostack")
	require.Equal(t, [32]byte(sha256.Sum256([]byte("domination.silostack"))), [32]byte(id))
	require.NotEqual(t, id, KeychainID("domination", "silostac"))
	require.NotEqual(t, id, KeychainID("dominatio", "nsilostack"))
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.GetKeychain("domination", "silostack")
	require.Error(t, err)

	ti.err = nil
	ti.res = halt(stackitem.Make(42))
	_, err = r.GetKeychain("domination", "silostack")
	require.Error(t, err)

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{stackitem.Make(2)}))
	_, err = r.GetKeychain("domination", "silostack")
	require.Error(t, err)

	ti.res = &result.Invoke{State: "FAULT", FaultException: "keychain does not exist"}
	_, err = r.GetKeychainState("domination", "silostack")
	require.Error(t, err)
}

func TestGetKeychain(t *testing.T) {
	a, b := util.Uint160{1}, util.Uint160{2}
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(2),
		stackitem.Make("silostack"),
		stackitem.Make("domination"),
		stackitem.Make(2),
		stackitem.Make([]stackitem.Item{
			stackitem.Make(a.BytesBE()),
			stackitem.Make(b.BytesBE()),
		}),
	}))

	kc, err := r.GetKeychain("domination", "silostack")
	require.NoError(t, err)
	require.Equal(t, "getKeychain", ti.method)
	require.Equal(t, []any{"domination", "silostack"}, ti.params)
	require.Equal(t, &Keychain{
		Version: big.NewInt(2),
		Name:    "silostack",
		Domain:  "domination",
		NumKeys: big.NewInt(2),
		Keys:    []util.Uint160{a, b},
	}, kc)
}

func TestGetKeychainState(t *testing.T) {
	id := KeychainID("domination", "silostack")
	key := util.Uint160{3}
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	state := func(pending stackitem.Item) *result.Invoke {
		return halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(2),
			stackitem.Make(id.BytesBE()),
			stackitem.Make(1),
			pending,
			stackitem.Make(3_000_0000),
		}))
	}

	t.Run("idle", func(t *testing.T) {
		ti.res = state(stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(ActionNone),
			stackitem.Make([]byte{}),
			stackitem.Make(false),
			stackitem.Make(0),
		}))

		st, err := r.GetKeychainState("domination", "silostack")
		require.NoError(t, err)
		require.Equal(t, id, st.Keychain)
		require.Equal(t, big.NewInt(1), st.ActionThreshold)
		require.Equal(t, big.NewInt(3_000_0000), st.Deposit)
		require.Equal(t, big.NewInt(ActionNone), st.Pending.ActionType)
		require.Equal(t, util.Uint160{}, st.Pending.Key)
	})

	t.Run("pending", func(t *testing.T) {
		ti.res = state(stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(ActionAddKey),
			stackitem.Make(key.BytesBE()),
			stackitem.Make(true),
			stackitem.Make(0b101),
		}))

		st, err := r.GetKeychainState("domination", "silostack")
		require.NoError(t, err)
		require.Equal(t, &PendingAction{
			ActionType: big.NewInt(ActionAddKey),
			Key:        key,
			Verified:   true,
			Votes:      big.NewInt(0b101),
		}, st.Pending)
	})
}

func TestKeychainOfKey(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = halt(stackitem.Null{})
	id, err := r.KeychainOfKey("domination", util.Uint160{1})
	require.NoError(t, err)
	require.Nil(t, id)

	expected := KeychainID("domination", "silostack")
	ti.res = halt(stackitem.Make(expected.BytesBE()))
	id, err = r.KeychainOfKey("domination", util.Uint160{1})
	require.NoError(t, err)
	require.Equal(t, expected, *id)
}

func TestKeyPointersExpanded(t *testing.T) {
	id := KeychainID("domination", "silostack")
	a, b := util.Uint160{1}, util.Uint160{2}
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	pointer := func(key util.Uint160, deposit int64) stackitem.Item {
		return stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(0),
			stackitem.Make(id.BytesBE()),
			stackitem.Make(key.BytesBE()),
			stackitem.Make(deposit),
		})
	}

	ti.res = halt(stackitem.Make([]stackitem.Item{pointer(a, 1000_0000), pointer(b, 0)}))
	ptrs, err := r.KeyPointersExpanded("domination", 10)
	require.NoError(t, err)
	require.Equal(t, "keyPointers", ti.method)
	require.Len(t, ptrs, 2)
	require.Equal(t, id, ptrs[0].Keychain)
	require.Equal(t, a, ptrs[0].Key)
	require.Equal(t, big.NewInt(1000_0000), ptrs[0].Deposit)
	require.Equal(t, b, ptrs[1].Key)

	ti.res = halt(stackitem.Make([]stackitem.Item{stackitem.Make(1)}))
	_, err = r.KeyPointersExpanded("domination", 10)
	require.Error(t, err)
}

func TestContractCalls(t *testing.T) {
	ta := new(testAct)
	c := New(ta, util.Uint160{1, 2, 3})
	a, b := util.Uint160{1}, util.Uint160{2}

	_, _, err := c.AddKey("domination", "silostack", a, b)
	require.NoError(t, err)
	require.Equal(t, "addKey", ta.method)
	require.Equal(t, []any{"domination", "silostack", a, b}, ta.params)

	_, err = c.VoteTransaction("domination", "silostack", b, false)
	require.NoError(t, err)
	require.Equal(t, "vote", ta.method)
	require.Equal(t, []any{"domination", "silostack", b, false}, ta.params)

	_, err = c.UpdateDomainUnsigned("domination", a, big.NewInt(1000), big.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, "updateDomain", ta.method)

	ta.err = errors.New("bad")
	_, _, err = c.RemoveKey("domination", "silostack", a, b)
	require.Error(t, err)
}

func TestEvents(t *testing.T) {
	id := KeychainID("domination", "silostack")
	a, b := util.Uint160{1}, util.Uint160{2}

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{Name: "ActionProposed", Item: stackitem.NewArray([]stackitem.Item{
					stackitem.Make(id.BytesBE()),
					stackitem.Make(ActionAddKey),
					stackitem.Make(b.BytesBE()),
					stackitem.Make(a.BytesBE()),
				})},
				{Name: KeyVerifiedEventName, Item: stackitem.NewArray([]stackitem.Item{
					stackitem.Make(id.BytesBE()),
					stackitem.Make(b.BytesBE()),
				})},
				{Name: KeyAddedEventName, Item: stackitem.NewArray([]stackitem.Item{
					stackitem.Make(id.BytesBE()),
					stackitem.Make(b.BytesBE()),
				})},
			},
		}},
	}

	proposed, err := ActionProposedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*ActionProposedEvent{{
		ID:         id,
		ActionType: big.NewInt(ActionAddKey),
		Key:        b,
		Proposer:   a,
	}}, proposed)

	added, err := KeyEventsFromApplicationLog(log, KeyAddedEventName)
	require.NoError(t, err)
	require.Equal(t, []*KeyEvent{{ID: id, Key: b}}, added)

	removed, err := KeyEventsFromApplicationLog(log, KeyRemovedEventName)
	require.NoError(t, err)
	require.Empty(t, removed)

	_, err = VoteCastEventsFromApplicationLog(nil)
	require.Error(t, err)

	log.Executions[0].Events[0].Item = stackitem.NewArray(nil)
	_, err = ActionProposedEventsFromApplicationLog(log)
	require.Error(t, err)
}

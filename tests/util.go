package tests

import (
	"testing"

	rpckeychain "github.com/keychain-dev/keychain-contract/rpc/keychain"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/stretchr/testify/require"
)

// newExecutor returns executor of the single-node chain with 1-of-1
// committee.
func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// keyPointersOf drains iterator returned by keyPointers method.
func keyPointersOf(t *testing.T, iter *storage.Iterator) []*rpckeychain.KeyPointer {
	var res []*rpckeychain.KeyPointer
	for iter.Next() {
		ptr := new(rpckeychain.KeyPointer)
		require.NoError(t, ptr.FromStackItem(iter.Value()))
		res = append(res, ptr)
	}
	return res
}

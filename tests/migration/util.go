package migration

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// requireSingleTrue checks that the stack holds exactly one true boolean.
func requireSingleTrue(tb testing.TB, stack []stackitem.Item) {
	require.Len(tb, stack, 1)

	ok, err := stack[0].TryBool()
	require.NoError(tb, err)
	require.True(tb, ok)
}

// nopCloseStore is storage.Store ignoring Close calls, so the same store can
// back several blockchain instances in a row.
type nopCloseStore struct {
	storage.Store
}

func (nopCloseStore) Close() error {
	return nil
}

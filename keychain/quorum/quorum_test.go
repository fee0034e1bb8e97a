package quorum

import (
	"testing"

	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	"github.com/stretchr/testify/require"
)

// votesOf returns bit flags with the first k keys voted.
func votesOf(k int) int {
	var v int
	for i := 0; i < k; i++ {
		v = SetVote(v, i)
	}
	return v
}

func TestVotes(t *testing.T) {
	var v int
	require.Zero(t, Count(v))

	v = SetVote(v, 3)
	require.True(t, HasVote(v, 3))
	require.False(t, HasVote(v, 0))
	require.Equal(t, 1, Count(v))

	// Repeated vote is idempotent.
	require.Equal(t, v, SetVote(v, 3))

	v = SetVote(v, 0)
	require.Equal(t, 2, Count(v))
	require.Equal(t, 0b1001, v)

	require.False(t, HasVote(v, -1))
	require.False(t, HasVote(v, 8))
	require.Panics(t, func() { SetVote(v, 8) })
}

func TestReached(t *testing.T) {
	for n := 1; n <= keychainconst.MaxKeys; n++ {
		for threshold := 0; threshold <= n; threshold++ {
			for k := 0; k <= n; k++ {
				expected := (threshold > 0 && k >= threshold) || k == n
				require.Equal(t, expected, Reached(votesOf(k), n, threshold),
					"keys=%d threshold=%d votes=%d", n, threshold, k)

				if threshold > 0 && k < threshold {
					require.False(t, Reached(votesOf(k), n, threshold))
				}
			}
		}
	}
}

func TestReachedSparseVotes(t *testing.T) {
	// Keys 0 and 2 of three approved.
	v := SetVote(SetVote(0, 0), 2)

	require.False(t, Reached(v, 3, 0))
	require.True(t, Reached(v, 3, 2))
	require.False(t, Reached(v, 3, 3))
	require.True(t, Reached(SetVote(v, 1), 3, 0))
}

func TestDecide(t *testing.T) {
	t.Run("remove key", func(t *testing.T) {
		require.Equal(t, Pending, Decide(keychainconst.ActionRemoveKey, votesOf(1), 3, 0, false))
		require.Equal(t, Approved, Decide(keychainconst.ActionRemoveKey, votesOf(3), 3, 0, false))
		require.Equal(t, Approved, Decide(keychainconst.ActionRemoveKey, votesOf(2), 3, 2, false))
	})
	t.Run("add key requires verification", func(t *testing.T) {
		require.Equal(t, Pending, Decide(keychainconst.ActionAddKey, votesOf(1), 1, 0, false))
		require.Equal(t, Approved, Decide(keychainconst.ActionAddKey, votesOf(1), 1, 0, true))
		require.Equal(t, Pending, Decide(keychainconst.ActionAddKey, votesOf(1), 2, 0, true))
		require.Equal(t, Approved, Decide(keychainconst.ActionAddKey, votesOf(1), 2, 1, true))
	})
	t.Run("no action", func(t *testing.T) {
		require.Equal(t, Pending, Decide(keychainconst.ActionNone, votesOf(3), 3, 0, true))
	})
}

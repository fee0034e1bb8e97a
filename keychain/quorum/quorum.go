/*
Package quorum decides whether a pending keychain action has collected enough
votes.

Votes are kept as bit flags in a plain integer: bit i is set when the key at
index i of the keychain key list approved the action. Indices are only
meaningful while the key list stays unchanged, which holds because the list is
modified only when the single pending action of the keychain completes.

The package has no dependencies, so it is compiled into the keychain contract
and used off-chain as is.
*/
package quorum

import "github.com/keychain-dev/keychain-contract/keychain/keychainconst"

// Outcome is the result of quorum evaluation.
type Outcome int

const (
	// Pending means the action needs more votes (or verification).
	Pending Outcome = iota
	// Approved means the action must be applied now.
	Approved
)

// maxVoters bounds the number of usable bits.
const maxVoters = 8

// SetVote returns votes with the bit of the key at index set.
func SetVote(votes, index int) int {
	if index < 0 || index >= maxVoters {
		panic("vote index out of range")
	}
	return votes | (1 << index)
}

// HasVote checks whether the key at index has voted.
func HasVote(votes, index int) bool {
	if index < 0 || index >= maxVoters {
		return false
	}
	return votes&(1<<index) != 0
}

// Count returns the number of votes cast.
func Count(votes int) int {
	var n int
	for i := 0; i < maxVoters; i++ {
		if votes&(1<<i) != 0 {
			n++
		}
	}
	return n
}

// Reached checks numeric quorum. Unanimous approval always satisfies it,
// positive threshold is an alternative (lower) bar.
func Reached(votes, numKeys, threshold int) bool {
	n := Count(votes)
	if threshold > 0 && n >= threshold {
		return true
	}
	return n == numKeys
}

// Decide evaluates action of the given type. Key addition is never approved
// until the added key is verified, whatever the number of votes.
func Decide(actionType, votes, numKeys, threshold int, verified bool) Outcome {
	if !Reached(votes, numKeys, threshold) {
		return Pending
	}

	switch actionType {
	case keychainconst.ActionRemoveKey:
		return Approved
	case keychainconst.ActionAddKey:
		if verified {
			return Approved
		}
	}

	return Pending
}

package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrWitnessFailed appears when the method must be called
	// using certain account but was not.
	ErrWitnessFailed = "witness check failed"
	// ErrCommitteeWitnessFailed appears when the method must be
	// called by the committee but was not.
	ErrCommitteeWitnessFailed = "not witnessed by committee"
)

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	if len(caller) != interop.Hash160Len {
		panic(ErrWitnessFailed)
	}
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

// CheckCommitteeWitness checks that the transaction is signed by the
// committee multi-signature. It panics with ErrCommitteeWitnessFailed
// message on fail.
func CheckCommitteeWitness() {
	checkWitnessWithPanic(CommitteeAddress(), ErrCommitteeWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

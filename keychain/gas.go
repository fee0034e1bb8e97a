package keychain

import (
	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Storage deposits are the only payments the contract receives.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic("keychain contract accepts GAS only")
	}
}

// pay transfers amount of GAS from the witnessed account.
func pay(from, to interop.Hash160, amount int) {
	if amount == 0 {
		return
	}
	if !gas.Transfer(from, to, amount, nil) {
		panic(keychainconst.ErrNotEnoughGAS)
	}
}

// lockDeposit takes storage deposit for the given number of records from
// the payer and returns the locked amount.
func lockDeposit(payer interop.Hash160, records int) int {
	amount := records * keychainconst.StorageDeposit
	pay(payer, runtime.GetExecutingScriptHash(), amount)
	return amount
}

// reclaim hands deposit of deleted records over to the given account.
func reclaim(to interop.Hash160, amount int) {
	if amount == 0 {
		return
	}
	if !gas.Transfer(runtime.GetExecutingScriptHash(), to, amount, nil) {
		panic("can't reclaim storage deposit")
	}
}

package keychain

import (
	"github.com/keychain-dev/keychain-contract/common"
	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	"github.com/keychain-dev/keychain-contract/keychain/quorum"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// PendingAction is the only in-flight keychain mutation. ActionType equal to
// keychainconst.ActionNone means there is no such action.
type PendingAction struct {
	ActionType int
	// Key is the key to be added or removed.
	Key interop.Hash160
	// Verified is set when the key to be added has proven possession and paid.
	Verified bool
	// Votes are bit flags of approving keys by their index in Keychain.Keys.
	Votes int
}

// AddKey proposes to bind the key to the keychain. The signer must be a key of
// the keychain, the proposal counts as its approval. The action completes once
// the new key is verified with VerifyKey and quorum is reached.
//
// It produces ActionProposed notification.
func AddKey(domain, name string, signer, key interop.Hash160) {
	checkKey(key)

	ctx := storage.GetContext()
	_, id, kc, st, signerIndex := loadForSigner(ctx, domain, name, signer)

	if indexOf(kc.Keys, key) >= 0 {
		panic(keychainconst.ErrKeyAlreadyExists)
	}
	if storage.Get(ctx, keyPointerKey(kc.Domain, key)) != nil {
		panic(keychainconst.ErrKeyAlreadyExists)
	}
	if kc.NumKeys >= keychainconst.MaxKeys {
		panic(keychainconst.ErrMaxKeys)
	}
	if st.Pending.ActionType != keychainconst.ActionNone {
		panic(keychainconst.ErrPendingActionExists)
	}

	st.Pending = PendingAction{
		ActionType: keychainconst.ActionAddKey,
		Key:        key,
		Verified:   false,
		Votes:      quorum.SetVote(0, signerIndex),
	}
	putState(ctx, id, st)

	runtime.Notify("ActionProposed", id, keychainconst.ActionAddKey, key, signer)
}

// VerifyKey confirms the pending key addition. Transaction must be witnessed by
// the key being added, the key pays the domain key cost to the domain treasury
// and a storage deposit for its key pointer. If the action already has enough
// votes the key is added immediately.
//
// It produces KeyVerified and, if the key is added, KeyAdded notifications.
func VerifyKey(domain, name string, key interop.Hash160) {
	checkKey(key)
	common.CheckWitness(key)

	ctx := storage.GetContext()
	d := getDomain(ctx, domain)
	id := keychainID(d.Name, name)
	kc := getKeychain(ctx, id)
	st := getState(ctx, id)

	if st.Pending.ActionType != keychainconst.ActionAddKey {
		panic(keychainconst.ErrNoPendingAction)
	}
	if !st.Pending.Key.Equals(key) {
		panic(keychainconst.ErrInvalidVerifier)
	}
	if storage.Get(ctx, keyPointerKey(d.Name, key)) != nil {
		panic(keychainconst.ErrKeyAlreadyExists)
	}

	pay(key, d.Treasury, d.KeyCost)
	putKeyPointer(ctx, d.Name, KeyPointer{
		Version:  keychainconst.KeyVersion,
		Keychain: id,
		Key:      key,
		Deposit:  lockDeposit(key, 1),
	})

	p := st.Pending
	p.Verified = true
	st.Pending = p
	runtime.Notify("KeyVerified", id, key)

	resolve(ctx, d, id, kc, st)
}

// RemoveKey proposes to unbind the key from the keychain. The signer must be a
// key of the keychain, the proposal counts as its approval. Removing the only
// key destroys the keychain immediately, storage deposits go to the signer.
// Destruction doesn't require the domain to exist.
//
// It produces ActionProposed notification, KeyRemoved if the key is removed
// and KeychainDestroyed if the keychain is destroyed.
func RemoveKey(domain, name string, signer, key interop.Hash160) {
	checkKey(key)

	ctx := storage.GetContext()
	id, kc, st, signerIndex := loadKeychainForSigner(ctx, domain, name, signer)

	if indexOf(kc.Keys, key) < 0 {
		panic(keychainconst.ErrKeyNotFound)
	}

	if kc.NumKeys == 1 {
		destroyKeychain(ctx, id, kc, st, signer)
		return
	}

	d := getDomain(ctx, domain)

	if st.Pending.ActionType != keychainconst.ActionNone {
		panic(keychainconst.ErrPendingActionExists)
	}

	st.Pending = PendingAction{
		ActionType: keychainconst.ActionRemoveKey,
		Key:        key,
		Verified:   false,
		Votes:      quorum.SetVote(0, signerIndex),
	}

	runtime.Notify("ActionProposed", id, keychainconst.ActionRemoveKey, key, signer)

	resolve(ctx, d, id, kc, st)
}

// Vote casts the signer's vote for the pending action. A single rejection
// cancels the action. Approval is counted and the action is applied once
// quorum is reached.
//
// It produces VoteCast notification, ActionRejected if the action is
// cancelled and KeyAdded or KeyRemoved if it is applied.
func Vote(domain, name string, signer interop.Hash160, approve bool) {
	ctx := storage.GetContext()
	d, id, kc, st, signerIndex := loadForSigner(ctx, domain, name, signer)

	if st.Pending.ActionType == keychainconst.ActionNone {
		panic(keychainconst.ErrNoPendingAction)
	}

	runtime.Notify("VoteCast", id, signer, approve)

	if !approve {
		dropVerifiedAction(ctx, kc.Domain, st.Pending)
		st.Pending = idleAction()
		putState(ctx, id, st)

		runtime.Notify("ActionRejected", id, signer)
		return
	}

	p := st.Pending
	p.Votes = quorum.SetVote(p.Votes, signerIndex)
	st.Pending = p

	resolve(ctx, d, id, kc, st)
}

// loadForSigner reads the domain, the keychain and its state and checks that
// the signer is a witnessed key of the keychain. It returns the signer's key
// index.
func loadForSigner(ctx storage.Context, domain, name string, signer interop.Hash160) (Domain, interop.Hash256, Keychain, KeychainState, int) {
	common.CheckWitness(signer)

	d := getDomain(ctx, domain)
	id, kc, st, i := loadKeychainForSigner(ctx, d.Name, name, signer)

	return d, id, kc, st, i
}

// loadKeychainForSigner is loadForSigner for keychains whose domain may be
// closed.
func loadKeychainForSigner(ctx storage.Context, domain, name string, signer interop.Hash160) (interop.Hash256, Keychain, KeychainState, int) {
	common.CheckWitness(signer)

	id := keychainID(domain, name)
	kc := getKeychain(ctx, id)
	st := getState(ctx, id)

	i := indexOf(kc.Keys, signer)
	if i < 0 {
		panic(keychainconst.ErrSignerNotInKeychain)
	}

	return id, kc, st, i
}

// resolve applies the pending action if it is approved and stores the
// resulting state.
func resolve(ctx storage.Context, d Domain, id interop.Hash256, kc Keychain, st KeychainState) {
	p := st.Pending
	if quorum.Decide(p.ActionType, p.Votes, kc.NumKeys, st.ActionThreshold, p.Verified) != quorum.Approved {
		putState(ctx, id, st)
		return
	}

	if p.ActionType == keychainconst.ActionAddKey {
		kc.Keys = append(kc.Keys, p.Key)
		kc.NumKeys = kc.NumKeys + 1

		runtime.Notify("KeyAdded", id, p.Key)
	} else {
		kc.Keys = swapRemove(kc.Keys, indexOf(kc.Keys, p.Key))
		kc.NumKeys = kc.NumKeys - 1

		ptr := deleteKeyPointer(ctx, kc.Domain, p.Key)
		reclaim(d.Treasury, ptr.Deposit)

		runtime.Notify("KeyRemoved", id, p.Key)
	}

	st.Pending = idleAction()
	putKeychain(ctx, id, kc)
	putState(ctx, id, st)
}

// dropVerifiedAction removes key pointer created by verification of the key
// addition that will never complete and returns its deposit to the key.
func dropVerifiedAction(ctx storage.Context, domain string, p PendingAction) {
	if p.ActionType != keychainconst.ActionAddKey || !p.Verified {
		return
	}

	ptr := deleteKeyPointer(ctx, domain, p.Key)
	reclaim(p.Key, ptr.Deposit)
}

func idleAction() PendingAction {
	return PendingAction{
		ActionType: keychainconst.ActionNone,
		Key:        interop.Hash160(make([]byte, interop.Hash160Len)),
		Verified:   false,
		Votes:      0,
	}
}

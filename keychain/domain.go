package keychain

import (
	"github.com/keychain-dev/keychain-contract/common"
	"github.com/keychain-dev/keychain-contract/keychain/keychainconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Domain is a namespace of keychains sharing fee and quorum policy.
type Domain struct {
	Version int
	// Name is immutable.
	Name      string
	Authority interop.Hash160
	// Treasury receives key verification fees and deposits of removed keys.
	Treasury interop.Hash160
	// KeyCost is the amount of GAS a key pays to be bound to a keychain.
	KeyCost int
	// ActionThreshold is copied to every keychain created in the domain.
	// Zero means unanimous approval.
	ActionThreshold int
}

// CreateDomain registers a new domain. It can be invoked only by the committee.
//
// It produces DomainCreated notification.
func CreateDomain(name string, authority, treasury interop.Hash160, keyCost int) {
	checkName(name, 1)
	checkKey(authority)
	if len(treasury) != interop.Hash160Len {
		panic(keychainconst.ErrInvalidTreasury)
	}
	if keyCost < 0 {
		panic(keychainconst.ErrInvalidAmount)
	}

	common.CheckCommitteeWitness()

	ctx := storage.GetContext()
	if storage.Get(ctx, domainKey(name)) != nil {
		panic(keychainconst.ErrDomainAlreadyExists)
	}

	putDomain(ctx, Domain{
		Version:         keychainconst.DomainVersion,
		Name:            name,
		Authority:       authority,
		Treasury:        treasury,
		KeyCost:         keyCost,
		ActionThreshold: keychainconst.DefaultActionThreshold,
	})

	runtime.Notify("DomainCreated", name, authority)
}

// UpdateDomain changes treasury, key cost and action threshold of the domain.
// It can be invoked only by the domain authority. New threshold applies to
// keychains created after the update only.
//
// It produces DomainUpdated notification.
func UpdateDomain(name string, treasury interop.Hash160, keyCost, threshold int) {
	if len(treasury) != interop.Hash160Len {
		panic(keychainconst.ErrInvalidTreasury)
	}
	if keyCost < 0 {
		panic(keychainconst.ErrInvalidAmount)
	}
	if threshold < 0 || threshold > keychainconst.MaxKeys {
		panic(keychainconst.ErrInvalidThreshold)
	}

	ctx := storage.GetContext()
	d := getDomain(ctx, name)
	if !runtime.CheckWitness(d.Authority) {
		panic(keychainconst.ErrNotDomainAdmin)
	}

	d.Treasury = treasury
	d.KeyCost = keyCost
	d.ActionThreshold = threshold
	putDomain(ctx, d)

	runtime.Notify("DomainUpdated", name)
}

// CloseDomain removes the domain record. It can be invoked by the domain
// authority or by the committee. Keychains of the domain are left intact.
// Until the domain is created again, their keys can only be removed one by
// one and only when a key is the last one of its keychain, which releases
// the keychain deposits.
//
// It produces DomainClosed notification.
func CloseDomain(name string) {
	ctx := storage.GetContext()
	d := getDomain(ctx, name)
	if !runtime.CheckWitness(d.Authority) && !common.HasUpdateAccess() {
		panic(keychainconst.ErrNotDomainAdmin)
	}

	storage.Delete(ctx, domainKey(name))

	runtime.Notify("DomainClosed", name)
}

// GetDomain returns the domain with the given name.
func GetDomain(name string) Domain {
	return getDomain(storage.GetReadOnlyContext(), name)
}

func getDomain(ctx storage.Context, name string) Domain {
	checkName(name, 1)

	raw := common.GetSerialized(ctx, domainKey(name))
	if raw == nil {
		panic(keychainconst.ErrDomainNotFound)
	}

	d := raw.(Domain)
	if d.Version != keychainconst.DomainVersion {
		panic(keychainconst.ErrInvalidVersion)
	}

	return d
}

func putDomain(ctx storage.Context, d Domain) {
	common.SetSerialized(ctx, domainKey(d.Name), d)
}

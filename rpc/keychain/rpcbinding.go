// Package keychain contains RPC wrappers for Keychain contract.
package keychain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Domain is a contract-specific keychain.Domain type used by its methods.
type Domain struct {
	Version         *big.Int
	Name            string
	Authority       util.Uint160
	Treasury        util.Uint160
	KeyCost         *big.Int
	ActionThreshold *big.Int
}

// Keychain is a contract-specific keychain.Keychain type used by its methods.
type Keychain struct {
	Version *big.Int
	Name    string
	Domain  string
	NumKeys *big.Int
	Keys    []util.Uint160
}

// Values of PendingAction.ActionType.
const (
	ActionNone int64 = iota
	ActionAddKey
	ActionRemoveKey
)

// PendingAction is a contract-specific keychain.PendingAction type used by its methods.
type PendingAction struct {
	ActionType *big.Int
	Key        util.Uint160
	Verified   bool
	Votes      *big.Int
}

// KeyPointer is a contract-specific keychain.KeyPointer type used by its methods.
type KeyPointer struct {
	Version  *big.Int
	Keychain util.Uint256
	Key      util.Uint160
	Deposit  *big.Int
}

// KeychainState is a contract-specific keychain.KeychainState type used by its methods.
type KeychainState struct {
	Version         *big.Int
	Keychain        util.Uint256
	ActionThreshold *big.Int
	Pending         *PendingAction
	Deposit         *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// GetDomain invokes `getDomain` method of contract.
func (c *ContractReader) GetDomain(name string) (*Domain, error) {
	return itemToDomain(unwrap.Item(c.invoker.Call(c.hash, "getDomain", name)))
}

// GetKeychain invokes `getKeychain` method of contract.
func (c *ContractReader) GetKeychain(domain string, name string) (*Keychain, error) {
	return itemToKeychain(unwrap.Item(c.invoker.Call(c.hash, "getKeychain", domain, name)))
}

// GetKeychainState invokes `getKeychainState` method of contract.
func (c *ContractReader) GetKeychainState(domain string, name string) (*KeychainState, error) {
	return itemToKeychainState(unwrap.Item(c.invoker.Call(c.hash, "getKeychainState", domain, name)))
}

// Keys invokes `keys` method of contract.
func (c *ContractReader) Keys(domain string, name string) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "keys", domain, name))
}

// KeychainID invokes `keychainID` method of contract.
func (c *ContractReader) KeychainID(domain string, name string) (util.Uint256, error) {
	return unwrap.Uint256(c.invoker.Call(c.hash, "keychainID", domain, name))
}

// KeychainOfKey invokes `keychainOfKey` method of contract. It returns nil
// if the key is not bound to any keychain of the domain.
func (c *ContractReader) KeychainOfKey(domain string, key util.Uint160) (*util.Uint256, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "keychainOfKey", domain, key))
	if err != nil {
		return nil, err
	}
	if _, ok := item.(stackitem.Null); ok {
		return nil, nil
	}

	id, err := itemToUint256(item)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// HasKey invokes `hasKey` method of contract.
func (c *ContractReader) HasKey(domain string, name string, key util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasKey", domain, name, key))
}

// HasVerifiedKey invokes `hasVerifiedKey` method of contract.
func (c *ContractReader) HasVerifiedKey(domain string, name string, key util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasVerifiedKey", domain, name, key))
}

// KeyPointers invokes `keyPointers` method of contract.
func (c *ContractReader) KeyPointers(domain string) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "keyPointers", domain))
}

// KeyPointersExpanded is similar to KeyPointers (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) KeyPointersExpanded(domain string, _numOfIteratorItems int) ([]*KeyPointer, error) {
	items, err := unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "keyPointers", _numOfIteratorItems, domain))
	if err != nil {
		return nil, err
	}

	res := make([]*KeyPointer, len(items))
	for i := range items {
		res[i] = new(KeyPointer)
		err = res[i].FromStackItem(items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return res, nil
}

// CreateDomain creates a transaction invoking `createDomain` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateDomain(name string, authority util.Uint160, treasury util.Uint160, keyCost *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createDomain", name, authority, treasury, keyCost)
}

// CreateDomainTransaction creates a transaction invoking `createDomain` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateDomainTransaction(name string, authority util.Uint160, treasury util.Uint160, keyCost *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createDomain", name, authority, treasury, keyCost)
}

// CreateDomainUnsigned creates a transaction invoking `createDomain` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateDomainUnsigned(name string, authority util.Uint160, treasury util.Uint160, keyCost *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createDomain", nil, name, authority, treasury, keyCost)
}

// UpdateDomain creates a transaction invoking `updateDomain` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateDomain(name string, treasury util.Uint160, keyCost *big.Int, actionThreshold *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateDomain", name, treasury, keyCost, actionThreshold)
}

// UpdateDomainTransaction creates a transaction invoking `updateDomain` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateDomainTransaction(name string, treasury util.Uint160, keyCost *big.Int, actionThreshold *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateDomain", name, treasury, keyCost, actionThreshold)
}

// UpdateDomainUnsigned creates a transaction invoking `updateDomain` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateDomainUnsigned(name string, treasury util.Uint160, keyCost *big.Int, actionThreshold *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateDomain", nil, name, treasury, keyCost, actionThreshold)
}

// CloseDomain creates a transaction invoking `closeDomain` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CloseDomain(name string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "closeDomain", name)
}

// CloseDomainTransaction creates a transaction invoking `closeDomain` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CloseDomainTransaction(name string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "closeDomain", name)
}

// CloseDomainUnsigned creates a transaction invoking `closeDomain` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CloseDomainUnsigned(name string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "closeDomain", nil, name)
}

// CreateKeychain creates a transaction invoking `createKeychain` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateKeychain(domain string, name string, key util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createKeychain", domain, name, key)
}

// CreateKeychainTransaction creates a transaction invoking `createKeychain` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateKeychainTransaction(domain string, name string, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createKeychain", domain, name, key)
}

// CreateKeychainUnsigned creates a transaction invoking `createKeychain` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateKeychainUnsigned(domain string, name string, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createKeychain", nil, domain, name, key)
}

// AddKey creates a transaction invoking `addKey` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddKey(domain string, name string, signer util.Uint160, key util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addKey", domain, name, signer, key)
}

// AddKeyTransaction creates a transaction invoking `addKey` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddKeyTransaction(domain string, name string, signer util.Uint160, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addKey", domain, name, signer, key)
}

// AddKeyUnsigned creates a transaction invoking `addKey` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddKeyUnsigned(domain string, name string, signer util.Uint160, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addKey", nil, domain, name, signer, key)
}

// VerifyKey creates a transaction invoking `verifyKey` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) VerifyKey(domain string, name string, key util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "verifyKey", domain, name, key)
}

// VerifyKeyTransaction creates a transaction invoking `verifyKey` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) VerifyKeyTransaction(domain string, name string, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "verifyKey", domain, name, key)
}

// VerifyKeyUnsigned creates a transaction invoking `verifyKey` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) VerifyKeyUnsigned(domain string, name string, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "verifyKey", nil, domain, name, key)
}

// RemoveKey creates a transaction invoking `removeKey` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RemoveKey(domain string, name string, signer util.Uint160, key util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeKey", domain, name, signer, key)
}

// RemoveKeyTransaction creates a transaction invoking `removeKey` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveKeyTransaction(domain string, name string, signer util.Uint160, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "removeKey", domain, name, signer, key)
}

// RemoveKeyUnsigned creates a transaction invoking `removeKey` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveKeyUnsigned(domain string, name string, signer util.Uint160, key util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "removeKey", nil, domain, name, signer, key)
}

// Vote creates a transaction invoking `vote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Vote(domain string, name string, signer util.Uint160, approve bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "vote", domain, name, signer, approve)
}

// VoteTransaction creates a transaction invoking `vote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) VoteTransaction(domain string, name string, signer util.Uint160, approve bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "vote", domain, name, signer, approve)
}

// VoteUnsigned creates a transaction invoking `vote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) VoteUnsigned(domain string, name string, signer util.Uint160, approve bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "vote", nil, domain, name, signer, approve)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToDomain converts stack item into *Domain.
func itemToDomain(item stackitem.Item, err error) (*Domain, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Domain)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Domain from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Domain) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 6)
	if err != nil {
		return err
	}

	index := -1
	index++
	res.Version, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Version: %w", err)
	}

	index++
	res.Name, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	res.Authority, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Authority: %w", err)
	}

	index++
	res.Treasury, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Treasury: %w", err)
	}

	index++
	res.KeyCost, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field KeyCost: %w", err)
	}

	index++
	res.ActionThreshold, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ActionThreshold: %w", err)
	}

	return nil
}

// itemToKeychain converts stack item into *Keychain.
func itemToKeychain(item stackitem.Item, err error) (*Keychain, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Keychain)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Keychain from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Keychain) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 5)
	if err != nil {
		return err
	}

	index := -1
	index++
	res.Version, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Version: %w", err)
	}

	index++
	res.Name, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	res.Domain, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Domain: %w", err)
	}

	index++
	res.NumKeys, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NumKeys: %w", err)
	}

	index++
	res.Keys, err = func(item stackitem.Item) ([]util.Uint160, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]util.Uint160, len(arr))
		for i := range res {
			res[i], err = itemToUint160(arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Keys: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of KeyPointer from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *KeyPointer) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 4)
	if err != nil {
		return err
	}

	index := -1
	index++
	res.Version, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Version: %w", err)
	}

	index++
	res.Keychain, err = itemToUint256(arr[index])
	if err != nil {
		return fmt.Errorf("field Keychain: %w", err)
	}

	index++
	res.Key, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	index++
	res.Deposit, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Deposit: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of PendingAction from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *PendingAction) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 4)
	if err != nil {
		return err
	}

	index := -1
	index++
	res.ActionType, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ActionType: %w", err)
	}

	index++
	// Idle action carries an empty key.
	b, err := arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}
	if len(b) != 0 {
		res.Key, err = util.Uint160DecodeBytesBE(b)
		if err != nil {
			return fmt.Errorf("field Key: %w", err)
		}
	}

	index++
	res.Verified, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Verified: %w", err)
	}

	index++
	res.Votes, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Votes: %w", err)
	}

	return nil
}

// itemToKeychainState converts stack item into *KeychainState.
func itemToKeychainState(item stackitem.Item, err error) (*KeychainState, error) {
	if err != nil {
		return nil, err
	}
	var res = new(KeychainState)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of KeychainState from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *KeychainState) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 5)
	if err != nil {
		return err
	}

	index := -1
	index++
	res.Version, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Version: %w", err)
	}

	index++
	res.Keychain, err = itemToUint256(arr[index])
	if err != nil {
		return fmt.Errorf("field Keychain: %w", err)
	}

	index++
	res.ActionThreshold, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ActionThreshold: %w", err)
	}

	index++
	res.Pending = new(PendingAction)
	err = res.Pending.FromStackItem(arr[index])
	if err != nil {
		return fmt.Errorf("field Pending: %w", err)
	}

	index++
	res.Deposit, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Deposit: %w", err)
	}

	return nil
}

func structFields(item stackitem.Item, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

func itemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

func itemToUint256(item stackitem.Item) (util.Uint256, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint256{}, err
	}
	return util.Uint256DecodeBytesBE(b)
}

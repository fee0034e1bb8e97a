package keychain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

type (
	// DomainCreatedEvent represents "DomainCreated" event emitted by the contract.
	DomainCreatedEvent struct {
		Name      string
		Authority util.Uint160
	}

	// DomainUpdatedEvent represents "DomainUpdated" event emitted by the contract.
	DomainUpdatedEvent struct {
		Name string
	}

	// DomainClosedEvent represents "DomainClosed" event emitted by the contract.
	DomainClosedEvent struct {
		Name string
	}

	// KeychainCreatedEvent represents "KeychainCreated" event emitted by the contract.
	KeychainCreatedEvent struct {
		ID     util.Uint256
		Domain string
		Name   string
		Key    util.Uint160
	}

	// KeychainDestroyedEvent represents "KeychainDestroyed" event emitted by the contract.
	KeychainDestroyedEvent struct {
		ID util.Uint256
	}

	// ActionProposedEvent represents "ActionProposed" event emitted by the contract.
	ActionProposedEvent struct {
		ID         util.Uint256
		ActionType *big.Int
		Key        util.Uint160
		Proposer   util.Uint160
	}

	// VoteCastEvent represents "VoteCast" event emitted by the contract.
	VoteCastEvent struct {
		ID      util.Uint256
		Voter   util.Uint160
		Approve bool
	}

	// ActionRejectedEvent represents "ActionRejected" event emitted by the contract.
	ActionRejectedEvent struct {
		ID    util.Uint256
		Voter util.Uint160
	}

	// KeyEvent represents "KeyVerified", "KeyAdded" and "KeyRemoved" events
	// emitted by the contract.
	KeyEvent struct {
		ID  util.Uint256
		Key util.Uint160
	}
)

// Names of the key events.
const (
	KeyVerifiedEventName = "KeyVerified"
	KeyAddedEventName    = "KeyAdded"
	KeyRemovedEventName  = "KeyRemoved"
)

type event interface {
	FromStackItem(item *stackitem.Array) error
}

// eventsFromApplicationLog retrieves all events with the given name from the
// application log.
func eventsFromApplicationLog[T any, PT interface {
	*T
	event
}](log *result.ApplicationLog, name string) ([]*T, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*T
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}
			ev := PT(new(T))
			err := ev.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize %s event from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}
			res = append(res, (*T)(ev))
		}
	}

	return res, nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	return structFields(item, n)
}

// DomainCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "DomainCreated" name from the provided [result.ApplicationLog].
func DomainCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DomainCreatedEvent, error) {
	return eventsFromApplicationLog[DomainCreatedEvent](log, "DomainCreated")
}

// FromStackItem converts provided [stackitem.Array] to DomainCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *DomainCreatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.Name, err = itemToString(arr[0])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	e.Authority, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Authority: %w", err)
	}

	return nil
}

// DomainUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "DomainUpdated" name from the provided [result.ApplicationLog].
func DomainUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DomainUpdatedEvent, error) {
	return eventsFromApplicationLog[DomainUpdatedEvent](log, "DomainUpdated")
}

// FromStackItem converts provided [stackitem.Array] to DomainUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *DomainUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.Name, err = itemToString(arr[0])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	return nil
}

// DomainClosedEventsFromApplicationLog retrieves a set of all emitted events
// with "DomainClosed" name from the provided [result.ApplicationLog].
func DomainClosedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DomainClosedEvent, error) {
	return eventsFromApplicationLog[DomainClosedEvent](log, "DomainClosed")
}

// FromStackItem converts provided [stackitem.Array] to DomainClosedEvent or
// returns an error if it's not possible to do to so.
func (e *DomainClosedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.Name, err = itemToString(arr[0])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	return nil
}

// KeychainCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "KeychainCreated" name from the provided [result.ApplicationLog].
func KeychainCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*KeychainCreatedEvent, error) {
	return eventsFromApplicationLog[KeychainCreatedEvent](log, "KeychainCreated")
}

// FromStackItem converts provided [stackitem.Array] to KeychainCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *KeychainCreatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 4)
	if err != nil {
		return err
	}

	e.ID, err = itemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	e.Domain, err = itemToString(arr[1])
	if err != nil {
		return fmt.Errorf("field Domain: %w", err)
	}

	e.Name, err = itemToString(arr[2])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	e.Key, err = itemToUint160(arr[3])
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	return nil
}

// KeychainDestroyedEventsFromApplicationLog retrieves a set of all emitted events
// with "KeychainDestroyed" name from the provided [result.ApplicationLog].
func KeychainDestroyedEventsFromApplicationLog(log *result.ApplicationLog) ([]*KeychainDestroyedEvent, error) {
	return eventsFromApplicationLog[KeychainDestroyedEvent](log, "KeychainDestroyed")
}

// FromStackItem converts provided [stackitem.Array] to KeychainDestroyedEvent or
// returns an error if it's not possible to do to so.
func (e *KeychainDestroyedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 1)
	if err != nil {
		return err
	}

	e.ID, err = itemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	return nil
}

// ActionProposedEventsFromApplicationLog retrieves a set of all emitted events
// with "ActionProposed" name from the provided [result.ApplicationLog].
func ActionProposedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ActionProposedEvent, error) {
	return eventsFromApplicationLog[ActionProposedEvent](log, "ActionProposed")
}

// FromStackItem converts provided [stackitem.Array] to ActionProposedEvent or
// returns an error if it's not possible to do to so.
func (e *ActionProposedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 4)
	if err != nil {
		return err
	}

	e.ID, err = itemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	e.ActionType, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field ActionType: %w", err)
	}

	e.Key, err = itemToUint160(arr[2])
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	e.Proposer, err = itemToUint160(arr[3])
	if err != nil {
		return fmt.Errorf("field Proposer: %w", err)
	}

	return nil
}

// VoteCastEventsFromApplicationLog retrieves a set of all emitted events
// with "VoteCast" name from the provided [result.ApplicationLog].
func VoteCastEventsFromApplicationLog(log *result.ApplicationLog) ([]*VoteCastEvent, error) {
	return eventsFromApplicationLog[VoteCastEvent](log, "VoteCast")
}

// FromStackItem converts provided [stackitem.Array] to VoteCastEvent or
// returns an error if it's not possible to do to so.
func (e *VoteCastEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 3)
	if err != nil {
		return err
	}

	e.ID, err = itemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	e.Voter, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}

	e.Approve, err = arr[2].TryBool()
	if err != nil {
		return fmt.Errorf("field Approve: %w", err)
	}

	return nil
}

// ActionRejectedEventsFromApplicationLog retrieves a set of all emitted events
// with "ActionRejected" name from the provided [result.ApplicationLog].
func ActionRejectedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ActionRejectedEvent, error) {
	return eventsFromApplicationLog[ActionRejectedEvent](log, "ActionRejected")
}

// FromStackItem converts provided [stackitem.Array] to ActionRejectedEvent or
// returns an error if it's not possible to do to so.
func (e *ActionRejectedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.ID, err = itemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	e.Voter, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}

	return nil
}

// KeyEventsFromApplicationLog retrieves a set of all emitted key events with
// the given name (one of KeyVerifiedEventName, KeyAddedEventName and
// KeyRemovedEventName) from the provided [result.ApplicationLog].
func KeyEventsFromApplicationLog(log *result.ApplicationLog, name string) ([]*KeyEvent, error) {
	return eventsFromApplicationLog[KeyEvent](log, name)
}

// FromStackItem converts provided [stackitem.Array] to KeyEvent or returns an
// error if it's not possible to do to so.
func (e *KeyEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.ID, err = itemToUint256(arr[0])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	e.Key, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Key: %w", err)
	}

	return nil
}

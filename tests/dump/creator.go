package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// Creator dumps states of the Neo smart contracts. Output file format:
//
//	'<label>-<block>-contracts.json': JSON array of contracts' states
//	'<label>-<block>-storage.csv': CSV of contracts' storages
//
// Storage CSV are 'name,key,value' where name stands for contract name and
// binary key-value are base64-encoded.
//
// Use IterateDumps to access existing dumps.
type Creator struct {
	fStates, fStorage *os.File

	storage *csv.Writer
	states  []contractState
	names   map[string]struct{}
}

// NewCreator returns Creator which dumps contracts into given directory. The
// dump is identified by specified ID. Resulting Creator should be closed when
// finished working with it.
//
// NewCreator fails if dump with provided ID already exists.
func NewCreator(dir string, id ID) (*Creator, error) {
	fStates, err := createFile(id.statesFile(dir))
	if err != nil {
		return nil, err
	}

	fStorage, err := createFile(id.storageFile(dir))
	if err != nil {
		_ = fStates.Close()
		return nil, err
	}

	return &Creator{
		fStates:  fStates,
		fStorage: fStorage,
		storage:  csv.NewWriter(fStorage),
		names:    make(map[string]struct{}),
	}, nil
}

// AddContract adds given state of the named Neo contract to the resulting dump
// and returns StorageWriter for the contract storage. Names must be unique
// within the dump. After all needed contracts are added, they should be
// flushed via Flush method.
func (x *Creator) AddContract(name string, st state.Contract) *StorageWriter {
	if _, ok := x.names[name]; ok {
		panic(fmt.Sprintf("contract '%s' is already in the dump", name))
	}

	x.names[name] = struct{}{}
	x.states = append(x.states, contractState{Name: name, State: st})

	return &StorageWriter{name: name, csv: x.storage}
}

// Flush flushes accumulated dump to the file system.
func (x *Creator) Flush() error {
	enc := json.NewEncoder(x.fStates)
	enc.SetIndent("", " ")

	if err := enc.Encode(x.states); err != nil {
		return fmt.Errorf("encode contract states to JSON: %w", err)
	}

	x.storage.Flush()
	if err := x.storage.Error(); err != nil {
		return fmt.Errorf("flush CSV data: %w", err)
	}

	return nil
}

// Close releases underlying resources of the Creator and makes it unusable.
func (x *Creator) Close() error {
	return errors.Join(x.fStorage.Close(), x.fStates.Close())
}

// StorageWriter writes data into the superior contract's storage dump.
type StorageWriter struct {
	name  string
	csv   *csv.Writer
	count int
}

// Write saves given binary key-value into the contract dump as storage item.
func (x *StorageWriter) Write(key, value []byte) error {
	err := x.csv.Write([]string{
		x.name,
		_encoding.EncodeToString(key),
		_encoding.EncodeToString(value),
	})
	if err != nil {
		return fmt.Errorf("write storage item as CSV data: %w", err)
	}

	x.count++

	return nil
}

// Count returns number of storage items written so far.
func (x *StorageWriter) Count() int {
	return x.count
}

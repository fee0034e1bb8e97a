package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// IterateDumps reads all dumps made by Creator in the specified directory and
// passes ID and Reader of each dump into f. Files of other formats are
// ignored. Missing directory means no dumps.
func IterateDumps(dir string, f func(ID, *Reader)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read dump directory: %w", err)
	}

	for i := range entries {
		if entries[i].IsDir() {
			continue
		}

		id, err := idFromStatesFile(entries[i].Name())
		if err != nil {
			continue
		}

		r, err := readDump(dir, id)
		if err != nil {
			return fmt.Errorf("read dump '%s': %w", id, err)
		}

		f(id, r)
	}

	return nil
}

type kv struct{ k, v []byte }

type contractDump struct {
	name  string
	state state.Contract
	items []kv
}

// Reader reads contracts collected in the superior dump.
type Reader struct {
	// in dump order
	contracts []*contractDump
}

func readDump(dir string, id ID) (*Reader, error) {
	fStates, err := os.Open(id.statesFile(dir))
	if err != nil {
		return nil, fmt.Errorf("open file with contract states: %w", err)
	}
	defer fStates.Close()

	fStorage, err := os.Open(id.storageFile(dir))
	if err != nil {
		return nil, fmt.Errorf("open file with storage items: %w", err)
	}
	defer fStorage.Close()

	var r Reader
	if err = r.decode(fStates, fStorage); err != nil {
		return nil, err
	}
	return &r, nil
}

func (x *Reader) decode(rStates, rStorage io.Reader) error {
	var states []contractState

	err := json.NewDecoder(rStates).Decode(&states)
	if err != nil {
		return fmt.Errorf("decode contract states from JSON: %w", err)
	}

	byName := make(map[string]*contractDump, len(states))
	for i := range states {
		c := &contractDump{name: states[i].Name, state: states[i].State}
		byName[c.name] = c
		x.contracts = append(x.contracts, c)
	}

	rd := csv.NewReader(rStorage)
	rd.FieldsPerRecord = 3

	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read next CSV record: %w", err)
		}

		c, ok := byName[rec[0]]
		if !ok {
			return fmt.Errorf("storage item of unknown contract '%s'", rec[0])
		}

		var item kv

		item.k, err = _encoding.DecodeString(rec[1])
		if err != nil {
			return fmt.Errorf("decode storage item key: %w", err)
		}

		item.v, err = _encoding.DecodeString(rec[2])
		if err != nil {
			return fmt.Errorf("decode storage item value: %w", err)
		}

		c.items = append(c.items, item)
	}
}

// ContractState returns state of the named contract from the dump.
func (x *Reader) ContractState(name string) (state.Contract, bool) {
	for _, c := range x.contracts {
		if c.name == name {
			return c.state, true
		}
	}
	return state.Contract{}, false
}

// IterateContractStates iterates over all contracts from the superior dump and
// passes their states into f.
func (x *Reader) IterateContractStates(f func(name string, _state state.Contract)) error {
	for _, c := range x.contracts {
		f(c.name, c.state)
	}
	return nil
}

// IterateContractStorages iterates over all contracts from the superior dump
// and passes their storage items into f in the order they were written.
func (x *Reader) IterateContractStorages(f func(name string, key, value []byte)) error {
	for _, c := range x.contracts {
		for _, item := range c.items {
			f(c.name, item.k, item.v)
		}
	}
	return nil
}

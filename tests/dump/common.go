package dump

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// ID is a unique identifier of the dump. Files of the dump are named
// '<label>-<block>-<suffix>'.
type ID struct {
	// Label of the dump source (e.g. testnet, mainnet).
	Label string
	// Blockchain height at which the state was pulled.
	Block uint32
}

const (
	sep = "-"

	statesFileSuffix  = "contracts.json"
	storageFileSuffix = "storage.csv"
)

// base64 encoding of storage keys and values.
var _encoding = base64.StdEncoding

// String returns hyphen-separated ID fields.
func (x ID) String() string {
	return x.Label + sep + strconv.FormatUint(uint64(x.Block), 10)
}

func (x ID) statesFile(dir string) string {
	return filepath.Join(dir, x.String()+sep+statesFileSuffix)
}

func (x ID) storageFile(dir string) string {
	return filepath.Join(dir, x.String()+sep+storageFileSuffix)
}

// idFromStatesFile decodes ID from the name of the file with contract states.
// Label may contain separators, block is the last number before the suffix.
func idFromStatesFile(name string) (ID, error) {
	prefix, ok := strings.CutSuffix(name, sep+statesFileSuffix)
	if !ok {
		return ID{}, fmt.Errorf("missing '%s' suffix", statesFileSuffix)
	}

	i := strings.LastIndex(prefix, sep)
	if i <= 0 {
		return ID{}, fmt.Errorf("expected '<label>%s<block>' prefix", sep)
	}

	block, err := strconv.ParseUint(prefix[i+1:], 10, 32)
	if err != nil {
		return ID{}, fmt.Errorf("decode block number: %w", err)
	}

	return ID{Label: prefix[:i], Block: uint32(block)}, nil
}

// contractState is a JSON-encoded information about the dumped contract.
type contractState struct {
	Name  string         `json:"name"`
	State state.Contract `json:"state"`
}

// createFile creates new file for writing. The file must not exist.
func createFile(p string) (*os.File, error) {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("create dump file: %w", err)
	}
	return f, nil
}

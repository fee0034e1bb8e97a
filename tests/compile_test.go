package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	for name, dir := range map[string]string{
		"Keychain":        keychainPath,
		"Keychain legacy": keychainPath + "/testdata/legacy",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := compiler.CompileWithOptions(dir, nil, &compiler.Options{Name: name})
			require.NoError(t, err)
		})
	}
}

// Package legacy imitates Keychain contract of the version storing keychains
// without state records. Migration tests put its storage directly and update
// it to the current contract.
package legacy

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
)

const version = 1_000

// Update method updates contract source code and manifest.
func Update(nefFile, manifest []byte, data any) {
	args := data.([]any)
	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, append(args, version))
}

package keychain

import (
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// KeychainID computes keychain identifier the same way the contract does, so
// keychain records can be addressed without invoking it. Names are not
// validated.
func KeychainID(domain, name string) util.Uint256 {
	return hash.Sha256([]byte(domain + "." + name))
}

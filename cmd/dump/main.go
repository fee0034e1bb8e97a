package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/keychain-dev/keychain-contract/rpc/keychain"
	"github.com/keychain-dev/keychain-contract/tests/dump"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	contractAddr := flag.String("contract", "", "Keychain contract address or little-endian script hash")
	rootDir := flag.String("out", "testdata", "Directory to store dumps in")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	case *contractAddr == "":
		log.Fatal("missing Keychain contract address")
	}

	contract, err := parseContractAddress(*contractAddr)
	if err != nil {
		log.Fatal(err)
	}

	err = os.MkdirAll(*rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, *rootDir, *chainLabel, contract)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Keychain contract is successfully dumped to '%s/'\n", *rootDir)
}

// parseContractAddress accepts both Neo address and little-endian hex string.
func parseContractAddress(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	h, err = util.Uint160DecodeStringLE(s)
	if err != nil {
		return h, fmt.Errorf("invalid contract address '%s': %w", s, err)
	}
	return h, nil
}

func _dump(neoBlockchainRPCEndpoint, rootDir, label string, contract util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	d, err := dump.NewCreator(rootDir, dump.ID{
		Label: label,
		Block: b.currentBlock,
	})
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}

	defer d.Close()

	err = overtakeContract(b, d, contract)
	if err != nil {
		return err
	}

	err = d.Flush()
	if err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}

	return nil
}

func overtakeContract(from *remoteBlockchain, to *dump.Creator, contract util.Uint160) error {
	ctr, err := from.getContractState(contract)
	if err != nil {
		return err
	}

	version, err := keychain.NewReader(from.actor, contract).Version()
	if err != nil {
		return fmt.Errorf("get version of the Keychain contract: %w", err)
	}

	log.Printf("Processing Keychain contract %s of version %s...\n", contract.StringLE(), version)

	writer := to.AddContract("keychain", ctr)
	err = from.iterateContractStorage(contract, writer.Write)
	if err != nil {
		return fmt.Errorf("iterate 'keychain' contract storage: %w", err)
	}

	log.Printf("%d storage items collected\n", writer.Count())

	return nil
}

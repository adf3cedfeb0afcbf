package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hodl-labs/vesting-contract/rpc/vesting"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractAddr := flag.String("contract", "", "LE script hash of the vesting contract")
	symbol := flag.String("symbol", "", "Token symbol to dump")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractAddr == "":
		log.Fatal("missing vesting contract script hash")
	case *symbol == "":
		log.Fatal("missing token symbol")
	}

	contractHash, err := util.Uint160DecodeStringLE(*contractAddr)
	if err != nil {
		log.Fatal(fmt.Errorf("decode vesting contract script hash: %w", err))
	}

	err = _dump(*neoRPCEndpoint, contractHash, *symbol)
	if err != nil {
		log.Fatal(err)
	}
}

func _dump(neoBlockchainRPCEndpoint string, contractHash util.Uint160, symbol string) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	reader := vesting.NewReader(b.invoker, contractHash)

	info, err := reader.TokenInfo(symbol)
	if err != nil {
		return fmt.Errorf("get '%s' token info: %w", symbol, err)
	}

	fmt.Printf("token %s at block #%d\n", symbol, b.currentBlock)
	fmt.Printf("  issuer:     %s\n", info.Issuer.StringLE())
	fmt.Printf("  supply:     %s\n", info.Supply)
	fmt.Printf("  max supply: %s\n", info.MaxSupply)
	fmt.Printf("  forfeiture: %s\n", info.Forfeiture)
	fmt.Printf("  window:     [%s, %s]\n", info.VestingStart, info.VestingEnd)

	return dumpAccounts(b, reader, symbol)
}

func dumpAccounts(b *remoteBlockchain, reader *vesting.ContractReader, symbol string) error {
	sessionID, iter, err := reader.Accounts(symbol)
	if err != nil {
		return fmt.Errorf("open '%s' account iterator: %w", symbol, err)
	}

	defer func() {
		_ = b.invoker.TerminateSession(sessionID)
	}()

	const pageSize = 100

	for {
		items, err := b.invoker.TraverseIterator(sessionID, &iter, pageSize)
		if err != nil {
			return fmt.Errorf("traverse '%s' account iterator: %w", symbol, err)
		}
		if len(items) == 0 {
			return nil
		}

		for i := range items {
			err = printAccount(items[i])
			if err != nil {
				return fmt.Errorf("decode account record: %w", err)
			}
		}
	}
}

func printAccount(item stackitem.Item) error {
	kv, ok := item.Value().([]stackitem.Item)
	if !ok || len(kv) != 2 {
		return fmt.Errorf("unexpected iterator element")
	}

	owner, err := kv[0].TryBytes()
	if err != nil {
		return fmt.Errorf("owner key: %w", err)
	}

	var acc vesting.VestingAccount
	err = acc.FromStackItem(kv[1])
	if err != nil {
		return err
	}

	fmt.Printf("  %s balance=%s allocation=%s staked=%s claimed=%t\n",
		base58.Encode(owner), acc.Balance, acc.Allocation, acc.Staked, acc.Claimed)

	return nil
}

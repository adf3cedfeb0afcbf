// Package hodltoken implements the token contract surface the vesting
// contract is wired to: plain transfers between opened accounts and a
// staking service with delayed refunds that reports completed refunds
// back through an onReceipt call on a listener contract. It exists for
// the test suite only and is not deployed anywhere.
package hodltoken

import (
	"github.com/hodl-labs/vesting-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	balancePrefix    = 'b'
	openPrefix       = 'o'
	stakedPrefix     = 's'
	refundablePrefix = 'u'

	listenerKey = 'l'
)

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		return
	}

	args := data.(struct {
		owner    interop.Hash160
		listener interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len || len(args.listener) != interop.Hash160Len {
		panic("incorrect length of script hash")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, common.OwnerKey, args.owner)
	storage.Put(ctx, listenerKey, args.listener)
}

// Mint credits amount of symbol to the account. Can be invoked only by
// the contract owner.
func Mint(to interop.Hash160, symbol string, amount int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(common.ContractOwner(ctx))

	if amount <= 0 {
		panic("mint amount must be positive")
	}

	key := balanceKey(to, symbol)
	storage.Put(ctx, key, getInt(ctx, key)+amount)
}

// Open marks the account as an acceptable transfer destination for the
// symbol. Can be invoked only by the account owner.
func Open(owner interop.Hash160, symbol string) {
	common.CheckWitness(owner)

	ctx := storage.GetContext()
	storage.Put(ctx, openKey(owner, symbol), true)
}

// IsOpen returns true if the account has been opened for the symbol.
func IsOpen(owner interop.Hash160, symbol string) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, openKey(owner, symbol)) != nil
}

// BalanceOf returns the token balance of the account.
func BalanceOf(owner interop.Hash160, symbol string) int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, balanceKey(owner, symbol))
}

// StakedOf returns the amount the staker has pledged on behalf of the
// owner.
func StakedOf(staker, owner interop.Hash160, symbol string) int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, stakedKey(staker, owner, symbol))
}

// RefundableOf returns the amount of a begun unstake not yet refunded.
func RefundableOf(staker, owner interop.Hash160, symbol string) int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, refundableKey(staker, owner, symbol))
}

// Transfer moves amount of symbol between accounts. The sender must be
// witnessed or be the calling contract, the destination must be opened.
// Returns false instead of panicking on auth and balance problems, the
// way NEP-17 transfers do.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, symbol string, amount int, details []byte) bool {
	if amount <= 0 {
		panic("transfer amount must be positive")
	}

	ctx := storage.GetContext()
	if !isUsableAddress(from) {
		runtime.Log("transfer: bad sender")
		return false
	}
	if storage.Get(ctx, openKey(to, symbol)) == nil {
		runtime.Log("transfer: destination is not open")
		return false
	}

	fromKey := balanceKey(from, symbol)
	fromBalance := getInt(ctx, fromKey)
	if fromBalance < amount {
		runtime.Log("transfer: not enough assets")
		return false
	}

	if fromBalance == amount {
		storage.Delete(ctx, fromKey)
	} else {
		storage.Put(ctx, fromKey, fromBalance-amount)
	}

	toKey := balanceKey(to, symbol)
	storage.Put(ctx, toKey, getInt(ctx, toKey)+amount)

	runtime.Notify("Transfer", from, to, symbol, amount)
	return true
}

// StakeTo pledges amount of the staker's balance to the provider/service
// pair on behalf of the owner.
//
// Produces StakeTo notification.
func StakeTo(staker, owner interop.Hash160, provider, service, symbol string, amount int) {
	if !isUsableAddress(staker) {
		panic("stakeTo: not witnessed by staker")
	}
	if amount <= 0 {
		panic("stakeTo: amount must be positive")
	}

	ctx := storage.GetContext()
	key := balanceKey(staker, symbol)
	balance := getInt(ctx, key)
	if balance < amount {
		panic("stakeTo: not enough assets")
	}

	storage.Put(ctx, key, balance-amount)
	sKey := stakedKey(staker, owner, symbol)
	storage.Put(ctx, sKey, getInt(ctx, sKey)+amount)

	runtime.Notify("StakeTo", staker, owner, symbol, amount)
}

// UnstakeTo begins unstaking: the amount leaves the pledge and becomes
// refundable. The tokens return to the staker's balance only through
// RefundTo.
//
// Produces UnstakeTo notification.
func UnstakeTo(staker, owner interop.Hash160, provider, service, symbol string, amount int) {
	if !isUsableAddress(staker) {
		panic("unstakeTo: not witnessed by staker")
	}
	if amount <= 0 {
		panic("unstakeTo: amount must be positive")
	}

	ctx := storage.GetContext()
	sKey := stakedKey(staker, owner, symbol)
	staked := getInt(ctx, sKey)
	if staked < amount {
		panic("unstakeTo: overdrawn stake")
	}

	if staked == amount {
		storage.Delete(ctx, sKey)
	} else {
		storage.Put(ctx, sKey, staked-amount)
	}
	rKey := refundableKey(staker, owner, symbol)
	storage.Put(ctx, rKey, getInt(ctx, rKey)+amount)

	runtime.Notify("UnstakeTo", staker, owner, symbol, amount)
}

// RefundTo completes a begun unstake: the refundable amount returns to
// the staker's balance and the listener contract is notified through its
// onReceipt method. Anyone can invoke it.
//
// Produces RefundTo notification.
func RefundTo(staker, owner interop.Hash160, provider, service, symbol string) {
	ctx := storage.GetContext()

	rKey := refundableKey(staker, owner, symbol)
	amount := getInt(ctx, rKey)
	if amount == 0 {
		panic("refundTo: nothing to refund")
	}
	storage.Delete(ctx, rKey)

	key := balanceKey(staker, symbol)
	storage.Put(ctx, key, getInt(ctx, key)+amount)

	listener := storage.Get(ctx, listenerKey).(interop.Hash160)
	contract.Call(listener, "onReceipt", contract.All, staker, owner, symbol, amount)

	runtime.Notify("RefundTo", staker, owner, symbol, amount)
}

// isUsableAddress checks if the sender is either a witnessed account or
// the calling contract itself.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		callingScriptHash := runtime.GetCallingScriptHash()
		if common.BytesEqual(callingScriptHash, addr) {
			return true
		}
	}

	return false
}

func getInt(ctx storage.Context, key []byte) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}
	return val.(int)
}

func balanceKey(owner interop.Hash160, symbol string) []byte {
	return accountKey(balancePrefix, owner, symbol)
}

func openKey(owner interop.Hash160, symbol string) []byte {
	return accountKey(openPrefix, owner, symbol)
}

func stakedKey(staker, owner interop.Hash160, symbol string) []byte {
	return append(accountKey(stakedPrefix, staker, symbol), owner...)
}

func refundableKey(staker, owner interop.Hash160, symbol string) []byte {
	return append(accountKey(refundablePrefix, staker, symbol), owner...)
}

func accountKey(prefix byte, owner interop.Hash160, symbol string) []byte {
	key := append([]byte{prefix}, symbol...)
	return append(key, owner...)
}

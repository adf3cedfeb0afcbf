package vesting

import (
	"github.com/hodl-labs/vesting-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Registry holds per-symbol token info: issued supply, issue cap,
	// the pool of forfeited tokens and the vesting window. The window
	// is unset (both timestamps zero) until Activate.
	Registry struct {
		// Issued supply, decreases with every payout.
		Supply int
		// Upper bound for issued supply.
		MaxSupply int
		// Tokens abandoned by early withdrawers, redistributed as bonus.
		Forfeiture int
		// Account authorized to issue and activate.
		Issuer interop.Hash160
		// Vesting window bounds, block time in milliseconds.
		VestingStart int
		VestingEnd   int
	}

	// Account stores the vesting state of a single holder for a single
	// symbol.
	Account struct {
		// Spendable balance.
		Balance int
		// Original vesting grant, fixed at the first deposit.
		Allocation int
		// Amount pledged to the token contract's staking service.
		Staked int
		// True after the record has been claimed by its holder or a
		// third party payer.
		Claimed bool
	}

	// Vested is a preview of the amounts a holder would receive right
	// now: the vested part of the allocation and the forfeiture bonus.
	Vested struct {
		Principal int
		Bonus     int
	}
)

const (
	// Decimal precision of all amounts.
	decimals = 4

	maxMemoLength   = 256
	maxSymbolLength = 7

	registryPrefix = 'r'
	accountPrefix  = 'a'

	// Terminates the symbol inside account keys. Symbols are uppercase
	// letters only, so the separator cannot occur in one, and account
	// keys of a symbol never prefix-match keys of a longer symbol.
	accountKeySeparator = 0x00

	tokenContractKey = 't'
)

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner     interop.Hash160
		addrToken interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	if len(args.addrToken) != interop.Hash160Len {
		panic("incorrect length of token contract script hash")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, common.OwnerKey, args.owner)
	storage.Put(ctx, tokenContractKey, args.addrToken)

	runtime.Log("vesting contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	if !common.HasUpdateAccess(ctx) {
		panic("only the contract owner can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("vesting contract updated")
}

// Create registers a new token symbol with zero supply, an empty
// forfeiture pool and an unset vesting window. Can be invoked only by the
// contract owner. The issuer account becomes authorized for Activate and
// Issue.
//
// Produces Create notification.
func Create(issuer interop.Hash160, symbol string, maxSupply int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(common.ContractOwner(ctx))

	if len(issuer) != interop.Hash160Len {
		panic("incorrect length of issuer script hash")
	}
	if !isValidSymbol(symbol) {
		panic("invalid symbol name")
	}
	if maxSupply <= 0 {
		panic("max supply must be positive")
	}

	key := registryKey(symbol)
	if storage.Get(ctx, key) != nil {
		panic("token with symbol already exists")
	}

	common.SetSerialized(ctx, key, Registry{
		Supply:       0,
		MaxSupply:    maxSupply,
		Forfeiture:   0,
		Issuer:       issuer,
		VestingStart: 0,
		VestingEnd:   0,
	})

	runtime.Notify("Create", symbol, issuer, maxSupply)
}

// Activate opens the vesting window of the symbol. Can be invoked only by
// the registry issuer. Start must be strictly in the future and end must
// be later than start. Invoking Activate again replaces any previously
// set window.
//
// Produces Activate notification.
func Activate(symbol string, start, end int) {
	ctx := storage.GetContext()
	reg := mustGetRegistry(ctx, symbol)

	common.CheckIssuerWitness(reg.Issuer)

	if start <= runtime.GetTime() {
		panic("vesting start must be in the future")
	}
	if end <= start {
		panic("vesting end must be later than vesting start")
	}

	reg.VestingStart = start
	reg.VestingEnd = end
	common.SetSerialized(ctx, registryKey(symbol), reg)

	runtime.Notify("Activate", symbol, start, end)
}

// Issue mints amount of the symbol to the holder account. Can be invoked
// only by the registry issuer. The first issue to a holder fixes the
// vesting allocation of that holder, later issues only top up the
// spendable balance.
//
// Produces Issue notification.
func Issue(to interop.Hash160, symbol string, amount int, memo string) {
	ctx := storage.GetContext()
	reg := mustGetRegistry(ctx, symbol)

	common.CheckIssuerWitness(reg.Issuer)

	if len(to) != interop.Hash160Len {
		panic("incorrect length of holder script hash")
	}
	if amount <= 0 {
		panic("must issue positive amount")
	}
	if len(memo) > maxMemoLength {
		panic("memo has more than 256 bytes")
	}
	if reg.Supply+amount > reg.MaxSupply {
		panic("amount exceeds available supply")
	}

	reg.Supply += amount
	common.SetSerialized(ctx, registryKey(symbol), reg)

	addBalance(ctx, to, symbol, amount)

	runtime.Notify("Issue", to, symbol, amount)
}

// Claim marks the holder account as claimed without changing any of its
// amounts. Can be invoked by any payer willing to carry the invocation
// fee on behalf of a passive holder. Fails if the account is already
// claimed.
//
// Produces Claim notification.
func Claim(owner interop.Hash160, symbol string, payer interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckWitness(payer)

	acc := mustGetAccount(ctx, owner, symbol)
	if acc.Claimed {
		panic("already claimed")
	}

	acc = claimAccount(owner, symbol, acc)
	common.SetSerialized(ctx, accountKey(owner, symbol), acc)
}

// Withdraw pays the vested part of the holder's allocation plus the
// vested share of the forfeiture pool and erases the holder account. The
// unvested remainder joins the forfeiture pool. Can be invoked only by
// the holder, after the vesting window has been activated and only with
// no staked tokens left. The holder must have opened a destination
// account with the token contract, the payout is transferred there.
//
// Withdraw is terminal: the erased account takes the "total withdrawn"
// history with it, a holder can only re-enter through a new Issue.
//
// Produces Withdraw notification.
func Withdraw(owner interop.Hash160, symbol string) {
	ctx := storage.GetContext()
	common.CheckHolderWitness(owner)

	reg := mustGetRegistry(ctx, symbol)
	if reg.VestingStart == 0 {
		panic("vesting has not started")
	}

	acc := mustGetAccount(ctx, owner, symbol)
	if acc.Staked != 0 {
		panic("must fully unstake to withdraw")
	}

	principal, bonus := vestedAmounts(reg, acc.Allocation, runtime.GetTime())
	payout := principal + bonus
	forfeited := acc.Allocation - principal

	reg.Supply -= payout
	reg.Forfeiture += forfeited - bonus
	common.SetSerialized(ctx, registryKey(symbol), reg)

	storage.Delete(ctx, accountKey(owner, symbol))

	token := tokenContract(ctx)
	open := contract.Call(token, "isOpen", contract.ReadOnly, owner, symbol).(bool)
	if !open {
		panic("no destination balance found, open an account with the token contract")
	}

	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(token, "transfer", contract.All,
		self, owner, symbol, payout, common.WithdrawTransferDetails(symbol)).(bool)
	if !ok {
		panic("can't transfer payout")
	}

	runtime.Notify("Withdraw", owner, symbol, payout)
}

// Stake reserves amount of the holder's effective balance and pledges it
// to the staking service of the token contract with the given provider
// and service. Can be invoked only by the holder. The reservation
// materializes the bonus accrued so far, so the available amount is the
// spendable balance plus the unrealized bonus difference. An unclaimed
// account is migrated to the claimed state on its first stake.
//
// The reservation and the pledge are a single unit: if the token contract
// rejects the pledge, the reservation is rolled back with the rest of the
// transaction.
//
// Produces Stake notification, and Claim notification on the first stake
// of an unclaimed account.
func Stake(owner interop.Hash160, provider, service, symbol string, amount int) {
	ctx := storage.GetContext()
	common.CheckHolderWitness(owner)

	addStake(ctx, owner, symbol, amount)

	token := tokenContract(ctx)
	self := runtime.GetExecutingScriptHash()
	contract.Call(token, "stakeTo", contract.All,
		self, owner, provider, service, symbol, amount)

	runtime.Notify("Stake", owner, symbol, amount)
}

// Unstake asks the staking service of the token contract to begin
// unstaking. Can be invoked only by the holder. No local amounts change:
// the token contract validates stake sufficiency on its side, and the
// released tokens come back through an onReceipt notification once the
// refund completes.
func Unstake(owner interop.Hash160, provider, service, symbol string, amount int) {
	ctx := storage.GetContext()
	common.CheckHolderWitness(owner)

	token := tokenContract(ctx)
	self := runtime.GetExecutingScriptHash()
	contract.Call(token, "unstakeTo", contract.All,
		self, owner, provider, service, symbol, amount)
}

// Refund forwards a refund request for a completed unstake to the token
// contract. Anyone can invoke it on behalf of any holder.
func Refund(owner interop.Hash160, provider, service, symbol string) {
	ctx := storage.GetContext()

	token := tokenContract(ctx)
	self := runtime.GetExecutingScriptHash()
	contract.Call(token, "refundTo", contract.All,
		self, owner, provider, service, symbol)
}

// OnReceipt is a callback the token contract fires when it moves funds of
// this contract. A receipt for funds this contract itself staked releases
// the stake of the holder the funds were pledged for. Receipts with any
// other sender are ignored.
//
// Produces Release notification on the release path.
func OnReceipt(from, to interop.Hash160, symbol string, amount int) {
	ctx := storage.GetContext()

	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, tokenContract(ctx)) {
		panic("onReceipt: caller is not the token contract")
	}

	self := runtime.GetExecutingScriptHash()
	if !common.BytesEqual(from, self) {
		return
	}

	subStake(ctx, to, symbol, amount)
}

// Decimals returns the decimal precision of all amounts handled by the
// contract.
func Decimals() int {
	return decimals
}

// TotalSupply returns the issued supply of the symbol, zero for unknown
// symbols.
func TotalSupply(symbol string) int {
	ctx := storage.GetReadOnlyContext()
	reg, _ := getRegistry(ctx, symbol)
	return reg.Supply
}

// MaxSupplyOf returns the issue cap of the symbol, zero for unknown
// symbols.
func MaxSupplyOf(symbol string) int {
	ctx := storage.GetReadOnlyContext()
	reg, _ := getRegistry(ctx, symbol)
	return reg.MaxSupply
}

// VestingPeriodOf returns the vesting window bounds of the symbol, both
// zero until Activate.
func VestingPeriodOf(symbol string) []int {
	ctx := storage.GetReadOnlyContext()
	reg, _ := getRegistry(ctx, symbol)
	return []int{reg.VestingStart, reg.VestingEnd}
}

// ForfeitureOf returns the forfeiture pool of the symbol, zero for
// unknown symbols.
func ForfeitureOf(symbol string) int {
	ctx := storage.GetReadOnlyContext()
	reg, _ := getRegistry(ctx, symbol)
	return reg.Forfeiture
}

// TokenInfo returns the full registry record of the symbol.
func TokenInfo(symbol string) Registry {
	ctx := storage.GetReadOnlyContext()
	return mustGetRegistry(ctx, symbol)
}

// BalanceOf returns the spendable balance of the holder, zero for unknown
// accounts.
func BalanceOf(owner interop.Hash160, symbol string) int {
	ctx := storage.GetReadOnlyContext()
	acc, _ := getAccount(ctx, owner, symbol)
	return acc.Balance
}

// AllocationOf returns the original vesting grant of the holder, zero for
// unknown accounts.
func AllocationOf(owner interop.Hash160, symbol string) int {
	ctx := storage.GetReadOnlyContext()
	acc, _ := getAccount(ctx, owner, symbol)
	return acc.Allocation
}

// StakedOf returns the currently pledged amount of the holder, zero for
// unknown accounts.
func StakedOf(owner interop.Hash160, symbol string) int {
	ctx := storage.GetReadOnlyContext()
	acc, _ := getAccount(ctx, owner, symbol)
	return acc.Staked
}

// AccountOf returns the full account record of the holder, an empty
// record for unknown accounts.
func AccountOf(owner interop.Hash160, symbol string) Account {
	ctx := storage.GetReadOnlyContext()
	acc, _ := getAccount(ctx, owner, symbol)
	return acc
}

// VestedOf previews what Withdraw would pay the holder right now. It
// returns zero amounts for unknown accounts and before the vesting window
// has been set.
func VestedOf(owner interop.Hash160, symbol string) Vested {
	ctx := storage.GetReadOnlyContext()

	reg, ok := getRegistry(ctx, symbol)
	if !ok || reg.VestingStart == 0 {
		return Vested{}
	}

	acc, ok := getAccount(ctx, owner, symbol)
	if !ok {
		return Vested{}
	}

	principal, bonus := vestedAmounts(reg, acc.Allocation, runtime.GetTime())
	return Vested{Principal: principal, Bonus: bonus}
}

// Accounts returns an iterator over all holder accounts of the symbol.
// Iterator values are key-value pairs, the key is the holder script hash
// and the value is the deserialized account record.
func Accounts(symbol string) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, accountKeyPrefix(symbol),
		storage.RemovePrefix|storage.DeserializeValues)
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

// vestedAmounts computes the vested principal of the allocation and the
// vested share of the forfeiture pool at the given time:
//
//	principal = allocation * elapsed / duration
//	bonus     = forfeiture * (allocation / supply) * elapsed / duration
//
// Integer division truncates toward zero and is applied once per amount.
// The elapsed fraction is not clamped: before the window starts the
// amounts are negative, after it ends they keep growing past the nominal
// caps. Withdraw and the stake reservation both price through this single
// routine so they always see identical numbers.
func vestedAmounts(reg Registry, allocation int, now int) (int, int) {
	// A past-window withdrawal can pay out the whole supply while other
	// accounts remain, after which their bonus share is undefined.
	if reg.Supply == 0 {
		panic("no issued supply left")
	}

	elapsed := now - reg.VestingStart
	duration := reg.VestingEnd - reg.VestingStart

	principal := allocation * elapsed / duration
	bonus := reg.Forfeiture * allocation * elapsed / (reg.Supply * duration)

	return principal, bonus
}

// addBalance deposits amount to the holder account, creating it on the
// first deposit. The allocation is fixed at creation and never updated by
// later deposits.
func addBalance(ctx storage.Context, owner interop.Hash160, symbol string, amount int) {
	acc, ok := getAccount(ctx, owner, symbol)
	if !ok {
		acc = Account{
			Balance:    amount,
			Allocation: amount,
			Staked:     0,
			Claimed:    false,
		}
	} else {
		acc.Balance += amount
	}

	common.SetSerialized(ctx, accountKey(owner, symbol), acc)
}

// addStake reserves amount from the holder's effective balance. The
// effective balance includes the bonus accrued so far, materialized into
// the spendable balance by the reservation itself.
func addStake(ctx storage.Context, owner interop.Hash160, symbol string, amount int) {
	acc := mustGetAccount(ctx, owner, symbol)
	reg := mustGetRegistry(ctx, symbol)

	acc = claimAccount(owner, symbol, acc)

	bonus := 0
	if reg.VestingStart > 0 {
		_, bonus = vestedAmounts(reg, acc.Allocation, runtime.GetTime())
	}

	// The gap between what the holder is entitled to, bonus included,
	// and what is currently on the books.
	diff := acc.Allocation + bonus - (acc.Balance + acc.Staked)
	if acc.Balance+diff < amount {
		panic("overdrawn balance")
	}

	acc.Balance += diff - amount
	acc.Staked += amount
	common.SetSerialized(ctx, accountKey(owner, symbol), acc)
}

// subStake releases a completed unstake back to the spendable balance.
func subStake(ctx storage.Context, owner interop.Hash160, symbol string, amount int) {
	acc := mustGetAccount(ctx, owner, symbol)
	if acc.Staked < amount {
		panic("overdrawn stake")
	}

	acc.Balance += amount
	acc.Staked -= amount
	common.SetSerialized(ctx, accountKey(owner, symbol), acc)

	runtime.Notify("Release", owner, symbol, amount)
}

// claimAccount migrates an account to the claimed state. It is idempotent
// and changes no amounts.
func claimAccount(owner interop.Hash160, symbol string, acc Account) Account {
	if acc.Claimed {
		return acc
	}

	acc.Claimed = true
	runtime.Notify("Claim", owner, symbol)
	return acc
}

func getRegistry(ctx storage.Context, symbol string) (Registry, bool) {
	data := storage.Get(ctx, registryKey(symbol))
	if data == nil {
		return Registry{}, false
	}
	return std.Deserialize(data.([]byte)).(Registry), true
}

func mustGetRegistry(ctx storage.Context, symbol string) Registry {
	reg, ok := getRegistry(ctx, symbol)
	if !ok {
		panic("token with symbol does not exist")
	}
	return reg
}

func getAccount(ctx storage.Context, owner interop.Hash160, symbol string) (Account, bool) {
	data := storage.Get(ctx, accountKey(owner, symbol))
	if data == nil {
		return Account{}, false
	}
	return std.Deserialize(data.([]byte)).(Account), true
}

func mustGetAccount(ctx storage.Context, owner interop.Hash160, symbol string) Account {
	acc, ok := getAccount(ctx, owner, symbol)
	if !ok {
		panic("no balance object found")
	}
	return acc
}

func tokenContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, tokenContractKey).(interop.Hash160)
}

func registryKey(symbol string) []byte {
	return append([]byte{registryPrefix}, symbol...)
}

func accountKeyPrefix(symbol string) []byte {
	return append(append([]byte{accountPrefix}, symbol...), accountKeySeparator)
}

func accountKey(owner interop.Hash160, symbol string) []byte {
	return append(accountKeyPrefix(symbol), owner...)
}

// isValidSymbol checks that symbol is 1..7 uppercase latin letters.
func isValidSymbol(symbol string) bool {
	if len(symbol) == 0 || len(symbol) > maxSymbolLength {
		return false
	}
	for i := 0; i < len(symbol); i++ {
		c := symbol[i]
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Package vesting contains RPC wrappers for Vesting contract.
package vesting

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// VestingRegistry is a contract-specific vesting.Registry type used by its methods.
type VestingRegistry struct {
	Supply *big.Int
	MaxSupply *big.Int
	Forfeiture *big.Int
	Issuer util.Uint160
	VestingStart *big.Int
	VestingEnd *big.Int
}

// VestingAccount is a contract-specific vesting.Account type used by its methods.
type VestingAccount struct {
	Balance *big.Int
	Allocation *big.Int
	Staked *big.Int
	Claimed bool
}

// VestingVested is a contract-specific vesting.Vested type used by its methods.
type VestingVested struct {
	Principal *big.Int
	Bonus *big.Int
}

// CreateEvent represents "Create" event emitted by the contract.
type CreateEvent struct {
	Symbol string
	Issuer util.Uint160
	MaxSupply *big.Int
}

// ActivateEvent represents "Activate" event emitted by the contract.
type ActivateEvent struct {
	Symbol string
	Start *big.Int
	End *big.Int
}

// IssueEvent represents "Issue" event emitted by the contract.
type IssueEvent struct {
	To util.Uint160
	Symbol string
	Amount *big.Int
}

// ClaimEvent represents "Claim" event emitted by the contract.
type ClaimEvent struct {
	Owner util.Uint160
	Symbol string
}

// WithdrawEvent represents "Withdraw" event emitted by the contract.
type WithdrawEvent struct {
	Owner util.Uint160
	Symbol string
	Amount *big.Int
}

// StakeEvent represents "Stake" event emitted by the contract.
type StakeEvent struct {
	Owner util.Uint160
	Symbol string
	Amount *big.Int
}

// ReleaseEvent represents "Release" event emitted by the contract.
type ReleaseEvent struct {
	Owner util.Uint160
	Symbol string
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// AccountOf invokes `accountOf` method of contract.
func (c *ContractReader) AccountOf(owner util.Uint160, symbol string) (*VestingAccount, error) {
	return itemToVestingAccount(unwrap.Item(c.invoker.Call(c.hash, "accountOf", owner, symbol)))
}

// Accounts invokes `accounts` method of contract.
func (c *ContractReader) Accounts(symbol string) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "accounts", symbol))
}

// AccountsExpanded is similar to Accounts (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) AccountsExpanded(symbol string, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "accounts", _numOfIteratorItems, symbol))
}

// AllocationOf invokes `allocationOf` method of contract.
func (c *ContractReader) AllocationOf(owner util.Uint160, symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "allocationOf", owner, symbol))
}

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(owner util.Uint160, symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", owner, symbol))
}

// Decimals invokes `decimals` method of contract.
func (c *ContractReader) Decimals() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "decimals"))
}

// ForfeitureOf invokes `forfeitureOf` method of contract.
func (c *ContractReader) ForfeitureOf(symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "forfeitureOf", symbol))
}

// MaxSupplyOf invokes `maxSupplyOf` method of contract.
func (c *ContractReader) MaxSupplyOf(symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxSupplyOf", symbol))
}

// StakedOf invokes `stakedOf` method of contract.
func (c *ContractReader) StakedOf(owner util.Uint160, symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "stakedOf", owner, symbol))
}

// TokenInfo invokes `tokenInfo` method of contract.
func (c *ContractReader) TokenInfo(symbol string) (*VestingRegistry, error) {
	return itemToVestingRegistry(unwrap.Item(c.invoker.Call(c.hash, "tokenInfo", symbol)))
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply(symbol string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply", symbol))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// VestingPeriodOf invokes `vestingPeriodOf` method of contract.
func (c *ContractReader) VestingPeriodOf(symbol string) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "vestingPeriodOf", symbol))
}

// VestedOf invokes `vestedOf` method of contract.
func (c *ContractReader) VestedOf(owner util.Uint160, symbol string) (*VestingVested, error) {
	return itemToVestingVested(unwrap.Item(c.invoker.Call(c.hash, "vestedOf", owner, symbol)))
}

// Activate creates a transaction invoking `activate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Activate(symbol string, start *big.Int, end *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "activate", symbol, start, end)
}

// ActivateTransaction creates a transaction invoking `activate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ActivateTransaction(symbol string, start *big.Int, end *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "activate", symbol, start, end)
}

// ActivateUnsigned creates a transaction invoking `activate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ActivateUnsigned(symbol string, start *big.Int, end *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "activate", nil, symbol, start, end)
}

// Claim creates a transaction invoking `claim` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Claim(owner util.Uint160, symbol string, payer util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claim", owner, symbol, payer)
}

// ClaimTransaction creates a transaction invoking `claim` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimTransaction(owner util.Uint160, symbol string, payer util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claim", owner, symbol, payer)
}

// ClaimUnsigned creates a transaction invoking `claim` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimUnsigned(owner util.Uint160, symbol string, payer util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claim", nil, owner, symbol, payer)
}

// Create creates a transaction invoking `create` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Create(issuer util.Uint160, symbol string, maxSupply *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "create", issuer, symbol, maxSupply)
}

// CreateTransaction creates a transaction invoking `create` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateTransaction(issuer util.Uint160, symbol string, maxSupply *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "create", issuer, symbol, maxSupply)
}

// CreateUnsigned creates a transaction invoking `create` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateUnsigned(issuer util.Uint160, symbol string, maxSupply *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "create", nil, issuer, symbol, maxSupply)
}

// Issue creates a transaction invoking `issue` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Issue(to util.Uint160, symbol string, amount *big.Int, memo string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "issue", to, symbol, amount, memo)
}

// IssueTransaction creates a transaction invoking `issue` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) IssueTransaction(to util.Uint160, symbol string, amount *big.Int, memo string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "issue", to, symbol, amount, memo)
}

// IssueUnsigned creates a transaction invoking `issue` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) IssueUnsigned(to util.Uint160, symbol string, amount *big.Int, memo string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "issue", nil, to, symbol, amount, memo)
}

// OnReceipt creates a transaction invoking `onReceipt` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnReceipt(from util.Uint160, to util.Uint160, symbol string, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onReceipt", from, to, symbol, amount)
}

// OnReceiptTransaction creates a transaction invoking `onReceipt` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnReceiptTransaction(from util.Uint160, to util.Uint160, symbol string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onReceipt", from, to, symbol, amount)
}

// OnReceiptUnsigned creates a transaction invoking `onReceipt` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnReceiptUnsigned(from util.Uint160, to util.Uint160, symbol string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onReceipt", nil, from, to, symbol, amount)
}

// Refund creates a transaction invoking `refund` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Refund(owner util.Uint160, provider string, service string, symbol string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "refund", owner, provider, service, symbol)
}

// RefundTransaction creates a transaction invoking `refund` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RefundTransaction(owner util.Uint160, provider string, service string, symbol string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "refund", owner, provider, service, symbol)
}

// RefundUnsigned creates a transaction invoking `refund` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RefundUnsigned(owner util.Uint160, provider string, service string, symbol string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "refund", nil, owner, provider, service, symbol)
}

// Stake creates a transaction invoking `stake` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Stake(owner util.Uint160, provider string, service string, symbol string, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "stake", owner, provider, service, symbol, amount)
}

// StakeTransaction creates a transaction invoking `stake` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) StakeTransaction(owner util.Uint160, provider string, service string, symbol string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "stake", owner, provider, service, symbol, amount)
}

// StakeUnsigned creates a transaction invoking `stake` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) StakeUnsigned(owner util.Uint160, provider string, service string, symbol string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "stake", nil, owner, provider, service, symbol, amount)
}

// Unstake creates a transaction invoking `unstake` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unstake(owner util.Uint160, provider string, service string, symbol string, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unstake", owner, provider, service, symbol, amount)
}

// UnstakeTransaction creates a transaction invoking `unstake` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnstakeTransaction(owner util.Uint160, provider string, service string, symbol string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unstake", owner, provider, service, symbol, amount)
}

// UnstakeUnsigned creates a transaction invoking `unstake` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnstakeUnsigned(owner util.Uint160, provider string, service string, symbol string, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unstake", nil, owner, provider, service, symbol, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(owner util.Uint160, symbol string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", owner, symbol)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(owner util.Uint160, symbol string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", owner, symbol)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(owner util.Uint160, symbol string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, owner, symbol)
}

func itemToVestingAccount(item stackitem.Item, err error) (*VestingAccount, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VestingAccount)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VestingAccount from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VestingAccount) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Balance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Balance: %w", err)
	}

	index++
	res.Allocation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Allocation: %w", err)
	}

	index++
	res.Staked, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Staked: %w", err)
	}

	index++
	res.Claimed, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Claimed: %w", err)
	}

	return nil
}

func itemToVestingRegistry(item stackitem.Item, err error) (*VestingRegistry, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VestingRegistry)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VestingRegistry from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VestingRegistry) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Supply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Supply: %w", err)
	}

	index++
	res.MaxSupply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MaxSupply: %w", err)
	}

	index++
	res.Forfeiture, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Forfeiture: %w", err)
	}

	index++
	res.Issuer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Issuer: %w", err)
	}

	index++
	res.VestingStart, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VestingStart: %w", err)
	}

	index++
	res.VestingEnd, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VestingEnd: %w", err)
	}

	return nil
}

func itemToVestingVested(item stackitem.Item, err error) (*VestingVested, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VestingVested)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VestingVested from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VestingVested) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Principal, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Principal: %w", err)
	}

	index++
	res.Bonus, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Bonus: %w", err)
	}

	return nil
}

// CreateEventsFromApplicationLog retrieves a set of all emitted events
// with "Create" name from the provided [result.ApplicationLog].
func CreateEventsFromApplicationLog(log *result.ApplicationLog) ([]*CreateEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*CreateEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Create" {
				continue
			}
			event := new(CreateEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize CreateEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CreateEvent or
// returns an error if it's not possible to do to so.
func (e *CreateEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Symbol, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	index++
	e.Issuer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Issuer: %w", err)
	}

	index++
	e.MaxSupply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MaxSupply: %w", err)
	}

	return nil
}

// ActivateEventsFromApplicationLog retrieves a set of all emitted events
// with "Activate" name from the provided [result.ApplicationLog].
func ActivateEventsFromApplicationLog(log *result.ApplicationLog) ([]*ActivateEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ActivateEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Activate" {
				continue
			}
			event := new(ActivateEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ActivateEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ActivateEvent or
// returns an error if it's not possible to do to so.
func (e *ActivateEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Symbol, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	index++
	e.Start, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Start: %w", err)
	}

	index++
	e.End, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field End: %w", err)
	}

	return nil
}

// IssueEventsFromApplicationLog retrieves a set of all emitted events
// with "Issue" name from the provided [result.ApplicationLog].
func IssueEventsFromApplicationLog(log *result.ApplicationLog) ([]*IssueEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*IssueEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Issue" {
				continue
			}
			event := new(IssueEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize IssueEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to IssueEvent or
// returns an error if it's not possible to do to so.
func (e *IssueEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.To, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.Symbol, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ClaimEventsFromApplicationLog retrieves a set of all emitted events
// with "Claim" name from the provided [result.ApplicationLog].
func ClaimEventsFromApplicationLog(log *result.ApplicationLog) ([]*ClaimEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ClaimEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Claim" {
				continue
			}
			event := new(ClaimEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ClaimEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ClaimEvent or
// returns an error if it's not possible to do to so.
func (e *ClaimEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Symbol, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	return nil
}

// WithdrawEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdraw" name from the provided [result.ApplicationLog].
func WithdrawEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Withdraw" {
				continue
			}
			event := new(WithdrawEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Symbol, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// StakeEventsFromApplicationLog retrieves a set of all emitted events
// with "Stake" name from the provided [result.ApplicationLog].
func StakeEventsFromApplicationLog(log *result.ApplicationLog) ([]*StakeEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StakeEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Stake" {
				continue
			}
			event := new(StakeEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StakeEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StakeEvent or
// returns an error if it's not possible to do to so.
func (e *StakeEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Symbol, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ReleaseEventsFromApplicationLog retrieves a set of all emitted events
// with "Release" name from the provided [result.ApplicationLog].
func ReleaseEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReleaseEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReleaseEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Release" {
				continue
			}
			event := new(ReleaseEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReleaseEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReleaseEvent or
// returns an error if it's not possible to do to so.
func (e *ReleaseEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Symbol, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

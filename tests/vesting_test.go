package tests

import (
	"math/big"
	"path"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	vestingPath = "../vesting"
	tokenPath   = "../internal/testcontracts/hodltoken"
)

const (
	hodlSymbol = "HODL"

	// All amounts carry 4 decimals, grant is 1000.0000 tokens.
	grant   = 10_000_000
	custody = 100_000_000

	// Vesting window length in milliseconds.
	window = 1_000_000
)

// newVestingInvoker deploys the vesting contract together with the token
// contract it keeps custody at. The script hashes of both are known
// before deployment, which breaks the circular reference between the
// deploy arguments.
func newVestingInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)

	ctrVesting := neotest.CompileFile(t, e.CommitteeHash, vestingPath, path.Join(vestingPath, "config.yml"))
	ctrToken := neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))

	e.DeployContract(t, ctrToken, []any{e.CommitteeHash, ctrVesting.Hash})
	e.DeployContract(t, ctrVesting, []any{e.CommitteeHash, ctrToken.Hash})

	return e.CommitteeInvoker(ctrVesting.Hash), e.CommitteeInvoker(ctrToken.Hash)
}

// newHODLToken registers the HODL symbol with the committee as issuer,
// fills the custody pool at the token contract and grants every listed
// holder the same allocation.
func newHODLToken(t *testing.T, c, ct *neotest.ContractInvoker, holders ...util.Uint160) {
	c.Invoke(t, stackitem.Null{}, "create", c.CommitteeHash, hodlSymbol, custody)
	ct.Invoke(t, stackitem.Null{}, "mint", c.Hash, hodlSymbol, custody)
	for _, h := range holders {
		c.Invoke(t, stackitem.Null{}, "issue", h, hodlSymbol, grant, "initial grant")
	}
}

func activateHODL(t *testing.T, c *neotest.ContractInvoker) int64 {
	start := int64(c.TopBlock(t).Timestamp) + 1000
	c.Invoke(t, stackitem.Null{}, "activate", hodlSymbol, start, start+window)
	return start
}

func checkAccount(t *testing.T, c *neotest.ContractInvoker, owner util.Uint160, balance, allocation, staked int64, claimed bool) {
	s, err := c.TestInvoke(t, "accountOf", owner, hodlSymbol)
	require.NoError(t, err)

	acc := s.Top().Array()
	require.Len(t, acc, 4)
	require.Equal(t, balance, acc[0].Value().(*big.Int).Int64())
	require.Equal(t, allocation, acc[1].Value().(*big.Int).Int64())
	require.Equal(t, staked, acc[2].Value().(*big.Int).Int64())

	got, err := acc[3].TryBool()
	require.NoError(t, err)
	require.Equal(t, claimed, got)
}

func TestCreate(t *testing.T) {
	c, _ := newVestingInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, "contract owner witness check failed", "create",
		c.CommitteeHash, hodlSymbol, custody)

	c.InvokeFail(t, "invalid symbol name", "create", c.CommitteeHash, "hodl", custody)
	c.InvokeFail(t, "invalid symbol name", "create", c.CommitteeHash, "TOOLONGS", custody)
	c.InvokeFail(t, "invalid symbol name", "create", c.CommitteeHash, "", custody)
	c.InvokeFail(t, "max supply must be positive", "create", c.CommitteeHash, hodlSymbol, 0)

	c.Invoke(t, stackitem.Null{}, "create", c.CommitteeHash, hodlSymbol, custody)
	c.InvokeFail(t, "token with symbol already exists", "create", c.CommitteeHash, hodlSymbol, custody)

	s, err := c.TestInvoke(t, "tokenInfo", hodlSymbol)
	require.NoError(t, err)
	info := s.Top().Array()
	require.Len(t, info, 6)
	require.Equal(t, int64(0), info[0].Value().(*big.Int).Int64())
	require.Equal(t, int64(custody), info[1].Value().(*big.Int).Int64())
	require.Equal(t, int64(0), info[2].Value().(*big.Int).Int64())
	issuer, err := info[3].TryBytes()
	require.NoError(t, err)
	require.Equal(t, c.CommitteeHash.BytesBE(), issuer)
	require.Equal(t, int64(0), info[4].Value().(*big.Int).Int64())
	require.Equal(t, int64(0), info[5].Value().(*big.Int).Int64())

	c.Invoke(t, custody, "maxSupplyOf", hodlSymbol)

	c.Invoke(t, 0, "totalSupply", "NONE")
	c.Invoke(t, 0, "maxSupplyOf", "NONE")
	c.Invoke(t, 0, "forfeitureOf", "NONE")
	c.InvokeFail(t, "token with symbol does not exist", "tokenInfo", "NONE")
}

func TestActivate(t *testing.T) {
	c, _ := newVestingInvoker(t)

	issuer := c.NewAccount(t)
	cIssuer := c.WithSigners(issuer)

	c.InvokeFail(t, "token with symbol does not exist", "activate", hodlSymbol, 1, 2)

	c.Invoke(t, stackitem.Null{}, "create", issuer.ScriptHash(), hodlSymbol, custody)

	start := int64(c.TopBlock(t).Timestamp) + 1000
	end := start + window

	c.InvokeFail(t, "issuer witness check failed", "activate", hodlSymbol, start, end)
	cIssuer.InvokeFail(t, "vesting start must be in the future", "activate",
		hodlSymbol, int64(c.TopBlock(t).Timestamp), end)
	cIssuer.InvokeFail(t, "vesting end must be later than vesting start", "activate",
		hodlSymbol, start, start)

	cIssuer.Invoke(t, stackitem.Null{}, "activate", hodlSymbol, start, end)

	// The window can be replaced until it opens.
	cIssuer.Invoke(t, stackitem.Null{}, "activate", hodlSymbol, start+500, end+500)

	s, err := c.TestInvoke(t, "tokenInfo", hodlSymbol)
	require.NoError(t, err)
	info := s.Top().Array()
	require.Equal(t, start+500, info[4].Value().(*big.Int).Int64())
	require.Equal(t, end+500, info[5].Value().(*big.Int).Int64())

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(start + 500),
		stackitem.Make(end + 500),
	}), "vestingPeriodOf", hodlSymbol)
}

func TestIssue(t *testing.T) {
	c, _ := newVestingInvoker(t)
	alice := c.NewAccount(t).ScriptHash()

	c.InvokeFail(t, "token with symbol does not exist", "issue", alice, hodlSymbol, grant, "")

	c.Invoke(t, stackitem.Null{}, "create", c.CommitteeHash, hodlSymbol, 3*grant)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, "issuer witness check failed", "issue",
		alice, hodlSymbol, grant, "")

	c.InvokeFail(t, "must issue positive amount", "issue", alice, hodlSymbol, 0, "")
	c.InvokeFail(t, "memo has more than 256 bytes", "issue",
		alice, hodlSymbol, grant, strings.Repeat("m", 257))
	c.InvokeFail(t, "amount exceeds available supply", "issue", alice, hodlSymbol, 4*grant, "")

	c.Invoke(t, stackitem.Null{}, "issue", alice, hodlSymbol, grant, strings.Repeat("m", 256))
	c.Invoke(t, grant, "totalSupply", hodlSymbol)
	checkAccount(t, c, alice, grant, grant, 0, false)

	// Later deposits top up the balance but never the allocation.
	c.Invoke(t, stackitem.Null{}, "issue", alice, hodlSymbol, grant, "top up")
	c.Invoke(t, 2*grant, "totalSupply", hodlSymbol)
	checkAccount(t, c, alice, 2*grant, grant, 0, false)

	c.Invoke(t, stackitem.Null{}, "issue", alice, hodlSymbol, grant, "")
	c.InvokeFail(t, "amount exceeds available supply", "issue", alice, hodlSymbol, 1, "")
}

func TestClaim(t *testing.T) {
	c, _ := newVestingInvoker(t)
	alice := c.NewAccount(t)
	aliceH := alice.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "create", c.CommitteeHash, hodlSymbol, custody)

	c.InvokeFail(t, "no balance object found", "claim", aliceH, hodlSymbol, c.CommitteeHash)

	c.Invoke(t, stackitem.Null{}, "issue", aliceH, hodlSymbol, grant, "")

	// The payer carries the invocation, the holder does not have to
	// witness anything.
	c.InvokeFail(t, "witness check failed", "claim", aliceH, hodlSymbol, aliceH)
	c.Invoke(t, stackitem.Null{}, "claim", aliceH, hodlSymbol, c.CommitteeHash)

	checkAccount(t, c, aliceH, grant, grant, 0, true)

	c.InvokeFail(t, "already claimed", "claim", aliceH, hodlSymbol, c.CommitteeHash)
	c.WithSigners(alice).InvokeFail(t, "already claimed", "claim", aliceH, hodlSymbol, aliceH)
}

func TestWithdrawRedistribution(t *testing.T) {
	c, ct := newVestingInvoker(t)
	alice := c.NewAccount(t)
	bob := c.NewAccount(t)
	aliceH, bobH := alice.ScriptHash(), bob.ScriptHash()

	newHODLToken(t, c, ct, aliceH, bobH)
	ct.WithSigners(alice).Invoke(t, stackitem.Null{}, "open", aliceH, hodlSymbol)
	ct.WithSigners(bob).Invoke(t, stackitem.Null{}, "open", bobH, hodlSymbol)

	start := activateHODL(t, c)

	// Halfway through the window alice takes the vested half of her
	// allocation out and abandons the other half to the pool.
	setNextTime(t, c, uint64(start)+window/2)
	c.WithSigners(alice).Invoke(t, stackitem.Null{}, "withdraw", aliceH, hodlSymbol)

	c.Invoke(t, 15_000_000, "totalSupply", hodlSymbol)
	c.Invoke(t, 5_000_000, "forfeitureOf", hodlSymbol)
	ct.Invoke(t, 5_000_000, "balanceOf", aliceH, hodlSymbol)

	// Withdraw is terminal, the account record is gone.
	c.Invoke(t, 0, "balanceOf", aliceH, hodlSymbol)
	c.Invoke(t, 0, "allocationOf", aliceH, hodlSymbol)
	c.WithSigners(alice).InvokeFail(t, "no balance object found", "withdraw", aliceH, hodlSymbol)

	// At the end of the window bob collects his full allocation plus
	// his pro rata share of what alice left behind.
	setNextTime(t, c, uint64(start)+window)
	c.WithSigners(bob).Invoke(t, stackitem.Null{}, "withdraw", bobH, hodlSymbol)

	c.Invoke(t, 1_666_667, "totalSupply", hodlSymbol)
	c.Invoke(t, 1_666_667, "forfeitureOf", hodlSymbol)
	ct.Invoke(t, 13_333_333, "balanceOf", bobH, hodlSymbol)
}

func TestWithdrawGuards(t *testing.T) {
	c, ct := newVestingInvoker(t)
	carol := c.NewAccount(t)
	dave := c.NewAccount(t)
	carolH, daveH := carol.ScriptHash(), dave.ScriptHash()

	newHODLToken(t, c, ct, carolH, daveH)
	cCarol := c.WithSigners(carol)

	c.InvokeFail(t, "holder witness check failed", "withdraw", carolH, hodlSymbol)
	cCarol.InvokeFail(t, "vesting has not started", "withdraw", carolH, hodlSymbol)

	cCarol.Invoke(t, stackitem.Null{}, "stake", carolH, "pool", "archive", hodlSymbol, 1_000_000)

	start := activateHODL(t, c)
	setNextTime(t, c, uint64(start)+window/2)

	cCarol.InvokeFail(t, "must fully unstake to withdraw", "withdraw", carolH, hodlSymbol)

	// Dave never opened a destination account with the token contract,
	// the failed payout leaves his record untouched.
	c.WithSigners(dave).InvokeFail(t, "no destination balance found", "withdraw", daveH, hodlSymbol)
	checkAccount(t, c, daveH, grant, grant, 0, false)
}

func TestWithdrawPastWindow(t *testing.T) {
	c, ct := newVestingInvoker(t)
	carol := c.NewAccount(t)
	carolH := carol.ScriptHash()

	newHODLToken(t, c, ct, carolH)
	ct.WithSigners(carol).Invoke(t, stackitem.Null{}, "open", carolH, hodlSymbol)

	start := activateHODL(t, c)

	// Nothing caps the elapsed fraction, a late withdrawal overdraws
	// the supply and drives the pool negative.
	setNextTime(t, c, uint64(start)+window+window/2)
	c.WithSigners(carol).Invoke(t, stackitem.Null{}, "withdraw", carolH, hodlSymbol)

	ct.Invoke(t, 15_000_000, "balanceOf", carolH, hodlSymbol)
	c.Invoke(t, -5_000_000, "totalSupply", hodlSymbol)
	c.Invoke(t, -5_000_000, "forfeitureOf", hodlSymbol)
}

func TestWithdrawDrainedSupply(t *testing.T) {
	c, ct := newVestingInvoker(t)
	alice := c.NewAccount(t)
	bob := c.NewAccount(t)
	aliceH, bobH := alice.ScriptHash(), bob.ScriptHash()

	newHODLToken(t, c, ct, aliceH, bobH)
	ct.WithSigners(alice).Invoke(t, stackitem.Null{}, "open", aliceH, hodlSymbol)

	start := activateHODL(t, c)

	// Twice past the window end alice's uncapped principal equals the
	// whole issued supply.
	setNextTime(t, c, uint64(start)+2*window)
	c.WithSigners(alice).Invoke(t, stackitem.Null{}, "withdraw", aliceH, hodlSymbol)

	ct.Invoke(t, 2*grant, "balanceOf", aliceH, hodlSymbol)
	c.Invoke(t, 0, "totalSupply", hodlSymbol)
	c.Invoke(t, -grant, "forfeitureOf", hodlSymbol)

	// Bob's share of the pool is undefined with no supply left, both
	// paths pricing through the vesting routine report that.
	c.WithSigners(bob).InvokeFail(t, "no issued supply left", "withdraw", bobH, hodlSymbol)
	c.WithSigners(bob).InvokeFail(t, "no issued supply left", "stake",
		bobH, "pool", "archive", hodlSymbol, 1)
	checkAccount(t, c, bobH, grant, grant, 0, false)
}

func TestStakeReserve(t *testing.T) {
	c, ct := newVestingInvoker(t)
	carol := c.NewAccount(t)
	carolH := carol.ScriptHash()

	newHODLToken(t, c, ct, carolH)
	cCarol := c.WithSigners(carol)

	c.InvokeFail(t, "holder witness check failed", "stake",
		carolH, "pool", "archive", hodlSymbol, 1)
	c.InvokeFail(t, "no balance object found", "stake",
		c.CommitteeHash, "pool", "archive", hodlSymbol, 1)

	// Before activation there is no bonus, the plain balance bounds
	// the reservation.
	cCarol.InvokeFail(t, "overdrawn balance", "stake",
		carolH, "pool", "archive", hodlSymbol, grant+1)
	checkAccount(t, c, carolH, grant, grant, 0, false)

	// The first stake also claims the account.
	cCarol.Invoke(t, stackitem.Null{}, "stake", carolH, "pool", "archive", hodlSymbol, 4_000_000)
	checkAccount(t, c, carolH, 6_000_000, grant, 4_000_000, true)
	ct.Invoke(t, 4_000_000, "stakedOf", c.Hash, carolH, hodlSymbol)

	cCarol.InvokeFail(t, "overdrawn balance", "stake",
		carolH, "pool", "archive", hodlSymbol, 7_000_000)
	checkAccount(t, c, carolH, 6_000_000, grant, 4_000_000, true)
}

func TestStakeBonus(t *testing.T) {
	c, ct := newVestingInvoker(t)
	alice := c.NewAccount(t)
	bob := c.NewAccount(t)
	aliceH, bobH := alice.ScriptHash(), bob.ScriptHash()

	newHODLToken(t, c, ct, aliceH, bobH)
	ct.WithSigners(alice).Invoke(t, stackitem.Null{}, "open", aliceH, hodlSymbol)

	start := activateHODL(t, c)

	setNextTime(t, c, uint64(start)+window/2)
	c.WithSigners(alice).Invoke(t, stackitem.Null{}, "withdraw", aliceH, hodlSymbol)

	// Three quarters in, bob's accrued pool share lets him pledge
	// more than his booked balance.
	setNextTime(t, c, uint64(start)+3*window/4)
	c.WithSigners(bob).Invoke(t, stackitem.Null{}, "stake",
		bobH, "pool", "archive", hodlSymbol, 12_000_000)
	checkAccount(t, c, bobH, 500_000, grant, 12_000_000, true)
	ct.Invoke(t, 12_000_000, "stakedOf", c.Hash, bobH, hodlSymbol)
}

func TestStakeRollback(t *testing.T) {
	c, ct := newVestingInvoker(t)
	carol := c.NewAccount(t)
	carolH := carol.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "create", c.CommitteeHash, hodlSymbol, custody)
	c.Invoke(t, stackitem.Null{}, "issue", carolH, hodlSymbol, grant, "")

	// The custody pool is short, the failed pledge must take the
	// reservation down with it.
	ct.Invoke(t, stackitem.Null{}, "mint", c.Hash, hodlSymbol, 1_000_000)

	c.WithSigners(carol).InvokeFail(t, "stakeTo: not enough assets", "stake",
		carolH, "pool", "archive", hodlSymbol, 5_000_000)
	checkAccount(t, c, carolH, grant, grant, 0, false)
	ct.Invoke(t, 0, "stakedOf", c.Hash, carolH, hodlSymbol)
}

func TestUnstakeRefund(t *testing.T) {
	c, ct := newVestingInvoker(t)
	carol := c.NewAccount(t)
	carolH := carol.ScriptHash()

	newHODLToken(t, c, ct, carolH)
	cCarol := c.WithSigners(carol)

	cCarol.Invoke(t, stackitem.Null{}, "stake", carolH, "pool", "archive", hodlSymbol, 6_000_000)

	c.InvokeFail(t, "holder witness check failed", "unstake",
		carolH, "pool", "archive", hodlSymbol, 2_000_000)
	cCarol.InvokeFail(t, "unstakeTo: overdrawn stake", "unstake",
		carolH, "pool", "archive", hodlSymbol, 7_000_000)

	cCarol.Invoke(t, stackitem.Null{}, "unstake", carolH, "pool", "archive", hodlSymbol, 2_000_000)

	// The released tokens are in flight until the refund completes,
	// the ledger still counts them as staked.
	checkAccount(t, c, carolH, 4_000_000, grant, 6_000_000, true)
	ct.Invoke(t, 4_000_000, "stakedOf", c.Hash, carolH, hodlSymbol)
	ct.Invoke(t, 2_000_000, "refundableOf", c.Hash, carolH, hodlSymbol)

	// Anyone can complete a pending refund.
	c.Invoke(t, stackitem.Null{}, "refund", carolH, "pool", "archive", hodlSymbol)
	checkAccount(t, c, carolH, 6_000_000, grant, 4_000_000, true)
	ct.Invoke(t, 0, "refundableOf", c.Hash, carolH, hodlSymbol)
	ct.Invoke(t, custody-6_000_000+2_000_000, "balanceOf", c.Hash, hodlSymbol)

	c.InvokeFail(t, "refundTo: nothing to refund", "refund", carolH, "pool", "archive", hodlSymbol)
}

func TestOnReceipt(t *testing.T) {
	c, ct := newVestingInvoker(t)
	bob := c.NewAccount(t)
	bobH := bob.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "create", c.CommitteeHash, hodlSymbol, custody)

	c.InvokeFail(t, "onReceipt: caller is not the token contract", "onReceipt",
		c.Hash, bobH, hodlSymbol, 1)

	// Receipts for tokens this contract never pledged are ignored.
	ct.Invoke(t, stackitem.Null{}, "mint", bobH, hodlSymbol, 5_000_000)
	ctBob := ct.WithSigners(bob)
	ctBob.Invoke(t, stackitem.Null{}, "stakeTo", bobH, bobH, "pool", "archive", hodlSymbol, 5_000_000)
	ctBob.Invoke(t, stackitem.Null{}, "unstakeTo", bobH, bobH, "pool", "archive", hodlSymbol, 5_000_000)
	ct.Invoke(t, stackitem.Null{}, "refundTo", bobH, bobH, "pool", "archive", hodlSymbol)

	checkAccount(t, c, bobH, 0, 0, 0, false)
	ct.Invoke(t, 5_000_000, "balanceOf", bobH, hodlSymbol)
}

func TestVestedOf(t *testing.T) {
	c, ct := newVestingInvoker(t)
	carol := c.NewAccount(t)
	carolH := carol.ScriptHash()

	newHODLToken(t, c, ct, carolH)

	checkVested := func(owner util.Uint160, principal, bonus int64) {
		s, err := c.TestInvoke(t, "vestedOf", owner, hodlSymbol)
		require.NoError(t, err)
		v := s.Top().Array()
		require.Len(t, v, 2)
		require.Equal(t, principal, v[0].Value().(*big.Int).Int64())
		require.Equal(t, bonus, v[1].Value().(*big.Int).Int64())
	}

	// No window yet.
	checkVested(carolH, 0, 0)

	start := activateHODL(t, c)

	setNextTime(t, c, uint64(start)+window/4)
	checkVested(carolH, 2_500_000, 0)
	checkVested(c.CommitteeHash, 0, 0)
}

func TestAccountsIterator(t *testing.T) {
	c, ct := newVestingInvoker(t)
	alice := c.NewAccount(t).ScriptHash()
	bob := c.NewAccount(t).ScriptHash()
	carol := c.NewAccount(t).ScriptHash()

	newHODLToken(t, c, ct, alice, bob)

	// A symbol extending another one keyed right next to it must not
	// bleed into the shorter symbol's enumeration.
	longSymbol := hodlSymbol + "X"
	c.Invoke(t, stackitem.Null{}, "create", c.CommitteeHash, longSymbol, custody)
	c.Invoke(t, stackitem.Null{}, "issue", carol, longSymbol, grant, "")

	accountsOf := func(symbol string) []stackitem.Item {
		s, err := c.TestInvoke(t, "accounts", symbol)
		require.NoError(t, err)
		return iteratorToArray(s.Pop().Value().(*storage.Iterator))
	}

	items := accountsOf(hodlSymbol)
	require.Len(t, items, 2)
	for _, item := range items {
		kv := item.Value().([]stackitem.Item)
		require.Len(t, kv, 2)

		owner, err := kv[0].TryBytes()
		require.NoError(t, err)
		require.Len(t, owner, util.Uint160Size)
		require.NotEqual(t, carol.BytesBE(), owner)

		acc := kv[1].Value().([]stackitem.Item)
		require.Len(t, acc, 4)
		require.Equal(t, int64(grant), acc[0].Value().(*big.Int).Int64())
		require.Equal(t, int64(grant), acc[1].Value().(*big.Int).Int64())
	}

	items = accountsOf(longSymbol)
	require.Len(t, items, 1)
	owner, err := items[0].Value().([]stackitem.Item)[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, carol.BytesBE(), owner)
}

func TestDecimals(t *testing.T) {
	c, _ := newVestingInvoker(t)

	c.Invoke(t, 4, "decimals")
}

func TestUpdateAccess(t *testing.T) {
	c, _ := newVestingInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, "only the contract owner can update contract", "update",
		[]byte{}, []byte{}, nil)
}

/*
Vesting contract is a token-vesting ledger with a shared forfeiture pool.

For every registered symbol the contract tracks issued supply, an issue
cap and a pool of forfeited tokens, and for every holder a spendable
balance, the original vesting grant and the amount pledged to the staking
service of an external token contract. Payouts vest linearly over a
per-symbol window. A holder who withdraws before the window ends forfeits
the unvested remainder of the grant into the pool, and the pool is paid
out to later withdrawers in proportion to their share of the supply.

Withdrawal erases the holder account: the contract keeps no payout
history, a holder re-enters only through a new issue. Stake reservations
go through the same vesting arithmetic as withdrawals, so the amount
available for staking includes the bonus accrued so far.

The external token contract executes transfers and staking. Its requests
run in the same transaction as the local bookkeeping, so a rejected
transfer or pledge rolls the whole operation back.

# Contract notifications

Create notification. Produced when a new symbol is registered.

	Create:
	  - name: symbol
	    type: String
	  - name: issuer
	    type: Hash160
	  - name: maxSupply
	    type: Integer

Activate notification. Produced when the vesting window of a symbol is
set.

	Activate:
	  - name: symbol
	    type: String
	  - name: start
	    type: Integer
	  - name: end
	    type: Integer

Issue notification. Produced when tokens are minted to a holder.

	Issue:
	  - name: to
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer

Claim notification. Produced when a holder account migrates to the
claimed state, either explicitly or on its first stake.

	Claim:
	  - name: owner
	    type: Hash160
	  - name: symbol
	    type: String

Withdraw notification. Produced when a holder cashes out the vested part
of the grant and the account is erased.

	Withdraw:
	  - name: owner
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer

Stake notification. Produced when a stake reservation has been pledged to
the token contract.

	Stake:
	  - name: owner
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer

Release notification. Produced when a completed unstake returns pledged
tokens to the spendable balance.

	Release:
	  - name: owner
	    type: Hash160
	  - name: symbol
	    type: String
	  - name: amount
	    type: Integer
*/
package vesting

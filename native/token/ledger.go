package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Ledger is an in-process fungible token with ERC20-equivalent semantics:
// balances, transfers, and allowance-gated third-party transfers. Every
// mutating call either applies fully or returns an error with no state change.
type Ledger struct {
	name       string
	symbol     string
	balances   map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]*big.Int
}

// NewLedger constructs an empty ledger identified by name and symbol.
func NewLedger(name, symbol string) *Ledger {
	return &Ledger{
		name:       name,
		symbol:     symbol,
		balances:   make(map[common.Address]*big.Int),
		allowances: make(map[common.Address]map[common.Address]*big.Int),
	}
}

// Name returns the token name.
func (l *Ledger) Name() string { return l.name }

// Symbol returns the token symbol.
func (l *Ledger) Symbol() string { return l.symbol }

// BalanceOf returns a copy of the balance held by addr.
func (l *Ledger) BalanceOf(addr common.Address) *big.Int {
	if bal, ok := l.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return big.NewInt(0)
}

// Allowance returns a copy of the amount spender may move out of owner's
// balance.
func (l *Ledger) Allowance(owner, spender common.Address) *big.Int {
	if granted, ok := l.allowances[owner]; ok {
		if amount, ok := granted[spender]; ok {
			return new(big.Int).Set(amount)
		}
	}
	return big.NewInt(0)
}

// Mint credits amount to the recipient. Balances are capped at 256 bits to
// match the wire representation of token amounts.
func (l *Ledger) Mint(to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	next := new(big.Int).Add(l.BalanceOf(to), amount)
	if _, overflow := uint256.FromBig(next); overflow {
		return ErrBalanceOverflow
	}
	l.balances[to] = next
	return nil
}

// Transfer moves amount from the caller's balance to the recipient. It fails
// with ErrInsufficientBalance when the sender holds less than amount.
func (l *Ledger) Transfer(from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	fromBal := l.BalanceOf(from)
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	// A self-transfer is a funded no-op; taking the add/sub path below would
	// apply both legs to independent copies of the same balance.
	if from == to {
		return nil
	}
	toBal := new(big.Int).Add(l.BalanceOf(to), amount)
	if _, overflow := uint256.FromBig(toBal); overflow {
		return ErrBalanceOverflow
	}
	l.balances[from] = fromBal.Sub(fromBal, amount)
	l.balances[to] = toBal
	return nil
}

// Approve grants spender the right to move up to amount out of owner's
// balance via TransferFrom. A fresh approval replaces any prior grant.
func (l *Ledger) Approve(owner, spender common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	granted, ok := l.allowances[owner]
	if !ok {
		granted = make(map[common.Address]*big.Int)
		l.allowances[owner] = granted
	}
	granted[spender] = new(big.Int).Set(amount)
	return nil
}

// TransferFrom moves amount from owner to the recipient on behalf of spender,
// consuming the spender's allowance. Both the balance and the allowance are
// checked before any mutation.
func (l *Ledger) TransferFrom(spender, owner, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	remaining := l.Allowance(owner, spender)
	if remaining.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := l.Transfer(owner, to, amount); err != nil {
		return err
	}
	// The owner may have no materialised allowance map when amount is zero;
	// there is nothing to consume in that case.
	if granted, ok := l.allowances[owner]; ok {
		granted[spender] = remaining.Sub(remaining, amount)
	}
	return nil
}

package rewards

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Program is the singleton reward schedule for the staking pool. All
// timestamps are unix seconds; RewardPerTokenStored carries the 1e18 scale
// factor applied by the accrual arithmetic.
type Program struct {
	Duration             uint64
	FinishAt             uint64
	UpdatedAt            uint64
	RewardRate           *big.Int
	RewardPerTokenStored *big.Int
	TotalStaked          *big.Int
}

// Clone returns a deep copy of the program.
func (p *Program) Clone() *Program {
	if p == nil {
		return nil
	}
	clone := &Program{
		Duration:  p.Duration,
		FinishAt:  p.FinishAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.RewardRate != nil {
		clone.RewardRate = new(big.Int).Set(p.RewardRate)
	}
	if p.RewardPerTokenStored != nil {
		clone.RewardPerTokenStored = new(big.Int).Set(p.RewardPerTokenStored)
	}
	if p.TotalStaked != nil {
		clone.TotalStaked = new(big.Int).Set(p.TotalStaked)
	}
	return clone
}

// Checkpoint is the per-account accrual snapshot: the staked principal, the
// accrued-but-unclaimed reward, and the reward-per-token value observed at the
// account's last interaction.
type Checkpoint struct {
	Account            common.Address
	Stake              *big.Int
	Rewards            *big.Int
	RewardPerTokenPaid *big.Int
}

// Clone returns a deep copy of the checkpoint.
func (c *Checkpoint) Clone() *Checkpoint {
	if c == nil {
		return nil
	}
	clone := &Checkpoint{Account: c.Account}
	if c.Stake != nil {
		clone.Stake = new(big.Int).Set(c.Stake)
	}
	if c.Rewards != nil {
		clone.Rewards = new(big.Int).Set(c.Rewards)
	}
	if c.RewardPerTokenPaid != nil {
		clone.RewardPerTokenPaid = new(big.Int).Set(c.RewardPerTokenPaid)
	}
	return clone
}

// TokenLedger is the external fungible token collaborator. Transfers follow
// ERC20 semantics: they either apply fully or fail without mutating balances.
type TokenLedger interface {
	BalanceOf(addr common.Address) *big.Int
	Transfer(from, to common.Address, amount *big.Int) error
	TransferFrom(spender, owner, to common.Address, amount *big.Int) error
}

// ProgramState abstracts the persistence layer holding the reward program and
// the per-account checkpoints. Implementations return deep copies so callers
// can mutate freely and commit via the Put methods.
type ProgramState interface {
	Program() (*Program, error)
	PutProgram(program *Program) error
	Checkpoint(addr common.Address) (*Checkpoint, error)
	PutCheckpoint(checkpoint *Checkpoint) error
}

package rewards

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Program returns a copy of the current reward program state.
func (e *Engine) Program() (*Program, error) {
	return e.loadProgram()
}

// Duration returns the configured reward period length in seconds.
func (e *Engine) Duration() (uint64, error) {
	program, err := e.loadProgram()
	if err != nil {
		return 0, err
	}
	return program.Duration, nil
}

// FinishAt returns the unix timestamp at which the current period ends.
func (e *Engine) FinishAt() (uint64, error) {
	program, err := e.loadProgram()
	if err != nil {
		return 0, err
	}
	return program.FinishAt, nil
}

// UpdatedAt returns the timestamp of the last accrual checkpoint.
func (e *Engine) UpdatedAt() (uint64, error) {
	program, err := e.loadProgram()
	if err != nil {
		return 0, err
	}
	return program.UpdatedAt, nil
}

// RewardRate returns the per-second emission rate of the current period.
func (e *Engine) RewardRate() (*big.Int, error) {
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(program.RewardRate), nil
}

// RewardPerTokenStored returns the stored cumulative reward-per-token value.
func (e *Engine) RewardPerTokenStored() (*big.Int, error) {
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(program.RewardPerTokenStored), nil
}

// TotalStaked returns the sum of all staked balances.
func (e *Engine) TotalStaked() (*big.Int, error) {
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(program.TotalStaked), nil
}

// BalanceOf returns the staked principal held by addr.
func (e *Engine) BalanceOf(addr common.Address) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	cp, err := e.loadCheckpoint(addr)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(cp.Stake), nil
}

// Rewards returns the accrued-but-unclaimed reward recorded at the account's
// last checkpoint. Earned includes accrual since then; this does not.
func (e *Engine) Rewards(addr common.Address) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	cp, err := e.loadCheckpoint(addr)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(cp.Rewards), nil
}

// UserRewardPerTokenPaid returns the reward-per-token marker captured at the
// account's last interaction.
func (e *Engine) UserRewardPerTokenPaid(addr common.Address) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	cp, err := e.loadCheckpoint(addr)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(cp.RewardPerTokenPaid), nil
}

// LastTimeRewardApplicable returns the lesser of the current time and the end
// of the funded period.
func (e *Engine) LastTimeRewardApplicable() (uint64, error) {
	program, err := e.loadProgram()
	if err != nil {
		return 0, err
	}
	return lastApplicable(program, e.timestamp()), nil
}

// RewardPerToken returns the cumulative reward-per-token extended to now.
func (e *Engine) RewardPerToken() (*big.Int, error) {
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	return rewardPerTokenAt(program, e.timestamp()), nil
}

// Earned returns the reward addr would receive from a claim at the current
// time. Pure read; no checkpoint is advanced.
func (e *Engine) Earned(addr common.Address) (*big.Int, error) {
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	cp, err := e.loadCheckpoint(addr)
	if err != nil {
		return nil, err
	}
	return earnedAt(cp, rewardPerTokenAt(program, e.timestamp())), nil
}

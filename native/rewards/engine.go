package rewards

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"stakerewards/core/events"
)

// Scale is the fixed-point factor applied to reward-per-token values so that
// integer division over small rates and large supplies keeps precision.
var Scale = big.NewInt(1_000_000_000_000_000_000)

// Engine is the reward accrual state machine: a pro-rata, time-weighted
// distribution of a reward token across staked principal. Every mutating
// entry point replays the accrual checkpoint before touching the ledgers, and
// either commits fully or leaves the state untouched.
type Engine struct {
	owner        common.Address
	pool         common.Address
	stakingToken TokenLedger
	rewardsToken TokenLedger
	state        ProgramState
	emitter      events.Emitter
	nowFunc      func() time.Time
}

// NewEngine constructs an engine custodying tokens under the pool address and
// administered by owner.
func NewEngine(owner, pool common.Address, stakingToken, rewardsToken TokenLedger) *Engine {
	return &Engine{
		owner:        owner,
		pool:         pool,
		stakingToken: stakingToken,
		rewardsToken: rewardsToken,
		nowFunc:      time.Now,
	}
}

// SetState wires the engine to the persistence layer.
func (e *Engine) SetState(state ProgramState) { e.state = state }

// SetEmitter wires an event sink. A nil emitter disables event emission.
func (e *Engine) SetEmitter(emitter events.Emitter) { e.emitter = emitter }

// SetNowFunc overrides the clock. Tests inject deterministic timestamps here;
// the host binary leaves the default in place.
func (e *Engine) SetNowFunc(now func() time.Time) {
	if now != nil {
		e.nowFunc = now
	}
}

// Owner returns the administrator address.
func (e *Engine) Owner() common.Address { return e.owner }

// PoolAddress returns the custody address holding staked and reward tokens.
func (e *Engine) PoolAddress() common.Address { return e.pool }

// StakingToken returns the principal token ledger.
func (e *Engine) StakingToken() TokenLedger { return e.stakingToken }

// RewardsToken returns the payout token ledger.
func (e *Engine) RewardsToken() TokenLedger { return e.rewardsToken }

func (e *Engine) timestamp() uint64 {
	return uint64(e.nowFunc().UTC().Unix())
}

func (e *Engine) emit(evt events.Event) {
	if e.emitter != nil {
		e.emitter.Emit(evt)
	}
}

func (e *Engine) loadProgram() (*Program, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	program, err := e.state.Program()
	if err != nil {
		return nil, err
	}
	if program == nil {
		program = &Program{}
	}
	if program.RewardRate == nil {
		program.RewardRate = big.NewInt(0)
	}
	if program.RewardPerTokenStored == nil {
		program.RewardPerTokenStored = big.NewInt(0)
	}
	if program.TotalStaked == nil {
		program.TotalStaked = big.NewInt(0)
	}
	return program, nil
}

func (e *Engine) loadCheckpoint(addr common.Address) (*Checkpoint, error) {
	cp, err := e.state.Checkpoint(addr)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		cp = &Checkpoint{Account: addr}
	}
	if cp.Stake == nil {
		cp.Stake = big.NewInt(0)
	}
	if cp.Rewards == nil {
		cp.Rewards = big.NewInt(0)
	}
	if cp.RewardPerTokenPaid == nil {
		cp.RewardPerTokenPaid = big.NewInt(0)
	}
	return cp, nil
}

// lastApplicable bounds accrual at the end of the funded period.
func lastApplicable(program *Program, now uint64) uint64 {
	if now < program.FinishAt {
		return now
	}
	return program.FinishAt
}

// rewardPerTokenAt extends the stored cumulative reward-per-token up to now.
// With nothing staked the stored checkpoint is frozen: no time passes for the
// distribution and the division by supply is never taken.
func rewardPerTokenAt(program *Program, now uint64) *big.Int {
	stored := new(big.Int).Set(program.RewardPerTokenStored)
	if program.TotalStaked.Sign() == 0 {
		return stored
	}
	last := lastApplicable(program, now)
	if last <= program.UpdatedAt {
		return stored
	}
	elapsed := new(big.Int).SetUint64(last - program.UpdatedAt)
	accrued := new(big.Int).Mul(elapsed, program.RewardRate)
	accrued.Mul(accrued, Scale)
	accrued.Quo(accrued, program.TotalStaked)
	return stored.Add(stored, accrued)
}

// earnedAt values the checkpoint's stake against the supplied reward-per-token
// figure and folds in any already accrued reward.
func earnedAt(cp *Checkpoint, rewardPerToken *big.Int) *big.Int {
	delta := new(big.Int).Sub(rewardPerToken, cp.RewardPerTokenPaid)
	earned := new(big.Int).Mul(cp.Stake, delta)
	earned.Quo(earned, Scale)
	return earned.Add(earned, cp.Rewards)
}

// updateReward freezes the global accrual into the program and, when cp is
// non-nil, credits the account's earned reward and re-anchors its paid marker.
// The global freeze must complete before any ledger balance changes, otherwise
// a balance mutation would retroactively reprice un-checkpointed accrual.
func updateReward(program *Program, cp *Checkpoint, now uint64) {
	rpt := rewardPerTokenAt(program, now)
	program.RewardPerTokenStored = rpt
	program.UpdatedAt = lastApplicable(program, now)
	if cp != nil {
		cp.Rewards = earnedAt(cp, rpt)
		cp.RewardPerTokenPaid = new(big.Int).Set(rpt)
	}
}

// Stake pulls amount of the staking token from the caller into the pool and
// credits their staked balance. The updated checkpoint is returned.
func (e *Engine) Stake(caller common.Address, amount *big.Int) (*Checkpoint, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	cp, err := e.loadCheckpoint(caller)
	if err != nil {
		return nil, err
	}
	updateReward(program, cp, e.timestamp())

	cp.Stake = new(big.Int).Add(cp.Stake, amount)
	program.TotalStaked = new(big.Int).Add(program.TotalStaked, amount)

	// The pull can fail on balance or allowance; nothing has been committed
	// at this point so the failed call leaves no trace.
	if err := e.stakingToken.TransferFrom(e.pool, caller, e.pool, amount); err != nil {
		return nil, err
	}
	if err := e.state.PutCheckpoint(cp); err != nil {
		return nil, err
	}
	if err := e.state.PutProgram(program); err != nil {
		return nil, err
	}
	e.emit(events.Staked{
		Account:     caller,
		Amount:      new(big.Int).Set(amount),
		NewBalance:  new(big.Int).Set(cp.Stake),
		TotalStaked: new(big.Int).Set(program.TotalStaked),
	})
	return cp, nil
}

// Withdraw returns amount of the staking token to the caller and debits their
// staked balance. The updated checkpoint is returned.
func (e *Engine) Withdraw(caller common.Address, amount *big.Int) (*Checkpoint, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	cp, err := e.loadCheckpoint(caller)
	if err != nil {
		return nil, err
	}
	updateReward(program, cp, e.timestamp())

	if cp.Stake.Cmp(amount) < 0 {
		return nil, ErrInsufficientBalance
	}
	cp.Stake = new(big.Int).Sub(cp.Stake, amount)
	program.TotalStaked = new(big.Int).Sub(program.TotalStaked, amount)

	if err := e.stakingToken.Transfer(e.pool, caller, amount); err != nil {
		return nil, err
	}
	if err := e.state.PutCheckpoint(cp); err != nil {
		return nil, err
	}
	if err := e.state.PutProgram(program); err != nil {
		return nil, err
	}
	e.emit(events.Withdrawn{
		Account:     caller,
		Amount:      new(big.Int).Set(amount),
		NewBalance:  new(big.Int).Set(cp.Stake),
		TotalStaked: new(big.Int).Set(program.TotalStaked),
	})
	return cp, nil
}

// ClaimReward pays out the caller's accrued reward and resets it to zero. The
// owed amount is zeroed before the token transfer runs, and nothing commits on
// a failed transfer, so a payout happens at most once. Claiming with nothing
// owed is a successful no-op returning zero.
func (e *Engine) ClaimReward(caller common.Address) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	program, err := e.loadProgram()
	if err != nil {
		return nil, err
	}
	cp, err := e.loadCheckpoint(caller)
	if err != nil {
		return nil, err
	}
	updateReward(program, cp, e.timestamp())

	paid := new(big.Int).Set(cp.Rewards)
	if paid.Sign() == 0 {
		if err := e.state.PutCheckpoint(cp); err != nil {
			return nil, err
		}
		if err := e.state.PutProgram(program); err != nil {
			return nil, err
		}
		return big.NewInt(0), nil
	}

	cp.Rewards = big.NewInt(0)
	if err := e.rewardsToken.Transfer(e.pool, caller, paid); err != nil {
		return nil, err
	}
	if err := e.state.PutCheckpoint(cp); err != nil {
		return nil, err
	}
	if err := e.state.PutProgram(program); err != nil {
		return nil, err
	}
	e.emit(events.RewardPaid{Account: caller, Amount: new(big.Int).Set(paid)})
	return paid, nil
}

// SetRewardsDuration changes the length of future reward periods. It is
// rejected while a funded period is still running because the stored rate
// assumes the cadence it was derived from.
func (e *Engine) SetRewardsDuration(caller common.Address, duration uint64) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrNotAuthorized
	}
	program, err := e.loadProgram()
	if err != nil {
		return err
	}
	if e.timestamp() < program.FinishAt {
		return ErrRewardPeriodActive
	}
	program.Duration = duration
	if err := e.state.PutProgram(program); err != nil {
		return err
	}
	e.emit(events.RewardsDurationUpdated{Duration: duration})
	return nil
}

// NotifyRewardAmount funds a reward period of the configured duration starting
// now. A mid-period top-up rolls the undistributed remainder of the current
// period into the new rate. The derived rate uses truncating division; the
// dust stays with the pool.
func (e *Engine) NotifyRewardAmount(caller common.Address, amount *big.Int) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrNotAuthorized
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	program, err := e.loadProgram()
	if err != nil {
		return err
	}
	now := e.timestamp()
	updateReward(program, nil, now)

	if program.Duration == 0 {
		return ErrZeroRewardRate
	}
	duration := new(big.Int).SetUint64(program.Duration)
	rate := new(big.Int)
	if now >= program.FinishAt {
		rate.Quo(amount, duration)
	} else {
		remaining := new(big.Int).SetUint64(program.FinishAt - now)
		remaining.Mul(remaining, program.RewardRate)
		rate.Add(amount, remaining)
		rate.Quo(rate, duration)
	}
	if rate.Sign() == 0 {
		return ErrZeroRewardRate
	}
	promised := new(big.Int).Mul(rate, duration)
	if promised.Cmp(e.rewardsToken.BalanceOf(e.pool)) > 0 {
		return ErrInsufficientFunding
	}

	program.RewardRate = rate
	program.FinishAt = now + program.Duration
	program.UpdatedAt = now
	if err := e.state.PutProgram(program); err != nil {
		return err
	}
	e.emit(events.RewardAdded{
		Amount:   new(big.Int).Set(amount),
		Rate:     new(big.Int).Set(rate),
		FinishAt: program.FinishAt,
	})
	return nil
}

package rewards

import "errors"

var (
	ErrNilState            = errors.New("rewards: state not configured")
	ErrInvalidAmount       = errors.New("rewards: amount must be positive")
	ErrInsufficientBalance = errors.New("rewards: withdraw exceeds staked balance")
	ErrNotAuthorized       = errors.New("rewards: caller is not the owner")
	ErrRewardPeriodActive  = errors.New("rewards: reward period still active")
	ErrZeroRewardRate      = errors.New("rewards: reward rate is zero")
	ErrInsufficientFunding = errors.New("rewards: promised emission exceeds reward balance")
)

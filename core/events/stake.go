package events

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// TypeStaked captures principal deposited into the staking pool.
	TypeStaked = "stake.staked"
	// TypeWithdrawn captures principal returned to a staker.
	TypeWithdrawn = "stake.withdrawn"
	// TypeRewardPaid is emitted when accrued rewards are claimed and paid out.
	TypeRewardPaid = "stake.rewardPaid"
	// TypeRewardAdded signals that the administrator funded a reward period.
	TypeRewardAdded = "stake.rewardAdded"
	// TypeDurationUpdated signals a change to the reward period cadence.
	TypeDurationUpdated = "stake.durationUpdated"
)

// Staked captures a stake deposit and the resulting pool totals.
type Staked struct {
	Account     common.Address
	Amount      *big.Int
	NewBalance  *big.Int
	TotalStaked *big.Int
}

// EventType satisfies the Event interface.
func (Staked) EventType() string { return TypeStaked }

// Record converts the structured payload into a broadcastable record.
func (e Staked) Record() *Record {
	attrs := map[string]string{
		"addr":   e.Account.Hex(),
		"amount": formatAmount(e.Amount),
	}
	if e.NewBalance != nil {
		attrs["newBalance"] = e.NewBalance.String()
	}
	if e.TotalStaked != nil {
		attrs["totalStaked"] = e.TotalStaked.String()
	}
	return &Record{Type: TypeStaked, Attributes: attrs}
}

// Withdrawn captures principal leaving the staking pool.
type Withdrawn struct {
	Account     common.Address
	Amount      *big.Int
	NewBalance  *big.Int
	TotalStaked *big.Int
}

// EventType satisfies the Event interface.
func (Withdrawn) EventType() string { return TypeWithdrawn }

// Record converts the structured payload into a broadcastable record.
func (e Withdrawn) Record() *Record {
	attrs := map[string]string{
		"addr":   e.Account.Hex(),
		"amount": formatAmount(e.Amount),
	}
	if e.NewBalance != nil {
		attrs["newBalance"] = e.NewBalance.String()
	}
	if e.TotalStaked != nil {
		attrs["totalStaked"] = e.TotalStaked.String()
	}
	return &Record{Type: TypeWithdrawn, Attributes: attrs}
}

// RewardPaid captures a reward payout to a staker.
type RewardPaid struct {
	Account common.Address
	Amount  *big.Int
}

// EventType satisfies the Event interface.
func (RewardPaid) EventType() string { return TypeRewardPaid }

// Record converts the structured payload into a broadcastable record.
func (e RewardPaid) Record() *Record {
	return &Record{Type: TypeRewardPaid, Attributes: map[string]string{
		"addr":   e.Account.Hex(),
		"amount": formatAmount(e.Amount),
	}}
}

// RewardAdded captures a funded reward period and the derived emission rate.
type RewardAdded struct {
	Amount   *big.Int
	Rate     *big.Int
	FinishAt uint64
}

// EventType satisfies the Event interface.
func (RewardAdded) EventType() string { return TypeRewardAdded }

// Record converts the structured payload into a broadcastable record.
func (e RewardAdded) Record() *Record {
	attrs := map[string]string{
		"amount": formatAmount(e.Amount),
	}
	if e.Rate != nil {
		attrs["rate"] = e.Rate.String()
	}
	if e.FinishAt > 0 {
		attrs["finishAt"] = strconv.FormatUint(e.FinishAt, 10)
	}
	return &Record{Type: TypeRewardAdded, Attributes: attrs}
}

// RewardsDurationUpdated captures a cadence change between reward periods.
type RewardsDurationUpdated struct {
	Duration uint64
}

// EventType satisfies the Event interface.
func (RewardsDurationUpdated) EventType() string { return TypeDurationUpdated }

// Record converts the structured payload into a broadcastable record.
func (e RewardsDurationUpdated) Record() *Record {
	return &Record{Type: TypeDurationUpdated, Attributes: map[string]string{
		"duration": strconv.FormatUint(e.Duration, 10),
	}}
}

func formatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

package rewards

import (
	"math/big"
	"testing"
	"time"
)

func TestSingleStakerAccruesLinearly(t *testing.T) {
	v := newEnv(t)
	staker := makeAddr(0x10)
	v.stake(staker, tokens(5))
	v.fund(tokens(100), weekSeconds)
	rate := mustBig(t)(v.engine.RewardRate())

	v.advance(24 * time.Hour)
	want := new(big.Int).Mul(rate, big.NewInt(24*60*60))
	if earned := mustBig(t)(v.engine.Earned(staker)); earned.Cmp(want) != 0 {
		t.Fatalf("earned after one day: got %s want %s", earned, want)
	}

	v.advance(24 * time.Hour)
	want.Mul(rate, big.NewInt(2*24*60*60))
	if earned := mustBig(t)(v.engine.Earned(staker)); earned.Cmp(want) != 0 {
		t.Fatalf("earned after two days: got %s want %s", earned, want)
	}
}

func TestAccrualSplitsProRata(t *testing.T) {
	v := newEnv(t)
	alice := makeAddr(0x10)
	bob := makeAddr(0x11)
	v.stake(alice, tokens(1))
	v.stake(bob, tokens(3))
	funded := tokens(100)
	v.fund(funded, weekSeconds)

	v.advance(weekSeconds * time.Second)
	earnedAlice := mustBig(t)(v.engine.Earned(alice))
	earnedBob := mustBig(t)(v.engine.Earned(bob))

	// Both positions read the same per-token index, so a 1:3 stake split
	// yields an exact 1:3 reward split.
	wantBob := new(big.Int).Mul(earnedAlice, big.NewInt(3))
	if earnedBob.Cmp(wantBob) != 0 {
		t.Fatalf("pro-rata split: alice %s bob %s", earnedAlice, earnedBob)
	}

	combined := new(big.Int).Add(earnedAlice, earnedBob)
	if combined.Cmp(funded) > 0 {
		t.Fatalf("combined earned %s exceeds funding %s", combined, funded)
	}
}

func TestEarnedNeverDecreasesWhilePeriodActive(t *testing.T) {
	v := newEnv(t)
	staker := makeAddr(0x10)
	v.stake(staker, tokens(7))
	v.fund(tokens(100), weekSeconds)

	previous := mustBig(t)(v.engine.Earned(staker))
	for i := 0; i < 10; i++ {
		v.advance(13 * time.Hour)
		current := mustBig(t)(v.engine.Earned(staker))
		if current.Cmp(previous) < 0 {
			t.Fatalf("earned decreased from %s to %s", previous, current)
		}
		previous = current
	}
}

func TestAccrualStopsAtPeriodEnd(t *testing.T) {
	v := newEnv(t)
	staker := makeAddr(0x10)
	v.stake(staker, tokens(5))
	v.fund(tokens(100), weekSeconds)

	v.advance(weekSeconds * time.Second)
	atFinish := mustBig(t)(v.engine.Earned(staker))

	v.advance(30 * 24 * time.Hour)
	if earned := mustBig(t)(v.engine.Earned(staker)); earned.Cmp(atFinish) != 0 {
		t.Fatalf("earned moved past finish: got %s want %s", earned, atFinish)
	}
	if applicable, err := v.engine.LastTimeRewardApplicable(); err != nil {
		t.Fatalf("last applicable: %v", err)
	} else if finish, err := v.engine.FinishAt(); err != nil {
		t.Fatalf("finish at: %v", err)
	} else if applicable != finish {
		t.Fatalf("last applicable %d != finish %d", applicable, finish)
	}
}

func TestLateJoinerEarnsOnlyForwardTime(t *testing.T) {
	v := newEnv(t)
	early := makeAddr(0x10)
	late := makeAddr(0x11)
	v.stake(early, tokens(5))
	v.fund(tokens(100), weekSeconds)

	v.advance(3 * 24 * time.Hour)
	earlyBefore := mustBig(t)(v.engine.Earned(early))
	v.stake(late, tokens(5))
	if earned := mustBig(t)(v.engine.Earned(late)); earned.Sign() != 0 {
		t.Fatalf("late joiner credited retroactively: %s", earned)
	}

	v.advance(24 * time.Hour)
	earlyAfter := mustBig(t)(v.engine.Earned(early))
	lateAfter := mustBig(t)(v.engine.Earned(late))
	earlyDelta := new(big.Int).Sub(earlyAfter, earlyBefore)
	// Equal stakes after the join, so the forward day splits evenly.
	if earlyDelta.Cmp(lateAfter) != 0 {
		t.Fatalf("forward accrual mismatch: early delta %s late %s", earlyDelta, lateAfter)
	}
}

func TestWithdrawStopsAccrualOnExitedStake(t *testing.T) {
	v := newEnv(t)
	staker := makeAddr(0x10)
	v.stake(staker, tokens(4))
	v.fund(tokens(100), weekSeconds)

	v.advance(24 * time.Hour)
	if _, err := v.engine.Withdraw(staker, tokens(4)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	settled := mustBig(t)(v.engine.Rewards(staker))
	if settled.Sign() <= 0 {
		t.Fatalf("expected settled rewards after withdraw, got %s", settled)
	}

	v.advance(24 * time.Hour)
	if earned := mustBig(t)(v.engine.Earned(staker)); earned.Cmp(settled) != 0 {
		t.Fatalf("earned kept growing after full exit: got %s want %s", earned, settled)
	}
}

func TestAccruedRewardsSurviveRestake(t *testing.T) {
	v := newEnv(t)
	staker := makeAddr(0x10)
	v.stake(staker, tokens(2))
	v.fund(tokens(100), weekSeconds)

	v.advance(48 * time.Hour)
	before := mustBig(t)(v.engine.Earned(staker))
	v.stake(staker, tokens(2))

	// The top-up settles the accrued amount into the checkpoint without
	// losing any of it.
	if owed := mustBig(t)(v.engine.Rewards(staker)); owed.Cmp(before) != 0 {
		t.Fatalf("settled rewards after restake: got %s want %s", owed, before)
	}
	if earned := mustBig(t)(v.engine.Earned(staker)); earned.Cmp(before) != 0 {
		t.Fatalf("earned changed across restake: got %s want %s", earned, before)
	}
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type StakingMetrics struct {
	stakes         prometheus.Counter
	withdrawals    prometheus.Counter
	claims         prometheus.Counter
	fundings       prometheus.Counter
	rejected       *prometheus.CounterVec
	totalStaked    prometheus.Gauge
	rewardRate     prometheus.Gauge
	rewardsPaidSum prometheus.Counter
}

var (
	stakingOnce     sync.Once
	stakingRegistry *StakingMetrics
)

func Staking() *StakingMetrics {
	stakingOnce.Do(func() {
		stakingRegistry = &StakingMetrics{
			stakes: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "staking_stakes_total",
				Help: "Count of successful stake deposits.",
			}),
			withdrawals: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "staking_withdrawals_total",
				Help: "Count of successful principal withdrawals.",
			}),
			claims: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "staking_claims_total",
				Help: "Count of reward claims that paid out a non-zero amount.",
			}),
			fundings: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "staking_fundings_total",
				Help: "Count of reward period fundings.",
			}),
			rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "staking_rejected_total",
				Help: "Count of rejected staking operations by reason.",
			}, []string{"reason"}),
			totalStaked: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "staking_total_staked",
				Help: "Current total staked principal.",
			}),
			rewardRate: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "staking_reward_rate",
				Help: "Current per-second reward emission rate.",
			}),
			rewardsPaidSum: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "staking_rewards_paid_sum",
				Help: "Cumulative reward amount paid out to stakers.",
			}),
		}
		prometheus.MustRegister(
			stakingRegistry.stakes,
			stakingRegistry.withdrawals,
			stakingRegistry.claims,
			stakingRegistry.fundings,
			stakingRegistry.rejected,
			stakingRegistry.totalStaked,
			stakingRegistry.rewardRate,
			stakingRegistry.rewardsPaidSum,
		)
	})
	return stakingRegistry
}

func (m *StakingMetrics) ObserveStake() {
	if m == nil {
		return
	}
	m.stakes.Inc()
}

func (m *StakingMetrics) ObserveWithdraw() {
	if m == nil {
		return
	}
	m.withdrawals.Inc()
}

func (m *StakingMetrics) ObserveClaim(amount float64) {
	if m == nil {
		return
	}
	m.claims.Inc()
	if amount > 0 {
		m.rewardsPaidSum.Add(amount)
	}
}

func (m *StakingMetrics) ObserveFunding() {
	if m == nil {
		return
	}
	m.fundings.Inc()
}

func (m *StakingMetrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *StakingMetrics) SetTotalStaked(amount float64) {
	if m == nil {
		return
	}
	m.totalStaked.Set(amount)
}

func (m *StakingMetrics) SetRewardRate(rate float64) {
	if m == nil {
		return
	}
	m.rewardRate.Set(rate)
}

package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"stakerewards/config"
	"stakerewards/native/rewards"
	"stakerewards/native/token"
	"stakerewards/observability/logging"
	"stakerewards/observability/metrics"
	"stakerewards/rpc"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup("stakerewardsd", cfg.Environment, logging.ParseLevel(cfg.LogLevel))

	stakingToken := token.NewLedger(cfg.StakingTokenName, cfg.StakingTokenSymbol)
	rewardsToken := token.NewLedger(cfg.RewardsTokenName, cfg.RewardsTokenSymbol)

	engine := rewards.NewEngine(cfg.OwnerAddress(), cfg.Pool(), stakingToken, rewardsToken)
	engine.SetState(rewards.NewMemoryState())

	if err := engine.SetRewardsDuration(cfg.OwnerAddress(), cfg.RewardsDuration); err != nil {
		logger.Error("configure rewards duration", "err", err)
		os.Exit(1)
	}

	server := rpc.NewServer(engine, logger)
	server.SetLedgers(stakingToken, rewardsToken)
	if cfg.EnableMetrics {
		server.SetMetrics(metrics.Staking())
	}

	httpServer := &http.Server{
		Addr:              cfg.RPCAddress,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("staking rewards daemon listening",
		"addr", cfg.RPCAddress,
		"owner", cfg.Owner,
		"duration", cfg.RewardsDuration,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("http server stopped", "err", err)
		os.Exit(1)
	}
}

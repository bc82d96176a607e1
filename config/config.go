package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
)

// Config carries the service wiring for the staking rewards daemon.
type Config struct {
	RPCAddress         string `toml:"RPCAddress"`
	Environment        string `toml:"Environment"`
	LogLevel           string `toml:"LogLevel"`
	Owner              string `toml:"Owner"`
	PoolAddress        string `toml:"PoolAddress"`
	RewardsDuration    uint64 `toml:"RewardsDuration"`
	StakingTokenName   string `toml:"StakingTokenName"`
	StakingTokenSymbol string `toml:"StakingTokenSymbol"`
	RewardsTokenName   string `toml:"RewardsTokenName"`
	RewardsTokenSymbol string `toml:"RewardsTokenSymbol"`
	EnableMetrics      bool   `toml:"EnableMetrics"`
}

// Load loads the configuration from the given path, creating a default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the address fields and the reward cadence.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("config: Owner is required")
	}
	if !common.IsHexAddress(c.Owner) {
		return fmt.Errorf("config: Owner %q is not a hex address", c.Owner)
	}
	if strings.TrimSpace(c.PoolAddress) == "" {
		return fmt.Errorf("config: PoolAddress is required")
	}
	if !common.IsHexAddress(c.PoolAddress) {
		return fmt.Errorf("config: PoolAddress %q is not a hex address", c.PoolAddress)
	}
	if c.OwnerAddress() == c.Pool() {
		return fmt.Errorf("config: Owner and PoolAddress must differ")
	}
	return nil
}

// OwnerAddress returns the parsed administrator address.
func (c *Config) OwnerAddress() common.Address {
	return common.HexToAddress(c.Owner)
}

// Pool returns the parsed custody address.
func (c *Config) Pool() common.Address {
	return common.HexToAddress(c.PoolAddress)
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.RPCAddress) == "" {
		cfg.RPCAddress = ":8645"
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = "info"
	}
	if strings.TrimSpace(cfg.Environment) == "" {
		cfg.Environment = "local"
	}
	if cfg.RewardsDuration == 0 {
		cfg.RewardsDuration = 7 * 24 * 60 * 60
	}
	if strings.TrimSpace(cfg.StakingTokenName) == "" {
		cfg.StakingTokenName = "Staking Token"
	}
	if strings.TrimSpace(cfg.StakingTokenSymbol) == "" {
		cfg.StakingTokenSymbol = "STK"
	}
	if strings.TrimSpace(cfg.RewardsTokenName) == "" {
		cfg.RewardsTokenName = "Reward Token"
	}
	if strings.TrimSpace(cfg.RewardsTokenSymbol) == "" {
		cfg.RewardsTokenSymbol = "RWD"
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := &Config{
		RPCAddress:      ":8645",
		Environment:     "local",
		LogLevel:        "info",
		Owner:           "0x0000000000000000000000000000000000000001",
		PoolAddress:     "0x0000000000000000000000000000000000000002",
		RewardsDuration: 7 * 24 * 60 * 60,
	}
	applyDefaults(cfg)
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(cfg)
}

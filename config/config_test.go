package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.RPCAddress != ":8645" {
		t.Fatalf("default rpc address: got %q", cfg.RPCAddress)
	}
	if cfg.RewardsDuration != 7*24*60*60 {
		t.Fatalf("default duration: got %d", cfg.RewardsDuration)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not persisted: %v", err)
	}

	// A second load round-trips the persisted file.
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload persisted config: %v", err)
	}
	if reloaded.Owner != cfg.Owner || reloaded.PoolAddress != cfg.PoolAddress {
		t.Fatalf("persisted config drifted: %+v vs %+v", reloaded, cfg)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
Owner = "0x00000000000000000000000000000000000000AA"
PoolAddress = "0x00000000000000000000000000000000000000BB"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCAddress != ":8645" {
		t.Fatalf("rpc address default: got %q", cfg.RPCAddress)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level default: got %q", cfg.LogLevel)
	}
	if cfg.StakingTokenSymbol != "STK" || cfg.RewardsTokenSymbol != "RWD" {
		t.Fatalf("token symbol defaults: got %q/%q", cfg.StakingTokenSymbol, cfg.RewardsTokenSymbol)
	}
}

func TestLoadRejectsMalformedOwner(t *testing.T) {
	path := writeConfig(t, `
Owner = "not-an-address"
PoolAddress = "0x00000000000000000000000000000000000000BB"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected malformed owner to fail validation")
	}
}

func TestLoadRejectsMissingPool(t *testing.T) {
	path := writeConfig(t, `
Owner = "0x00000000000000000000000000000000000000AA"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected missing pool address to fail validation")
	}
}

func TestLoadRejectsOwnerEqualPool(t *testing.T) {
	path := writeConfig(t, `
Owner = "0x00000000000000000000000000000000000000AA"
PoolAddress = "0x00000000000000000000000000000000000000aa"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected owner == pool to fail validation")
	}
}

func TestAddressAccessors(t *testing.T) {
	cfg := &Config{
		Owner:       "0x00000000000000000000000000000000000000AA",
		PoolAddress: "0x00000000000000000000000000000000000000BB",
	}
	if cfg.OwnerAddress() != common.HexToAddress(cfg.Owner) {
		t.Fatalf("owner accessor: got %s", cfg.OwnerAddress())
	}
	if cfg.Pool() != common.HexToAddress(cfg.PoolAddress) {
		t.Fatalf("pool accessor: got %s", cfg.Pool())
	}
}

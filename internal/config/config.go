// Package config loads the daemon's configuration: the genesis allocation
// and the ambient node settings (logging, metrics). This is not part of
// the protocol core — the core takes a plain []chain.Allocation — but it
// is how cmd/cakechaind resolves the open question of what that
// allocation actually is for a given deployment.
package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cakechain/cakechain/internal/chain"
	"github.com/cakechain/cakechain/internal/chaintypes"
)

// GenesisAllocation is one line of the genesis YAML file: a hex-encoded
// 32-byte address and its starting balance.
type GenesisAllocation struct {
	Address string `yaml:"address"`
	Balance uint64 `yaml:"balance"`
}

// GenesisFile is the on-disk shape of --genesis. An empty Allocations list
// is a valid genesis (Seed Scenario 1: empty initial allocation).
type GenesisFile struct {
	ChainID     uint64              `yaml:"chain_id"`
	Allocations []GenesisAllocation `yaml:"allocations"`
}

// LoggingConfig controls internal/logging's logger construction.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NodeConfig is the daemon's own settings, separate from the genesis file
// so operators can swap genesis files without touching node settings.
type NodeConfig struct {
	Logging     LoggingConfig `yaml:"logging"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

// LoadGenesis reads and validates a genesis YAML file.
func LoadGenesis(path string) (*GenesisFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read genesis file: %w", err)
	}

	var gf GenesisFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("config: parse genesis file: %w", err)
	}

	if gf.ChainID == 0 {
		gf.ChainID = 1
	}

	if err := gf.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate genesis file: %w", err)
	}

	return &gf, nil
}

// Validate checks that every allocation entry decodes to a well-formed
// address and that no address appears twice.
func (gf *GenesisFile) Validate() error {
	seen := make(map[string]struct{}, len(gf.Allocations))
	for i, a := range gf.Allocations {
		raw, err := hex.DecodeString(a.Address)
		if err != nil {
			return fmt.Errorf("allocation %d: address is not valid hex: %w", i, err)
		}
		if len(raw) != chaintypes.AddressSize {
			return fmt.Errorf("allocation %d: address must decode to %d bytes, got %d", i, chaintypes.AddressSize, len(raw))
		}
		if _, dup := seen[a.Address]; dup {
			return fmt.Errorf("allocation %d: duplicate address %s", i, a.Address)
		}
		seen[a.Address] = struct{}{}
	}
	return nil
}

// ToChainAllocations converts the YAML representation into chain.Allocation
// values ready for chain.Genesis.
func (gf *GenesisFile) ToChainAllocations() ([]chain.Allocation, error) {
	out := make([]chain.Allocation, 0, len(gf.Allocations))
	for i, a := range gf.Allocations {
		raw, err := hex.DecodeString(a.Address)
		if err != nil {
			return nil, fmt.Errorf("allocation %d: %w", i, err)
		}
		addr, err := chaintypes.AddressFromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("allocation %d: %w", i, err)
		}
		out = append(out, chain.Allocation{Address: addr, Balance: a.Balance})
	}
	return out, nil
}

// LoadNode reads and validates the daemon's node config, applying
// environment overrides the way a 12-factor service does.
func LoadNode(path string) (*NodeConfig, error) {
	cfg := &NodeConfig{
		Logging:     LoggingConfig{Level: "info", Format: "json"},
		MetricsAddr: ":9090",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read node config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse node config: %w", err)
		}
	}

	if lvl := os.Getenv("CAKECHAIN_LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if addr := os.Getenv("CAKECHAIN_METRICS_ADDR"); addr != "" {
		cfg.MetricsAddr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate node config: %w", err)
	}

	return cfg, nil
}

// Validate checks the node config is usable.
func (c *NodeConfig) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be \"json\" or \"console\", got %q", c.Logging.Format)
	}
	if c.MetricsAddr == "" {
		return fmt.Errorf("metrics_addr is required")
	}
	return nil
}

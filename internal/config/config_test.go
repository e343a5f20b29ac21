package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadGenesisEmptyAllocation(t *testing.T) {
	path := writeTemp(t, "genesis.yaml", "chain_id: 1\nallocations: []\n")
	gf, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gf.ChainID)
	assert.Empty(t, gf.Allocations)
}

func TestLoadGenesisDefaultsChainID(t *testing.T) {
	path := writeTemp(t, "genesis.yaml", "allocations: []\n")
	gf, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gf.ChainID)
}

func TestLoadGenesisRejectsBadAddress(t *testing.T) {
	path := writeTemp(t, "genesis.yaml", "allocations:\n  - address: \"not-hex\"\n    balance: 10\n")
	_, err := LoadGenesis(path)
	assert.Error(t, err)
}

func TestLoadGenesisRejectsWrongLengthAddress(t *testing.T) {
	path := writeTemp(t, "genesis.yaml", "allocations:\n  - address: \"aabb\"\n    balance: 10\n")
	_, err := LoadGenesis(path)
	assert.Error(t, err)
}

func TestLoadGenesisRejectsDuplicateAddress(t *testing.T) {
	addr := "0000000000000000000000000000000000000000000000000000000000000001"[:64]
	yaml := "allocations:\n  - address: \"" + addr + "\"\n    balance: 10\n  - address: \"" + addr + "\"\n    balance: 20\n"
	path := writeTemp(t, "genesis.yaml", yaml)
	_, err := LoadGenesis(path)
	assert.Error(t, err)
}

func TestToChainAllocations(t *testing.T) {
	addr := "000000000000000000000000000000000000000000000000000000000000000a"[:64]
	yaml := "allocations:\n  - address: \"" + addr + "\"\n    balance: 100\n"
	path := writeTemp(t, "genesis.yaml", yaml)
	gf, err := LoadGenesis(path)
	require.NoError(t, err)

	allocs, err := gf.ToChainAllocations()
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, uint64(100), allocs[0].Balance)
}

func TestLoadNodeDefaults(t *testing.T) {
	cfg, err := LoadNode("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoadNodeRejectsBadFormat(t *testing.T) {
	path := writeTemp(t, "node.yaml", "logging:\n  format: xml\n")
	_, err := LoadNode(path)
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

func TestLoadMonitorConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *MonitorConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
network: devnet
networks:
  devnet:
    rpc_url: "http://localhost:8545"
    indexer_url: "http://localhost:4000/api/v2"
    explorer_url: "http://localhost:4000"
    contracts:
      - "0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE"
block_range: 1000
discovery:
  source: chain
workers: 4
call_timeout: 5s
http_timeout: 10s
output: json
include_claims: true
wallets_path: "my_wallets.json"
campaigns:
  known_names:
    - "Devnet Drop"
  hash_names:
    "0xabc": "Manual"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *MonitorConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "devnet", cfg.Network)
				assert.Equal(t, uint64(1000), cfg.BlockRange)
				assert.Equal(t, "chain", cfg.Discovery.Source)
				assert.Equal(t, 4, cfg.Workers)
				assert.Equal(t, 5*time.Second, cfg.CallTimeout)
				assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
				assert.Equal(t, "json", cfg.Output)
				assert.True(t, cfg.IncludeClaims)
				assert.Equal(t, "my_wallets.json", cfg.WalletsPath)
				assert.Equal(t, []string{"Devnet Drop"}, cfg.Campaigns.KnownNames)
				assert.Equal(t, "Manual", cfg.Campaigns.HashNames["0xabc"])

				network, err := cfg.ActiveNetwork()
				require.NoError(t, err)
				assert.Equal(t, "http://localhost:8545", network.RPCURL)
				assert.Equal(t, "http://localhost:4000", network.ExplorerURL)

				// built-in profiles stay available next to custom ones
				assert.Contains(t, cfg.NetworkNames(), "testnet")
				assert.Contains(t, cfg.NetworkNames(), "devnet")
			},
		},
		{
			name: "config with defaults",
			configFile: `
debug: false
`,
			expectError: false,
			validate: func(t *testing.T, cfg *MonitorConfig) {
				assert.Equal(t, "testnet", cfg.Network)
				assert.Equal(t, uint64(50000), cfg.BlockRange)
				assert.Equal(t, "auto", cfg.Discovery.Source)
				assert.Equal(t, 1, cfg.Workers)
				assert.Equal(t, 15*time.Second, cfg.CallTimeout)
				assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
				assert.Equal(t, "text", cfg.Output)
				assert.False(t, cfg.IncludeClaims)
				assert.Equal(t, "wallets.json", cfg.WalletsPath)
				assert.Equal(t, "SpaceCoin Airdrop", cfg.Campaigns.KnownNames[0])
				assert.Len(t, cfg.Campaigns.KnownNames, 9)
				assert.Len(t, cfg.Campaigns.HashNames, 2)
				assert.Equal(t, []string{"mainnet", "mainnet_remote", "testnet"}, cfg.NetworkNames())

				network, err := cfg.ActiveNetwork()
				require.NoError(t, err)
				assert.Equal(t, "https://rpc.cc3-testnet.creditcoin.network", network.RPCURL)
				assert.Equal(t, "https://creditcoin-testnet.blockscout.com/api/v2", network.IndexerURL)
				assert.Len(t, network.Contracts, 3)
			},
		},
		{
			name:        "missing config file",
			configFile:  "",
			expectError: false,
			validate:    nil,
		},
		{
			name: "invalid value",
			configFile: `
workers: many
`,
			expectError: true, // Invalid workers should cause unmarshal error
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			var configFile string

			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			} else {
				configFile = filepath.Join(tmpDir, "nonexistent.yaml")
			}

			cfg, err := LoadMonitorConfig(configFile, tmpDir, nil)

			if tt.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestActiveNetwork(t *testing.T) {
	tests := []struct {
		name        string
		network     string
		networks    map[string]NetworkConfig
		expectError bool
	}{
		{
			name:     "known network",
			network:  "testnet",
			networks: map[string]NetworkConfig{"testnet": {RPCURL: "http://rpc", Contracts: []string{"0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE"}}},
		},
		{
			name:     "network name is case insensitive",
			network:  "TestNet",
			networks: map[string]NetworkConfig{"testnet": {RPCURL: "http://rpc", Contracts: []string{"0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE"}}},
		},
		{
			name:        "unknown network",
			network:     "moonnet",
			networks:    map[string]NetworkConfig{"testnet": {RPCURL: "http://rpc", Contracts: []string{"0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE"}}},
			expectError: true,
		},
		{
			name:        "missing rpc url",
			network:     "testnet",
			networks:    map[string]NetworkConfig{"testnet": {Contracts: []string{"0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE"}}},
			expectError: true,
		},
		{
			name:        "no contracts",
			network:     "testnet",
			networks:    map[string]NetworkConfig{"testnet": {RPCURL: "http://rpc"}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &MonitorConfig{Network: tt.network, Networks: tt.networks}
			network, err := cfg.ActiveNetwork()
			if tt.expectError {
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				assert.Nil(t, network)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://rpc", network.RPCURL)
		})
	}
}

func TestContractAddresses(t *testing.T) {
	network := NetworkConfig{Contracts: []string{
		"0x824c6a8fb6311379bf8ba10e90c1843b16e3a4ce",
		" 0xCc99690276912F7d965972D01E642dCcE5D2b660 ",
	}}

	addresses, err := network.ContractAddresses()
	require.NoError(t, err)
	assert.Equal(t, []common.Address{
		common.HexToAddress("0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE"),
		common.HexToAddress("0xCc99690276912F7d965972D01E642dCcE5D2b660"),
	}, addresses)
	assert.Equal(t, "0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE", addresses[0].Hex())

	network.Contracts = append(network.Contracts, "0x1234")
	_, err = network.ContractAddresses()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(`
network: mainnet
block_range: 10
wallets_path: file.json
`), 0600)
	require.NoError(t, err)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("network", "testnet", "")
	flags.Uint64("block-range", 50000, "")
	flags.String("wallets", "wallets.json", "")
	flags.String("source", "auto", "")
	flags.String("config", "", "")
	require.NoError(t, flags.Parse([]string{"--network", "mainnet_remote", "--source", "indexer"}))

	cfg, err := LoadMonitorConfig(configPath, tmpDir, flags)
	require.NoError(t, err)

	assert.Equal(t, "mainnet_remote", cfg.Network)   // set on the command line
	assert.Equal(t, "indexer", cfg.Discovery.Source) // set on the command line
	assert.Equal(t, uint64(10), cfg.BlockRange)      // flag default loses to the config file
	assert.Equal(t, "file.json", cfg.WalletsPath)    // flag default loses to the config file
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	// Registers cleanup for the variables set by the .env file below
	t.Setenv("AIRDROP_MONITOR_DEBUG", "")
	t.Setenv("AIRDROP_MONITOR_NETWORK", "")
	t.Setenv("AIRDROP_MONITOR_WORKERS", "")
	t.Setenv("AIRDROP_MONITOR_NETWORKS_TESTNET_RPC_URL", "")

	tmpDir := t.TempDir()

	// Create temporary directory for env files
	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// Viper uses the AIRDROP_MONITOR_ prefix, so env vars need the prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `AIRDROP_MONITOR_DEBUG=true
AIRDROP_MONITOR_NETWORK=testnet
AIRDROP_MONITOR_WORKERS=8
AIRDROP_MONITOR_NETWORKS_TESTNET_RPC_URL=http://env-rpc:8545
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	// Create config file with different values to verify env vars override
	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
network: mainnet
workers: 2
`
	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	cfg, err := LoadMonitorConfig(configPath, envDir, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)               // Should be true from .env file, not false from config
	assert.Equal(t, "testnet", cfg.Network) // Should be from .env file
	assert.Equal(t, 8, cfg.Workers)         // Should be from .env file

	network, err := cfg.ActiveNetwork()
	require.NoError(t, err)
	assert.Equal(t, "http://env-rpc:8545", network.RPCURL)
	assert.Len(t, network.Contracts, 3)
}

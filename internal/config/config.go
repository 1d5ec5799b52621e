package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

const (
	// ENV_PREFIX prefixes every environment variable read by the monitor
	ENV_PREFIX = "AIRDROP_MONITOR"

	serviceName = "airdrop-monitor"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// NetworkConfig holds the endpoints and contracts of one network
type NetworkConfig struct {
	RPCURL      string   `mapstructure:"rpc_url"`
	IndexerURL  string   `mapstructure:"indexer_url"`  // Blockscout v2 API root, empty disables the indexer
	ExplorerURL string   `mapstructure:"explorer_url"` // defaults to IndexerURL without /api/v2
	Contracts   []string `mapstructure:"contracts"`
}

// DiscoveryConfig holds campaign discovery configuration
type DiscoveryConfig struct {
	Source string `mapstructure:"source"` // auto, indexer or chain
}

// CampaignsConfig holds the campaign name registry
type CampaignsConfig struct {
	KnownNames []string          `mapstructure:"known_names"`
	HashNames  map[string]string `mapstructure:"hash_names"`
}

// MonitorConfig holds configuration for airdrop-monitor
type MonitorConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Network       string                   `mapstructure:"network"`
	Networks      map[string]NetworkConfig `mapstructure:"networks"`
	BlockRange    uint64                   `mapstructure:"block_range"`
	Discovery     DiscoveryConfig          `mapstructure:"discovery"`
	Workers       int                      `mapstructure:"workers"`
	CallTimeout   time.Duration            `mapstructure:"call_timeout"`
	HTTPTimeout   time.Duration            `mapstructure:"http_timeout"`
	Output        string                   `mapstructure:"output"`
	IncludeClaims bool                     `mapstructure:"include_claims"`
	Campaigns     CampaignsConfig          `mapstructure:"campaigns"`
	RegistryPath  string                   `mapstructure:"registry_path"`

	// Wallet source
	WalletsPath string `mapstructure:"wallets_path"`
	Address     string `mapstructure:"address"`
	Name        string `mapstructure:"name"`
}

// builtinNetworks are the profiles available without any configuration
var builtinNetworks = map[string]NetworkConfig{
	"mainnet": {
		RPCURL:     "http://127.0.0.1:9944",
		IndexerURL: "https://creditcoin.blockscout.com/api/v2",
		Contracts:  mainnetContracts,
	},
	"mainnet_remote": {
		RPCURL:     "https://mainnet.creditcoin.network",
		IndexerURL: "https://creditcoin.blockscout.com/api/v2",
		Contracts:  mainnetContracts,
	},
	"testnet": {
		RPCURL:     "https://rpc.cc3-testnet.creditcoin.network",
		IndexerURL: "https://creditcoin-testnet.blockscout.com/api/v2",
		Contracts: []string{
			"0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE",
			"0xCc99690276912F7d965972D01E642dCcE5D2b660",
			"0x44ADf468a466438DC59B0dF67356d3F934cF149B",
		},
	},
}

var mainnetContracts = []string{
	"0xe272c3fb6d4ccf5A8bca94465f58b9c09f497Cd6",
	"0x44D61789e4e6d2e06be032bD63fB2E86503B53A1",
	"0xC1f68532EE64AF333C43dfb7b4Ad93034F136e22",
}

var defaultKnownNames = []string{
	"SpaceCoin Airdrop",
	"SpaceCoin Airdrop 2024",
	"Spacecoin Airdrop",
	"Spacecoin",
	"spacecoin",
	"SPACECOIN",
	"SpaceCoin",
	"Airdrop",
	"Test",
}

var defaultHashNames = map[string]string{
	"0x2cfc0ae0a0e97a34c4941dd0b5065df935ef8ef3c7b5ddad455c7858a3f7867b": "Mainnet Campaign #1",
	"0x2499af02d29716ec568358aac3c95698feff985f7e2a614ac6c2fddbd6e9a103": "Testnet SpaceCoin Airdrop",
}

// flagKeys maps CLI flag names that differ from their config keys
var flagKeys = map[string]string{
	"wallets":  "wallets_path",
	"source":   "discovery.source",
	"registry": "registry_path",
}

// LoadMonitorConfig loads configuration for airdrop-monitor.
// Precedence: flags set on the command line, environment, config file, defaults.
func LoadMonitorConfig(configFile string, envPath string, flags *pflag.FlagSet) (*MonitorConfig, error) {
	v := configureViper(serviceName, configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("network", "testnet")
	for name, network := range builtinNetworks {
		v.SetDefault("networks."+name+".rpc_url", network.RPCURL)
		v.SetDefault("networks."+name+".indexer_url", network.IndexerURL)
		v.SetDefault("networks."+name+".explorer_url", network.ExplorerURL)
		v.SetDefault("networks."+name+".contracts", network.Contracts)
	}
	v.SetDefault("block_range", 50000)
	v.SetDefault("discovery.source", "auto")
	v.SetDefault("workers", 1)
	v.SetDefault("call_timeout", "15s")
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("output", "text")
	v.SetDefault("include_claims", false)
	v.SetDefault("wallets_path", "wallets.json")
	v.SetDefault("campaigns.known_names", defaultKnownNames)
	v.SetDefault("campaigns.hash_names", defaultHashNames)

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("%w: failed to read config: %v", domain.ErrConfiguration, err)
		}
	}

	var config MonitorConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", domain.ErrConfiguration, err)
	}

	return &config, nil
}

// ActiveNetwork returns the profile of the selected network
func (c *MonitorConfig) ActiveNetwork() (*NetworkConfig, error) {
	network, ok := c.Networks[strings.ToLower(c.Network)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown network %q, use one of %s",
			domain.ErrConfiguration, c.Network, strings.Join(c.NetworkNames(), ", "))
	}
	if strings.TrimSpace(network.RPCURL) == "" {
		return nil, fmt.Errorf("%w: network %q has no rpc_url", domain.ErrConfiguration, c.Network)
	}
	if len(network.Contracts) == 0 {
		return nil, fmt.Errorf("%w: network %q has no contracts", domain.ErrConfiguration, c.Network)
	}
	return &network, nil
}

// NetworkNames returns the configured network names in lexical order
func (c *MonitorConfig) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContractAddresses parses the contract list into checksummed addresses
func (n *NetworkConfig) ContractAddresses() ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(n.Contracts))
	for _, raw := range n.Contracts {
		s := strings.TrimSpace(raw)
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w: invalid contract address %q", domain.ErrConfiguration, raw)
		}
		addresses = append(addresses, common.HexToAddress(s))
	}
	return addresses, nil
}

// bindFlags binds every flag to its config key so that flags set on the command line win
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "env" {
			return
		}
		if err := v.BindPFlag(flagKey(f.Name), f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("%w: failed to bind flag %s: %v", domain.ErrConfiguration, f.Name, err)
		}
	})
	return bindErr
}

// flagKey converts a kebab-case flag name into its config key
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// configureViper sets up a viper instance with common configuration
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables from the config directory
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in the current directory, then the config directory
		v.AddConfigPath(".")
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"network",
		"block_range",
		"discovery.source",
		"workers",
		"call_timeout",
		"http_timeout",
		"output",
		"include_claims",
		"registry_path",
		"campaigns.known_names",
		// Wallet source
		"wallets_path",
		"address",
		"name",
	}
	for name := range builtinNetworks {
		keys = append(keys,
			"networks."+name+".rpc_url",
			"networks."+name+".indexer_url",
			"networks."+name+".explorer_url",
			"networks."+name+".contracts",
		)
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

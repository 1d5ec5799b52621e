package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/config"
	"github.com/feral-file/airdrop-monitor/internal/discovery"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
	"github.com/feral-file/airdrop-monitor/internal/monitor"
	"github.com/feral-file/airdrop-monitor/internal/providers/blockscout"
	"github.com/feral-file/airdrop-monitor/internal/providers/ethereum"
	"github.com/feral-file/airdrop-monitor/internal/registry"
	"github.com/feral-file/airdrop-monitor/internal/report"
	"github.com/feral-file/airdrop-monitor/internal/rewards"
	"github.com/feral-file/airdrop-monitor/internal/wallet"
)

// app holds everything a command needs once configuration is resolved
type app struct {
	monitor  *monitor.Monitor
	chain    ethereum.AirdropClient
	wallets  []domain.Wallet
	renderer report.Renderer
}

func (a *app) Close() {
	a.chain.Close()
	logger.Flush(2 * time.Second)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airdrop-monitor",
		Short: "Report airdrop allocations and claims of a set of wallets",
		Example: `  airdrop-monitor                                  # testnet, wallets.json
  airdrop-monitor --network mainnet                # mainnet
  airdrop-monitor --wallets my_wallets.json        # custom wallet file
  airdrop-monitor --address 0x1234...              # single address
  airdrop-monitor --address 0x1234... --name alice # single address with a name`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := a.monitor.Run(cmd.Context(), a.wallets)
			if err != nil {
				return err
			}
			return a.renderer.Render(cmd.OutOrStdout(), r)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to configuration file")
	flags.String("env", "config/", "Path to environment files")
	flags.String("network", "testnet", "Network profile to use (mainnet, mainnet_remote, testnet)")
	flags.Uint64("block-range", 50000, "Number of recent blocks to scan for events")
	flags.String("source", "auto", "Campaign discovery source (auto, indexer, chain)")
	flags.String("wallets", "wallets.json", "Path to wallets JSON file")
	flags.String("address", "", "Single wallet address to check (overrides --wallets)")
	flags.String("name", "", "Name for the single address (used with --address)")
	flags.String("registry", "", "Path to a campaign name registry JSON file")
	flags.String("output", "text", "Output format (text, json)")
	flags.Int("workers", 1, "Number of concurrent contract reads")
	flags.Duration("call-timeout", 15*time.Second, "Timeout of a single contract read")
	flags.Duration("http-timeout", 30*time.Second, "Timeout of a single indexer request")
	flags.Bool("include-claims", false, "Also list Claimed events of the monitored wallets")
	flags.Bool("debug", false, "Enable debug logging")

	cmd.AddCommand(newCampaignCommand(), newTokenCommand())
	return cmd
}

func newCampaignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "campaign <name>",
		Short: "Show a campaign by name on every contract with the rewards of every wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			lookup, err := a.monitor.LookupCampaign(cmd.Context(), args[0], a.wallets)
			if err != nil {
				return err
			}
			return a.renderer.RenderCampaign(cmd.OutOrStdout(), lookup)
		},
	}
}

func newTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token <address>",
		Short: "List the campaigns of a token and the rewards of every wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := wallet.ParseAddress(args[0])
			if err != nil {
				return err
			}

			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			lookup, err := a.monitor.LookupToken(cmd.Context(), token, a.wallets)
			if err != nil {
				return err
			}
			return a.renderer.RenderToken(cmd.OutOrStdout(), lookup)
		},
	}
}

// setup resolves configuration and builds the monitor.
// Every configuration error is reported before any network activity.
func setup(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	envPath, _ := flags.GetString("env")

	cfg, err := config.LoadMonitorConfig(configFile, envPath, flags)
	if err != nil {
		return nil, err
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "airdrop-monitor",
			"network": cfg.Network,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	network, err := cfg.ActiveNetwork()
	if err != nil {
		return nil, err
	}
	contracts, err := network.ContractAddresses()
	if err != nil {
		return nil, err
	}
	source, err := discovery.ParseSource(cfg.Discovery.Source)
	if err != nil {
		return nil, err
	}
	if source == discovery.SourceIndexer && network.IndexerURL == "" {
		return nil, fmt.Errorf("%w: discovery source %q needs an indexer_url for network %s", domain.ErrConfiguration, source, cfg.Network)
	}
	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()

	walletSet, err := wallet.NewLoader(fs, jsonAdapter).Load(cfg.WalletsPath, cfg.Address, cfg.Name)
	if err != nil {
		return nil, err
	}

	// Load campaign name registry
	namesData := registry.CampaignNamesData{
		KnownNames: cfg.Campaigns.KnownNames,
		HashNames:  cfg.Campaigns.HashNames,
	}
	if cfg.RegistryPath != "" {
		loaded, err := registry.NewCampaignNamesLoader(fs, jsonAdapter).Load(cfg.RegistryPath)
		if err != nil {
			return nil, err
		}
		namesData = namesData.Merge(*loaded)
		logger.InfoCtx(ctx, "Loaded campaign name registry", zap.String("path", cfg.RegistryPath))
	}
	names := registry.NewCampaignNames(namesData)

	renderer, err := report.NewRenderer(format, jsonAdapter)
	if err != nil {
		return nil, err
	}

	// Connect to the chain
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to dial %s: %v", domain.ErrRemoteUnavailable, network.RPCURL, err)
	}
	chain := ethereum.NewClient(ethClient)

	var indexer blockscout.Client
	if network.IndexerURL != "" {
		indexer = blockscout.NewClient(adapter.NewHTTPClient(cfg.HTTPTimeout), network.IndexerURL, jsonAdapter)
	} else {
		logger.WarnCtx(ctx, "Indexer URL not configured, campaigns are discovered from chain logs only")
	}

	m := monitor.New(monitor.Config{
		Network:       cfg.Network,
		IndexerURL:    network.IndexerURL,
		ExplorerURL:   network.ExplorerURL,
		Contracts:     contracts,
		Source:        source,
		BlockRange:    cfg.BlockRange,
		IncludeClaims: cfg.IncludeClaims,
		Rewards: rewards.Config{
			Workers:     cfg.Workers,
			CallTimeout: cfg.CallTimeout,
		},
	}, chain, indexer, names, adapter.NewClock())

	logger.InfoCtx(ctx, "Monitor configured",
		zap.String("network", cfg.Network),
		zap.Int("contracts", len(contracts)),
		zap.Int("wallets", walletSet.Len()))

	return &app{
		monitor:  m,
		chain:    chain,
		wallets:  walletSet.Wallets(),
		renderer: renderer,
	}, nil
}

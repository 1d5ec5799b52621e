package monitor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/discovery"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
	"github.com/feral-file/airdrop-monitor/internal/providers/blockscout"
	"github.com/feral-file/airdrop-monitor/internal/providers/ethereum"
	"github.com/feral-file/airdrop-monitor/internal/registry"
	"github.com/feral-file/airdrop-monitor/internal/report"
	"github.com/feral-file/airdrop-monitor/internal/rewards"
)

// Config holds the run settings of the monitor
type Config struct {
	Network       string
	IndexerURL    string
	ExplorerURL   string
	Contracts     []common.Address
	Source        discovery.Source
	BlockRange    uint64
	IncludeClaims bool
	Rewards       rewards.Config
}

// Monitor runs discovery, reward aggregation and reporting for a set of wallets
type Monitor struct {
	config    Config
	chain     ethereum.AirdropClient
	indexer   blockscout.Client
	names     registry.CampaignNames
	discovery *discovery.Engine
	rewards   *rewards.Engine
	clock     adapter.Clock
}

// New creates a monitor. indexer may be nil when no Blockscout API is configured.
func New(cfg Config, chain ethereum.AirdropClient, indexer blockscout.Client, names registry.CampaignNames, clock adapter.Clock) *Monitor {
	return &Monitor{
		config:    cfg,
		chain:     chain,
		indexer:   indexer,
		names:     names,
		discovery: discovery.NewEngine(chain, indexer, names, cfg.Contracts, cfg.BlockRange),
		rewards:   rewards.NewEngine(chain, cfg.Rewards),
		clock:     clock,
	}
}

// startRun tags the context with a fresh run id
func (m *Monitor) startRun(ctx context.Context) (context.Context, string) {
	runID := ulid.Make().String()
	return logger.WithRunID(ctx, runID), runID
}

// checkLiveness fails fast when an endpoint the run depends on does not answer.
// A missing indexer is a configuration error and is reported before any endpoint is contacted.
func (m *Monitor) checkLiveness(ctx context.Context, needIndexer bool) error {
	if needIndexer && m.indexer == nil {
		return fmt.Errorf("%w: indexer discovery requested but no indexer is configured", domain.ErrConfiguration)
	}
	if !m.chain.IsReachable(ctx) {
		return fmt.Errorf("%w: rpc endpoint of network %s", domain.ErrRemoteUnavailable, m.config.Network)
	}
	if !needIndexer {
		return nil
	}
	return m.indexer.Ping(ctx)
}

// Run executes a full monitor pass for the given wallets
func (m *Monitor) Run(ctx context.Context, wallets []domain.Wallet) (*report.Report, error) {
	ctx, runID := m.startRun(ctx)

	if err := m.checkLiveness(ctx, m.config.Source == discovery.SourceIndexer); err != nil {
		return nil, err
	}

	latest, err := m.chain.LatestBlockHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read latest block: %v", domain.ErrRemoteUnavailable, err)
	}

	logger.InfoCtx(ctx, "Starting monitor run",
		zap.String("network", m.config.Network),
		zap.Uint64("latestBlock", latest),
		zap.Int("contracts", len(m.config.Contracts)),
		zap.Int("wallets", len(wallets)))

	result, err := m.discovery.Discover(ctx, m.config.Source, latest)
	if err != nil {
		return nil, err
	}

	campaigns := m.rewards.Enrich(ctx, result.Campaigns)

	ids := discovery.DistinctIDs(campaigns)
	outcomes := m.rewards.Execute(ctx, rewards.CrossProduct(ids, m.config.Contracts, wallets))
	records, skipped := rewards.Collect(ctx, outcomes)

	sections, withoutRewards := report.BuildSections(campaigns, records)
	summaries := rewards.AggregateByWallet(records)

	hits := m.rewards.ScanKnownNames(ctx, m.names.KnownNames(), m.config.Contracts, wallets)

	var claims []domain.ClaimEvent
	if m.config.IncludeClaims {
		claims = m.discovery.Claims(ctx, result, addresses(wallets))
		if claims == nil {
			claims = []domain.ClaimEvent{}
		}
	}

	r := &report.Report{
		RunID:               runID,
		GeneratedAt:         m.clock.Now(),
		Network:             m.config.Network,
		LatestBlock:         latest,
		IndexerURL:          m.config.IndexerURL,
		ExplorerURL:         report.ExplorerBase(m.config.ExplorerURL, m.config.IndexerURL),
		Contracts:           m.config.Contracts,
		Wallets:             wallets,
		Source:              string(result.Source),
		IncompleteContracts: result.FailedContracts,
		Campaigns:           campaigns,
		WithRewards:         sections,
		WithoutRewards:      withoutRewards,
		KnownNames:          hits,
		Summaries:           summaries,
		Totals:              rewards.GrandTotals(summaries),
		Claims:              claims,
	}

	logger.InfoCtx(ctx, "Monitor run finished",
		zap.Int("campaigns", len(campaigns)),
		zap.Int("campaignsWithRewards", len(sections)),
		zap.Int("records", len(records)),
		zap.Int("skipped", len(skipped)),
		zap.Int("knownNames", len(hits)))

	return r, nil
}

// LookupCampaign reads a campaign by name on every contract together with the rewards of every wallet
func (m *Monitor) LookupCampaign(ctx context.Context, name string, wallets []domain.Wallet) (*report.CampaignLookup, error) {
	ctx, _ = m.startRun(ctx)

	if err := m.checkLiveness(ctx, false); err != nil {
		return nil, err
	}

	lookup := &report.CampaignLookup{
		Name:        name,
		ID:          domain.CampaignIDFromName(name),
		GeneratedAt: m.clock.Now(),
	}

	for _, contract := range m.config.Contracts {
		entry := report.CampaignLookupEntry{Contract: contract}

		info, err := m.rewards.CampaignInfo(ctx, contract, name)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to read campaign",
				zap.Error(err),
				zap.String("name", name),
				zap.String("contract", contract.Hex()))
			entry.Err = err
		} else {
			entry.Info = info
			if info.Exists() {
				entry.Rewards = m.rewards.RewardsForCampaign(ctx, lookup.ID, []common.Address{contract}, wallets)
			}
		}

		lookup.Entries = append(lookup.Entries, entry)
	}

	return lookup, nil
}

// LookupToken lists the campaigns of a token and the rewards of every wallet on every contract
func (m *Monitor) LookupToken(ctx context.Context, token common.Address, wallets []domain.Wallet) (*report.TokenLookup, error) {
	ctx, _ = m.startRun(ctx)

	if err := m.checkLiveness(ctx, false); err != nil {
		return nil, err
	}

	lookup := &report.TokenLookup{
		Token:       token,
		GeneratedAt: m.clock.Now(),
	}

	for _, contract := range m.config.Contracts {
		entry := report.TokenLookupEntry{Contract: contract}

		ids, err := m.rewards.TokenCampaigns(ctx, contract, token)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to list token campaigns",
				zap.Error(err),
				zap.String("token", token.Hex()),
				zap.String("contract", contract.Hex()))
			entry.Err = err
			lookup.Entries = append(lookup.Entries, entry)
			continue
		}

		for _, id := range ids {
			entry.Campaigns = append(entry.Campaigns, m.named(id))
		}
		for _, r := range m.rewards.TokenRewards(ctx, contract, token, wallets) {
			entry.Rewards = append(entry.Rewards, report.TokenWalletReward{
				Wallet:     r.Wallet,
				Campaign:   m.named(r.CampaignID),
				RewardInfo: r.RewardInfo,
			})
		}

		lookup.Entries = append(lookup.Entries, entry)
	}

	return lookup, nil
}

func (m *Monitor) named(id domain.CampaignID) report.NamedCampaign {
	return report.NamedCampaign{ID: id, Name: m.names.ResolveID(id)}
}

func addresses(wallets []domain.Wallet) []common.Address {
	out := make([]common.Address, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, w.Address)
	}
	return out
}

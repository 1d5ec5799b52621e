package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
	"github.com/feral-file/airdrop-monitor/internal/providers/blockscout"
	"github.com/feral-file/airdrop-monitor/internal/providers/ethereum"
	"github.com/feral-file/airdrop-monitor/internal/registry"
)

// Source selects the discovery strategy
type Source string

const (
	// SourceAuto uses the indexer and falls back to the chain only when the indexer failed for every contract
	SourceAuto Source = "auto"
	// SourceIndexer reads RewardsAdded logs from the Blockscout API
	SourceIndexer Source = "indexer"
	// SourceChain queries RewardsAdded logs over RPC within the configured block range
	SourceChain Source = "chain"
)

// ParseSource validates a discovery source name
func ParseSource(s string) (Source, error) {
	switch source := Source(strings.ToLower(strings.TrimSpace(s))); source {
	case SourceAuto, SourceIndexer, SourceChain:
		return source, nil
	case "":
		return SourceAuto, nil
	default:
		return "", fmt.Errorf("%w: unknown discovery source %q", domain.ErrConfiguration, s)
	}
}

// Result is the outcome of one discovery pass
type Result struct {
	// Source is the strategy that produced Campaigns
	Source Source
	// Campaigns are deduplicated and named, in first-seen order
	Campaigns []domain.Campaign
	// Logs are every log read by the pass, kept to derive claims without fetching again
	Logs []domain.EventLog
	// FailedContracts could not be read completely; their campaigns may be missing
	FailedContracts []common.Address
	// FromBlock and ToBlock bound a chain pass
	FromBlock uint64
	ToBlock   uint64
}

// Complete reports whether every contract was read without error
func (r *Result) Complete() bool {
	return len(r.FailedContracts) == 0
}

// Engine discovers campaigns from contract event logs
type Engine struct {
	chain      ethereum.AirdropClient
	indexer    blockscout.Client
	names      registry.CampaignNames
	contracts  []common.Address
	blockRange uint64
}

// NewEngine creates a discovery engine. indexer may be nil when no Blockscout API is configured.
func NewEngine(chain ethereum.AirdropClient, indexer blockscout.Client, names registry.CampaignNames, contracts []common.Address, blockRange uint64) *Engine {
	return &Engine{
		chain:      chain,
		indexer:    indexer,
		names:      names,
		contracts:  contracts,
		blockRange: blockRange,
	}
}

// Discover runs the selected strategy. The strategies are alternatives and are never merged.
// latest is the block height of the run; a chain pass scans the blockRange blocks ending there.
func (e *Engine) Discover(ctx context.Context, source Source, latest uint64) (*Result, error) {
	switch source {
	case SourceIndexer:
		if e.indexer == nil {
			return nil, fmt.Errorf("%w: indexer discovery requested but no indexer is configured", domain.ErrConfiguration)
		}
		return e.FromIndexer(ctx), nil

	case SourceChain:
		return e.FromChain(ctx, latest), nil

	case SourceAuto, "":
		if e.indexer == nil {
			return e.FromChain(ctx, latest), nil
		}

		result := e.FromIndexer(ctx)
		if len(result.Campaigns) == 0 && len(e.contracts) > 0 && len(result.FailedContracts) == len(e.contracts) {
			logger.WarnCtx(ctx, "Indexer failed for every contract, falling back to chain discovery")
			return e.FromChain(ctx, latest), nil
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: unknown discovery source %q", domain.ErrConfiguration, source)
	}
}

// FromIndexer reads every log of every contract from the indexer.
// A contract whose pages fail keeps the campaigns of the pages read before the failure.
func (e *Engine) FromIndexer(ctx context.Context) *Result {
	result := &Result{Source: SourceIndexer}

	var campaigns []domain.Campaign
	for _, contract := range e.contracts {
		logs, err := e.indexer.FetchDecodedLogs(ctx, contract)
		if err != nil {
			logger.WarnCtx(ctx, "Indexer discovery incomplete for contract",
				zap.Error(err),
				zap.String("contract", contract.Hex()),
				zap.Int("logs", len(logs)))
			result.FailedContracts = append(result.FailedContracts, contract)
		}

		result.Logs = append(result.Logs, logs...)
		campaigns = append(campaigns, CampaignsFromLogs(logs)...)
	}

	result.Campaigns = e.name(Dedupe(campaigns))

	logger.InfoCtx(ctx, "Discovered campaigns from indexer",
		zap.Int("campaigns", len(result.Campaigns)),
		zap.Int("failedContracts", len(result.FailedContracts)))

	return result
}

// FromChain queries RewardsAdded logs of every contract over the blockRange blocks ending at latest
func (e *Engine) FromChain(ctx context.Context, latest uint64) *Result {
	result := &Result{
		Source:    SourceChain,
		FromBlock: e.fromBlock(latest),
		ToBlock:   latest,
	}

	var campaigns []domain.Campaign
	for _, contract := range e.contracts {
		logs, err := e.chain.QueryEventLogs(ctx, contract, domain.EVENT_REWARDS_ADDED, result.FromBlock, result.ToBlock)
		if err != nil {
			logger.WarnCtx(ctx, "Chain discovery failed for contract",
				zap.Error(err),
				zap.String("contract", contract.Hex()))
			result.FailedContracts = append(result.FailedContracts, contract)
			continue
		}

		result.Logs = append(result.Logs, logs...)
		campaigns = append(campaigns, CampaignsFromLogs(logs)...)
	}

	result.Campaigns = e.name(Dedupe(campaigns))

	logger.InfoCtx(ctx, "Discovered campaigns from chain",
		zap.Uint64("fromBlock", result.FromBlock),
		zap.Uint64("toBlock", result.ToBlock),
		zap.Int("campaigns", len(result.Campaigns)),
		zap.Int("failedContracts", len(result.FailedContracts)))

	return result
}

// Claims returns the Claimed events of the given users.
// Indexer results already hold every log of the contracts. Chain results only hold RewardsAdded logs,
// so claims are queried over the same block range.
func (e *Engine) Claims(ctx context.Context, result *Result, users []common.Address) []domain.ClaimEvent {
	if result.Source == SourceIndexer {
		return ClaimsFromLogs(result.Logs, users)
	}
	return e.ClaimsFromChain(ctx, result.FromBlock, result.ToBlock, users)
}

// ClaimsFromChain queries Claimed logs of the given users over RPC. A failing contract is skipped.
func (e *Engine) ClaimsFromChain(ctx context.Context, fromBlock, toBlock uint64, users []common.Address) []domain.ClaimEvent {
	var topics [][]common.Hash
	if len(users) > 0 {
		userTopics := make([]common.Hash, 0, len(users))
		for _, u := range users {
			userTopics = append(userTopics, common.BytesToHash(u.Bytes()))
		}
		topics = append(topics, userTopics)
	}

	var claims []domain.ClaimEvent
	for _, contract := range e.contracts {
		logs, err := e.chain.QueryEventLogs(ctx, contract, domain.EVENT_CLAIMED, fromBlock, toBlock, topics...)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to query claims for contract",
				zap.Error(err),
				zap.String("contract", contract.Hex()))
			continue
		}
		claims = append(claims, ClaimsFromLogs(logs, users)...)
	}

	return claims
}

func (e *Engine) fromBlock(latest uint64) uint64 {
	if latest < e.blockRange {
		return 0
	}
	return latest - e.blockRange
}

func (e *Engine) name(campaigns []domain.Campaign) []domain.Campaign {
	for i := range campaigns {
		campaigns[i].Name = e.names.ResolveID(campaigns[i].ID)
	}
	return campaigns
}

package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
	"github.com/feral-file/airdrop-monitor/internal/providers/ethereum"
)

// Config holds the read fan-out settings
type Config struct {
	// Workers bounds the number of concurrent read calls. 1 runs them one after another.
	Workers int
	// CallTimeout bounds each read call. Zero disables the bound.
	CallTimeout time.Duration
}

// Task is one reward read for a (contract, campaign, wallet) triple
type Task struct {
	Contract   common.Address
	CampaignID domain.CampaignID
	Wallet     domain.Wallet
}

// Outcome is the result of a Task: a reward record or the reason it was skipped
type Outcome struct {
	Task   Task
	Reward *domain.WalletReward
	Err    error
}

// Skipped reports whether the task produced no record
func (o Outcome) Skipped() bool {
	return o.Err != nil || o.Reward == nil
}

// CrossProduct expands campaigns × contracts × wallets into read tasks, in that nesting order
func CrossProduct(ids []domain.CampaignID, contracts []common.Address, wallets []domain.Wallet) []Task {
	tasks := make([]Task, 0, len(ids)*len(contracts)*len(wallets))
	for _, id := range ids {
		for _, contract := range contracts {
			for _, w := range wallets {
				tasks = append(tasks, Task{Contract: contract, CampaignID: id, Wallet: w})
			}
		}
	}
	return tasks
}

// Engine reads reward state through the chain client
type Engine struct {
	client ethereum.AirdropClient
	config Config
}

// NewEngine creates a reward aggregation engine
func NewEngine(client ethereum.AirdropClient, cfg Config) *Engine {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Engine{client: client, config: cfg}
}

// Execute performs one read call per task.
// Outcomes are returned in task order. A failing task never cancels the others.
func (e *Engine) Execute(ctx context.Context, tasks []Task) []Outcome {
	if len(tasks) == 0 {
		return nil
	}

	pool := pond.NewResultPool[Outcome](e.config.Workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	results := make([]pond.Result[Outcome], len(tasks))
	for i, task := range tasks {
		results[i] = pool.Submit(func() Outcome {
			return e.read(ctx, task)
		})
	}

	outcomes := make([]Outcome, len(tasks))
	for i, result := range results {
		outcome, err := result.Wait()
		if err != nil {
			outcome = Outcome{Task: tasks[i], Err: fmt.Errorf("read not executed: %w", err)}
		}
		outcomes[i] = outcome
	}

	return outcomes
}

// callContext bounds a single read call by the configured timeout
func (e *Engine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.config.CallTimeout)
}

func (e *Engine) read(ctx context.Context, task Task) Outcome {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	info, err := e.client.RewardInfoByHash(callCtx, task.Contract, task.CampaignID, task.Wallet.Address)
	if err != nil {
		return Outcome{Task: task, Err: err}
	}

	return Outcome{
		Task: task,
		Reward: &domain.WalletReward{
			WalletName:                     task.Wallet.Name,
			WalletAddress:                  task.Wallet.Address,
			Contract:                       task.Contract,
			CampaignID:                     task.CampaignID,
			TotalReward:                    info.TotalReward,
			BonusReward:                    info.BonusReward,
			Claimed:                        info.Claimed,
			RequiresAdditionalVerification: info.RequiresAdditionalVerification,
		},
	}
}

// Enrich reads the current state of every campaign from its contract.
// A failed read leaves Info unset.
func (e *Engine) Enrich(ctx context.Context, campaigns []domain.Campaign) []domain.Campaign {
	for i := range campaigns {
		c := &campaigns[i]

		callCtx, cancel := e.callContext(ctx)
		info, err := e.client.CampaignInfoByHash(callCtx, c.Contract, c.ID)
		cancel()
		if err != nil {
			logger.WarnCtx(ctx, "Failed to read campaign info",
				zap.Error(err),
				zap.String("contract", c.Contract.Hex()),
				zap.String("campaign", c.ID.Hex()))
			continue
		}
		c.Info = info
	}
	return campaigns
}

// RewardsForCampaign reads the reward of every wallet on every contract for one campaign.
// Failed reads are logged and skipped.
func (e *Engine) RewardsForCampaign(ctx context.Context, id domain.CampaignID, contracts []common.Address, wallets []domain.Wallet) []domain.WalletReward {
	records, _ := Collect(ctx, e.Execute(ctx, CrossProduct([]domain.CampaignID{id}, contracts, wallets)))
	return records
}

// Collect splits outcomes into records and skipped outcomes, keeping their order.
// Every skip is logged as a warning.
func Collect(ctx context.Context, outcomes []Outcome) ([]domain.WalletReward, []Outcome) {
	var records []domain.WalletReward
	var skipped []Outcome
	for _, o := range outcomes {
		if o.Skipped() {
			logger.WarnCtx(ctx, "Skipping reward read",
				zap.Error(o.Err),
				zap.String("contract", o.Task.Contract.Hex()),
				zap.String("campaign", o.Task.CampaignID.Hex()),
				zap.String("wallet", o.Task.Wallet.Name),
				zap.String("address", o.Task.Wallet.Address.Hex()))
			skipped = append(skipped, o)
			continue
		}
		records = append(records, *o.Reward)
	}
	return records, skipped
}

package rewards

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
)

// KnownNameHit is a known campaign name that exists on a contract
type KnownNameHit struct {
	Name     string
	Contract common.Address
	ID       domain.CampaignID
	Info     *domain.CampaignInfo
	// Rewards holds the wallets with a strictly positive reward
	Rewards []domain.WalletReward
}

// ScanKnownNames checks every known name on every contract.
// Names the contract does not know are skipped, as are failed reads.
func (e *Engine) ScanKnownNames(ctx context.Context, names []string, contracts []common.Address, wallets []domain.Wallet) []KnownNameHit {
	var hits []KnownNameHit
	for _, name := range names {
		for _, contract := range contracts {
			info, err := e.CampaignInfo(ctx, contract, name)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to read campaign by name",
					zap.Error(err),
					zap.String("name", name),
					zap.String("contract", contract.Hex()))
				continue
			}
			if !info.Exists() {
				continue
			}

			id := domain.CampaignIDFromName(name)
			records := e.RewardsForCampaign(ctx, id, []common.Address{contract}, wallets)
			withReward, _ := Partition(records)

			hits = append(hits, KnownNameHit{
				Name:     name,
				Contract: contract,
				ID:       id,
				Info:     info,
				Rewards:  withReward,
			})
		}
	}
	return hits
}

// CampaignInfo reads a campaign by name under the call timeout
func (e *Engine) CampaignInfo(ctx context.Context, contract common.Address, name string) (*domain.CampaignInfo, error) {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()
	return e.client.CampaignInfo(callCtx, contract, name)
}

package rewards

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
)

// WalletTokenReward is one allRewardInfo entry of a wallet
type WalletTokenReward struct {
	Wallet domain.Wallet
	domain.TokenReward
}

// TokenCampaigns lists the campaigns of a token on a contract under the call timeout
func (e *Engine) TokenCampaigns(ctx context.Context, contract, token common.Address) ([]domain.CampaignID, error) {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()
	return e.client.TokenCampaigns(callCtx, contract, token)
}

// TokenRewards reads the rewards of every wallet in every campaign of a token on a contract.
// A failing wallet is logged and skipped.
func (e *Engine) TokenRewards(ctx context.Context, contract, token common.Address, wallets []domain.Wallet) []WalletTokenReward {
	var result []WalletTokenReward
	for _, w := range wallets {
		callCtx, cancel := e.callContext(ctx)
		entries, err := e.client.AllRewardInfo(callCtx, contract, token, w.Address)
		cancel()
		if err != nil {
			logger.WarnCtx(ctx, "Failed to read token rewards",
				zap.Error(err),
				zap.String("contract", contract.Hex()),
				zap.String("token", token.Hex()),
				zap.String("wallet", w.Name))
			continue
		}

		for _, entry := range entries {
			result = append(result, WalletTokenReward{Wallet: w, TokenReward: entry})
		}
	}
	return result
}

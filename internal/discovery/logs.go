package discovery

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/logger"
)

// CampaignsFromLogs extracts campaigns from the RewardsAdded entries of logs.
// Entries with a missing or malformed field are skipped with a warning. Other events are ignored.
func CampaignsFromLogs(logs []domain.EventLog) []domain.Campaign {
	var campaigns []domain.Campaign
	for _, l := range logs {
		if l.Event != domain.EVENT_REWARDS_ADDED {
			continue
		}

		campaign, err := campaignFromLog(l)
		if err != nil {
			logger.Warn("Skipping RewardsAdded log",
				zap.Error(err),
				zap.String("contract", l.Contract.Hex()),
				zap.String("txHash", l.TxHash))
			continue
		}
		campaigns = append(campaigns, *campaign)
	}
	return campaigns
}

func campaignFromLog(l domain.EventLog) (*domain.Campaign, error) {
	id, err := domain.ParseCampaignID(l.Param(domain.PARAM_CAMPAIGN_NAME_HASH))
	if err != nil {
		return nil, err
	}

	token, err := parseAddress(l.Param(domain.PARAM_TOKEN))
	if err != nil {
		return nil, err
	}

	startDate, err := parseOptionalUint(l.Param(domain.PARAM_START_DATE))
	if err != nil {
		return nil, err
	}

	deadline, err := parseOptionalUint(l.Param(domain.PARAM_DEADLINE))
	if err != nil {
		return nil, err
	}

	return &domain.Campaign{
		Contract:    l.Contract,
		ID:          id,
		Token:       token,
		StartDate:   startDate,
		Deadline:    deadline,
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
	}, nil
}

// ClaimsFromLogs extracts the Claimed entries of logs.
// When users is not empty only claims of those users are kept.
func ClaimsFromLogs(logs []domain.EventLog, users []common.Address) []domain.ClaimEvent {
	wanted := make(map[common.Address]bool, len(users))
	for _, u := range users {
		wanted[u] = true
	}

	var claims []domain.ClaimEvent
	for _, l := range logs {
		if l.Event != domain.EVENT_CLAIMED {
			continue
		}

		claim, err := claimFromLog(l)
		if err != nil {
			logger.Warn("Skipping Claimed log",
				zap.Error(err),
				zap.String("contract", l.Contract.Hex()),
				zap.String("txHash", l.TxHash))
			continue
		}

		if len(wanted) > 0 && !wanted[claim.User] {
			continue
		}
		claims = append(claims, *claim)
	}
	return claims
}

func claimFromLog(l domain.EventLog) (*domain.ClaimEvent, error) {
	user, err := parseAddress(l.Param(domain.PARAM_USER))
	if err != nil {
		return nil, err
	}

	// the indexer does not always decode the campaign hash of a claim
	var id domain.CampaignID
	if raw := l.Param(domain.PARAM_CAMPAIGN_NAME_HASH); raw != "" {
		id, err = domain.ParseCampaignID(raw)
		if err != nil {
			return nil, err
		}
	}

	totalReward, err := parseOptionalBig(l.Param(domain.PARAM_TOTAL_REWARD))
	if err != nil {
		return nil, err
	}

	fee, err := parseOptionalBig(l.Param(domain.PARAM_FEE))
	if err != nil {
		return nil, err
	}

	return &domain.ClaimEvent{
		Contract:    l.Contract,
		User:        user,
		CampaignID:  id,
		TotalReward: totalReward,
		Fee:         fee,
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
	}, nil
}

// Dedupe keeps exactly one campaign per (contract, id).
// A later duplicate replaces the values of an earlier one but the first position is kept.
func Dedupe(campaigns []domain.Campaign) []domain.Campaign {
	unique := orderedmap.New[domain.CampaignKey, domain.Campaign](len(campaigns))
	for _, c := range campaigns {
		unique.Set(c.Key(), c)
	}

	deduped := make([]domain.Campaign, 0, unique.Len())
	for pair := unique.Oldest(); pair != nil; pair = pair.Next() {
		deduped = append(deduped, pair.Value)
	}
	return deduped
}

// DistinctIDs returns the campaign ids in first-seen order
func DistinctIDs(campaigns []domain.Campaign) []domain.CampaignID {
	seen := make(map[domain.CampaignID]bool)
	var ids []domain.CampaignID
	for _, c := range campaigns {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		ids = append(ids, c.ID)
	}
	return ids
}

func parseAddress(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, fmt.Errorf("%w: missing address", domain.ErrDataShape)
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: invalid address %q", domain.ErrDataShape, s)
	}
	return common.HexToAddress(s), nil
}

func parseOptionalUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid unsigned integer %q", domain.ErrDataShape, s)
	}
	return v, nil
}

func parseOptionalBig(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrDataShape, s)
	}
	return v, nil
}

package rewards

import (
	"math/big"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

// WalletSummary is the aggregated reward state of one wallet
type WalletSummary struct {
	WalletName    string
	Total         *big.Int
	Bonus         *big.Int
	Claimed       *big.Int
	Unclaimed     *big.Int
	CampaignCount int
}

func newWalletSummary(name string) *WalletSummary {
	return &WalletSummary{
		WalletName: name,
		Total:      new(big.Int),
		Bonus:      new(big.Int),
		Claimed:    new(big.Int),
		Unclaimed:  new(big.Int),
	}
}

// Totals is the grand total over every wallet with a reward
type Totals struct {
	Total     *big.Int
	Claimed   *big.Int
	Unclaimed *big.Int
	Wallets   int
}

// CampaignRewards groups the records of one campaign
type CampaignRewards struct {
	CampaignID domain.CampaignID
	Records    []domain.WalletReward
}

// Partition splits records on a strictly positive total reward
func Partition(records []domain.WalletReward) (withReward, withoutReward []domain.WalletReward) {
	for _, r := range records {
		if r.HasReward() {
			withReward = append(withReward, r)
		} else {
			withoutReward = append(withoutReward, r)
		}
	}
	return withReward, withoutReward
}

// AggregateByWallet sums the records with a reward per wallet name.
// The result does not depend on the order of records.
func AggregateByWallet(records []domain.WalletReward) map[string]*WalletSummary {
	summaries := make(map[string]*WalletSummary)
	for _, r := range records {
		if !r.HasReward() {
			continue
		}

		s, ok := summaries[r.WalletName]
		if !ok {
			s = newWalletSummary(r.WalletName)
			summaries[r.WalletName] = s
		}

		s.Total.Add(s.Total, r.TotalReward)
		if r.BonusReward != nil {
			s.Bonus.Add(s.Bonus, r.BonusReward)
		}
		if r.Claimed {
			s.Claimed.Add(s.Claimed, r.TotalReward)
		} else {
			s.Unclaimed.Add(s.Unclaimed, r.TotalReward)
		}
		s.CampaignCount++
	}
	return summaries
}

// GrandTotals sums the summaries of every wallet with a nonzero total
func GrandTotals(summaries map[string]*WalletSummary) Totals {
	totals := Totals{
		Total:     new(big.Int),
		Claimed:   new(big.Int),
		Unclaimed: new(big.Int),
	}
	for _, s := range summaries {
		if s == nil || s.Total.Sign() <= 0 {
			continue
		}
		totals.Total.Add(totals.Total, s.Total)
		totals.Claimed.Add(totals.Claimed, s.Claimed)
		totals.Unclaimed.Add(totals.Unclaimed, s.Unclaimed)
		totals.Wallets++
	}
	return totals
}

// GroupByCampaign groups records by campaign id in first-seen order
func GroupByCampaign(records []domain.WalletReward) []CampaignRewards {
	groups := orderedmap.New[domain.CampaignID, []domain.WalletReward]()
	for _, r := range records {
		existing, _ := groups.Get(r.CampaignID)
		groups.Set(r.CampaignID, append(existing, r))
	}

	result := make([]CampaignRewards, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, CampaignRewards{CampaignID: pair.Key, Records: pair.Value})
	}
	return result
}

package report

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
)

// JSONRenderer writes reports as indented JSON.
// Amounts are emitted as exact wei strings together with the formatted token value.
type JSONRenderer struct {
	json adapter.JSON
}

type jsonAmount struct {
	Wei       string `json:"wei"`
	Formatted string `json:"formatted"`
}

func amount(wei *big.Int) jsonAmount {
	if wei == nil {
		wei = new(big.Int)
	}
	return jsonAmount{Wei: wei.String(), Formatted: FormatAmount(wei)}
}

type jsonCampaignInfo struct {
	Token        string     `json:"token"`
	StartDate    uint64     `json:"start_date"`
	Deadline     uint64     `json:"deadline"`
	Reclaimed    bool       `json:"reclaimed"`
	TotalAmount  jsonAmount `json:"total_amount"`
	TotalClaimed jsonAmount `json:"total_claimed"`
	ClaimRate    string     `json:"claim_rate,omitempty"`
	Status       string     `json:"status"`
}

func campaignInfo(info *domain.CampaignInfo, now time.Time) *jsonCampaignInfo {
	if info == nil {
		return nil
	}
	rate, _ := ClaimRate(info.TotalAmount, info.TotalClaimed)
	return &jsonCampaignInfo{
		Token:        info.Token.Hex(),
		StartDate:    info.StartDate,
		Deadline:     info.Deadline,
		Reclaimed:    info.Reclaimed,
		TotalAmount:  amount(info.TotalAmount),
		TotalClaimed: amount(info.TotalClaimed),
		ClaimRate:    rate,
		Status:       CampaignStatus(info.StartDate, info.Deadline, now),
	}
}

type jsonCampaign struct {
	Contract    string            `json:"contract"`
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Token       string            `json:"token"`
	StartDate   uint64            `json:"start_date"`
	Deadline    uint64            `json:"deadline"`
	Status      string            `json:"status"`
	BlockNumber uint64            `json:"block_number"`
	TxHash      string            `json:"tx_hash"`
	Info        *jsonCampaignInfo `json:"info,omitempty"`
}

func campaign(c domain.Campaign, now time.Time) jsonCampaign {
	return jsonCampaign{
		Contract:    c.Contract.Hex(),
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Token:       c.Token.Hex(),
		StartDate:   c.StartDate,
		Deadline:    c.Deadline,
		Status:      CampaignStatus(c.StartDate, c.Deadline, now),
		BlockNumber: c.BlockNumber,
		TxHash:      c.TxHash,
		Info:        campaignInfo(c.Info, now),
	}
}

type jsonReward struct {
	Wallet                         string     `json:"wallet"`
	Address                        string     `json:"address"`
	Contract                       string     `json:"contract"`
	CampaignID                     string     `json:"campaign_id"`
	TotalReward                    jsonAmount `json:"total_reward"`
	BonusReward                    jsonAmount `json:"bonus_reward"`
	Claimed                        bool       `json:"claimed"`
	RequiresAdditionalVerification bool       `json:"requires_additional_verification"`
}

func rewardList(records []domain.WalletReward) []jsonReward {
	out := make([]jsonReward, 0, len(records))
	for _, r := range records {
		out = append(out, jsonReward{
			Wallet:                         r.WalletName,
			Address:                        r.WalletAddress.Hex(),
			Contract:                       r.Contract.Hex(),
			CampaignID:                     r.CampaignID.Hex(),
			TotalReward:                    amount(r.TotalReward),
			BonusReward:                    amount(r.BonusReward),
			Claimed:                        r.Claimed,
			RequiresAdditionalVerification: r.RequiresAdditionalVerification,
		})
	}
	return out
}

type jsonSection struct {
	Campaign jsonCampaign `json:"campaign"`
	Rewards  []jsonReward `json:"rewards"`
	Total    jsonAmount   `json:"total"`
}

type jsonKnownName struct {
	Name     string            `json:"name"`
	ID       string            `json:"id"`
	Contract string            `json:"contract"`
	Info     *jsonCampaignInfo `json:"info"`
	Rewards  []jsonReward      `json:"rewards"`
}

type jsonWalletSummary struct {
	Wallet        string     `json:"wallet"`
	Address       string     `json:"address"`
	Total         jsonAmount `json:"total"`
	Bonus         jsonAmount `json:"bonus"`
	Claimed       jsonAmount `json:"claimed"`
	Unclaimed     jsonAmount `json:"unclaimed"`
	CampaignCount int        `json:"campaign_count"`
}

type jsonClaim struct {
	Contract    string     `json:"contract"`
	User        string     `json:"user"`
	CampaignID  string     `json:"campaign_id"`
	TotalReward jsonAmount `json:"total_reward"`
	Fee         jsonAmount `json:"fee"`
	BlockNumber uint64     `json:"block_number"`
	TxHash      string     `json:"tx_hash"`
}

type jsonReport struct {
	RunID               string              `json:"run_id"`
	GeneratedAt         time.Time           `json:"generated_at"`
	Network             string              `json:"network"`
	LatestBlock         uint64              `json:"latest_block"`
	Source              string              `json:"source"`
	IncompleteContracts []string            `json:"incomplete_contracts"`
	Contracts           []string            `json:"contracts"`
	Wallets             []domain.Wallet     `json:"wallets"`
	Campaigns           []jsonCampaign      `json:"campaigns"`
	WithRewards         []jsonSection       `json:"campaigns_with_rewards"`
	WithoutRewards      int                 `json:"campaigns_without_rewards"`
	KnownNames          []jsonKnownName     `json:"known_names"`
	Summaries           []jsonWalletSummary `json:"wallet_summaries"`
	Total               jsonAmount          `json:"total"`
	Claimed             jsonAmount          `json:"claimed"`
	Unclaimed           jsonAmount          `json:"unclaimed"`
	Claims              []jsonClaim         `json:"claims,omitempty"`
	Explorer            []string            `json:"explorer"`
}

func (j *JSONRenderer) write(w io.Writer, v interface{}) error {
	data, err := j.json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Render writes a full monitor run
func (j *JSONRenderer) Render(w io.Writer, r *Report) error {
	out := jsonReport{
		RunID:               r.RunID,
		GeneratedAt:         r.GeneratedAt,
		Network:             r.Network,
		LatestBlock:         r.LatestBlock,
		Source:              r.Source,
		IncompleteContracts: make([]string, 0, len(r.IncompleteContracts)),
		Contracts:           make([]string, 0, len(r.Contracts)),
		Wallets:             r.Wallets,
		Campaigns:           make([]jsonCampaign, 0, len(r.Campaigns)),
		WithRewards:         make([]jsonSection, 0, len(r.WithRewards)),
		WithoutRewards:      r.WithoutRewards,
		KnownNames:          make([]jsonKnownName, 0, len(r.KnownNames)),
		Summaries:           make([]jsonWalletSummary, 0, len(r.Wallets)),
		Total:               amount(r.Totals.Total),
		Claimed:             amount(r.Totals.Claimed),
		Unclaimed:           amount(r.Totals.Unclaimed),
		Explorer:            make([]string, 0, len(r.Contracts)),
	}

	for _, c := range r.IncompleteContracts {
		out.IncompleteContracts = append(out.IncompleteContracts, c.Hex())
	}
	for _, c := range r.Contracts {
		out.Contracts = append(out.Contracts, c.Hex())
		out.Explorer = append(out.Explorer, ExplorerURL(r.ExplorerURL, c))
	}
	for _, c := range r.Campaigns {
		out.Campaigns = append(out.Campaigns, campaign(c, r.GeneratedAt))
	}
	for _, s := range r.WithRewards {
		out.WithRewards = append(out.WithRewards, jsonSection{
			Campaign: campaign(s.Campaign, r.GeneratedAt),
			Rewards:  rewardList(s.Rewards),
			Total:    amount(s.Total),
		})
	}
	for _, hit := range r.KnownNames {
		out.KnownNames = append(out.KnownNames, jsonKnownName{
			Name:     hit.Name,
			ID:       hit.ID.Hex(),
			Contract: hit.Contract.Hex(),
			Info:     campaignInfo(hit.Info, r.GeneratedAt),
			Rewards:  rewardList(hit.Rewards),
		})
	}
	for _, wallet := range r.Wallets {
		summary := jsonWalletSummary{
			Wallet:    wallet.Name,
			Address:   wallet.Address.Hex(),
			Total:     amount(nil),
			Bonus:     amount(nil),
			Claimed:   amount(nil),
			Unclaimed: amount(nil),
		}
		if s := r.Summaries[wallet.Name]; s != nil {
			summary.Total = amount(s.Total)
			summary.Bonus = amount(s.Bonus)
			summary.Claimed = amount(s.Claimed)
			summary.Unclaimed = amount(s.Unclaimed)
			summary.CampaignCount = s.CampaignCount
		}
		out.Summaries = append(out.Summaries, summary)
	}
	if r.Claims != nil {
		out.Claims = make([]jsonClaim, 0, len(r.Claims))
		for _, c := range r.Claims {
			out.Claims = append(out.Claims, jsonClaim{
				Contract:    c.Contract.Hex(),
				User:        c.User.Hex(),
				CampaignID:  c.CampaignID.Hex(),
				TotalReward: amount(c.TotalReward),
				Fee:         amount(c.Fee),
				BlockNumber: c.BlockNumber,
				TxHash:      c.TxHash,
			})
		}
	}

	return j.write(w, out)
}

type jsonLookupEntry struct {
	Contract string            `json:"contract"`
	Error    string            `json:"error,omitempty"`
	Info     *jsonCampaignInfo `json:"info,omitempty"`
	Rewards  []jsonReward      `json:"rewards,omitempty"`
}

// RenderCampaign writes the state of one campaign name on every contract
func (j *JSONRenderer) RenderCampaign(w io.Writer, l *CampaignLookup) error {
	entries := make([]jsonLookupEntry, 0, len(l.Entries))
	for _, e := range l.Entries {
		entry := jsonLookupEntry{Contract: e.Contract.Hex()}
		if e.Err != nil {
			entry.Error = e.Err.Error()
		} else if e.Info.Exists() {
			entry.Info = campaignInfo(e.Info, l.GeneratedAt)
			entry.Rewards = rewardList(e.Rewards)
		}
		entries = append(entries, entry)
	}

	return j.write(w, struct {
		Name      string            `json:"name"`
		ID        string            `json:"id"`
		Contracts []jsonLookupEntry `json:"contracts"`
	}{Name: l.Name, ID: l.ID.Hex(), Contracts: entries})
}

type jsonTokenReward struct {
	Wallet                         string     `json:"wallet"`
	Address                        string     `json:"address"`
	CampaignID                     string     `json:"campaign_id"`
	CampaignName                   string     `json:"campaign_name"`
	TotalReward                    jsonAmount `json:"total_reward"`
	BonusReward                    jsonAmount `json:"bonus_reward"`
	Claimed                        bool       `json:"claimed"`
	RequiresAdditionalVerification bool       `json:"requires_additional_verification"`
}

type jsonNamedCampaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type jsonTokenEntry struct {
	Contract  string              `json:"contract"`
	Error     string              `json:"error,omitempty"`
	Campaigns []jsonNamedCampaign `json:"campaigns"`
	Rewards   []jsonTokenReward   `json:"rewards"`
}

// RenderToken writes the campaigns of a token and the rewards of every wallet
func (j *JSONRenderer) RenderToken(w io.Writer, l *TokenLookup) error {
	entries := make([]jsonTokenEntry, 0, len(l.Entries))
	for _, e := range l.Entries {
		entry := jsonTokenEntry{
			Contract:  e.Contract.Hex(),
			Campaigns: make([]jsonNamedCampaign, 0, len(e.Campaigns)),
			Rewards:   make([]jsonTokenReward, 0, len(e.Rewards)),
		}
		if e.Err != nil {
			entry.Error = e.Err.Error()
		}
		for _, c := range e.Campaigns {
			entry.Campaigns = append(entry.Campaigns, jsonNamedCampaign{ID: c.ID.Hex(), Name: c.Name})
		}
		for _, r := range e.Rewards {
			entry.Rewards = append(entry.Rewards, jsonTokenReward{
				Wallet:                         r.Wallet.Name,
				Address:                        r.Wallet.Address.Hex(),
				CampaignID:                     r.Campaign.ID.Hex(),
				CampaignName:                   r.Campaign.Name,
				TotalReward:                    amount(r.TotalReward),
				BonusReward:                    amount(r.BonusReward),
				Claimed:                        r.Claimed,
				RequiresAdditionalVerification: r.RequiresAdditionalVerification,
			})
		}
		entries = append(entries, entry)
	}

	return j.write(w, struct {
		Token     string           `json:"token"`
		Contracts []jsonTokenEntry `json:"contracts"`
	}{Token: l.Token.Hex(), Contracts: entries})
}

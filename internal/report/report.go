package report

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/rewards"
)

// Format selects the output renderer
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q", domain.ErrConfiguration, s)
	}
}

// Report is the result of a full monitor run
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Network     string
	LatestBlock uint64
	IndexerURL  string
	ExplorerURL string

	Contracts []common.Address
	Wallets   []domain.Wallet

	// Source is the discovery strategy that produced Campaigns
	Source string
	// IncompleteContracts could not be read completely during discovery
	IncompleteContracts []common.Address
	Campaigns           []domain.Campaign

	// WithRewards lists every distinct campaign where a monitored wallet has a reward
	WithRewards    []CampaignSection
	WithoutRewards int

	KnownNames []rewards.KnownNameHit

	Summaries map[string]*rewards.WalletSummary
	Totals    rewards.Totals

	// Claims is nil when claims were not requested
	Claims []domain.ClaimEvent
}

// CampaignSection is a discovered campaign with the positive rewards of the monitored wallets
// across every contract
type CampaignSection struct {
	Campaign domain.Campaign
	Rewards  []domain.WalletReward
	Total    *big.Int
}

// BuildSections attaches reward records to the first discovered campaign of each distinct id.
// Campaigns without any positive reward are only counted.
func BuildSections(campaigns []domain.Campaign, records []domain.WalletReward) (sections []CampaignSection, withoutRewards int) {
	withReward, _ := rewards.Partition(records)
	byID := make(map[domain.CampaignID][]domain.WalletReward)
	for _, g := range rewards.GroupByCampaign(withReward) {
		byID[g.CampaignID] = g.Records
	}

	seen := make(map[domain.CampaignID]bool)
	for _, c := range campaigns {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		records := byID[c.ID]
		if len(records) == 0 {
			withoutRewards++
			continue
		}

		total := new(big.Int)
		for _, r := range records {
			total.Add(total, r.TotalReward)
		}
		sections = append(sections, CampaignSection{Campaign: c, Rewards: records, Total: total})
	}

	return sections, withoutRewards
}

// CampaignLookup is the state of one campaign name on every contract
type CampaignLookup struct {
	Name        string
	ID          domain.CampaignID
	GeneratedAt time.Time
	Entries     []CampaignLookupEntry
}

// CampaignLookupEntry is the campaign state on one contract
type CampaignLookupEntry struct {
	Contract common.Address
	Info     *domain.CampaignInfo
	Rewards  []domain.WalletReward
	// Err is set when the campaign could not be read from the contract
	Err error
}

// TokenLookup lists the campaigns of a token and the rewards of the monitored wallets
type TokenLookup struct {
	Token       common.Address
	GeneratedAt time.Time
	Entries     []TokenLookupEntry
}

// TokenLookupEntry is the token state on one contract
type TokenLookupEntry struct {
	Contract  common.Address
	Campaigns []NamedCampaign
	Rewards   []TokenWalletReward
	Err       error
}

// NamedCampaign is a campaign id with its resolved name
type NamedCampaign struct {
	ID   domain.CampaignID
	Name string
}

// TokenWalletReward is one allRewardInfo entry of a wallet
type TokenWalletReward struct {
	Wallet   domain.Wallet
	Campaign NamedCampaign
	domain.RewardInfo
}

// Renderer writes reports in one output format
type Renderer interface {
	Render(w io.Writer, r *Report) error
	RenderCampaign(w io.Writer, l *CampaignLookup) error
	RenderToken(w io.Writer, l *TokenLookup) error
}

// NewRenderer creates the renderer of the given format
func NewRenderer(format Format, json adapter.JSON) (Renderer, error) {
	switch format {
	case FormatText, "":
		return &TextRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{json: json}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", domain.ErrConfiguration, format)
	}
}

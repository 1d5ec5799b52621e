package report_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/airdrop-monitor/internal/adapter"
	"github.com/feral-file/airdrop-monitor/internal/domain"
	"github.com/feral-file/airdrop-monitor/internal/mocks"
	"github.com/feral-file/airdrop-monitor/internal/report"
	"github.com/feral-file/airdrop-monitor/internal/rewards"
)

var (
	contractA = common.HexToAddress("0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE")
	contractB = common.HexToAddress("0xCc99690276912F7d965972D01E642dCcE5D2b660")
	token     = common.HexToAddress("0xfaFAd008f017C326B62FbfddA7fb2335A5c82247")

	alice = domain.Wallet{Name: "alice", Address: common.HexToAddress("0x1111111111111111111111111111111111111111")}
	bob   = domain.Wallet{Name: "bob", Address: common.HexToAddress("0x2222222222222222222222222222222222222222")}

	h1 = domain.CampaignIDFromName("SpaceCoin Airdrop")
	h2 = domain.CampaignIDFromName("Airdrop")
	h3 = domain.CampaignIDFromName("never registered")

	oneToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), oneToken)
}

func walletReward(w domain.Wallet, contract common.Address, id domain.CampaignID, total int64, claimed bool) domain.WalletReward {
	return domain.WalletReward{
		WalletName:    w.Name,
		WalletAddress: w.Address,
		Contract:      contract,
		CampaignID:    id,
		TotalReward:   tokens(total),
		BonusReward:   big.NewInt(0),
		Claimed:       claimed,
	}
}

// scenarioReport builds the two-wallet run: alice holds 100 unclaimed in h1, bob claimed 200 in h2
func scenarioReport(t *testing.T) *report.Report {
	t.Helper()

	campaigns := []domain.Campaign{
		{Contract: contractA, ID: h1, Name: "SpaceCoin Airdrop", Token: token, Deadline: 1900000000},
		{Contract: contractB, ID: h1, Name: "SpaceCoin Airdrop", Token: token, Deadline: 1900000000},
		{Contract: contractA, ID: h2, Name: "Airdrop", Token: token,
			Info: &domain.CampaignInfo{Token: token, TotalAmount: tokens(400), TotalClaimed: tokens(200)}},
		{Contract: contractA, ID: h3, Name: "Unknown (0x1234567890ab...)", Token: token},
	}
	records := []domain.WalletReward{
		walletReward(alice, contractA, h1, 100, false),
		walletReward(bob, contractA, h1, 0, false),
		walletReward(alice, contractA, h2, 0, false),
		walletReward(bob, contractA, h2, 200, true),
		walletReward(alice, contractA, h3, 0, false),
		walletReward(bob, contractA, h3, 0, false),
	}

	sections, without := report.BuildSections(campaigns, records)
	summaries := rewards.AggregateByWallet(records)

	return &report.Report{
		RunID:       "01JTESTRUN",
		GeneratedAt: time.Unix(1700000000, 0),
		Network:     "testnet",
		LatestBlock: 123456,
		IndexerURL:  "https://creditcoin-testnet.blockscout.com/api/v2",
		ExplorerURL: "https://creditcoin-testnet.blockscout.com",
		Contracts:   []common.Address{contractA, contractB},
		Wallets:     []domain.Wallet{alice, bob},
		Source:      "indexer",
		Campaigns:   campaigns,
		WithRewards: sections,

		WithoutRewards: without,
		Summaries:      summaries,
		Totals:         rewards.GrandTotals(summaries),
	}
}

func TestBuildSections(t *testing.T) {
	r := scenarioReport(t)

	require.Len(t, r.WithRewards, 2)
	assert.Equal(t, 1, r.WithoutRewards)

	assert.Equal(t, h1, r.WithRewards[0].Campaign.ID)
	assert.Equal(t, contractA, r.WithRewards[0].Campaign.Contract)
	require.Len(t, r.WithRewards[0].Rewards, 1)
	assert.Equal(t, "alice", r.WithRewards[0].Rewards[0].WalletName)
	assert.Equal(t, tokens(100).String(), r.WithRewards[0].Total.String())

	assert.Equal(t, h2, r.WithRewards[1].Campaign.ID)
	assert.Equal(t, tokens(200).String(), r.WithRewards[1].Total.String())
}

func TestBuildSections_NoCampaigns(t *testing.T) {
	sections, without := report.BuildSections(nil, nil)
	assert.Empty(t, sections)
	assert.Zero(t, without)
}

func TestTextRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&report.TextRenderer{}).Render(&buf, scenarioReport(t)))
	out := buf.String()

	assert.Contains(t, out, "Found 4 campaign(s). Checking for rewards...")
	assert.Contains(t, out, "CAMPAIGNS WITH REWARDS (2)")
	assert.Contains(t, out, "--- Campaign: SpaceCoin Airdrop ---")
	assert.Contains(t, out, "Hash: "+h1.Hex())
	assert.Contains(t, out, "  >>> Total across all wallets: 100.0000")
	assert.Contains(t, out, "Claim Rate: 50.00%")
	assert.Contains(t, out, "--- 1 campaign(s) with no rewards for monitored wallets ---")
	assert.Contains(t, out, "No active campaigns found with known names.")
	assert.Contains(t, out, "  alice: 100.0000 (Unclaimed)")
	assert.Contains(t, out, "  bob: 200.0000 (Claimed)")
	assert.Contains(t, out, "  TOTAL: 300.0000")
	assert.Contains(t, out, "  Unclaimed: 100.0000")
	assert.Contains(t, out, "  https://creditcoin-testnet.blockscout.com/address/"+contractB.Hex())
	assert.NotContains(t, out, "Claims (")
}

func TestTextRenderer_NoCampaigns(t *testing.T) {
	r := &report.Report{
		Network:   "testnet",
		Wallets:   []domain.Wallet{alice},
		Contracts: []common.Address{contractA},
		Source:    "chain",
		Summaries: map[string]*rewards.WalletSummary{},
		Totals:    rewards.GrandTotals(nil),

		IncompleteContracts: []common.Address{contractA},
	}

	var buf bytes.Buffer
	require.NoError(t, (&report.TextRenderer{}).Render(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "No campaigns discovered yet.")
	assert.Contains(t, out, "Warning: results may be incomplete for "+contractA.Hex())
	assert.Contains(t, out, "  alice: 0.0000")
	assert.NotContains(t, out, "TOTAL:")
}

func TestTextRenderer_Claims(t *testing.T) {
	r := scenarioReport(t)
	r.Claims = []domain.ClaimEvent{{
		Contract:    contractA,
		User:        bob.Address,
		CampaignID:  h2,
		TotalReward: tokens(200),
		Fee:         tokens(1),
		BlockNumber: 42,
		TxHash:      "0xabc",
	}}

	var buf bytes.Buffer
	require.NoError(t, (&report.TextRenderer{}).Render(&buf, r))
	assert.Contains(t, buf.String(), "bob claimed 200.0000 (fee 1.0000) in Airdrop at block 42 tx 0xabc")
}

func TestJSONRenderer_Render(t *testing.T) {
	renderer, err := report.NewRenderer(report.FormatJSON, adapter.NewJSON())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, scenarioReport(t)))

	var decoded struct {
		RunID     string `json:"run_id"`
		Summaries []struct {
			Wallet    string `json:"wallet"`
			Unclaimed struct {
				Wei       string `json:"wei"`
				Formatted string `json:"formatted"`
			} `json:"unclaimed"`
		} `json:"wallet_summaries"`
		Total struct {
			Wei       string `json:"wei"`
			Formatted string `json:"formatted"`
		} `json:"total"`
		WithoutRewards int               `json:"campaigns_without_rewards"`
		Claims         []json.RawMessage `json:"claims"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "01JTESTRUN", decoded.RunID)
	assert.Equal(t, "300000000000000000000", decoded.Total.Wei)
	assert.Equal(t, "300.0000", decoded.Total.Formatted)
	assert.Equal(t, 1, decoded.WithoutRewards)
	assert.Nil(t, decoded.Claims)
	require.Len(t, decoded.Summaries, 2)
	assert.Equal(t, "alice", decoded.Summaries[0].Wallet)
	assert.Equal(t, "100.0000", decoded.Summaries[0].Unclaimed.Formatted)
	assert.Equal(t, "0", decoded.Summaries[1].Unclaimed.Wei)
}

func TestJSONRenderer_MarshalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJSON := mocks.NewMockJSON(ctrl)
	mockJSON.EXPECT().MarshalIndent(gomock.Any(), "", "  ").Return(nil, assert.AnError)

	renderer, err := report.NewRenderer(report.FormatJSON, mockJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Render(&buf, scenarioReport(t))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, buf.Len())
}

func TestRenderCampaign(t *testing.T) {
	lookup := &report.CampaignLookup{
		Name:        "SpaceCoin Airdrop",
		ID:          h1,
		GeneratedAt: time.Unix(1700000000, 0),
		Entries: []report.CampaignLookupEntry{
			{
				Contract: contractA,
				Info:     &domain.CampaignInfo{Token: token, TotalAmount: tokens(10), TotalClaimed: tokens(5)},
				Rewards:  []domain.WalletReward{walletReward(alice, contractA, h1, 3, false)},
			},
			{Contract: contractB, Info: &domain.CampaignInfo{}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&report.TextRenderer{}).RenderCampaign(&buf, lookup))
	out := buf.String()
	assert.Contains(t, out, "Campaign Hash: "+h1.Hex())
	assert.Contains(t, out, "Claim Rate: 50.00%")
	assert.Contains(t, out, "Additional Verification: Not Required")
	assert.Contains(t, out, "Not registered on this contract")
}

func TestRenderToken(t *testing.T) {
	lookup := &report.TokenLookup{
		Token: token,
		Entries: []report.TokenLookupEntry{{
			Contract:  contractA,
			Campaigns: []report.NamedCampaign{{ID: h1, Name: "SpaceCoin Airdrop"}},
			Rewards: []report.TokenWalletReward{{
				Wallet:     alice,
				Campaign:   report.NamedCampaign{ID: h1, Name: "SpaceCoin Airdrop"},
				RewardInfo: domain.RewardInfo{TotalReward: tokens(7), BonusReward: tokens(1), Claimed: true},
			}},
		}},
	}

	renderer, err := report.NewRenderer(report.FormatJSON, adapter.NewJSON())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderToken(&buf, lookup))

	var decoded struct {
		Token     string `json:"token"`
		Contracts []struct {
			Rewards []struct {
				CampaignName string `json:"campaign_name"`
				Claimed      bool   `json:"claimed"`
			} `json:"rewards"`
		} `json:"contracts"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, token.Hex(), decoded.Token)
	require.Len(t, decoded.Contracts, 1)
	require.Len(t, decoded.Contracts[0].Rewards, 1)
	assert.Equal(t, "SpaceCoin Airdrop", decoded.Contracts[0].Rewards[0].CampaignName)
	assert.True(t, decoded.Contracts[0].Rewards[0].Claimed)
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f)

	f, err = report.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, report.FormatText, f)

	_, err = report.ParseFormat("yaml")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

var (
	rule     = strings.Repeat("=", 60)
	thinRule = strings.Repeat("-", 60)
)

// TextRenderer writes the console layout
type TextRenderer struct{}

func heading(b *bytes.Buffer, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n%s\n", rule, title, rule)
}

func writeReward(b *bytes.Buffer, r domain.WalletReward, withVerification bool) {
	fmt.Fprintf(b, "\n  [%s]\n", r.WalletName)
	fmt.Fprintf(b, "  Address: %s\n", r.WalletAddress.Hex())
	fmt.Fprintf(b, "  Total Reward: %s\n", FormatAmount(r.TotalReward))
	fmt.Fprintf(b, "  Bonus Reward: %s\n", FormatAmount(r.BonusReward))
	fmt.Fprintf(b, "  Claimed: %s\n", yesNo(r.Claimed))
	if withVerification {
		fmt.Fprintf(b, "  Additional Verification: %s\n", verification(r.RequiresAdditionalVerification))
	}
}

func writeCampaignInfo(b *bytes.Buffer, info *domain.CampaignInfo) {
	fmt.Fprintf(b, "Token: %s\n", info.Token.Hex())
	fmt.Fprintf(b, "Start Date: %s\n", FormatTimestamp(info.StartDate))
	fmt.Fprintf(b, "Deadline: %s\n", FormatTimestamp(info.Deadline))
	fmt.Fprintf(b, "Reclaimed: %s\n", yesNo(info.Reclaimed))
	fmt.Fprintf(b, "Total Amount: %s\n", FormatAmount(info.TotalAmount))
	fmt.Fprintf(b, "Total Claimed: %s\n", FormatAmount(info.TotalClaimed))
	if rate, ok := ClaimRate(info.TotalAmount, info.TotalClaimed); ok {
		fmt.Fprintf(b, "Claim Rate: %s\n", rate)
	}
}

// Render writes a full monitor run
func (t *TextRenderer) Render(w io.Writer, r *Report) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%s\nAirdrop Monitor\n%s\n", rule, rule)
	fmt.Fprintf(&b, "\nRun: %s\n", r.RunID)
	fmt.Fprintf(&b, "Network: %s\n", r.Network)
	fmt.Fprintf(&b, "Wallets (%d):\n", len(r.Wallets))
	for _, wallet := range r.Wallets {
		fmt.Fprintf(&b, "  - %s: %s\n", wallet.Name, wallet.Address.Hex())
	}
	fmt.Fprintf(&b, "\nContracts (%d):\n", len(r.Contracts))
	for _, c := range r.Contracts {
		fmt.Fprintf(&b, "  - %s\n", c.Hex())
	}
	fmt.Fprintf(&b, "\nLatest block: %d\n", r.LatestBlock)

	heading(&b, "Discovering Campaigns...")
	fmt.Fprintf(&b, "Source: %s\n", r.Source)
	if r.IndexerURL != "" {
		fmt.Fprintf(&b, "Indexer API: %s\n", r.IndexerURL)
	}
	for _, c := range r.IncompleteContracts {
		fmt.Fprintf(&b, "Warning: results may be incomplete for %s\n", c.Hex())
	}

	if len(r.Campaigns) == 0 {
		fmt.Fprintf(&b, "\nNo campaigns discovered yet.\n")
	} else {
		fmt.Fprintf(&b, "\nFound %d campaign(s). Checking for rewards...\n", len(r.Campaigns))
		t.writeSections(&b, r)
	}

	t.writeKnownNames(&b, r)

	if r.Claims != nil {
		t.writeClaims(&b, r)
	}

	t.writeSummary(&b, r)

	_, err := w.Write(b.Bytes())
	return err
}

func (t *TextRenderer) writeSections(b *bytes.Buffer, r *Report) {
	if len(r.WithRewards) == 0 {
		fmt.Fprintf(b, "\n>>> No rewards found for any monitored wallet in any campaign.\n")
	} else {
		heading(b, fmt.Sprintf("CAMPAIGNS WITH REWARDS (%d)", len(r.WithRewards)))

		for _, s := range r.WithRewards {
			c := s.Campaign
			fmt.Fprintf(b, "\n--- Campaign: %s ---\n", c.Name)
			fmt.Fprintf(b, "Hash: %s\n", c.ID.Hex())
			fmt.Fprintf(b, "Contract: %s\n", c.Contract.Hex())
			fmt.Fprintf(b, "Token: %s\n", c.Token.Hex())
			fmt.Fprintf(b, "Deadline: %s\n", FormatTimestamp(c.Deadline))
			fmt.Fprintf(b, "Status: %s\n", CampaignStatus(c.StartDate, c.Deadline, r.GeneratedAt))
			if c.Info != nil {
				fmt.Fprintf(b, "Total Amount: %s\n", FormatAmount(c.Info.TotalAmount))
				fmt.Fprintf(b, "Total Claimed: %s\n", FormatAmount(c.Info.TotalClaimed))
				if rate, ok := ClaimRate(c.Info.TotalAmount, c.Info.TotalClaimed); ok {
					fmt.Fprintf(b, "Claim Rate: %s\n", rate)
				}
			}

			for _, reward := range s.Rewards {
				writeReward(b, reward, false)
			}

			fmt.Fprintf(b, "\n  >>> Total across all wallets: %s\n", FormatAmount(s.Total))
		}
	}

	if r.WithoutRewards > 0 {
		fmt.Fprintf(b, "\n--- %d campaign(s) with no rewards for monitored wallets ---\n", r.WithoutRewards)
	}
}

func (t *TextRenderer) writeKnownNames(b *bytes.Buffer, r *Report) {
	heading(b, "Checking Known Campaign Names (All Contracts)...")

	if len(r.KnownNames) == 0 {
		fmt.Fprintf(b, "\nNo active campaigns found with known names.\n")
		return
	}

	for _, hit := range r.KnownNames {
		fmt.Fprintf(b, "\n--- Campaign: %s ---\n", hit.Name)
		fmt.Fprintf(b, "Contract: %s\n", hit.Contract.Hex())
		fmt.Fprintf(b, "Token: %s\n", hit.Info.Token.Hex())
		fmt.Fprintf(b, "Start Date: %s\n", FormatTimestamp(hit.Info.StartDate))
		fmt.Fprintf(b, "Deadline: %s\n", FormatTimestamp(hit.Info.Deadline))
		fmt.Fprintf(b, "Total Amount: %s\n", FormatAmount(hit.Info.TotalAmount))
		fmt.Fprintf(b, "Total Claimed: %s\n", FormatAmount(hit.Info.TotalClaimed))

		fmt.Fprintf(b, "\n--- Wallet Rewards ---\n")
		for _, reward := range hit.Rewards {
			writeReward(b, reward, false)
		}
	}
}

func (t *TextRenderer) writeClaims(b *bytes.Buffer, r *Report) {
	heading(b, fmt.Sprintf("Claims (%d)", len(r.Claims)))

	names := make(map[string]string, len(r.Wallets))
	for _, w := range r.Wallets {
		names[w.Address.Hex()] = w.Name
	}
	campaigns := make(map[domain.CampaignID]string, len(r.Campaigns))
	for _, c := range r.Campaigns {
		campaigns[c.ID] = c.Name
	}

	for _, c := range r.Claims {
		wallet := names[c.User.Hex()]
		if wallet == "" {
			wallet = c.User.Hex()
		}
		campaign := campaigns[c.CampaignID]
		if campaign == "" {
			campaign = c.CampaignID.Hex()
		}
		fmt.Fprintf(b, "  %s claimed %s (fee %s) in %s at block %d tx %s\n",
			wallet, FormatAmount(c.TotalReward), FormatAmount(c.Fee), campaign, c.BlockNumber, c.TxHash)
	}
}

func (t *TextRenderer) writeSummary(b *bytes.Buffer, r *Report) {
	heading(b, "Summary")

	fmt.Fprintf(b, "\nWallet Rewards Summary:\n%s\n", thinRule)
	for _, w := range r.Wallets {
		s := r.Summaries[w.Name]
		if s == nil || s.Total.Sign() <= 0 {
			fmt.Fprintf(b, "  %s: %s\n", w.Name, FormatAmount(nil))
			continue
		}

		status := "Unclaimed"
		if s.Unclaimed.Sign() == 0 {
			status = "Claimed"
		}
		fmt.Fprintf(b, "  %s: %s (%s)\n", w.Name, FormatAmountGrouped(s.Total), status)
	}

	if r.Totals.Total != nil && r.Totals.Total.Sign() > 0 {
		fmt.Fprintf(b, "%s\n", thinRule)
		fmt.Fprintf(b, "  TOTAL: %s\n", FormatAmountGrouped(r.Totals.Total))
		fmt.Fprintf(b, "  Unclaimed: %s\n", FormatAmountGrouped(r.Totals.Unclaimed))
	}

	fmt.Fprintf(b, "\nMonitored Contracts:\n")
	for _, c := range r.Contracts {
		fmt.Fprintf(b, "  %s\n", ExplorerURL(r.ExplorerURL, c))
	}
}

// RenderCampaign writes the state of one campaign name on every contract
func (t *TextRenderer) RenderCampaign(w io.Writer, l *CampaignLookup) error {
	var b bytes.Buffer

	heading(&b, "Campaign: "+l.Name)
	fmt.Fprintf(&b, "Campaign Hash: %s\n", l.ID.Hex())

	for _, e := range l.Entries {
		fmt.Fprintf(&b, "\n=== Campaign Info (%s) ===\n", e.Contract.Hex())
		switch {
		case e.Err != nil:
			fmt.Fprintf(&b, "Error: %v\n", e.Err)
			continue
		case !e.Info.Exists():
			fmt.Fprintf(&b, "Not registered on this contract\n")
			continue
		}

		writeCampaignInfo(&b, e.Info)
		fmt.Fprintf(&b, "Status: %s\n", CampaignStatus(e.Info.StartDate, e.Info.Deadline, l.GeneratedAt))

		for _, reward := range e.Rewards {
			writeReward(&b, reward, true)
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}

// RenderToken writes the campaigns of a token and the rewards of every wallet
func (t *TextRenderer) RenderToken(w io.Writer, l *TokenLookup) error {
	var b bytes.Buffer

	heading(&b, "Token: "+l.Token.Hex())

	for _, e := range l.Entries {
		fmt.Fprintf(&b, "\n--- Contract: %s ---\n", e.Contract.Hex())
		if e.Err != nil {
			fmt.Fprintf(&b, "Error: %v\n", e.Err)
			continue
		}

		fmt.Fprintf(&b, "Campaigns (%d):\n", len(e.Campaigns))
		for _, c := range e.Campaigns {
			fmt.Fprintf(&b, "  - %s (%s)\n", c.Name, c.ID.Hex())
		}

		for _, r := range e.Rewards {
			fmt.Fprintf(&b, "\n  [%s] %s\n", r.Wallet.Name, r.Campaign.Name)
			fmt.Fprintf(&b, "  Address: %s\n", r.Wallet.Address.Hex())
			fmt.Fprintf(&b, "  Total Reward: %s\n", FormatAmount(r.TotalReward))
			fmt.Fprintf(&b, "  Bonus Reward: %s\n", FormatAmount(r.BonusReward))
			fmt.Fprintf(&b, "  Claimed: %s\n", yesNo(r.Claimed))
			fmt.Fprintf(&b, "  Additional Verification: %s\n", verification(r.RequiresAdditionalVerification))
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}

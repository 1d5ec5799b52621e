package report

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

const (
	// TimestampLayout is the layout of every rendered unix timestamp
	TimestampLayout = "2006-01-02 15:04:05"

	notSet = "Not set"
)

// Campaign status values
const (
	StatusUpcoming = "Upcoming"
	StatusActive   = "Active"
	StatusEnded    = "Ended"
)

// ToToken converts a wei amount into token units
func ToToken(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -domain.TOKEN_DECIMALS)
}

// FormatAmount renders a wei amount in token units with 4 fraction digits
func FormatAmount(wei *big.Int) string {
	return ToToken(wei).StringFixed(4)
}

// FormatAmountGrouped is FormatAmount with thousands separators in the integer part
func FormatAmountGrouped(wei *big.Int) string {
	s := FormatAmount(wei)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	integer, fraction, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	return sign + b.String() + "." + fraction
}

// FormatTimestamp renders unix seconds in local time. Zero means the value was never set.
func FormatTimestamp(ts uint64) string {
	if ts == 0 {
		return notSet
	}
	return time.Unix(int64(ts), 0).Local().Format(TimestampLayout)
}

// ClaimRate returns claimed/total as a percentage with 2 decimals.
// ok is false when total is not positive. Rates above 100% are reported as is.
func ClaimRate(total, claimed *big.Int) (rate string, ok bool) {
	if total == nil || total.Sign() <= 0 {
		return "", false
	}
	if claimed == nil {
		claimed = new(big.Int)
	}

	pct := decimal.NewFromBigInt(claimed, 0).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromBigInt(total, 0))
	return pct.StringFixed(2) + "%", true
}

// ExplorerBase returns the explorer base URL.
// Without an explicit one it is derived from the indexer URL by removing the /api/v2 suffix.
func ExplorerBase(explorerURL, indexerURL string) string {
	if explorerURL != "" {
		return strings.TrimSuffix(explorerURL, "/")
	}
	base := strings.TrimSuffix(indexerURL, "/")
	return strings.TrimSuffix(base, "/api/v2")
}

// ExplorerURL links an address on the explorer
func ExplorerURL(base string, address common.Address) string {
	return base + "/address/" + address.Hex()
}

// CampaignStatus derives the status of a campaign at the given time.
// An unset start date or deadline does not bound the campaign.
func CampaignStatus(startDate, deadline uint64, now time.Time) string {
	ts := now.Unix()
	switch {
	case startDate > 0 && ts < int64(startDate):
		return StatusUpcoming
	case deadline > 0 && ts > int64(deadline):
		return StatusEnded
	default:
		return StatusActive
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func verification(required bool) string {
	if required {
		return "Required"
	}
	return "Not Required"
}

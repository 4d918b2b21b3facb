package export

import (
	"strconv"
	"strings"

	"github.com/rovshanmuradov/launch-economics/internal/preview"
)

// CSVHeaders returns the header row for report CSV files
func CSVHeaders() []string {
	return []string{
		"plan",
		"symbol",
		"ready",
		"fee_mode",
		"fee_bps",
		"protocol_bps",
		"lp_bps",
		"recipient",
		"admin",
		"label",
		"share_bps",
		"rate_bps",
		"is_platform",
		"buy_in",
		"market_cap",
		"tokens_received",
		"price_impact_pct",
		"severity",
		"min_tokens_out",
		"problems",
	}
}

// ReportRows flattens a report into one CSV row per recipient. Plan-level
// columns repeat on every row.
func ReportRows(r preview.Report) [][]string {
	problems := strings.Join(r.Problems(), "; ")
	rows := make([][]string, 0, len(r.Recipients))
	for i, rec := range r.Recipients {
		rate := ""
		if i < len(r.Rates) {
			rate = r.Rates[i].RateBps.String()
		}
		rows = append(rows, []string{
			r.Plan,
			r.Symbol,
			strconv.FormatBool(r.Ready()),
			string(r.Fee.Mode),
			strconv.Itoa(r.Display.FeeBps),
			r.Display.ProtocolBps.String(),
			r.Display.LPBps.String(),
			rec.Recipient,
			rec.Admin,
			rec.Label,
			strconv.Itoa(rec.Bps),
			rate,
			strconv.FormatBool(rec.IsPlatform),
			formatFloat(r.BuyIn),
			formatFloat(r.MarketCap),
			formatFloat(r.Pricing.TokensReceived),
			formatFloat(r.Pricing.PriceImpact),
			string(r.Severity),
			formatFloat(r.MinTokensOut),
			problems,
		})
	}
	return rows
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func decimalBps(bps int) decimal.Decimal {
	return decimal.NewFromInt(int64(bps))
}

func writeRecipients(w io.Writer, rates []fees.RecipientRate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECIPIENT\tLABEL\tSHARE\tRATE")
	for _, r := range rates {
		label := r.Recipient.Label
		if r.Recipient.IsPlatform {
			label += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Recipient.Recipient,
			label,
			fees.Percent(decimalBps(r.Recipient.Bps)),
			fees.Percent(r.RateBps))
	}
	return tw.Flush()
}

func writeDisplay(w io.Writer, d fees.FeeDisplay) {
	fmt.Fprintf(w, "Fee %s: protocol %s, LP %s (payee %s, platform %s)\n",
		fees.Percent(decimalBps(d.FeeBps)),
		fees.Percent(d.ProtocolBps),
		fees.Percent(d.LPBps),
		fees.Percent(d.PayeeBps),
		fees.Percent(d.PlatformBps))
}

func writeCheck(w io.Writer, check fees.DistributionCheck) {
	for _, e := range check.Errors {
		fmt.Fprintf(w, "  error: %s\n", e)
	}
	for _, warn := range check.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}

// parseRecipient reads "address:bps[:label]".
func parseRecipient(s string) (fees.RewardRecipient, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return fees.RewardRecipient{}, fmt.Errorf("recipient %q: expected address:bps[:label]", s)
	}
	bps, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fees.RewardRecipient{}, fmt.Errorf("recipient %q: invalid bps: %w", s, err)
	}
	addr := strings.TrimSpace(parts[0])
	r := fees.RewardRecipient{Recipient: addr, Admin: addr, Bps: bps}
	if len(parts) == 3 {
		r.Label = strings.TrimSpace(parts[2])
	}
	return r, nil
}

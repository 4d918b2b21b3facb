package fees

import (
	"fmt"
	"strings"
)

// DistributionCheck is the result of ValidateDistribution. Errors block the
// deployment, warnings are informational.
type DistributionCheck struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// FeeRateCheck is the result of ValidateFeeRate.
type FeeRateCheck struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateFeeRate checks a user-selected total fee rate in bps.
func (a *Allocator) ValidateFeeRate(feeBps int) FeeRateCheck {
	switch {
	case feeBps < 0:
		return FeeRateCheck{Error: "fee rate cannot be negative"}
	case feeBps > a.cfg.MaxFeeBps:
		return FeeRateCheck{Error: fmt.Sprintf("fee rate %d bps exceeds maximum %d bps", feeBps, a.cfg.MaxFeeBps)}
	case feeBps > 0 && feeBps < a.cfg.MinFeeBps:
		return FeeRateCheck{Error: fmt.Sprintf("fee rate %d bps is below minimum %d bps", feeBps, a.cfg.MinFeeBps)}
	}
	return FeeRateCheck{Valid: true}
}

// ValidateDistribution checks a finalized recipient list.
func (a *Allocator) ValidateDistribution(recipients []RewardRecipient) DistributionCheck {
	var check DistributionCheck

	if len(recipients) == 0 {
		check.Errors = append(check.Errors, "recipient list is empty")
		return check
	}
	if len(recipients) > a.cfg.MaxRecipients() {
		check.Errors = append(check.Errors,
			fmt.Sprintf("too many recipients: %d (maximum %d)", len(recipients), a.cfg.MaxRecipients()))
	}

	seen := make(map[string]int, len(recipients))
	for i, r := range recipients {
		name := describe(i, r)
		if !IsValidAddress(r.Recipient) {
			check.Errors = append(check.Errors, fmt.Sprintf("%s: invalid address %q", name, r.Recipient))
		}
		if r.Admin != "" && !IsValidAddress(r.Admin) {
			check.Errors = append(check.Errors, fmt.Sprintf("%s: invalid admin address %q", name, r.Admin))
		}
		if r.Bps < 0 || r.Bps > TotalBps {
			check.Errors = append(check.Errors,
				fmt.Sprintf("%s: share %d bps is outside 0..%d", name, r.Bps, TotalBps))
		} else if r.Bps == 0 {
			check.Warnings = append(check.Warnings, fmt.Sprintf("%s has a 0 bps allocation", name))
		}

		key := addressKey(r.Recipient)
		seen[key]++
		if seen[key] == 2 {
			check.Errors = append(check.Errors, fmt.Sprintf("duplicate recipient address %s", r.Recipient))
		}
	}

	total := SumBps(recipients)
	switch {
	case total < TotalBps:
		check.Errors = append(check.Errors,
			fmt.Sprintf("total allocation is %d bps, must equal %d bps (%d bps unallocated)", total, TotalBps, TotalBps-total))
	case total > TotalBps:
		check.Errors = append(check.Errors,
			fmt.Sprintf("total allocation is %d bps, must equal %d bps (%d bps over)", total, TotalBps, total-TotalBps))
	}

	check.Valid = len(check.Errors) == 0
	return check
}

func describe(i int, r RewardRecipient) string {
	if label := strings.TrimSpace(r.Label); label != "" {
		return fmt.Sprintf("recipient %d (%s)", i+1, label)
	}
	return fmt.Sprintf("recipient %d", i+1)
}

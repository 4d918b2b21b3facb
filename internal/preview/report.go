package preview

import (
	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/plan"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

// Report is the review-step summary of one launch plan.
type Report struct {
	PlanID int    `json:"plan_id"`
	Plan   string `json:"plan"`
	Symbol string `json:"symbol,omitempty"`

	Fee          fees.FeeSettings       `json:"fee"`
	FeeCheck     fees.FeeRateCheck      `json:"fee_check"`
	Split        plan.SplitMode         `json:"split"`
	Recipients   []fees.RewardRecipient `json:"recipients"`
	Distribution fees.DistributionCheck `json:"distribution"`
	Display      fees.FeeDisplay        `json:"display"`
	// MaxDisplay is set for dynamic fees and shows the split at the max rate.
	MaxDisplay *fees.FeeDisplay     `json:"max_display,omitempty"`
	Rates      []fees.RecipientRate `json:"rates"`

	InitialBuy    bool                   `json:"initial_buy"`
	BuyIn         float64                `json:"buy_in"`
	MarketCap     float64                `json:"market_cap"`
	Pricing       pricing.Result         `json:"pricing"`
	Severity      pricing.ImpactSeverity `json:"severity"`
	ImpactWarning string                 `json:"impact_warning,omitempty"`
	Slippage      pricing.SlippageConfig `json:"slippage"`
	MinTokensOut  float64                `json:"min_tokens_out"`
}

// Ready reports whether the plan may proceed to deployment: the fee rate and
// the final distribution must both be valid.
func (r *Report) Ready() bool {
	return r.FeeCheck.Valid && r.Distribution.Valid
}

// Problems lists every blocking error in display order.
func (r *Report) Problems() []string {
	var problems []string
	if !r.FeeCheck.Valid && r.FeeCheck.Error != "" {
		problems = append(problems, r.FeeCheck.Error)
	}
	return append(problems, r.Distribution.Errors...)
}

// =============================================
// File: internal/plan/plan.go
// =============================================
package plan

import (
	"fmt"
	"time"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

// SplitMode selects how LP fees are distributed.
type SplitMode string

const (
	// SplitSimple: payee 75%, platform 25%
	SplitSimple SplitMode = "simple"
	// SplitCustom: user-supplied recipients, platform appended
	SplitCustom SplitMode = "custom"
)

// Plan is one token launch as entered in the wizard.
type Plan struct {
	ID          int
	Name        string
	Symbol      string
	Payee       string
	Fee         fees.FeeSettings
	Split       SplitMode
	Recipients  []fees.RewardRecipient
	BuyIn       float64
	MarketCap   float64
	TotalSupply float64
	// Slippage overrides the configured default when set.
	Slippage  *pricing.SlippageConfig
	CreatedAt time.Time
}

// HasInitialBuy reports whether the plan performs a buy at creation.
func (p *Plan) HasInitialBuy() bool {
	return p.BuyIn > 0
}

// PricingInput returns the simulator input for the initial buy.
func (p *Plan) PricingInput() pricing.Input {
	return pricing.Input{BuyIn: p.BuyIn, MarketCap: p.MarketCap, TotalSupply: p.TotalSupply}
}

func parseSplit(s string) (SplitMode, error) {
	switch SplitMode(s) {
	case "", SplitSimple:
		return SplitSimple, nil
	case SplitCustom:
		return SplitCustom, nil
	default:
		return "", fmt.Errorf("unsupported split: %q", s)
	}
}

// =============================
// File: internal/fees/allocator.go
// =============================
package fees

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Allocator распределяет LP-комиссии между получателями с обязательной долей платформы.
// Все методы чистые: входные срезы не изменяются.
type Allocator struct {
	cfg    Config
	logger *zap.Logger
}

// NewAllocator validates cfg and returns an allocator bound to it.
func NewAllocator(cfg Config, logger *zap.Logger) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fee config: %w", err)
	}
	if cfg.PlatformAdmin == "" {
		cfg.PlatformAdmin = cfg.PlatformAddress
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{cfg: cfg, logger: logger}, nil
}

// Config returns the allocator's configuration.
func (a *Allocator) Config() Config {
	return a.cfg
}

func (a *Allocator) platformRecipient(bps int) RewardRecipient {
	return RewardRecipient{
		Recipient:  a.cfg.PlatformAddress,
		Admin:      a.cfg.PlatformAdmin,
		Bps:        bps,
		Label:      LabelPlatform,
		IsPlatform: true,
		IsDefault:  true,
	}
}

// SimpleSplit builds the two-entry default distribution: the payee gets the
// whole user budget and the platform its fixed share.
func (a *Allocator) SimpleSplit(payee string) []RewardRecipient {
	creator := RewardRecipient{
		Recipient: payee,
		Admin:     payee,
		Bps:       a.cfg.UserBudgetBps(),
		Label:     LabelCreator,
		IsDefault: true,
	}
	return []RewardRecipient{creator, a.platformRecipient(a.cfg.PlatformShareBps)}
}

// Allocate finalizes a custom distribution so that it always sums to TotalBps.
//
// Entries pointing at the platform are dropped and re-synthesized at the end.
// Overage above the user budget is taken from the last entry first, moving
// backwards once an entry reaches zero. Any shortfall goes to the last entry.
// Each requested share is first clamped to [0, user budget].
// With no user entries left the platform entry takes the whole pool.
func (a *Allocator) Allocate(feeBps int, recipients []RewardRecipient) []RewardRecipient {
	budget := a.cfg.UserBudgetBps()

	users := make([]RewardRecipient, 0, len(recipients)+1)
	dropped := 0
	for _, r := range recipients {
		if r.IsPlatform || SameAddress(r.Recipient, a.cfg.PlatformAddress) {
			dropped++
			continue
		}
		r.IsDefault = false
		// no single share can exceed the budget, so the sum cannot overflow
		r.Bps = min(max(r.Bps, 0), budget)
		users = append(users, r)
	}

	sum := SumBps(users)
	switch {
	case sum > budget:
		over := sum - budget
		for i := len(users) - 1; i >= 0 && over > 0; i-- {
			cut := min(users[i].Bps, over)
			users[i].Bps -= cut
			over -= cut
		}
	case sum < budget && len(users) > 0:
		users[len(users)-1].Bps += budget - sum
	}

	platformBps := a.cfg.PlatformShareBps
	if len(users) == 0 {
		platformBps = TotalBps
	}
	result := append(users, a.platformRecipient(platformBps))

	a.logger.Debug("Fee distribution allocated",
		zap.Int("fee_bps", feeBps),
		zap.Int("requested_bps", sum),
		zap.Int("user_budget_bps", budget),
		zap.Int("dropped_platform_entries", dropped),
		zap.Int("recipients", len(result)))

	return result
}

// RecipientRate is a recipient's cut of swap volume after the protocol carve-out.
type RecipientRate struct {
	Recipient RewardRecipient `json:"recipient"`
	RateBps   decimal.Decimal `json:"rate_bps"`
}

// EffectiveRates converts shares of the LP pool into bps of traded volume.
func (a *Allocator) EffectiveRates(feeBps int, recipients []RewardRecipient) []RecipientRate {
	lp := a.DisplayInfo(feeBps).LPBps
	rates := make([]RecipientRate, 0, len(recipients))
	for _, r := range recipients {
		rates = append(rates, RecipientRate{
			Recipient: r,
			RateBps:   lp.Mul(decimal.NewFromInt(int64(r.Bps))).Div(bpsDenominator),
		})
	}
	return rates
}

package fees

import (
	"github.com/shopspring/decimal"
)

var (
	bpsDenominator = decimal.NewFromInt(TotalBps)
	hundred        = decimal.NewFromInt(100)
)

// FeeDisplay breaks a user fee rate down for preview. All values are bps of
// traded volume.
type FeeDisplay struct {
	FeeBps      int             `json:"fee_bps"`
	ProtocolBps decimal.Decimal `json:"protocol_bps"`
	LPBps       decimal.Decimal `json:"lp_bps"`
	PayeeBps    decimal.Decimal `json:"payee_bps"`
	PlatformBps decimal.Decimal `json:"platform_bps"`
}

// DisplayInfo splits feeBps into the protocol carve-out and the LP portion,
// then splits the LP portion between payee and platform with the same ratio
// SimpleSplit uses. Negative rates are shown as zero.
func (a *Allocator) DisplayInfo(feeBps int) FeeDisplay {
	fee := decimal.NewFromInt(int64(max(feeBps, 0)))

	protocol := fee.Mul(decimal.NewFromInt(int64(a.cfg.ProtocolFeeBps))).Div(bpsDenominator)
	lp := fee.Sub(protocol)
	platform := lp.Mul(decimal.NewFromInt(int64(a.cfg.PlatformShareBps))).Div(bpsDenominator)

	return FeeDisplay{
		FeeBps:      feeBps,
		ProtocolBps: protocol,
		LPBps:       lp,
		PayeeBps:    lp.Sub(platform),
		PlatformBps: platform,
	}
}

// Percent renders a bps amount as a percentage string, e.g. 25 -> "0.25%".
func Percent(bps decimal.Decimal) string {
	return bps.Div(hundred).String() + "%"
}

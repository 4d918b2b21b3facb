package fees

import "fmt"

// FeeMode selects how the pool charges swap fees after deployment.
type FeeMode string

const (
	FeeModeStatic  FeeMode = "static"
	FeeModeDynamic FeeMode = "dynamic"
)

// StaticFee charges a flat rate.
type StaticFee struct {
	Bps int `json:"bps"`
}

// DynamicFee moves between a base and a maximum rate depending on volatility.
type DynamicFee struct {
	BaseBps int `json:"base_bps"`
	MaxBps  int `json:"max_bps"`
}

// FeeSettings is a tagged variant: exactly one payload matches Mode.
// The allocator does not look at it; the deployment step does.
type FeeSettings struct {
	Mode    FeeMode     `json:"mode"`
	Static  *StaticFee  `json:"static,omitempty"`
	Dynamic *DynamicFee `json:"dynamic,omitempty"`
}

// Static returns static fee settings.
func Static(bps int) FeeSettings {
	return FeeSettings{Mode: FeeModeStatic, Static: &StaticFee{Bps: bps}}
}

// Dynamic returns dynamic fee settings.
func Dynamic(baseBps, maxBps int) FeeSettings {
	return FeeSettings{Mode: FeeModeDynamic, Dynamic: &DynamicFee{BaseBps: baseBps, MaxBps: maxBps}}
}

// PreviewBps is the rate used for display and effective-rate previews: the
// flat rate for static fees, the base rate for dynamic ones.
func (s FeeSettings) PreviewBps() int {
	switch s.Mode {
	case FeeModeStatic:
		if s.Static != nil {
			return s.Static.Bps
		}
	case FeeModeDynamic:
		if s.Dynamic != nil {
			return s.Dynamic.BaseBps
		}
	}
	return 0
}

// Check validates every rate carried by the settings against the allocator bounds.
func (s FeeSettings) Check(a *Allocator) FeeRateCheck {
	switch s.Mode {
	case FeeModeStatic:
		if s.Static == nil {
			return FeeRateCheck{Error: "static fee mode requires a fee rate"}
		}
		return a.ValidateFeeRate(s.Static.Bps)
	case FeeModeDynamic:
		if s.Dynamic == nil {
			return FeeRateCheck{Error: "dynamic fee mode requires base and max rates"}
		}
		if c := a.ValidateFeeRate(s.Dynamic.BaseBps); !c.Valid {
			return FeeRateCheck{Error: "base " + c.Error}
		}
		if c := a.ValidateFeeRate(s.Dynamic.MaxBps); !c.Valid {
			return FeeRateCheck{Error: "max " + c.Error}
		}
		if s.Dynamic.BaseBps > s.Dynamic.MaxBps {
			return FeeRateCheck{Error: fmt.Sprintf("base fee %d bps exceeds max fee %d bps",
				s.Dynamic.BaseBps, s.Dynamic.MaxBps)}
		}
		return FeeRateCheck{Valid: true}
	default:
		return FeeRateCheck{Error: fmt.Sprintf("unsupported fee mode %q", s.Mode)}
	}
}

// ParseFeeMode accepts "static" or "dynamic"; empty means static.
func ParseFeeMode(s string) (FeeMode, error) {
	switch FeeMode(s) {
	case "", FeeModeStatic:
		return FeeModeStatic, nil
	case FeeModeDynamic:
		return FeeModeDynamic, nil
	default:
		return "", fmt.Errorf("unsupported fee mode: %q", s)
	}
}

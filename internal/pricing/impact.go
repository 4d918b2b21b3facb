package pricing

// Price impact thresholds in percent
const (
	ImpactLow      = 1.0
	ImpactModerate = 3.0
	ImpactHigh     = 5.0
	ImpactExtreme  = 10.0
)

// ImpactSeverity classifies a price impact for display.
type ImpactSeverity string

const (
	SeverityNone     ImpactSeverity = "none"     // < 1%
	SeverityLow      ImpactSeverity = "low"      // 1-3%
	SeverityModerate ImpactSeverity = "moderate" // 3-5%
	SeverityHigh     ImpactSeverity = "high"     // 5-10%
	SeverityExtreme  ImpactSeverity = "extreme"  // >= 10%
)

// Severity returns the bucket for a price impact given in percent.
func Severity(impactPercent float64) ImpactSeverity {
	switch {
	case impactPercent < ImpactLow:
		return SeverityNone
	case impactPercent < ImpactModerate:
		return SeverityLow
	case impactPercent < ImpactHigh:
		return SeverityModerate
	case impactPercent < ImpactExtreme:
		return SeverityHigh
	default:
		return SeverityExtreme
	}
}

// Warning returns a user-facing hint for the severity, empty when none is needed.
func Warning(severity ImpactSeverity) string {
	switch severity {
	case SeverityLow:
		return "Low price impact"
	case SeverityModerate:
		return "Moderate price impact - consider a smaller initial buy"
	case SeverityHigh:
		return "High price impact - the initial buy moves the price significantly"
	case SeverityExtreme:
		return "Extreme price impact - the initial buy is large relative to the market cap"
	default:
		return ""
	}
}

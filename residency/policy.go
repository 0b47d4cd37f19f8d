package residency

import "github.com/shopspring/decimal"

// Policy holds the statutory and heuristic knobs. Thresholds are
// configuration; the defaults below are the common 183-day rule plus the
// warning bands the alerting UI expects.
type Policy struct {
	// ThresholdDays is the statutory residency threshold (183-day rule).
	ThresholdDays int
	// WarningDays is the early-warning band; a state is "at risk" once its
	// merged total exceeds this, before the hard threshold is reached.
	WarningDays int
	// AlertWindowDays / CriticalWindowDays gate alert emission on days
	// remaining against the statutory threshold.
	AlertWindowDays    int
	CriticalWindowDays int
	// HighTaxStates feeds the dashboard savings heuristic: each tracked state
	// in this set still under the threshold contributes PerStateSavings.
	HighTaxStates   []string
	PerStateSavings decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		ThresholdDays:      183,
		WarningDays:        150,
		AlertWindowDays:    30,
		CriticalWindowDays: 10,
		HighTaxStates:      []string{"NY", "CA", "NJ", "CT", "HI"},
		PerStateSavings:    decimal.NewFromInt(15000),
	}
}

// TierFor maps a merged day total to the four-tier ordinal risk scale.
// Ties resolve to the higher tier.
func (p Policy) TierFor(totalDays int) RiskLevel {
	ratio := float64(totalDays) / float64(p.ThresholdDays)
	switch {
	case ratio >= 1.0:
		return RiskLevelCritical
	case ratio >= 0.9:
		return RiskLevelHigh
	case ratio >= 0.75:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

func (p Policy) isHighTaxState(state string) bool {
	for _, s := range p.HighTaxStates {
		if s == state {
			return true
		}
	}
	return false
}

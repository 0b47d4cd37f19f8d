package residency

import "github.com/shopspring/decimal"

// ComputeDashboard rolls an owner's intervals for one tax year into the
// account-level summary figures.
//
// TotalDaysTracked deliberately uses the raw per-interval sum: a travel day
// logged in two states counts twice here, because the figure reports logging
// activity, not compliance exposure. RiskLevel and the savings heuristic use
// the merged per-state totals.
func ComputeDashboard(intervals []Interval, year int, p Policy) DashboardStats {
	byState := make(map[string][]Interval)
	for _, iv := range intervals {
		if _, _, ok := clipToYear(iv, year); ok {
			byState[iv.State] = append(byState[iv.State], iv)
		}
	}

	savings := decimal.Zero
	for state, ivs := range byState {
		if p.isHighTaxState(state) && MergedDays(ivs, year) < p.ThresholdDays {
			savings = savings.Add(p.PerStateSavings)
		}
	}

	totals := StateDayTotals(intervals, year, p)
	return DashboardStats{
		TotalDaysTracked:    RawDays(intervals, year),
		ActiveStates:        len(byState),
		EstimatedTaxSavings: savings,
		RiskLevel:           AccountRiskLevel(totals, p),
	}
}

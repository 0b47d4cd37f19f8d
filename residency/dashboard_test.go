package residency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeDashboard(t *testing.T) {
	p := DefaultPolicy()
	intervals := []Interval{
		// FL Jan 1 - Mar 22: 81 days
		stay("FL", date(2025, 1, 1), date(2025, 3, 22)),
		// NY Feb 11 - Feb 18: 8 days, overlapping FL on the calendar
		stay("NY", date(2025, 2, 11), date(2025, 2, 18)),
	}
	stats := ComputeDashboard(intervals, 2025, p)

	if stats.TotalDaysTracked != 89 {
		t.Fatalf("raw presence count expected 81+8=89, got %d", stats.TotalDaysTracked)
	}
	if stats.ActiveStates != 2 {
		t.Fatalf("expected 2 active states, got %d", stats.ActiveStates)
	}
	// NY is in the high-tax set and under the threshold; FL is not high-tax.
	if !stats.EstimatedTaxSavings.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected savings 15000, got %s", stats.EstimatedTaxSavings)
	}
	if stats.RiskLevel != RiskLevelLow {
		t.Fatalf("expected low risk, got %s", stats.RiskLevel)
	}
}

func TestComputeDashboard_NoMergeAcrossStates(t *testing.T) {
	p := DefaultPolicy()
	// Same 10 days logged in two states: tracked count keeps both.
	intervals := []Interval{
		stay("NY", date(2025, 4, 1), date(2025, 4, 10)),
		stay("NJ", date(2025, 4, 1), date(2025, 4, 10)),
	}
	stats := ComputeDashboard(intervals, 2025, p)
	if stats.TotalDaysTracked != 20 {
		t.Fatalf("expected 20 tracked days, got %d", stats.TotalDaysTracked)
	}
	// Both are high-tax states under the threshold.
	if !stats.EstimatedTaxSavings.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("expected savings 30000, got %s", stats.EstimatedTaxSavings)
	}
}

func TestComputeDashboard_NoSavingsAtThreshold(t *testing.T) {
	p := DefaultPolicy()
	start := date(2025, 1, 1)
	intervals := []Interval{stay("NY", start, start.AddDate(0, 0, 182))} // 183 days
	stats := ComputeDashboard(intervals, 2025, p)
	if !stats.EstimatedTaxSavings.IsZero() {
		t.Fatalf("state at the threshold earns no savings estimate, got %s", stats.EstimatedTaxSavings)
	}
	if stats.RiskLevel != RiskLevelCritical {
		t.Fatalf("expected critical at 183 days, got %s", stats.RiskLevel)
	}
}

func TestComputeDashboard_Empty(t *testing.T) {
	stats := ComputeDashboard(nil, 2025, DefaultPolicy())
	if stats.TotalDaysTracked != 0 || stats.ActiveStates != 0 {
		t.Fatalf("empty input expected zero stats, got %+v", stats)
	}
	if !stats.EstimatedTaxSavings.IsZero() {
		t.Fatalf("expected zero savings, got %s", stats.EstimatedTaxSavings)
	}
	if stats.RiskLevel != RiskLevelLow {
		t.Fatalf("expected low risk, got %s", stats.RiskLevel)
	}
}

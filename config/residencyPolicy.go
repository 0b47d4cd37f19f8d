package config

import (
	"os"
	"strings"

	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/shopspring/decimal"
)

// ResidencyPolicy builds the engine policy from environment overrides.
//
// Env:
// - RESIDENCY_THRESHOLD_DAYS        (default 183)
// - RESIDENCY_WARNING_DAYS          (default 150)
// - RESIDENCY_ALERT_WINDOW_DAYS     (default 30)
// - RESIDENCY_CRITICAL_WINDOW_DAYS  (default 10)
// - HIGH_TAX_STATES                 (default "NY,CA,NJ,CT,HI")
// - HIGH_TAX_STATE_SAVINGS          (default 15000)
func ResidencyPolicy() residency.Policy {
	p := residency.DefaultPolicy()

	p.ThresholdDays = intFromEnv("RESIDENCY_THRESHOLD_DAYS", p.ThresholdDays)
	p.WarningDays = intFromEnv("RESIDENCY_WARNING_DAYS", p.WarningDays)
	p.AlertWindowDays = intFromEnv("RESIDENCY_ALERT_WINDOW_DAYS", p.AlertWindowDays)
	p.CriticalWindowDays = intFromEnv("RESIDENCY_CRITICAL_WINDOW_DAYS", p.CriticalWindowDays)

	if raw := strings.TrimSpace(os.Getenv("HIGH_TAX_STATES")); raw != "" {
		var states []string
		for _, part := range strings.Split(raw, ",") {
			if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
				states = append(states, s)
			}
		}
		if len(states) > 0 {
			p.HighTaxStates = states
		}
	}

	if raw := strings.TrimSpace(os.Getenv("HIGH_TAX_STATE_SAVINGS")); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && d.IsPositive() {
			p.PerStateSavings = d
		}
	}

	return p
}

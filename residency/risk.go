package residency

// Classify maps a merged day total to days remaining and the early-warning
// flag. Pure arithmetic over counts; no dates, no state.
func Classify(totalDays int, p Policy) (daysRemaining int, isAtRisk bool) {
	daysRemaining = p.ThresholdDays - totalDays
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	return daysRemaining, totalDays > p.WarningDays
}

func classifyState(state string, totalDays int, p Policy) StateDayTotal {
	remaining, atRisk := Classify(totalDays, p)
	return StateDayTotal{
		State:         state,
		TotalDays:     totalDays,
		DaysRemaining: remaining,
		IsAtRisk:      atRisk,
		RiskLevel:     p.TierFor(totalDays),
	}
}

// AccountRiskLevel is the account-wide classification: the tier of the worst
// (max ratio) tracked state. No tracked states means low.
func AccountRiskLevel(totals []StateDayTotal, p Policy) RiskLevel {
	level := RiskLevelLow
	for _, t := range totals {
		if tier := p.TierFor(t.TotalDays); tier.rank() > level.rank() {
			level = tier
		}
	}
	return level
}

package residency

import "fmt"

// EvaluateState recomputes one state's day total after an interval write and
// returns an alert draft when the state is inside the alert window, or nil.
//
// No deduplication happens here: every qualifying write produces a new draft
// so the risk keeps resurfacing. Callers wanting debouncing must do it
// themselves; silently suppressing alerts changes observable volume.
func EvaluateState(ownerId, state string, intervals []Interval, year int, p Policy) *AlertDraft {
	days := MergedDays(intervals, year)
	remaining, atRisk := Classify(days, p)
	if !atRisk || remaining >= p.AlertWindowDays {
		return nil
	}

	severity := SeverityHigh
	if remaining < p.CriticalWindowDays {
		severity = SeverityCritical
	}

	return &AlertDraft{
		OwnerId:       ownerId,
		State:         state,
		Severity:      severity,
		Title:         fmt.Sprintf("%s residency threshold approaching", state),
		Message: fmt.Sprintf(
			"You have logged %d days in %s this year. Only %d days remain before the %d-day residency threshold.",
			days, state, remaining, p.ThresholdDays),
		TotalDays:     days,
		DaysRemaining: remaining,
	}
}

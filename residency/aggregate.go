package residency

import (
	"sort"
	"time"
)

func yearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// clipToYear truncates an interval to [Jan 1, Dec 31] of the target year.
// ok is false when the interval lies entirely outside the year.
func clipToYear(iv Interval, year int) (start, end time.Time, ok bool) {
	lo, hi := yearBounds(year)
	start, end = DateOnly(iv.StartDate), DateOnly(iv.EndDate)
	if end.Before(lo) || start.After(hi) {
		return time.Time{}, time.Time{}, false
	}
	if start.Before(lo) {
		start = lo
	}
	if end.After(hi) {
		end = hi
	}
	return start, end, true
}

// MergedDays returns the number of distinct calendar days in the year covered
// by any of the intervals. Overlapping and adjacent spans collapse into one,
// so re-running over the same records always yields the same count regardless
// of insertion order.
//
// This is the compliance count. Summing per-interval spans instead would
// double count overlapping trips and overstate exposure.
func MergedDays(intervals []Interval, year int) int {
	type span struct{ start, end time.Time }
	spans := make([]span, 0, len(intervals))
	for _, iv := range intervals {
		if s, e, ok := clipToYear(iv, year); ok {
			spans = append(spans, span{s, e})
		}
	}
	if len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	total := 0
	cur := spans[0]
	for _, sp := range spans[1:] {
		// adjacency merges too: [Jan 1-5] + [Jan 6-10] is one 10-day span
		if !sp.start.After(cur.end.AddDate(0, 0, 1)) {
			if sp.end.After(cur.end) {
				cur.end = sp.end
			}
			continue
		}
		total += daysInclusive(cur.start, cur.end)
		cur = sp
	}
	total += daysInclusive(cur.start, cur.end)
	return total
}

// RawDays sums per-interval spans clipped to the year without merging.
// It answers "how much have you logged", not "are you at risk" -- the
// dashboard wants this, compliance math must never use it.
func RawDays(intervals []Interval, year int) int {
	total := 0
	for _, iv := range intervals {
		if s, e, ok := clipToYear(iv, year); ok {
			total += daysInclusive(s, e)
		}
	}
	return total
}

// StateDayTotals groups intervals by state and classifies each state's merged
// total for the year. States are aggregated independently; the same calendar
// day may count in two states (travel days), which is intentional because
// residency-day rules are evaluated per state, not as a calendar partition.
// States contributing zero days to the year are omitted. Results are sorted
// by state code.
func StateDayTotals(intervals []Interval, year int, p Policy) []StateDayTotal {
	byState := make(map[string][]Interval)
	for _, iv := range intervals {
		byState[iv.State] = append(byState[iv.State], iv)
	}

	totals := make([]StateDayTotal, 0, len(byState))
	for state, ivs := range byState {
		days := MergedDays(ivs, year)
		if days == 0 {
			continue
		}
		totals = append(totals, classifyState(state, days, p))
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].State < totals[j].State })
	return totals
}

package residency

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AuditRecords is the already-fetched, already-scoped input to the compiler.
type AuditRecords struct {
	Intervals      []Interval
	Expenses       []Expense
	JournalEntries []JournalEntry
}

// CompileAuditPackage groups a tax year's intervals, expenses, and journal
// entries by state and computes section summaries. stateFilter narrows the
// package to one state when non-empty.
//
// The transform is pure and idempotent: same records in, same package out.
// The output is plain structured data; whatever renders it (PDF, HTML,
// anything else) is someone else's problem.
func CompileAuditPackage(ownerId string, year int, stateFilter string, rec AuditRecords, p Policy) AuditPackage {
	intervalsByState := make(map[string][]Interval)
	for _, iv := range rec.Intervals {
		if stateFilter != "" && iv.State != stateFilter {
			continue
		}
		if _, _, ok := clipToYear(iv, year); ok {
			intervalsByState[iv.State] = append(intervalsByState[iv.State], iv)
		}
	}

	expensesByState := make(map[string][]Expense)
	globalCategories := make(map[string]decimal.Decimal)
	totalExpenses := decimal.Zero
	for _, ex := range rec.Expenses {
		if ex.ExpenseDate.Year() != year {
			continue
		}
		if stateFilter != "" && ex.State != stateFilter {
			continue
		}
		totalExpenses = totalExpenses.Add(ex.Amount)
		globalCategories[ex.Category] = globalCategories[ex.Category].Add(ex.Amount)
		// stateless expenses count toward the grand total only
		if ex.State != "" {
			expensesByState[ex.State] = append(expensesByState[ex.State], ex)
		}
	}

	journalByState := make(map[string][]JournalEntry)
	for _, je := range rec.JournalEntries {
		if je.EntryDate.Year() != year {
			continue
		}
		if stateFilter != "" && je.State != stateFilter {
			continue
		}
		if je.State != "" {
			journalByState[je.State] = append(journalByState[je.State], je)
		}
	}

	states := make(map[string]bool)
	for s := range intervalsByState {
		states[s] = true
	}
	for s := range expensesByState {
		states[s] = true
	}
	for s := range journalByState {
		states[s] = true
	}

	sections := make([]StateSection, 0, len(states))
	for state := range states {
		ivs := intervalsByState[state]
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].StartDate.Before(ivs[j].StartDate) })

		days := MergedDays(ivs, year)
		status := ComplianceStatusCompliant
		if days >= p.ThresholdDays {
			status = ComplianceStatusAtRisk
		}

		expenseTotal := decimal.Zero
		byCategory := make(map[string]decimal.Decimal)
		for _, ex := range expensesByState[state] {
			expenseTotal = expenseTotal.Add(ex.Amount)
			byCategory[ex.Category] = byCategory[ex.Category].Add(ex.Amount)
		}

		sections = append(sections, StateSection{
			State:              state,
			TotalDays:          days,
			ComplianceStatus:   status,
			Intervals:          ivs,
			ExpenseTotal:       expenseTotal,
			ExpensesByCategory: byCategory,
			JournalEntries:     journalByState[state],
		})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].State < sections[j].State })

	return AuditPackage{
		OwnerId:       ownerId,
		TaxYear:       year,
		StateFilter:   stateFilter,
		GeneratedAt:   time.Now().UTC(),
		StateSections: sections,
		Summary:       summarize(sections, totalExpenses, globalCategories, stateFilter, p),
	}
}

// summarize builds the top-level figures. With no state filter the worst
// (highest day count) state stands in as representative for the risk tier and
// compliance status.
func summarize(sections []StateSection, totalExpenses decimal.Decimal, categories map[string]decimal.Decimal, stateFilter string, p Policy) AuditSummary {
	worstDays := 0
	worstStatus := ComplianceStatusCompliant
	for _, sec := range sections {
		if sec.TotalDays > worstDays {
			worstDays = sec.TotalDays
			worstStatus = sec.ComplianceStatus
		}
	}

	summary := AuditSummary{
		TotalDaysInState: worstDays,
		TotalExpenses:    totalExpenses,
		RiskLevel:        p.TierFor(worstDays),
		ComplianceStatus: worstStatus,
	}
	if stateFilter == "" {
		summary.ExpensesByCategory = categories
	}
	return summary
}

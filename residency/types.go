package residency

import (
	"time"

	"github.com/shopspring/decimal"
)

type Provenance string

const (
	ProvenanceManual      Provenance = "manual"
	ProvenanceGeoDetected Provenance = "geo-detected"
)

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// ordinal rank for worst-of comparisons
func (r RiskLevel) rank() int {
	switch r {
	case RiskLevelCritical:
		return 3
	case RiskLevelHigh:
		return 2
	case RiskLevelMedium:
		return 1
	default:
		return 0
	}
}

type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Interval is one reported stay: a state code plus an inclusive, date-only
// range. Start and end are normalized to UTC midnight; callers must reject
// end < start before an interval reaches this package.
type Interval struct {
	ID         int        `json:"id"`
	OwnerId    string     `json:"owner_id"`
	State      string     `json:"state"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Purpose    string     `json:"purpose"`
	Notes      string     `json:"notes"`
	Provenance Provenance `json:"provenance"`
}

// Days returns the inclusive span length. A single-day stay counts as 1.
func (iv Interval) Days() int {
	return daysInclusive(iv.StartDate, iv.EndDate)
}

// Expense is compiled evidence only. The engine groups and sums amounts;
// it never interprets them.
type Expense struct {
	ID          int             `json:"id"`
	OwnerId     string          `json:"owner_id"`
	State       string          `json:"state"`
	ExpenseDate time.Time       `json:"expense_date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Notes       string          `json:"notes"`
}

type JournalEntry struct {
	ID        int       `json:"id"`
	OwnerId   string    `json:"owner_id"`
	State     string    `json:"state"`
	EntryDate time.Time `json:"entry_date"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
}

// StateDayTotal is derived, never persisted. TotalDays is the cardinality of
// the union of calendar days covered by the state's intervals in the year.
type StateDayTotal struct {
	State         string    `json:"state"`
	TotalDays     int       `json:"total_days"`
	DaysRemaining int       `json:"days_remaining"`
	IsAtRisk      bool      `json:"is_at_risk"`
	RiskLevel     RiskLevel `json:"risk_level"`
}

// DashboardStats rolls per-state figures into account-level numbers.
// TotalDaysTracked is a raw presence count (per-interval spans, no merge);
// EstimatedTaxSavings is a rough heuristic, not a tax calculation.
type DashboardStats struct {
	TotalDaysTracked    int             `json:"total_days_tracked"`
	ActiveStates        int             `json:"active_states"`
	EstimatedTaxSavings decimal.Decimal `json:"estimated_tax_savings"`
	RiskLevel           RiskLevel       `json:"risk_level"`
}

// AlertDraft is what the trigger produces; persistence is the caller's job.
type AlertDraft struct {
	OwnerId       string   `json:"owner_id"`
	State         string   `json:"state"`
	Severity      Severity `json:"severity"`
	Title         string   `json:"title"`
	Message       string   `json:"message"`
	TotalDays     int      `json:"total_days"`
	DaysRemaining int      `json:"days_remaining"`
}

type StateSection struct {
	State              string                     `json:"state"`
	TotalDays          int                        `json:"total_days"`
	ComplianceStatus   string                     `json:"compliance_status"`
	Intervals          []Interval                 `json:"intervals"`
	ExpenseTotal       decimal.Decimal            `json:"expense_total"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category"`
	JournalEntries     []JournalEntry             `json:"journal_entries"`
}

type AuditSummary struct {
	TotalDaysInState   int                        `json:"total_days_in_state"`
	TotalExpenses      decimal.Decimal            `json:"total_expenses"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category,omitempty"`
	RiskLevel          RiskLevel                  `json:"risk_level"`
	ComplianceStatus   string                     `json:"compliance_status"`
}

// AuditPackage is a value snapshot; it copies record data and never
// references live rows. Rendering is an external concern.
type AuditPackage struct {
	OwnerId       string         `json:"owner_id"`
	TaxYear       int            `json:"tax_year"`
	StateFilter   string         `json:"state_filter,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
	StateSections []StateSection `json:"state_sections"`
	Summary       AuditSummary   `json:"summary"`
}

const (
	ComplianceStatusCompliant = "Compliant"
	ComplianceStatusAtRisk    = "At Risk"
)

// DateOnly truncates a timestamp to a UTC calendar date. All interval math in
// this package assumes inputs went through this.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

package residency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func expense(state, category string, amount int64, day time.Time) Expense {
	return Expense{OwnerId: "owner-1", State: state, Category: category,
		Amount: decimal.NewFromInt(amount), ExpenseDate: day}
}

func auditFixture() AuditRecords {
	return AuditRecords{
		Intervals: []Interval{
			stay("FL", date(2025, 1, 1), date(2025, 3, 22)),  // 81 days
			stay("NY", date(2025, 2, 11), date(2025, 2, 18)), // 8 days
		},
		Expenses: []Expense{
			expense("FL", "Housing", 2400, date(2025, 1, 15)),
			expense("FL", "Housing", 2400, date(2025, 2, 15)),
			expense("FL", "Travel", 600, date(2025, 3, 1)),
			expense("NY", "Travel", 350, date(2025, 2, 12)),
			expense("", "Legal", 500, date(2025, 6, 1)),          // stateless
			expense("FL", "Housing", 2400, date(2024, 12, 15)),   // prior year
		},
		JournalEntries: []JournalEntry{
			{OwnerId: "owner-1", State: "FL", EntryDate: date(2025, 1, 2), Category: "relocation", Content: "Moved household goods"},
			{OwnerId: "owner-1", State: "NY", EntryDate: date(2025, 2, 11), Category: "business", Content: "Client visit"},
			{OwnerId: "owner-1", State: "NY", EntryDate: date(2024, 2, 11), Category: "business", Content: "Old entry"},
		},
	}
}

func TestCompileAuditPackage_Unfiltered(t *testing.T) {
	pkg := CompileAuditPackage("owner-1", 2025, "", auditFixture(), DefaultPolicy())

	if pkg.TaxYear != 2025 || pkg.OwnerId != "owner-1" {
		t.Fatalf("unexpected header: %+v", pkg)
	}
	if len(pkg.StateSections) != 2 {
		t.Fatalf("expected FL and NY sections, got %d", len(pkg.StateSections))
	}

	fl := pkg.StateSections[0]
	if fl.State != "FL" || fl.TotalDays != 81 {
		t.Fatalf("FL section expected 81 days, got %+v", fl)
	}
	if fl.ComplianceStatus != ComplianceStatusCompliant {
		t.Fatalf("FL expected compliant, got %s", fl.ComplianceStatus)
	}
	if !fl.ExpenseTotal.Equal(decimal.NewFromInt(5400)) {
		t.Fatalf("FL expense total expected 5400 (prior-year excluded), got %s", fl.ExpenseTotal)
	}
	if !fl.ExpensesByCategory["Housing"].Equal(decimal.NewFromInt(4800)) {
		t.Fatalf("FL housing subtotal expected 4800, got %s", fl.ExpensesByCategory["Housing"])
	}
	if len(fl.Intervals) != 1 || len(fl.JournalEntries) != 1 {
		t.Fatalf("FL evidence counts wrong: %d intervals, %d journal entries", len(fl.Intervals), len(fl.JournalEntries))
	}

	ny := pkg.StateSections[1]
	if ny.State != "NY" || ny.TotalDays != 8 {
		t.Fatalf("NY section expected 8 days, got %+v", ny)
	}
	if len(ny.JournalEntries) != 1 {
		t.Fatalf("prior-year journal entry must be excluded, got %d entries", len(ny.JournalEntries))
	}

	// Summary: worst state is FL (81 days); stateless expense counts in totals.
	if pkg.Summary.TotalDaysInState != 81 {
		t.Fatalf("summary expected worst-state 81 days, got %d", pkg.Summary.TotalDaysInState)
	}
	if !pkg.Summary.TotalExpenses.Equal(decimal.NewFromInt(6250)) {
		t.Fatalf("summary expenses expected 6250, got %s", pkg.Summary.TotalExpenses)
	}
	if !pkg.Summary.ExpensesByCategory["Legal"].Equal(decimal.NewFromInt(500)) {
		t.Fatalf("stateless expense must appear in global categories, got %s", pkg.Summary.ExpensesByCategory["Legal"])
	}
	if pkg.Summary.RiskLevel != RiskLevelLow || pkg.Summary.ComplianceStatus != ComplianceStatusCompliant {
		t.Fatalf("summary expected low/compliant, got %+v", pkg.Summary)
	}
}

func TestCompileAuditPackage_StateFilter(t *testing.T) {
	pkg := CompileAuditPackage("owner-1", 2025, "NY", auditFixture(), DefaultPolicy())

	if len(pkg.StateSections) != 1 || pkg.StateSections[0].State != "NY" {
		t.Fatalf("expected only the NY section, got %+v", pkg.StateSections)
	}
	if pkg.StateFilter != "NY" {
		t.Fatalf("expected state filter NY, got %q", pkg.StateFilter)
	}
	if pkg.Summary.TotalDaysInState != 8 {
		t.Fatalf("filtered summary expected 8 days, got %d", pkg.Summary.TotalDaysInState)
	}
	if !pkg.Summary.TotalExpenses.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("filtered summary expenses expected 350, got %s", pkg.Summary.TotalExpenses)
	}
}

func TestCompileAuditPackage_AtRiskStatus(t *testing.T) {
	start := date(2025, 1, 1)
	rec := AuditRecords{Intervals: []Interval{stay("NY", start, start.AddDate(0, 0, 182))}} // 183 days
	pkg := CompileAuditPackage("owner-1", 2025, "", rec, DefaultPolicy())

	if pkg.StateSections[0].ComplianceStatus != ComplianceStatusAtRisk {
		t.Fatalf("183 days expected At Risk, got %s", pkg.StateSections[0].ComplianceStatus)
	}
	if pkg.Summary.RiskLevel != RiskLevelCritical {
		t.Fatalf("expected critical summary, got %s", pkg.Summary.RiskLevel)
	}
}

func TestCompileAuditPackage_Empty(t *testing.T) {
	pkg := CompileAuditPackage("owner-1", 2025, "", AuditRecords{}, DefaultPolicy())
	if len(pkg.StateSections) != 0 {
		t.Fatalf("expected no sections, got %d", len(pkg.StateSections))
	}
	if !pkg.Summary.TotalExpenses.IsZero() || pkg.Summary.TotalDaysInState != 0 {
		t.Fatalf("expected zero summary, got %+v", pkg.Summary)
	}
	if pkg.Summary.RiskLevel != RiskLevelLow {
		t.Fatalf("expected low risk, got %s", pkg.Summary.RiskLevel)
	}
}

func TestCompileAuditPackage_Idempotent(t *testing.T) {
	rec := auditFixture()
	a := CompileAuditPackage("owner-1", 2025, "", rec, DefaultPolicy())
	b := CompileAuditPackage("owner-1", 2025, "", rec, DefaultPolicy())
	if len(a.StateSections) != len(b.StateSections) {
		t.Fatal("repeated compilation must agree on sections")
	}
	for i := range a.StateSections {
		if a.StateSections[i].TotalDays != b.StateSections[i].TotalDays ||
			!a.StateSections[i].ExpenseTotal.Equal(b.StateSections[i].ExpenseTotal) {
			t.Fatalf("section %s differs between runs", a.StateSections[i].State)
		}
	}
}

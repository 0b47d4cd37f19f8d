package residency

import (
	"context"
	"time"
)

// Service binds a Store and a Policy and exposes the engine's operations.
// Every read recomputes from current persisted state; nothing derived is
// cached here, so staleness is bounded by the store's read consistency.
type Service struct {
	store  Store
	policy Policy
}

func NewService(store Store, policy Policy) *Service {
	return &Service{store: store, policy: policy}
}

func (s *Service) Policy() Policy {
	return s.policy
}

// ComputeStateDayTotals returns the per-state merged day totals for the tax
// year. An owner with no records gets an empty slice, never an error.
func (s *Service) ComputeStateDayTotals(ctx context.Context, ownerId string, year int) ([]StateDayTotal, error) {
	intervals, err := s.store.IntervalsForYear(ctx, ownerId, year)
	if err != nil {
		return nil, err
	}
	return StateDayTotals(intervals, year, s.policy), nil
}

// ComputeDashboardStats summarizes the current tax year.
func (s *Service) ComputeDashboardStats(ctx context.Context, ownerId string) (DashboardStats, error) {
	year := time.Now().UTC().Year()
	intervals, err := s.store.IntervalsForYear(ctx, ownerId, year)
	if err != nil {
		return DashboardStats{}, err
	}
	return ComputeDashboard(intervals, year, s.policy), nil
}

// EvaluateNewInterval is called after an interval write is persisted. It
// recomputes the affected state's total for the interval's tax year (the end
// date's year) and returns an alert draft when the warning band plus alert
// window are crossed, or nil. It never writes anything itself.
func (s *Service) EvaluateNewInterval(ctx context.Context, ownerId string, iv Interval) (*AlertDraft, error) {
	year := DateOnly(iv.EndDate).Year()
	intervals, err := s.store.StateIntervalsForYear(ctx, ownerId, iv.State, year)
	if err != nil {
		return nil, err
	}
	return EvaluateState(ownerId, iv.State, intervals, year, s.policy), nil
}

// CompileAuditPackage fetches the year's records and runs the compiler.
// stateFilter may be empty for an all-states package.
func (s *Service) CompileAuditPackage(ctx context.Context, ownerId string, year int, stateFilter string) (AuditPackage, error) {
	intervals, err := s.store.IntervalsForYear(ctx, ownerId, year)
	if err != nil {
		return AuditPackage{}, err
	}
	expenses, err := s.store.ExpensesForYear(ctx, ownerId, year)
	if err != nil {
		return AuditPackage{}, err
	}
	journal, err := s.store.JournalEntriesForYear(ctx, ownerId, year)
	if err != nil {
		return AuditPackage{}, err
	}
	rec := AuditRecords{Intervals: intervals, Expenses: expenses, JournalEntries: journal}
	return CompileAuditPackage(ownerId, year, stateFilter, rec, s.policy), nil
}

package residency

import "context"

// Store is the injected data-access abstraction. The engine never talks to a
// concrete database; callers hand it already-scoped record sets through this
// interface, so a GORM backend and an in-memory fixture are interchangeable.
//
// Year-scoped interval queries must return every interval that overlaps the
// year, including ones that straddle a year boundary; the aggregator clips
// them itself.
type Store interface {
	IntervalsForYear(ctx context.Context, ownerId string, year int) ([]Interval, error)
	StateIntervalsForYear(ctx context.Context, ownerId, state string, year int) ([]Interval, error)
	ExpensesForYear(ctx context.Context, ownerId string, year int) ([]Expense, error)
	JournalEntriesForYear(ctx context.Context, ownerId string, year int) ([]JournalEntry, error)
}

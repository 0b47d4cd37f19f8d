package residency

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and the demo/preview mode.
// Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	nextId   int
	intervals []Interval
	expenses  []Expense
	journal   []JournalEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextId: 1}
}

func (m *MemoryStore) AddInterval(iv Interval) Interval {
	m.mu.Lock()
	defer m.mu.Unlock()
	if iv.ID == 0 {
		iv.ID = m.nextId
		m.nextId++
	}
	iv.StartDate = DateOnly(iv.StartDate)
	iv.EndDate = DateOnly(iv.EndDate)
	m.intervals = append(m.intervals, iv)
	return iv
}

func (m *MemoryStore) AddExpense(ex Expense) Expense {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ex.ID == 0 {
		ex.ID = m.nextId
		m.nextId++
	}
	m.expenses = append(m.expenses, ex)
	return ex
}

func (m *MemoryStore) AddJournalEntry(je JournalEntry) JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if je.ID == 0 {
		je.ID = m.nextId
		m.nextId++
	}
	m.journal = append(m.journal, je)
	return je
}

func (m *MemoryStore) IntervalsForYear(_ context.Context, ownerId string, year int) ([]Interval, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Interval
	for _, iv := range m.intervals {
		if iv.OwnerId != ownerId {
			continue
		}
		if _, _, ok := clipToYear(iv, year); ok {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *MemoryStore) StateIntervalsForYear(ctx context.Context, ownerId, state string, year int) ([]Interval, error) {
	all, err := m.IntervalsForYear(ctx, ownerId, year)
	if err != nil {
		return nil, err
	}
	var out []Interval
	for _, iv := range all {
		if iv.State == state {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *MemoryStore) ExpensesForYear(_ context.Context, ownerId string, year int) ([]Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Expense
	for _, ex := range m.expenses {
		if ex.OwnerId == ownerId && ex.ExpenseDate.Year() == year {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (m *MemoryStore) JournalEntriesForYear(_ context.Context, ownerId string, year int) ([]JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []JournalEntry
	for _, je := range m.journal {
		if je.OwnerId == ownerId && je.EntryDate.Year() == year {
			out = append(out, je)
		}
	}
	return out, nil
}

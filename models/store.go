package models

import (
	"context"

	"github.com/nmswainston/dwellpath-backend/residency"
)

// GormStore adapts the GORM layer to the engine's Store interface so the
// engine never imports a concrete database. The in-memory counterpart lives
// with the engine for tests and preview mode.
type GormStore struct{}

func NewGormStore() *GormStore {
	return &GormStore{}
}

func (GormStore) IntervalsForYear(ctx context.Context, ownerId string, year int) ([]residency.Interval, error) {
	rows, err := GetResidencyIntervals(ctx, ownerId, &year, nil)
	if err != nil {
		return nil, err
	}
	out := make([]residency.Interval, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToRecord())
	}
	return out, nil
}

func (GormStore) StateIntervalsForYear(ctx context.Context, ownerId, state string, year int) ([]residency.Interval, error) {
	rows, err := GetResidencyIntervals(ctx, ownerId, &year, &state)
	if err != nil {
		return nil, err
	}
	out := make([]residency.Interval, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToRecord())
	}
	return out, nil
}

func (GormStore) ExpensesForYear(ctx context.Context, ownerId string, year int) ([]residency.Expense, error) {
	rows, err := GetExpenses(ctx, ownerId, &year, nil)
	if err != nil {
		return nil, err
	}
	out := make([]residency.Expense, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToRecord())
	}
	return out, nil
}

func (GormStore) JournalEntriesForYear(ctx context.Context, ownerId string, year int) ([]residency.JournalEntry, error) {
	rows, err := GetJournalEntries(ctx, ownerId, &year, nil)
	if err != nil {
		return nil, err
	}
	out := make([]residency.JournalEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToRecord())
	}
	return out, nil
}

// CreateAlert satisfies the workflow's alert sink.
func (GormStore) CreateAlert(ctx context.Context, draft residency.AlertDraft) error {
	_, err := CreateAlertFromDraft(ctx, draft)
	return err
}

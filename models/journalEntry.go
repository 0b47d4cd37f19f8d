package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/nmswainston/dwellpath-backend/utils"
)

// JournalEntry is a free-form note attached to a date (and optionally a
// state), carried into audit packages as supporting evidence.
type JournalEntry struct {
	ID        int       `gorm:"primary_key" json:"id"`
	OwnerId   string    `gorm:"index;size:64;not null" json:"owner_id"`
	State     string    `gorm:"index;size:2" json:"state"`
	EntryDate time.Time `gorm:"type:date;not null" json:"entry_date" binding:"required"`
	Category  string    `gorm:"size:100" json:"category"`
	Content   string    `gorm:"type:text;not null" json:"content" binding:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewJournalEntry struct {
	State     string    `json:"state"`
	EntryDate time.Time `json:"entry_date" binding:"required"`
	Category  string    `json:"category"`
	Content   string    `json:"content" binding:"required"`
}

func (j JournalEntry) ToRecord() residency.JournalEntry {
	return residency.JournalEntry{
		ID:        j.ID,
		OwnerId:   j.OwnerId,
		State:     j.State,
		EntryDate: residency.DateOnly(j.EntryDate),
		Category:  j.Category,
		Content:   j.Content,
	}
}

func (input *NewJournalEntry) validate() error {
	input.State = strings.ToUpper(strings.TrimSpace(input.State))
	if input.State != "" && (len(input.State) != 2 || !isAlpha(input.State)) {
		return utils.ErrorInvalidStateCode
	}
	if strings.TrimSpace(input.Content) == "" {
		return errors.New("content is required")
	}
	input.EntryDate = residency.DateOnly(input.EntryDate)
	return nil
}

func CreateJournalEntry(ctx context.Context, ownerId string, input *NewJournalEntry) (*JournalEntry, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	entry := JournalEntry{
		OwnerId:   ownerId,
		State:     input.State,
		EntryDate: input.EntryDate,
		Category:  input.Category,
		Content:   input.Content,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func DeleteJournalEntry(ctx context.Context, ownerId string, id int) (*JournalEntry, error) {
	db := config.GetDB()
	var result JournalEntry

	err := db.WithContext(ctx).Where("owner_id = ?", ownerId).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func GetJournalEntries(ctx context.Context, ownerId string, year *int, state *string) ([]*JournalEntry, error) {
	db := config.GetDB()
	var results []*JournalEntry

	dbCtx := db.WithContext(ctx).Where("owner_id = ?", ownerId)
	if year != nil {
		lo := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		hi := time.Date(*year, time.December, 31, 0, 0, 0, 0, time.UTC)
		dbCtx = dbCtx.Where("entry_date BETWEEN ? AND ?", lo, hi)
	}
	if state != nil && len(*state) > 0 {
		dbCtx = dbCtx.Where("state = ?", strings.ToUpper(*state))
	}
	err := dbCtx.Order("entry_date").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

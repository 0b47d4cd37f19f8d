package models

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/nmswainston/dwellpath-backend/utils"
)

type ResidencyInterval struct {
	ID         int                `gorm:"primary_key" json:"id"`
	OwnerId    string             `gorm:"index;size:64;not null" json:"owner_id"`
	State      string             `gorm:"index;size:2;not null" json:"state" binding:"required"`
	StartDate  time.Time          `gorm:"type:date;not null" json:"start_date" binding:"required"`
	EndDate    time.Time          `gorm:"type:date;not null" json:"end_date" binding:"required"`
	Purpose    string             `gorm:"size:255" json:"purpose"`
	Notes      string             `gorm:"type:text" json:"notes"`
	Provenance IntervalProvenance `gorm:"size:20;not null;default:'manual'" json:"provenance"`
	CreatedAt  time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewResidencyInterval struct {
	State      string             `json:"state" binding:"required"`
	StartDate  time.Time          `json:"start_date" binding:"required"`
	EndDate    time.Time          `json:"end_date" binding:"required"`
	Purpose    string             `json:"purpose"`
	Notes      string             `json:"notes"`
	Provenance IntervalProvenance `json:"provenance"`
}

// ToRecord copies the row into the engine's value type. Snapshots built from
// records never reference live rows.
func (iv ResidencyInterval) ToRecord() residency.Interval {
	return residency.Interval{
		ID:         iv.ID,
		OwnerId:    iv.OwnerId,
		State:      iv.State,
		StartDate:  residency.DateOnly(iv.StartDate),
		EndDate:    residency.DateOnly(iv.EndDate),
		Purpose:    iv.Purpose,
		Notes:      iv.Notes,
		Provenance: residency.Provenance(iv.Provenance),
	}
}

// validate input for both create & update. Rejection happens here, at the
// boundary: the aggregator must never see an inverted range.
func (input *NewResidencyInterval) validate() error {
	input.State = strings.ToUpper(strings.TrimSpace(input.State))
	if len(input.State) != 2 || !isAlpha(input.State) {
		return fmt.Errorf("%w: %q", utils.ErrorInvalidStateCode, input.State)
	}

	input.StartDate = residency.DateOnly(input.StartDate)
	input.EndDate = residency.DateOnly(input.EndDate)
	if input.EndDate.Before(input.StartDate) {
		return fmt.Errorf("%w: %s %s..%s: end date before start date",
			utils.ErrorInvalidDateRange, input.State,
			input.StartDate.Format("2006-01-02"), input.EndDate.Format("2006-01-02"))
	}

	if input.Provenance == "" {
		input.Provenance = IntervalProvenanceManual
	}
	return input.Provenance.Valid()
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func CreateResidencyInterval(ctx context.Context, ownerId string, input *NewResidencyInterval) (*ResidencyInterval, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	interval := ResidencyInterval{
		OwnerId:    ownerId,
		State:      input.State,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Purpose:    input.Purpose,
		Notes:      input.Notes,
		Provenance: input.Provenance,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&interval).Error
	if err != nil {
		return nil, err
	}

	return &interval, nil
}

func UpdateResidencyInterval(ctx context.Context, ownerId string, id int, input *NewResidencyInterval) (*ResidencyInterval, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var interval ResidencyInterval
	if err := db.WithContext(ctx).Where("owner_id = ?", ownerId).First(&interval, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	err := db.WithContext(ctx).Model(&interval).Updates(map[string]interface{}{
		"State":      input.State,
		"StartDate":  input.StartDate,
		"EndDate":    input.EndDate,
		"Purpose":    input.Purpose,
		"Notes":      input.Notes,
		"Provenance": input.Provenance,
	}).Error
	if err != nil {
		return nil, err
	}

	return &interval, nil
}

func DeleteResidencyInterval(ctx context.Context, ownerId string, id int) (*ResidencyInterval, error) {
	db := config.GetDB()
	var result ResidencyInterval

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

func GetResidencyInterval(ctx context.Context, ownerId string, id int) (*ResidencyInterval, error) {
	db := config.GetDB()
	var result ResidencyInterval
	err := db.WithContext(ctx).Where("owner_id = ?", ownerId).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

// GetResidencyIntervals lists an owner's intervals, optionally narrowed to a
// tax year (any overlap counts, including ranges straddling the boundary) and
// a state.
func GetResidencyIntervals(ctx context.Context, ownerId string, year *int, state *string) ([]*ResidencyInterval, error) {
	db := config.GetDB()
	var results []*ResidencyInterval

	dbCtx := db.WithContext(ctx).Where("owner_id = ?", ownerId)
	if year != nil {
		lo := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		hi := time.Date(*year, time.December, 31, 0, 0, 0, 0, time.UTC)
		dbCtx = dbCtx.Where("start_date <= ? AND end_date >= ?", hi, lo)
	}
	if state != nil && len(*state) > 0 {
		dbCtx = dbCtx.Where("state = ?", strings.ToUpper(*state))
	}
	err := dbCtx.Order("start_date").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

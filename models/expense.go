package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/nmswainston/dwellpath-backend/utils"
	"github.com/shopspring/decimal"
)

// Expense is compiled evidence for the audit package. The engine only groups
// and sums amounts by state and category; it never interprets them.
type Expense struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OwnerId     string          `gorm:"index;size:64;not null" json:"owner_id"`
	State       string          `gorm:"index;size:2" json:"state"`
	ExpenseDate time.Time       `gorm:"type:date;not null" json:"expense_date" binding:"required"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Category    string          `gorm:"size:100;not null" json:"category" binding:"required"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewExpense struct {
	State       string          `json:"state"`
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" binding:"required"`
	Notes       string          `json:"notes"`
}

func (e Expense) ToRecord() residency.Expense {
	return residency.Expense{
		ID:          e.ID,
		OwnerId:     e.OwnerId,
		State:       e.State,
		ExpenseDate: residency.DateOnly(e.ExpenseDate),
		Amount:      e.Amount,
		Category:    e.Category,
		Notes:       e.Notes,
	}
}

// validate input for create. State is optional; an empty state means the
// expense is not tied to one.
func (input *NewExpense) validate() error {
	input.State = strings.ToUpper(strings.TrimSpace(input.State))
	if input.State != "" && (len(input.State) != 2 || !isAlpha(input.State)) {
		return utils.ErrorInvalidStateCode
	}
	if strings.TrimSpace(input.Category) == "" {
		return errors.New("category is required")
	}
	if input.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	input.ExpenseDate = residency.DateOnly(input.ExpenseDate)
	return nil
}

func CreateExpense(ctx context.Context, ownerId string, input *NewExpense) (*Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense := Expense{
		OwnerId:     ownerId,
		State:       input.State,
		ExpenseDate: input.ExpenseDate,
		Amount:      input.Amount,
		Category:    input.Category,
		Notes:       input.Notes,
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&expense).Error
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

func DeleteExpense(ctx context.Context, ownerId string, id int) (*Expense, error) {
	db := config.GetDB()
	var result Expense

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

func GetExpenses(ctx context.Context, ownerId string, year *int, state *string) ([]*Expense, error) {
	db := config.GetDB()
	var results []*Expense

	dbCtx := db.WithContext(ctx).Where("owner_id = ?", ownerId)
	if year != nil {
		lo := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		hi := time.Date(*year, time.December, 31, 0, 0, 0, 0, time.UTC)
		dbCtx = dbCtx.Where("expense_date BETWEEN ? AND ?", lo, hi)
	}
	if state != nil && len(*state) > 0 {
		dbCtx = dbCtx.Where("state = ?", strings.ToUpper(*state))
	}
	err := dbCtx.Order("expense_date").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

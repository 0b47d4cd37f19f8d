package models

import (
	"context"
	"time"

	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/nmswainston/dwellpath-backend/utils"
)

// Alert rows are created only by the post-write alert workflow. Users read
// and delete them; nothing here ever feeds back into day totals.
type Alert struct {
	ID            int           `gorm:"primary_key" json:"id"`
	OwnerId       string        `gorm:"index;size:64;not null" json:"owner_id"`
	State         string        `gorm:"size:2;not null" json:"state"`
	Severity      AlertSeverity `gorm:"size:20;not null" json:"severity"`
	Title         string        `gorm:"size:255;not null" json:"title"`
	Message       string        `gorm:"type:text" json:"message"`
	TotalDays     int           `json:"total_days"`
	DaysRemaining int           `json:"days_remaining"`
	IsRead        *bool         `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func CreateAlertFromDraft(ctx context.Context, draft residency.AlertDraft) (*Alert, error) {
	isRead := false
	alert := Alert{
		OwnerId:       draft.OwnerId,
		State:         draft.State,
		Severity:      AlertSeverity(draft.Severity),
		Title:         draft.Title,
		Message:       draft.Message,
		TotalDays:     draft.TotalDays,
		DaysRemaining: draft.DaysRemaining,
		IsRead:        &isRead,
	}
	if err := alert.Severity.Valid(); err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&alert).Error
	if err != nil {
		return nil, err
	}

	return &alert, nil
}

func GetAlerts(ctx context.Context, ownerId string, unreadOnly bool) ([]*Alert, error) {
	db := config.GetDB()
	var results []*Alert

	dbCtx := db.WithContext(ctx).Where("owner_id = ?", ownerId)
	if unreadOnly {
		dbCtx = dbCtx.Where("is_read = ?", false)
	}
	err := dbCtx.Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func MarkAlertRead(ctx context.Context, ownerId string, id int) (*Alert, error) {
	db := config.GetDB()
	var alert Alert
	if err := db.WithContext(ctx).Where("owner_id = ?", ownerId).First(&alert, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	err := db.WithContext(ctx).Model(&alert).Update("is_read", true).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func DeleteAlert(ctx context.Context, ownerId string, id int) (*Alert, error) {
	db := config.GetDB()
	var result Alert

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

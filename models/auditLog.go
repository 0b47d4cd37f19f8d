package models

import (
	"context"
	"time"

	"github.com/nmswainston/dwellpath-backend/config"
)

// AuditLog records that a package generation happened (audit of the audit
// tool). It is history only and never feeds recomputation.
type AuditLog struct {
	ID            int       `gorm:"primary_key" json:"id"`
	OwnerId       string    `gorm:"index;size:64;not null" json:"owner_id"`
	TaxYear       int       `gorm:"not null" json:"tax_year"`
	StateFilter   string    `gorm:"size:2" json:"state_filter"`
	RequestedType string    `gorm:"size:50;not null" json:"requested_type"`
	SectionCount  int       `json:"section_count"`
	ByteSize      int       `json:"byte_size"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(entry).Error
}

func GetAuditLogs(ctx context.Context, ownerId string) ([]*AuditLog, error) {
	db := config.GetDB()
	var results []*AuditLog
	err := db.WithContext(ctx).Where("owner_id = ?", ownerId).Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

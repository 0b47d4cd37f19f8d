package models

import (
	"log"

	"github.com/nmswainston/dwellpath-backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&ResidencyInterval{},
		&Expense{},
		&JournalEntry{},
		&Alert{},
		&AuditLog{},
	)
	if err != nil {
		log.Fatal(err)
	}
}

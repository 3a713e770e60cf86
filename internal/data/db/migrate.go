package db

import (
	"gorm.io/gorm"

	types "github.com/kisansaathi/kisansaathi-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.SearchLog{},
	)
}

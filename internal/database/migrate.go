package database

import (
	"podcast_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Podcast{},
	)
}

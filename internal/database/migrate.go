package database

import (
	"gorm.io/gorm"

	"github.com/mise-app/backend/internal/model"
)

// RunMigrations creates or updates the cookbook schema. Recipe must come
// first so the transcript foreign key has a target table.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Recipe{},
		&model.Transcript{},
	)
}

package database

import (
	"fmt"
	"log"

	"codebot-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the SQLite database and migrates the schema. The returned
// handle is injected into the repositories; there is no package-level DB.
func Init(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.UsageRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("INFO: [Database] Connected to %s", path)
	return db, nil
}

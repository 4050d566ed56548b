package testing

import (
	"testing"

	"github.com/avenkat/caprelay/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB creates an in-memory SQLite database for testing
func TestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.BotState{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// CleanupDB removes all records from test database tables
func CleanupDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	db.Exec("DELETE FROM bot_state")
	db.Exec("DELETE FROM activity_logs")
}

// SeedState creates a bot state row with optional overrides
func SeedState(db *gorm.DB, overrides ...func(*models.BotState)) *models.BotState {
	state := &models.BotState{
		FixedName:  "",
		DumpTarget: "",
		Counter:    0,
	}
	state.SetPrefixList([]string{"/leech -n"})

	for _, override := range overrides {
		override(state)
	}

	db.Create(state)
	return state
}

// Package store persists bot state and activity history through gorm.
// There is exactly one bot_state row; it is created on first load with the
// configured defaults and updated in place afterwards.
package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/avenkat/caprelay/internal/errors"
	"github.com/avenkat/caprelay/internal/logger"
	"github.com/avenkat/caprelay/internal/models"
)

// State is the in-memory shape of the persisted bot state
type State struct {
	FixedName  string
	DumpTarget string
	Prefixes   []string
	Counter    uint64
}

// Store reads and writes bot state and activity entries
type Store struct {
	db *gorm.DB
}

// New creates a Store
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load returns the persisted state, creating the row with the given
// defaults when it does not exist yet.
func (s *Store) Load(defaults State) (State, error) {
	var row models.BotState
	err := s.db.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.BotState{
			FixedName:  defaults.FixedName,
			DumpTarget: defaults.DumpTarget,
			Counter:    defaults.Counter,
		}
		row.SetPrefixList(defaults.Prefixes)
		if err := s.db.Create(&row).Error; err != nil {
			return State{}, apperrors.DatabaseError("failed to create bot state", err)
		}
		return defaults, nil
	}
	if err != nil {
		return State{}, apperrors.DatabaseError("failed to load bot state", err)
	}

	return State{
		FixedName:  row.FixedName,
		DumpTarget: row.DumpTarget,
		Prefixes:   row.PrefixList(),
		Counter:    row.Counter,
	}, nil
}

// Save writes the current state back. Persistence failures are logged and
// swallowed: losing a counter update must never take the pipeline down.
func (s *Store) Save(state State) {
	var row models.BotState
	err := s.db.First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.StoreLogger().Error("failed to read bot state for save", err)
		return
	}

	row.FixedName = state.FixedName
	row.DumpTarget = state.DumpTarget
	row.Counter = state.Counter
	row.SetPrefixList(state.Prefixes)

	if err := s.db.Save(&row).Error; err != nil {
		logger.StoreLogger().Error("failed to save bot state", err)
	}
}

// RecordActivity appends one activity entry. Like Save, failures are
// logged and swallowed.
func (s *Store) RecordActivity(action models.ActivityAction, status models.ActivityStatus, detail string) {
	entry := models.ActivityLog{
		Action: action,
		Status: status,
	}
	if detail != "" {
		entry.Detail = &detail
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.StoreLogger().Error("failed to record activity", err)
	}
}

// RecentActivity returns the newest entries up to limit
func (s *Store) RecentActivity(limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := s.db.Order("id DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load activity log", err)
	}
	return entries, nil
}

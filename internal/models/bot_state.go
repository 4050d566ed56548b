package models

import (
	"encoding/json"
	"time"
)

// BotState is the single persisted row holding the mutable runtime settings:
// fixed-name override, dump target, prefix rotation list, and rotation counter.
type BotState struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FixedName  string    `gorm:"type:varchar(255);not null;default:''" json:"fixed_name"`
	DumpTarget string    `gorm:"type:varchar(255);not null;default:''" json:"dump_target"`
	Prefixes   string    `gorm:"type:text;not null" json:"prefixes"` // JSON-encoded ordered list
	Counter    uint64    `gorm:"not null;default:0" json:"counter"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for BotState
func (BotState) TableName() string {
	return "bot_state"
}

// PrefixList decodes the persisted prefix list
func (s *BotState) PrefixList() []string {
	if s.Prefixes == "" {
		return nil
	}
	var prefixes []string
	if err := json.Unmarshal([]byte(s.Prefixes), &prefixes); err != nil {
		return nil
	}
	return prefixes
}

// SetPrefixList encodes and stores the prefix list
func (s *BotState) SetPrefixList(prefixes []string) {
	data, err := json.Marshal(prefixes)
	if err != nil {
		s.Prefixes = "[]"
		return
	}
	s.Prefixes = string(data)
}

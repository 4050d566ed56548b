package models

import "time"

// ActivityAction enumerates the logged pipeline actions
type ActivityAction string

const (
	ActionFormat  ActivityAction = "format"
	ActionForward ActivityAction = "forward"
)

// ActivityStatus enumerates outcomes of a logged action
type ActivityStatus string

const (
	StatusSuccess ActivityStatus = "success"
	StatusSkipped ActivityStatus = "skipped"
	StatusFailed  ActivityStatus = "failed"
)

// ActivityLog records the outcome of a single format or forward action
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Action    ActivityAction `gorm:"type:varchar(50);not null;index:idx_activity_logs_action" json:"action"`
	Status    ActivityStatus `gorm:"type:varchar(50);not null" json:"status"`
	Detail    *string        `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}

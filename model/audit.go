package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records a quest mutation or a failed sync attempt.
type AuditLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID    string         `gorm:"size:64;index" json:"trace_id"`
	UserID     *int64         `gorm:"index" json:"user_id"`
	QuestID    string         `gorm:"size:64;index" json:"quest_id"`
	Action     string         `gorm:"size:64;not null" json:"action"`
	Detail     datatypes.JSON `json:"detail"`
	Error      string         `gorm:"type:text" json:"error"`
	DurationMs int            `json:"duration_ms"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

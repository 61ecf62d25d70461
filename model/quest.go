package model

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// QuestStatus represents the lifecycle state of a quest.
type QuestStatus string

const (
	QuestStatusSuggested QuestStatus = "suggested"
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusArchived  QuestStatus = "archived"
)

// LocalIDPrefix marks quest ids that exist only in local state (guest or
// offline sessions). Records with this prefix are never sent to the store.
const LocalIDPrefix = "local-"

// IsLocalID reports whether the given quest id is local-only.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// Quest is a persisted recommendation record.
//
// StartedAt is set iff the status is active or completed; CompletedAt is set
// iff the status is completed. CustomData holds the QuestData payload.
type Quest struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	UserID      int64          `gorm:"index;not null" json:"user_id"`
	Status      QuestStatus    `gorm:"size:16;default:suggested" json:"status"`
	CustomData  datatypes.JSON `json:"custom_data"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	StartedAt   *time.Time     `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at"`
}

// Data decodes the embedded QuestData payload.
func (q *Quest) Data() (QuestData, error) {
	var d QuestData
	if len(q.CustomData) == 0 {
		return d, nil
	}
	err := json.Unmarshal(q.CustomData, &d)
	return d, err
}

// SetData encodes the given payload into the record.
func (q *Quest) SetData(d QuestData) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	q.CustomData = datatypes.JSON(raw)
	return nil
}

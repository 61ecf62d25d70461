package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// LocationType describes where a user can work on a side hustle.
type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationLocal  LocationType = "local"
	LocationHybrid LocationType = "hybrid"
)

// UserProfile is the immutable snapshot consumed by a generation call.
type UserProfile struct {
	Skills                []string     `json:"skills"`
	AvailableHoursPerWeek int          `json:"available_hours_per_week"`
	Resources             []string     `json:"resources"`
	Goals                 []string     `json:"goals"`
	Interests             []string     `json:"interests"`
	LocationType          LocationType `json:"location_type"`
}

// Profile is the persisted per-user profile record.
type Profile struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64          `gorm:"uniqueIndex;not null" json:"user_id"`
	Data      datatypes.JSON `json:"data"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// Snapshot decodes the stored UserProfile.
func (p *Profile) Snapshot() (UserProfile, error) {
	var up UserProfile
	if len(p.Data) == 0 {
		return up, nil
	}
	err := json.Unmarshal(p.Data, &up)
	return up, err
}

// SetSnapshot encodes the given UserProfile into the record.
func (p *Profile) SetSnapshot(up UserProfile) error {
	raw, err := json.Marshal(up)
	if err != nil {
		return err
	}
	p.Data = datatypes.JSON(raw)
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GpsTrack is a single GPS fix owned by a user. Tracks are immutable after
// creation and are removed only by cascading user deletion.
//
// Latitude and longitude are stored as text; range validation happens at the
// request boundary before a track ever reaches persistence.
type GpsTrack struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:char(36);not null;index"`
	Latitude  string    `json:"latitude" gorm:"size:64;not null"`
	Longitude string    `json:"longitude" gorm:"size:64;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

// TableName keeps the legacy singular table name.
func (GpsTrack) TableName() string { return "gps_track" }

// BeforeCreate sets a UUID before creating the record.
func (t *GpsTrack) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

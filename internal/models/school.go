package models

import (
	"time"

	"gorm.io/datatypes"
)

// School status values.
const (
	SchoolStatusActive   = "active"
	SchoolStatusInactive = "inactive"
)

// School represents a childcare center or school that offers enrollment programs.
type School struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Name      string                      `gorm:"size:255;not null" json:"name"`
	Capacity  int                         `gorm:"not null;default:0" json:"capacity"`
	Programs  datatypes.JSONSlice[string] `gorm:"type:json" json:"programs"`
	Status    string                      `gorm:"size:32;index;not null;default:active" json:"status"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// IsActive reports whether the school is visible in the public directory.
func (s School) IsActive() bool {
	return s.Status == SchoolStatusActive
}

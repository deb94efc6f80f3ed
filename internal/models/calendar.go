package models

import "time"

// CalendarEvent is an entry on a school's calendar.
type CalendarEvent struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SchoolID    uint       `gorm:"index;not null" json:"school_id"`
	School      *School    `gorm:"foreignKey:SchoolID" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	EventType   string     `gorm:"size:64;index" json:"event_type"`
	StartsAt    time.Time  `gorm:"index;not null" json:"starts_at"`
	EndsAt      *time.Time `gorm:"index" json:"ends_at"`
	AllDay      bool       `json:"all_day"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

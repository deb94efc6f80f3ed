package models

import "time"

// WaitlistStatusActive marks an entry still waiting for a seat.
const WaitlistStatusActive = "waitlisted"

// WaitlistEntry is a queued request for a seat in a specific school program.
// Positions are 1-based, assigned once at creation and never renumbered;
// removing earlier entries leaves gaps.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LeadID    uint      `gorm:"uniqueIndex;not null" json:"lead_id"`
	Lead      *Lead     `gorm:"foreignKey:LeadID" json:"-"`
	SchoolID  uint      `gorm:"index:idx_waitlist_school_program;not null" json:"school_id"`
	Program   string    `gorm:"size:128;index:idx_waitlist_school_program;not null" json:"program"`
	Position  int       `gorm:"not null" json:"position"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	Status    string    `gorm:"size:64;index;not null;default:waitlisted" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WaitlistCounter holds the next position for a (school, program) queue.
// Incremented atomically in the same transaction as the entry insert so
// concurrent submissions cannot observe the same position.
type WaitlistCounter struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SchoolID     uint      `gorm:"uniqueIndex:idx_waitlist_counter;not null" json:"school_id"`
	Program      string    `gorm:"size:128;uniqueIndex:idx_waitlist_counter;not null" json:"program"`
	NextPosition int       `gorm:"not null;default:1" json:"next_position"`
	UpdatedAt    time.Time `json:"updated_at"`
}

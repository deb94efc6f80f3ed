package models

import "time"

// Incident report states.
const (
	IncidentStatusOpen     = "open"
	IncidentStatusResolved = "resolved"
)

// IncidentReport documents an incident involving a student or facility.
type IncidentReport struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SchoolID    uint       `gorm:"index;not null" json:"school_id"`
	School      *School    `gorm:"foreignKey:SchoolID" json:"-"`
	StudentID   *uint      `gorm:"index" json:"student_id"`
	Type        string     `gorm:"size:64;index;not null" json:"type"`
	Severity    string     `gorm:"size:32;index;not null" json:"severity"`
	Description string     `gorm:"type:text;not null" json:"description"`
	OccurredAt  time.Time  `gorm:"index;not null" json:"occurred_at"`
	ReportedBy  string     `gorm:"size:255" json:"reported_by"`
	Status      string     `gorm:"size:32;index;not null;default:open" json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

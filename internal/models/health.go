package models

import "time"

// HealthRecord captures per-student health information maintained by staff.
type HealthRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"index;not null" json:"student_id"`
	Student    *Student  `gorm:"foreignKey:StudentID" json:"-"`
	SchoolID   uint      `gorm:"index;not null" json:"school_id"`
	Allergies  string    `gorm:"type:text" json:"allergies"`
	Conditions string    `gorm:"type:text" json:"conditions"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MedicationRecord describes a medication a student receives during care hours.
type MedicationRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"index;not null" json:"student_id"`
	Student      *Student  `gorm:"foreignKey:StudentID" json:"-"`
	SchoolID     uint      `gorm:"index;not null" json:"school_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Dosage       string    `gorm:"size:128" json:"dosage"`
	Schedule     string    `gorm:"size:255" json:"schedule"`
	AuthorizedBy string    `gorm:"size:255" json:"authorized_by"`
	Active       bool      `gorm:"index;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

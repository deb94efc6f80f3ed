package models

import "time"

// Student represents an enrolled child attending a school.
type Student struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SchoolID      uint       `gorm:"index;not null" json:"school_id"`
	School        *School    `gorm:"foreignKey:SchoolID" json:"-"`
	FirstName     string     `gorm:"size:128;not null" json:"first_name"`
	LastName      string     `gorm:"size:128;not null" json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Program       string     `gorm:"size:128;index" json:"program"`
	GuardianName  string     `gorm:"size:255" json:"guardian_name"`
	GuardianEmail string     `gorm:"size:255;index" json:"guardian_email"`
	GuardianPhone string     `gorm:"size:64" json:"guardian_phone"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

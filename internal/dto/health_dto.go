package dto

import (
	"time"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// HealthRecordRequest is the staff payload for a student health record.
type HealthRecordRequest struct {
	StudentID  uint   `json:"student_id" validate:"required"`
	SchoolID   uint   `json:"school_id" validate:"required"`
	Allergies  string `json:"allergies"`
	Conditions string `json:"conditions"`
	Notes      string `json:"notes"`
}

// HealthRecordResponse is the API projection of a health record.
type HealthRecordResponse struct {
	ID         uint      `json:"id"`
	StudentID  uint      `json:"student_id"`
	SchoolID   uint      `json:"school_id"`
	Allergies  string    `json:"allergies"`
	Conditions string    `json:"conditions"`
	Notes      string    `json:"notes"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MedicationRecordRequest is the staff payload for a medication record.
type MedicationRecordRequest struct {
	StudentID    uint   `json:"student_id" validate:"required"`
	SchoolID     uint   `json:"school_id" validate:"required"`
	Name         string `json:"name" validate:"required,max=255"`
	Dosage       string `json:"dosage" validate:"omitempty,max=128"`
	Schedule     string `json:"schedule" validate:"omitempty,max=255"`
	AuthorizedBy string `json:"authorized_by" validate:"omitempty,max=255"`
}

// MedicationRecordResponse is the API projection of a medication record.
type MedicationRecordResponse struct {
	ID           uint      `json:"id"`
	StudentID    uint      `json:"student_id"`
	SchoolID     uint      `json:"school_id"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage"`
	Schedule     string    `json:"schedule"`
	AuthorizedBy string    `json:"authorized_by"`
	Active       bool      `json:"active"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewHealthRecordResponse converts a health record model.
func NewHealthRecordResponse(record models.HealthRecord) HealthRecordResponse {
	return HealthRecordResponse{
		ID:         record.ID,
		StudentID:  record.StudentID,
		SchoolID:   record.SchoolID,
		Allergies:  record.Allergies,
		Conditions: record.Conditions,
		Notes:      record.Notes,
		UpdatedAt:  record.UpdatedAt,
	}
}

// NewMedicationRecordResponse converts a medication record model.
func NewMedicationRecordResponse(record models.MedicationRecord) MedicationRecordResponse {
	return MedicationRecordResponse{
		ID:           record.ID,
		StudentID:    record.StudentID,
		SchoolID:     record.SchoolID,
		Name:         record.Name,
		Dosage:       record.Dosage,
		Schedule:     record.Schedule,
		AuthorizedBy: record.AuthorizedBy,
		Active:       record.Active,
		UpdatedAt:    record.UpdatedAt,
	}
}

// NewMedicationRecordResponseSlice converts a slice of medication records.
func NewMedicationRecordResponseSlice(records []models.MedicationRecord) []MedicationRecordResponse {
	items := make([]MedicationRecordResponse, 0, len(records))
	for _, record := range records {
		items = append(items, NewMedicationRecordResponse(record))
	}
	return items
}

package dto

import (
	"time"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// StudentCreateRequest is the staff payload for enrolling a student record.
type StudentCreateRequest struct {
	SchoolID      uint   `json:"school_id" validate:"required"`
	FirstName     string `json:"first_name" validate:"required,max=128"`
	LastName      string `json:"last_name" validate:"required,max=128"`
	DateOfBirth   string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Program       string `json:"program" validate:"omitempty,max=128"`
	GuardianName  string `json:"guardian_name" validate:"omitempty,max=255"`
	GuardianEmail string `json:"guardian_email" validate:"omitempty,email"`
	GuardianPhone string `json:"guardian_phone" validate:"omitempty,max=64"`
}

// StudentUpdateRequest carries partial updates to a student profile.
type StudentUpdateRequest struct {
	FirstName     *string `json:"first_name" validate:"omitempty,max=128"`
	LastName      *string `json:"last_name" validate:"omitempty,max=128"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Program       *string `json:"program" validate:"omitempty,max=128"`
	GuardianName  *string `json:"guardian_name" validate:"omitempty,max=255"`
	GuardianEmail *string `json:"guardian_email" validate:"omitempty,email"`
	GuardianPhone *string `json:"guardian_phone" validate:"omitempty,max=64"`
}

// StudentResponse is the API projection of a student record.
type StudentResponse struct {
	ID            uint       `json:"id"`
	SchoolID      uint       `json:"school_id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Program       string     `json:"program"`
	GuardianName  string     `json:"guardian_name"`
	GuardianEmail string     `json:"guardian_email"`
	GuardianPhone string     `json:"guardian_phone"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// StudentListResult bundles students with pagination metadata.
type StudentListResult struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewStudentResponse converts a student model.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:            student.ID,
		SchoolID:      student.SchoolID,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		DateOfBirth:   student.DateOfBirth,
		Program:       student.Program,
		GuardianName:  student.GuardianName,
		GuardianEmail: student.GuardianEmail,
		GuardianPhone: student.GuardianPhone,
		CreatedAt:     student.CreatedAt,
		UpdatedAt:     student.UpdatedAt,
	}
}

// NewStudentResponseSlice converts a slice of student models.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	items := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, NewStudentResponse(student))
	}
	return items
}

package dto

import (
	"time"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// IncidentCreateRequest is the staff payload for documenting an incident.
type IncidentCreateRequest struct {
	SchoolID    uint   `json:"school_id" validate:"required"`
	StudentID   *uint  `json:"student_id"`
	Type        string `json:"type" validate:"required,max=64"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high critical"`
	Description string `json:"description" validate:"required"`
	OccurredAt  string `json:"occurred_at" validate:"required"`
	ReportedBy  string `json:"reported_by" validate:"omitempty,max=255"`
}

// IncidentResponse is the API projection of an incident report.
type IncidentResponse struct {
	ID          uint       `json:"id"`
	SchoolID    uint       `json:"school_id"`
	StudentID   *uint      `json:"student_id"`
	Type        string     `json:"type"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	OccurredAt  time.Time  `json:"occurred_at"`
	ReportedBy  string     `json:"reported_by"`
	Status      string     `json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewIncidentResponse converts an incident report model.
func NewIncidentResponse(report models.IncidentReport) IncidentResponse {
	return IncidentResponse{
		ID:          report.ID,
		SchoolID:    report.SchoolID,
		StudentID:   report.StudentID,
		Type:        report.Type,
		Severity:    report.Severity,
		Description: report.Description,
		OccurredAt:  report.OccurredAt,
		ReportedBy:  report.ReportedBy,
		Status:      report.Status,
		ResolvedAt:  report.ResolvedAt,
		CreatedAt:   report.CreatedAt,
	}
}

// NewIncidentResponseSlice converts a slice of incident report models.
func NewIncidentResponseSlice(reports []models.IncidentReport) []IncidentResponse {
	items := make([]IncidentResponse, 0, len(reports))
	for _, report := range reports {
		items = append(items, NewIncidentResponse(report))
	}
	return items
}

package dto

import (
	"time"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// DocumentUploadRequest carries the multipart form fields of an upload.
type DocumentUploadRequest struct {
	LeadID       uint   `json:"lead_id" validate:"required"`
	SchoolID     uint   `json:"school_id" validate:"required"`
	DocumentType string `json:"document_type" validate:"required,max=128"`
}

// DocumentResponse is the API projection of a stored document record.
type DocumentResponse struct {
	ID           uint      `json:"id"`
	LeadID       uint      `json:"lead_id"`
	SchoolID     uint      `json:"school_id"`
	DocumentType string    `json:"document_type"`
	Category     string    `json:"category"`
	FileURL      string    `json:"file_url"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	UploadedBy   string    `json:"uploaded_by"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewDocumentResponse converts a document model.
func NewDocumentResponse(document models.StudentDocument) DocumentResponse {
	return DocumentResponse{
		ID:           document.ID,
		LeadID:       document.LeadID,
		SchoolID:     document.SchoolID,
		DocumentType: document.DocumentType,
		Category:     document.Category,
		FileURL:      document.FileURL,
		SizeBytes:    document.SizeBytes,
		MimeType:     document.MimeType,
		UploadedBy:   document.UploadedBy,
		Status:       document.Status,
		CreatedAt:    document.CreatedAt,
	}
}

// NewDocumentResponseSlice converts a slice of document models.
func NewDocumentResponseSlice(documents []models.StudentDocument) []DocumentResponse {
	items := make([]DocumentResponse, 0, len(documents))
	for _, document := range documents {
		items = append(items, NewDocumentResponse(document))
	}
	return items
}

package models

import (
	"strings"
	"time"
)

// Document categories.
const (
	DocumentCategoryRequired = "required"
	DocumentCategoryOptional = "optional"
)

// DocumentStatusPending is the initial review state for stored documents.
const DocumentStatusPending = "pending"

// requiredDocumentTypes maps document types to the required category.
// Kept as an explicit table so admission staff can extend it without
// touching the intake logic.
var requiredDocumentTypes = map[string]struct{}{
	"enrollment_packet": {},
	"shot_records":      {},
	"physical_records":  {},
}

// StudentDocument is a stored file reference uploaded against a lead.
type StudentDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LeadID       uint      `gorm:"index;not null" json:"lead_id"`
	Lead         *Lead     `gorm:"foreignKey:LeadID" json:"-"`
	SchoolID     uint      `gorm:"index;not null" json:"school_id"`
	DocumentType string    `gorm:"size:128;not null" json:"document_type"`
	Category     string    `gorm:"size:32;not null" json:"category"`
	FileURL      string    `gorm:"size:1024;not null" json:"file_url"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `gorm:"size:128" json:"mime_type"`
	UploadedBy   string    `gorm:"size:128" json:"uploaded_by"`
	Note         string    `gorm:"size:255" json:"note"`
	Status       string    `gorm:"size:32;index;not null;default:pending" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DocumentCategory derives the category for a document type.
func DocumentCategory(documentType string) string {
	normalized := strings.ToLower(strings.TrimSpace(documentType))
	if _, ok := requiredDocumentTypes[normalized]; ok {
		return DocumentCategoryRequired
	}
	return DocumentCategoryOptional
}

// RequiredDocumentTypes lists the document types every lead must provide.
func RequiredDocumentTypes() []string {
	types := make([]string, 0, len(requiredDocumentTypes))
	for documentType := range requiredDocumentTypes {
		types = append(types, documentType)
	}
	return types
}

package dto

import (
	"time"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// AvailabilityResponse reports derived seat availability for a school program.
type AvailabilityResponse struct {
	SchoolID        uint   `json:"school_id"`
	Program         string `json:"program"`
	ProgramCapacity int    `json:"program_capacity"`
	EnrolledCount   int64  `json:"enrolled_count"`
	WaitlistCount   int64  `json:"waitlist_count"`
	AvailableSeats  int    `json:"available_seats"`
	HasAvailability bool   `json:"has_availability"`
}

// WaitlistCreateRequest submits a lead to a program waitlist.
type WaitlistCreateRequest struct {
	LeadID   uint   `json:"lead_id" validate:"required"`
	SchoolID uint   `json:"school_id" validate:"required"`
	Program  string `json:"program" validate:"required,max=128"`
}

// WaitlistEntryResponse is the API projection of a waitlist entry.
type WaitlistEntryResponse struct {
	ID        uint      `json:"id"`
	LeadID    uint      `json:"lead_id"`
	SchoolID  uint      `json:"school_id"`
	Program   string    `json:"program"`
	Position  int       `json:"position"`
	Priority  int       `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// WaitlistPaymentRequest initiates a payment session for a waitlisted lead.
type WaitlistPaymentRequest struct {
	LeadID      uint   `json:"lead_id" validate:"required"`
	SchoolID    uint   `json:"school_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
	PaymentType string `json:"payment_type" validate:"required,max=64"`
	Description string `json:"description" validate:"max=512"`
}

// PaymentSessionResponse describes the pending transaction created for a
// payment request. RedirectURL stays empty until capture, which happens
// through a separate synchronous call.
type PaymentSessionResponse struct {
	TransactionID uint   `json:"transaction_id"`
	Status        string `json:"status"`
	RedirectURL   string `json:"redirect_url"`
}

// NewWaitlistEntryResponse converts a waitlist entry model.
func NewWaitlistEntryResponse(entry models.WaitlistEntry) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		ID:        entry.ID,
		LeadID:    entry.LeadID,
		SchoolID:  entry.SchoolID,
		Program:   entry.Program,
		Position:  entry.Position,
		Priority:  entry.Priority,
		Status:    entry.Status,
		CreatedAt: entry.CreatedAt,
	}
}

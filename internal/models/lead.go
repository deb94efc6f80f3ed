package models

import (
	"strings"
	"time"
)

// Lead status values assigned by the admission workflow.
const (
	LeadStatusNew                     = "new"
	LeadStatusWaitlisted              = "waitlisted"
	LeadStatusConverted               = "converted"
	LeadStatusEnrolled                = "enrolled"
	LeadStatusConfirmed               = "confirmed"
	LeadStatusApprovedForRegistration = "approved_for_registration"
	LeadStatusInvoiceSent             = "invoice_sent"
)

// enrolledEquivalentStatuses are the lead statuses that occupy a seat for
// availability purposes. Shared with the waitlist lookup so the two sets
// cannot drift apart.
var enrolledEquivalentStatuses = map[string]struct{}{
	LeadStatusConverted:               {},
	LeadStatusEnrolled:                {},
	LeadStatusConfirmed:               {},
	LeadStatusApprovedForRegistration: {},
	LeadStatusInvoiceSent:             {},
}

var waitlistEquivalentStatuses = map[string]struct{}{
	// LeadStatusWaitlisted and WaitlistStatusActive share the same value.
	LeadStatusWaitlisted: {},
}

// Lead is a prospective enrollment record created by intake.
type Lead struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SchoolID    uint      `gorm:"index;not null" json:"school_id"`
	School      *School   `gorm:"foreignKey:SchoolID" json:"-"`
	Program     string    `gorm:"size:128;index;not null" json:"program"`
	Status      string    `gorm:"size:64;index;not null;default:new" json:"status"`
	ParentName  string    `gorm:"size:255" json:"parent_name"`
	ParentEmail string    `gorm:"size:255;index" json:"parent_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsEnrolledEquivalent reports whether a lead status counts against program capacity.
func IsEnrolledEquivalent(status string) bool {
	_, ok := enrolledEquivalentStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// IsWaitlistEquivalent reports whether a status counts toward the waitlist total.
func IsWaitlistEquivalent(status string) bool {
	_, ok := waitlistEquivalentStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// EnrolledEquivalentStatuses returns the seat-occupying status set for query building.
func EnrolledEquivalentStatuses() []string {
	return statusSetValues(enrolledEquivalentStatuses)
}

// WaitlistEquivalentStatuses returns the waitlist status set for query building.
func WaitlistEquivalentStatuses() []string {
	return statusSetValues(waitlistEquivalentStatuses)
}

func statusSetValues(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for status := range set {
		values = append(values, status)
	}
	return values
}

package dto

import "time"

// ParentDashboardResponse aggregates registration progress for a lead.
type ParentDashboardResponse struct {
	Lead         LeadSummary             `json:"lead"`
	Waitlist     []WaitlistEntryResponse `json:"waitlist"`
	Documents    DocumentChecklist       `json:"documents"`
	Transactions []TransactionSummary    `json:"pending_transactions"`
}

// LeadSummary is the dashboard projection of a lead.
type LeadSummary struct {
	ID          uint      `json:"id"`
	SchoolID    uint      `json:"school_id"`
	Program     string    `json:"program"`
	Status      string    `json:"status"`
	ParentEmail string    `json:"parent_email"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentChecklist tracks required document coverage for a lead.
type DocumentChecklist struct {
	Uploaded []DocumentResponse `json:"uploaded"`
	Missing  []string           `json:"missing_required"`
	Complete bool               `json:"complete"`
}

// TransactionSummary is the dashboard projection of a pending transaction.
type TransactionSummary struct {
	ID        uint      `json:"id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

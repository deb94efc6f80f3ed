package dto

import (
	"time"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// CalendarEventCreateRequest is the staff payload for a calendar entry.
type CalendarEventCreateRequest struct {
	SchoolID    uint   `json:"school_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	EventType   string `json:"event_type" validate:"omitempty,max=64"`
	StartsAt    string `json:"starts_at" validate:"required"`
	EndsAt      string `json:"ends_at" validate:"omitempty"`
	AllDay      bool   `json:"all_day"`
}

// CalendarEventUpdateRequest carries partial updates to a calendar entry.
type CalendarEventUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	EventType   *string `json:"event_type" validate:"omitempty,max=64"`
	StartsAt    *string `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
	AllDay      *bool   `json:"all_day"`
}

// CalendarEventListRequest filters calendar entries by school and window.
type CalendarEventListRequest struct {
	SchoolID uint   `json:"school_id" validate:"required"`
	From     string `json:"from" validate:"omitempty"`
	To       string `json:"to" validate:"omitempty"`
}

// CalendarEventResponse is the API projection of a calendar entry.
type CalendarEventResponse struct {
	ID          uint       `json:"id"`
	SchoolID    uint       `json:"school_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	AllDay      bool       `json:"all_day"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewCalendarEventResponse converts a calendar event model.
func NewCalendarEventResponse(event models.CalendarEvent) CalendarEventResponse {
	return CalendarEventResponse{
		ID:          event.ID,
		SchoolID:    event.SchoolID,
		Title:       event.Title,
		Description: event.Description,
		EventType:   event.EventType,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		AllDay:      event.AllDay,
		UpdatedAt:   event.UpdatedAt,
	}
}

// NewCalendarEventResponseSlice converts a slice of calendar event models.
func NewCalendarEventResponseSlice(events []models.CalendarEvent) []CalendarEventResponse {
	items := make([]CalendarEventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, NewCalendarEventResponse(event))
	}
	return items
}

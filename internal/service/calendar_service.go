package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

var (
	// ErrCalendarEventNotFound indicates the event does not exist.
	ErrCalendarEventNotFound = errors.New("calendar event not found")
	// ErrCalendarEventInvalidTime signals an unparseable or inverted time range.
	ErrCalendarEventInvalidTime = errors.New("calendar event time range is invalid")
)

// CalendarService provides CRUD over school calendar events.
type CalendarService interface {
	Create(ctx context.Context, payload dto.CalendarEventCreateRequest) (dto.CalendarEventResponse, error)
	List(ctx context.Context, payload dto.CalendarEventListRequest) ([]dto.CalendarEventResponse, error)
	Update(ctx context.Context, id uint, payload dto.CalendarEventUpdateRequest) (dto.CalendarEventResponse, error)
	Delete(ctx context.Context, id uint) error
}

type calendarService struct {
	events    repository.CalendarRepository
	schools   repository.SchoolRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCalendarService constructs the calendar service.
func NewCalendarService(eventRepo repository.CalendarRepository, schoolRepo repository.SchoolRepository, validate *validator.Validate, logger zerolog.Logger) CalendarService {
	return &calendarService{
		events:    eventRepo,
		schools:   schoolRepo,
		validator: validate,
		logger:    logger.With().Str("component", "calendar_service").Logger(),
	}
}

func (s *calendarService) Create(ctx context.Context, payload dto.CalendarEventCreateRequest) (dto.CalendarEventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CalendarEventResponse{}, err
	}

	if _, err := s.schools.GetByID(ctx, payload.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CalendarEventResponse{}, ErrSchoolNotFound
		}
		return dto.CalendarEventResponse{}, err
	}

	startsAt, err := time.Parse(time.RFC3339, payload.StartsAt)
	if err != nil {
		return dto.CalendarEventResponse{}, ErrCalendarEventInvalidTime
	}

	event := models.CalendarEvent{
		SchoolID:    payload.SchoolID,
		Title:       strings.TrimSpace(payload.Title),
		Description: payload.Description,
		EventType:   strings.TrimSpace(payload.EventType),
		StartsAt:    startsAt,
		AllDay:      payload.AllDay,
	}

	if payload.EndsAt != "" {
		endsAt, err := time.Parse(time.RFC3339, payload.EndsAt)
		if err != nil || endsAt.Before(startsAt) {
			return dto.CalendarEventResponse{}, ErrCalendarEventInvalidTime
		}
		event.EndsAt = &endsAt
	}

	if err := s.events.Create(ctx, &event); err != nil {
		return dto.CalendarEventResponse{}, err
	}

	return dto.NewCalendarEventResponse(event), nil
}

func (s *calendarService) List(ctx context.Context, payload dto.CalendarEventListRequest) ([]dto.CalendarEventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	filter := repository.CalendarFilter{SchoolID: payload.SchoolID}

	if payload.From != "" {
		from, err := time.Parse(time.RFC3339, payload.From)
		if err != nil {
			return nil, ErrCalendarEventInvalidTime
		}
		filter.From = &from
	}
	if payload.To != "" {
		to, err := time.Parse(time.RFC3339, payload.To)
		if err != nil {
			return nil, ErrCalendarEventInvalidTime
		}
		filter.To = &to
	}

	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewCalendarEventResponseSlice(events), nil
}

func (s *calendarService) Update(ctx context.Context, id uint, payload dto.CalendarEventUpdateRequest) (dto.CalendarEventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CalendarEventResponse{}, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CalendarEventResponse{}, ErrCalendarEventNotFound
		}
		return dto.CalendarEventResponse{}, err
	}

	if payload.Title != nil {
		event.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		event.Description = *payload.Description
	}
	if payload.EventType != nil {
		event.EventType = strings.TrimSpace(*payload.EventType)
	}
	if payload.StartsAt != nil {
		startsAt, err := time.Parse(time.RFC3339, *payload.StartsAt)
		if err != nil {
			return dto.CalendarEventResponse{}, ErrCalendarEventInvalidTime
		}
		event.StartsAt = startsAt
	}
	if payload.EndsAt != nil {
		if *payload.EndsAt == "" {
			event.EndsAt = nil
		} else {
			endsAt, err := time.Parse(time.RFC3339, *payload.EndsAt)
			if err != nil {
				return dto.CalendarEventResponse{}, ErrCalendarEventInvalidTime
			}
			event.EndsAt = &endsAt
		}
	}
	if payload.AllDay != nil {
		event.AllDay = *payload.AllDay
	}

	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return dto.CalendarEventResponse{}, ErrCalendarEventInvalidTime
	}

	if err := s.events.Update(ctx, &event); err != nil {
		return dto.CalendarEventResponse{}, err
	}

	return dto.NewCalendarEventResponse(event), nil
}

func (s *calendarService) Delete(ctx context.Context, id uint) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCalendarEventNotFound
		}
		return err
	}

	return nil
}

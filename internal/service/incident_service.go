package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/observability"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

var (
	// ErrIncidentNotFound indicates the incident report does not exist.
	ErrIncidentNotFound = errors.New("incident report not found")
	// ErrIncidentDescriptionEmpty signals a description with no content after sanitization.
	ErrIncidentDescriptionEmpty = errors.New("incident description empty after sanitization")
	// ErrIncidentInvalidTime signals an unparseable occurred-at timestamp.
	ErrIncidentInvalidTime = errors.New("incident occurred-at timestamp is invalid")
)

// IncidentService records and tracks incident reports for staff.
type IncidentService interface {
	Create(ctx context.Context, payload dto.IncidentCreateRequest) (dto.IncidentResponse, error)
	Get(ctx context.Context, id uint) (dto.IncidentResponse, error)
	List(ctx context.Context, schoolID uint, status string, page, pageSize int) ([]dto.IncidentResponse, dto.PaginationMeta, error)
	Resolve(ctx context.Context, id uint) (dto.IncidentResponse, error)
}

type incidentService struct {
	incidents repository.IncidentRepository
	schools   repository.SchoolRepository
	events    EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewIncidentService constructs the incident service.
func NewIncidentService(incidentRepo repository.IncidentRepository, schoolRepo repository.SchoolRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) IncidentService {
	return &incidentService{
		incidents: incidentRepo,
		schools:   schoolRepo,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "incident_service").Logger(),
	}
}

func (s *incidentService) Create(ctx context.Context, payload dto.IncidentCreateRequest) (dto.IncidentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.IncidentResponse{}, err
	}

	if _, err := s.schools.GetByID(ctx, payload.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.IncidentResponse{}, ErrSchoolNotFound
		}
		return dto.IncidentResponse{}, err
	}

	description := strings.TrimSpace(s.sanitizer.Sanitize(payload.Description))
	if description == "" {
		return dto.IncidentResponse{}, ErrIncidentDescriptionEmpty
	}

	occurredAt, err := time.Parse(time.RFC3339, payload.OccurredAt)
	if err != nil {
		return dto.IncidentResponse{}, ErrIncidentInvalidTime
	}

	report := models.IncidentReport{
		SchoolID:    payload.SchoolID,
		StudentID:   payload.StudentID,
		Type:        strings.TrimSpace(payload.Type),
		Severity:    strings.ToLower(payload.Severity),
		Description: description,
		OccurredAt:  occurredAt,
		ReportedBy:  strings.TrimSpace(payload.ReportedBy),
		Status:      models.IncidentStatusOpen,
	}

	if err := s.incidents.Create(ctx, &report); err != nil {
		return dto.IncidentResponse{}, err
	}

	observability.IncidentsReported().WithLabelValues(report.Severity).Inc()
	response := dto.NewIncidentResponse(report)

	if s.events != nil {
		if err := s.events.Publish(ctx, "incident.reported", response); err != nil {
			s.logger.Warn().Err(err).Uint("incident_id", report.ID).Msg("failed to publish incident event")
		}
	}

	return response, nil
}

func (s *incidentService) Get(ctx context.Context, id uint) (dto.IncidentResponse, error) {
	report, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.IncidentResponse{}, ErrIncidentNotFound
		}
		return dto.IncidentResponse{}, err
	}

	return dto.NewIncidentResponse(report), nil
}

func (s *incidentService) List(ctx context.Context, schoolID uint, status string, page, pageSize int) ([]dto.IncidentResponse, dto.PaginationMeta, error) {
	filter := repository.IncidentFilter{
		SchoolID: schoolID,
		Status:   strings.ToLower(strings.TrimSpace(status)),
		Page:     normalizePage(page),
		PageSize: clampPageSize(pageSize),
	}

	reports, total, err := s.incidents.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	meta := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.NewIncidentResponseSlice(reports), meta, nil
}

func (s *incidentService) Resolve(ctx context.Context, id uint) (dto.IncidentResponse, error) {
	report, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.IncidentResponse{}, ErrIncidentNotFound
		}
		return dto.IncidentResponse{}, err
	}

	if report.Status != models.IncidentStatusResolved {
		now := time.Now().UTC()
		report.Status = models.IncidentStatusResolved
		report.ResolvedAt = &now
		if err := s.incidents.Update(ctx, &report); err != nil {
			return dto.IncidentResponse{}, err
		}
	}

	return dto.NewIncidentResponse(report), nil
}

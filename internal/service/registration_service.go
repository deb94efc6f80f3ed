package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/observability"
	"github.com/noah-isme/nido-go-api/internal/repository"
	"github.com/noah-isme/nido-go-api/pkg/payments"
)

// defaultSchoolCapacity is assumed when a school has no configured seat ceiling.
const defaultSchoolCapacity = 100

var (
	// ErrSchoolNotFound indicates the referenced school does not exist.
	ErrSchoolNotFound = errors.New("school not found")
	// ErrLeadNotFound indicates the referenced lead does not exist.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrProgramRequired signals an empty program name.
	ErrProgramRequired = errors.New("program name is required")
)

// RegistrationService drives the parent-facing registration flow:
// availability checks, waitlist submission and payment session initiation.
type RegistrationService interface {
	CheckAvailability(ctx context.Context, schoolID uint, program string) (dto.AvailabilityResponse, error)
	CreateWaitlistEntry(ctx context.Context, payload dto.WaitlistCreateRequest) (dto.WaitlistEntryResponse, error)
	InitiateWaitlistPayment(ctx context.Context, payload dto.WaitlistPaymentRequest) (dto.PaymentSessionResponse, error)
}

type registrationService struct {
	schools      repository.SchoolRepository
	leads        repository.LeadRepository
	waitlist     repository.WaitlistRepository
	transactions repository.TransactionRepository
	provider     *payments.Provider
	events       EventPublisher
	validator    *validator.Validate
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewRegistrationService constructs a registration service. The payment
// provider and event publisher may be nil when the feature is not configured.
func NewRegistrationService(
	schoolRepo repository.SchoolRepository,
	leadRepo repository.LeadRepository,
	waitlistRepo repository.WaitlistRepository,
	transactionRepo repository.TransactionRepository,
	provider *payments.Provider,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationService{
		schools:      schoolRepo,
		leads:        leadRepo,
		waitlist:     waitlistRepo,
		transactions: transactionRepo,
		provider:     provider,
		events:       events,
		validator:    validate,
		logger:       logger.With().Str("component", "registration_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/nido-go-api/internal/service/registration"),
	}
}

// CheckAvailability derives seat availability for a school program. Program
// capacity is an even split of the school's total seats across its offered
// programs, so the figure is an approximation.
func (s *registrationService) CheckAvailability(ctx context.Context, schoolID uint, program string) (dto.AvailabilityResponse, error) {
	normalized := normalizeProgram(program)
	if normalized == "" {
		return dto.AvailabilityResponse{}, ErrProgramRequired
	}

	ctx, span := s.tracer.Start(ctx, "registration.check_availability", trace.WithAttributes(
		attribute.Int("school.id", int(schoolID)),
		attribute.String("program", normalized),
	))
	defer span.End()

	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.AvailabilityChecks().WithLabelValues("not_found").Inc()
			return dto.AvailabilityResponse{}, ErrSchoolNotFound
		}
		observability.AvailabilityChecks().WithLabelValues("error").Inc()
		span.RecordError(err)
		return dto.AvailabilityResponse{}, err
	}

	programCapacity := programCapacityFor(school)

	enrolled, err := s.leads.CountEnrolledEquivalent(ctx, schoolID, normalized)
	if err != nil {
		observability.AvailabilityChecks().WithLabelValues("error").Inc()
		span.RecordError(err)
		return dto.AvailabilityResponse{}, err
	}

	waitlisted, err := s.waitlist.CountWaitlisted(ctx, schoolID, normalized)
	if err != nil {
		observability.AvailabilityChecks().WithLabelValues("error").Inc()
		span.RecordError(err)
		return dto.AvailabilityResponse{}, err
	}

	available := programCapacity - int(enrolled)
	if available < 0 {
		available = 0
	}

	outcome := "full"
	if available > 0 {
		outcome = "available"
	}
	observability.AvailabilityChecks().WithLabelValues(outcome).Inc()

	return dto.AvailabilityResponse{
		SchoolID:        schoolID,
		Program:         normalized,
		ProgramCapacity: programCapacity,
		EnrolledCount:   enrolled,
		WaitlistCount:   waitlisted,
		AvailableSeats:  available,
		HasAvailability: available > 0,
	}, nil
}

// CreateWaitlistEntry submits a lead to a program waitlist. Creation is
// idempotent by lead: resubmitting returns the existing entry unchanged and
// does not advance the position counter.
func (s *registrationService) CreateWaitlistEntry(ctx context.Context, payload dto.WaitlistCreateRequest) (dto.WaitlistEntryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.WaitlistEntryResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "registration.create_waitlist_entry", trace.WithAttributes(
		attribute.Int("lead.id", int(payload.LeadID)),
	))
	defer span.End()

	if existing, err := s.waitlist.GetByLeadID(ctx, payload.LeadID); err == nil {
		observability.WaitlistEntries().WithLabelValues("existing").Inc()
		return dto.NewWaitlistEntryResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		return dto.WaitlistEntryResponse{}, err
	}

	if _, err := s.leads.GetByID(ctx, payload.LeadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.WaitlistEntryResponse{}, ErrLeadNotFound
		}
		span.RecordError(err)
		return dto.WaitlistEntryResponse{}, err
	}

	entry := models.WaitlistEntry{
		LeadID:   payload.LeadID,
		SchoolID: payload.SchoolID,
		Program:  normalizeProgram(payload.Program),
		Priority: 0,
		Status:   models.WaitlistStatusActive,
	}

	if err := s.waitlist.CreateWithPosition(ctx, &entry); err != nil {
		observability.WaitlistEntries().WithLabelValues("error").Inc()
		span.RecordError(err)
		return dto.WaitlistEntryResponse{}, err
	}

	observability.WaitlistEntries().WithLabelValues("created").Inc()
	response := dto.NewWaitlistEntryResponse(entry)

	if s.events != nil {
		if err := s.events.Publish(ctx, "waitlist.created", response); err != nil {
			s.logger.Warn().Err(err).Uint("lead_id", entry.LeadID).Msg("failed to publish waitlist event")
		}
	}

	return response, nil
}

// InitiateWaitlistPayment records a pending transaction for a waitlisted
// lead. The redirect URL stays empty; the caller completes payment through
// a separate synchronous capture call.
func (s *registrationService) InitiateWaitlistPayment(ctx context.Context, payload dto.WaitlistPaymentRequest) (dto.PaymentSessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaymentSessionResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "registration.initiate_payment", trace.WithAttributes(
		attribute.Int("lead.id", int(payload.LeadID)),
		attribute.Int64("amount", payload.Amount),
	))
	defer span.End()

	if _, err := s.leads.GetByID(ctx, payload.LeadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.PaymentSessions().WithLabelValues("not_found").Inc()
			return dto.PaymentSessionResponse{}, ErrLeadNotFound
		}
		span.RecordError(err)
		return dto.PaymentSessionResponse{}, err
	}

	metadata := datatypes.JSONMap{
		"lead_id":      strconv.FormatUint(uint64(payload.LeadID), 10),
		"school_id":    strconv.FormatUint(uint64(payload.SchoolID), 10),
		"payment_type": payload.PaymentType,
	}
	if s.provider != nil {
		metadata["provider"] = s.provider.Name()
	}

	transaction := models.Transaction{
		SchoolID:    payload.SchoolID,
		Amount:      payload.Amount,
		Currency:    strings.ToLower(payload.Currency),
		PaymentType: payload.PaymentType,
		Description: payload.Description,
		Status:      models.TransactionStatusPending,
		Metadata:    metadata,
	}

	if err := s.transactions.Create(ctx, &transaction); err != nil {
		observability.PaymentSessions().WithLabelValues("error").Inc()
		span.RecordError(err)
		return dto.PaymentSessionResponse{}, err
	}

	observability.PaymentSessions().WithLabelValues("created").Inc()

	return dto.PaymentSessionResponse{
		TransactionID: transaction.ID,
		Status:        transaction.Status,
		RedirectURL:   "",
	}, nil
}

func programCapacityFor(school models.School) int {
	programCount := len(school.Programs)
	if programCount == 0 {
		programCount = 1
	}

	capacity := school.Capacity
	if capacity <= 0 {
		capacity = defaultSchoolCapacity
	}

	programCapacity := capacity / programCount
	if programCapacity < 1 {
		programCapacity = 1
	}

	return programCapacity
}

func normalizeProgram(program string) string {
	return strings.ToLower(strings.TrimSpace(program))
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

var (
	// ErrHealthRecordNotFound indicates the student has no health record yet.
	ErrHealthRecordNotFound = errors.New("health record not found")
	// ErrMedicationNotFound indicates the medication record does not exist.
	ErrMedicationNotFound = errors.New("medication record not found")
)

// HealthService maintains student health and medication records for staff.
type HealthService interface {
	UpsertHealthRecord(ctx context.Context, payload dto.HealthRecordRequest) (dto.HealthRecordResponse, error)
	GetHealthRecord(ctx context.Context, studentID uint) (dto.HealthRecordResponse, error)
	AddMedication(ctx context.Context, payload dto.MedicationRecordRequest) (dto.MedicationRecordResponse, error)
	ListMedications(ctx context.Context, studentID uint) ([]dto.MedicationRecordResponse, error)
	DeactivateMedication(ctx context.Context, id uint) (dto.MedicationRecordResponse, error)
}

type healthService struct {
	records   repository.HealthRepository
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewHealthService constructs the health service.
func NewHealthService(healthRepo repository.HealthRepository, studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) HealthService {
	return &healthService{
		records:   healthRepo,
		students:  studentRepo,
		validator: validate,
		logger:    logger.With().Str("component", "health_service").Logger(),
	}
}

// UpsertHealthRecord creates the student's health record or updates the
// existing one. A student carries at most one health record.
func (s *healthService) UpsertHealthRecord(ctx context.Context, payload dto.HealthRecordRequest) (dto.HealthRecordResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.HealthRecordResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HealthRecordResponse{}, ErrStudentNotFound
		}
		return dto.HealthRecordResponse{}, err
	}

	record, err := s.records.GetHealthRecordByStudent(ctx, payload.StudentID)
	switch {
	case err == nil:
		record.Allergies = payload.Allergies
		record.Conditions = payload.Conditions
		record.Notes = payload.Notes
		if err := s.records.UpdateHealthRecord(ctx, &record); err != nil {
			return dto.HealthRecordResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.HealthRecord{
			StudentID:  payload.StudentID,
			SchoolID:   payload.SchoolID,
			Allergies:  payload.Allergies,
			Conditions: payload.Conditions,
			Notes:      payload.Notes,
		}
		if err := s.records.CreateHealthRecord(ctx, &record); err != nil {
			return dto.HealthRecordResponse{}, err
		}
	default:
		return dto.HealthRecordResponse{}, err
	}

	return dto.NewHealthRecordResponse(record), nil
}

func (s *healthService) GetHealthRecord(ctx context.Context, studentID uint) (dto.HealthRecordResponse, error) {
	record, err := s.records.GetHealthRecordByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.HealthRecordResponse{}, ErrHealthRecordNotFound
		}
		return dto.HealthRecordResponse{}, err
	}

	return dto.NewHealthRecordResponse(record), nil
}

func (s *healthService) AddMedication(ctx context.Context, payload dto.MedicationRecordRequest) (dto.MedicationRecordResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MedicationRecordResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MedicationRecordResponse{}, ErrStudentNotFound
		}
		return dto.MedicationRecordResponse{}, err
	}

	record := models.MedicationRecord{
		StudentID:    payload.StudentID,
		SchoolID:     payload.SchoolID,
		Name:         strings.TrimSpace(payload.Name),
		Dosage:       strings.TrimSpace(payload.Dosage),
		Schedule:     strings.TrimSpace(payload.Schedule),
		AuthorizedBy: strings.TrimSpace(payload.AuthorizedBy),
		Active:       true,
	}

	if err := s.records.CreateMedicationRecord(ctx, &record); err != nil {
		return dto.MedicationRecordResponse{}, err
	}

	return dto.NewMedicationRecordResponse(record), nil
}

func (s *healthService) ListMedications(ctx context.Context, studentID uint) ([]dto.MedicationRecordResponse, error) {
	records, err := s.records.ListMedicationsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewMedicationRecordResponseSlice(records), nil
}

func (s *healthService) DeactivateMedication(ctx context.Context, id uint) (dto.MedicationRecordResponse, error) {
	record, err := s.records.GetMedicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MedicationRecordResponse{}, ErrMedicationNotFound
		}
		return dto.MedicationRecordResponse{}, err
	}

	record.Active = false
	if err := s.records.UpdateMedicationRecord(ctx, &record); err != nil {
		return dto.MedicationRecordResponse{}, err
	}

	return dto.NewMedicationRecordResponse(record), nil
}

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

// ErrStudentNotFound indicates the student record does not exist.
var ErrStudentNotFound = errors.New("student not found")

const dateOnlyLayout = "2006-01-02"

// StudentService provides CRUD over student records for staff.
type StudentService interface {
	Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	ListBySchool(ctx context.Context, schoolID uint, page, pageSize int) (dto.StudentListResult, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	students  repository.StudentRepository
	schools   repository.SchoolRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(studentRepo repository.StudentRepository, schoolRepo repository.SchoolRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  studentRepo,
		schools:   schoolRepo,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	if _, err := s.schools.GetByID(ctx, payload.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrSchoolNotFound
		}
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		SchoolID:      payload.SchoolID,
		FirstName:     strings.TrimSpace(payload.FirstName),
		LastName:      strings.TrimSpace(payload.LastName),
		Program:       strings.TrimSpace(payload.Program),
		GuardianName:  strings.TrimSpace(payload.GuardianName),
		GuardianEmail: strings.TrimSpace(payload.GuardianEmail),
		GuardianPhone: strings.TrimSpace(payload.GuardianPhone),
	}

	if payload.DateOfBirth != "" {
		dob, err := time.Parse(dateOnlyLayout, payload.DateOfBirth)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		student.DateOfBirth = &dob
	}

	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) ListBySchool(ctx context.Context, schoolID uint, page, pageSize int) (dto.StudentListResult, error) {
	page = normalizePage(page)
	pageSize = clampPageSize(pageSize)

	students, total, err := s.students.ListBySchool(ctx, schoolID, page, pageSize)
	if err != nil {
		return dto.StudentListResult{}, err
	}

	return dto.StudentListResult{
		Items: dto.NewStudentResponseSlice(students),
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, pageSize),
		},
	}, nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	if payload.FirstName != nil {
		student.FirstName = strings.TrimSpace(*payload.FirstName)
	}
	if payload.LastName != nil {
		student.LastName = strings.TrimSpace(*payload.LastName)
	}
	if payload.DateOfBirth != nil {
		dob, err := time.Parse(dateOnlyLayout, *payload.DateOfBirth)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		student.DateOfBirth = &dob
	}
	if payload.Program != nil {
		student.Program = strings.TrimSpace(*payload.Program)
	}
	if payload.GuardianName != nil {
		student.GuardianName = strings.TrimSpace(*payload.GuardianName)
	}
	if payload.GuardianEmail != nil {
		student.GuardianEmail = strings.TrimSpace(*payload.GuardianEmail)
	}
	if payload.GuardianPhone != nil {
		student.GuardianPhone = strings.TrimSpace(*payload.GuardianPhone)
	}

	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	return nil
}

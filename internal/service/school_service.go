package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

// SchoolService exposes the public school directory and admin onboarding.
type SchoolService interface {
	List(ctx context.Context, req dto.SchoolListRequest) (dto.SchoolListResult, error)
	Get(ctx context.Context, id uint) (dto.SchoolResponse, error)
	Create(ctx context.Context, req dto.SchoolCreateRequest) (dto.SchoolResponse, error)
	Update(ctx context.Context, id uint, req dto.SchoolUpdateRequest) (dto.SchoolResponse, error)
}

type schoolService struct {
	repo      repository.SchoolRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(repo repository.SchoolRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) SchoolService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &schoolService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		logger:    logger.With().Str("component", "school_service").Logger(),
	}
}

func (s *schoolService) List(ctx context.Context, req dto.SchoolListRequest) (dto.SchoolListResult, error) {
	filter := repository.SchoolFilter{
		Search:   strings.TrimSpace(req.Search),
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
	}

	if cached, ok := s.fetchCache(ctx, filter); ok {
		cached.CacheHit = true
		return cached, nil
	}

	schools, total, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return dto.SchoolListResult{}, err
	}

	result := dto.SchoolListResult{
		Items: dto.NewSchoolResponseSlice(schools),
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}

	s.writeCache(ctx, filter, result)

	return result, nil
}

// Get returns a school visible in the public directory. Inactive schools
// are reported as missing.
func (s *schoolService) Get(ctx context.Context, id uint) (dto.SchoolResponse, error) {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SchoolResponse{}, ErrSchoolNotFound
		}
		return dto.SchoolResponse{}, err
	}

	if !school.IsActive() {
		return dto.SchoolResponse{}, ErrSchoolNotFound
	}

	return dto.NewSchoolResponse(school), nil
}

func (s *schoolService) Create(ctx context.Context, req dto.SchoolCreateRequest) (dto.SchoolResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SchoolResponse{}, err
	}

	school := models.School{
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
		Programs: datatypes.NewJSONSlice(normalizePrograms(req.Programs)),
		Status:   models.SchoolStatusActive,
	}

	if err := s.repo.Create(ctx, &school); err != nil {
		return dto.SchoolResponse{}, err
	}

	return dto.NewSchoolResponse(school), nil
}

func (s *schoolService) Update(ctx context.Context, id uint, req dto.SchoolUpdateRequest) (dto.SchoolResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SchoolResponse{}, err
	}

	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SchoolResponse{}, ErrSchoolNotFound
		}
		return dto.SchoolResponse{}, err
	}

	if req.Name != nil {
		school.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		school.Capacity = *req.Capacity
	}
	if req.Programs != nil {
		school.Programs = datatypes.NewJSONSlice(normalizePrograms(*req.Programs))
	}
	if req.Status != nil {
		school.Status = *req.Status
	}

	if err := s.repo.Update(ctx, &school); err != nil {
		return dto.SchoolResponse{}, err
	}

	return dto.NewSchoolResponse(school), nil
}

func (s *schoolService) fetchCache(ctx context.Context, filter repository.SchoolFilter) (dto.SchoolListResult, bool) {
	if s.cache == nil {
		return dto.SchoolListResult{}, false
	}

	payload, err := s.cache.Get(ctx, s.cacheKey(filter)).Result()
	if err != nil {
		return dto.SchoolListResult{}, false
	}

	var result dto.SchoolListResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode school directory cache")
		return dto.SchoolListResult{}, false
	}

	return result, true
}

func (s *schoolService) writeCache(ctx context.Context, filter repository.SchoolFilter, result dto.SchoolListResult) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode school directory cache")
		return
	}

	if err := s.cache.Set(ctx, s.cacheKey(filter), payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store school directory cache")
	}
}

func (s *schoolService) cacheKey(filter repository.SchoolFilter) string {
	return strings.Join([]string{
		"schools:v1",
		filter.Search,
		strconv.Itoa(filter.Page),
		strconv.Itoa(filter.PageSize),
	}, ":")
}

func normalizePrograms(programs []string) []string {
	cleaned := make([]string, 0, len(programs))
	for _, program := range programs {
		trimmed := strings.TrimSpace(program)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampPageSize(size int) int {
	switch {
	case size < 1:
		return 20
	case size > 100:
		return 100
	default:
		return size
	}
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}

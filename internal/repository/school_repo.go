package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// SchoolFilter narrows directory listings.
type SchoolFilter struct {
	Search   string
	Page     int
	PageSize int
}

// SchoolRepository provides access to school records.
type SchoolRepository interface {
	GetByID(ctx context.Context, id uint) (models.School, error)
	ListActive(ctx context.Context, filter SchoolFilter) ([]models.School, int64, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, school *models.School) error
}

type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository constructs a school repository.
func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) GetByID(ctx context.Context, id uint) (models.School, error) {
	var school models.School
	if err := r.db.WithContext(ctx).First(&school, id).Error; err != nil {
		return models.School{}, err
	}

	return school, nil
}

func (r *schoolRepository) ListActive(ctx context.Context, filter SchoolFilter) ([]models.School, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.School{}).
		Where("status = ?", models.SchoolStatusActive)

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var schools []models.School
	err := query.Order("name asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&schools).Error
	if err != nil {
		return nil, 0, err
	}

	return schools, total, nil
}

func (r *schoolRepository) Create(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepository) Update(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// IncidentFilter narrows incident listings.
type IncidentFilter struct {
	SchoolID uint
	Status   string
	Page     int
	PageSize int
}

// IncidentRepository provides access to incident reports.
type IncidentRepository interface {
	Create(ctx context.Context, report *models.IncidentReport) error
	GetByID(ctx context.Context, id uint) (models.IncidentReport, error)
	List(ctx context.Context, filter IncidentFilter) ([]models.IncidentReport, int64, error)
	Update(ctx context.Context, report *models.IncidentReport) error
}

type incidentRepository struct {
	db *gorm.DB
}

// NewIncidentRepository constructs an incident repository.
func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) Create(ctx context.Context, report *models.IncidentReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *incidentRepository) GetByID(ctx context.Context, id uint) (models.IncidentReport, error) {
	var report models.IncidentReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return models.IncidentReport{}, err
	}

	return report, nil
}

func (r *incidentRepository) List(ctx context.Context, filter IncidentFilter) ([]models.IncidentReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.IncidentReport{}).
		Where("school_id = ?", filter.SchoolID)

	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
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

	var reports []models.IncidentReport
	err := query.Order("occurred_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *incidentRepository) Update(ctx context.Context, report *models.IncidentReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

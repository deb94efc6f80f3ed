package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// LeadRepository provides access to prospective-enrollment records.
type LeadRepository interface {
	GetByID(ctx context.Context, id uint) (models.Lead, error)
	CountEnrolledEquivalent(ctx context.Context, schoolID uint, program string) (int64, error)
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository constructs a lead repository.
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) GetByID(ctx context.Context, id uint) (models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return models.Lead{}, err
	}

	return lead, nil
}

// CountEnrolledEquivalent counts leads occupying a seat in the given
// program. Program and status matching is case-insensitive.
func (r *leadRepository) CountEnrolledEquivalent(ctx context.Context, schoolID uint, program string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("school_id = ?", schoolID).
		Where("LOWER(program) = ?", program).
		Where("LOWER(status) IN ?", models.EnrolledEquivalentStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

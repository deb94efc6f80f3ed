package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// WaitlistRepository provides access to waitlist entries and their
// per-program position counters.
type WaitlistRepository interface {
	GetByLeadID(ctx context.Context, leadID uint) (models.WaitlistEntry, error)
	ListByLeadID(ctx context.Context, leadID uint) ([]models.WaitlistEntry, error)
	CountWaitlisted(ctx context.Context, schoolID uint, program string) (int64, error)
	CreateWithPosition(ctx context.Context, entry *models.WaitlistEntry) error
}

type waitlistRepository struct {
	db *gorm.DB
}

// NewWaitlistRepository constructs a waitlist repository.
func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) GetByLeadID(ctx context.Context, leadID uint) (models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).First(&entry, "lead_id = ?", leadID).Error; err != nil {
		return models.WaitlistEntry{}, err
	}

	return entry, nil
}

func (r *waitlistRepository) ListByLeadID(ctx context.Context, leadID uint) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// CountWaitlisted counts entries still waiting for a seat in the given
// program. Matching is case-insensitive, like the lead count.
func (r *waitlistRepository) CountWaitlisted(ctx context.Context, schoolID uint, program string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WaitlistEntry{}).
		Where("school_id = ?", schoolID).
		Where("LOWER(program) = ?", program).
		Where("LOWER(status) IN ?", models.WaitlistEquivalentStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CreateWithPosition assigns the entry its queue position from the
// per-(school, program) counter and inserts it, all in one transaction.
// The counter increment is a single atomic UPDATE, so two concurrent
// submissions can never observe the same position.
func (r *waitlistRepository) CreateWithPosition(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WaitlistCounter{}).
			Where("school_id = ? AND program = ?", entry.SchoolID, entry.Program).
			Update("next_position", gorm.Expr("next_position + 1"))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			counter := models.WaitlistCounter{
				SchoolID:     entry.SchoolID,
				Program:      entry.Program,
				NextPosition: 2,
			}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
			entry.Position = 1
		} else {
			var counter models.WaitlistCounter
			err := tx.First(&counter, "school_id = ? AND program = ?", entry.SchoolID, entry.Program).Error
			if err != nil {
				return err
			}
			entry.Position = counter.NextPosition - 1
		}

		if entry.Position < 1 {
			return errors.New("waitlist counter yielded non-positive position")
		}

		return tx.Create(entry).Error
	})
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// HealthRepository provides access to health and medication records.
type HealthRepository interface {
	CreateHealthRecord(ctx context.Context, record *models.HealthRecord) error
	GetHealthRecordByStudent(ctx context.Context, studentID uint) (models.HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, record *models.HealthRecord) error
	CreateMedicationRecord(ctx context.Context, record *models.MedicationRecord) error
	ListMedicationsByStudent(ctx context.Context, studentID uint) ([]models.MedicationRecord, error)
	GetMedicationByID(ctx context.Context, id uint) (models.MedicationRecord, error)
	UpdateMedicationRecord(ctx context.Context, record *models.MedicationRecord) error
}

type healthRepository struct {
	db *gorm.DB
}

// NewHealthRepository constructs a health repository.
func NewHealthRepository(db *gorm.DB) HealthRepository {
	return &healthRepository{db: db}
}

func (r *healthRepository) CreateHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *healthRepository) GetHealthRecordByStudent(ctx context.Context, studentID uint) (models.HealthRecord, error) {
	var record models.HealthRecord
	if err := r.db.WithContext(ctx).First(&record, "student_id = ?", studentID).Error; err != nil {
		return models.HealthRecord{}, err
	}

	return record, nil
}

func (r *healthRepository) UpdateHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *healthRepository) CreateMedicationRecord(ctx context.Context, record *models.MedicationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *healthRepository) ListMedicationsByStudent(ctx context.Context, studentID uint) ([]models.MedicationRecord, error) {
	var records []models.MedicationRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *healthRepository) GetMedicationByID(ctx context.Context, id uint) (models.MedicationRecord, error) {
	var record models.MedicationRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return models.MedicationRecord{}, err
	}

	return record, nil
}

func (r *healthRepository) UpdateMedicationRecord(ctx context.Context, record *models.MedicationRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// DocumentRepository provides access to stored document records.
type DocumentRepository interface {
	Create(ctx context.Context, document *models.StudentDocument) error
	ListByLead(ctx context.Context, leadID uint) ([]models.StudentDocument, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository constructs a document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, document *models.StudentDocument) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepository) ListByLead(ctx context.Context, leadID uint) ([]models.StudentDocument, error) {
	var documents []models.StudentDocument
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at desc").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}

	return documents, nil
}

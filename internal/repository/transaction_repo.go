package repository

import (
	"context"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// TransactionRepository provides access to payment-intent records.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	ListPendingByLead(ctx context.Context, leadID uint) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository constructs a transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// ListPendingByLead returns pending transactions whose metadata references
// the lead. Lead ids are stored as strings in the metadata map.
func (r *transactionRepository) ListPendingByLead(ctx context.Context, leadID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ?", models.TransactionStatusPending).
		Where(datatypes.JSONQuery("metadata").Equals(strconv.FormatUint(uint64(leadID), 10), "lead_id")).
		Order("created_at desc").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

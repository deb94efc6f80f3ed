package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/nido-go-api/internal/models"
)

func TestDocumentRepositoryListByLead(t *testing.T) {
	db := setupTestDB(t, &models.StudentDocument{})
	repo := NewDocumentRepository(db)

	docs := []models.StudentDocument{
		{LeadID: 1, SchoolID: 1, DocumentType: "shot_records", Category: models.DocumentCategoryRequired, FileURL: "https://bucket.s3.us-east-1.amazonaws.com/leads/1/a", Status: models.DocumentStatusPending},
		{LeadID: 1, SchoolID: 1, DocumentType: "artwork", Category: models.DocumentCategoryOptional, FileURL: "https://bucket.s3.us-east-1.amazonaws.com/leads/1/b", Status: models.DocumentStatusPending},
		{LeadID: 2, SchoolID: 1, DocumentType: "shot_records", Category: models.DocumentCategoryRequired, FileURL: "https://bucket.s3.us-east-1.amazonaws.com/leads/2/c", Status: models.DocumentStatusPending},
	}
	for i := range docs {
		require.NoError(t, repo.Create(context.Background(), &docs[i]))
	}

	listed, err := repo.ListByLead(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestTransactionRepositoryListPendingByLead(t *testing.T) {
	db := setupTestDB(t, &models.Transaction{})
	repo := NewTransactionRepository(db)

	transactions := []models.Transaction{
		{SchoolID: 1, Amount: 5000, Currency: "usd", Status: models.TransactionStatusPending, Metadata: datatypes.JSONMap{"lead_id": "7", "school_id": "1"}},
		{SchoolID: 1, Amount: 2500, Currency: "usd", Status: models.TransactionStatusSucceeded, Metadata: datatypes.JSONMap{"lead_id": "7", "school_id": "1"}},
		{SchoolID: 1, Amount: 9900, Currency: "usd", Status: models.TransactionStatusPending, Metadata: datatypes.JSONMap{"lead_id": "8", "school_id": "1"}},
	}
	for i := range transactions {
		require.NoError(t, repo.Create(context.Background(), &transactions[i]))
	}

	pending, err := repo.ListPendingByLead(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, int64(5000), pending[0].Amount)
}

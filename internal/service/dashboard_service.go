package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

// DashboardService aggregates registration progress for a parent.
type DashboardService interface {
	GetParentDashboard(ctx context.Context, leadID uint) (dto.ParentDashboardResponse, error)
}

type dashboardService struct {
	leads        repository.LeadRepository
	waitlist     repository.WaitlistRepository
	documents    repository.DocumentRepository
	transactions repository.TransactionRepository
	cache        *redis.Client
	ttl          time.Duration
	logger       zerolog.Logger
}

// NewDashboardService constructs the parent dashboard service.
func NewDashboardService(
	leadRepo repository.LeadRepository,
	waitlistRepo repository.WaitlistRepository,
	documentRepo repository.DocumentRepository,
	transactionRepo repository.TransactionRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) DashboardService {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	return &dashboardService{
		leads:        leadRepo,
		waitlist:     waitlistRepo,
		documents:    documentRepo,
		transactions: transactionRepo,
		cache:        cache,
		ttl:          ttl,
		logger:       logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) GetParentDashboard(ctx context.Context, leadID uint) (dto.ParentDashboardResponse, error) {
	if cached, ok := s.fetchCache(ctx, leadID); ok {
		return cached, nil
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ParentDashboardResponse{}, ErrLeadNotFound
		}
		return dto.ParentDashboardResponse{}, err
	}

	entries, err := s.waitlist.ListByLeadID(ctx, leadID)
	if err != nil {
		return dto.ParentDashboardResponse{}, err
	}

	documents, err := s.documents.ListByLead(ctx, leadID)
	if err != nil {
		return dto.ParentDashboardResponse{}, err
	}

	pending, err := s.transactions.ListPendingByLead(ctx, leadID)
	if err != nil {
		return dto.ParentDashboardResponse{}, err
	}

	waitlist := make([]dto.WaitlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		waitlist = append(waitlist, dto.NewWaitlistEntryResponse(entry))
	}

	transactions := make([]dto.TransactionSummary, 0, len(pending))
	for _, transaction := range pending {
		transactions = append(transactions, dto.TransactionSummary{
			ID:        transaction.ID,
			Amount:    transaction.Amount,
			Currency:  transaction.Currency,
			Status:    transaction.Status,
			CreatedAt: transaction.CreatedAt,
		})
	}

	result := dto.ParentDashboardResponse{
		Lead: dto.LeadSummary{
			ID:          lead.ID,
			SchoolID:    lead.SchoolID,
			Program:     lead.Program,
			Status:      lead.Status,
			ParentEmail: lead.ParentEmail,
			UpdatedAt:   lead.UpdatedAt,
		},
		Waitlist:     waitlist,
		Documents:    buildDocumentChecklist(documents),
		Transactions: transactions,
	}

	s.writeCache(ctx, leadID, result)

	return result, nil
}

// buildDocumentChecklist compares uploaded document types against the
// required set; coverage is by type, regardless of review status.
func buildDocumentChecklist(documents []models.StudentDocument) dto.DocumentChecklist {
	uploadedTypes := make(map[string]struct{}, len(documents))
	for _, document := range documents {
		uploadedTypes[strings.ToLower(document.DocumentType)] = struct{}{}
	}

	missing := make([]string, 0)
	for _, required := range models.RequiredDocumentTypes() {
		if _, ok := uploadedTypes[required]; !ok {
			missing = append(missing, required)
		}
	}

	return dto.DocumentChecklist{
		Uploaded: dto.NewDocumentResponseSlice(documents),
		Missing:  missing,
		Complete: len(missing) == 0,
	}
}

func (s *dashboardService) fetchCache(ctx context.Context, leadID uint) (dto.ParentDashboardResponse, bool) {
	if s.cache == nil {
		return dto.ParentDashboardResponse{}, false
	}

	payload, err := s.cache.Get(ctx, dashboardCacheKey(leadID)).Result()
	if err != nil {
		return dto.ParentDashboardResponse{}, false
	}

	var result dto.ParentDashboardResponse
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode dashboard cache")
		return dto.ParentDashboardResponse{}, false
	}

	return result, true
}

func (s *dashboardService) writeCache(ctx context.Context, leadID uint, result dto.ParentDashboardResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode dashboard cache")
		return
	}

	if err := s.cache.Set(ctx, dashboardCacheKey(leadID), payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
	}
}

func dashboardCacheKey(leadID uint) string {
	return fmt.Sprintf("dashboard:v1:%d", leadID)
}

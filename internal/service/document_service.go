package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/observability"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

// publicUploadNote tags records created through the unauthenticated flow.
const publicUploadNote = "public registration upload"

var (
	// ErrDocumentFileRequired signals that the request did not include a file.
	ErrDocumentFileRequired = errors.New("document file is required")
	// ErrDocumentTypeNotAllowed is returned when the detected MIME type is not permitted.
	ErrDocumentTypeNotAllowed = errors.New("document file type not allowed")
	// ErrDocumentTooLarge indicates the payload exceeded the configured limit.
	ErrDocumentTooLarge = errors.New("document exceeds maximum allowed size")
	// ErrStorageNotConfigured is returned when document storage credentials are absent.
	ErrStorageNotConfigured = errors.New("document storage is not configured")
)

// allowedDocumentMimes is the public-upload allow list, checked against the
// sniffed content type, never the client-supplied header.
var allowedDocumentMimes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"image/jpeg": {},
	"image/png":  {},
}

// DocumentStorage abstracts the object store documents are written to.
type DocumentStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// DocumentService handles validation and persistence of lead documents.
type DocumentService interface {
	UploadPublic(ctx context.Context, payload dto.DocumentUploadRequest, file *multipart.FileHeader) (dto.DocumentResponse, error)
	UploadAuthenticated(ctx context.Context, payload dto.DocumentUploadRequest, file *multipart.FileHeader, uploaderID string) (dto.DocumentResponse, error)
	ListByLead(ctx context.Context, leadID uint) ([]dto.DocumentResponse, error)
}

type documentService struct {
	storage   DocumentStorage
	documents repository.DocumentRepository
	leads     repository.LeadRepository
	validator *validator.Validate
	logger    zerolog.Logger
	maxSize   int64
	tracer    trace.Tracer
}

// NewDocumentService constructs a document service. Storage may be nil when
// credentials are absent; uploads are then rejected before touching anything.
func NewDocumentService(
	storage DocumentStorage,
	documentRepo repository.DocumentRepository,
	leadRepo repository.LeadRepository,
	validate *validator.Validate,
	maxSizeMB int,
	logger zerolog.Logger,
) DocumentService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	return &documentService{
		storage:   storage,
		documents: documentRepo,
		leads:     leadRepo,
		validator: validate,
		logger:    logger.With().Str("component", "document_service").Logger(),
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		tracer:    otel.Tracer("github.com/noah-isme/nido-go-api/internal/service/document"),
	}
}

// UploadPublic stores a document submitted through the unauthenticated
// registration flow. The lead must exist and belong to the claimed school,
// the sniffed MIME type must be allow-listed and the payload must fit the
// size limit; all checks run before any storage call.
func (s *documentService) UploadPublic(ctx context.Context, payload dto.DocumentUploadRequest, file *multipart.FileHeader) (dto.DocumentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "document.upload_public")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.DocumentUploadLatency().Observe(time.Since(start).Seconds())
	}()

	if s.storage == nil {
		observability.DocumentRejected().WithLabelValues("storage_unconfigured").Inc()
		span.SetStatus(codes.Error, "storage unconfigured")
		return dto.DocumentResponse{}, ErrStorageNotConfigured
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		return dto.DocumentResponse{}, err
	}

	if file == nil {
		observability.DocumentRejected().WithLabelValues("missing_file").Inc()
		span.SetStatus(codes.Error, "file missing")
		return dto.DocumentResponse{}, ErrDocumentFileRequired
	}

	lead, err := s.leads.GetByID(ctx, payload.LeadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.DocumentRejected().WithLabelValues("lead_not_found").Inc()
			return dto.DocumentResponse{}, ErrLeadNotFound
		}
		span.RecordError(err)
		return dto.DocumentResponse{}, err
	}

	// A lead claimed against the wrong school is indistinguishable from a
	// missing lead to the public caller.
	if lead.SchoolID != payload.SchoolID {
		observability.DocumentRejected().WithLabelValues("school_mismatch").Inc()
		return dto.DocumentResponse{}, ErrLeadNotFound
	}

	if file.Size > s.maxSize {
		observability.DocumentRejected().WithLabelValues("size").Inc()
		span.SetStatus(codes.Error, "payload too large")
		return dto.DocumentResponse{}, ErrDocumentTooLarge
	}

	content, err := readFile(file, s.maxSize+1)
	if err != nil {
		span.RecordError(err)
		return dto.DocumentResponse{}, err
	}
	if int64(len(content)) > s.maxSize {
		observability.DocumentRejected().WithLabelValues("size").Inc()
		span.SetStatus(codes.Error, "payload too large")
		return dto.DocumentResponse{}, ErrDocumentTooLarge
	}

	detected := mimetype.Detect(content)
	span.SetAttributes(attribute.String("document.detected_mime", detected.String()))
	if _, ok := allowedDocumentMimes[detected.String()]; !ok {
		observability.DocumentRejected().WithLabelValues("type").Inc()
		span.SetStatus(codes.Error, "type not allowed")
		return dto.DocumentResponse{}, ErrDocumentTypeNotAllowed
	}

	record, err := s.store(ctx, payload, content, detected.String(), detected.Extension(),
		strconv.FormatUint(uint64(lead.ID), 10), publicUploadNote)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		return dto.DocumentResponse{}, err
	}

	span.SetStatus(codes.Ok, "stored")
	return record, nil
}

// UploadAuthenticated stores a document on behalf of staff. Ownership, type
// and size checks are skipped; the caller identity becomes the uploader.
func (s *documentService) UploadAuthenticated(ctx context.Context, payload dto.DocumentUploadRequest, file *multipart.FileHeader, uploaderID string) (dto.DocumentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "document.upload_authenticated")
	defer span.End()

	if s.storage == nil {
		observability.DocumentRejected().WithLabelValues("storage_unconfigured").Inc()
		return dto.DocumentResponse{}, ErrStorageNotConfigured
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.DocumentResponse{}, err
	}

	if file == nil {
		return dto.DocumentResponse{}, ErrDocumentFileRequired
	}

	content, err := readFile(file, 0)
	if err != nil {
		span.RecordError(err)
		return dto.DocumentResponse{}, err
	}

	detected := mimetype.Detect(content)

	record, err := s.store(ctx, payload, content, detected.String(), detected.Extension(), uploaderID, "")
	if err != nil {
		span.RecordError(err)
		return dto.DocumentResponse{}, err
	}

	return record, nil
}

func (s *documentService) ListByLead(ctx context.Context, leadID uint) ([]dto.DocumentResponse, error) {
	documents, err := s.documents.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	return dto.NewDocumentResponseSlice(documents), nil
}

// store writes the payload to object storage and persists the record. A
// failure after the put orphans the stored object; there is no compensation.
func (s *documentService) store(ctx context.Context, payload dto.DocumentUploadRequest, content []byte, mimeType, extension, uploaderID, note string) (dto.DocumentResponse, error) {
	key := buildDocumentKey(payload.LeadID, payload.DocumentType, extension)

	url, err := s.storage.Put(ctx, key, mimeType, bytes.NewReader(content))
	if err != nil {
		observability.DocumentRejected().WithLabelValues("storage").Inc()
		return dto.DocumentResponse{}, err
	}

	record := models.StudentDocument{
		LeadID:       payload.LeadID,
		SchoolID:     payload.SchoolID,
		DocumentType: payload.DocumentType,
		Category:     models.DocumentCategory(payload.DocumentType),
		FileURL:      url,
		SizeBytes:    int64(len(content)),
		MimeType:     mimeType,
		UploadedBy:   uploaderID,
		Note:         note,
		Status:       models.DocumentStatusPending,
	}

	if err := s.documents.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("document record save failed after storage put")
		return dto.DocumentResponse{}, err
	}

	observability.DocumentUploads().WithLabelValues(record.Category).Inc()

	return dto.NewDocumentResponse(record), nil
}

// readFile drains the upload into memory. A positive limit caps the bytes
// read; zero reads the whole payload (authenticated variant).
func readFile(file *multipart.FileHeader, limit int64) ([]byte, error) {
	handle, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	var reader io.Reader = handle
	if limit > 0 {
		reader = io.LimitReader(handle, limit)
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, reader); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func buildDocumentKey(leadID uint, documentType, extension string) string {
	cleanType := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(documentType)))

	return fmt.Sprintf("leads/%d/%s/%d-%s%s", leadID, cleanType, time.Now().Unix(), uuid.NewString(), extension)
}

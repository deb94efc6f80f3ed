package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

type stubStorage struct {
	puts     int
	lastKey  string
	lastMime string
}

func (s *stubStorage) Put(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	s.puts++
	s.lastKey = key
	s.lastMime = contentType
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://nido-documents.s3.us-east-1.amazonaws.com/%s", key), nil
}

// makeFileHeader builds a real multipart file header the way fiber hands
// one to the handler.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)

	return files[0]
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
}

func newDocumentFixture(t *testing.T, storage DocumentStorage, maxSizeMB int) (DocumentService, *gorm.DB) {
	t.Helper()

	db := setupServiceDB(t, &models.School{}, &models.Lead{}, &models.StudentDocument{})
	svc := NewDocumentService(
		storage,
		repository.NewDocumentRepository(db),
		repository.NewLeadRepository(db),
		validator.New(),
		maxSizeMB,
		testLogger(),
	)

	return svc, db
}

func seedLead(t *testing.T, db *gorm.DB) models.Lead {
	t.Helper()

	school := models.School{Name: "Cedar Grove", Capacity: 10, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)
	lead := models.Lead{SchoolID: school.ID, Program: "toddler", Status: models.LeadStatusWaitlisted}
	require.NoError(t, db.Create(&lead).Error)

	return lead
}

func TestUploadPublicStoresAllowedDocument(t *testing.T) {
	storage := &stubStorage{}
	svc, db := newDocumentFixture(t, storage, 10)
	lead := seedLead(t, db)

	response, err := svc.UploadPublic(context.Background(), dto.DocumentUploadRequest{
		LeadID:       lead.ID,
		SchoolID:     lead.SchoolID,
		DocumentType: "shot_records",
	}, makeFileHeader(t, "shots.pdf", pdfBytes()))
	require.NoError(t, err)

	require.Equal(t, 1, storage.puts)
	require.Equal(t, "application/pdf", storage.lastMime)
	require.Equal(t, models.DocumentCategoryRequired, response.Category)
	require.Equal(t, models.DocumentStatusPending, response.Status)
	require.Contains(t, response.FileURL, ".s3.us-east-1.amazonaws.com/")
	require.Contains(t, response.FileURL, fmt.Sprintf("leads/%d/shot_records/", lead.ID))

	stored, err := repository.NewDocumentRepository(db).ListByLead(context.Background(), lead.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, publicUploadNote, stored[0].Note)
}

func TestUploadPublicRejectsDisallowedTypeBeforeStorage(t *testing.T) {
	storage := &stubStorage{}
	svc, db := newDocumentFixture(t, storage, 10)
	lead := seedLead(t, db)

	_, err := svc.UploadPublic(context.Background(), dto.DocumentUploadRequest{
		LeadID:       lead.ID,
		SchoolID:     lead.SchoolID,
		DocumentType: "shot_records",
	}, makeFileHeader(t, "notes.txt", []byte("just some plain text, not a document")))
	require.ErrorIs(t, err, ErrDocumentTypeNotAllowed)
	require.Zero(t, storage.puts)
}

func TestUploadPublicRejectsOversizedPayload(t *testing.T) {
	storage := &stubStorage{}
	svc, db := newDocumentFixture(t, storage, 1)
	lead := seedLead(t, db)

	oversized := append(pdfBytes(), bytes.Repeat([]byte{'a'}, 1<<20)...)

	_, err := svc.UploadPublic(context.Background(), dto.DocumentUploadRequest{
		LeadID:       lead.ID,
		SchoolID:     lead.SchoolID,
		DocumentType: "shot_records",
	}, makeFileHeader(t, "big.pdf", oversized))
	require.ErrorIs(t, err, ErrDocumentTooLarge)
	require.Zero(t, storage.puts)
}

func TestUploadPublicSchoolMismatchLooksLikeMissingLead(t *testing.T) {
	storage := &stubStorage{}
	svc, db := newDocumentFixture(t, storage, 10)
	lead := seedLead(t, db)

	_, err := svc.UploadPublic(context.Background(), dto.DocumentUploadRequest{
		LeadID:       lead.ID,
		SchoolID:     lead.SchoolID + 100,
		DocumentType: "shot_records",
	}, makeFileHeader(t, "shots.pdf", pdfBytes()))
	require.ErrorIs(t, err, ErrLeadNotFound)
	require.Zero(t, storage.puts)
}

func TestUploadPublicMissingFile(t *testing.T) {
	storage := &stubStorage{}
	svc, db := newDocumentFixture(t, storage, 10)
	lead := seedLead(t, db)

	_, err := svc.UploadPublic(context.Background(), dto.DocumentUploadRequest{
		LeadID:       lead.ID,
		SchoolID:     lead.SchoolID,
		DocumentType: "shot_records",
	}, nil)
	require.ErrorIs(t, err, ErrDocumentFileRequired)
}

func TestUploadPublicStorageNotConfigured(t *testing.T) {
	svc, db := newDocumentFixture(t, nil, 10)
	lead := seedLead(t, db)

	_, err := svc.UploadPublic(context.Background(), dto.DocumentUploadRequest{
		LeadID:       lead.ID,
		SchoolID:     lead.SchoolID,
		DocumentType: "shot_records",
	}, makeFileHeader(t, "shots.pdf", pdfBytes()))
	require.ErrorIs(t, err, ErrStorageNotConfigured)
}

func TestUploadAuthenticatedSkipsTypeCheck(t *testing.T) {
	storage := &stubStorage{}
	svc, db := newDocumentFixture(t, storage, 10)
	lead := seedLead(t, db)

	response, err := svc.UploadAuthenticated(context.Background(), dto.DocumentUploadRequest{
		LeadID:       lead.ID,
		SchoolID:     lead.SchoolID,
		DocumentType: "teacher_notes",
	}, makeFileHeader(t, "notes.txt", []byte("free-form staff notes")), "staff-7")
	require.NoError(t, err)

	require.Equal(t, 1, storage.puts)
	require.Equal(t, models.DocumentCategoryOptional, response.Category)
	require.Equal(t, "staff-7", response.UploadedBy)
}

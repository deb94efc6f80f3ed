package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/handler"
	"github.com/noah-isme/nido-go-api/internal/service"
)

type mockDocumentService struct {
	response dto.DocumentResponse
	err      error

	lastPayload    dto.DocumentUploadRequest
	lastFile       *multipart.FileHeader
	lastUploaderID string
}

func (m *mockDocumentService) UploadPublic(_ context.Context, payload dto.DocumentUploadRequest, file *multipart.FileHeader) (dto.DocumentResponse, error) {
	m.lastPayload = payload
	m.lastFile = file
	if m.err != nil {
		return dto.DocumentResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockDocumentService) UploadAuthenticated(_ context.Context, payload dto.DocumentUploadRequest, file *multipart.FileHeader, uploaderID string) (dto.DocumentResponse, error) {
	m.lastPayload = payload
	m.lastFile = file
	m.lastUploaderID = uploaderID
	if m.err != nil {
		return dto.DocumentResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockDocumentService) ListByLead(_ context.Context, _ uint) ([]dto.DocumentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []dto.DocumentResponse{m.response}, nil
}

func uploadRequest(t *testing.T, target string, fields map[string]string, withFile bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if withFile {
		part, err := writer.CreateFormFile("file", "shots.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestDocumentHandler_PublicUpload(t *testing.T) {
	svc := &mockDocumentService{response: dto.DocumentResponse{ID: 7, Category: "required"}}
	app := fiber.New()
	handler.NewDocumentHandler(svc, zerolog.New(io.Discard)).RegisterPublic(app.Group("/api/v1/documents"))

	req := uploadRequest(t, "/api/v1/documents/upload", map[string]string{
		"lead_id":       "5",
		"school_id":     "3",
		"document_type": "shot_records",
	}, true)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(5), svc.lastPayload.LeadID)
	require.Equal(t, uint(3), svc.lastPayload.SchoolID)
	require.NotNil(t, svc.lastFile)
}

func TestDocumentHandler_PublicUploadErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "storage down", err: service.ErrStorageNotConfigured, statusCode: fiber.StatusServiceUnavailable},
		{name: "lead missing", err: service.ErrLeadNotFound, statusCode: fiber.StatusNotFound},
		{name: "too large", err: service.ErrDocumentTooLarge, statusCode: fiber.StatusRequestEntityTooLarge},
		{name: "bad type", err: service.ErrDocumentTypeNotAllowed, statusCode: fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			handler.NewDocumentHandler(&mockDocumentService{err: tc.err}, zerolog.New(io.Discard)).
				RegisterPublic(app.Group("/api/v1/documents"))

			req := uploadRequest(t, "/api/v1/documents/upload", map[string]string{
				"lead_id":       "5",
				"school_id":     "3",
				"document_type": "shot_records",
			}, true)

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestDocumentHandler_StaffUploadCarriesIdentity(t *testing.T) {
	svc := &mockDocumentService{response: dto.DocumentResponse{ID: 8}}
	app := fiber.New()
	group := app.Group("/api/v1/staff/documents", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(42))
		return c.Next()
	})
	handler.NewDocumentHandler(svc, zerolog.New(io.Discard)).RegisterStaff(group)

	req := uploadRequest(t, "/api/v1/staff/documents/upload", map[string]string{
		"lead_id":       "5",
		"school_id":     "3",
		"document_type": "teacher_notes",
	}, true)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "42", svc.lastUploaderID)
}

func TestDocumentHandler_InvalidLeadField(t *testing.T) {
	app := fiber.New()
	handler.NewDocumentHandler(&mockDocumentService{}, zerolog.New(io.Discard)).
		RegisterPublic(app.Group("/api/v1/documents"))

	req := uploadRequest(t, "/api/v1/documents/upload", map[string]string{
		"lead_id":       "not-a-number",
		"school_id":     "3",
		"document_type": "shot_records",
	}, true)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

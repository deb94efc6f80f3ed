package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/internal/utils"
)

// DocumentHandler handles lead document intake and listing.
type DocumentHandler struct {
	service service.DocumentService
	logger  zerolog.Logger
}

// NewDocumentHandler constructs a document handler.
func NewDocumentHandler(service service.DocumentService, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger.With().Str("component", "document_handler").Logger(),
	}
}

// RegisterPublic wires the unauthenticated upload route.
func (h *DocumentHandler) RegisterPublic(router fiber.Router) {
	router.Post("/upload", h.uploadPublic)
}

// RegisterStaff wires the staff upload and listing routes.
func (h *DocumentHandler) RegisterStaff(router fiber.Router) {
	router.Post("/upload", h.uploadStaff)
	router.Get("/lead/:leadId", h.listByLead)
}

func (h *DocumentHandler) uploadPublic(c *fiber.Ctx) error {
	payload, file, err := h.parseUploadForm(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := h.service.UploadPublic(c.Context(), payload, file)
	if err != nil {
		return h.sendUploadError(c, payload, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document stored", document)
}

func (h *DocumentHandler) uploadStaff(c *fiber.Ctx) error {
	payload, file, err := h.parseUploadForm(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := h.service.UploadAuthenticated(c.Context(), payload, file, uploaderIDFromContext(c))
	if err != nil {
		return h.sendUploadError(c, payload, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document stored", document)
}

func (h *DocumentHandler) listByLead(c *fiber.Ctx) error {
	leadID, err := parseUintParam(c, "leadId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lead id")
	}

	documents, err := h.service.ListByLead(c.Context(), leadID)
	if err != nil {
		h.logger.Error().Err(err).Uint("lead_id", leadID).Msg("failed to list documents")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list documents")
	}

	return utils.SendSuccess(c, "documents retrieved", documents)
}

func (h *DocumentHandler) parseUploadForm(c *fiber.Ctx) (dto.DocumentUploadRequest, *multipart.FileHeader, error) {
	leadID, err := parseUintForm(c, "lead_id")
	if err != nil {
		return dto.DocumentUploadRequest{}, nil, errors.New("invalid lead id")
	}
	schoolID, err := parseUintForm(c, "school_id")
	if err != nil {
		return dto.DocumentUploadRequest{}, nil, errors.New("invalid school id")
	}

	payload := dto.DocumentUploadRequest{
		LeadID:       leadID,
		SchoolID:     schoolID,
		DocumentType: c.FormValue("document_type"),
	}

	// The file is optional at parse time; the service rejects a missing file
	// after the cheaper checks.
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	return payload, file, nil
}

func (h *DocumentHandler) sendUploadError(c *fiber.Ctx, payload dto.DocumentUploadRequest, err error) error {
	switch {
	case errors.Is(err, service.ErrStorageNotConfigured):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "document storage unavailable")
	case errors.Is(err, service.ErrLeadNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "lead not found")
	case errors.Is(err, service.ErrDocumentFileRequired):
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	case errors.Is(err, service.ErrDocumentTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrDocumentTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Uint("lead_id", payload.LeadID).Msg("document upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "document upload failed")
	}
}

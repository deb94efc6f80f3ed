package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/internal/utils"
)

// IncidentHandler serves staff incident reporting and tracking.
type IncidentHandler struct {
	service service.IncidentService
	logger  zerolog.Logger
}

// NewIncidentHandler constructs an incident handler.
func NewIncidentHandler(service service.IncidentService, logger zerolog.Logger) *IncidentHandler {
	return &IncidentHandler{
		service: service,
		logger:  logger.With().Str("component", "incident_handler").Logger(),
	}
}

// Register wires incident routes.
func (h *IncidentHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/school/:schoolId", h.list)
	router.Get("/:id", h.get)
	router.Post("/:id/resolve", h.resolve)
}

func (h *IncidentHandler) create(c *fiber.Ctx) error {
	var payload dto.IncidentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	report, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSchoolNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "school not found")
		case errors.Is(err, service.ErrIncidentDescriptionEmpty),
			errors.Is(err, service.ErrIncidentInvalidTime),
			isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to record incident")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record incident")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "incident recorded", report)
}

func (h *IncidentHandler) list(c *fiber.Ctx) error {
	schoolID, err := parseUintParam(c, "schoolId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	reports, pagination, err := h.service.List(c.Context(), schoolID, c.Query("status"), page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Uint("school_id", schoolID).Msg("failed to list incidents")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list incidents")
	}

	return utils.SendSuccess(c, "incidents retrieved", fiber.Map{
		"items":      reports,
		"pagination": pagination,
	})
}

func (h *IncidentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid incident id")
	}

	report, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrIncidentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "incident not found")
		}
		h.logger.Error().Err(err).Uint("incident_id", id).Msg("failed to fetch incident")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch incident")
	}

	return utils.SendSuccess(c, "incident retrieved", report)
}

func (h *IncidentHandler) resolve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid incident id")
	}

	report, err := h.service.Resolve(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrIncidentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "incident not found")
		}
		h.logger.Error().Err(err).Uint("incident_id", id).Msg("failed to resolve incident")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve incident")
	}

	return utils.SendSuccess(c, "incident resolved", report)
}

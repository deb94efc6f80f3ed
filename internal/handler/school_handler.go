package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/internal/utils"
)

// SchoolHandler serves the public school directory and admin onboarding.
type SchoolHandler struct {
	service service.SchoolService
	logger  zerolog.Logger
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(service service.SchoolService, logger zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		service: service,
		logger:  logger.With().Str("component", "school_handler").Logger(),
	}
}

// RegisterPublic wires the directory routes.
func (h *SchoolHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterAdmin wires the staff-only school management routes.
func (h *SchoolHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:id", h.update)
}

func (h *SchoolHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.Context(), dto.SchoolListRequest{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list schools")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list schools")
	}

	return utils.SendSuccess(c, "schools retrieved", result)
}

func (h *SchoolHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	school, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "school not found")
		}
		h.logger.Error().Err(err).Uint("school_id", id).Msg("failed to fetch school")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch school")
	}

	return utils.SendSuccess(c, "school retrieved", school)
}

func (h *SchoolHandler) create(c *fiber.Ctx) error {
	var payload dto.SchoolCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	school, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create school")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create school")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "school created", school)
}

func (h *SchoolHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	var payload dto.SchoolUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	school, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSchoolNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "school not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("school_id", id).Msg("failed to update school")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update school")
		}
	}

	return utils.SendSuccess(c, "school updated", school)
}

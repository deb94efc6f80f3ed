package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/internal/utils"
)

// CalendarHandler serves school calendar management.
type CalendarHandler struct {
	service service.CalendarService
	logger  zerolog.Logger
}

// NewCalendarHandler constructs a calendar handler.
func NewCalendarHandler(service service.CalendarService, logger zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		logger:  logger.With().Str("component", "calendar_handler").Logger(),
	}
}

// Register wires calendar routes.
func (h *CalendarHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/school/:schoolId", h.list)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *CalendarHandler) create(c *fiber.Ctx) error {
	var payload dto.CalendarEventCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSchoolNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "school not found")
		case errors.Is(err, service.ErrCalendarEventInvalidTime):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to create calendar event")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create calendar event")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "calendar event created", event)
}

func (h *CalendarHandler) list(c *fiber.Ctx) error {
	schoolID, err := parseUintParam(c, "schoolId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	events, err := h.service.List(c.Context(), dto.CalendarEventListRequest{
		SchoolID: schoolID,
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		if errors.Is(err, service.ErrCalendarEventInvalidTime) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("school_id", schoolID).Msg("failed to list calendar events")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list calendar events")
	}

	return utils.SendSuccess(c, "calendar events retrieved", events)
}

func (h *CalendarHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var payload dto.CalendarEventUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCalendarEventNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "calendar event not found")
		case errors.Is(err, service.ErrCalendarEventInvalidTime):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("event_id", id).Msg("failed to update calendar event")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update calendar event")
		}
	}

	return utils.SendSuccess(c, "calendar event updated", event)
}

func (h *CalendarHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCalendarEventNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "calendar event not found")
		}
		h.logger.Error().Err(err).Uint("event_id", id).Msg("failed to delete calendar event")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete calendar event")
	}

	return utils.SendSuccess(c, "calendar event deleted", nil)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/internal/utils"
)

// RegistrationHandler serves the parent-facing registration flow.
type RegistrationHandler struct {
	service service.RegistrationService
	logger  zerolog.Logger
}

// NewRegistrationHandler constructs a registration handler.
func NewRegistrationHandler(service service.RegistrationService, logger zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		logger:  logger.With().Str("component", "registration_handler").Logger(),
	}
}

// Register wires the registration routes.
func (h *RegistrationHandler) Register(router fiber.Router) {
	router.Get("/availability/:schoolId", h.availability)
	router.Post("/waitlist", h.createWaitlistEntry)
	router.Post("/waitlist/payment", h.initiatePayment)
}

func (h *RegistrationHandler) availability(c *fiber.Ctx) error {
	schoolID, err := parseUintParam(c, "schoolId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	result, err := h.service.CheckAvailability(c.Context(), schoolID, c.Query("program"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramRequired):
			return utils.SendError(c, fiber.StatusBadRequest, "program is required")
		case errors.Is(err, service.ErrSchoolNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "school not found")
		default:
			h.logger.Error().Err(err).Uint("school_id", schoolID).Msg("availability check failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "availability check failed")
		}
	}

	return utils.SendSuccess(c, "availability calculated", result)
}

func (h *RegistrationHandler) createWaitlistEntry(c *fiber.Ctx) error {
	var payload dto.WaitlistCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.CreateWaitlistEntry(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lead not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("lead_id", payload.LeadID).Msg("waitlist submission failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "waitlist submission failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "waitlist entry recorded", entry)
}

func (h *RegistrationHandler) initiatePayment(c *fiber.Ctx) error {
	var payload dto.WaitlistPaymentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.InitiateWaitlistPayment(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lead not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("lead_id", payload.LeadID).Msg("payment initiation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "payment initiation failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "payment session created", session)
}

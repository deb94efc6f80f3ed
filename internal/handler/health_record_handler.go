package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/internal/utils"
)

// HealthRecordHandler serves staff health and medication record management.
type HealthRecordHandler struct {
	service service.HealthService
	logger  zerolog.Logger
}

// NewHealthRecordHandler constructs a health record handler.
func NewHealthRecordHandler(service service.HealthService, logger zerolog.Logger) *HealthRecordHandler {
	return &HealthRecordHandler{
		service: service,
		logger:  logger.With().Str("component", "health_record_handler").Logger(),
	}
}

// Register wires health record routes.
func (h *HealthRecordHandler) Register(router fiber.Router) {
	router.Put("/records", h.upsertRecord)
	router.Get("/records/student/:studentId", h.getRecord)
	router.Post("/medications", h.addMedication)
	router.Get("/medications/student/:studentId", h.listMedications)
	router.Delete("/medications/:id", h.deactivateMedication)
}

func (h *HealthRecordHandler) upsertRecord(c *fiber.Ctx) error {
	var payload dto.HealthRecordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.UpsertHealthRecord(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to save health record")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save health record")
		}
	}

	return utils.SendSuccess(c, "health record saved", record)
}

func (h *HealthRecordHandler) getRecord(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	record, err := h.service.GetHealthRecord(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrHealthRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "health record not found")
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to fetch health record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch health record")
	}

	return utils.SendSuccess(c, "health record retrieved", record)
}

func (h *HealthRecordHandler) addMedication(c *fiber.Ctx) error {
	var payload dto.MedicationRecordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.AddMedication(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to add medication record")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to add medication record")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "medication record created", record)
}

func (h *HealthRecordHandler) listMedications(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	records, err := h.service.ListMedications(c.Context(), studentID)
	if err != nil {
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to list medications")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list medications")
	}

	return utils.SendSuccess(c, "medication records retrieved", records)
}

func (h *HealthRecordHandler) deactivateMedication(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	record, err := h.service.DeactivateMedication(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMedicationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "medication record not found")
		}
		h.logger.Error().Err(err).Uint("medication_id", id).Msg("failed to deactivate medication")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to deactivate medication")
	}

	return utils.SendSuccess(c, "medication record deactivated", record)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/internal/utils"
)

// DashboardHandler serves the aggregated parent dashboard.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires the dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/lead/:leadId", h.parentDashboard)
}

func (h *DashboardHandler) parentDashboard(c *fiber.Ctx) error {
	leadID, err := parseUintParam(c, "leadId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lead id")
	}

	dashboard, err := h.service.GetParentDashboard(c.Context(), leadID)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lead not found")
		}
		h.logger.Error().Err(err).Uint("lead_id", leadID).Msg("failed to build dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lls-edu/lls-api/internal/service"
	"github.com/lls-edu/lls-api/internal/utils"
)

// DashboardHandler serves the aggregated student dashboard.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler builds a dashboard handler instance.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/student", h.studentDashboard)
	router.Get("/students/:id", h.studentDashboardByID)
}

func (h *DashboardHandler) studentDashboard(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	return h.respond(c, studentID)
}

func (h *DashboardHandler) studentDashboardByID(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	return h.respond(c, studentID)
}

func (h *DashboardHandler) respond(c *fiber.Ctx, studentID uint) error {
	dashboard, err := h.service.StudentDashboard(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Msg("dashboard build failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process request")
	}
	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/service"
	"github.com/lls-edu/lls-api/internal/utils"
)

// NotificationHandler manages notification endpoints for the logged-in user.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler builds a notification handler instance.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/unread-count", h.unreadCount)
	router.Patch("/:id/read", h.markRead)
	router.Patch("/read-all", h.markAllRead)
	router.Delete("/:id", h.delete)
}

// RegisterAdmin attaches operator-only routes.
func (h *NotificationHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/deadline-reminders", h.sendDeadlineReminders)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread_only")
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notifications, err := h.service.List(c.Context(), userRoleFromContext(c), userIDFromContext(c), unreadOnly, limit)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notifications retrieved", notifications)
}

func (h *NotificationHandler) unreadCount(c *fiber.Ctx) error {
	count, err := h.service.UnreadCount(c.Context(), userRoleFromContext(c), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "unread count retrieved", dto.UnreadCountResponse{UnreadCount: count})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notification, err := h.service.MarkRead(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notification marked read", notification)
}

func (h *NotificationHandler) markAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllRead(c.Context(), userRoleFromContext(c), userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notifications marked read", nil)
}

func (h *NotificationHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "notification deleted", nil)
}

func (h *NotificationHandler) sendDeadlineReminders(c *fiber.Ctx) error {
	sent, err := h.service.SendDeadlineReminders(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "deadline reminders dispatched", fiber.Map{"reminders_sent": sent})
}

func (h *NotificationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("notification operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process request")
	}
}

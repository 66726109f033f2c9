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

// CommunicationHandler manages direct message endpoints.
type CommunicationHandler struct {
	service service.CommunicationService
	logger  zerolog.Logger
}

// NewCommunicationHandler builds a communication handler instance.
func NewCommunicationHandler(service service.CommunicationService, logger zerolog.Logger) *CommunicationHandler {
	return &CommunicationHandler{
		service: service,
		logger:  logger.With().Str("component", "communication_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *CommunicationHandler) Register(router fiber.Router) {
	router.Post("", h.send)
	router.Get("/inbox", h.inbox)
	router.Get("/sent", h.sent)
	router.Get("/unread-count", h.unreadCount)
	router.Patch("/:id/read", h.markRead)
}

func (h *CommunicationHandler) send(c *fiber.Ctx) error {
	var payload dto.MessageSendRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	message, err := h.service.Send(c.Context(), userRoleFromContext(c), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message sent", message)
}

func (h *CommunicationHandler) inbox(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	messages, err := h.service.Inbox(c.Context(), userRoleFromContext(c), userIDFromContext(c), limit)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "inbox retrieved", messages)
}

func (h *CommunicationHandler) sent(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	messages, err := h.service.Sent(c.Context(), userRoleFromContext(c), userIDFromContext(c), limit)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "sent messages retrieved", messages)
}

func (h *CommunicationHandler) unreadCount(c *fiber.Ctx) error {
	count, err := h.service.UnreadCount(c.Context(), userRoleFromContext(c), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "unread count retrieved", dto.UnreadCountResponse{UnreadCount: count})
}

func (h *CommunicationHandler) markRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	message, err := h.service.MarkRead(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "message marked read", message)
}

func (h *CommunicationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrReceiverNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("message operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process request")
	}
}

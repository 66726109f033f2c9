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

// DirectoryHandler manages student and staff account endpoints.
type DirectoryHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewDirectoryHandler builds a directory handler instance.
func NewDirectoryHandler(service service.DirectoryService, logger zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		logger:  logger.With().Str("component", "directory_handler").Logger(),
	}
}

// RegisterStudents attaches the student account routes.
func (h *DirectoryHandler) RegisterStudents(router fiber.Router) {
	router.Get("", h.listStudents)
	router.Get("/:id", h.getStudent)
	router.Post("", h.createStudent)
	router.Delete("/:id", h.deleteStudent)
}

// RegisterStaff attaches the staff account routes.
func (h *DirectoryHandler) RegisterStaff(router fiber.Router) {
	router.Get("", h.listStaff)
	router.Get("/:id", h.getStaff)
	router.Post("", h.createStaff)
	router.Delete("/:id", h.deleteStaff)
}

func (h *DirectoryHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.service.ListStudents(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *DirectoryHandler) getStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	student, err := h.service.GetStudent(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *DirectoryHandler) createStudent(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.CreateStudent(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

func (h *DirectoryHandler) deleteStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteStudent(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "student deleted", nil)
}

func (h *DirectoryHandler) listStaff(c *fiber.Ctx) error {
	staff, err := h.service.ListStaff(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "staff retrieved", staff)
}

func (h *DirectoryHandler) getStaff(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	staffMember, err := h.service.GetStaff(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "staff member retrieved", staffMember)
}

func (h *DirectoryHandler) createStaff(c *fiber.Ctx) error {
	var payload dto.StaffCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	staffMember, err := h.service.CreateStaff(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "staff member created", staffMember)
}

func (h *DirectoryHandler) deleteStaff(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteStaff(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "staff member deleted", nil)
}

func (h *DirectoryHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrStaffNotFound),
		errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, service.ErrSemesterNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateAccount):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("directory operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process request")
	}
}

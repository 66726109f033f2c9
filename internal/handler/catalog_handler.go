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

// CatalogHandler manages academic catalog endpoints: years, programs,
// semesters, courses and teaching assignments.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler builds a catalog handler instance.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *CatalogHandler) Register(router fiber.Router) {
	years := router.Group("/academic-years")
	years.Get("", h.listYears)
	years.Post("", h.createYear)
	years.Delete("/:id", h.deleteYear)

	programs := router.Group("/programs")
	programs.Get("", h.listPrograms)
	programs.Post("", h.createProgram)
	programs.Delete("/:id", h.deleteProgram)

	semesters := router.Group("/semesters")
	semesters.Get("", h.listSemesters)
	semesters.Post("", h.createSemester)
	semesters.Delete("/:id", h.deleteSemester)

	courses := router.Group("/courses")
	courses.Get("", h.listCourses)
	courses.Get("/:id", h.getCourse)
	courses.Post("", h.createCourse)
	courses.Delete("/:id", h.deleteCourse)

	staffCourses := router.Group("/staff-courses")
	staffCourses.Get("", h.listStaffCourses)
	staffCourses.Post("", h.createStaffCourse)
	staffCourses.Delete("/:id", h.deleteStaffCourse)
}

func (h *CatalogHandler) listYears(c *fiber.Ctx) error {
	years, err := h.service.ListAcademicYears(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "academic years retrieved", years)
}

func (h *CatalogHandler) createYear(c *fiber.Ctx) error {
	var payload dto.AcademicYearCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	year, err := h.service.CreateAcademicYear(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "academic year created", year)
}

func (h *CatalogHandler) deleteYear(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteAcademicYear(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "academic year deleted", nil)
}

func (h *CatalogHandler) listPrograms(c *fiber.Ctx) error {
	programs, err := h.service.ListPrograms(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "programs retrieved", programs)
}

func (h *CatalogHandler) createProgram(c *fiber.Ctx) error {
	var payload dto.ProgramCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	program, err := h.service.CreateProgram(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "program created", program)
}

func (h *CatalogHandler) deleteProgram(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteProgram(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "program deleted", nil)
}

func (h *CatalogHandler) listSemesters(c *fiber.Ctx) error {
	semesters, err := h.service.ListSemesters(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "semesters retrieved", semesters)
}

func (h *CatalogHandler) createSemester(c *fiber.Ctx) error {
	var payload dto.SemesterCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	semester, err := h.service.CreateSemester(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "semester created", semester)
}

func (h *CatalogHandler) deleteSemester(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteSemester(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "semester deleted", nil)
}

func (h *CatalogHandler) listCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CatalogHandler) getCourse(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	course, err := h.service.GetCourse(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CatalogHandler) createCourse(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.CreateCourse(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CatalogHandler) deleteCourse(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteCourse(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *CatalogHandler) listStaffCourses(c *fiber.Ctx) error {
	assignments, err := h.service.ListStaffCourses(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "staff course assignments retrieved", assignments)
}

func (h *CatalogHandler) createStaffCourse(c *fiber.Ctx) error {
	var payload dto.StaffCourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.CreateStaffCourse(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "staff course assignment created", assignment)
}

func (h *CatalogHandler) deleteStaffCourse(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.service.DeleteStaffCourse(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "staff course assignment deleted", nil)
}

func (h *CatalogHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAcademicYearNotFound),
		errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, service.ErrSemesterNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrStaffNotFound),
		errors.Is(err, service.ErrStaffCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateProgramCode),
		errors.Is(err, service.ErrDuplicateCourseCode),
		errors.Is(err, service.ErrDuplicateStaffCourse):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("catalog operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process request")
	}
}

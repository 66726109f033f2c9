package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lls-edu/lls-api/internal/config"
	"github.com/lls-edu/lls-api/internal/handler"
	"github.com/lls-edu/lls-api/internal/middleware"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler          *handler.AuthHandler
	CatalogHandler       *handler.CatalogHandler
	DirectoryHandler     *handler.DirectoryHandler
	EnrollmentHandler    *handler.EnrollmentHandler
	MaterialHandler      *handler.MaterialHandler
	AssignmentHandler    *handler.AssignmentHandler
	SubmissionHandler    *handler.SubmissionHandler
	QuizHandler          *handler.QuizHandler
	ResultHandler        *handler.ResultHandler
	DashboardHandler     *handler.DashboardHandler
	NotificationHandler  *handler.NotificationHandler
	CommunicationHandler *handler.CommunicationHandler
	FeedbackHandler      *handler.FeedbackHandler
	JWTMiddleware        fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	staffOrAdmin := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	// Academic catalog (years, programs, semesters, courses, staff-courses)
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.Register(api.Group("", jwtMiddleware, adminOnly))
	}

	// Student and staff accounts
	if deps.DirectoryHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.DirectoryHandler.RegisterStudents(students)
		deps.DirectoryHandler.RegisterStaff(api.Group("/staff", jwtMiddleware, adminOnly))

		if deps.EnrollmentHandler != nil {
			deps.EnrollmentHandler.RegisterStudentRoutes(students)
		}
		if deps.ResultHandler != nil {
			deps.ResultHandler.Register(students)
		}
	}

	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(api.Group("/enrollments", jwtMiddleware))
	}

	if deps.MaterialHandler != nil {
		deps.MaterialHandler.Register(api.Group("/materials", jwtMiddleware))
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api.Group("/assignments", jwtMiddleware))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", jwtMiddleware))
	}

	if deps.QuizHandler != nil {
		deps.QuizHandler.Register(api.Group("/quiz", jwtMiddleware))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware)
		deps.NotificationHandler.RegisterAdmin(notifications.Group("/admin", staffOrAdmin))
		deps.NotificationHandler.Register(notifications)
	}

	if deps.CommunicationHandler != nil {
		deps.CommunicationHandler.Register(api.Group("/messages", jwtMiddleware))
	}

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api.Group("/feedback", jwtMiddleware))
	}
}

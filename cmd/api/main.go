package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lls-edu/lls-api/internal/config"
	"github.com/lls-edu/lls-api/internal/database"
	"github.com/lls-edu/lls-api/internal/handler"
	"github.com/lls-edu/lls-api/internal/middleware"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
	"github.com/lls-edu/lls-api/internal/router"
	"github.com/lls-edu/lls-api/internal/service"
	"github.com/lls-edu/lls-api/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.AcademicYear{}, &models.Program{}, &models.Semester{},
		&models.Admin{}, &models.Staff{}, &models.Student{},
		&models.Course{}, &models.StaffCourse{}, &models.StudyMaterial{},
		&models.Assignment{}, &models.Submission{}, &models.Evaluation{},
		&models.MCQ{}, &models.MCQAttempt{}, &models.StudentCourse{},
		&models.Notification{}, &models.Communication{}, &models.Feedback{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	mail := mailer.New(mailer.Config{
		Server:        cfg.Mail.Server,
		Port:          cfg.Mail.Port,
		Username:      cfg.Mail.Username,
		Password:      cfg.Mail.Password,
		DefaultSender: cfg.Mail.DefaultSender,
		UseTLS:        cfg.Mail.UseTLS,
	}, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	yearRepo := repository.NewAcademicYearRepository(db)
	programRepo := repository.NewProgramRepository(db)
	semesterRepo := repository.NewSemesterRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	staffCourseRepo := repository.NewStaffCourseRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	mcqRepo := repository.NewMCQRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	communicationRepo := repository.NewCommunicationRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	notificationService := service.NewNotificationService(
		notificationRepo, enrollmentRepo, studentRepo, staffRepo,
		courseRepo, staffCourseRepo, assignmentRepo, submissionRepo,
		mail, cfg.MailWorkers, logger,
	)
	notificationService.Start()
	defer notificationService.Stop()

	authService := service.NewAuthService(adminRepo, staffRepo, studentRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	catalogService := service.NewCatalogService(yearRepo, programRepo, semesterRepo, courseRepo, staffCourseRepo, staffRepo, validate, logger)
	directoryService := service.NewDirectoryService(studentRepo, staffRepo, programRepo, semesterRepo, validate, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, validate, logger)
	materialService := service.NewMaterialService(materialRepo, staffCourseRepo, notificationService, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, staffRepo, enrollmentRepo, notificationService, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, studentRepo, notificationService, validate, logger)
	quizService := service.NewQuizService(mcqRepo, attemptRepo, courseRepo, studentRepo, enrollmentRepo, validate, logger)
	resultService := service.NewResultService(studentRepo, courseRepo, assignmentRepo, submissionRepo, mcqRepo, attemptRepo, logger)
	dashboardService := service.NewDashboardService(studentRepo, enrollmentRepo, assignmentRepo, submissionRepo, notificationRepo, redisClient, cfg.DashboardCacheTTL, logger)
	communicationService := service.NewCommunicationService(communicationRepo, adminRepo, staffRepo, studentRepo, validate, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, studentRepo, courseRepo, staffRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:          handler.NewAuthHandler(authService, logger),
		CatalogHandler:       handler.NewCatalogHandler(catalogService, logger),
		DirectoryHandler:     handler.NewDirectoryHandler(directoryService, logger),
		EnrollmentHandler:    handler.NewEnrollmentHandler(enrollmentService, logger),
		MaterialHandler:      handler.NewMaterialHandler(materialService, logger),
		AssignmentHandler:    handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler:    handler.NewSubmissionHandler(submissionService, logger),
		QuizHandler:          handler.NewQuizHandler(quizService, logger),
		ResultHandler:        handler.NewResultHandler(resultService, logger),
		DashboardHandler:     handler.NewDashboardHandler(dashboardService, logger),
		NotificationHandler:  handler.NewNotificationHandler(notificationService, logger),
		CommunicationHandler: handler.NewCommunicationHandler(communicationService, logger),
		FeedbackHandler:      handler.NewFeedbackHandler(feedbackService, logger),
		JWTMiddleware:        middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// Sentinel errors for enrollment management.
var (
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// EnrollmentService manages student course enrollments. A dropped enrollment
// is reactivated on re-enroll instead of creating a second row.
type EnrollmentService interface {
	Enroll(ctx context.Context, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error)
	Drop(ctx context.Context, studentID, courseID uint) (dto.EnrollmentResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.EnrollmentResponse, error)
	ListForCourse(ctx context.Context, courseID uint) ([]dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	students    repository.StudentRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	studentRepo repository.StudentRepository,
	courseRepo repository.CourseRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollmentRepo,
		students:    studentRepo,
		courses:     courseRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrStudentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}
	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrCourseNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	existing, err := s.enrollments.GetByStudentAndCourse(ctx, payload.StudentID, payload.CourseID)
	switch {
	case err == nil:
		if existing.Status != models.EnrollmentStatusDropped {
			return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
		}
		existing.Status = models.EnrollmentStatusActive
		if err := s.enrollments.Update(ctx, &existing); err != nil {
			return dto.EnrollmentResponse{}, err
		}
		return dto.NewEnrollmentResponse(existing), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return dto.EnrollmentResponse{}, err
	}

	enrollment := models.StudentCourse{
		StudentID: payload.StudentID,
		CourseID:  payload.CourseID,
		Status:    models.EnrollmentStatusActive,
	}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
		}
		return dto.EnrollmentResponse{}, err
	}
	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) Drop(ctx context.Context, studentID, courseID uint) (dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrEnrollmentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	if enrollment.Status == models.EnrollmentStatusDropped {
		return dto.EnrollmentResponse{}, ErrEnrollmentNotFound
	}

	enrollment.Status = models.EnrollmentStatusDropped
	if err := s.enrollments.Update(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}
	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) ListForStudent(ctx context.Context, studentID uint) ([]dto.EnrollmentResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	enrollments, err := s.enrollments.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

func (s *enrollmentService) ListForCourse(ctx context.Context, courseID uint) ([]dto.EnrollmentResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	enrollments, err := s.enrollments.ListActiveByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// ErrAssignmentNotFound indicates an assignment could not be found.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentFilter narrows assignment listings. StudentID restricts results
// to the courses the student is actively enrolled in.
type AssignmentFilter struct {
	CourseID  *uint `query:"course_id" validate:"omitempty,min=1"`
	StaffID   *uint `query:"staff_id" validate:"omitempty,min=1"`
	StudentID *uint `query:"student_id" validate:"omitempty,min=1"`
}

// AssignmentService manages coursework assignments. Creating one fans out
// notifications to the course audience.
type AssignmentService interface {
	List(ctx context.Context, filter AssignmentFilter) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	courses     repository.CourseRepository
	staff       repository.StaffRepository
	enrollments repository.EnrollmentRepository
	notifier    NotificationService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	courseRepo repository.CourseRepository,
	staffRepo repository.StaffRepository,
	enrollmentRepo repository.EnrollmentRepository,
	notifier NotificationService,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignments: assignmentRepo,
		courses:     courseRepo,
		staff:       staffRepo,
		enrollments: enrollmentRepo,
		notifier:    notifier,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) List(ctx context.Context, filter AssignmentFilter) ([]dto.AssignmentResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.AssignmentFilter{
		CourseID: filter.CourseID,
		StaffID:  filter.StaffID,
	}
	if filter.StudentID != nil {
		enrollments, err := s.enrollments.ListActiveByStudent(ctx, *filter.StudentID)
		if err != nil {
			return nil, err
		}
		courseIDs := make([]uint, 0, len(enrollments))
		for _, enrollment := range enrollments {
			courseIDs = append(courseIDs, enrollment.CourseID)
		}
		if len(courseIDs) == 0 {
			return []dto.AssignmentResponse{}, nil
		}
		repoFilter.CourseIDs = courseIDs
	}

	assignments, err := s.assignments.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrCourseNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	if payload.StaffID != nil {
		if _, err := s.staff.GetByID(ctx, *payload.StaffID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.AssignmentResponse{}, ErrStaffNotFound
			}
			return dto.AssignmentResponse{}, err
		}
	}

	assignment := models.Assignment{
		Title:           payload.Title,
		Description:     payload.Description,
		CourseID:        payload.CourseID,
		StaffID:         payload.StaffID,
		StudyMaterialID: payload.StudyMaterialID,
		MaxMarks:        payload.MaxMarks,
		FileURL:         payload.FileURL,
	}
	if payload.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *payload.DueDate)
		if err == nil {
			assignment.DueDate = &due
		}
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if err := s.notifier.NotifyNewAssignment(ctx, assignment); err != nil {
		s.logger.Warn().Err(err).Uint("assignment_id", assignment.ID).Msg("assignment fan-out failed")
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *payload.DueDate)
		if err == nil {
			assignment.DueDate = &due
		}
	}
	if payload.MaxMarks != nil {
		assignment.MaxMarks = payload.MaxMarks
	}
	if payload.FileURL != nil {
		assignment.FileURL = *payload.FileURL
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}
	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}

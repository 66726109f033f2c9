package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// ErrFeedbackNotFound indicates a feedback entry could not be found.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackFilter narrows feedback listings.
type FeedbackFilter struct {
	CourseID  *uint `query:"course_id" validate:"omitempty,min=1"`
	StaffID   *uint `query:"staff_id" validate:"omitempty,min=1"`
	StudentID *uint `query:"student_id" validate:"omitempty,min=1"`
}

// FeedbackService records and lists student ratings.
type FeedbackService interface {
	Submit(ctx context.Context, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	List(ctx context.Context, filter FeedbackFilter) ([]dto.FeedbackResponse, error)
	Delete(ctx context.Context, id uint) error
}

type feedbackService struct {
	feedback  repository.FeedbackRepository
	students  repository.StudentRepository
	courses   repository.CourseRepository
	staff     repository.StaffRepository
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	studentRepo repository.StudentRepository,
	courseRepo repository.CourseRepository,
	staffRepo repository.StaffRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackService{
		feedback:  feedbackRepo,
		students:  studentRepo,
		courses:   courseRepo,
		staff:     staffRepo,
		sanitizer: bluemonday.StrictPolicy(),
		validator: validate,
		logger:    logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Submit(ctx context.Context, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrStudentNotFound
		}
		return dto.FeedbackResponse{}, err
	}
	if payload.CourseID != nil {
		if _, err := s.courses.GetByID(ctx, *payload.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.FeedbackResponse{}, ErrCourseNotFound
			}
			return dto.FeedbackResponse{}, err
		}
	}
	if payload.StaffID != nil {
		if _, err := s.staff.GetByID(ctx, *payload.StaffID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.FeedbackResponse{}, ErrStaffNotFound
			}
			return dto.FeedbackResponse{}, err
		}
	}

	entry := models.Feedback{
		StudentID:    payload.StudentID,
		CourseID:     payload.CourseID,
		StaffID:      payload.StaffID,
		Rating:       payload.Rating,
		FeedbackText: s.sanitizer.Sanitize(payload.FeedbackText),
		IsAnonymous:  payload.IsAnonymous,
	}
	if err := s.feedback.Create(ctx, &entry); err != nil {
		return dto.FeedbackResponse{}, err
	}
	return dto.NewFeedbackResponse(entry), nil
}

func (s *feedbackService) List(ctx context.Context, filter FeedbackFilter) ([]dto.FeedbackResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	entries, err := s.feedback.List(ctx, repository.FeedbackFilter{
		CourseID:  filter.CourseID,
		StaffID:   filter.StaffID,
		StudentID: filter.StudentID,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewFeedbackResponseSlice(entries), nil
}

func (s *feedbackService) Delete(ctx context.Context, id uint) error {
	if err := s.feedback.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	return nil
}

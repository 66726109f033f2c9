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

// Sentinel errors for the submission workflow.
var (
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrDuplicateSubmission = errors.New("assignment has already been submitted")
	ErrSubmissionClosed    = errors.New("assignment is past its due date")
	ErrMarksExceedMax      = errors.New("marks exceed the assignment maximum")
)

// SubmissionFilter narrows submission listings.
type SubmissionFilter struct {
	AssignmentID *uint   `query:"assignment_id" validate:"omitempty,min=1"`
	StudentID    *uint   `query:"student_id" validate:"omitempty,min=1"`
	Status       *string `query:"status" validate:"omitempty,oneof=submitted evaluated"`
}

// SubmissionService orchestrates submission and grading workflows.
type SubmissionService interface {
	List(ctx context.Context, filter SubmissionFilter) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	Evaluate(ctx context.Context, submissionID uint, payload dto.EvaluationRequest) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	students    repository.StudentRepository
	notifier    NotificationService
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	studentRepo repository.StudentRepository,
	notifier NotificationService,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions: submissionRepo,
		assignments: assignmentRepo,
		students:    studentRepo,
		notifier:    notifier,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) List(ctx context.Context, filter SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{
		AssignmentID: filter.AssignmentID,
		StudentID:    filter.StudentID,
		Status:       filter.Status,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrStudentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if assignment.IsPastDue(s.now()) {
		return dto.SubmissionResponse{}, ErrSubmissionClosed
	}

	if _, err := s.submissions.GetByAssignmentAndStudent(ctx, payload.AssignmentID, payload.StudentID); err == nil {
		return dto.SubmissionResponse{}, ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		AssignmentID:   payload.AssignmentID,
		StudentID:      payload.StudentID,
		SubmissionText: payload.SubmissionText,
		FileURL:        payload.FileURL,
		Status:         models.SubmissionStatusSubmitted,
	}
	if err := s.submissions.Create(ctx, &submission); err != nil {
		// A racing duplicate slips past the pre-check and lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.SubmissionResponse{}, ErrDuplicateSubmission
		}
		return dto.SubmissionResponse{}, err
	}

	if err := s.notifier.NotifyAssignmentSubmitted(ctx, submission); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("submission notification failed")
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	return dto.NewSubmissionResponse(created), nil
}

// Evaluate records or overwrites the grade for a submission. Marks above the
// assignment's maximum are rejected.
func (s *submissionService) Evaluate(ctx context.Context, submissionID uint, payload dto.EvaluationRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if submission.Assignment.MaxMarks != nil && payload.MarksObtained > *submission.Assignment.MaxMarks {
		return dto.SubmissionResponse{}, ErrMarksExceedMax
	}

	evaluation, err := s.submissions.GetEvaluation(ctx, submissionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	marks := payload.MarksObtained
	evaluation.SubmissionID = submissionID
	evaluation.StaffID = payload.StaffID
	evaluation.MarksObtained = &marks
	evaluation.Feedback = payload.Feedback
	evaluation.EvaluatedAt = s.now()
	evaluation.Status = models.SubmissionStatusEvaluated

	if err := s.submissions.SaveEvaluation(ctx, &evaluation); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission.Status = models.SubmissionStatusEvaluated
	submission.Evaluation = nil
	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if err := s.notifier.NotifyAssignmentGraded(ctx, evaluation); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submissionID).Msg("grading notification failed")
	}

	graded, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	return dto.NewSubmissionResponse(graded), nil
}

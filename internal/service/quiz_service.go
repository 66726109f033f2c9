package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// Sentinel errors for the quiz workflow.
var (
	ErrQuestionNotFound = errors.New("quiz question not found")
	ErrDuplicateAttempt = errors.New("question has already been attempted")
	ErrNotEnrolled      = errors.New("student is not enrolled in this course")
)

// QuizService manages quiz questions and student attempts. Taking a quiz
// requires an active enrollment in the course; is_correct is fixed at attempt
// time and never recomputed.
type QuizService interface {
	ListCourseQuestions(ctx context.Context, studentID, courseID uint) ([]dto.MCQResponse, error)
	CreateQuestion(ctx context.Context, payload dto.MCQCreateRequest) (dto.MCQResponse, error)
	UpdateQuestion(ctx context.Context, id uint, payload dto.MCQUpdateRequest) (dto.MCQResponse, error)
	DeleteQuestion(ctx context.Context, id uint) error
	SubmitAttempt(ctx context.Context, payload dto.AttemptCreateRequest) (dto.AttemptResponse, error)
	ResultsByCourse(ctx context.Context, studentID uint) ([]dto.QuizCourseResult, error)
}

type quizService struct {
	mcqs        repository.MCQRepository
	attempts    repository.AttemptRepository
	courses     repository.CourseRepository
	students    repository.StudentRepository
	enrollments repository.EnrollmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(
	mcqRepo repository.MCQRepository,
	attemptRepo repository.AttemptRepository,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
	enrollmentRepo repository.EnrollmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) QuizService {
	return &quizService{
		mcqs:        mcqRepo,
		attempts:    attemptRepo,
		courses:     courseRepo,
		students:    studentRepo,
		enrollments: enrollmentRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "quiz_service").Logger(),
	}
}

func (s *quizService) ListCourseQuestions(ctx context.Context, studentID, courseID uint) ([]dto.MCQResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if err := s.requireActiveEnrollment(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	questions, err := s.mcqs.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.NewMCQResponseSlice(questions), nil
}

func (s *quizService) CreateQuestion(ctx context.Context, payload dto.MCQCreateRequest) (dto.MCQResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MCQResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MCQResponse{}, ErrCourseNotFound
		}
		return dto.MCQResponse{}, err
	}

	marks := payload.Marks
	if marks <= 0 {
		marks = 1
	}

	question := models.MCQ{
		QuestionText:    payload.QuestionText,
		OptionA:         payload.OptionA,
		OptionB:         payload.OptionB,
		OptionC:         payload.OptionC,
		OptionD:         payload.OptionD,
		CorrectAnswer:   normalizeOption(payload.CorrectAnswer),
		Marks:           marks,
		CourseID:        payload.CourseID,
		StaffID:         payload.StaffID,
		StudyMaterialID: payload.StudyMaterialID,
	}
	if err := s.mcqs.Create(ctx, &question); err != nil {
		return dto.MCQResponse{}, err
	}
	return dto.NewMCQResponse(question), nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, id uint, payload dto.MCQUpdateRequest) (dto.MCQResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MCQResponse{}, err
	}

	question, err := s.mcqs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MCQResponse{}, ErrQuestionNotFound
		}
		return dto.MCQResponse{}, err
	}

	if payload.QuestionText != nil {
		question.QuestionText = *payload.QuestionText
	}
	if payload.OptionA != nil {
		question.OptionA = *payload.OptionA
	}
	if payload.OptionB != nil {
		question.OptionB = *payload.OptionB
	}
	if payload.OptionC != nil {
		question.OptionC = *payload.OptionC
	}
	if payload.OptionD != nil {
		question.OptionD = *payload.OptionD
	}
	if payload.CorrectAnswer != nil {
		question.CorrectAnswer = normalizeOption(*payload.CorrectAnswer)
	}
	if payload.Marks != nil {
		question.Marks = *payload.Marks
	}

	if err := s.mcqs.Update(ctx, &question); err != nil {
		return dto.MCQResponse{}, err
	}
	return dto.NewMCQResponse(question), nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, id uint) error {
	if err := s.mcqs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *quizService) SubmitAttempt(ctx context.Context, payload dto.AttemptCreateRequest) (dto.AttemptResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttemptResponse{}, err
	}

	question, err := s.mcqs.GetByID(ctx, payload.MCQID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrQuestionNotFound
		}
		return dto.AttemptResponse{}, err
	}
	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrStudentNotFound
		}
		return dto.AttemptResponse{}, err
	}

	if err := s.requireActiveEnrollment(ctx, payload.StudentID, question.CourseID); err != nil {
		return dto.AttemptResponse{}, err
	}

	if _, err := s.attempts.GetByStudentAndMCQ(ctx, payload.StudentID, payload.MCQID); err == nil {
		return dto.AttemptResponse{}, ErrDuplicateAttempt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AttemptResponse{}, err
	}

	attempt := models.MCQAttempt{
		StudentID:      payload.StudentID,
		MCQID:          payload.MCQID,
		SelectedAnswer: normalizeOption(payload.SelectedAnswer),
		IsCorrect:      question.IsCorrectAnswer(payload.SelectedAnswer),
	}
	if err := s.attempts.Create(ctx, &attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.AttemptResponse{}, ErrDuplicateAttempt
		}
		return dto.AttemptResponse{}, err
	}

	return dto.NewAttemptResponse(attempt, question.MarkValue()), nil
}

// ResultsByCourse groups the student's attempts by course and totals each
// course's full question bank.
func (s *quizService) ResultsByCourse(ctx context.Context, studentID uint) ([]dto.QuizCourseResult, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	attempts, err := s.attempts.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	courseIDs := []uint{}
	seen := map[uint]struct{}{}
	for _, attempt := range attempts {
		if _, ok := seen[attempt.MCQ.CourseID]; ok {
			continue
		}
		seen[attempt.MCQ.CourseID] = struct{}{}
		courseIDs = append(courseIDs, attempt.MCQ.CourseID)
	}

	results := make([]dto.QuizCourseResult, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		course, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		questions, err := s.mcqs.ListByCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}

		result := dto.QuizCourseResult{
			CourseID:       courseID,
			CourseName:     course.CourseName,
			TotalQuestions: len(questions),
		}
		for _, question := range questions {
			result.TotalMarks += question.MarkValue()
		}
		for _, attempt := range attempts {
			if attempt.MCQ.CourseID != courseID {
				continue
			}
			result.AttemptedCount++
			if attempt.IsCorrect {
				result.CorrectCount++
				result.EarnedMarks += attempt.MCQ.MarkValue()
			}
		}

		result.EarnedMarks = round2(result.EarnedMarks)
		result.TotalMarks = round2(result.TotalMarks)
		results = append(results, result)
	}

	return results, nil
}

func normalizeOption(option string) string {
	return strings.ToUpper(strings.TrimSpace(option))
}

func (s *quizService) requireActiveEnrollment(ctx context.Context, studentID, courseID uint) error {
	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return err
	}
	if enrollment.Status != models.EnrollmentStatusActive {
		return ErrNotEnrolled
	}
	return nil
}

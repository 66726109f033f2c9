package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// Sentinel errors shared by the result endpoints.
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrStudentNotFound = errors.New("student not found")
)

// Release reasons reported in the final block.
const (
	ReasonAllAssignmentsSubmitted = "all_assignments_submitted"
	ReasonPastLastDueDate         = "past_last_assignment_due_date"
	ReasonNotCompleted            = "not_completed"
)

// ResultService computes per-course progress and final-release decisions for
// a student. Results are derived views, recomputed on every call and never
// persisted.
type ResultService interface {
	ComputeCourseResult(ctx context.Context, studentID, courseID uint) (dto.CourseResultResponse, error)
	ComputeAllCourseResults(ctx context.Context, studentID uint) (dto.StudentResultsResponse, error)
}

type resultService struct {
	students    repository.StudentRepository
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	mcqs        repository.MCQRepository
	attempts    repository.AttemptRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewResultService constructs a ResultService instance.
func NewResultService(
	studentRepo repository.StudentRepository,
	courseRepo repository.CourseRepository,
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	mcqRepo repository.MCQRepository,
	attemptRepo repository.AttemptRepository,
	logger zerolog.Logger,
) ResultService {
	return &resultService{
		students:    studentRepo,
		courses:     courseRepo,
		assignments: assignmentRepo,
		submissions: submissionRepo,
		mcqs:        mcqRepo,
		attempts:    attemptRepo,
		logger:      logger.With().Str("component", "result_service").Logger(),
		now:         time.Now,
	}
}

func (s *resultService) ComputeCourseResult(ctx context.Context, studentID, courseID uint) (dto.CourseResultResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResultResponse{}, ErrStudentNotFound
		}
		return dto.CourseResultResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResultResponse{}, ErrCourseNotFound
		}
		return dto.CourseResultResponse{}, err
	}

	return s.compute(ctx, studentID, course)
}

func (s *resultService) ComputeAllCourseResults(ctx context.Context, studentID uint) (dto.StudentResultsResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResultsResponse{}, ErrStudentNotFound
		}
		return dto.StudentResultsResponse{}, err
	}

	response := dto.StudentResultsResponse{
		StudentID: studentID,
		Results:   []dto.CourseResultResponse{},
	}

	// Courses are matched on the student's current program and semester, not
	// on enrollment rows. A student with neither set has no result summary.
	if student.ProgramID == nil || student.SemesterID == nil {
		return response, nil
	}

	courses, err := s.courses.ListByProgramSemester(ctx, *student.ProgramID, *student.SemesterID)
	if err != nil {
		return dto.StudentResultsResponse{}, err
	}

	for _, course := range courses {
		result, err := s.compute(ctx, studentID, course)
		if err != nil {
			return dto.StudentResultsResponse{}, err
		}
		response.Results = append(response.Results, result)
	}

	return response, nil
}

func (s *resultService) compute(ctx context.Context, studentID uint, course models.Course) (dto.CourseResultResponse, error) {
	assignments, err := s.assignments.ListByCourse(ctx, course.ID)
	if err != nil {
		return dto.CourseResultResponse{}, err
	}

	assignmentIDs := make([]uint, 0, len(assignments))
	for _, assignment := range assignments {
		assignmentIDs = append(assignmentIDs, assignment.ID)
	}

	submissionByAssignment := map[uint]models.Submission{}
	if len(assignmentIDs) > 0 {
		submissions, err := s.submissions.ListByStudentAndAssignments(ctx, studentID, assignmentIDs)
		if err != nil {
			return dto.CourseResultResponse{}, err
		}
		for _, submission := range submissions {
			submissionByAssignment[submission.AssignmentID] = submission
		}
	}

	assignmentBlock := dto.AssignmentResultBlock{
		TotalCount: len(assignments),
		Details:    make([]dto.AssignmentResultDetail, 0, len(assignments)),
	}

	var lastDueDate *time.Time
	for _, assignment := range assignments {
		maxMarks := 0.0
		if assignment.MaxMarks != nil {
			maxMarks = *assignment.MaxMarks
		}
		assignmentBlock.TotalMarks += maxMarks

		if assignment.DueDate != nil {
			if lastDueDate == nil || assignment.DueDate.After(*lastDueDate) {
				due := *assignment.DueDate
				lastDueDate = &due
			}
		}

		detail := dto.AssignmentResultDetail{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			MaxMarks:     round2(maxMarks),
			DueDate:      assignment.DueDate,
		}

		if submission, ok := submissionByAssignment[assignment.ID]; ok {
			detail.Submitted = true
			assignmentBlock.SubmittedCount++
			if submission.IsGraded() {
				detail.Graded = true
				assignmentBlock.GradedCount++
				marks := round2(*submission.Evaluation.MarksObtained)
				detail.MarksObtained = &marks
				assignmentBlock.EarnedMarks += *submission.Evaluation.MarksObtained
			}
		}

		assignmentBlock.Details = append(assignmentBlock.Details, detail)
	}
	assignmentBlock.LastDueDate = lastDueDate

	quizBlock, err := s.computeQuiz(ctx, studentID, course.ID)
	if err != nil {
		return dto.CourseResultResponse{}, err
	}

	earned := assignmentBlock.EarnedMarks + quizBlock.EarnedMarks
	total := assignmentBlock.TotalMarks + quizBlock.TotalMarks

	percentage := 0.0
	if total > 0 {
		percentage = round1(100 * earned / total)
	}

	allSubmitted := assignmentBlock.SubmittedCount == assignmentBlock.TotalCount
	duePassed := lastDueDate != nil && s.now().After(*lastDueDate)

	final := dto.FinalBlock{Reason: ReasonNotCompleted}
	switch {
	case allSubmitted:
		final.Released = true
		final.Reason = ReasonAllAssignmentsSubmitted
	case duePassed:
		final.Released = true
		final.Reason = ReasonPastLastDueDate
	}
	if final.Released {
		released := percentage
		final.Percentage = &released
	}

	assignmentBlock.EarnedMarks = round2(assignmentBlock.EarnedMarks)
	assignmentBlock.TotalMarks = round2(assignmentBlock.TotalMarks)

	return dto.CourseResultResponse{
		Course: dto.ResultCourseInfo{
			ID:         course.ID,
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
		},
		Assignments: assignmentBlock,
		Quiz:        quizBlock,
		Progress: dto.ProgressBlock{
			EarnedMarks: round2(earned),
			TotalMarks:  round2(total),
			Percentage:  percentage,
		},
		Final: final,
	}, nil
}

// computeQuiz totals the full question bank for the course; earned marks
// accrue only from attempts recorded as correct.
func (s *resultService) computeQuiz(ctx context.Context, studentID, courseID uint) (dto.QuizResultBlock, error) {
	questions, err := s.mcqs.ListByCourse(ctx, courseID)
	if err != nil {
		return dto.QuizResultBlock{}, err
	}

	block := dto.QuizResultBlock{TotalQuestions: len(questions)}
	if len(questions) == 0 {
		return block, nil
	}

	questionIDs := make([]uint, 0, len(questions))
	for _, question := range questions {
		questionIDs = append(questionIDs, question.ID)
	}

	attempts, err := s.attempts.ListByStudentAndMCQs(ctx, studentID, questionIDs)
	if err != nil {
		return dto.QuizResultBlock{}, err
	}

	attemptByQuestion := make(map[uint]models.MCQAttempt, len(attempts))
	for _, attempt := range attempts {
		attemptByQuestion[attempt.MCQID] = attempt
	}

	for _, question := range questions {
		block.TotalMarks += question.MarkValue()
		attempt, ok := attemptByQuestion[question.ID]
		if !ok {
			continue
		}
		block.AttemptedCount++
		if attempt.IsCorrect {
			block.CorrectCount++
			block.EarnedMarks += question.MarkValue()
		}
	}

	block.EarnedMarks = round2(block.EarnedMarks)
	block.TotalMarks = round2(block.TotalMarks)

	return block, nil
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

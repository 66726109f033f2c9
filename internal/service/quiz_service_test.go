package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
)

type quizFixture struct {
	mcqs        *memoryMCQRepo
	attempts    *memoryAttemptRepo
	courses     *memoryCourseRepo
	students    *memoryStudentRepo
	enrollments *memoryEnrollmentRepo
	service     QuizService
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	mcqs := newMemoryMCQRepo()
	attempts := newMemoryAttemptRepo(mcqs)
	courses := newMemoryCourseRepo()
	students := newMemoryStudentRepo()
	enrollments := newMemoryEnrollmentRepo(courses)
	validate := validator.New(validator.WithRequiredStructEnabled())

	return &quizFixture{
		mcqs:        mcqs,
		attempts:    attempts,
		courses:     courses,
		students:    students,
		enrollments: enrollments,
		service:     NewQuizService(mcqs, attempts, courses, students, enrollments, validate, zerolog.Nop()),
	}
}

func (f *quizFixture) seed(t *testing.T, enrolled bool) (models.Student, models.Course, models.MCQ) {
	t.Helper()
	ctx := context.Background()

	student := models.Student{StudentCode: "S1", Username: "s1", Email: "s1@example.com", FullName: "Student"}
	require.NoError(t, f.students.Create(ctx, &student))
	course := models.Course{CourseCode: "CS101", CourseName: "Intro"}
	require.NoError(t, f.courses.Create(ctx, &course))
	if enrolled {
		require.NoError(t, f.enrollments.Create(ctx, &models.StudentCourse{
			StudentID: student.ID, CourseID: course.ID, Status: models.EnrollmentStatusActive,
		}))
	}

	question := models.MCQ{
		QuestionText: "2+2?", OptionA: "4", OptionB: "5",
		CorrectAnswer: "A", Marks: 2, CourseID: course.ID,
	}
	require.NoError(t, f.mcqs.Create(ctx, &question))
	return student, course, question
}

func TestListCourseQuestionsHidesAnswerKey(t *testing.T) {
	f := newQuizFixture(t)
	student, course, question := f.seed(t, true)

	questions, err := f.service.ListCourseQuestions(context.Background(), student.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, question.ID, questions[0].ID)
	require.Equal(t, 2.0, questions[0].Marks)
}

func TestListCourseQuestionsRequiresEnrollment(t *testing.T) {
	f := newQuizFixture(t)
	student, course, _ := f.seed(t, false)

	_, err := f.service.ListCourseQuestions(context.Background(), student.ID, course.ID)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSubmitAttemptGradesAtCreation(t *testing.T) {
	f := newQuizFixture(t)
	student, _, question := f.seed(t, true)

	// Lowercase selections are accepted and normalized.
	attempt, err := f.service.SubmitAttempt(context.Background(), dto.AttemptCreateRequest{
		StudentID: student.ID, MCQID: question.ID, SelectedAnswer: "a",
	})
	require.NoError(t, err)
	require.True(t, attempt.IsCorrect)
	require.Equal(t, "A", attempt.SelectedAnswer)
	require.Equal(t, 2.0, attempt.MarksAwarded)
}

func TestSubmitAttemptDuplicate(t *testing.T) {
	f := newQuizFixture(t)
	student, _, question := f.seed(t, true)

	payload := dto.AttemptCreateRequest{StudentID: student.ID, MCQID: question.ID, SelectedAnswer: "B"}
	_, err := f.service.SubmitAttempt(context.Background(), payload)
	require.NoError(t, err)

	_, err = f.service.SubmitAttempt(context.Background(), payload)
	require.ErrorIs(t, err, ErrDuplicateAttempt)
}

func TestSubmitAttemptRequiresActiveEnrollment(t *testing.T) {
	f := newQuizFixture(t)
	student, course, question := f.seed(t, false)

	payload := dto.AttemptCreateRequest{StudentID: student.ID, MCQID: question.ID, SelectedAnswer: "A"}
	_, err := f.service.SubmitAttempt(context.Background(), payload)
	require.ErrorIs(t, err, ErrNotEnrolled)

	// A dropped enrollment does not grant access either.
	require.NoError(t, f.enrollments.Create(context.Background(), &models.StudentCourse{
		StudentID: student.ID, CourseID: course.ID, Status: models.EnrollmentStatusDropped,
	}))
	_, err = f.service.SubmitAttempt(context.Background(), payload)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestAttemptResultSurvivesAnswerKeyChange(t *testing.T) {
	f := newQuizFixture(t)
	student, _, question := f.seed(t, true)
	ctx := context.Background()

	attempt, err := f.service.SubmitAttempt(ctx, dto.AttemptCreateRequest{
		StudentID: student.ID, MCQID: question.ID, SelectedAnswer: "A",
	})
	require.NoError(t, err)
	require.True(t, attempt.IsCorrect)

	newKey := "B"
	_, err = f.service.UpdateQuestion(ctx, question.ID, dto.MCQUpdateRequest{CorrectAnswer: &newKey})
	require.NoError(t, err)

	stored, err := f.attempts.GetByStudentAndMCQ(ctx, student.ID, question.ID)
	require.NoError(t, err)
	require.True(t, stored.IsCorrect)
}

func TestResultsByCourseTotalsFullBank(t *testing.T) {
	f := newQuizFixture(t)
	student, course, question := f.seed(t, true)
	ctx := context.Background()

	// A second question the student never attempts still counts toward totals.
	other := models.MCQ{QuestionText: "3+3?", OptionA: "6", OptionB: "7", CorrectAnswer: "A", Marks: 3, CourseID: course.ID}
	require.NoError(t, f.mcqs.Create(ctx, &other))

	_, err := f.service.SubmitAttempt(ctx, dto.AttemptCreateRequest{
		StudentID: student.ID, MCQID: question.ID, SelectedAnswer: "A",
	})
	require.NoError(t, err)

	results, err := f.service.ResultsByCourse(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, course.ID, results[0].CourseID)
	require.Equal(t, 2, results[0].TotalQuestions)
	require.Equal(t, 1, results[0].AttemptedCount)
	require.Equal(t, 1, results[0].CorrectCount)
	require.Equal(t, 2.0, results[0].EarnedMarks)
	require.Equal(t, 5.0, results[0].TotalMarks)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lls-edu/lls-api/internal/models"
)

type resultFixture struct {
	students    *memoryStudentRepo
	courses     *memoryCourseRepo
	assignments *memoryAssignmentRepo
	submissions *memorySubmissionRepo
	mcqs        *memoryMCQRepo
	attempts    *memoryAttemptRepo
	service     ResultService
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()
	students := newMemoryStudentRepo()
	courses := newMemoryCourseRepo()
	assignments := newMemoryAssignmentRepo()
	submissions := newMemorySubmissionRepo(assignments)
	mcqs := newMemoryMCQRepo()
	attempts := newMemoryAttemptRepo(mcqs)

	return &resultFixture{
		students:    students,
		courses:     courses,
		assignments: assignments,
		submissions: submissions,
		mcqs:        mcqs,
		attempts:    attempts,
		service:     NewResultService(students, courses, assignments, submissions, mcqs, attempts, zerolog.Nop()),
	}
}

func (f *resultFixture) addStudent(t *testing.T, programID, semesterID *uint) models.Student {
	t.Helper()
	student := models.Student{
		StudentCode: "S001", Username: "student", Email: "student@example.com",
		FullName: "Test Student", ProgramID: programID, SemesterID: semesterID,
	}
	require.NoError(t, f.students.Create(context.Background(), &student))
	return student
}

func (f *resultFixture) addCourse(t *testing.T, code string, programID, semesterID *uint) models.Course {
	t.Helper()
	course := models.Course{CourseCode: code, CourseName: "Course " + code, ProgramID: programID, SemesterID: semesterID}
	require.NoError(t, f.courses.Create(context.Background(), &course))
	return course
}

func floatPtr(v float64) *float64 { return &v }

func uintPtr(v uint) *uint { return &v }

func TestComputeCourseResultPartialSubmissionStaysLocked(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, nil, nil)
	course := f.addCourse(t, "CS101", nil, nil)

	future := time.Now().Add(48 * time.Hour)
	a1 := models.Assignment{Title: "Essay", CourseID: course.ID, MaxMarks: floatPtr(20), DueDate: &future}
	a2 := models.Assignment{Title: "Project", CourseID: course.ID, MaxMarks: floatPtr(30), DueDate: &future}
	require.NoError(t, f.assignments.Create(ctx, &a1))
	require.NoError(t, f.assignments.Create(ctx, &a2))

	submission := models.Submission{AssignmentID: a1.ID, StudentID: student.ID, Status: models.SubmissionStatusSubmitted}
	require.NoError(t, f.submissions.Create(ctx, &submission))
	require.NoError(t, f.submissions.SaveEvaluation(ctx, &models.Evaluation{
		SubmissionID: submission.ID, MarksObtained: floatPtr(15), Status: models.SubmissionStatusEvaluated,
	}))

	q1 := models.MCQ{QuestionText: "Q1", OptionA: "a", OptionB: "b", CorrectAnswer: "A", Marks: 1, CourseID: course.ID}
	q2 := models.MCQ{QuestionText: "Q2", OptionA: "a", OptionB: "b", CorrectAnswer: "B", Marks: 1, CourseID: course.ID}
	q3 := models.MCQ{QuestionText: "Q3", OptionA: "a", OptionB: "b", CorrectAnswer: "A", Marks: 2, CourseID: course.ID}
	require.NoError(t, f.mcqs.Create(ctx, &q1))
	require.NoError(t, f.mcqs.Create(ctx, &q2))
	require.NoError(t, f.mcqs.Create(ctx, &q3))

	require.NoError(t, f.attempts.Create(ctx, &models.MCQAttempt{StudentID: student.ID, MCQID: q1.ID, SelectedAnswer: "A", IsCorrect: true}))
	require.NoError(t, f.attempts.Create(ctx, &models.MCQAttempt{StudentID: student.ID, MCQID: q2.ID, SelectedAnswer: "A", IsCorrect: false}))
	require.NoError(t, f.attempts.Create(ctx, &models.MCQAttempt{StudentID: student.ID, MCQID: q3.ID, SelectedAnswer: "A", IsCorrect: true}))

	result, err := f.service.ComputeCourseResult(ctx, student.ID, course.ID)
	require.NoError(t, err)

	require.Equal(t, 2, result.Assignments.TotalCount)
	require.Equal(t, 1, result.Assignments.SubmittedCount)
	require.Equal(t, 1, result.Assignments.GradedCount)
	require.Equal(t, 15.0, result.Assignments.EarnedMarks)
	require.Equal(t, 50.0, result.Assignments.TotalMarks)
	require.Len(t, result.Assignments.Details, 2)
	require.True(t, result.Assignments.Details[0].Submitted)
	require.True(t, result.Assignments.Details[0].Graded)
	require.NotNil(t, result.Assignments.Details[0].MarksObtained)
	require.Equal(t, 15.0, *result.Assignments.Details[0].MarksObtained)
	require.False(t, result.Assignments.Details[1].Submitted)

	require.Equal(t, 3, result.Quiz.TotalQuestions)
	require.Equal(t, 3, result.Quiz.AttemptedCount)
	require.Equal(t, 2, result.Quiz.CorrectCount)
	require.Equal(t, 3.0, result.Quiz.EarnedMarks)
	require.Equal(t, 4.0, result.Quiz.TotalMarks)

	require.Equal(t, 18.0, result.Progress.EarnedMarks)
	require.Equal(t, 54.0, result.Progress.TotalMarks)
	require.Equal(t, 33.3, result.Progress.Percentage)

	require.False(t, result.Final.Released)
	require.Equal(t, ReasonNotCompleted, result.Final.Reason)
	require.Nil(t, result.Final.Percentage)
}

func TestComputeCourseResultWorkedExample(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, nil, nil)
	course := f.addCourse(t, "CS101", nil, nil)

	future := time.Now().Add(48 * time.Hour)
	a1 := models.Assignment{Title: "Essay", CourseID: course.ID, MaxMarks: floatPtr(20), DueDate: &future}
	a2 := models.Assignment{Title: "Project", CourseID: course.ID, MaxMarks: floatPtr(30), DueDate: &future}
	require.NoError(t, f.assignments.Create(ctx, &a1))
	require.NoError(t, f.assignments.Create(ctx, &a2))

	graded := models.Submission{AssignmentID: a1.ID, StudentID: student.ID, Status: models.SubmissionStatusSubmitted}
	require.NoError(t, f.submissions.Create(ctx, &graded))
	require.NoError(t, f.submissions.SaveEvaluation(ctx, &models.Evaluation{
		SubmissionID: graded.ID, MarksObtained: floatPtr(15), Status: models.SubmissionStatusEvaluated,
	}))
	// The second submission is in, but not graded yet.
	require.NoError(t, f.submissions.Create(ctx, &models.Submission{
		AssignmentID: a2.ID, StudentID: student.ID, Status: models.SubmissionStatusSubmitted,
	}))

	q1 := models.MCQ{QuestionText: "Q1", OptionA: "a", OptionB: "b", CorrectAnswer: "A", Marks: 1, CourseID: course.ID}
	q2 := models.MCQ{QuestionText: "Q2", OptionA: "a", OptionB: "b", CorrectAnswer: "B", Marks: 1, CourseID: course.ID}
	q3 := models.MCQ{QuestionText: "Q3", OptionA: "a", OptionB: "b", CorrectAnswer: "A", Marks: 2, CourseID: course.ID}
	require.NoError(t, f.mcqs.Create(ctx, &q1))
	require.NoError(t, f.mcqs.Create(ctx, &q2))
	require.NoError(t, f.mcqs.Create(ctx, &q3))

	require.NoError(t, f.attempts.Create(ctx, &models.MCQAttempt{StudentID: student.ID, MCQID: q1.ID, SelectedAnswer: "A", IsCorrect: true}))
	require.NoError(t, f.attempts.Create(ctx, &models.MCQAttempt{StudentID: student.ID, MCQID: q2.ID, SelectedAnswer: "A", IsCorrect: false}))
	require.NoError(t, f.attempts.Create(ctx, &models.MCQAttempt{StudentID: student.ID, MCQID: q3.ID, SelectedAnswer: "A", IsCorrect: true}))

	result, err := f.service.ComputeCourseResult(ctx, student.ID, course.ID)
	require.NoError(t, err)

	require.Equal(t, 2, result.Assignments.TotalCount)
	require.Equal(t, 2, result.Assignments.SubmittedCount)
	require.Equal(t, 1, result.Assignments.GradedCount)
	require.Equal(t, 15.0, result.Assignments.EarnedMarks)
	require.Equal(t, 50.0, result.Assignments.TotalMarks)

	require.Equal(t, 3.0, result.Quiz.EarnedMarks)
	require.Equal(t, 4.0, result.Quiz.TotalMarks)

	require.Equal(t, 18.0, result.Progress.EarnedMarks)
	require.Equal(t, 54.0, result.Progress.TotalMarks)
	require.Equal(t, 33.3, result.Progress.Percentage)

	// Every assignment is submitted, so the final unlocks before the due date.
	require.True(t, result.Final.Released)
	require.Equal(t, ReasonAllAssignmentsSubmitted, result.Final.Reason)
	require.NotNil(t, result.Final.Percentage)
	require.Equal(t, 33.3, *result.Final.Percentage)
}

func TestComputeCourseResultEmptyCourseReleases(t *testing.T) {
	f := newResultFixture(t)

	student := f.addStudent(t, nil, nil)
	course := f.addCourse(t, "CS102", nil, nil)

	result, err := f.service.ComputeCourseResult(context.Background(), student.ID, course.ID)
	require.NoError(t, err)

	require.Equal(t, 0, result.Assignments.TotalCount)
	require.Equal(t, 0.0, result.Progress.Percentage)
	require.True(t, result.Final.Released)
	require.Equal(t, ReasonAllAssignmentsSubmitted, result.Final.Reason)
	require.NotNil(t, result.Final.Percentage)
	require.Equal(t, 0.0, *result.Final.Percentage)
}

func TestComputeCourseResultAllSubmittedReleases(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, nil, nil)
	course := f.addCourse(t, "CS103", nil, nil)

	future := time.Now().Add(72 * time.Hour)
	assignment := models.Assignment{Title: "Lab", CourseID: course.ID, MaxMarks: floatPtr(10), DueDate: &future}
	require.NoError(t, f.assignments.Create(ctx, &assignment))
	require.NoError(t, f.submissions.Create(ctx, &models.Submission{
		AssignmentID: assignment.ID, StudentID: student.ID, Status: models.SubmissionStatusSubmitted,
	}))

	result, err := f.service.ComputeCourseResult(ctx, student.ID, course.ID)
	require.NoError(t, err)

	require.True(t, result.Final.Released)
	require.Equal(t, ReasonAllAssignmentsSubmitted, result.Final.Reason)
	require.NotNil(t, result.Final.Percentage)
	require.Equal(t, 0.0, *result.Final.Percentage)
}

func TestComputeCourseResultPastDueReleases(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, nil, nil)
	course := f.addCourse(t, "CS104", nil, nil)

	past := time.Now().Add(-24 * time.Hour)
	assignment := models.Assignment{Title: "Quiz Prep", CourseID: course.ID, MaxMarks: floatPtr(10), DueDate: &past}
	require.NoError(t, f.assignments.Create(ctx, &assignment))

	result, err := f.service.ComputeCourseResult(ctx, student.ID, course.ID)
	require.NoError(t, err)

	require.True(t, result.Final.Released)
	require.Equal(t, ReasonPastLastDueDate, result.Final.Reason)
	require.NotNil(t, result.Assignments.LastDueDate)
}

func TestComputeCourseResultNilMaxMarksAndDueDates(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, nil, nil)
	course := f.addCourse(t, "CS105", nil, nil)

	require.NoError(t, f.assignments.Create(ctx, &models.Assignment{Title: "Ungraded reading", CourseID: course.ID}))

	result, err := f.service.ComputeCourseResult(ctx, student.ID, course.ID)
	require.NoError(t, err)

	require.Equal(t, 1, result.Assignments.TotalCount)
	require.Equal(t, 0.0, result.Assignments.TotalMarks)
	require.Nil(t, result.Assignments.LastDueDate)
	// Nothing submitted and no deadline passed, so the final stays locked.
	require.False(t, result.Final.Released)
	require.Equal(t, ReasonNotCompleted, result.Final.Reason)
}

func TestComputeCourseResultUnknownEntities(t *testing.T) {
	f := newResultFixture(t)
	student := f.addStudent(t, nil, nil)

	_, err := f.service.ComputeCourseResult(context.Background(), 99, 1)
	require.ErrorIs(t, err, ErrStudentNotFound)

	_, err = f.service.ComputeCourseResult(context.Background(), student.ID, 42)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestComputeAllCourseResultsMatchesProgramSemester(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, uintPtr(1), uintPtr(2))
	matching := f.addCourse(t, "CS201", uintPtr(1), uintPtr(2))
	f.addCourse(t, "CS202", uintPtr(9), uintPtr(2))

	results, err := f.service.ComputeAllCourseResults(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, student.ID, results.StudentID)
	require.Len(t, results.Results, 1)
	require.Equal(t, matching.ID, results.Results[0].Course.ID)
}

func TestComputeAllCourseResultsWithoutProgramIsEmpty(t *testing.T) {
	f := newResultFixture(t)

	student := f.addStudent(t, nil, uintPtr(2))
	f.addCourse(t, "CS301", uintPtr(1), uintPtr(2))

	results, err := f.service.ComputeAllCourseResults(context.Background(), student.ID)
	require.NoError(t, err)
	require.Empty(t, results.Results)
}

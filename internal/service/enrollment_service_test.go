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

type enrollmentFixture struct {
	enrollments *memoryEnrollmentRepo
	students    *memoryStudentRepo
	courses     *memoryCourseRepo
	service     EnrollmentService
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	courses := newMemoryCourseRepo()
	enrollments := newMemoryEnrollmentRepo(courses)
	students := newMemoryStudentRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())

	return &enrollmentFixture{
		enrollments: enrollments,
		students:    students,
		courses:     courses,
		service:     NewEnrollmentService(enrollments, students, courses, validate, zerolog.Nop()),
	}
}

func (f *enrollmentFixture) seed(t *testing.T) (models.Student, models.Course) {
	t.Helper()
	ctx := context.Background()
	student := models.Student{StudentCode: "S1", Username: "s1", Email: "s1@example.com", FullName: "Student"}
	require.NoError(t, f.students.Create(ctx, &student))
	course := models.Course{CourseCode: "CS101", CourseName: "Intro"}
	require.NoError(t, f.courses.Create(ctx, &course))
	return student, course
}

func TestEnroll(t *testing.T) {
	f := newEnrollmentFixture(t)
	student, course := f.seed(t)

	enrollment, err := f.service.Enroll(context.Background(), dto.EnrollmentCreateRequest{
		StudentID: student.ID, CourseID: course.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentStatusActive, enrollment.Status)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	f := newEnrollmentFixture(t)
	student, course := f.seed(t)

	payload := dto.EnrollmentCreateRequest{StudentID: student.ID, CourseID: course.ID}
	_, err := f.service.Enroll(context.Background(), payload)
	require.NoError(t, err)

	_, err = f.service.Enroll(context.Background(), payload)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollReactivatesDroppedRow(t *testing.T) {
	f := newEnrollmentFixture(t)
	student, course := f.seed(t)
	ctx := context.Background()

	payload := dto.EnrollmentCreateRequest{StudentID: student.ID, CourseID: course.ID}
	first, err := f.service.Enroll(ctx, payload)
	require.NoError(t, err)

	_, err = f.service.Drop(ctx, student.ID, course.ID)
	require.NoError(t, err)

	reactivated, err := f.service.Enroll(ctx, payload)
	require.NoError(t, err)
	require.Equal(t, first.ID, reactivated.ID)
	require.Equal(t, models.EnrollmentStatusActive, reactivated.Status)
}

func TestDropUnknownOrAlreadyDropped(t *testing.T) {
	f := newEnrollmentFixture(t)
	student, course := f.seed(t)
	ctx := context.Background()

	_, err := f.service.Drop(ctx, student.ID, course.ID)
	require.ErrorIs(t, err, ErrEnrollmentNotFound)

	_, err = f.service.Enroll(ctx, dto.EnrollmentCreateRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	_, err = f.service.Drop(ctx, student.ID, course.ID)
	require.NoError(t, err)

	_, err = f.service.Drop(ctx, student.ID, course.ID)
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestListForStudentReturnsActiveOnly(t *testing.T) {
	f := newEnrollmentFixture(t)
	student, course := f.seed(t)
	ctx := context.Background()

	other := models.Course{CourseCode: "CS102", CourseName: "Algorithms"}
	require.NoError(t, f.courses.Create(ctx, &other))

	_, err := f.service.Enroll(ctx, dto.EnrollmentCreateRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	_, err = f.service.Enroll(ctx, dto.EnrollmentCreateRequest{StudentID: student.ID, CourseID: other.ID})
	require.NoError(t, err)
	_, err = f.service.Drop(ctx, student.ID, other.ID)
	require.NoError(t, err)

	enrollments, err := f.service.ListForStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	require.Equal(t, course.ID, enrollments[0].CourseID)
}

func TestListForCourse(t *testing.T) {
	f := newEnrollmentFixture(t)
	student, course := f.seed(t)
	ctx := context.Background()

	other := models.Student{StudentCode: "S2", Username: "s2", Email: "s2@example.com", FullName: "Other"}
	require.NoError(t, f.students.Create(ctx, &other))

	_, err := f.service.Enroll(ctx, dto.EnrollmentCreateRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	_, err = f.service.Enroll(ctx, dto.EnrollmentCreateRequest{StudentID: other.ID, CourseID: course.ID})
	require.NoError(t, err)
	_, err = f.service.Drop(ctx, other.ID, course.ID)
	require.NoError(t, err)

	enrollments, err := f.service.ListForCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	require.Equal(t, student.ID, enrollments[0].StudentID)

	_, err = f.service.ListForCourse(ctx, 999)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

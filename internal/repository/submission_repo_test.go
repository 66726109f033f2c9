package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

func setupTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func setupSubmissionDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupTestDB(t,
		&models.Course{},
		&models.Student{},
		&models.Assignment{},
		&models.Submission{},
		&models.Evaluation{},
	)
}

func seedSubmissionFixture(t *testing.T, db *gorm.DB) (models.Assignment, models.Student) {
	t.Helper()
	course := models.Course{CourseCode: "CS101", CourseName: "Intro to Computing"}
	require.NoError(t, db.Create(&course).Error)

	maxMarks := 20.0
	due := time.Now().Add(48 * time.Hour)
	assignment := models.Assignment{Title: "Sorting lab", CourseID: course.ID, DueDate: &due, MaxMarks: &maxMarks}
	require.NoError(t, db.Create(&assignment).Error)

	student := models.Student{StudentCode: "S-001", Username: "priya", Email: "priya@lls.edu", PasswordHash: "x", FullName: "Priya N"}
	require.NoError(t, db.Create(&student).Error)

	return assignment, student
}

func TestSubmissionRepositoryCreateDuplicateTranslates(t *testing.T) {
	db := setupSubmissionDB(t)
	repo := NewSubmissionRepository(db)
	assignment, student := seedSubmissionFixture(t, db)

	first := models.Submission{AssignmentID: assignment.ID, StudentID: student.ID, SubmissionText: "answer"}
	require.NoError(t, repo.Create(context.Background(), &first))

	second := models.Submission{AssignmentID: assignment.ID, StudentID: student.ID, SubmissionText: "again"}
	err := repo.Create(context.Background(), &second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSubmissionRepositoryGetPreloadsAssignmentAndEvaluation(t *testing.T) {
	db := setupSubmissionDB(t)
	repo := NewSubmissionRepository(db)
	assignment, student := seedSubmissionFixture(t, db)

	submission := models.Submission{AssignmentID: assignment.ID, StudentID: student.ID, SubmissionText: "answer"}
	require.NoError(t, repo.Create(context.Background(), &submission))

	marks := 15.0
	evaluation := models.Evaluation{SubmissionID: submission.ID, MarksObtained: &marks, Feedback: "good", EvaluatedAt: time.Now()}
	require.NoError(t, repo.SaveEvaluation(context.Background(), &evaluation))

	loaded, err := repo.GetByID(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Equal(t, "Sorting lab", loaded.Assignment.Title)
	require.NotNil(t, loaded.Evaluation)
	require.Equal(t, marks, *loaded.Evaluation.MarksObtained)
	require.True(t, loaded.IsGraded())
}

func TestSubmissionRepositoryGetByAssignmentAndStudentNotFound(t *testing.T) {
	db := setupSubmissionDB(t)
	repo := NewSubmissionRepository(db)

	_, err := repo.GetByAssignmentAndStudent(context.Background(), 1, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepositorySaveEvaluationOverwrites(t *testing.T) {
	db := setupSubmissionDB(t)
	repo := NewSubmissionRepository(db)
	assignment, student := seedSubmissionFixture(t, db)

	submission := models.Submission{AssignmentID: assignment.ID, StudentID: student.ID}
	require.NoError(t, repo.Create(context.Background(), &submission))

	marks := 10.0
	evaluation := models.Evaluation{SubmissionID: submission.ID, MarksObtained: &marks, EvaluatedAt: time.Now()}
	require.NoError(t, repo.SaveEvaluation(context.Background(), &evaluation))

	regraded := 18.0
	evaluation.MarksObtained = &regraded
	require.NoError(t, repo.SaveEvaluation(context.Background(), &evaluation))

	stored, err := repo.GetEvaluation(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Equal(t, evaluation.ID, stored.ID)
	require.Equal(t, regraded, *stored.MarksObtained)

	var count int64
	require.NoError(t, db.Model(&models.Evaluation{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSubmissionRepositoryListFilters(t *testing.T) {
	db := setupSubmissionDB(t)
	repo := NewSubmissionRepository(db)
	assignment, student := seedSubmissionFixture(t, db)

	other := models.Student{StudentCode: "S-002", Username: "dev", Email: "dev@lls.edu", PasswordHash: "x", FullName: "Dev K"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, repo.Create(context.Background(), &models.Submission{AssignmentID: assignment.ID, StudentID: student.ID}))
	require.NoError(t, repo.Create(context.Background(), &models.Submission{AssignmentID: assignment.ID, StudentID: other.ID}))

	submissions, err := repo.List(context.Background(), SubmissionFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	require.Equal(t, student.ID, submissions[0].StudentID)

	submissions, err = repo.List(context.Background(), SubmissionFilter{AssignmentID: &assignment.ID})
	require.NoError(t, err)
	require.Len(t, submissions, 2)
}

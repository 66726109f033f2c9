package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// EnrollmentRepository defines persistence for student-course enrollments.
type EnrollmentRepository interface {
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (models.StudentCourse, error)
	ListActiveByStudent(ctx context.Context, studentID uint) ([]models.StudentCourse, error)
	ListActiveByCourse(ctx context.Context, courseID uint) ([]models.StudentCourse, error)
	Create(ctx context.Context, enrollment *models.StudentCourse) error
	Update(ctx context.Context, enrollment *models.StudentCourse) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates a GORM-backed repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (models.StudentCourse, error) {
	var enrollment models.StudentCourse
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("course_id = ?", courseID).
		First(&enrollment).Error; err != nil {
		return models.StudentCourse{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) ListActiveByStudent(ctx context.Context, studentID uint) ([]models.StudentCourse, error) {
	var enrollments []models.StudentCourse
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Where("status = ?", models.EnrollmentStatusActive).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListActiveByCourse(ctx context.Context, courseID uint) ([]models.StudentCourse, error) {
	var enrollments []models.StudentCourse
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Where("status = ?", models.EnrollmentStatusActive).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.StudentCourse) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.StudentCourse) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	GetByCode(ctx context.Context, code string) (models.Course, error)
	ListByProgramSemester(ctx context.Context, programID, semesterID uint) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Course{}).
		Preload("Program").
		Preload("Semester")
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.baseQuery(ctx).Order("course_code ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.baseQuery(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) GetByCode(ctx context.Context, code string) (models.Course, error) {
	var course models.Course
	if err := r.baseQuery(ctx).Where("course_code = ?", code).First(&course).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) ListByProgramSemester(ctx context.Context, programID, semesterID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := r.baseQuery(ctx).
		Where("program_id = ?", programID).
		Where("semester_id = ?", semesterID).
		Order("course_code ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Course{}, id)
}

// StaffCourseRepository defines persistence for staff teaching assignments.
type StaffCourseRepository interface {
	List(ctx context.Context) ([]models.StaffCourse, error)
	GetByID(ctx context.Context, id uint) (models.StaffCourse, error)
	FirstByCourse(ctx context.Context, courseID uint) (models.StaffCourse, error)
	Exists(ctx context.Context, staffID, courseID, academicYearID uint) (bool, error)
	Create(ctx context.Context, assignment *models.StaffCourse) error
	Delete(ctx context.Context, id uint) error
}

type staffCourseRepository struct {
	db *gorm.DB
}

// NewStaffCourseRepository instantiates a GORM-backed repository.
func NewStaffCourseRepository(db *gorm.DB) StaffCourseRepository {
	return &staffCourseRepository{db: db}
}

func (r *staffCourseRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.StaffCourse{}).
		Preload("Staff").
		Preload("Course").
		Preload("AcademicYear")
}

func (r *staffCourseRepository) List(ctx context.Context) ([]models.StaffCourse, error) {
	var assignments []models.StaffCourse
	if err := r.baseQuery(ctx).Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *staffCourseRepository) GetByID(ctx context.Context, id uint) (models.StaffCourse, error) {
	var assignment models.StaffCourse
	if err := r.baseQuery(ctx).First(&assignment, id).Error; err != nil {
		return models.StaffCourse{}, err
	}
	return assignment, nil
}

func (r *staffCourseRepository) FirstByCourse(ctx context.Context, courseID uint) (models.StaffCourse, error) {
	var assignment models.StaffCourse
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		First(&assignment).Error; err != nil {
		return models.StaffCourse{}, err
	}
	return assignment, nil
}

func (r *staffCourseRepository) Exists(ctx context.Context, staffID, courseID, academicYearID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StaffCourse{}).
		Where("staff_id = ? AND course_id = ? AND academic_year_id = ?", staffID, courseID, academicYearID).
		Count(&count).Error
	return count > 0, err
}

func (r *staffCourseRepository) Create(ctx context.Context, assignment *models.StaffCourse) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *staffCourseRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.StaffCourse{}, id)
}

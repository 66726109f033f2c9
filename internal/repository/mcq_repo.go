package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// MCQFilter narrows question queries.
type MCQFilter struct {
	CourseID        *uint
	StaffID         *uint
	StudyMaterialID *uint
}

// MCQRepository defines persistence operations for quiz questions.
type MCQRepository interface {
	List(ctx context.Context, filter MCQFilter) ([]models.MCQ, error)
	GetByID(ctx context.Context, id uint) (models.MCQ, error)
	ListByCourse(ctx context.Context, courseID uint) ([]models.MCQ, error)
	Create(ctx context.Context, mcq *models.MCQ) error
	Update(ctx context.Context, mcq *models.MCQ) error
	Delete(ctx context.Context, id uint) error
}

type mcqRepository struct {
	db *gorm.DB
}

// NewMCQRepository instantiates a GORM-backed repository.
func NewMCQRepository(db *gorm.DB) MCQRepository {
	return &mcqRepository{db: db}
}

func (r *mcqRepository) List(ctx context.Context, filter MCQFilter) ([]models.MCQ, error) {
	query := r.db.WithContext(ctx).Model(&models.MCQ{}).Preload("Course")

	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.StudyMaterialID != nil {
		query = query.Where("study_material_id = ?", *filter.StudyMaterialID)
	}

	var mcqs []models.MCQ
	if err := query.Order("created_at DESC").Find(&mcqs).Error; err != nil {
		return nil, err
	}
	return mcqs, nil
}

func (r *mcqRepository) GetByID(ctx context.Context, id uint) (models.MCQ, error) {
	var mcq models.MCQ
	if err := r.db.WithContext(ctx).First(&mcq, id).Error; err != nil {
		return models.MCQ{}, err
	}
	return mcq, nil
}

func (r *mcqRepository) ListByCourse(ctx context.Context, courseID uint) ([]models.MCQ, error) {
	var mcqs []models.MCQ
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&mcqs).Error; err != nil {
		return nil, err
	}
	return mcqs, nil
}

func (r *mcqRepository) Create(ctx context.Context, mcq *models.MCQ) error {
	return r.db.WithContext(ctx).Create(mcq).Error
}

func (r *mcqRepository) Update(ctx context.Context, mcq *models.MCQ) error {
	return r.db.WithContext(ctx).Save(mcq).Error
}

func (r *mcqRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.MCQ{}, id)
}

// AttemptRepository defines persistence for quiz attempts.
type AttemptRepository interface {
	GetByStudentAndMCQ(ctx context.Context, studentID, mcqID uint) (models.MCQAttempt, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.MCQAttempt, error)
	ListByStudentAndMCQs(ctx context.Context, studentID uint, mcqIDs []uint) ([]models.MCQAttempt, error)
	Create(ctx context.Context, attempt *models.MCQAttempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates a GORM-backed repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) GetByStudentAndMCQ(ctx context.Context, studentID, mcqID uint) (models.MCQAttempt, error) {
	var attempt models.MCQAttempt
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("mcq_id = ?", mcqID).
		First(&attempt).Error; err != nil {
		return models.MCQAttempt{}, err
	}
	return attempt, nil
}

func (r *attemptRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.MCQAttempt, error) {
	var attempts []models.MCQAttempt
	if err := r.db.WithContext(ctx).
		Preload("MCQ").
		Where("student_id = ?", studentID).
		Order("attempted_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) ListByStudentAndMCQs(ctx context.Context, studentID uint, mcqIDs []uint) ([]models.MCQAttempt, error) {
	if len(mcqIDs) == 0 {
		return nil, nil
	}

	var attempts []models.MCQAttempt
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("mcq_id IN ?", mcqIDs).
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.MCQAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

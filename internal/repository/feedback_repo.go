package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// FeedbackFilter narrows feedback queries.
type FeedbackFilter struct {
	CourseID  *uint
	StaffID   *uint
	StudentID *uint
}

// FeedbackRepository handles persistence for course and staff feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error)
	Delete(ctx context.Context, id uint) error
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository constructs a repository backed by GORM.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]models.Feedback, error) {
	query := r.db.WithContext(ctx).Model(&models.Feedback{}).Preload("Student")

	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	var feedback []models.Feedback
	if err := query.Order("submitted_at DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Feedback{}, id)
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// MaterialRepository defines persistence operations for study materials.
type MaterialRepository interface {
	ListRoots(ctx context.Context, staffCourseID uint) ([]models.StudyMaterial, error)
	GetByID(ctx context.Context, id uint) (models.StudyMaterial, error)
	CountRoots(ctx context.Context, staffCourseID uint) (int64, error)
	Create(ctx context.Context, material *models.StudyMaterial) error
	Update(ctx context.Context, material *models.StudyMaterial) error
	Delete(ctx context.Context, id uint) error
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository instantiates a GORM-backed repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) ListRoots(ctx context.Context, staffCourseID uint) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	if err := r.db.WithContext(ctx).
		Preload("Children").
		Where("staff_course_id = ?", staffCourseID).
		Where("parent_id IS NULL").
		Order("upload_date DESC").
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (models.StudyMaterial, error) {
	var material models.StudyMaterial
	if err := r.db.WithContext(ctx).Preload("Children").First(&material, id).Error; err != nil {
		return models.StudyMaterial{}, err
	}
	return material, nil
}

func (r *materialRepository) CountRoots(ctx context.Context, staffCourseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StudyMaterial{}).
		Where("staff_course_id = ?", staffCourseID).
		Where("parent_id IS NULL").
		Count(&count).Error
	return count, err
}

func (r *materialRepository) Create(ctx context.Context, material *models.StudyMaterial) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) Update(ctx context.Context, material *models.StudyMaterial) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.StudyMaterial{}, id)
}

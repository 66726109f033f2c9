package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// CommunicationRepository handles persistence for direct messages.
type CommunicationRepository interface {
	Create(ctx context.Context, message *models.Communication) error
	GetByID(ctx context.Context, id uint) (models.Communication, error)
	ListInbox(ctx context.Context, userType string, userID uint, limit int) ([]models.Communication, error)
	ListSent(ctx context.Context, userType string, userID uint, limit int) ([]models.Communication, error)
	UnreadCount(ctx context.Context, userType string, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) (models.Communication, error)
}

type communicationRepository struct {
	db *gorm.DB
}

// NewCommunicationRepository constructs a repository backed by GORM.
func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) Create(ctx context.Context, message *models.Communication) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *communicationRepository) GetByID(ctx context.Context, id uint) (models.Communication, error) {
	var message models.Communication
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return models.Communication{}, err
	}
	return message, nil
}

func (r *communicationRepository) ListInbox(ctx context.Context, userType string, userID uint, limit int) ([]models.Communication, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var messages []models.Communication
	if err := r.db.WithContext(ctx).
		Where("receiver_type = ?", userType).
		Where("receiver_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *communicationRepository) ListSent(ctx context.Context, userType string, userID uint, limit int) ([]models.Communication, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var messages []models.Communication
	if err := r.db.WithContext(ctx).
		Where("sender_type = ?", userType).
		Where("sender_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *communicationRepository) UnreadCount(ctx context.Context, userType string, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Communication{}).
		Where("receiver_type = ?", userType).
		Where("receiver_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *communicationRepository) MarkRead(ctx context.Context, id uint) (models.Communication, error) {
	var message models.Communication
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return models.Communication{}, err
	}

	if message.IsRead {
		return message, nil
	}

	now := time.Now().UTC()
	message.IsRead = true
	message.ReadAt = &now
	if err := r.db.WithContext(ctx).Save(&message).Error; err != nil {
		return models.Communication{}, err
	}
	return message, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// NotificationRepository handles persistence for notification entities.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userType string, userID uint, unreadOnly bool, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userType string, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) (models.Notification, error)
	MarkAllRead(ctx context.Context, userType string, userID uint) error
	Delete(ctx context.Context, id uint) error
	SetEmailSent(ctx context.Context, id uint, sent bool) error
	HasReminderSince(ctx context.Context, userID, assignmentID uint, since time.Time) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository constructs a repository backed by GORM.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userType string, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := r.db.WithContext(ctx).
		Where("user_type = ?", userType).
		Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userType string, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_type = ?", userType).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) (models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return models.Notification{}, err
	}

	if notification.IsRead {
		return notification, nil
	}

	now := time.Now().UTC()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := r.db.WithContext(ctx).Save(&notification).Error; err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userType string, userID uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_type = ?", userType).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Notification{}, id)
}

func (r *notificationRepository) SetEmailSent(ctx context.Context, id uint, sent bool) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("email_sent", sent).Error
}

func (r *notificationRepository) HasReminderSince(ctx context.Context, userID, assignmentID uint, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_type = ?", models.RoleStudent).
		Where("user_id = ?", userID).
		Where("notification_type = ?", models.NotificationTypeDeadlineReminder).
		Where("reference_id = ?", assignmentID).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count > 0, err
}

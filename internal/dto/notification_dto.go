package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// NotificationResponse represents notification data returned to clients.
type NotificationResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Type          string     `json:"notification_type"`
	ReferenceType string     `json:"reference_type"`
	ReferenceID   *uint      `json:"reference_id"`
	IsRead        bool       `json:"is_read"`
	CreatedAt     time.Time  `json:"created_at"`
	ReadAt        *time.Time `json:"read_at"`
}

// NewNotificationResponse converts a notification model to a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            model.ID,
		Title:         model.Title,
		Message:       model.Message,
		Type:          model.Type,
		ReferenceType: model.ReferenceType,
		ReferenceID:   model.ReferenceID,
		IsRead:        model.IsRead,
		CreatedAt:     model.CreatedAt,
		ReadAt:        model.ReadAt,
	}
}

// NewNotificationResponseSlice converts a slice to DTOs.
func NewNotificationResponseSlice(items []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewNotificationResponse(item))
	}
	return out
}

// UnreadCountResponse reports how many notifications are still unread.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

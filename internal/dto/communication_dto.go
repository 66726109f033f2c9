package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// MessageSendRequest describes the payload for sending a direct message.
type MessageSendRequest struct {
	ReceiverType string `json:"receiver_type" validate:"required,oneof=admin staff student"`
	ReceiverID   uint   `json:"receiver_id" validate:"required,min=1"`
	Subject      string `json:"subject" validate:"omitempty,max=200"`
	Message      string `json:"message" validate:"required,min=1,max=10000"`
}

// MessageResponse is the serialized representation of a direct message.
type MessageResponse struct {
	ID           uint       `json:"id"`
	SenderType   string     `json:"sender_type"`
	SenderID     uint       `json:"sender_id"`
	ReceiverType string     `json:"receiver_type"`
	ReceiverID   uint       `json:"receiver_id"`
	Subject      string     `json:"subject"`
	Message      string     `json:"message"`
	IsRead       bool       `json:"is_read"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// NewMessageResponse converts a model into a DTO.
func NewMessageResponse(model models.Communication) MessageResponse {
	return MessageResponse{
		ID:           model.ID,
		SenderType:   model.SenderType,
		SenderID:     model.SenderID,
		ReceiverType: model.ReceiverType,
		ReceiverID:   model.ReceiverID,
		Subject:      model.Subject,
		Message:      model.Message,
		IsRead:       model.IsRead,
		SentAt:       model.SentAt,
		ReadAt:       model.ReadAt,
	}
}

// NewMessageResponseSlice converts a slice of models into DTOs.
func NewMessageResponseSlice(messages []models.Communication) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewMessageResponse(message))
	}
	return out
}

package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// Sentinel errors for direct messaging.
var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrReceiverNotFound = errors.New("receiver not found")
)

// CommunicationService handles direct messages between accounts.
type CommunicationService interface {
	Send(ctx context.Context, senderType string, senderID uint, payload dto.MessageSendRequest) (dto.MessageResponse, error)
	Inbox(ctx context.Context, userType string, userID uint, limit int) ([]dto.MessageResponse, error)
	Sent(ctx context.Context, userType string, userID uint, limit int) ([]dto.MessageResponse, error)
	UnreadCount(ctx context.Context, userType string, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) (dto.MessageResponse, error)
}

type communicationService struct {
	messages  repository.CommunicationRepository
	admins    repository.AdminRepository
	staff     repository.StaffRepository
	students  repository.StudentRepository
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCommunicationService constructs a CommunicationService instance.
func NewCommunicationService(
	messageRepo repository.CommunicationRepository,
	adminRepo repository.AdminRepository,
	staffRepo repository.StaffRepository,
	studentRepo repository.StudentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) CommunicationService {
	return &communicationService{
		messages:  messageRepo,
		admins:    adminRepo,
		staff:     staffRepo,
		students:  studentRepo,
		sanitizer: bluemonday.StrictPolicy(),
		validator: validate,
		logger:    logger.With().Str("component", "communication_service").Logger(),
	}
}

func (s *communicationService) Send(ctx context.Context, senderType string, senderID uint, payload dto.MessageSendRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MessageResponse{}, err
	}

	if err := s.receiverExists(ctx, payload.ReceiverType, payload.ReceiverID); err != nil {
		return dto.MessageResponse{}, err
	}

	message := models.Communication{
		SenderType:   senderType,
		SenderID:     senderID,
		ReceiverType: payload.ReceiverType,
		ReceiverID:   payload.ReceiverID,
		Subject:      s.sanitizer.Sanitize(payload.Subject),
		Message:      s.sanitizer.Sanitize(payload.Message),
	}
	if err := s.messages.Create(ctx, &message); err != nil {
		return dto.MessageResponse{}, err
	}
	return dto.NewMessageResponse(message), nil
}

func (s *communicationService) Inbox(ctx context.Context, userType string, userID uint, limit int) ([]dto.MessageResponse, error) {
	messages, err := s.messages.ListInbox(ctx, userType, userID, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewMessageResponseSlice(messages), nil
}

func (s *communicationService) Sent(ctx context.Context, userType string, userID uint, limit int) ([]dto.MessageResponse, error) {
	messages, err := s.messages.ListSent(ctx, userType, userID, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewMessageResponseSlice(messages), nil
}

func (s *communicationService) UnreadCount(ctx context.Context, userType string, userID uint) (int64, error) {
	return s.messages.UnreadCount(ctx, userType, userID)
}

func (s *communicationService) MarkRead(ctx context.Context, id uint) (dto.MessageResponse, error) {
	message, err := s.messages.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MessageResponse{}, ErrMessageNotFound
		}
		return dto.MessageResponse{}, err
	}
	return dto.NewMessageResponse(message), nil
}

func (s *communicationService) receiverExists(ctx context.Context, receiverType string, receiverID uint) error {
	var err error
	switch receiverType {
	case models.RoleAdmin:
		_, err = s.admins.GetByID(ctx, receiverID)
	case models.RoleStaff:
		_, err = s.staff.GetByID(ctx, receiverID)
	case models.RoleStudent:
		_, err = s.students.GetByID(ctx, receiverID)
	default:
		return ErrReceiverNotFound
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReceiverNotFound
		}
		return err
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"socialhub/internal/models"
	"socialhub/internal/repository"
)

type MessageService interface {
	Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error)
	Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, categorize(ErrValidation, errors.New("message text is empty"))
	}
	if senderID == receiverID {
		return nil, categorize(ErrValidation, errors.New("cannot message yourself"))
	}

	if _, err := s.userRepo.GetUserByID(ctx, receiverID); err != nil {
		return nil, storeError(err)
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, storeError(err)
	}

	return message, nil
}

func (s *messageService) Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	messages, err := s.messageRepo.GetConversation(ctx, userID, otherID)
	if err != nil {
		return nil, storeError(err)
	}
	return messages, nil
}

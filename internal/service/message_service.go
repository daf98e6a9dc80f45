package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// MessageService manages the contact form inbox.
type MessageService interface {
	Create(ctx context.Context, name, email, message string) (*model.Message, error)
	List(ctx context.Context) ([]model.Message, error)
	MarkRead(ctx context.Context, id string, read bool) (*model.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageService struct {
	repo repository.MessageRepository
}

// NewMessageService creates a new message service.
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageService{repo: repo}
}

// Create stores a new unread message.
func (s *messageService) Create(ctx context.Context, name, email, message string) (*model.Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("name, email, and message are required")
	}

	msg := &model.Message{Name: name, Email: email, Message: message}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// List returns the inbox newest first.
func (s *messageService) List(ctx context.Context) ([]model.Message, error) {
	return s.repo.List(ctx)
}

// MarkRead sets the read flag and returns the updated message.
func (s *messageService) MarkRead(ctx context.Context, id string, read bool) (*model.Message, error) {
	if err := s.repo.UpdateRead(ctx, id, read); err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("message")
		}
		return nil, fmt.Errorf("reload message: %w", err)
	}
	return msg, nil
}

// Delete removes the message. Unknown IDs succeed.
func (s *messageService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

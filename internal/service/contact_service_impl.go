package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wesworld/site/internal/model"
	"github.com/wesworld/site/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.MessageRepository
	notifier Notifier
	now      func() time.Time
	newID    func() (model.MessageID, error)
}

// NewContactService creates a ContactService backed by the given repository and notifier.
func NewContactService(repo repository.MessageRepository, notifier Notifier) ContactService {
	return &contactServiceImpl{
		repo:     repo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    newMessageID,
	}
}

// newMessageID returns a UUIDv7, which embeds the creation time and sorts by it.
func newMessageID() (model.MessageID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return model.MessageID(id.String()), nil
}

func (s *contactServiceImpl) Submit(ctx context.Context, in ContactInput) (*SubmitResult, error) {
	sub, err := Normalize(in)
	if err != nil {
		return nil, err
	}

	slog.Info("new contact submission",
		"name", sub.Name,
		"email", sub.Email,
		"phone", sub.Phone,
		"service", sub.Service,
		"message", sub.Message,
	)

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("service: generate message id: %w", err)
	}
	msg := model.NewContactMessage(id, s.now(), sub)

	result := &SubmitResult{Message: msg, Stored: true}
	if err := s.repo.Append(ctx, msg); err != nil {
		// Persistence failures do not fail the submission.
		slog.Error("failed to save message", "id", msg.ID.String(), "error", err)
		result.Stored = false
	}

	sent, err := s.notifier.Send(ctx, sub)
	if err != nil {
		slog.Error("failed to send contact notification", "id", msg.ID.String(), "error", err)
	}
	result.EmailSent = err == nil && sent.Sent

	return result, nil
}

func (s *contactServiceImpl) List(ctx context.Context) []*model.ContactMessage {
	messages, err := s.repo.LoadAll(ctx)
	if err != nil {
		slog.Error("failed to load messages", "error", err)
		return []*model.ContactMessage{}
	}
	if messages == nil {
		return []*model.ContactMessage{}
	}
	return messages
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		slog.Error("failed to delete message", "id", id, "error", err)
		return repository.ErrNotFound
	}
	if !removed {
		return repository.ErrNotFound
	}
	return nil
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

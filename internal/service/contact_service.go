package service

import (
	"context"
	"strings"

	"github.com/wesworld/site/internal/mailer"
	"github.com/wesworld/site/internal/model"
)

// GuidanceMessage is shown when required submission fields are missing.
const GuidanceMessage = "Please share your name, email, and a quick message."

// ContactInput is a raw contact form payload before normalization.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Service string
}

// SubmitResult describes what happened to an accepted submission.
type SubmitResult struct {
	Message *model.ContactMessage
	// Stored is false when persistence failed. The submission is still
	// reported as accepted to the visitor.
	Stored    bool
	EmailSent bool
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and stores a submission, then attempts a notification.
	// Only a *ValidationError or an unexpected internal failure is returned;
	// storage and dispatch failures are logged and reflected in the result.
	Submit(ctx context.Context, in ContactInput) (*SubmitResult, error)

	// List returns every stored message, newest first. Storage failures
	// yield an empty list.
	List(ctx context.Context) []*model.ContactMessage

	// Delete removes the message with the given id. It returns
	// repository.ErrNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}

// Notifier dispatches a notification for a normalized submission.
type Notifier interface {
	Send(ctx context.Context, sub model.ContactSubmission) (mailer.Result, error)
}

// ValidationError reports missing required submission fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return GuidanceMessage
}

// Normalize checks required fields and returns the trimmed submission with
// defaults applied. Only empty values are rejected; no format checks are made.
func Normalize(in ContactInput) (model.ContactSubmission, error) {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return model.ContactSubmission{}, &ValidationError{Fields: missing}
	}

	sub := model.ContactSubmission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
		Service: model.DefaultService,
	}
	if in.Service != "" {
		sub.Service = strings.TrimSpace(in.Service)
	}
	return sub, nil
}

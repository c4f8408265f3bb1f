package handler

import (
	"context"

	"github.com/wesworld/site/internal/model"
	"github.com/wesworld/site/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error)
	listFunc   func(ctx context.Context) []*model.ContactMessage
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockContactService) Submit(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return &service.SubmitResult{Stored: true}, nil
}

func (m *mockContactService) List(ctx context.Context) []*model.ContactMessage {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.ContactMessage{}
}

func (m *mockContactService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockDB struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockDB) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

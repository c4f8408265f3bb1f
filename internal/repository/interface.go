package repository

import (
	"context"

	"github.com/wesworld/site/internal/model"
)

// DB は保存先の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// MessageRepository is the persisted collection of contact messages,
// ordered newest-first by insertion.
type MessageRepository interface {
	DB

	// LoadAll returns every stored message, newest first.
	LoadAll(ctx context.Context) ([]*model.ContactMessage, error)

	// Append stores msg ahead of all existing messages.
	Append(ctx context.Context, msg *model.ContactMessage) error

	// DeleteByID removes every message whose id equals id and reports
	// whether anything was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

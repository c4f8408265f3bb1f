package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wesworld/site/internal/model"
)

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
// Insertion order is tracked by the seq column.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

var _ MessageRepository = (*PgMessageRepository)(nil)

func (r *PgMessageRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// LoadAll returns all rows, newest insertion first.
func (r *PgMessageRepository) LoadAll(ctx context.Context) ([]*model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, created_at, name, email, phone, message, service
		 FROM contact_messages
		 ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("repository: query messages: %w", err)
	}
	defer rows.Close()

	messages := []*model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		var id string
		if err := rows.Scan(&id, &m.CreatedAt, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Service); err != nil {
			return nil, fmt.Errorf("repository: scan message: %w", err)
		}
		m.ID = model.MessageID(id)
		m.CreatedAt = m.CreatedAt.UTC()
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *PgMessageRepository) Append(ctx context.Context, msg *model.ContactMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, created_at, name, email, phone, message, service)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID.String(), msg.CreatedAt, msg.Name, msg.Email, msg.Phone, msg.Message, msg.Service,
	)
	if err != nil {
		return fmt.Errorf("repository: insert message: %w", err)
	}
	return nil
}

func (r *PgMessageRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("repository: delete message: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

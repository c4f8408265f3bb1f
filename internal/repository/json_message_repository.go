package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/wesworld/site/internal/model"
)

// MessagesFileName is the file inside the data directory that holds all messages.
const MessagesFileName = "messages.json"

// JSONFileMessageRepository stores every message as one JSON array in a
// single file and rewrites the whole file on each mutation.
//
// Mutations within this process are serialized by mu, and each rewrite goes
// through a temp file plus rename so a reader never sees a partial file.
// Separate processes sharing the file are not coordinated.
type JSONFileMessageRepository struct {
	dir  string
	path string
	mu   sync.Mutex
}

// NewJSONFileMessageRepository は dataDir/messages.json を保存先とするリポジトリを生成する
func NewJSONFileMessageRepository(dataDir string) *JSONFileMessageRepository {
	return &JSONFileMessageRepository{
		dir:  dataDir,
		path: filepath.Join(dataDir, MessagesFileName),
	}
}

var _ MessageRepository = (*JSONFileMessageRepository)(nil)

// Path returns the backing file path.
func (r *JSONFileMessageRepository) Path() string { return r.path }

// Ping checks that the data directory exists or can be created.
func (r *JSONFileMessageRepository) Ping(_ context.Context) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("repository: mkdir: %w", err)
	}
	return nil
}

// LoadAll returns an empty slice when the file does not exist yet.
// A file that is not a JSON array yields ErrCorruptStore.
func (r *JSONFileMessageRepository) LoadAll(_ context.Context) ([]*model.ContactMessage, error) {
	return r.read()
}

// Append prepends msg and rewrites the file, creating the data directory on
// first use. A corrupt file is replaced rather than appended to.
func (r *JSONFileMessageRepository) Append(_ context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("repository: mkdir: %w", err)
	}

	messages, err := r.read()
	if errors.Is(err, ErrCorruptStore) {
		slog.Warn("replacing corrupt message store", "path", r.path, "error", err)
		messages, err = nil, nil
	}
	if err != nil {
		return err
	}

	next := make([]*model.ContactMessage, 0, len(messages)+1)
	next = append(next, msg)
	next = append(next, messages...)
	return r.write(next)
}

// DeleteByID rewrites the file only when at least one message was removed.
func (r *JSONFileMessageRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.read()
	if err != nil {
		return false, err
	}

	kept := messages[:0:0]
	for _, m := range messages {
		if m.ID.String() != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(messages) {
		return false, nil
	}
	if err := r.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (r *JSONFileMessageRepository) read() ([]*model.ContactMessage, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.ContactMessage{}, nil
		}
		return nil, fmt.Errorf("repository: read: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrCorruptStore
	}
	var messages []*model.ContactMessage
	if err := json.Unmarshal(trimmed, &messages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	out := messages[:0]
	for _, m := range messages {
		if m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *JSONFileMessageRepository) write(messages []*model.ContactMessage) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("repository: encode: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, MessagesFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("repository: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("repository: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("repository: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("repository: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repository: close: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("repository: rename: %w", err)
	}
	return nil
}

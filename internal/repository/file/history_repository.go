package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lucy-rag-be/internal/entity"
	"lucy-rag-be/internal/pkg/apperr"
	"lucy-rag-be/internal/repository/contract"

	"github.com/google/uuid"
)

// HistoryRepository persists one JSON file per session under dir.
// Appends are serialized per session and written via a temp file +
// rename so a concurrent reader never observes a partial history.
type HistoryRepository struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewHistoryRepository(dir string) (*HistoryRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &HistoryRepository{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

var _ contract.HistoryRepository = (*HistoryRepository)(nil)

func (r *HistoryRepository) Create(ctx context.Context) (string, error) {
	sessionId := uuid.NewString()

	lock := r.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	if err := r.write(sessionId, []entity.ChatMessage{}); err != nil {
		return "", err
	}
	return sessionId, nil
}

func (r *HistoryRepository) Append(ctx context.Context, sessionId, role, content string) error {
	lock := r.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	path := r.path(sessionId)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return apperr.NotFound(fmt.Sprintf("session %s not found", sessionId))
	}

	history, err := r.read(sessionId)
	if err != nil {
		return err
	}

	history = append(history, entity.ChatMessage{Role: role, Content: content})
	return r.write(sessionId, history)
}

func (r *HistoryRepository) Read(ctx context.Context, sessionId string) ([]entity.ChatMessage, error) {
	history, err := r.read(sessionId)
	if err != nil {
		if os.IsNotExist(err) {
			return []entity.ChatMessage{}, nil
		}
		return nil, err
	}
	return history, nil
}

func (r *HistoryRepository) Clear(ctx context.Context, sessionId string) error {
	lock := r.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(r.path(sessionId)); os.IsNotExist(err) {
		return nil
	}
	return r.write(sessionId, []entity.ChatMessage{})
}

func (r *HistoryRepository) path(sessionId string) string {
	// Session ids are server-generated uuids; Base guards against a
	// crafted id escaping the session dir.
	return filepath.Join(r.dir, filepath.Base(sessionId)+".json")
}

func (r *HistoryRepository) sessionLock(sessionId string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[sessionId]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[sessionId] = lock
	}
	return lock
}

func (r *HistoryRepository) read(sessionId string) ([]entity.ChatMessage, error) {
	data, err := os.ReadFile(r.path(sessionId))
	if err != nil {
		return nil, err
	}

	var history []entity.ChatMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionId, err)
	}
	return history, nil
}

func (r *HistoryRepository) write(sessionId string, history []entity.ChatMessage) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionId, err)
	}

	path := r.path(sessionId)
	tmp, err := os.CreateTemp(r.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session %s: %w", sessionId, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	// Atomic on POSIX: readers see the old or the new file, never a mix
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace session %s: %w", sessionId, err)
	}
	return nil
}

package memory

import (
	"context"
	"fmt"
	"sync"

	"lucy-rag-be/internal/entity"
	"lucy-rag-be/internal/pkg/apperr"
	"lucy-rag-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// HistoryRepository keeps session histories in an in-process cache.
// It backs tests and local development; histories never expire.
type HistoryRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

var _ contract.HistoryRepository = (*HistoryRepository)(nil)

func (r *HistoryRepository) Create(ctx context.Context) (string, error) {
	sessionId := uuid.NewString()
	r.cache.Set(sessionId, []entity.ChatMessage{}, cache.NoExpiration)
	return sessionId, nil
}

func (r *HistoryRepository) Append(ctx context.Context, sessionId, role, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(sessionId)
	if !found {
		return apperr.NotFound(fmt.Sprintf("session %s not found", sessionId))
	}

	history := x.([]entity.ChatMessage)
	history = append(history, entity.ChatMessage{Role: role, Content: content})
	r.cache.Set(sessionId, history, cache.NoExpiration)
	return nil
}

func (r *HistoryRepository) Read(ctx context.Context, sessionId string) ([]entity.ChatMessage, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return []entity.ChatMessage{}, nil
	}
	history := x.([]entity.ChatMessage)
	out := make([]entity.ChatMessage, len(history))
	copy(out, history)
	return out, nil
}

func (r *HistoryRepository) Clear(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.cache.Get(sessionId); !found {
		return nil
	}
	r.cache.Set(sessionId, []entity.ChatMessage{}, cache.NoExpiration)
	return nil
}

package contract

import (
	"context"

	"lucy-rag-be/internal/entity"
)

// HistoryRepository is a key-value store of per-session conversation
// histories. The backing medium (flat files, in-memory cache) is
// swappable; callers only rely on these semantics:
//
//   - Create allocates the key with an empty history and must not
//     collide with an existing session.
//   - Append is strict: it fails with a not-found error when the
//     session does not exist, and must be atomic under concurrent
//     appends to the same session (no lost updates, no torn reads).
//   - Read is lenient: an unknown session yields an empty history.
//   - Clear resets the history to empty and is a no-op for unknown
//     sessions; calling it twice equals calling it once.
type HistoryRepository interface {
	Create(ctx context.Context) (string, error)
	Append(ctx context.Context, sessionId, role, content string) error
	Read(ctx context.Context, sessionId string) ([]entity.ChatMessage, error)
	Clear(ctx context.Context, sessionId string) error
}

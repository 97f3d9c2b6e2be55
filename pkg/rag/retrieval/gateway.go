package retrieval

import (
	"context"
	"fmt"
	"log"

	"lucy-rag-be/pkg/embedding"
	"lucy-rag-be/pkg/utils"
	"lucy-rag-be/pkg/vectorstore"

	"github.com/google/uuid"
)

const (
	// upsertBatchSize bounds a single upsert request to the index.
	upsertBatchSize = 100

	// minScore drops weak matches before they reach the prompt.
	minScore = 0.2
)

// Gateway wraps the embedding and vector-index providers behind the
// session-scoped retrieval contract: every vector carries exactly one
// session id, and search/purge always filter on it.
type Gateway struct {
	embedder embedding.Provider
	store    vectorstore.VectorStore
	logger   *log.Logger
}

func NewGateway(embedder embedding.Provider, store vectorstore.VectorStore, logger *log.Logger) *Gateway {
	return &Gateway{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Index embeds chunks in document mode and upserts them in bounded
// batches, each tagged with sessionId. Returns total vectors written.
func (g *Gateway) Index(ctx context.Context, chunks []utils.Chunk, sessionId string) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := g.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: got %d, want %d", len(embeddings), len(chunks))
	}

	records := make([]vectorstore.Record, len(chunks))
	for i, c := range chunks {
		records[i] = vectorstore.Record{
			Id:     uuid.NewString(),
			Values: embeddings[i],
			Metadata: vectorstore.Metadata{
				Text:      c.Text,
				Page:      c.Page,
				SessionId: sessionId,
			},
		}
	}

	for start := 0; start < len(records); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := g.store.Upsert(ctx, records[start:end]); err != nil {
			return 0, fmt.Errorf("upsert batch starting at %d: %w", start, err)
		}
	}

	return len(records), nil
}

// Search embeds the query in query mode and returns session-filtered
// matches above the relevance threshold, in the index's score order.
func (g *Gateway) Search(ctx context.Context, query, sessionId string, topK int) ([]vectorstore.Match, error) {
	vector, err := g.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := g.store.Query(ctx, vector, sessionId, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	contexts := make([]vectorstore.Match, 0, len(matches))
	for _, m := range matches {
		if m.Score > minScore {
			contexts = append(contexts, m)
		}
	}
	return contexts, nil
}

// Purge deletes every vector belonging to the session. Failures are
// reported as false rather than an error: vector cleanup is decoupled
// from history cleanup, and a failed purge must not block a clear.
func (g *Gateway) Purge(ctx context.Context, sessionId string) bool {
	if err := g.store.DeleteBySession(ctx, sessionId); err != nil {
		g.logger.Printf("[RETRIEVAL] Failed to purge vectors for session %s: %v", sessionId, err)
		return false
	}
	return true
}

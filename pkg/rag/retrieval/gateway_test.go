package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"lucy-rag-be/pkg/utils"
	"lucy-rag-be/pkg/vectorstore"
	"lucy-rag-be/pkg/vectorstore/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known phrases onto fixed unit vectors so cosine
// scores are predictable.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{}}
}

func (f *fakeEmbedder) set(text string, vector []float32) {
	f.vectors[text] = vector
}

func (f *fakeEmbedder) lookup(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	// Orthogonal default so unknown text scores zero
	return []float32{0, 0, 0, 1}
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.lookup(text)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return f.lookup(text), nil
}

// countingStore records upsert batch sizes.
type countingStore struct {
	*memory.Store
	batches []int
}

func (c *countingStore) Upsert(ctx context.Context, records []vectorstore.Record) error {
	c.batches = append(c.batches, len(records))
	return c.Store.Upsert(ctx, records)
}

// failingStore always errors, for the purge path.
type failingStore struct{}

func (failingStore) Upsert(context.Context, []vectorstore.Record) error { return errors.New("boom") }
func (failingStore) Query(context.Context, []float32, string, int) ([]vectorstore.Match, error) {
	return nil, errors.New("boom")
}
func (failingStore) DeleteBySession(context.Context, string) error { return errors.New("boom") }

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestIndex_TagsAndCounts(t *testing.T) {
	embedder := newFakeEmbedder()
	store := memory.NewStore()
	gateway := NewGateway(embedder, store, discardLogger())

	chunks := []utils.Chunk{
		{Page: 1, Text: "neural networks"},
		{Page: 2, Text: "gradient descent"},
	}

	count, err := gateway.Index(context.Background(), chunks, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.Len())
}

func TestIndex_EmptyChunks(t *testing.T) {
	gateway := NewGateway(newFakeEmbedder(), memory.NewStore(), discardLogger())

	count, err := gateway.Index(context.Background(), nil, "session-a")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIndex_BatchesUpserts(t *testing.T) {
	embedder := newFakeEmbedder()
	store := &countingStore{Store: memory.NewStore()}
	gateway := NewGateway(embedder, store, discardLogger())

	chunks := make([]utils.Chunk, 250)
	for i := range chunks {
		chunks[i] = utils.Chunk{Page: 1, Text: fmt.Sprintf("chunk %d", i)}
	}

	count, err := gateway.Index(context.Background(), chunks, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 250, count)
	assert.Equal(t, []int{100, 100, 50}, store.batches)
}

func TestSearch_SessionIsolation(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.set("cats are mammals", []float32{1, 0, 0, 0})
	embedder.set("rust is a language", []float32{0, 1, 0, 0})
	embedder.set("tell me about cats", []float32{1, 0, 0, 0})

	store := memory.NewStore()
	gateway := NewGateway(embedder, store, discardLogger())
	ctx := context.Background()

	_, err := gateway.Index(ctx, []utils.Chunk{{Page: 1, Text: "cats are mammals"}}, "session-a")
	require.NoError(t, err)
	_, err = gateway.Index(ctx, []utils.Chunk{{Page: 1, Text: "rust is a language"}}, "session-b")
	require.NoError(t, err)

	// The query matches session A's chunk perfectly, but a search
	// scoped to B must never surface it.
	matches, err := gateway.Search(ctx, "tell me about cats", "session-b", 10)
	require.NoError(t, err)
	for _, m := range matches {
		assert.NotEqual(t, "cats are mammals", m.Text)
	}

	matches, err = gateway.Search(ctx, "tell me about cats", "session-a", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "cats are mammals", matches[0].Text)
	assert.Equal(t, 1, matches[0].Page)
}

func TestSearch_ScoreThreshold(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.set("strong match", []float32{1, 0, 0, 0})
	// cosine with the query = 0.1, below the 0.2 cutoff
	embedder.set("weak match", []float32{0.1, 0.9949874, 0, 0})
	embedder.set("query", []float32{1, 0, 0, 0})

	store := memory.NewStore()
	gateway := NewGateway(embedder, store, discardLogger())
	ctx := context.Background()

	_, err := gateway.Index(ctx, []utils.Chunk{
		{Page: 1, Text: "strong match"},
		{Page: 2, Text: "weak match"},
	}, "session-a")
	require.NoError(t, err)

	matches, err := gateway.Search(ctx, "query", "session-a", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "strong match", matches[0].Text)
}

func TestSearch_TopKLimit(t *testing.T) {
	embedder := newFakeEmbedder()
	store := memory.NewStore()
	gateway := NewGateway(embedder, store, discardLogger())
	ctx := context.Background()

	chunks := make([]utils.Chunk, 15)
	for i := range chunks {
		text := fmt.Sprintf("chunk %d", i)
		chunks[i] = utils.Chunk{Page: i + 1, Text: text}
		embedder.set(text, []float32{1, 0, 0, 0})
	}
	embedder.set("query", []float32{1, 0, 0, 0})

	_, err := gateway.Index(ctx, chunks, "session-a")
	require.NoError(t, err)

	matches, err := gateway.Search(ctx, "query", "session-a", 10)
	require.NoError(t, err)
	assert.Len(t, matches, 10)
}

func TestPurge(t *testing.T) {
	embedder := newFakeEmbedder()
	store := memory.NewStore()
	gateway := NewGateway(embedder, store, discardLogger())
	ctx := context.Background()

	_, err := gateway.Index(ctx, []utils.Chunk{{Page: 1, Text: "keep"}}, "session-a")
	require.NoError(t, err)
	_, err = gateway.Index(ctx, []utils.Chunk{{Page: 1, Text: "drop"}}, "session-b")
	require.NoError(t, err)

	assert.True(t, gateway.Purge(ctx, "session-b"))
	assert.Equal(t, 1, store.Len())

	// Purging again is still a success
	assert.True(t, gateway.Purge(ctx, "session-b"))
	assert.Equal(t, 1, store.Len())
}

func TestPurge_FailureIsNonFatal(t *testing.T) {
	var buf strings.Builder
	gateway := NewGateway(newFakeEmbedder(), failingStore{}, log.New(&buf, "", 0))

	ok := gateway.Purge(context.Background(), "session-a")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "session-a")
}

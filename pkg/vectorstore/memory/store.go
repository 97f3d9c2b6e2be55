package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"lucy-rag-be/pkg/vectorstore"
)

// Store is an in-process VectorStore backed by a cosine-similarity
// scan. It exists for tests and local development without a hosted
// index; it applies the same session filter semantics as the real one.
type Store struct {
	mu      sync.RWMutex
	records []vectorstore.Record
}

func NewStore() *Store {
	return &Store{}
}

var _ vectorstore.VectorStore = (*Store)(nil)

func (s *Store) Upsert(ctx context.Context, records []vectorstore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *Store) Query(ctx context.Context, vector []float32, sessionId string, topK int) ([]vectorstore.Match, error) {
	if topK <= 0 {
		topK = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []vectorstore.Match
	for _, r := range s.records {
		if r.Metadata.SessionId != sessionId {
			continue
		}
		matches = append(matches, vectorstore.Match{
			Text:  r.Metadata.Text,
			Page:  r.Metadata.Page,
			Score: cosine(vector, r.Values),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (s *Store) DeleteBySession(ctx context.Context, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if r.Metadata.SessionId != sessionId {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

// Len reports the number of stored vectors; handy in tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

package vectorstore

import "context"

// Record is one stored vector. SessionId in the metadata is the sole
// multi-tenancy boundary: every query and every delete must filter on
// it, with no bypass path.
type Record struct {
	Id       string
	Values   []float32
	Metadata Metadata
}

type Metadata struct {
	Text      string `json:"text"`
	Page      int    `json:"page"`
	SessionId string `json:"session_id"`
}

// Match is a similarity hit, highest score first.
type Match struct {
	Text  string
	Page  int
	Score float32
}

// VectorStore persists embeddings in a hosted index and supports
// session-scoped similarity search.
type VectorStore interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, vector []float32, sessionId string, topK int) ([]Match, error)
	DeleteBySession(ctx context.Context, sessionId string) error
}

package embedding

import "context"

// Provider generates text embeddings. Document and query embeddings are
// produced by distinct model modes and are not interchangeable: vectors
// stored with EmbedDocuments must be searched with EmbedQuery.
type Provider interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

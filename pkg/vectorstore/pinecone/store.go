package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"lucy-rag-be/internal/pkg/apperr"
	"lucy-rag-be/pkg/vectorstore"
)

const controlPlaneURL = "https://api.pinecone.io"

// Store is a minimal REST client to a Pinecone serverless index.
// The data-plane host is taken from Config.Host, or resolved once from
// the control plane by index name.
type Store struct {
	apiKey      string
	indexName   string
	describeURL string
	client      *http.Client

	mu   sync.Mutex
	host string
}

type Config struct {
	APIKey    string
	IndexName string
	Host      string
	Timeout   time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Store{
		apiKey:      cfg.APIKey,
		indexName:   cfg.IndexName,
		describeURL: controlPlaneURL,
		host:        normalizeHost(cfg.Host),
		client:      &http.Client{Timeout: timeout},
	}
}

var _ vectorstore.VectorStore = (*Store)(nil)

func (s *Store) Upsert(ctx context.Context, records []vectorstore.Record) error {
	vectors := make([]map[string]any, len(records))
	for i, r := range records {
		vectors[i] = map[string]any{
			"id":     r.Id,
			"values": r.Values,
			"metadata": map[string]any{
				"text":       r.Metadata.Text,
				"page":       r.Metadata.Page,
				"session_id": r.Metadata.SessionId,
			},
		}
	}

	body := map[string]any{"vectors": vectors}
	return s.postJSON(ctx, "/vectors/upsert", body, nil)
}

func (s *Store) Query(ctx context.Context, vector []float32, sessionId string, topK int) ([]vectorstore.Match, error) {
	if topK <= 0 {
		topK = 10
	}

	body := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
		"filter":          sessionFilter(sessionId),
	}

	var resp struct {
		Matches []struct {
			Score    float32 `json:"score"`
			Metadata struct {
				Text string `json:"text"`
				// Pinecone stores numeric metadata as float64
				Page      float64 `json:"page"`
				SessionId string  `json:"session_id"`
			} `json:"metadata"`
		} `json:"matches"`
	}

	if err := s.postJSON(ctx, "/query", body, &resp); err != nil {
		return nil, err
	}

	matches := make([]vectorstore.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, vectorstore.Match{
			Text:  m.Metadata.Text,
			Page:  int(m.Metadata.Page),
			Score: m.Score,
		})
	}
	return matches, nil
}

func (s *Store) DeleteBySession(ctx context.Context, sessionId string) error {
	body := map[string]any{"filter": sessionFilter(sessionId)}
	return s.postJSON(ctx, "/vectors/delete", body, nil)
}

func sessionFilter(sessionId string) map[string]any {
	return map[string]any{
		"session_id": map[string]any{"$eq": sessionId},
	}
}

func (s *Store) postJSON(ctx context.Context, path string, body any, out any) error {
	if s.apiKey == "" {
		return apperr.Configuration("PINECONE_API_KEY missing from environment variables")
	}

	host, err := s.resolveHost(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", host+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return apperr.Provider("vector index request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return apperr.Provider(
			fmt.Sprintf("pinecone api error (status %d)", resp.StatusCode),
			fmt.Errorf("%s", string(bodyBytes)),
		)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// resolveHost looks up the index host from the control plane the first
// time it is needed and caches it for the life of the process.
func (s *Store) resolveHost(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.host != "" {
		return s.host, nil
	}

	url := fmt.Sprintf("%s/indexes/%s", s.describeURL, s.indexName)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperr.Provider("failed to describe vector index", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", apperr.Provider(
			fmt.Sprintf("pinecone describe index error (status %d)", resp.StatusCode),
			fmt.Errorf("%s", string(bodyBytes)),
		)
	}

	var described struct {
		Host string `json:"host"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&described); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if described.Host == "" {
		return "", apperr.Provider("pinecone returned no host for index "+s.indexName, nil)
	}

	s.host = normalizeHost(described.Host)
	return s.host, nil
}

func normalizeHost(host string) string {
	if host == "" {
		return ""
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return strings.TrimRight(host, "/")
}

package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lucy-rag-be/internal/pkg/apperr"
	"lucy-rag-be/pkg/embedding"
)

const (
	inputTypeDocument = "search_document"
	inputTypeQuery    = "search_query"
)

type CohereProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type embedRequest struct {
	Model     string   `json:"model"`
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Message    string      `json:"message,omitempty"`
}

func NewCohereProvider(apiKey, model string) *CohereProvider {
	return &CohereProvider{
		apiKey:  apiKey,
		baseURL: "https://api.cohere.com/v1/embed",
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ embedding.Provider = (*CohereProvider)(nil)

func (p *CohereProvider) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return p.embed(ctx, texts, inputTypeDocument)
}

func (p *CohereProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := p.embed(ctx, []string{text}, inputTypeQuery)
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (p *CohereProvider) embed(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	if p.apiKey == "" {
		return nil, apperr.Configuration("COHERE_API_KEY missing from environment variables")
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	reqBody := embedRequest{
		Model:     p.model,
		Texts:     texts,
		InputType: inputType,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperr.Provider("embedding request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Provider(
			fmt.Sprintf("cohere api error (status %d)", resp.StatusCode),
			fmt.Errorf("%s", string(bodyBytes)),
		)
	}

	var cohereResp embedResponse
	if err := json.Unmarshal(bodyBytes, &cohereResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(cohereResp.Embeddings) != len(texts) {
		return nil, apperr.Provider(
			"cohere api returned unexpected embedding count",
			fmt.Errorf("got %d, want %d", len(cohereResp.Embeddings), len(texts)),
		)
	}

	return cohereResp.Embeddings, nil
}

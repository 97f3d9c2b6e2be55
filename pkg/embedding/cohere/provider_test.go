package cohere

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lucy-rag-be/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*CohereProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider := NewCohereProvider("test-key", "embed-english-v3.0")
	provider.baseURL = srv.URL
	return provider, srv
}

func TestEmbed_MissingKeyFailsFast(t *testing.T) {
	provider := NewCohereProvider("", "embed-english-v3.0")
	provider.baseURL = "http://127.0.0.1:1"

	_, err := provider.EmbedQuery(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
}

func TestEmbedDocuments_UsesDocumentMode(t *testing.T) {
	var captured embedRequest
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"embeddings":[[0.1,0.2],[0.3,0.4]]}`))
	})

	embeddings, err := provider.EmbedDocuments(context.Background(), []string{"chunk one", "chunk two"})
	require.NoError(t, err)

	assert.Equal(t, "search_document", captured.InputType)
	assert.Equal(t, []string{"chunk one", "chunk two"}, captured.Texts)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{0.1, 0.2}, embeddings[0])
}

func TestEmbedQuery_UsesQueryMode(t *testing.T) {
	var captured embedRequest
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"embeddings":[[0.5,0.6]]}`))
	})

	vector, err := provider.EmbedQuery(context.Background(), "what is this about?")
	require.NoError(t, err)

	// Query-mode embeddings are not interchangeable with document mode
	assert.Equal(t, "search_query", captured.InputType)
	assert.Equal(t, []float32{0.5, 0.6}, vector)
}

func TestEmbedDocuments_EmptyInput(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty input")
	})

	embeddings, err := provider.EmbedDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, embeddings)
}

func TestEmbed_SurfacesAPIError(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api token"}`))
	})

	_, err := provider.EmbedQuery(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, apperr.KindProvider, apperr.KindOf(err))
}

func TestEmbed_CountMismatch(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embeddings":[[0.1]]}`))
	})

	_, err := provider.EmbedDocuments(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected embedding count")
}

package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/voyant/core"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{IndexName: "travel"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(Config{APIKey: "key"})
	assert.ErrorIs(t, err, ErrMissingIndexName)
}

func TestQueryMapsMatches(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, "key", r.Header.Get("Api-Key"))

		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.TopK)
		assert.True(t, req.IncludeMetadata)

		json.NewEncoder(w).Encode(queryResponse{Matches: []queryMatch{
			{
				ID:    "paris_hotel_ritz",
				Score: 0.92,
				Metadata: map[string]any{
					"name":        "Ritz Paris",
					"type":        "hotel",
					"city":        "Paris",
					"description": "Historic luxury hotel",
					"tags":        []any{"luxury", "romantic"},
				},
			},
			{ID: "paris_city", Score: 0.81},
		}})
	})

	client, err := New(Config{APIKey: "key", IndexName: "travel", IndexHost: server.URL})
	require.NoError(t, err)

	matches, err := client.Query(context.Background(), []float32{0.1, 0.2}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "paris_hotel_ritz", matches[0].ID)
	assert.InDelta(t, 0.92, matches[0].Score, 1e-6)
	assert.Equal(t, "Ritz Paris", matches[0].Metadata.Name)
	assert.Equal(t, "hotel", matches[0].Metadata.Type)
	assert.Equal(t, []string{"luxury", "romantic"}, matches[0].Metadata.Tags)
	assert.Equal(t, core.MatchMetadata{}, matches[1].Metadata)
}

func TestQueryValidatesInput(t *testing.T) {
	client, err := New(Config{APIKey: "key", IndexName: "travel", IndexHost: "example.test"})
	require.NoError(t, err)

	_, err = client.Query(context.Background(), nil, 5)
	assert.ErrorIs(t, err, core.ErrEmptyVector)

	_, err = client.Query(context.Background(), []float32{0.1}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidTopK)
}

func TestQueryServerError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index unavailable", http.StatusServiceUnavailable)
	})

	client, err := New(Config{APIKey: "key", IndexName: "travel", IndexHost: server.URL})
	require.NoError(t, err)

	_, err = client.Query(context.Background(), []float32{0.1}, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestResolveHostFromControlPlane(t *testing.T) {
	var dataServer *httptest.Server
	dataServer = newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		json.NewEncoder(w).Encode(queryResponse{})
	})

	describes := 0
	controlServer := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		describes++
		require.Equal(t, "/indexes/travel", r.URL.Path)
		json.NewEncoder(w).Encode(indexDescription{Name: "travel", Host: dataServer.URL, Dimension: 1024})
	})

	client, err := New(Config{APIKey: "key", IndexName: "travel", BaseURL: controlServer.URL})
	require.NoError(t, err)

	_, err = client.Query(context.Background(), []float32{0.1}, 5)
	require.NoError(t, err)
	_, err = client.Query(context.Background(), []float32{0.2}, 5)
	require.NoError(t, err)

	// Host resolution happens once, not per query.
	assert.Equal(t, 1, describes)
}

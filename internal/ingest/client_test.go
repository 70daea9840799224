package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := &Client{
		HTTP:      ts.Client(),
		Key:       "test-key",
		UserAgent: "sportsdw/test",
		BaseURLs: map[string]string{
			SportSoccer: ts.URL,
		},
	}
	return c, ts
}

func TestFetch_DecodesEnvelope(t *testing.T) {
	var gotKey, gotPath, gotQuery string
	c, ts := testClient(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-apisports-key")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"get":     "fixtures",
			"errors":  []any{},
			"results": 2,
			"response": []map[string]any{
				{"fixture": map[string]any{"id": 1}},
				{"fixture": map[string]any{"id": 2}},
			},
		})
	})
	defer ts.Close()

	docs, err := c.Fetch(context.Background(), SportSoccer, "fixtures",
		map[string]string{"league": "39", "season": "2023"})
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "/fixtures", gotPath)
	assert.Equal(t, "league=39&season=2023", gotQuery)
	require.Len(t, docs, 2)
	fixture, ok := docs[0]["fixture"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), fixture["id"])
}

func TestFetch_SurfacesEnvelopeErrors(t *testing.T) {
	c, ts := testClient(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"get":      "fixtures",
			"errors":   map[string]string{"token": "Invalid API key."},
			"results":  0,
			"response": []any{},
		})
	})
	defer ts.Close()

	_, err := c.Fetch(context.Background(), SportSoccer, "fixtures", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token: Invalid API key.")
}

func TestFetch_HTTPError(t *testing.T) {
	c, ts := testClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer ts.Close()

	_, err := c.Fetch(context.Background(), SportSoccer, "leagues", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestFetch_UnknownSport(t *testing.T) {
	c := &Client{BaseURLs: defaultBaseURLs()}
	_, err := c.Fetch(context.Background(), "cricket", "leagues", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sport")
}

func TestEnvelopeError(t *testing.T) {
	assert.Empty(t, envelopeError(nil))
	assert.Empty(t, envelopeError(json.RawMessage(`{}`)))
	assert.Empty(t, envelopeError(json.RawMessage(`[]`)))
	assert.Equal(t, "token: bad", envelopeError(json.RawMessage(`{"token":"bad"}`)))
	assert.Equal(t, "plan limit; quota", envelopeError(json.RawMessage(`["plan limit","quota"]`)))
}

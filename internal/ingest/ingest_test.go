package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sportsdw/pkg/types"
)

type fakeStager struct {
	collections map[string][]map[string]any
	failOn      string
}

func newFakeStager() *fakeStager {
	return &fakeStager{collections: make(map[string][]map[string]any)}
}

func (f *fakeStager) Replace(_ context.Context, collection string, docs []map[string]any) (int, error) {
	if collection == f.failOn {
		return 0, errors.New("staging unavailable")
	}
	f.collections[collection] = docs
	return len(docs), nil
}

func envelopeJSON(docs []map[string]any) []byte {
	b, _ := json.Marshal(map[string]any{
		"get": "test", "errors": []any{}, "results": len(docs), "response": docs,
	})
	return b
}

func TestRun_StagesEachEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/leagues":
			w.Write(envelopeJSON([]map[string]any{{"league": map[string]any{"id": 39}}}))
		case "/fixtures":
			w.Write(envelopeJSON([]map[string]any{
				{"fixture": map[string]any{"id": 1}},
				{"fixture": map[string]any{"id": 2}},
			}))
		default:
			w.Write(envelopeJSON(nil))
		}
	}))
	defer ts.Close()

	client := &Client{
		HTTP:     ts.Client(),
		BaseURLs: map[string]string{SportSoccer: ts.URL},
	}
	stager := newFakeStager()
	plan := []Endpoint{
		{Sport: SportSoccer, Name: "leagues"},
		{Sport: SportSoccer, Name: "teams"},
		{Sport: SportSoccer, Name: "fixtures"},
	}

	var buf bytes.Buffer
	summary := Run(context.Background(), client, stager, plan, 0, &buf)

	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 3, summary.Staged)
	assert.Equal(t, 1, summary.Empty)
	assert.False(t, summary.HasFailures())

	require.Len(t, stager.collections["soccer_fixtures"], 2)
	require.Len(t, stager.collections["soccer_leagues"], 1)
	assert.NotContains(t, stager.collections, "soccer_teams")
	assert.Contains(t, buf.String(), "staged 2 docs into soccer_fixtures")
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/teams" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(envelopeJSON([]map[string]any{{"id": 1}}))
	}))
	defer ts.Close()

	client := &Client{
		HTTP:     ts.Client(),
		BaseURLs: map[string]string{SportBasketball: ts.URL},
	}
	stager := newFakeStager()
	stager.failOn = "basketball_players"
	plan := []Endpoint{
		{Sport: SportBasketball, Name: "teams"},
		{Sport: SportBasketball, Name: "players"},
		{Sport: SportBasketball, Name: "games"},
	}

	var buf bytes.Buffer
	summary := Run(context.Background(), client, stager, plan, 0, &buf)

	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 1, summary.Staged)
	assert.True(t, summary.HasFailures())
	assert.Contains(t, stager.collections, "basketball_games")
	assert.Contains(t, buf.String(), "Ingest summary")
}

func TestPlan_AllSports(t *testing.T) {
	plan := Plan(types.IngestConfig{}, SportSoccer, SportBasketball, SportFormula1)
	require.Len(t, plan, 14)

	assert.Equal(t, "leagues", plan[0].Name)
	assert.Equal(t, map[string]string{"league": "39", "season": "2023"}, plan[3].Params)

	// Basketball uses its cross-year season label.
	assert.Equal(t, "2023-2024", plan[5].Params["season"])

	// Nested endpoint names flatten into collection names.
	last := plan[len(plan)-1]
	assert.Equal(t, "rankings/teams", last.Name)
	assert.Equal(t, "f1_rankings_teams", last.Collection())
}

func TestPlan_OverridesAndUnknownSports(t *testing.T) {
	cfg := types.IngestConfig{Season: 2022, SoccerLeague: 140}
	plan := Plan(cfg, SportSoccer, "cricket")
	require.Len(t, plan, 4)
	assert.Equal(t, map[string]string{"league": "140", "season": "2022"}, plan[1].Params)
}

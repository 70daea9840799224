// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest fetches season statistics from the api-sports endpoints and
// stages the raw response documents for the warehouse migration.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/sportsdw/internal/httputil"
	"github.com/pdiddy/sportsdw/pkg/types"
)

// Supported sports. The keys double as staging collection prefixes.
const (
	SportSoccer     = "soccer"
	SportBasketball = "basketball"
	SportFormula1   = "f1"
)

// defaultBaseURLs maps each sport to its api-sports host.
func defaultBaseURLs() map[string]string {
	return map[string]string{
		SportSoccer:     "https://v3.football.api-sports.io",
		SportBasketball: "https://v1.basketball.api-sports.io",
		SportFormula1:   "https://v1.formula-1.api-sports.io",
	}
}

// Client calls the api-sports endpoints. BaseURLs is exposed so tests can
// substitute an httptest server per sport.
type Client struct {
	HTTP       *http.Client
	Key        string
	UserAgent  string
	BaseURLs   map[string]string
	MaxRetries int
}

// NewClient builds a client from the ingest configuration.
func NewClient(httpClient *http.Client, cfg types.IngestConfig) *Client {
	return &Client{
		HTTP:      httpClient,
		Key:       cfg.APIKey,
		UserAgent: cfg.UserAgent,
		BaseURLs:  defaultBaseURLs(),
	}
}

// envelope is the common api-sports response wrapper. The errors field is an
// empty array on success and an object or array of messages on failure, so it
// is kept raw and interpreted by envelopeError.
type envelope struct {
	Get      string           `json:"get"`
	Errors   json.RawMessage  `json:"errors"`
	Results  int              `json:"results"`
	Response []map[string]any `json:"response"`
}

// Fetch GETs one endpoint for a sport and returns the response documents.
// A populated errors field in the envelope is surfaced as an error even when
// the HTTP status is 200, which is how the API reports bad keys and quota.
func (c *Client) Fetch(ctx context.Context, sport, endpoint string, params map[string]string) ([]map[string]any, error) {
	base, ok := c.BaseURLs[sport]
	if !ok {
		return nil, fmt.Errorf("unknown sport %q", sport)
	}

	reqURL := base + "/" + endpoint
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		reqURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-apisports-key", c.Key)
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("%s/%s request: %w", sport, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s/%s returned HTTP %d", sport, endpoint, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing %s/%s response: %w", sport, endpoint, err)
	}

	if msg := envelopeError(env.Errors); msg != "" {
		return nil, fmt.Errorf("%s/%s API error: %s", sport, endpoint, msg)
	}

	return env.Response, nil
}

// envelopeError flattens the API's errors field into one message, or ""
// when it is empty ({} or []).
func envelopeError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		if len(obj) == 0 {
			return ""
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, obj[k]))
		}
		return strings.Join(parts, "; ")
	}

	var arr []any
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) == 0 {
			return ""
		}
		parts := make([]string, 0, len(arr))
		for _, v := range arr {
			parts = append(parts, fmt.Sprintf("%v", v))
		}
		return strings.Join(parts, "; ")
	}

	return ""
}

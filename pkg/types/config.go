// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared records and per-stage configuration for the
// sportsdw pipeline: scrape listings, ingest sports statistics, stage documents,
// migrate into the warehouse.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "sportsdw/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for the listing scraper stage.
type ScrapeConfig struct {
	// BaseURL is the marketplace front page the search flow starts from.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Keywords are the search terms to scrape, one result set each.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// MaxPages caps how many result pages are scraped per keyword (default 5).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// Headless controls whether the browser runs without a visible window.
	Headless bool `json:"headless" yaml:"headless"`

	// NavigationTimeout bounds each page load and element wait (default 30s).
	NavigationTimeout time.Duration `json:"navigation_timeout" yaml:"navigation_timeout"`

	// PageDelay is the pause between page navigations (default 2s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// IngestConfig holds settings for the sports API ingestion stage.
type IngestConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the api-sports endpoints.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Season is the season fetched for soccer and Formula 1 (e.g. 2023).
	Season int `json:"season" yaml:"season"`

	// BasketballSeason is the cross-year season label (e.g. "2023-2024").
	BasketballSeason string `json:"basketball_season" yaml:"basketball_season"`

	// SoccerLeague is the league id fetched for soccer (default 39, Premier League).
	SoccerLeague int `json:"soccer_league" yaml:"soccer_league"`

	// BasketballLeague is the league id fetched for basketball (default 12, NBA).
	BasketballLeague int `json:"basketball_league" yaml:"basketball_league"`

	// RequestDelay is the pause between consecutive endpoint fetches (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// StagingConfig holds settings for the document staging store.
type StagingConfig struct {
	// URI is the MongoDB connection string.
	URI string `json:"uri" yaml:"uri"`

	// Database is the staging database name (default "sports_db").
	Database string `json:"database" yaml:"database"`
}

// WarehouseDriver identifies the relational backend for the star schema.
type WarehouseDriver string

const (
	DriverPostgres WarehouseDriver = "postgres"
	DriverSQLite   WarehouseDriver = "sqlite3"
)

// WarehouseConfig holds settings for the star-schema warehouse.
type WarehouseConfig struct {
	// Driver selects the relational backend: postgres or sqlite3.
	Driver WarehouseDriver `json:"driver" yaml:"driver"`

	// DSN is the connection string: a Postgres URL or a SQLite file path.
	DSN string `json:"dsn" yaml:"dsn"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Scrape    ScrapeConfig    `json:"scrape" yaml:"scrape"`
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Staging   StagingConfig   `json:"staging" yaml:"staging"`
	Warehouse WarehouseConfig `json:"warehouse" yaml:"warehouse"`
}

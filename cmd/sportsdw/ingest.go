// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sportsdw/internal/ingest"
	"github.com/pdiddy/sportsdw/internal/secrets"
	"github.com/pdiddy/sportsdw/pkg/types"
)

var allSports = []string{ingest.SportSoccer, ingest.SportBasketball, ingest.SportFormula1}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch api-sports season data into the staging store",
	Long: `Ingest fetches leagues, teams, players, and match data from the
api-sports endpoints for soccer, basketball, and Formula 1, and replaces the
matching staging collections with the raw response documents. The API key is
read from --api-key or .secrets/apisports-key.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("sport", "all", "sport to ingest: all, soccer, basketball, or f1")
	ingestCmd.Flags().String("api-key", "", "api-sports API key (default from .secrets/apisports-key)")
	ingestCmd.Flags().Int("season", 0, "season for soccer and Formula 1 (default 2023)")
	ingestCmd.Flags().String("basketball-season", "", "cross-year basketball season label (default 2023-2024)")
	ingestCmd.Flags().Int("soccer-league", 0, "soccer league id (default 39, Premier League)")
	ingestCmd.Flags().Int("basketball-league", 0, "basketball league id (default 12, NBA)")
	ingestCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	ingestCmd.Flags().Duration("delay", 0, "delay between consecutive endpoint fetches (default 1s)")
	ingestCmd.Flags().String("mongo-uri", "", "MongoDB connection string (default from .secrets/mongo-uri or localhost)")
	ingestCmd.Flags().String("database", defaultDatabase, "staging database name")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	sportFlag, _ := cmd.Flags().GetString("sport")
	sports, err := parseSports(sportFlag)
	if err != nil {
		return err
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = secrets.Default(loadedSecrets, "apisports-key", apiKey)
	if apiKey == "" {
		return fmt.Errorf("api-sports key required: pass --api-key or create .secrets/apisports-key")
	}

	season, _ := cmd.Flags().GetInt("season")
	basketballSeason, _ := cmd.Flags().GetString("basketball-season")
	soccerLeague, _ := cmd.Flags().GetInt("soccer-league")
	basketballLeague, _ := cmd.Flags().GetInt("basketball-league")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}

	cfg := types.IngestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey:           apiKey,
		Season:           season,
		BasketballSeason: basketballSeason,
		SoccerLeague:     soccerLeague,
		BasketballLeague: basketballLeague,
		RequestDelay:     delay,
	}

	ctx := context.Background()
	store, err := openStaging(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	client := ingest.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg)
	plan := ingest.Plan(cfg, sports...)

	summary := ingest.Run(ctx, client, store, plan, cfg.RequestDelay, os.Stdout)
	if summary.HasFailures() {
		return fmt.Errorf("%d endpoint(s) failed ingestion", summary.Failed)
	}
	return nil
}

// parseSports expands "all" and validates a comma-separated sport list.
func parseSports(s string) ([]string, error) {
	if s == "" || s == "all" {
		return allSports, nil
	}
	var sports []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		switch part {
		case ingest.SportSoccer, ingest.SportBasketball, ingest.SportFormula1:
			sports = append(sports, part)
		default:
			return nil, fmt.Errorf("unknown sport %q: use all, soccer, basketball, or f1", part)
		}
	}
	return sports, nil
}

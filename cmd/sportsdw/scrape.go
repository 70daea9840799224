// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sportsdw/internal/scrape"
	"github.com/pdiddy/sportsdw/internal/secrets"
	"github.com/pdiddy/sportsdw/internal/staging"
	"github.com/pdiddy/sportsdw/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "sportsdw/0.1"

	defaultMarketplaceURL = "https://www.mercadolibre.com.co"
	defaultMongoURI       = "mongodb://localhost:27017"
	defaultDatabase       = "sports_db"
	defaultProductColl    = "products"
)

var defaultKeywords = []string{"computador", "celular", "televisor"}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape marketplace product listings into the staging store",
	Long: `Scrape drives a headless browser through marketplace keyword searches,
extracts title, price, and rating from each result card, and stores the
listings in the MongoDB staging store. Use --export to also write the
listings to a YAML file.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringSlice("keywords", nil, "search keywords (default computador,celular,televisor)")
	scrapeCmd.Flags().String("base-url", defaultMarketplaceURL, "marketplace front page to start from")
	scrapeCmd.Flags().Int("max-pages", 0, "maximum result pages per keyword (default 5)")
	scrapeCmd.Flags().Bool("headless", true, "run the browser without a visible window")
	scrapeCmd.Flags().Duration("timeout", 0, "navigation timeout per page (default 30s)")
	scrapeCmd.Flags().Duration("delay", 0, "delay between page navigations (default 2s)")
	scrapeCmd.Flags().String("mongo-uri", "", "MongoDB connection string (default from .secrets/mongo-uri or localhost)")
	scrapeCmd.Flags().String("database", defaultDatabase, "staging database name")
	scrapeCmd.Flags().String("collection", defaultProductColl, "staging collection for listings")
	scrapeCmd.Flags().String("export", "", "also write listings to this YAML file")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	baseURL, _ := cmd.Flags().GetString("base-url")
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	headless, _ := cmd.Flags().GetBool("headless")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")

	cfg := types.ScrapeConfig{
		BaseURL:           baseURL,
		Keywords:          keywords,
		MaxPages:          maxPages,
		Headless:          headless,
		NavigationTimeout: timeout,
		PageDelay:         delay,
	}

	session, err := scrape.NewSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := context.Background()
	products, result := scrape.Run(ctx, session, cfg, os.Stdout)

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := scrape.ExportYAML(products, exportPath); err != nil {
			return err
		}
		fmt.Printf("Exported %d listings to %s\n", len(products), exportPath)
	}

	if len(products) > 0 {
		store, err := openStaging(ctx, cmd)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		collection, _ := cmd.Flags().GetString("collection")
		n, err := store.InsertProducts(ctx, collection, products)
		if err != nil {
			return err
		}
		fmt.Printf("Staged %d listings into %s\n", n, collection)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d keyword(s) failed scraping", result.Failed)
	}
	return nil
}

// openStaging connects to the staging store using the shared mongo flags.
// The connection string resolves flag, then .secrets/mongo-uri, then localhost.
func openStaging(ctx context.Context, cmd *cobra.Command) (*staging.Store, error) {
	uri, _ := cmd.Flags().GetString("mongo-uri")
	uri = secrets.Default(loadedSecrets, "mongo-uri", uri)
	if uri == "" {
		uri = defaultMongoURI
	}
	database, _ := cmd.Flags().GetString("database")

	return staging.Open(ctx, types.StagingConfig{URI: uri, Database: database})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sportsdw/internal/staging"
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Inspect and manage the staging store (report, clear, export)",
	Long: `Stage works against the MongoDB staging store that scrape and ingest
write to. Use subcommands to summarize scraped listings, drop collections, or
export a collection to YAML.`,
}

// --- report subcommand ---

var stageReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the scraped listings in the staging store",
	Long: `Report aggregates the scraped listings collection: listing counts per
keyword, price statistics per keyword, and a sample of the best-rated
listings.`,
	RunE: runStageReport,
}

func runStageReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStaging(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	collection, _ := cmd.Flags().GetString("collection")
	limit, _ := cmd.Flags().GetInt64("top")

	total, err := store.CountListings(ctx, collection)
	if err != nil {
		return err
	}
	counts, err := store.ListingsByKeyword(ctx, collection)
	if err != nil {
		return err
	}
	stats, err := store.PriceStatsByKeyword(ctx, collection)
	if err != nil {
		return err
	}
	rated, err := store.TopRated(ctx, collection, limit)
	if err != nil {
		return err
	}

	staging.WriteReport(os.Stdout, total, counts, stats, rated)
	return nil
}

// --- clear subcommand ---

var stageClearCmd = &cobra.Command{
	Use:   "clear [collections...]",
	Short: "Drop staging collections",
	Long: `Clear drops the named staging collections. With no arguments it drops
the listings collection named by --collection.`,
	RunE: runStageClear,
}

func runStageClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStaging(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	collections := args
	if len(collections) == 0 {
		collection, _ := cmd.Flags().GetString("collection")
		collections = []string{collection}
	}

	n, err := store.Clear(ctx, collections...)
	if err != nil {
		return err
	}
	fmt.Printf("Dropped %d collection(s)\n", n)
	return nil
}

// --- export subcommand ---

var stageExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a staging collection to YAML",
	RunE:  runStageExport,
}

func runStageExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStaging(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	collection, _ := cmd.Flags().GetString("collection")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = collection + ".yaml"
	}

	if err := store.ExportYAML(ctx, collection, out); err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", collection, out)
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	stageCmd.PersistentFlags().String("mongo-uri", "", "MongoDB connection string (default from .secrets/mongo-uri or localhost)")
	stageCmd.PersistentFlags().String("database", defaultDatabase, "staging database name")
	stageCmd.PersistentFlags().String("collection", defaultProductColl, "staging collection to operate on")

	stageReportCmd.Flags().Int64("top", 10, "number of best-rated listings to sample")
	stageExportCmd.Flags().String("out", "", "output file (default <collection>.yaml)")

	stageCmd.AddCommand(stageReportCmd)
	stageCmd.AddCommand(stageClearCmd)
	stageCmd.AddCommand(stageExportCmd)

	rootCmd.AddCommand(stageCmd)
}

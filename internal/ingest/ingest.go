// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Stager is the staging-store surface Run needs. *staging.Store implements it.
type Stager interface {
	Replace(ctx context.Context, collection string, docs []map[string]any) (int, error)
}

// Summary holds the outcome of an ingestion run.
type Summary struct {
	Fetched int
	Staged  int
	Empty   int
	Failed  int
}

// HasFailures reports whether any endpoints failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Run fetches every planned endpoint in order and replaces the matching
// staging collection with the response documents. Empty responses leave the
// staging store untouched. It continues after per-endpoint failures and
// applies a delay between consecutive fetches.
func Run(ctx context.Context, client *Client, stager Stager, plan []Endpoint, delay time.Duration, w io.Writer) Summary {
	var summary Summary

	for i, e := range plan {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				fmt.Fprintf(w, "aborted: %v\n", ctx.Err())
				return summary
			case <-time.After(delay):
			}
		}

		fmt.Fprintf(w, "fetching %s -> %s\n", e.Sport, e.Name)

		docs, err := client.Fetch(ctx, e.Sport, e.Name, e.Params)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s/%s (%v)\n", e.Sport, e.Name, err)
			summary.Failed++
			continue
		}
		summary.Fetched++

		if len(docs) == 0 {
			fmt.Fprintf(w, "  no data for %s/%s\n", e.Sport, e.Name)
			summary.Empty++
			continue
		}

		n, err := stager.Replace(ctx, e.Collection(), docs)
		if err != nil {
			fmt.Fprintf(w, "failed:  staging %s (%v)\n", e.Collection(), err)
			summary.Failed++
			continue
		}
		summary.Staged += n
		fmt.Fprintf(w, "  staged %d docs into %s\n", n, e.Collection())
	}

	fmt.Fprintf(w, "\nIngest summary: %d endpoint(s) fetched, %d docs staged, %d empty, %d failed\n",
		summary.Fetched, summary.Staged, summary.Empty, summary.Failed)
	return summary
}

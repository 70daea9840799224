// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package warehouse

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// DocumentSource is the staging-store surface the migration reads from.
// *staging.Store implements it.
type DocumentSource interface {
	Collections(ctx context.Context, prefix string) ([]string, error)
	Documents(ctx context.Context, collection string) ([]map[string]any, error)
}

// Summary holds counts from a migration run.
type Summary struct {
	Collections int
	Migrated    int
	Skipped     int
	Failed      int
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Migrated + s.Skipped + s.Failed
}

// HasFailures reports whether any documents failed to migrate.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) add(o Summary) {
	s.Collections += o.Collections
	s.Migrated += o.Migrated
	s.Skipped += o.Skipped
	s.Failed += o.Failed
}

// Migrate moves the staged documents for the requested sports into the star
// schema. Each document loads in its own transaction; a document that cannot
// be migrated is reported and the run continues. Because dimensions upsert on
// natural keys and facts upsert on their own natural keys, running Migrate
// again over the same staging data does not duplicate rows.
func (s *Store) Migrate(ctx context.Context, src DocumentSource, sports []string, w io.Writer) (Summary, error) {
	var total Summary
	for _, sport := range sports {
		var (
			sum Summary
			err error
		)
		switch sport {
		case "soccer":
			sum, err = s.migrateSoccer(ctx, src, w)
		case "basketball":
			sum, err = s.migrateBasketball(ctx, src, w)
		case "f1":
			sum, err = s.migrateF1(ctx, src, w)
		default:
			return total, fmt.Errorf("unknown sport %q", sport)
		}
		if err != nil {
			return total, err
		}
		total.add(sum)
	}

	fmt.Fprintf(w, "\nMigration summary: %d collection(s), %d migrated, %d skipped, %d failed\n",
		total.Collections, total.Migrated, total.Skipped, total.Failed)
	return total, nil
}

// collectionsMatching lists staged collections under prefix whose name
// contains any of the given fragments.
func collectionsMatching(ctx context.Context, src DocumentSource, prefix string, fragments ...string) ([]string, error) {
	names, err := src.Collections(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing %s collections: %w", strings.TrimSuffix(prefix, "_"), err)
	}
	var out []string
	for _, name := range names {
		for _, frag := range fragments {
			if strings.Contains(name, frag) {
				out = append(out, name)
				break
			}
		}
	}
	return out, nil
}

// migrateDocs runs load over every document of every collection, one
// transaction per document, and accumulates the per-document outcomes.
func (s *Store) migrateDocs(ctx context.Context, src DocumentSource, collections []string, w io.Writer, load func(context.Context, dbtx, map[string]any) (bool, error)) (Summary, error) {
	var sum Summary
	for _, coll := range collections {
		docs, err := src.Documents(ctx, coll)
		if err != nil {
			return sum, fmt.Errorf("reading collection %s: %w", coll, err)
		}
		fmt.Fprintf(w, "migrating %s (%d docs)\n", coll, len(docs))
		sum.Collections++

		for _, doc := range docs {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			default:
			}

			loaded, err := s.loadOne(ctx, doc, load)
			switch {
			case err != nil:
				fmt.Fprintf(w, "failed:  %s doc (%v)\n", coll, err)
				sum.Failed++
			case !loaded:
				sum.Skipped++
			default:
				sum.Migrated++
			}
		}
	}
	return sum, nil
}

func (s *Store) loadOne(ctx context.Context, doc map[string]any, load func(context.Context, dbtx, map[string]any) (bool, error)) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	loaded, err := load(ctx, tx, doc)
	if err != nil {
		return false, err
	}
	return loaded, tx.Commit()
}

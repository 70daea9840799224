// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package staging is the MongoDB document store between the acquisition
// stages (scrape, ingest) and the warehouse migration. Collections are
// replaced wholesale per batch run; documents keep the raw upstream shape.
package staging

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sportsdw/pkg/types"
)

// Store wraps the staging database connection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the staging database and verifies the connection.
func Open(ctx context.Context, cfg types.StagingConfig) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to staging store: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging staging store: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Replace clears a collection and inserts docs, returning the inserted count.
// An empty docs slice only clears.
func (s *Store) Replace(ctx context.Context, collection string, docs []map[string]any) (int, error) {
	coll := s.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return 0, fmt.Errorf("clearing %s: %w", collection, err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	payload := make([]any, len(docs))
	for i, d := range docs {
		payload[i] = d
	}
	res, err := coll.InsertMany(ctx, payload)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return len(res.InsertedIDs), nil
}

// InsertProducts appends scraped products to a collection. Scrape runs
// accumulate rather than replace so multiple keyword batches coexist.
func (s *Store) InsertProducts(ctx context.Context, collection string, products []types.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	payload := make([]any, len(products))
	for i, p := range products {
		payload[i] = p
	}
	res, err := s.db.Collection(collection).InsertMany(ctx, payload)
	if err != nil {
		return 0, fmt.Errorf("inserting products into %s: %w", collection, err)
	}
	return len(res.InsertedIDs), nil
}

// Collections lists staged collection names with the given prefix, sorted.
// An empty prefix lists everything.
func (s *Store) Collections(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Documents reads a whole collection into plain nested maps. The Mongo _id
// is dropped: staged documents are identified by their upstream api ids.
func (s *Store) Documents(ctx context.Context, collection string) ([]map[string]any, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", collection, err)
	}

	docs := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		delete(r, "_id")
		docs = append(docs, normalizeMap(r))
	}
	return docs, nil
}

// Clear drops the named collections, or every collection when none are given.
// It returns the number of collections dropped.
func (s *Store) Clear(ctx context.Context, collections ...string) (int, error) {
	if len(collections) == 0 {
		all, err := s.Collections(ctx, "")
		if err != nil {
			return 0, err
		}
		collections = all
	}

	dropped := 0
	for _, name := range collections {
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return dropped, fmt.Errorf("dropping %s: %w", name, err)
		}
		dropped++
	}
	return dropped, nil
}

// ExportYAML dumps a staged collection to a YAML file.
func (s *Store) ExportYAML(ctx context.Context, collection, path string) error {
	docs, err := s.Documents(ctx, collection)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", collection, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package staging

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// KeywordCount is one row of the listings-per-keyword report.
type KeywordCount struct {
	Keyword string `bson:"_id"`
	Count   int64  `bson:"count"`
}

// PriceStats summarizes listing prices for one keyword.
type PriceStats struct {
	Keyword string  `bson:"_id"`
	Count   int64   `bson:"count"`
	Avg     float64 `bson:"avg"`
	Min     float64 `bson:"min"`
	Max     float64 `bson:"max"`
}

// RatedListing is a sample row of listings that carry a review rating.
type RatedListing struct {
	Title   string `bson:"title"`
	Keyword string `bson:"keyword"`
	Price   string `bson:"price"`
	Rating  string `bson:"rating"`
}

// CountListings returns the total number of staged listings.
func (s *Store) CountListings(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", collection, err)
	}
	return n, nil
}

// ListingsByKeyword groups staged listings by search keyword, most frequent first.
func (s *Store) ListingsByKeyword(ctx context.Context, collection string) ([]KeywordCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$keyword"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cur, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating keyword counts: %w", err)
	}
	var rows []KeywordCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding keyword counts: %w", err)
	}
	return rows, nil
}

// PriceStatsByKeyword computes average, minimum, and maximum listing price
// per keyword over the parsed price value, highest average first. Listings
// whose price could not be parsed are left out.
func (s *Store) PriceStatsByKeyword(ctx context.Context, collection string) ([]PriceStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "price_value", Value: bson.D{{Key: "$gt", Value: 0}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$keyword"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$price_value"}}},
			{Key: "min", Value: bson.D{{Key: "$min", Value: "$price_value"}}},
			{Key: "max", Value: bson.D{{Key: "$max", Value: "$price_value"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avg", Value: -1}}}},
	}

	cur, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating price stats: %w", err)
	}
	var rows []PriceStats
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding price stats: %w", err)
	}
	return rows, nil
}

// TopRated returns up to limit listings that carry a review rating.
func (s *Store) TopRated(ctx context.Context, collection string, limit int64) ([]RatedListing, error) {
	filter := bson.D{{Key: "rating", Value: bson.D{{Key: "$nin", Value: bson.A{"", nil}}}}}
	opts := options.Find().SetLimit(limit)

	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("finding rated listings: %w", err)
	}
	var rows []RatedListing
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding rated listings: %w", err)
	}
	return rows, nil
}

// WriteReport renders the staging report from already-queried rows.
func WriteReport(w io.Writer, total int64, counts []KeywordCount, stats []PriceStats, rated []RatedListing) {
	fmt.Fprintf(w, "Staged listings: %d\n", total)

	if len(counts) > 0 {
		fmt.Fprintln(w, "\nListings by keyword:")
		for _, c := range counts {
			fmt.Fprintf(w, "  %-20s %d\n", c.Keyword, c.Count)
		}
	}

	if len(stats) > 0 {
		fmt.Fprintln(w, "\nPrice analysis by keyword:")
		for _, s := range stats {
			fmt.Fprintf(w, "  %-20s avg %.0f  range %.0f - %.0f  (%d priced)\n",
				s.Keyword, s.Avg, s.Min, s.Max, s.Count)
		}
	}

	if len(rated) > 0 {
		fmt.Fprintf(w, "\nListings with ratings (sample of %d):\n", len(rated))
		for _, r := range rated {
			title := r.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			fmt.Fprintf(w, "  %-12s %-40s rating %s\n", r.Keyword, title, r.Rating)
		}
	}
}

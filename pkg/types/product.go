// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Product is one listing card scraped from a marketplace results page.
// Price holds the raw display text; PriceValue is the parsed amount, nil when
// the card showed no price.
type Product struct {
	Title      string    `json:"title" yaml:"title" bson:"title"`
	URL        string    `json:"url" yaml:"url" bson:"url"`
	Price      string    `json:"price,omitempty" yaml:"price,omitempty" bson:"price,omitempty"`
	PriceValue *float64  `json:"price_value,omitempty" yaml:"price_value,omitempty" bson:"price_value,omitempty"`
	Rating     string    `json:"rating,omitempty" yaml:"rating,omitempty" bson:"rating,omitempty"`
	Keyword    string    `json:"keyword" yaml:"keyword" bson:"keyword"`
	Page       int       `json:"page" yaml:"page" bson:"page"`
	ScrapedAt  time.Time `json:"scraped_at" yaml:"scraped_at" bson:"scraped_at"`
}

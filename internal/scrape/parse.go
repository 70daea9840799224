// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape drives a browser over a marketplace search flow and extracts
// product listing cards from the rendered results pages.
package scrape

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/sportsdw/pkg/types"
)

// Listing card selectors.
const (
	cardSelector   = "li.ui-search-layout__item"
	titleSelector  = "a.poly-component__title"
	priceSelector  = ".poly-component__price .andes-money-amount__fraction"
	ratingSelector = ".poly-component__reviews .poly-reviews__rating"
)

// ParseListing extracts product cards from a rendered results page and tags
// each product with the keyword and page number it was scraped from. Cards
// without a title link (ad shells, separators) are skipped; a missing price
// or rating leaves the field empty.
func ParseListing(html, keyword string, page int) ([]types.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	now := time.Now().UTC()
	var products []types.Product

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		link := card.Find(titleSelector).First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}

		p := types.Product{
			Title:     title,
			URL:       link.AttrOr("href", ""),
			Price:     strings.TrimSpace(card.Find(priceSelector).First().Text()),
			Rating:    strings.TrimSpace(card.Find(ratingSelector).First().Text()),
			Keyword:   keyword,
			Page:      page,
			ScrapedAt: now,
		}
		if v, ok := ParsePrice(p.Price); ok {
			p.PriceValue = &v
		}

		products = append(products, p)
	})

	return products, nil
}

// ParsePrice converts a display price to its numeric value. The site formats
// amounts with dots as thousands separators and a comma as the decimal mark
// ("1.234.567,89"); an optional leading currency sign is tolerated.
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	clean := strings.TrimSpace(strings.TrimPrefix(text, "$"))
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

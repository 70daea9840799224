// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sportsdw/pkg/types"
)

const defaultMaxPages = 5

// Pager is the browser-facing surface Run needs: start a keyword search,
// read the rendered page, and advance pagination. *Session implements it.
type Pager interface {
	Search(ctx context.Context, keyword string) error
	HTML() (string, error)
	NextPage(ctx context.Context) (bool, error)
}

// Result holds the outcome of a scrape run.
type Result struct {
	Scraped int
	Pages   int
	Failed  int
}

// HasFailures reports whether any keywords failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run scrapes up to cfg.MaxPages result pages for each configured keyword,
// printing per-page status. It continues after keyword-level failures and
// returns everything scraped plus a summary.
func Run(ctx context.Context, pager Pager, cfg types.ScrapeConfig, w io.Writer) ([]types.Product, Result) {
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	var all []types.Product
	var result Result

	for i, keyword := range cfg.Keywords {
		if i > 0 && !sleep(ctx, cfg.PageDelay) {
			break
		}

		fmt.Fprintf(w, "searching %q\n", keyword)
		if err := pager.Search(ctx, keyword); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", keyword, err)
			result.Failed++
			continue
		}

		for page := 1; page <= maxPages; page++ {
			html, err := pager.HTML()
			if err != nil {
				fmt.Fprintf(w, "failed:  %s page %d (%v)\n", keyword, page, err)
				result.Failed++
				break
			}

			products, err := ParseListing(html, keyword, page)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s page %d (%v)\n", keyword, page, err)
				result.Failed++
				break
			}

			fmt.Fprintf(w, "  page %d: %d listings\n", page, len(products))
			all = append(all, products...)
			result.Pages++
			result.Scraped += len(products)

			if len(products) == 0 || page == maxPages {
				break
			}

			ok, err := pager.NextPage(ctx)
			if err != nil {
				fmt.Fprintf(w, "  pagination stopped: %v\n", err)
				break
			}
			if !ok {
				fmt.Fprintf(w, "  no more pages after page %d\n", page)
				break
			}
			if !sleep(ctx, cfg.PageDelay) {
				break
			}
		}
	}

	fmt.Fprintf(w, "\nScrape summary: %d listings over %d page(s), %d keyword(s) failed\n",
		result.Scraped, result.Pages, result.Failed)
	return all, result
}

// ExportYAML writes scraped products to a YAML file.
func ExportYAML(products []types.Product, path string) error {
	data, err := yaml.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshaling products: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// sleep waits for d unless the context ends first; it reports whether the
// caller should keep going.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

package scrape

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sportsdw/pkg/types"
)

// fakePager serves canned result pages per keyword.
type fakePager struct {
	pages     map[string][]string // keyword -> page HTML in order
	searchErr map[string]error
	keyword   string
	index     int
}

func (f *fakePager) Search(_ context.Context, keyword string) error {
	if err := f.searchErr[keyword]; err != nil {
		return err
	}
	f.keyword = keyword
	f.index = 0
	return nil
}

func (f *fakePager) HTML() (string, error) {
	pages := f.pages[f.keyword]
	if f.index >= len(pages) {
		return "<html></html>", nil
	}
	return pages[f.index], nil
}

func (f *fakePager) NextPage(context.Context) (bool, error) {
	if f.index+1 >= len(f.pages[f.keyword]) {
		return false, nil
	}
	f.index++
	return true, nil
}

func cardHTML(title, price string) string {
	return fmt.Sprintf(`<li class="ui-search-layout__item">
		<a class="poly-component__title" href="https://example.com/%s">%s</a>
		<div class="poly-component__price"><span class="andes-money-amount__fraction">%s</span></div>
	</li>`, title, title, price)
}

func pageHTML(cards ...string) string {
	var buf bytes.Buffer
	buf.WriteString("<html><body><ol>")
	for _, c := range cards {
		buf.WriteString(c)
	}
	buf.WriteString("</ol></body></html>")
	return buf.String()
}

func TestRun_MultipleKeywordsAndPages(t *testing.T) {
	pager := &fakePager{
		pages: map[string][]string{
			"computador": {
				pageHTML(cardHTML("pc-1", "1.000.000"), cardHTML("pc-2", "2.000.000")),
				pageHTML(cardHTML("pc-3", "3.000.000")),
			},
			"celular": {
				pageHTML(cardHTML("cel-1", "800.000")),
			},
		},
	}
	cfg := types.ScrapeConfig{
		Keywords: []string{"computador", "celular"},
		MaxPages: 5,
	}

	var out bytes.Buffer
	products, result := Run(context.Background(), pager, cfg, &out)

	assert.Equal(t, 4, result.Scraped)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 0, result.Failed)
	assert.False(t, result.HasFailures())
	require.Len(t, products, 4)

	// Products carry keyword and page tags.
	assert.Equal(t, "computador", products[0].Keyword)
	assert.Equal(t, 1, products[0].Page)
	assert.Equal(t, "computador", products[2].Keyword)
	assert.Equal(t, 2, products[2].Page)
	assert.Equal(t, "celular", products[3].Keyword)

	assert.Contains(t, out.String(), "Scrape summary: 4 listings over 3 page(s)")
}

func TestRun_MaxPagesCapsPagination(t *testing.T) {
	pager := &fakePager{
		pages: map[string][]string{
			"televisor": {
				pageHTML(cardHTML("tv-1", "900.000")),
				pageHTML(cardHTML("tv-2", "950.000")),
				pageHTML(cardHTML("tv-3", "990.000")),
			},
		},
	}
	cfg := types.ScrapeConfig{Keywords: []string{"televisor"}, MaxPages: 2}

	var out bytes.Buffer
	products, result := Run(context.Background(), pager, cfg, &out)

	assert.Equal(t, 2, result.Pages)
	assert.Len(t, products, 2)
}

func TestRun_ContinuesAfterKeywordFailure(t *testing.T) {
	pager := &fakePager{
		pages: map[string][]string{
			"celular": {pageHTML(cardHTML("cel-1", "800.000"))},
		},
		searchErr: map[string]error{"computador": fmt.Errorf("timeout")},
	}
	cfg := types.ScrapeConfig{Keywords: []string{"computador", "celular"}, MaxPages: 1}

	var out bytes.Buffer
	products, result := Run(context.Background(), pager, cfg, &out)

	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())
	assert.Len(t, products, 1)
	assert.Contains(t, out.String(), "failed:  computador")
}

func TestExportYAML_RoundTrip(t *testing.T) {
	price := 1589900.0
	products := []types.Product{
		{Title: "Portatil", URL: "https://example.com/1", Price: "1.589.900", PriceValue: &price, Keyword: "computador", Page: 1},
	}

	path := filepath.Join(t.TempDir(), "listings.yaml")
	require.NoError(t, ExportYAML(products, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []types.Product
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Portatil", got[0].Title)
	require.NotNil(t, got[0].PriceValue)
	assert.Equal(t, price, *got[0].PriceValue)
}

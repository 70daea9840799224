package staging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeValue_NestedBSON(t *testing.T) {
	doc := bson.M{
		"fixture": bson.D{
			{Key: "id", Value: int64(868847)},
			{Key: "venue", Value: bson.D{{Key: "name", Value: "Anfield"}}},
		},
		"statistics": bson.A{
			bson.D{{Key: "type", Value: "Ball Possession"}},
		},
	}

	got := normalizeMap(doc)

	fixture, ok := got["fixture"].(map[string]any)
	assert.True(t, ok, "bson.D should become a map")
	assert.Equal(t, int64(868847), fixture["id"])

	venue, ok := fixture["venue"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Anfield", venue["name"])

	stats, ok := got["statistics"].([]any)
	assert.True(t, ok, "bson.A should become a slice")
	entry, ok := stats[0].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Ball Possession", entry["type"])
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf,
		42,
		[]KeywordCount{{Keyword: "computador", Count: 30}, {Keyword: "celular", Count: 12}},
		[]PriceStats{{Keyword: "computador", Count: 28, Avg: 1500000, Min: 400000, Max: 4200000}},
		[]RatedListing{{Title: "Portatil Lenovo IdeaPad 3 con una descripcion muy larga", Keyword: "computador", Rating: "4.7"}},
	)

	out := buf.String()
	assert.Contains(t, out, "Staged listings: 42")
	assert.Contains(t, out, "computador")
	assert.Contains(t, out, "avg 1500000")
	assert.Contains(t, out, "range 400000 - 4200000")
	// Long titles are truncated in the sample.
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "rating 4.7")
}

func TestWriteReport_EmptySectionsOmitted(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, 0, nil, nil, nil)

	out := buf.String()
	assert.Contains(t, out, "Staged listings: 0")
	assert.NotContains(t, out, "Price analysis")
	assert.NotContains(t, out, "ratings")
}

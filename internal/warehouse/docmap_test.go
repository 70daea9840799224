package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_WalksNestedMaps(t *testing.T) {
	doc := map[string]any{
		"fixture": map[string]any{
			"venue": map[string]any{"name": "Anfield"},
		},
	}

	assert.Equal(t, "Anfield", str(doc, "fixture", "venue", "name"))
	assert.Empty(t, str(doc, "fixture", "venue", "city"))
	assert.Empty(t, str(doc, "fixture", "referee", "name"), "walking through a missing map yields empty")
}

func TestI64_AcceptsStagedNumericTypes(t *testing.T) {
	doc := map[string]any{
		"json":   float64(868847),
		"bson32": int32(39),
		"bson64": int64(2023),
		"quoted": "12",
		"text":   "Premier League",
	}

	for key, want := range map[string]int64{
		"json": 868847, "bson32": 39, "bson64": 2023, "quoted": 12,
	} {
		got, ok := i64(doc, key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := i64(doc, "text")
	assert.False(t, ok)
	_, ok = i64(doc, "missing")
	assert.False(t, ok)
}

func TestF64_ParsesPercentStrings(t *testing.T) {
	doc := map[string]any{"home": "55%", "away": "45", "total": float64(2.5)}

	v, ok := f64(doc, "home")
	assert.True(t, ok)
	assert.Equal(t, 55.0, v)

	v, ok = f64(doc, "away")
	assert.True(t, ok)
	assert.Equal(t, 45.0, v)

	v, ok = f64(doc, "total")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2023-08-11T19:00:00+00:00": "2023-08-11",
		"2023-08-11T19:00:00Z":      "2023-08-11",
		"2023-08-11T19:00:00":       "2023-08-11",
		"2023-08-11":                "2023-08-11",
	}
	for in, want := range cases {
		day, ok := parseDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, day.Format("2006-01-02"), in)
	}

	_, ok := parseDate("")
	assert.False(t, ok)
	_, ok = parseDate("next friday")
	assert.False(t, ok)
}

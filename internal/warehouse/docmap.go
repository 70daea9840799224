// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package warehouse

import (
	"strconv"
	"strings"
	"time"
)

// Helpers for walking the semi-structured staging documents. Values arrive
// either straight from JSON decoding (float64 numbers) or through the BSON
// staging round trip (int32, int64, float64), so the numeric accessors accept
// all of those.

// get walks nested maps and returns the value at the key path, or nil when
// any step is missing or not a map.
func get(doc map[string]any, keys ...string) any {
	var cur any = doc
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

// str returns the string at the key path, or "" when absent or not a string.
func str(doc map[string]any, keys ...string) string {
	s, _ := get(doc, keys...).(string)
	return s
}

// i64 returns the integer at the key path. Numeric strings like "39" are
// accepted because some endpoints quote their identifiers.
func i64(doc map[string]any, keys ...string) (int64, bool) {
	switch v := get(doc, keys...).(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// f64 returns the float at the key path. Percent strings ("55%") are parsed
// with the sign stripped, which is how possession values arrive.
func f64(doc map[string]any, keys ...string) (float64, bool) {
	switch v := get(doc, keys...).(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// list returns the slice at the key path, or nil.
func list(doc map[string]any, keys ...string) []any {
	l, _ := get(doc, keys...).([]any)
	return l
}

// dateLayouts are tried in order against API date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses the common API date forms down to a calendar day.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 10 {
		// Some responses carry a bare trailing Z without an offset.
		s = strings.TrimSuffix(s, "Z")
		if t, err := time.Parse(time.RFC3339, s+"Z"); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package staging

import "go.mongodb.org/mongo-driver/bson"

// The driver decodes nested documents into bson.D/bson.M/bson.A. Downstream
// consumers (the warehouse migration) navigate plain maps and slices, so
// everything is converted on the way out.

func normalizeMap(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return normalizeMap(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}

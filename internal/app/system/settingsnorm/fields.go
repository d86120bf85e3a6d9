// Package settingsnorm reads free-form settings documents (report-builder
// option lists, AI-assist metrics) and coerces them into canonical shapes.
package settingsnorm

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type field struct {
	Key   string
	Value any
}

// decodeJSON expands a JSON-encoded setting. Other strings are returned as is.
func decodeJSON(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		return raw
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return raw
	}
	return v
}

// fields lists the entries of a document-like value. BSON documents keep
// their stored order; plain maps are sorted by key.
func fields(raw any) ([]field, bool) {
	switch m := raw.(type) {
	case primitive.D:
		out := make([]field, 0, len(m))
		for _, e := range m {
			out = append(out, field{Key: e.Key, Value: e.Value})
		}
		return out, true
	case bson.Raw:
		var d primitive.D
		if err := bson.Unmarshal(m, &d); err != nil {
			return nil, false
		}
		return fields(d)
	case primitive.M:
		return sortedFields(m), true
	case map[string]any:
		return sortedFields(m), true
	case map[string]string:
		conv := make(map[string]any, len(m))
		for k, v := range m {
			conv[k] = v
		}
		return sortedFields(conv), true
	}
	return nil, false
}

func sortedFields(m map[string]any) []field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]field, 0, len(keys))
	for _, k := range keys {
		out = append(out, field{Key: k, Value: m[k]})
	}
	return out
}

// items lists the elements of an array-like value.
func items(raw any) ([]any, bool) {
	switch a := raw.(type) {
	case primitive.A:
		return []any(a), true
	case []any:
		return a, true
	case []string:
		out := make([]any, len(a))
		for i, s := range a {
			out[i] = s
		}
		return out, true
	case []primitive.D:
		out := make([]any, len(a))
		for i, d := range a {
			out[i] = d
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(a))
		for i, m := range a {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// lookup returns the first present, non-nil value among names, matching
// keys case-insensitively.
func lookup(fs []field, names ...string) (any, bool) {
	for _, name := range names {
		for _, f := range fs {
			if strings.EqualFold(f.Key, name) && f.Value != nil {
				return f.Value, true
			}
		}
	}
	return nil, false
}

// text renders a scalar as a trimmed string. Documents and arrays are not text.
func text(v any) string {
	switch v.(type) {
	case nil, primitive.D, primitive.M, map[string]any, primitive.A, []any:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// Package normalize provides helper functions for consistent value normalization
// across the application. Use these helpers instead of scattered strings.ToLower,
// strings.TrimSpace and ad hoc float conversions so every report sees the same
// shape of data.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Number coerces an arbitrary value to a finite float64.
//
// It returns def when v is nil, cannot be interpreted as a number, or
// converts to NaN or ±Inf. Numeric strings may carry surrounding whitespace,
// thousands separators and a trailing percent sign ("1,250", " 67% ").
// Number never panics and never returns NaN or Inf (as long as def is finite).
func Number(v any, def float64) float64 {
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		return Float(x, def)
	case float32:
		return Float(float64(x), def)
	case string:
		return parseNumeric(x, def)
	case *float64:
		if x == nil {
			return def
		}
		return Float(*x, def)
	case primitive.Decimal128:
		return parseNumeric(x.String(), def)
	case primitive.Null, primitive.Undefined:
		return def
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return def
	}
	return Float(f, def)
}

// Float returns f when it is finite, def otherwise.
func Float(f, def float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func parseNumeric(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return Float(f, def)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lower-cases s and collapses every run of non-alphanumeric characters
// into a single "-", trimming leading and trailing dashes.
//
//	Slug("Last 30 Days")         // "last-30-days"
//	Slug("Banco de Oro (BDO)")   // "banco-de-oro-bdo"
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// PersonKey normalizes a full name for identity matching: trimmed,
// lower-cased, inner whitespace collapsed to single spaces.
func PersonKey(fullName string) string {
	return strings.ToLower(strings.Join(strings.Fields(fullName), " "))
}

// Company normalizes a company name for grouping and display by trimming
// and collapsing inner whitespace. Case is preserved.
func Company(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status normalizes a status value by trimming whitespace and converting to lowercase.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Num is a float64 that decodes from any BSON scalar through Number.
// Store row records use it so that strings, decimals, booleans and nulls
// never fail a decode; unusable values become 0.
type Num float64

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (n *Num) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	var v any
	switch t {
	case bsontype.Double:
		v = raw.Double()
	case bsontype.Int32:
		v = raw.Int32()
	case bsontype.Int64:
		v = raw.Int64()
	case bsontype.Decimal128:
		v = raw.Decimal128()
	case bsontype.String:
		v = raw.StringValue()
	case bsontype.Boolean:
		v = raw.Boolean()
	}
	*n = Num(Number(v, 0))
	return nil
}

// F returns n as a float64.
func (n Num) F() float64 { return float64(n) }

// Time interprets a stored date value. It accepts time.Time, BSON DateTime,
// RFC 3339 strings and plain YYYY-MM-DD strings.
func Time(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return x.UTC(), true
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return x.UTC(), true
	case primitive.DateTime:
		return x.Time().UTC(), true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC(), true
		}
		if len(s) >= 10 {
			if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

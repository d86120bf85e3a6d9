package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNumber(t *testing.T) {
	dec, _ := primitive.ParseDecimal128("12.5")
	ptr := 3.25
	var nilPtr *float64

	tests := []struct {
		name  string
		input any
		def   float64
		want  float64
	}{
		{"nil", nil, 7, 7},
		{"NaN", math.NaN(), 7, 7},
		{"positive inf", math.Inf(1), 7, 7},
		{"negative inf", math.Inf(-1), 7, 7},
		{"float64", 42.5, 0, 42.5},
		{"float32", float32(1.5), 0, 1.5},
		{"int", 12, 0, 12},
		{"int32", int32(-3), 0, -3},
		{"int64", int64(1 << 40), 0, float64(1 << 40)},
		{"uint", uint(9), 0, 9},
		{"numeric string", "67", 0, 67},
		{"padded string", "  0.67 ", 0, 0.67},
		{"percent string", "67%", 0, 67},
		{"thousands separators", "1,250.75", 0, 1250.75},
		{"empty string", "", 5, 5},
		{"garbage string", "n/a", 5, 5},
		{"NaN string", "NaN", 5, 5},
		{"Inf string", "Inf", 5, 5},
		{"json number", json.Number("19.5"), 0, 19.5},
		{"decimal128", dec, 0, 12.5},
		{"pointer", &ptr, 0, 3.25},
		{"nil pointer", nilPtr, 4, 4},
		{"bson null", primitive.Null{}, 4, 4},
		{"struct", struct{ A int }{1}, 4, 4},
		{"slice", []int{1, 2}, 4, 4},
		{"map", map[string]any{"a": 1}, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.input, tt.def)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("Number(%v) = %v, want finite", tt.input, got)
			}
			if got != tt.want {
				t.Errorf("Number(%v, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	if got := Float(math.NaN(), 1); got != 1 {
		t.Errorf("Float(NaN, 1) = %v, want 1", got)
	}
	if got := Float(2.5, 1); got != 2.5 {
		t.Errorf("Float(2.5, 1) = %v, want 2.5", got)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Last 30 Days", "last-30-days"},
		{"Banco de Oro (BDO)", "banco-de-oro-bdo"},
		{"  PDF  ", "pdf"},
		{"O'Brien, Inc.", "o-brien-inc"},
		{"---", ""},
		{"", ""},
		{"already-slugged", "already-slugged"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPersonKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Juan Dela Cruz", "juan dela cruz"},
		{"  JUAN   dela cruz ", "juan dela cruz"},
		{"\tMaria\nSantos", "maria santos"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := PersonKey(tt.input); got != tt.want {
				t.Errorf("PersonKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompany(t *testing.T) {
	if got := Company("  Banco  de Oro "); got != "Banco de Oro" {
		t.Errorf("Company() = %q, want %q", got, "Banco de Oro")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"approved", "approved"},
		{"APPROVED", "approved"},
		{"  Pending  ", "pending"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Status(tt.input); got != tt.want {
				t.Errorf("Status(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryParam(t *testing.T) {
	if got := QueryParam("  30d "); got != "30d" {
		t.Errorf("QueryParam() = %q, want %q", got, "30d")
	}
}

func TestNumDecode(t *testing.T) {
	type row struct {
		A Num `bson:"a"`
		B Num `bson:"b"`
		C Num `bson:"c"`
		D Num `bson:"d"`
		E Num `bson:"e"`
		F Num `bson:"f"`
	}
	dec, _ := primitive.ParseDecimal128("1250.5")
	raw, err := bson.Marshal(bson.M{
		"a": int32(12),
		"b": "1,000",
		"c": dec,
		"d": nil,
		"e": true,
		"f": int64(7),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got row
	if err := bson.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := row{A: 12, B: 1000, C: 1250.5, D: 0, E: 1, F: 7}
	if got != want {
		t.Errorf("decoded %+v, want %+v", got, want)
	}
}

func TestTime(t *testing.T) {
	want := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input any
		ok    bool
	}{
		{"time", want, true},
		{"datetime", primitive.NewDateTimeFromTime(want), true},
		{"rfc3339", "1990-04-12T00:00:00Z", true},
		{"date string", "1990-04-12", true},
		{"empty", "", false},
		{"garbage", "yesterday", false},
		{"zero time", time.Time{}, false},
		{"number", 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Time(tt.input)
			if ok != tt.ok {
				t.Fatalf("Time(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(want) {
				t.Errorf("Time(%v) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

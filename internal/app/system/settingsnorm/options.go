package settingsnorm

import (
	"github.com/dalemusser/stratamember/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/domain/models"
)

var (
	valueKeys = []string{"value", "id", "key", "slug"}
	labelKeys = []string{"label", "name", "title", "text", "display"}
)

// Options normalizes an option-list setting into ordered {value, label}
// pairs. It accepts an array of strings, an array of objects, a key→label
// map, or a JSON string holding any of those. Labels lose their markup,
// missing values become the slug of the label, entries with neither are
// dropped, and later duplicates of a value are dropped. When nothing usable
// remains it returns a copy of defaults and false.
func Options(raw any, defaults []models.Option) ([]models.Option, bool) {
	raw = decodeJSON(raw)

	var candidates []models.Option
	if list, ok := items(raw); ok {
		for _, it := range list {
			candidates = append(candidates, option(it))
		}
	} else if fs, ok := fields(raw); ok {
		for _, f := range fs {
			label := text(f.Value)
			if label == "" {
				if inner, ok := fields(f.Value); ok {
					if v, ok := lookup(inner, labelKeys...); ok {
						label = text(v)
					}
				}
			}
			candidates = append(candidates, models.Option{Value: f.Key, Label: label})
		}
	}

	out := make([]models.Option, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		o, ok := clean(c)
		if !ok || seen[o.Value] {
			continue
		}
		seen[o.Value] = true
		out = append(out, o)
	}

	if len(out) == 0 {
		return cloneOptions(defaults), false
	}
	return out, true
}

func option(it any) models.Option {
	if fs, ok := fields(it); ok {
		var o models.Option
		if v, ok := lookup(fs, valueKeys...); ok {
			o.Value = text(v)
		}
		if v, ok := lookup(fs, labelKeys...); ok {
			o.Label = text(v)
		}
		return o
	}
	return models.Option{Label: text(it)}
}

func clean(o models.Option) (models.Option, bool) {
	o.Label = htmlsanitize.StripTags(o.Label)
	o.Value = htmlsanitize.StripTags(o.Value)
	switch {
	case o.Label == "" && o.Value == "":
		return o, false
	case o.Value == "":
		o.Value = normalize.Slug(o.Label)
		if o.Value == "" {
			return o, false
		}
	case o.Label == "":
		o.Label = o.Value
	}
	return o, true
}

func cloneOptions(in []models.Option) []models.Option {
	out := make([]models.Option, len(in))
	copy(out, in)
	return out
}

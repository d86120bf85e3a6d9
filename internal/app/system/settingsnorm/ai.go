package settingsnorm

import (
	"math"

	"github.com/dalemusser/stratamember/internal/app/system/derive"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/spf13/cast"
)

// AI metric names.
const (
	MetricAccuracy     = "accuracyRate"
	MetricAutomation   = "automationRate"
	MetricSatisfaction = "satisfactionRate"
	MetricAdoption     = "adoptionRate"
)

var metricAliases = map[string][]string{
	MetricAccuracy:     {"accuracyRate", "accuracy_rate", "accuracy"},
	MetricAutomation:   {"automationRate", "automation_rate", "automation"},
	MetricSatisfaction: {"satisfactionRate", "satisfaction_rate", "satisfaction"},
	MetricAdoption:     {"adoptionRate", "adoption_rate", "adoption"},
}

// AIMetrics is a normalized AI-assist setting. Rates are percentages.
type AIMetrics struct {
	Present      bool
	Enabled      bool
	Model        string
	Accuracy     *float64
	Automation   *float64
	Satisfaction *float64
	Adoption     *float64
	Suggestions  float64
	Missing      []string // metric names absent or unreadable
}

// Count returns how many rate metrics were read.
func (a AIMetrics) Count() int {
	n := 0
	for _, p := range []*float64{a.Accuracy, a.Automation, a.Satisfaction, a.Adoption} {
		if p != nil {
			n++
		}
	}
	return n
}

// NormalizeAIMetrics reads an AI-assist setting. Rates may sit at the top
// level or under "metrics" and may be fractions or percentages; each goes
// through derive.AIPercent. The suggestion count is taken as is.
// When "enabled" is absent the feature counts as enabled if any rate is set.
func NormalizeAIMetrics(raw any) AIMetrics {
	top, ok := fields(decodeJSON(raw))
	if !ok {
		return AIMetrics{Missing: []string{MetricAccuracy, MetricAutomation, MetricSatisfaction, MetricAdoption}}
	}
	var nested []field
	if v, ok := lookup(top, "metrics"); ok {
		nested, _ = fields(decodeJSON(v))
	}
	find := func(names ...string) (any, bool) {
		if v, ok := lookup(top, names...); ok {
			return v, true
		}
		return lookup(nested, names...)
	}

	res := AIMetrics{Present: true}
	rate := func(name string) *float64 {
		v, ok := find(metricAliases[name]...)
		if !ok {
			res.Missing = append(res.Missing, name)
			return nil
		}
		f := normalize.Number(v, math.NaN())
		if math.IsNaN(f) {
			res.Missing = append(res.Missing, name)
			return nil
		}
		return derive.Ptr(derive.AIPercent(f))
	}
	res.Accuracy = rate(MetricAccuracy)
	res.Automation = rate(MetricAutomation)
	res.Satisfaction = rate(MetricSatisfaction)
	res.Adoption = rate(MetricAdoption)

	if v, ok := find("suggestionsGenerated", "suggestions_generated", "suggestions"); ok {
		res.Suggestions = derive.NonNegative(normalize.Number(v, 0))
	}
	if v, ok := lookup(top, "model", "modelName", "model_name"); ok {
		res.Model = text(v)
	}
	if v, ok := lookup(top, "enabled", "isEnabled", "is_enabled"); ok {
		res.Enabled = cast.ToBool(v)
	} else {
		res.Enabled = res.Count() > 0
	}
	return res
}

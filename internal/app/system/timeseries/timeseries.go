// Package timeseries builds the rolling monthly collections/billing series.
package timeseries

import (
	"fmt"
	"time"

	"github.com/dalemusser/stratamember/internal/app/system/derive"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/domain/models"
)

// KeyLayout formats a month key.
const KeyLayout = "2006-01-02"

// MonthRow is one aggregated month as read from the store.
type MonthRow struct {
	Month  string // YYYY-MM-01
	Amount float64
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Key returns the YYYY-MM-01 key of t's month.
func Key(t time.Time) string {
	return monthStart(t).Format(KeyLayout)
}

// WindowStart is the first instant of the oldest month in an n-month window
// ending at now's month.
func WindowStart(now time.Time, n int) time.Time {
	if n < 1 {
		n = 1
	}
	return monthStart(now).AddDate(0, -(n - 1), 0)
}

// Skeleton returns n zero-valued months, oldest first, ending at now's month.
func Skeleton(now time.Time, n int) []models.TimeSeriesPoint {
	if n < 1 {
		n = 1
	}
	start := WindowStart(now, n)
	out := make([]models.TimeSeriesPoint, n)
	for i := range out {
		m := start.AddDate(0, i, 0)
		out[i] = models.TimeSeriesPoint{
			Month: m.Format(KeyLayout),
			Label: m.Format("Jan"),
		}
	}
	return out
}

// Sum folds rows into a month key → amount map, normalizing keys so that
// full timestamps and YYYY-MM strings still land on their month.
func Sum(rows []MonthRow) map[string]float64 {
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		key := r.Month
		if t, ok := normalize.Time(r.Month); ok {
			key = Key(t)
		} else if t, err := time.Parse("2006-01", r.Month); err == nil {
			key = Key(t)
		}
		out[key] += normalize.Float(r.Amount, 0)
	}
	return out
}

// Overlay returns a copy of skeleton with collected and billed filled in by
// month key. Months without a value stay at zero; keys outside the skeleton
// are ignored.
func Overlay(skeleton []models.TimeSeriesPoint, collected, billed map[string]float64) []models.TimeSeriesPoint {
	out := make([]models.TimeSeriesPoint, len(skeleton))
	for i, p := range skeleton {
		p.Collected = derive.Round2(collected[p.Month])
		p.Billed = derive.Round2(billed[p.Month])
		out[i] = p
	}
	return out
}

// Sample maps fixture values onto skeleton keys. The fixture is aligned on
// its last value (the current month) and repeats backwards when the window
// is longer than the fixture.
func Sample(skeleton []models.TimeSeriesPoint, collected, billed []float64) []models.TimeSeriesPoint {
	out := make([]models.TimeSeriesPoint, len(skeleton))
	n := len(skeleton)
	for i, p := range skeleton {
		back := n - 1 - i
		p.Collected = pick(collected, back)
		p.Billed = pick(billed, back)
		out[i] = p
	}
	return out
}

func pick(values []float64, back int) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := len(values) - 1 - back%len(values)
	return values[idx]
}

// Degradation reasons.
const (
	ReasonNoRecords     = "no payment or billing records in the trend window"
	ReasonNoPayments    = "no payment records in the trend window"
	ReasonNoBilling     = "no billing records in the trend window"
	ReasonAllZeroAmount = "records present but all amounts zero"
)

// Build overlays payments and billing on an n-month skeleton. When no month
// has a positive value the whole series is replaced by the sample series and
// the diagnostics explain why; otherwise the real series is kept and month
// level anomalies are listed.
func Build(now time.Time, n int, payments, billing []MonthRow, sampleCollected, sampleBilled []float64) ([]models.TimeSeriesPoint, models.SeriesDiagnostics) {
	skeleton := Skeleton(now, n)
	series := Overlay(skeleton, Sum(payments), Sum(billing))

	if !hasPositive(series) {
		reason := ReasonAllZeroAmount
		switch {
		case len(payments) == 0 && len(billing) == 0:
			reason = ReasonNoRecords
		case len(payments) == 0:
			reason = ReasonNoPayments
		case len(billing) == 0:
			reason = ReasonNoBilling
		}
		return Sample(skeleton, sampleCollected, sampleBilled), models.SeriesDiagnostics{
			Source: models.SourceSample,
			Reason: &reason,
			Issues: []string{"collections trend replaced by sample data: " + reason},
		}
	}

	return series, models.SeriesDiagnostics{
		Source: models.SourceDatabase,
		Issues: Anomalies(series),
	}
}

func hasPositive(series []models.TimeSeriesPoint) bool {
	for _, p := range series {
		if p.Collected > 0 || p.Billed > 0 {
			return true
		}
	}
	return false
}

// Anomalies describes months whose collections and billing disagree.
func Anomalies(series []models.TimeSeriesPoint) []string {
	issues := []string{}
	for _, p := range series {
		label := p.Month
		if t, err := time.Parse(KeyLayout, p.Month); err == nil {
			label = t.Format("Jan 2006")
		}
		switch {
		case p.Billed > 0 && p.Collected == 0:
			issues = append(issues, fmt.Sprintf("no collections recorded for %s", label))
		case p.Collected > 0 && p.Billed == 0:
			issues = append(issues, fmt.Sprintf("collections without billing for %s", label))
		case p.Collected > p.Billed:
			issues = append(issues, fmt.Sprintf("collections exceed billing for %s", label))
		}
	}
	return issues
}

// Package derive holds the pure metric derivations of the summary engine.
// Every function is total: inputs are already-normalized finite numbers and
// the result is either a finite number or nil ("not computable").
package derive

import "math"

// Trend tones.
const (
	TonePositive = "positive"
	ToneNegative = "negative"
	ToneNeutral  = "neutral"
)

// Round2 rounds f to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Ptr returns a pointer to f.
func Ptr(f float64) *float64 { return &f }

// Percent returns part/whole*100, or nil when whole is not positive.
func Percent(part, whole float64) *float64 {
	if whole <= 0 {
		return nil
	}
	return Ptr(Round2(part / whole * 100))
}

// RetentionRate is the share of all-status member records that are approved.
func RetentionRate(approved, totalAllStatuses float64) *float64 {
	return Percent(approved, totalAllStatuses)
}

// GrowthPercent compares current with previous. Positive means growth.
// A rise from zero counts as 100%; no data on either side is nil.
func GrowthPercent(current, previous float64) *float64 {
	switch {
	case previous > 0:
		return Ptr(Round2((current - previous) / previous * 100))
	case current > 0:
		return Ptr(100)
	default:
		return nil
	}
}

// TrendTone classifies a growth percentage.
func TrendTone(pct *float64) string {
	switch {
	case pct == nil || *pct == 0:
		return ToneNeutral
	case *pct > 0:
		return TonePositive
	default:
		return ToneNegative
	}
}

// CollectionRate is collected/billed*100. Collections with nothing billed
// count as 100%; nothing on either side is nil.
func CollectionRate(collected, billed float64) *float64 {
	switch {
	case billed > 0:
		return Ptr(Round2(collected / billed * 100))
	case collected > 0:
		return Ptr(100)
	default:
		return nil
	}
}

// Average returns the mean of the non-nil values, rounded, or nil if none.
func Average(values ...*float64) *float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return nil
	}
	return Ptr(Round2(sum / float64(n)))
}

// NonNegative clamps f at zero.
func NonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

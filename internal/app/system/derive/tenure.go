package derive

import (
	"sort"
	"time"

	"github.com/dalemusser/stratamember/internal/domain/models"
)

const daysPerYear = 365.25

// DefaultTenureBuckets partitions [0, ∞) into years-of-employment bins.
func DefaultTenureBuckets() []models.TenureBucket {
	return []models.TenureBucket{
		{ID: "under-1", Label: "Under 1 year", Min: 0, Max: Ptr(1)},
		{ID: "1-5", Label: "1-5 years", Min: 1, Max: Ptr(6)},
		{ID: "6-10", Label: "6-10 years", Min: 6, Max: Ptr(11)},
		{ID: "11-20", Label: "11-20 years", Min: 11, Max: Ptr(21)},
		{ID: "21-plus", Label: "21+ years", Min: 21},
	}
}

// ClassifyTenure returns the index of the bucket holding years: the first
// bucket, by ascending Min, whose [Min, Max) contains it. Values no bucket
// contains fall into the last bucket. Returns -1 only for an empty list.
func ClassifyTenure(years float64, buckets []models.TenureBucket) int {
	if len(buckets) == 0 {
		return -1
	}
	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return buckets[order[a]].Min < buckets[order[b]].Min
	})

	for _, i := range order {
		b := buckets[i]
		if years >= b.Min && (b.Max == nil || years < *b.Max) {
			return i
		}
	}
	return order[len(order)-1]
}

// BucketTenures returns a copy of buckets with Value set to the number of
// tenures falling in each.
func BucketTenures(tenures []float64, buckets []models.TenureBucket) []models.TenureBucket {
	out := make([]models.TenureBucket, len(buckets))
	copy(out, buckets)
	for i := range out {
		out[i].Value = 0
	}
	for _, y := range tenures {
		if i := ClassifyTenure(y, out); i >= 0 {
			out[i].Value++
		}
	}
	return out
}

// TenureYears converts an employment start date to fractional years at now.
// Start dates in the future count as zero.
func TenureYears(start, now time.Time) float64 {
	d := now.Sub(start)
	if d <= 0 {
		return 0
	}
	return d.Hours() / 24 / daysPerYear
}

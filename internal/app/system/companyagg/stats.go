package companyagg

import (
	"sort"

	"github.com/dalemusser/stratamember/internal/app/system/derive"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/domain/models"
)

// MemberCounts is one company's membership row as read from the store.
type MemberCounts struct {
	Company          string
	Approved         float64
	TotalAllStatuses float64
	NewJoiners       map[models.RangeKey]float64
}

// Stats turns per-company membership rows into CompanyStat records, merging
// rows whose names normalize to the same company and ordering by approved
// members descending, then by name.
func Stats(rows []MemberCounts) []models.CompanyStat {
	var order []string
	merged := make(map[string]*MemberCounts)
	for _, r := range rows {
		key := normalize.Company(r.Company)
		if key == "" {
			continue
		}
		m, ok := merged[key]
		if !ok {
			m = &MemberCounts{Company: key, NewJoiners: make(map[models.RangeKey]float64)}
			merged[key] = m
			order = append(order, key)
		}
		m.Approved += normalize.Float(r.Approved, 0)
		m.TotalAllStatuses += normalize.Float(r.TotalAllStatuses, 0)
		for k, v := range r.NewJoiners {
			m.NewJoiners[k] += normalize.Float(v, 0)
		}
	}

	out := make([]models.CompanyStat, 0, len(order))
	for _, key := range order {
		m := merged[key]
		joiners := make(map[models.RangeKey]float64, len(models.RangeKeys))
		for _, k := range models.RangeKeys {
			joiners[k] = m.NewJoiners[k]
		}
		out = append(out, models.CompanyStat{
			Company:           m.Company,
			Total:             m.Approved,
			TotalAllStatuses:  m.TotalAllStatuses,
			Inactive:          derive.NonNegative(m.TotalAllStatuses - m.Approved),
			RetentionRate:     derive.RetentionRate(m.Approved, m.TotalAllStatuses),
			NewJoinersByRange: joiners,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Company < out[j].Company
	})
	return out
}

// Find returns the stat whose company has the same slug as name.
func Find(stats []models.CompanyStat, name string) (models.CompanyStat, bool) {
	want := normalize.Slug(name)
	if want == "" {
		return models.CompanyStat{}, false
	}
	for _, s := range stats {
		if normalize.Slug(s.Company) == want {
			return s, true
		}
	}
	return models.CompanyStat{}, false
}

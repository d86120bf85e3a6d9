// Package companyagg joins independently sourced per-company datasets into
// the ranked tables of the summary dashboard.
package companyagg

import (
	"sort"

	"github.com/dalemusser/stratamember/internal/app/system/derive"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/domain/models"
)

// TopN is the number of companies kept in the financial table.
const TopN = 5

// Membership is the approved member count of one company.
type Membership struct {
	Company string
	Members float64
}

// Collection is what one company's members paid over the trend window.
type Collection struct {
	Company      string
	Collected    float64
	Contributors float64 // distinct paying members
}

// Billing is what one company's members were billed over the trend window.
type Billing struct {
	Company string
	Billed  float64
}

type entry struct {
	name         string
	collected    float64
	billed       float64
	contributors float64
}

// Aggregate unions the companies appearing in collections or billing
// (first seen first, collections before billing), drops those with nothing
// collected and nothing billed, ranks by collected descending with ties kept
// in insertion order, and returns at most TopN rows. Members come from the
// membership figure, or the contributor count when the company has none.
func Aggregate(members []Membership, collections []Collection, billing []Billing) []models.CompanyFinancial {
	memberCounts := make(map[string]float64, len(members))
	for _, m := range members {
		key := normalize.Company(m.Company)
		if key == "" {
			continue
		}
		memberCounts[key] += normalize.Float(m.Members, 0)
	}

	var order []string
	byKey := make(map[string]*entry)
	get := func(company string) *entry {
		key := normalize.Company(company)
		if key == "" {
			return nil
		}
		e, ok := byKey[key]
		if !ok {
			e = &entry{name: key}
			byKey[key] = e
			order = append(order, key)
		}
		return e
	}

	for _, c := range collections {
		if e := get(c.Company); e != nil {
			e.collected += normalize.Float(c.Collected, 0)
			e.contributors += normalize.Float(c.Contributors, 0)
		}
	}
	for _, b := range billing {
		if e := get(b.Company); e != nil {
			e.billed += normalize.Float(b.Billed, 0)
		}
	}

	out := make([]models.CompanyFinancial, 0, len(order))
	for _, key := range order {
		e := byKey[key]
		if e.collected == 0 && e.billed == 0 {
			continue
		}
		members, ok := memberCounts[key]
		if !ok {
			members = e.contributors
		}
		out = append(out, models.CompanyFinancial{
			Company:        e.name,
			Collected:      derive.Round2(e.collected),
			Billed:         derive.Round2(e.billed),
			Members:        members,
			CollectionRate: derive.CollectionRate(e.collected, e.billed),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Collected > out[j].Collected
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// Package samples provides the canonical sample dataset shown when the store
// has nothing to report. Every section tells the same story: the member
// counts in the company table, the tenure histogram, the dues ledger and the
// performance summary all agree with each other.
package samples

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/stratamember/internal/app/system/timeseries"
	"github.com/dalemusser/stratamember/internal/domain/models"
)

//go:embed sample_payload.json
var fixtureJSON []byte

type fixture struct {
	Version        string    `json:"version"`
	TrendCollected []float64 `json:"trendCollected"`
	TrendBilled    []float64 `json:"trendBilled"`
	models.SummaryPayload
}

// Provider hands out deep copies of the parsed fixture. It is immutable
// after construction and safe for concurrent use.
type Provider struct {
	fx fixture
}

// Parse builds a Provider from fixture JSON.
func Parse(data []byte) (*Provider, error) {
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse sample fixture: %w", err)
	}
	if fx.Version == "" {
		return nil, fmt.Errorf("sample fixture has no version")
	}
	if len(fx.TrendCollected) == 0 || len(fx.TrendCollected) != len(fx.TrendBilled) {
		return nil, fmt.Errorf("sample fixture trend arrays are empty or uneven")
	}
	return &Provider{fx: fx}, nil
}

var (
	defaultOnce     sync.Once
	defaultProvider *Provider
)

// Default returns the Provider for the embedded fixture. The fixture is
// compiled in, so a parse failure is a build defect and panics.
func Default() *Provider {
	defaultOnce.Do(func() {
		p, err := Parse(fixtureJSON)
		if err != nil {
			panic(err)
		}
		defaultProvider = p
	})
	return defaultProvider
}

// Version identifies the fixture revision.
func (p *Provider) Version() string { return p.fx.Version }

// Trend returns copies of the fixture's monthly values, oldest first.
func (p *Provider) Trend() (collected, billed []float64) {
	collected = append([]float64(nil), p.fx.TrendCollected...)
	billed = append([]float64(nil), p.fx.TrendBilled...)
	return collected, billed
}

// Payload returns a fresh copy of the full sample payload for a request at
// now, with the collections trend laid over the same months a live response
// would use. Every section is marked as sample. Meta is left empty.
func (p *Provider) Payload(now time.Time, months int) models.SummaryPayload {
	var out models.SummaryPayload
	if err := deepCopy(&out, p.fx.SummaryPayload); err != nil {
		// Round-tripping a value that was itself decoded from JSON cannot fail.
		panic(err)
	}

	out.Meta = models.SummaryMeta{}
	out.Financial.Trend = timeseries.Sample(timeseries.Skeleton(now, months), p.fx.TrendCollected, p.fx.TrendBilled)
	out.Dues.Period = timeseries.Key(now)
	markSample(&out)
	return out
}

func deepCopy(dst *models.SummaryPayload, src models.SummaryPayload) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func markSample(p *models.SummaryPayload) {
	sample := models.Provenance{Source: models.SourceSample}
	p.Members.Provenance = sample
	p.Financial.Provenance = sample
	p.Tickets.Provenance = sample
	p.Events.Provenance = sample
	p.Benefits.Provenance = sample
	p.Dues.Provenance = sample
	p.Registration.Provenance = sample
	p.SystemHealth.Provenance = sample
	p.AI.Provenance = sample
	p.ReportBuilder.Provenance = sample
	p.Performance.Provenance = sample
}

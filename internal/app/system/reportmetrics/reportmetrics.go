// Package reportmetrics holds the Prometheus instruments of the summary engine.
//
// All methods are safe to call on a nil *Metrics, so handlers and tests that
// do not care about metrics can pass nil.
package reportmetrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the engine instruments.
type Metrics struct {
	sourceFallbacks *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	responses       *prometheus.CounterVec
	sectionSamples  *prometheus.CounterVec
}

var (
	defaultOnce sync.Once
	defaultM    *Metrics
)

// Default returns the process-wide instruments registered on the default
// Prometheus registerer.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultM = New(prometheus.DefaultRegisterer)
	})
	return defaultM
}

// New creates and registers the instruments on registerer.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	sourceFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratamember_summary_source_fallbacks_total",
			Help: "Sub-queries that failed or timed out and returned their fallback.",
		},
		[]string{"source"},
	)

	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stratamember_summary_query_duration_seconds",
			Help:    "Duration of summary sub-queries.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"source", "status"}, // ok | empty | failed | timeout
	)

	responses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratamember_summary_responses_total",
			Help: "Summary responses by outcome.",
		},
		[]string{"outcome"}, // live | partial | sample | error
	)

	sectionSamples := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stratamember_summary_section_samples_total",
			Help: "Sections replaced by the sample fixture.",
		},
		[]string{"section"},
	)

	registerer.MustRegister(sourceFallbacks, queryDuration, responses, sectionSamples)

	return &Metrics{
		sourceFallbacks: sourceFallbacks,
		queryDuration:   queryDuration,
		responses:       responses,
		sectionSamples:  sectionSamples,
	}
}

// IncFallback counts a sub-query that fell back to its default.
func (m *Metrics) IncFallback(source string) {
	if m == nil {
		return
	}
	m.sourceFallbacks.WithLabelValues(source).Inc()
}

// ObserveQuery records how long a sub-query took.
func (m *Metrics) ObserveQuery(source, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(source, status).Observe(d.Seconds())
}

// IncResponse counts a summary response by outcome.
func (m *Metrics) IncResponse(outcome string) {
	if m == nil {
		return
	}
	m.responses.WithLabelValues(outcome).Inc()
}

// IncSectionSample counts a section replaced by sample values.
func (m *Metrics) IncSectionSample(section string) {
	if m == nil {
		return
	}
	m.sectionSamples.WithLabelValues(section).Inc()
}

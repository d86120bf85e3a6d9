package safequery

import (
	"sort"
	"sync"

	"github.com/dalemusser/stratamember/internal/domain/models"
)

// Trail collects the per-source outcome of one request. It is safe for
// concurrent use by the fan-out goroutines.
type Trail struct {
	mu      sync.Mutex
	reports map[string]models.SourceReport
}

// NewTrail returns an empty Trail.
func NewTrail() *Trail {
	return &Trail{reports: make(map[string]models.SourceReport)}
}

// Record stores the outcome for label. A nil Trail ignores the call.
func (t *Trail) Record(label string, rep models.SourceReport) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.reports[label] = rep
	t.mu.Unlock()
}

// Report returns the outcome recorded for label.
func (t *Trail) Report(label string) (models.SourceReport, bool) {
	if t == nil {
		return models.SourceReport{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rep, ok := t.reports[label]
	return rep, ok
}

// Failed reports whether label failed or timed out.
func (t *Trail) Failed(label string) bool {
	rep, ok := t.Report(label)
	return ok && (rep.Status == models.SourceFailed || rep.Status == models.SourceTimeout)
}

// Failures returns the labels that failed or timed out, sorted.
func (t *Trail) Failures() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []string
	for label, rep := range t.reports {
		if rep.Status == models.SourceFailed || rep.Status == models.SourceTimeout {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a copy of every recorded outcome.
func (t *Trail) Snapshot() map[string]models.SourceReport {
	out := make(map[string]models.SourceReport)
	if t == nil {
		return out
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, v := range t.reports {
		out[k] = v
	}
	return out
}

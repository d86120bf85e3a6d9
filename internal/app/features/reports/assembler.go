// internal/app/features/reports/assembler.go
package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	summarystore "github.com/dalemusser/stratamember/internal/app/store/summary"
	"github.com/dalemusser/stratamember/internal/app/system/reportmetrics"
	"github.com/dalemusser/stratamember/internal/app/system/safequery"
	"github.com/dalemusser/stratamember/internal/app/system/samples"
	"github.com/dalemusser/stratamember/internal/app/system/timeseries"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Section names, as used in warnings and the section sample metric.
const (
	SectionMembers       = "members"
	SectionFinancial     = "financial"
	SectionTickets       = "tickets"
	SectionEvents        = "events"
	SectionBenefits      = "benefits"
	SectionDues          = "dues"
	SectionRegistration  = "registration"
	SectionSystemHealth  = "systemHealth"
	SectionAI            = "ai"
	SectionReportBuilder = "reportBuilder"
	SectionPerformance   = "performance"
)

// Alert messages shown by the dashboard banner.
const (
	MsgAllSample     = "No live data has been recorded yet. Showing sample data."
	MsgAllEmpty      = "No live data has been recorded yet."
	MsgPartialSample = "Some sections have no live data and are showing sample values."
	MsgPartialEmpty  = "Some sections have no live data."
	MsgStoreDown     = "The reporting database is unavailable. Showing sample data."
)

// Response outcomes recorded by the responses metric.
const (
	OutcomeLive    = "live"
	OutcomePartial = "partial"
	OutcomeSample  = "sample"
	OutcomeError   = "error"
)

// Config tunes an Assembler.
type Config struct {
	TrendMonths    int  // months in the collections trend
	Concurrency    int  // maximum queries in flight per request
	SampleFallback bool // replace sections without real data by sample values
}

// Assembler builds the summary payload: it fans out the summary queries,
// derives every section and applies the sample fallback policy.
type Assembler struct {
	exec    *safequery.Executor
	samples *samples.Provider
	metrics *reportmetrics.Metrics
	log     *zap.Logger
	cfg     Config
	now     func() time.Time
}

// NewAssembler creates an Assembler. metrics may be nil.
func NewAssembler(exec *safequery.Executor, provider *samples.Provider, metrics *reportmetrics.Metrics, logger *zap.Logger, cfg Config) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if provider == nil {
		provider = samples.Default()
	}
	if cfg.TrendMonths < 1 {
		cfg.TrendMonths = 8
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Assembler{
		exec:    exec,
		samples: provider,
		metrics: metrics,
		log:     logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Ping checks that the store is reachable.
func (a *Assembler) Ping(ctx context.Context) error {
	r := a.exec.Runner()
	if r == nil {
		return fmt.Errorf("no store configured")
	}
	return r.Ping(ctx)
}

func (a *Assembler) newMeta(now time.Time) models.SummaryMeta {
	return models.SummaryMeta{
		Warnings:      []string{},
		RequestID:     uuid.NewString(),
		GeneratedAt:   now,
		SampleVersion: a.samples.Version(),
		WindowStart:   timeseries.WindowStart(now, a.cfg.TrendMonths).Format(time.RFC3339),
		TrendMonths:   a.cfg.TrendMonths,
	}
}

// section is one assembled section's bookkeeping during substitution.
type section struct {
	name   string
	real   bool
	sample func() // copies the sample section in
	empty  func() // marks the section as validly empty
}

// Build assembles the summary for one request. It never fails: sources
// that error or time out contribute their defaults, and the fallback
// trail is reported in meta.diagnostics.
func (a *Assembler) Build(ctx context.Context) models.SummaryPayload {
	now := a.now().UTC()
	windowStart := timeseries.WindowStart(now, a.cfg.TrendMonths)
	w := summarystore.NewWindow(now, windowStart)

	trail := safequery.NewTrail()
	s := fetch(ctx, a.exec, trail, w, a.cfg.Concurrency)

	sample := a.samples.Payload(now, a.cfg.TrendMonths)
	sampleCollected, sampleBilled := a.samples.Trend()

	var out models.SummaryPayload
	var issues []string

	out.Members = membersSection(s, now)
	var finIssues []string
	out.Financial, finIssues = financialSection(s, now, a.cfg.TrendMonths, sample, sampleCollected, sampleBilled)
	issues = append(issues, finIssues...)
	out.Tickets = ticketsSection(s)
	out.Events = eventsSection(s)
	out.Benefits = benefitsSection(s)
	out.Dues = duesSection(s, now)
	out.Registration = registrationSection(s)
	out.SystemHealth = systemHealthSection(s, trail.Failed(LabelTables))
	var missing []string
	out.AI, missing = aiSection(s)
	if len(missing) > 0 {
		issues = append(issues, "ai metrics missing from settings: "+strings.Join(missing, ", "))
	}
	out.ReportBuilder = reportBuilderSection(s)
	out.Performance = performanceSection(out.Members, out.Financial, out.Tickets, out.Benefits, out.Events)

	for _, label := range trail.Failures() {
		rep, _ := trail.Report(label)
		issues = append(issues, fmt.Sprintf("%s %s: %s", label, rep.Status, rep.Error))
	}

	meta := a.newMeta(now)
	diag := &models.Diagnostics{
		Issues:    nonNil(issues),
		PerSource: trail.Snapshot(),
	}
	meta.Diagnostics = diag

	empty := models.Provenance{Source: models.SourceEmpty}
	sections := []section{
		{SectionMembers, out.Members.HasRealData, func() { out.Members = sample.Members }, func() { out.Members.Provenance = empty }},
		{SectionFinancial, out.Financial.HasRealData, func() { out.Financial = sample.Financial }, func() { out.Financial.Provenance = empty }},
		{SectionTickets, out.Tickets.HasRealData, func() { out.Tickets = sample.Tickets }, func() { out.Tickets.Provenance = empty }},
		{SectionEvents, out.Events.HasRealData, func() { out.Events = sample.Events }, func() { out.Events.Provenance = empty }},
		{SectionBenefits, out.Benefits.HasRealData, func() { out.Benefits = sample.Benefits }, func() { out.Benefits.Provenance = empty }},
		{SectionDues, out.Dues.HasRealData, func() { out.Dues = sample.Dues }, func() { out.Dues.Provenance = empty }},
		{SectionRegistration, out.Registration.HasRealData, func() { out.Registration = sample.Registration }, func() { out.Registration.Provenance = empty }},
		{SectionSystemHealth, out.SystemHealth.HasRealData, func() { out.SystemHealth = sample.SystemHealth }, func() { out.SystemHealth.Provenance = empty }},
		{SectionAI, out.AI.HasRealData, func() { out.AI = sample.AI }, func() { out.AI.Provenance = empty }},
		{SectionReportBuilder, out.ReportBuilder.HasRealData, func() { out.ReportBuilder = sample.ReportBuilder }, func() { out.ReportBuilder.Provenance = empty }},
		{SectionPerformance, out.Performance.HasRealData, func() { out.Performance = sample.Performance }, func() { out.Performance.Provenance = empty }},
	}

	var degraded []string
	for _, sec := range sections {
		if !sec.real {
			degraded = append(degraded, sec.name)
		}
	}

	if len(degraded) == len(sections) {
		return a.allDegraded(now, meta, sample, out)
	}

	for _, sec := range sections {
		if sec.real {
			continue
		}
		if a.cfg.SampleFallback {
			sec.sample()
			a.metrics.IncSectionSample(sec.name)
			meta.Warnings = append(meta.Warnings, sec.name+": no live data, showing sample values")
		} else {
			sec.empty()
			meta.Warnings = append(meta.Warnings, sec.name+": no live data")
		}
	}
	for _, label := range trail.Failures() {
		meta.Warnings = append(meta.Warnings, label+": query failed, default values used")
	}

	outcome := OutcomeLive
	if len(degraded) > 0 {
		reason := fmt.Sprintf("sections without live data: %s", strings.Join(degraded, ", "))
		diag.FallbackApplied = a.cfg.SampleFallback
		diag.FallbackReason = &reason
		outcome = OutcomePartial
	}
	if len(meta.Warnings) > 0 {
		meta.AlertType = models.AlertWarning
		meta.AlertMessage = MsgPartialEmpty
		if a.cfg.SampleFallback && len(degraded) > 0 {
			meta.AlertMessage = MsgPartialSample
		}
	}

	out.Meta = meta
	a.metrics.IncResponse(outcome)
	a.log.Debug("summary assembled",
		zap.String("request_id", meta.RequestID),
		zap.Strings("degraded", degraded),
		zap.Int("issues", len(diag.Issues)),
	)
	return out
}

// allDegraded handles a request where no section has real data: the full
// sample payload, or with sample fallback off, the derived zero values
// marked empty.
func (a *Assembler) allDegraded(now time.Time, meta models.SummaryMeta, sample, derived models.SummaryPayload) models.SummaryPayload {
	meta.AlertType = models.AlertInfo
	reason := "no section has live data"
	meta.Diagnostics.FallbackReason = &reason

	if !a.cfg.SampleFallback {
		meta.AlertMessage = MsgAllEmpty
		markEmpty(&derived)
		derived.Meta = meta
		a.metrics.IncResponse(OutcomeSample)
		return derived
	}

	meta.IsSample = true
	meta.AlertMessage = MsgAllSample
	meta.Diagnostics.FallbackApplied = true
	sample.Meta = meta
	a.metrics.IncResponse(OutcomeSample)
	a.log.Info("summary served from sample data",
		zap.String("request_id", meta.RequestID),
		zap.Time("now", now),
	)
	return sample
}

// Failed returns the sample payload for a request that could not be
// assembled at all. message is shown to the client; err is only logged
// and reported in diagnostics.
func (a *Assembler) Failed(message string, err error) models.SummaryPayload {
	now := a.now().UTC()
	p := a.samples.Payload(now, a.cfg.TrendMonths)
	meta := a.newMeta(now)
	meta.IsSample = true
	meta.AlertType = models.AlertError
	meta.AlertMessage = MsgStoreDown
	meta.Error = message
	var issues []string
	if err != nil {
		issues = append(issues, err.Error())
	}
	meta.Diagnostics = &models.Diagnostics{
		Issues:          nonNil(issues),
		FallbackApplied: true,
		FallbackReason:  &message,
		PerSource:       map[string]models.SourceReport{},
	}
	p.Meta = meta
	a.metrics.IncResponse(OutcomeError)
	return p
}

func markEmpty(p *models.SummaryPayload) {
	empty := models.Provenance{Source: models.SourceEmpty}
	p.Members.Provenance = empty
	p.Financial.Provenance = empty
	p.Tickets.Provenance = empty
	p.Events.Provenance = empty
	p.Benefits.Provenance = empty
	p.Dues.Provenance = empty
	p.Registration.Provenance = empty
	p.SystemHealth.Provenance = empty
	p.AI.Provenance = empty
	p.ReportBuilder.Provenance = empty
	p.Performance.Provenance = empty
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package reports

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/stratamember/internal/app/system/safequery"
	"github.com/dalemusser/stratamember/internal/app/system/samples"
	"github.com/dalemusser/stratamember/internal/app/system/timeseries"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"github.com/dalemusser/stratamember/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newTestAssembler(fr *testutil.FakeRunner, cfg Config) *Assembler {
	ex := safequery.NewExecutor(fr, zap.NewNop(), time.Second, nil)
	a := NewAssembler(ex, samples.Default(), nil, zap.NewNop(), cfg)
	a.now = func() time.Time { return fixedNow }
	return a
}

func defaultConfig() Config {
	return Config{TrendMonths: 8, Concurrency: 4, SampleFallback: true}
}

func withoutMeta(p models.SummaryPayload) models.SummaryPayload {
	p.Meta = models.SummaryMeta{}
	return p
}

func allSections(p models.SummaryPayload) map[string]models.Provenance {
	return map[string]models.Provenance{
		SectionMembers:       p.Members.Provenance,
		SectionFinancial:     p.Financial.Provenance,
		SectionTickets:       p.Tickets.Provenance,
		SectionEvents:        p.Events.Provenance,
		SectionBenefits:      p.Benefits.Provenance,
		SectionDues:          p.Dues.Provenance,
		SectionRegistration:  p.Registration.Provenance,
		SectionSystemHealth:  p.SystemHealth.Provenance,
		SectionAI:            p.AI.Provenance,
		SectionReportBuilder: p.ReportBuilder.Provenance,
		SectionPerformance:   p.Performance.Provenance,
	}
}

func TestBuild_EmptyStoreServesSample(t *testing.T) {
	fr := testutil.NewFakeRunner()
	a := newTestAssembler(fr, defaultConfig())

	got := a.Build(testContext(t))

	if !got.Meta.IsSample {
		t.Fatal("meta.isSample = false, want true")
	}
	if got.Meta.AlertType != models.AlertInfo {
		t.Errorf("alertType = %q, want %q", got.Meta.AlertType, models.AlertInfo)
	}
	if got.Meta.AlertMessage == "" {
		t.Error("alertMessage is empty")
	}
	if got.Meta.SampleVersion != samples.Default().Version() {
		t.Errorf("sampleVersion = %q, want %q", got.Meta.SampleVersion, samples.Default().Version())
	}
	if got.Meta.RequestID == "" {
		t.Error("requestId is empty")
	}
	if d := got.Meta.Diagnostics; d == nil || !d.FallbackApplied || d.FallbackReason == nil {
		t.Errorf("diagnostics = %+v, want fallback applied with a reason", d)
	}
	if len(got.Meta.Diagnostics.PerSource) != 21 {
		t.Errorf("perSource has %d entries, want 21", len(got.Meta.Diagnostics.PerSource))
	}

	want := samples.Default().Payload(fixedNow, 8)
	if !reflect.DeepEqual(withoutMeta(got), withoutMeta(want)) {
		t.Error("payload sections differ from the sample fixture")
	}

	top := got.Financial.TopCompanies
	if len(top) != 5 {
		t.Fatalf("topCompanies has %d rows, want 5", len(top))
	}
	if top[0].Company != "Banco de Oro (BDO)" {
		t.Errorf("topCompanies[0] = %q, want Banco de Oro (BDO)", top[0].Company)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Collected > top[i-1].Collected {
			t.Errorf("topCompanies not sorted by collected at %d", i)
		}
	}
	if got.Financial.CollectionDiagnostics.Source != models.SourceSample {
		t.Errorf("collectionDiagnostics.source = %q, want sample", got.Financial.CollectionDiagnostics.Source)
	}
}

func TestBuild_MixedRealAndSample(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["member_counts"] = []bson.M{{"totalMembers": 100, "approvedMembers": 90, "pendingMembers": 6, "rejectedMembers": 4}}
	a := newTestAssembler(fr, defaultConfig())

	got := a.Build(testContext(t))

	if got.Meta.IsSample {
		t.Error("meta.isSample = true, want false")
	}
	m := got.Members
	if m.Source != models.SourceDatabase || !m.HasRealData {
		t.Errorf("members provenance = %+v, want live", m.Provenance)
	}
	if m.Total != 90 {
		t.Errorf("members.total = %v, want 90", m.Total)
	}
	if m.RetentionRate == nil || *m.RetentionRate != 90 {
		t.Errorf("members.retentionRate = %v, want 90", m.RetentionRate)
	}
	if m.Inactive != 10 || m.Pending != 6 {
		t.Errorf("members inactive/pending = %v/%v, want 10/6", m.Inactive, m.Pending)
	}

	sample := samples.Default().Payload(fixedNow, 8)
	if got.Tickets.Source != models.SourceSample || !reflect.DeepEqual(got.Tickets, sample.Tickets) {
		t.Errorf("tickets = %+v, want the sample section", got.Tickets)
	}

	p := got.Performance
	if !p.HasRealData || p.Source != models.SourceDatabase {
		t.Errorf("performance provenance = %+v, want live", p.Provenance)
	}
	if p.MembersServed != 90 {
		t.Errorf("performance.membersServed = %v, want 90", p.MembersServed)
	}
	if p.OverallScore == nil || *p.OverallScore != 90 {
		t.Errorf("performance.overallScore = %v, want 90", p.OverallScore)
	}
	if p.TicketResolutionRate != nil {
		t.Errorf("performance.ticketResolutionRate = %v, want nil", *p.TicketResolutionRate)
	}

	if got.Meta.AlertType != models.AlertWarning {
		t.Errorf("alertType = %q, want warning", got.Meta.AlertType)
	}
	if len(got.Meta.Warnings) == 0 {
		t.Error("warnings is empty")
	}
	if d := got.Meta.Diagnostics; d == nil || !d.FallbackApplied {
		t.Errorf("diagnostics = %+v, want fallback applied", d)
	}
}

func TestBuild_SampleFallbackDisabled(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["member_counts"] = []bson.M{{"totalMembers": 10, "approvedMembers": 10}}
	cfg := defaultConfig()
	cfg.SampleFallback = false
	a := newTestAssembler(fr, cfg)

	got := a.Build(testContext(t))

	if got.Tickets.Source != models.SourceEmpty || got.Tickets.HasRealData {
		t.Errorf("tickets provenance = %+v, want empty", got.Tickets.Provenance)
	}
	if got.Tickets.Total != 0 || got.Tickets.ResolutionRate != nil {
		t.Errorf("tickets = %+v, want zero values", got.Tickets)
	}
	if got.Meta.Diagnostics.FallbackApplied {
		t.Error("fallbackApplied = true with sample fallback off")
	}
	if got.Meta.AlertMessage != MsgPartialEmpty {
		t.Errorf("alertMessage = %q, want %q", got.Meta.AlertMessage, MsgPartialEmpty)
	}
}

func TestBuild_EmptyStoreWithoutFallback(t *testing.T) {
	cfg := defaultConfig()
	cfg.SampleFallback = false
	a := newTestAssembler(testutil.NewFakeRunner(), cfg)

	got := a.Build(testContext(t))

	if got.Meta.IsSample {
		t.Error("meta.isSample = true with sample fallback off")
	}
	for name, prov := range allSections(got) {
		if prov.Source != models.SourceEmpty {
			t.Errorf("%s source = %q, want empty", name, prov.Source)
		}
	}
	if got.Members.Total != 0 {
		t.Errorf("members.total = %v, want 0", got.Members.Total)
	}
}

func TestBuild_SourceFailuresAreIsolated(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["member_counts"] = []bson.M{{"totalMembers": 5, "approvedMembers": 5}}
	fr.Errs["ticket_counts"] = errors.New("connection reset")
	fr.Panics["event_counts"] = true
	fr.Delays["benefit_counts"] = 2 * time.Second
	a := newTestAssembler(fr, defaultConfig())
	a.exec = safequery.NewExecutor(fr, zap.NewNop(), 50*time.Millisecond, nil)

	got := a.Build(testContext(t))

	per := got.Meta.Diagnostics.PerSource
	checks := map[string]string{
		LabelMemberCounts:  models.SourceOK,
		LabelTicketCounts:  models.SourceFailed,
		LabelEventCounts:   models.SourceFailed,
		LabelBenefitCounts: models.SourceTimeout,
		LabelDuesCurrent:   models.SourceNoRows,
	}
	for label, want := range checks {
		if rep := per[label]; rep.Status != want {
			t.Errorf("perSource[%s].status = %q, want %q", label, rep.Status, want)
		}
	}
	if per[LabelTicketCounts].Error == "" {
		t.Error("failed source carries no error message")
	}

	if got.Members.Total != 5 {
		t.Errorf("members.total = %v, want 5", got.Members.Total)
	}
	joined := strings.Join(got.Meta.Diagnostics.Issues, "\n")
	for _, label := range []string{LabelTicketCounts, LabelEventCounts, LabelBenefitCounts} {
		if !strings.Contains(joined, label) {
			t.Errorf("issues do not mention %s: %v", label, got.Meta.Diagnostics.Issues)
		}
	}
}

func TestBuild_Financial(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["payments_by_month"] = []bson.M{{"_id": "2026-03-01", "amount": 500}}
	fr.Data["billing_by_month"] = []bson.M{{"_id": "2026-03-01", "amount": 800}}
	fr.Data["collections_by_company"] = []bson.M{{"_id": "Acme", "collected": 500, "contributors": 3}}
	fr.Data["billing_by_company"] = []bson.M{{"_id": "Acme", "billed": 800}}
	a := newTestAssembler(fr, defaultConfig())

	f := a.Build(testContext(t)).Financial

	if f.Source != models.SourceDatabase || !f.HasRealData {
		t.Fatalf("financial provenance = %+v, want live", f.Provenance)
	}
	if len(f.Trend) != 8 {
		t.Fatalf("trend has %d points, want 8", len(f.Trend))
	}
	last := f.Trend[7]
	if last.Month != "2026-03-01" || last.Collected != 500 || last.Billed != 800 {
		t.Errorf("last trend point = %+v", last)
	}
	if f.CollectionDiagnostics.Source != models.SourceDatabase {
		t.Errorf("collectionDiagnostics.source = %q, want database", f.CollectionDiagnostics.Source)
	}
	if f.TotalCollected != 500 || f.TotalBilled != 800 || f.Outstanding != 300 {
		t.Errorf("totals = %v/%v/%v, want 500/800/300", f.TotalCollected, f.TotalBilled, f.Outstanding)
	}
	if f.CollectionRate == nil || *f.CollectionRate != 62.5 {
		t.Errorf("collectionRate = %v, want 62.5", f.CollectionRate)
	}
	if len(f.TopCompanies) != 1 {
		t.Fatalf("topCompanies = %+v, want 1 row", f.TopCompanies)
	}
	if c := f.TopCompanies[0]; c.Company != "Acme" || c.Members != 3 {
		t.Errorf("topCompanies[0] = %+v, want Acme with 3 members", c)
	}
}

func TestBuild_FinancialTrendFallsBackAlone(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["billing_by_company"] = []bson.M{{"_id": "Acme", "billed": 800}}
	a := newTestAssembler(fr, defaultConfig())

	f := a.Build(testContext(t)).Financial

	if !f.HasRealData {
		t.Fatal("financial.hasRealData = false, want true from real top companies")
	}
	collected, billed := samples.Default().Trend()
	want := timeseries.Sample(timeseries.Skeleton(fixedNow, 8), collected, billed)
	if !reflect.DeepEqual(f.Trend, want) {
		t.Errorf("trend = %+v, want the sample series", f.Trend)
	}
	if f.CollectionDiagnostics.Source != models.SourceSample {
		t.Errorf("collectionDiagnostics.source = %q, want sample", f.CollectionDiagnostics.Source)
	}
	if r := f.CollectionDiagnostics.Reason; r == nil || *r != timeseries.ReasonNoRecords {
		t.Errorf("collectionDiagnostics.reason = %v, want %q", r, timeseries.ReasonNoRecords)
	}
}

func TestBuild_Settings(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["setting_ai_assist"] = []bson.M{{
		"key":   "ai_assist",
		"value": bson.M{"enabled": true, "model": "assist-v3", "accuracy": 0.67, "automationRate": 67},
	}}
	fr.Data["setting_report_builder"] = []bson.M{{
		"key":   "report_builder",
		"value": bson.M{"exportFormats": bson.A{"CSV", "<b>JSON</b>"}},
	}}
	a := newTestAssembler(fr, defaultConfig())

	got := a.Build(testContext(t))

	ai := got.AI
	if ai.Source != models.SourceDatabase || !ai.HasRealData {
		t.Fatalf("ai provenance = %+v, want live", ai.Provenance)
	}
	if ai.AccuracyRate == nil || *ai.AccuracyRate != 67 {
		t.Errorf("accuracyRate = %v, want 67", ai.AccuracyRate)
	}
	if ai.AutomationRate == nil || *ai.AutomationRate != 67 {
		t.Errorf("automationRate = %v, want 67", ai.AutomationRate)
	}
	if ai.SatisfactionRate != nil {
		t.Errorf("satisfactionRate = %v, want nil", *ai.SatisfactionRate)
	}
	if ai.Model != "assist-v3" || !ai.Enabled {
		t.Errorf("model/enabled = %q/%v", ai.Model, ai.Enabled)
	}

	rb := got.ReportBuilder
	if !rb.HasRealData {
		t.Fatal("reportBuilder.hasRealData = false, want true")
	}
	wantFormats := []models.Option{{Value: "csv", Label: "CSV"}, {Value: "json", Label: "JSON"}}
	if !reflect.DeepEqual(rb.ExportFormats, wantFormats) {
		t.Errorf("exportFormats = %+v, want %+v", rb.ExportFormats, wantFormats)
	}
	if len(rb.ReportTypes) == 0 || len(rb.DateRanges) != 4 {
		t.Errorf("defaulted lists not filled: %+v", rb)
	}

	joined := strings.Join(got.Meta.Diagnostics.Issues, "\n")
	if !strings.Contains(joined, "satisfactionRate") {
		t.Errorf("issues do not list missing metrics: %v", got.Meta.Diagnostics.Issues)
	}
}

func TestBuild_SystemHealth(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["populated_collections"] = []bson.M{
		{"collection": "members"}, {"collection": "payments"}, {"collection": "members"}, {"collection": "unknown"},
	}
	fr.Data["db_stats"] = []bson.M{{"storageSize": 40000000, "indexSize": 8234496}}
	fr.Data["server_status"] = []bson.M{{"uptime": 3600, "opcounters": bson.M{"query": 1800, "command": 1800}}}
	a := newTestAssembler(fr, defaultConfig())

	sh := a.Build(testContext(t)).SystemHealth

	if !sh.HasRealData {
		t.Fatal("systemHealth.hasRealData = false, want true")
	}
	if sh.PopulatedTables != 2 || sh.TrackedTables != 8 {
		t.Errorf("populated/tracked = %v/%v, want 2/8", sh.PopulatedTables, sh.TrackedTables)
	}
	if sh.DatabaseHealth == nil || *sh.DatabaseHealth != 25 {
		t.Errorf("databaseHealth = %v, want 25", sh.DatabaseHealth)
	}
	if sh.StorageBytes != 48234496 || sh.StorageLabel != "48 MB" {
		t.Errorf("storage = %v %q, want 48234496 \"48 MB\"", sh.StorageBytes, sh.StorageLabel)
	}
	if sh.QueriesPerSecond != 1 || sh.SimulatedLatencyMs != 800 {
		t.Errorf("qps/latency = %v/%v, want 1/800", sh.QueriesPerSecond, sh.SimulatedLatencyMs)
	}
	if sh.Status != "degraded" {
		t.Errorf("status = %q, want degraded", sh.Status)
	}
}

func TestBuild_TablesQueryFailureNullsHealth(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Errs["populated_collections"] = errors.New("unionWith unsupported")
	fr.Data["server_status"] = []bson.M{{"uptime": 100}}
	a := newTestAssembler(fr, Config{TrendMonths: 8, Concurrency: 4, SampleFallback: false})

	sh := a.Build(testContext(t)).SystemHealth

	if sh.DatabaseHealth != nil {
		t.Errorf("databaseHealth = %v, want nil", *sh.DatabaseHealth)
	}
	if sh.HasRealData {
		t.Error("systemHealth.hasRealData = true, want false without populated collections")
	}
	if sh.UptimeSeconds != 100 {
		t.Errorf("uptimeSeconds = %v, want 100", sh.UptimeSeconds)
	}
}

func TestBuild_ServerStatsAloneServeSample(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["server_status"] = []bson.M{{"uptime": 3600, "opcounters": bson.M{"query": 10}}}
	fr.Data["db_stats"] = []bson.M{{"storageSize": 4096, "indexSize": 4096}}
	a := newTestAssembler(fr, defaultConfig())

	got := a.Build(testContext(t))

	if !got.Meta.IsSample {
		t.Fatalf("meta.isSample = false, want true (warnings %v)", got.Meta.Warnings)
	}
	if got.Meta.AlertType != models.AlertInfo {
		t.Errorf("alertType = %q, want %q", got.Meta.AlertType, models.AlertInfo)
	}
	if len(got.Meta.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", got.Meta.Warnings)
	}
	want := samples.Default().Payload(fixedNow, 8)
	if !reflect.DeepEqual(withoutMeta(got), withoutMeta(want)) {
		t.Error("payload sections differ from the sample fixture")
	}
}

func TestBuild_MembersDemographics(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["member_counts"] = []bson.M{{"totalMembers": 4, "approvedMembers": 4}}
	fr.Data["new_members"] = []bson.M{{"thisMonth": 3, "lastMonth": 2}}
	fr.Data["member_tenure"] = []bson.M{
		{"employmentStartDate": fixedNow.AddDate(0, -6, 0)},
		{"employmentStartDate": "2020-05-01"},
		{"employmentStartDate": fixedNow.AddDate(-30, 0, 0)},
		{"employmentStartDate": "not a date"},
	}
	fr.Data["members_by_company"] = []bson.M{
		{"_id": "Acme", "approved": 3, "total": 3, "new30d": 1},
		{"_id": "Globex", "approved": 1, "total": 1},
	}
	a := newTestAssembler(fr, defaultConfig())

	m := a.Build(testContext(t)).Members

	if m.GrowthPercent == nil || *m.GrowthPercent != 50 || m.GrowthTone != "positive" {
		t.Errorf("growth = %v %q, want 50 positive", m.GrowthPercent, m.GrowthTone)
	}
	counts := map[string]float64{}
	for _, b := range m.TenureBuckets {
		counts[b.ID] = b.Value
	}
	want := map[string]float64{"under-1": 1, "1-5": 1, "6-10": 0, "11-20": 0, "21-plus": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("tenure buckets = %v, want %v", counts, want)
	}
	if m.Employers != 2 {
		t.Errorf("employers = %v, want 2 from company stats", m.Employers)
	}
	if len(m.CompanyStats) != 2 || m.CompanyStats[0].Company != "Acme" {
		t.Errorf("companyStats = %+v", m.CompanyStats)
	}
	if got := m.CompanyStats[0].NewJoinersByRange[models.Range30Days]; got != 1 {
		t.Errorf("Acme new 30d = %v, want 1", got)
	}
}

func TestBuild_Registration(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["registration_counts"] = []bson.M{{"total": 10, "approved": 8, "pending": 1, "rejected": 1, "thisMonth": 2, "lastMonth": 4}}
	fr.Data["member_identities"] = []bson.M{
		{"fullName": "Juan Dela Cruz", "dateOfBirth": "1990-04-12"},
		{"fullName": "  JUAN dela cruz", "dateOfBirth": "1990-04-12"},
		{"firstName": "Maria", "lastName": "Santos", "dateOfBirth": "1985-01-01"},
		{"fullName": "Maria Santos", "dateOfBirth": "1985-01-01"},
	}
	a := newTestAssembler(fr, defaultConfig())

	r := a.Build(testContext(t)).Registration

	if !r.HasRealData {
		t.Fatal("registration.hasRealData = false")
	}
	if r.TrendPercent == nil || *r.TrendPercent != -50 || r.TrendTone != "negative" {
		t.Errorf("trend = %v %q, want -50 negative", r.TrendPercent, r.TrendTone)
	}
	if r.ApprovalRate == nil || *r.ApprovalRate != 80 {
		t.Errorf("approvalRate = %v, want 80", r.ApprovalRate)
	}
	if r.DuplicateGroups != 2 || r.DuplicateCount != 2 {
		t.Errorf("duplicates = %v groups / %v count, want 2/2", r.DuplicateGroups, r.DuplicateCount)
	}
	if r.DuplicateRate == nil || *r.DuplicateRate != 50 {
		t.Errorf("duplicateRate = %v, want 50", r.DuplicateRate)
	}
}

func TestBuild_DuesTicketsEventsBenefits(t *testing.T) {
	fr := testutil.NewFakeRunner()
	fr.Data["dues_current"] = []bson.M{{"billed": 5000, "collected": 4500, "membersBilled": 10, "membersPaid": 9}}
	fr.Data["ticket_counts"] = []bson.M{{"total": 4, "open": 1, "inProgress": 1, "resolved": 1, "closed": 1, "avgResolutionHours": 12.3456}}
	fr.Data["event_counts"] = []bson.M{{"total": 3, "upcoming": 1, "thisMonth": 1, "past": 2, "attendees": 120}}
	fr.Data["benefit_counts"] = []bson.M{{"total": 4, "approved": 3, "pending": 1, "disbursed": "15,000"}}
	fr.Data["benefits_by_type"] = []bson.M{{"_id": "Medical", "count": 1}, {"_id": "Calamity", "count": 3}}
	a := newTestAssembler(fr, defaultConfig())

	got := a.Build(testContext(t))

	d := got.Dues
	if d.Period != "2026-03-01" || d.MembersInArrears != 1 {
		t.Errorf("dues = %+v", d)
	}
	if d.ComplianceRate == nil || *d.ComplianceRate != 90 || d.AverageDues == nil || *d.AverageDues != 500 {
		t.Errorf("dues rates = %v/%v, want 90/500", d.ComplianceRate, d.AverageDues)
	}

	tk := got.Tickets
	if tk.ResolutionRate == nil || *tk.ResolutionRate != 50 {
		t.Errorf("resolutionRate = %v, want 50", tk.ResolutionRate)
	}
	if tk.AvgResolutionHours == nil || *tk.AvgResolutionHours != 12.35 {
		t.Errorf("avgResolutionHours = %v, want 12.35", tk.AvgResolutionHours)
	}

	if got.Events.Past != 2 || got.Events.TotalAttendees != 120 {
		t.Errorf("events = %+v", got.Events)
	}

	b := got.Benefits
	if b.TotalDisbursed != 15000 {
		t.Errorf("totalDisbursed = %v, want 15000", b.TotalDisbursed)
	}
	if b.ApprovalRate == nil || *b.ApprovalRate != 75 {
		t.Errorf("approvalRate = %v, want 75", b.ApprovalRate)
	}
	if len(b.ByType) != 2 || b.ByType[0].Label != "Calamity" {
		t.Errorf("byType = %+v, want Calamity first", b.ByType)
	}

	p := got.Performance
	if p.EventsHeld != 2 || p.OverallScore == nil || *p.OverallScore != 62.5 {
		t.Errorf("performance = %+v, want 2 events and score 62.5", p)
	}
}

func TestFailed(t *testing.T) {
	a := newTestAssembler(testutil.NewFakeRunner(), defaultConfig())

	got := a.Failed(ErrStoreUnavailable, errors.New("server selection timeout"))

	if !got.Meta.IsSample || got.Meta.AlertType != models.AlertError {
		t.Errorf("meta = %+v, want sample with error alert", got.Meta)
	}
	if got.Meta.Error != ErrStoreUnavailable {
		t.Errorf("meta.error = %q, want %q", got.Meta.Error, ErrStoreUnavailable)
	}
	for name, prov := range allSections(got) {
		if prov.Source != models.SourceSample {
			t.Errorf("%s source = %q, want sample", name, prov.Source)
		}
	}
}

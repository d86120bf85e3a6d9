// internal/app/features/reports/sections.go
package reports

import (
	"math"
	"sort"
	"time"

	summarystore "github.com/dalemusser/stratamember/internal/app/store/summary"
	"github.com/dalemusser/stratamember/internal/app/system/companyagg"
	"github.com/dalemusser/stratamember/internal/app/system/derive"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/app/system/settingsnorm"
	"github.com/dalemusser/stratamember/internal/app/system/timeseries"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"github.com/dustin/go-humanize"
)

// LatencyNote accompanies systemHealth.simulatedLatencyMs.
const LatencyNote = "Estimated from queries per second; not a measured response time."

func live(real bool) models.Provenance {
	return models.Provenance{Source: models.SourceDatabase, HasRealData: real}
}

// companyCounts converts members.byCompany rows for the company aggregator.
func companyCounts(rows []summarystore.CompanyMembersRow) []companyagg.MemberCounts {
	out := make([]companyagg.MemberCounts, 0, len(rows))
	for _, r := range rows {
		out = append(out, companyagg.MemberCounts{
			Company:          r.Company,
			Approved:         r.Approved.F(),
			TotalAllStatuses: r.Total.F(),
			NewJoiners: map[models.RangeKey]float64{
				models.Range7Days:   r.New7d.F(),
				models.Range30Days:  r.New30d.F(),
				models.Range90Days:  r.New90d.F(),
				models.Range12Month: r.New12m.F(),
			},
		})
	}
	return out
}

func membersSection(s *sources, now time.Time) models.MembersSection {
	mc := s.memberCounts
	approved := mc.ApprovedMembers.F()
	all := mc.TotalMembers.F()

	var tenures []float64
	for _, r := range s.tenure {
		if start, ok := normalize.Time(r.EmploymentStart); ok {
			tenures = append(tenures, derive.TenureYears(start, now))
		}
	}

	stats := companyagg.Stats(companyCounts(s.byCompany))
	employers := s.employers.Employers.F()
	if employers == 0 {
		employers = float64(len(stats))
	}

	growth := derive.GrowthPercent(s.newMembers.ThisMonth.F(), s.newMembers.LastMonth.F())
	return models.MembersSection{
		Provenance:       live(all > 0),
		Total:            approved,
		TotalAllStatuses: all,
		Pending:          mc.PendingMembers.F(),
		Inactive:         derive.NonNegative(all - approved),
		RetentionRate:    derive.RetentionRate(approved, all),
		NewThisMonth:     s.newMembers.ThisMonth.F(),
		NewLastMonth:     s.newMembers.LastMonth.F(),
		GrowthPercent:    growth,
		GrowthTone:       derive.TrendTone(growth),
		Employers:        employers,
		TenureBuckets:    derive.BucketTenures(tenures, derive.DefaultTenureBuckets()),
		CompanyStats:     stats,
	}
}

func monthRows(rows []summarystore.MonthAmountRow) []timeseries.MonthRow {
	out := make([]timeseries.MonthRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, timeseries.MonthRow{Month: r.Month, Amount: r.Amount.F()})
	}
	return out
}

func sumValues(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}

// financialSection derives the collections picture. Empty top companies
// are filled from sample; the returned issues explain every substitution.
func financialSection(s *sources, now time.Time, months int, sample models.SummaryPayload, sampleCollected, sampleBilled []float64) (models.FinancialSection, []string) {
	payments := monthRows(s.payments)
	billing := monthRows(s.billing)
	trend, diag := timeseries.Build(now, months, payments, billing, sampleCollected, sampleBilled)
	issues := append([]string(nil), diag.Issues...)

	members := make([]companyagg.Membership, 0, len(s.byCompany))
	for _, r := range s.byCompany {
		members = append(members, companyagg.Membership{Company: r.Company, Members: r.Approved.F()})
	}
	collections := make([]companyagg.Collection, 0, len(s.companyCollections))
	for _, r := range s.companyCollections {
		collections = append(collections, companyagg.Collection{Company: r.Company, Collected: r.Collected.F(), Contributors: r.Contributors.F()})
	}
	billed := make([]companyagg.Billing, 0, len(s.companyBilling))
	for _, r := range s.companyBilling {
		billed = append(billed, companyagg.Billing{Company: r.Company, Billed: r.Billed.F()})
	}
	top := companyagg.Aggregate(members, collections, billed)
	realTop := len(top) > 0
	if !realTop {
		top = sample.Financial.TopCompanies
		issues = append(issues, "top companies replaced by sample data: no company collections or billing in the trend window")
	}

	totalCollected := derive.Round2(sumValues(timeseries.Sum(payments)))
	totalBilled := derive.Round2(sumValues(timeseries.Sum(billing)))

	return models.FinancialSection{
		Provenance:            live(diag.Source == models.SourceDatabase || realTop),
		TotalCollected:        totalCollected,
		TotalBilled:           totalBilled,
		Outstanding:           derive.Round2(derive.NonNegative(totalBilled - totalCollected)),
		CollectionRate:        derive.CollectionRate(totalCollected, totalBilled),
		Trend:                 trend,
		CollectionDiagnostics: diag,
		TopCompanies:          top,
	}, issues
}

func ticketsSection(s *sources) models.TicketsSection {
	t := s.tickets
	total := t.Total.F()
	var avg *float64
	if t.AvgResolutionHours != nil && !math.IsNaN(*t.AvgResolutionHours) && !math.IsInf(*t.AvgResolutionHours, 0) {
		avg = derive.Ptr(derive.Round2(derive.NonNegative(*t.AvgResolutionHours)))
	}
	return models.TicketsSection{
		Provenance:         live(total > 0),
		Total:              total,
		Open:               t.Open.F(),
		InProgress:         t.InProgress.F(),
		Resolved:           t.Resolved.F(),
		Closed:             t.Closed.F(),
		ResolutionRate:     derive.Percent(t.Resolved.F()+t.Closed.F(), total),
		AvgResolutionHours: avg,
	}
}

func eventsSection(s *sources) models.EventsSection {
	e := s.events
	return models.EventsSection{
		Provenance:     live(e.Total.F() > 0),
		Total:          e.Total.F(),
		Upcoming:       e.Upcoming.F(),
		ThisMonth:      e.ThisMonth.F(),
		Past:           e.Past.F(),
		TotalAttendees: e.Attendees.F(),
	}
}

func benefitsSection(s *sources) models.BenefitsSection {
	b := s.benefits
	total := b.Total.F()

	byType := make([]models.LabeledValue, 0, len(s.benefitTypes))
	for _, r := range s.benefitTypes {
		label := normalize.Company(r.Type)
		if label == "" {
			label = "Other"
		}
		byType = append(byType, models.LabeledValue{Label: label, Value: r.Count.F()})
	}
	sort.SliceStable(byType, func(i, j int) bool { return byType[i].Value > byType[j].Value })

	return models.BenefitsSection{
		Provenance:     live(total > 0),
		Total:          total,
		Approved:       b.Approved.F(),
		Pending:        b.Pending.F(),
		Rejected:       b.Rejected.F(),
		TotalDisbursed: derive.Round2(b.Disbursed.F()),
		ApprovalRate:   derive.Percent(b.Approved.F(), total),
		ByType:         byType,
	}
}

func duesSection(s *sources, now time.Time) models.DuesSection {
	d := s.dues
	billed := d.Billed.F()
	membersBilled := d.MembersBilled.F()

	var avg *float64
	if membersBilled > 0 {
		avg = derive.Ptr(derive.Round2(billed / membersBilled))
	}
	return models.DuesSection{
		Provenance:       live(membersBilled > 0 || billed > 0),
		Period:           timeseries.Key(now),
		Billed:           derive.Round2(billed),
		Collected:        derive.Round2(d.Collected.F()),
		MembersBilled:    membersBilled,
		MembersPaid:      d.MembersPaid.F(),
		MembersInArrears: derive.NonNegative(membersBilled - d.MembersPaid.F()),
		ComplianceRate:   derive.Percent(d.MembersPaid.F(), membersBilled),
		AverageDues:      avg,
	}
}

func registrationSection(s *sources) models.RegistrationSection {
	r := s.registration
	total := r.Total.F()

	people := make([]derive.Person, 0, len(s.people))
	for _, p := range s.people {
		dob, _ := normalize.Time(p.DateOfBirth)
		people = append(people, derive.Person{FullName: p.Name(), BirthDate: dob})
	}
	dups := derive.DetectDuplicates(people)

	trend := derive.GrowthPercent(r.ThisMonth.F(), r.LastMonth.F())
	return models.RegistrationSection{
		Provenance:      live(total > 0),
		Total:           total,
		Approved:        r.Approved.F(),
		Pending:         r.Pending.F(),
		Rejected:        r.Rejected.F(),
		ThisMonth:       r.ThisMonth.F(),
		LastMonth:       r.LastMonth.F(),
		TrendPercent:    trend,
		TrendTone:       derive.TrendTone(trend),
		ApprovalRate:    derive.Percent(r.Approved.F(), total),
		DuplicateGroups: float64(dups.Groups),
		DuplicateCount:  float64(dups.Count),
		DuplicateRate:   dups.Rate,
	}
}

// systemHealthSection derives store health. tablesFailed reports whether
// the populated-collections query failed, which makes databaseHealth null.
// Server uptime alone is not live data: an empty database still answers
// serverStatus.
func systemHealthSection(s *sources, tablesFailed bool) models.SystemHealthSection {
	tracked := make(map[string]bool, len(summarystore.TrackedCollections))
	for _, c := range summarystore.TrackedCollections {
		tracked[c] = true
	}
	seen := make(map[string]bool)
	for _, r := range s.populated {
		if tracked[r.Collection] {
			seen[r.Collection] = true
		}
	}
	populated := float64(len(seen))
	trackedCount := float64(len(tracked))
	dbHealth := derive.DatabaseHealth(populated, trackedCount, tablesFailed)

	bytes := derive.NonNegative(s.storage.Bytes())
	uptime := derive.NonNegative(s.server.Uptime.F())
	qps := derive.QueriesPerSecond(s.server.Opcounters.Total(), uptime)

	return models.SystemHealthSection{
		Provenance:         live(!tablesFailed && populated >= 1),
		Status:             derive.HealthStatus(dbHealth, uptime),
		DatabaseHealth:     dbHealth,
		PopulatedTables:    populated,
		TrackedTables:      trackedCount,
		StorageBytes:       bytes,
		StorageLabel:       humanize.Bytes(uint64(bytes)),
		UptimeSeconds:      uptime,
		UptimePercent:      derive.UptimePercent(uptime),
		QueriesPerSecond:   qps,
		SimulatedLatencyMs: derive.SimulatedLatencyMs(qps),
		LatencyNote:        LatencyNote,
	}
}

// aiSection derives AI-assist metrics. The second return lists metrics the
// setting did not provide when the setting exists.
func aiSection(s *sources) (models.AISection, []string) {
	m := settingsnorm.NormalizeAIMetrics(settingValue(s.aiSetting))
	var missing []string
	if m.Present {
		missing = m.Missing
	}
	return models.AISection{
		Provenance:           live(m.Present && m.Count() >= 1),
		Enabled:              m.Enabled,
		Model:                m.Model,
		AccuracyRate:         m.Accuracy,
		AutomationRate:       m.Automation,
		SatisfactionRate:     m.Satisfaction,
		AdoptionRate:         m.Adoption,
		SuggestionsGenerated: m.Suggestions,
	}, missing
}

func reportBuilderSection(s *sources) models.ReportBuilderSection {
	rb := settingsnorm.NormalizeReportBuilder(settingValue(s.rbSetting))
	return models.ReportBuilderSection{
		Provenance:    live(rb.Custom()),
		ReportTypes:   rb.ReportTypes,
		DateRanges:    rb.DateRanges,
		Filters:       rb.Filters,
		ExportFormats: rb.ExportFormats,
	}
}

// performanceSection condenses the derived sections before any sample
// substitution, so it never mixes live and sample figures. Rates of
// sections without real data are null.
func performanceSection(m models.MembersSection, f models.FinancialSection, t models.TicketsSection, b models.BenefitsSection, e models.EventsSection) models.PerformanceSection {
	var p models.PerformanceSection
	if m.HasRealData {
		p.MembersServed = m.Total
		p.RetentionRate = m.RetentionRate
	}
	if f.HasRealData {
		p.CollectionRate = f.CollectionRate
	}
	if t.HasRealData {
		p.TicketResolutionRate = t.ResolutionRate
	}
	if b.HasRealData {
		p.BenefitApprovalRate = b.ApprovalRate
	}
	if e.HasRealData {
		p.EventsHeld = e.Past
	}
	p.OverallScore = derive.Average(p.RetentionRate, p.CollectionRate, p.TicketResolutionRate, p.BenefitApprovalRate)
	p.Provenance = live(m.HasRealData || f.HasRealData || t.HasRealData || b.HasRealData || e.HasRealData)
	return p
}

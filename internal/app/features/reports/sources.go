// internal/app/features/reports/sources.go
package reports

import (
	"context"

	summarystore "github.com/dalemusser/stratamember/internal/app/store/summary"
	"github.com/dalemusser/stratamember/internal/app/system/safequery"
	"golang.org/x/sync/errgroup"
)

// Source labels, as they appear in logs, metrics and meta.diagnostics.perSource.
const (
	LabelMemberCounts       = "members.counts"
	LabelNewMembers         = "members.new"
	LabelMembersByCompany   = "members.byCompany"
	LabelMemberTenure       = "members.tenure"
	LabelMemberDuplicates   = "members.duplicates"
	LabelEmployerCount      = "employers.count"
	LabelTicketCounts       = "tickets.counts"
	LabelEventCounts        = "events.counts"
	LabelBenefitCounts      = "benefits.counts"
	LabelBenefitsByType     = "benefits.byType"
	LabelDuesCurrent        = "dues.current"
	LabelRegistrationCounts = "registration.counts"
	LabelPayments           = "financial.payments"
	LabelBilling            = "financial.billing"
	LabelCompanyCollections = "financial.companyCollections"
	LabelCompanyBilling     = "financial.companyBilling"
	LabelTables             = "system.tables"
	LabelStorage            = "system.storage"
	LabelServer             = "system.server"
	LabelAISetting          = "settings.ai"
	LabelReportBuilder      = "settings.reportBuilder"
)

// sources holds the result of every summary query. Each fan-out goroutine
// writes exactly one field.
type sources struct {
	memberCounts       summarystore.MemberCountsRow
	newMembers         summarystore.NewMembersRow
	byCompany          []summarystore.CompanyMembersRow
	tenure             []summarystore.TenureRow
	people             []summarystore.PersonRow
	employers          summarystore.EmployerCountRow
	tickets            summarystore.TicketCountsRow
	events             summarystore.EventCountsRow
	benefits           summarystore.BenefitCountsRow
	benefitTypes       []summarystore.BenefitTypeRow
	dues               summarystore.DuesRow
	registration       summarystore.RegistrationCountsRow
	payments           []summarystore.MonthAmountRow
	billing            []summarystore.MonthAmountRow
	companyCollections []summarystore.CompanyCollectionRow
	companyBilling     []summarystore.CompanyBillingRow
	populated          []summarystore.PopulatedRow
	storage            summarystore.StorageRow
	server             summarystore.ServerRow
	aiSetting          []summarystore.SettingRow
	rbSetting          []summarystore.SettingRow
}

// fetch runs every summary query concurrently, at most limit at a time,
// and waits for all of them. Failures never abort the group: each query
// falls back to its own default and is recorded in trail.
func fetch(ctx context.Context, ex *safequery.Executor, trail *safequery.Trail, w summarystore.Window, limit int) *sources {
	var s sources
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	run := func(fn func()) {
		g.Go(func() error {
			fn()
			return nil
		})
	}

	run(func() {
		rows := safequery.Run[summarystore.MemberCountsRow](ctx, ex, trail, LabelMemberCounts, summarystore.MemberCounts(), nil)
		s.memberCounts = safequery.First(rows, summarystore.MemberCountsRow{})
	})
	run(func() {
		rows := safequery.Run[summarystore.NewMembersRow](ctx, ex, trail, LabelNewMembers, summarystore.NewMembers(w), nil)
		s.newMembers = safequery.First(rows, summarystore.NewMembersRow{})
	})
	run(func() {
		s.byCompany = safequery.Run[summarystore.CompanyMembersRow](ctx, ex, trail, LabelMembersByCompany, summarystore.MembersByCompany(w), nil)
	})
	run(func() {
		s.tenure = safequery.Run[summarystore.TenureRow](ctx, ex, trail, LabelMemberTenure, summarystore.MemberTenure(), nil)
	})
	run(func() {
		s.people = safequery.Run[summarystore.PersonRow](ctx, ex, trail, LabelMemberDuplicates, summarystore.MemberIdentities(), nil)
	})
	run(func() {
		rows := safequery.Run[summarystore.EmployerCountRow](ctx, ex, trail, LabelEmployerCount, summarystore.EmployerCount(), nil)
		s.employers = safequery.First(rows, summarystore.EmployerCountRow{})
	})
	run(func() {
		rows := safequery.Run[summarystore.TicketCountsRow](ctx, ex, trail, LabelTicketCounts, summarystore.TicketCounts(), nil)
		s.tickets = safequery.First(rows, summarystore.TicketCountsRow{})
	})
	run(func() {
		rows := safequery.Run[summarystore.EventCountsRow](ctx, ex, trail, LabelEventCounts, summarystore.EventCounts(w), nil)
		s.events = safequery.First(rows, summarystore.EventCountsRow{})
	})
	run(func() {
		rows := safequery.Run[summarystore.BenefitCountsRow](ctx, ex, trail, LabelBenefitCounts, summarystore.BenefitCounts(), nil)
		s.benefits = safequery.First(rows, summarystore.BenefitCountsRow{})
	})
	run(func() {
		s.benefitTypes = safequery.Run[summarystore.BenefitTypeRow](ctx, ex, trail, LabelBenefitsByType, summarystore.BenefitsByType(), nil)
	})
	run(func() {
		rows := safequery.Run[summarystore.DuesRow](ctx, ex, trail, LabelDuesCurrent, summarystore.DuesCurrent(w), nil)
		s.dues = safequery.First(rows, summarystore.DuesRow{})
	})
	run(func() {
		rows := safequery.Run[summarystore.RegistrationCountsRow](ctx, ex, trail, LabelRegistrationCounts, summarystore.RegistrationCounts(w), nil)
		s.registration = safequery.First(rows, summarystore.RegistrationCountsRow{})
	})
	run(func() {
		s.payments = safequery.Run[summarystore.MonthAmountRow](ctx, ex, trail, LabelPayments, summarystore.PaymentsByMonth(w), nil)
	})
	run(func() {
		s.billing = safequery.Run[summarystore.MonthAmountRow](ctx, ex, trail, LabelBilling, summarystore.BillingByMonth(w), nil)
	})
	run(func() {
		s.companyCollections = safequery.Run[summarystore.CompanyCollectionRow](ctx, ex, trail, LabelCompanyCollections, summarystore.CollectionsByCompany(w), nil)
	})
	run(func() {
		s.companyBilling = safequery.Run[summarystore.CompanyBillingRow](ctx, ex, trail, LabelCompanyBilling, summarystore.BillingByCompany(w), nil)
	})
	run(func() {
		s.populated = safequery.Run[summarystore.PopulatedRow](ctx, ex, trail, LabelTables, summarystore.PopulatedCollections(), nil)
	})
	run(func() {
		rows := safequery.Run[summarystore.StorageRow](ctx, ex, trail, LabelStorage, summarystore.StorageStats(), nil)
		s.storage = safequery.First(rows, summarystore.StorageRow{})
	})
	run(func() {
		rows := safequery.Run[summarystore.ServerRow](ctx, ex, trail, LabelServer, summarystore.ServerStatus(), nil)
		s.server = safequery.First(rows, summarystore.ServerRow{})
	})
	run(func() {
		s.aiSetting = safequery.Run[summarystore.SettingRow](ctx, ex, trail, LabelAISetting, summarystore.Setting(summarystore.SettingAIAssist), nil)
	})
	run(func() {
		s.rbSetting = safequery.Run[summarystore.SettingRow](ctx, ex, trail, LabelReportBuilder, summarystore.Setting(summarystore.SettingReportBuilder), nil)
	})

	_ = g.Wait()
	return &s
}

// settingValue returns the value of the first settings row, or nil.
func settingValue(rows []summarystore.SettingRow) any {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].Value
}

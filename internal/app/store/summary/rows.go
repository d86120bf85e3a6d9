// internal/app/store/summary/rows.go
package summarystore

import (
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
)

// One record type per summary query. Numeric fields use normalize.Num so
// that strings, decimals and nulls decode without error; the zero value of
// each record is its documented default.

// MemberCountsRow is the members.counts result.
type MemberCountsRow struct {
	TotalMembers    normalize.Num `bson:"totalMembers"`
	ApprovedMembers normalize.Num `bson:"approvedMembers"`
	PendingMembers  normalize.Num `bson:"pendingMembers"`
	RejectedMembers normalize.Num `bson:"rejectedMembers"`
}

// NewMembersRow is the members.new result.
type NewMembersRow struct {
	ThisMonth normalize.Num `bson:"thisMonth"`
	LastMonth normalize.Num `bson:"lastMonth"`
}

// CompanyMembersRow is one members.byCompany row.
type CompanyMembersRow struct {
	Company  string        `bson:"_id"`
	Approved normalize.Num `bson:"approved"`
	Total    normalize.Num `bson:"total"`
	New7d    normalize.Num `bson:"new7d"`
	New30d   normalize.Num `bson:"new30d"`
	New90d   normalize.Num `bson:"new90d"`
	New12m   normalize.Num `bson:"new12m"`
}

// TenureRow is one members.tenure row.
type TenureRow struct {
	EmploymentStart any `bson:"employmentStartDate"`
}

// PersonRow is one members.duplicates row.
type PersonRow struct {
	FullName    string `bson:"fullName"`
	FirstName   string `bson:"firstName"`
	LastName    string `bson:"lastName"`
	DateOfBirth any    `bson:"dateOfBirth"`
}

// Name returns the full name, assembling it from its parts when needed.
func (p PersonRow) Name() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.FirstName + " " + p.LastName
}

// EmployerCountRow is the employers.count result.
type EmployerCountRow struct {
	Employers normalize.Num `bson:"employers"`
}

// TicketCountsRow is the tickets.counts result.
type TicketCountsRow struct {
	Total              normalize.Num `bson:"total"`
	Open               normalize.Num `bson:"open"`
	InProgress         normalize.Num `bson:"inProgress"`
	Resolved           normalize.Num `bson:"resolved"`
	Closed             normalize.Num `bson:"closed"`
	AvgResolutionHours *float64      `bson:"avgResolutionHours"`
}

// EventCountsRow is the events.counts result.
type EventCountsRow struct {
	Total     normalize.Num `bson:"total"`
	Upcoming  normalize.Num `bson:"upcoming"`
	ThisMonth normalize.Num `bson:"thisMonth"`
	Past      normalize.Num `bson:"past"`
	Attendees normalize.Num `bson:"attendees"`
}

// BenefitCountsRow is the benefits.counts result.
type BenefitCountsRow struct {
	Total     normalize.Num `bson:"total"`
	Approved  normalize.Num `bson:"approved"`
	Pending   normalize.Num `bson:"pending"`
	Rejected  normalize.Num `bson:"rejected"`
	Disbursed normalize.Num `bson:"disbursed"`
}

// BenefitTypeRow is one benefits.byType row.
type BenefitTypeRow struct {
	Type  string        `bson:"_id"`
	Count normalize.Num `bson:"count"`
}

// DuesRow is the dues.current result.
type DuesRow struct {
	Billed        normalize.Num `bson:"billed"`
	Collected     normalize.Num `bson:"collected"`
	MembersBilled normalize.Num `bson:"membersBilled"`
	MembersPaid   normalize.Num `bson:"membersPaid"`
}

// RegistrationCountsRow is the registration.counts result.
type RegistrationCountsRow struct {
	Total     normalize.Num `bson:"total"`
	Approved  normalize.Num `bson:"approved"`
	Pending   normalize.Num `bson:"pending"`
	Rejected  normalize.Num `bson:"rejected"`
	ThisMonth normalize.Num `bson:"thisMonth"`
	LastMonth normalize.Num `bson:"lastMonth"`
}

// MonthAmountRow is one financial.payments or financial.billing row.
type MonthAmountRow struct {
	Month  string        `bson:"_id"` // YYYY-MM-01
	Amount normalize.Num `bson:"amount"`
}

// CompanyCollectionRow is one financial.companyCollections row.
type CompanyCollectionRow struct {
	Company      string        `bson:"_id"`
	Collected    normalize.Num `bson:"collected"`
	Contributors normalize.Num `bson:"contributors"`
}

// CompanyBillingRow is one financial.companyBilling row.
type CompanyBillingRow struct {
	Company string        `bson:"_id"`
	Billed  normalize.Num `bson:"billed"`
}

// PopulatedRow is one system.tables row: a tracked collection holding data.
type PopulatedRow struct {
	Collection string `bson:"collection"`
}

// StorageRow is the system.storage (dbStats) result.
type StorageRow struct {
	DataSize    normalize.Num `bson:"dataSize"`
	StorageSize normalize.Num `bson:"storageSize"`
	IndexSize   normalize.Num `bson:"indexSize"`
	Objects     normalize.Num `bson:"objects"`
}

// Bytes is the on-disk footprint of data and indexes.
func (s StorageRow) Bytes() float64 {
	return s.StorageSize.F() + s.IndexSize.F()
}

// ServerRow is the system.server (serverStatus) result.
type ServerRow struct {
	Uptime     normalize.Num `bson:"uptime"`
	Opcounters Opcounters    `bson:"opcounters"`
}

// Opcounters are the cumulative operation counters of serverStatus.
type Opcounters struct {
	Insert  normalize.Num `bson:"insert"`
	Query   normalize.Num `bson:"query"`
	Update  normalize.Num `bson:"update"`
	Delete  normalize.Num `bson:"delete"`
	Getmore normalize.Num `bson:"getmore"`
	Command normalize.Num `bson:"command"`
}

// Total sums every counter.
func (o Opcounters) Total() float64 {
	return o.Insert.F() + o.Query.F() + o.Update.F() + o.Delete.F() + o.Getmore.F() + o.Command.F()
}

// SettingRow is one settings.* row: an app_settings document.
type SettingRow struct {
	Key   string `bson:"key"`
	Value any    `bson:"value"`
}

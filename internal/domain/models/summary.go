// internal/domain/models/summary.go
package models

import "time"

// Source records where the values of a section came from.
type Source string

const (
	SourceDatabase Source = "database" // live rows from the store
	SourceSample   Source = "sample"   // canonical sample fixture
	SourceEmpty    Source = "empty"    // queries succeeded but had nothing to report
)

// Provenance is embedded in every summary section.
type Provenance struct {
	Source      Source `json:"source"`
	HasRealData bool   `json:"hasRealData"`
}

// RangeKey identifies a new-joiner lookback window.
type RangeKey string

const (
	Range7Days   RangeKey = "7d"
	Range30Days  RangeKey = "30d"
	Range90Days  RangeKey = "90d"
	Range12Month RangeKey = "12m"
)

// RangeKeys lists the supported lookback windows, shortest first.
var RangeKeys = []RangeKey{Range7Days, Range30Days, Range90Days, Range12Month}

// TimeSeriesPoint is one month of the collections/billing trend.
type TimeSeriesPoint struct {
	Month     string  `json:"month"` // YYYY-MM-01
	Label     string  `json:"label"` // Jan, Feb, ...
	Collected float64 `json:"collected"`
	Billed    float64 `json:"billed"`
}

// CompanyStat summarizes membership for one employer.
type CompanyStat struct {
	Company           string               `json:"company"`
	Total             float64              `json:"total"`            // approved members
	TotalAllStatuses  float64              `json:"totalAllStatuses"` // every member record
	Inactive          float64              `json:"inactive"`
	RetentionRate     *float64             `json:"retentionRate"`
	NewJoinersByRange map[RangeKey]float64 `json:"newJoinersByRange"`
}

// CompanyFinancial is one row of the top-companies table.
type CompanyFinancial struct {
	Company        string   `json:"company"`
	Collected      float64  `json:"collected"`
	Billed         float64  `json:"billed"`
	Members        float64  `json:"members"`
	CollectionRate *float64 `json:"collectionRate"`
}

// TenureBucket is one years-of-employment histogram bin, [Min, Max).
// A nil Max means the bucket is open-ended.
type TenureBucket struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max"`
	Value float64  `json:"value"`
}

// LabeledValue is a generic chart point.
type LabeledValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Option is a normalized report-builder choice.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SeriesDiagnostics explains how the collections trend was produced.
type SeriesDiagnostics struct {
	Source Source   `json:"source"`
	Reason *string  `json:"reason"`
	Issues []string `json:"issues"`
}

// SourceReport is the outcome of one store query.
type SourceReport struct {
	Status     string `json:"status"` // ok, empty, failed, timeout
	Rows       int    `json:"rows"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// Source report statuses.
const (
	SourceOK      = "ok"
	SourceNoRows  = "empty"
	SourceFailed  = "failed"
	SourceTimeout = "timeout"
)

// Diagnostics is the per-request fallback trail.
type Diagnostics struct {
	Issues          []string                `json:"issues"`
	FallbackApplied bool                    `json:"fallbackApplied"`
	FallbackReason  *string                 `json:"fallbackReason"`
	PerSource       map[string]SourceReport `json:"perSource"`
}

// Alert types shown by the dashboard banner.
const (
	AlertInfo    = "info"
	AlertWarning = "warning"
	AlertError   = "error"
)

// SummaryMeta describes the response as a whole.
type SummaryMeta struct {
	IsSample      bool         `json:"isSample"`
	Warnings      []string     `json:"warnings"`
	AlertType     string       `json:"alertType,omitempty"`
	AlertMessage  string       `json:"alertMessage,omitempty"`
	Error         string       `json:"error,omitempty"`
	Diagnostics   *Diagnostics `json:"diagnostics,omitempty"`
	RequestID     string       `json:"requestId"`
	GeneratedAt   time.Time    `json:"generatedAt"`
	SampleVersion string       `json:"sampleVersion"`
	WindowStart   string       `json:"windowStart,omitempty"`
	TrendMonths   int          `json:"trendMonths,omitempty"`
}

// MembersSection holds membership counts and demographics.
type MembersSection struct {
	Provenance
	Total            float64        `json:"total"`
	TotalAllStatuses float64        `json:"totalAllStatuses"`
	Pending          float64        `json:"pending"`
	Inactive         float64        `json:"inactive"`
	RetentionRate    *float64       `json:"retentionRate"`
	NewThisMonth     float64        `json:"newThisMonth"`
	NewLastMonth     float64        `json:"newLastMonth"`
	GrowthPercent    *float64       `json:"growthPercent"`
	GrowthTone       string         `json:"growthTone"`
	Employers        float64        `json:"employers"`
	TenureBuckets    []TenureBucket `json:"tenureBuckets"`
	CompanyStats     []CompanyStat  `json:"companyStats"`
}

// FinancialSection holds the collections picture over the trend window.
type FinancialSection struct {
	Provenance
	TotalCollected        float64            `json:"totalCollected"`
	TotalBilled           float64            `json:"totalBilled"`
	Outstanding           float64            `json:"outstanding"`
	CollectionRate        *float64           `json:"collectionRate"`
	Trend                 []TimeSeriesPoint  `json:"trend"`
	CollectionDiagnostics SeriesDiagnostics  `json:"collectionDiagnostics"`
	TopCompanies          []CompanyFinancial `json:"topCompanies"`
}

// TicketsSection holds member support ticket counts.
type TicketsSection struct {
	Provenance
	Total              float64  `json:"total"`
	Open               float64  `json:"open"`
	InProgress         float64  `json:"inProgress"`
	Resolved           float64  `json:"resolved"`
	Closed             float64  `json:"closed"`
	ResolutionRate     *float64 `json:"resolutionRate"`
	AvgResolutionHours *float64 `json:"avgResolutionHours"`
}

// EventsSection holds event listing counts.
type EventsSection struct {
	Provenance
	Total          float64 `json:"total"`
	Upcoming       float64 `json:"upcoming"`
	ThisMonth      float64 `json:"thisMonth"`
	Past           float64 `json:"past"`
	TotalAttendees float64 `json:"totalAttendees"`
}

// BenefitsSection holds benefit claim counts.
type BenefitsSection struct {
	Provenance
	Total          float64        `json:"total"`
	Approved       float64        `json:"approved"`
	Pending        float64        `json:"pending"`
	Rejected       float64        `json:"rejected"`
	TotalDisbursed float64        `json:"totalDisbursed"`
	ApprovalRate   *float64       `json:"approvalRate"`
	ByType         []LabeledValue `json:"byType"`
}

// DuesSection holds the current dues period.
type DuesSection struct {
	Provenance
	Period           string   `json:"period"` // YYYY-MM-01
	Billed           float64  `json:"billed"`
	Collected        float64  `json:"collected"`
	MembersBilled    float64  `json:"membersBilled"`
	MembersPaid      float64  `json:"membersPaid"`
	MembersInArrears float64  `json:"membersInArrears"`
	ComplianceRate   *float64 `json:"complianceRate"`
	AverageDues      *float64 `json:"averageDues"`
}

// RegistrationSection holds registration pipeline and data-quality figures.
type RegistrationSection struct {
	Provenance
	Total           float64  `json:"total"`
	Approved        float64  `json:"approved"`
	Pending         float64  `json:"pending"`
	Rejected        float64  `json:"rejected"`
	ThisMonth       float64  `json:"thisMonth"`
	LastMonth       float64  `json:"lastMonth"`
	TrendPercent    *float64 `json:"trendPercent"`
	TrendTone       string   `json:"trendTone"`
	ApprovalRate    *float64 `json:"approvalRate"`
	DuplicateGroups float64  `json:"duplicateGroups"`
	DuplicateCount  float64  `json:"duplicateCount"`
	DuplicateRate   *float64 `json:"duplicateRate"`
}

// SystemHealthSection holds store health indicators.
//
// SimulatedLatencyMs is derived from queries per second; it is an
// illustrative proxy and not a measured response time.
type SystemHealthSection struct {
	Provenance
	Status             string   `json:"status"` // healthy, degraded, unknown
	DatabaseHealth     *float64 `json:"databaseHealth"`
	PopulatedTables    float64  `json:"populatedTables"`
	TrackedTables      float64  `json:"trackedTables"`
	StorageBytes       float64  `json:"storageBytes"`
	StorageLabel       string   `json:"storageLabel"`
	UptimeSeconds      float64  `json:"uptimeSeconds"`
	UptimePercent      float64  `json:"uptimePercent"`
	QueriesPerSecond   float64  `json:"queriesPerSecond"`
	SimulatedLatencyMs float64  `json:"simulatedLatencyMs"`
	LatencyNote        string   `json:"latencyNote"`
}

// AISection holds AI-assist adoption metrics, all expressed as percentages.
type AISection struct {
	Provenance
	Enabled              bool     `json:"enabled"`
	Model                string   `json:"model"`
	AccuracyRate         *float64 `json:"accuracyRate"`
	AutomationRate       *float64 `json:"automationRate"`
	SatisfactionRate     *float64 `json:"satisfactionRate"`
	AdoptionRate         *float64 `json:"adoptionRate"`
	SuggestionsGenerated float64  `json:"suggestionsGenerated"`
}

// ReportBuilderSection holds the option lists of the report builder.
type ReportBuilderSection struct {
	Provenance
	ReportTypes   []Option `json:"reportTypes"`
	DateRanges    []Option `json:"dateRanges"`
	Filters       []Option `json:"filters"`
	ExportFormats []Option `json:"exportFormats"`
}

// PerformanceSection condenses the other sections into headline figures.
type PerformanceSection struct {
	Provenance
	MembersServed        float64  `json:"membersServed"`
	RetentionRate        *float64 `json:"retentionRate"`
	CollectionRate       *float64 `json:"collectionRate"`
	TicketResolutionRate *float64 `json:"ticketResolutionRate"`
	BenefitApprovalRate  *float64 `json:"benefitApprovalRate"`
	EventsHeld           float64  `json:"eventsHeld"`
	OverallScore         *float64 `json:"overallScore"`
}

// SummaryPayload is the body of GET /reports/summary.
type SummaryPayload struct {
	Meta          SummaryMeta          `json:"meta"`
	Members       MembersSection       `json:"members"`
	Financial     FinancialSection     `json:"financial"`
	Tickets       TicketsSection       `json:"tickets"`
	Events        EventsSection        `json:"events"`
	Benefits      BenefitsSection      `json:"benefits"`
	Dues          DuesSection          `json:"dues"`
	Registration  RegistrationSection  `json:"registration"`
	SystemHealth  SystemHealthSection  `json:"systemHealth"`
	AI            AISection            `json:"ai"`
	ReportBuilder ReportBuilderSection `json:"reportBuilder"`
	Performance   PerformanceSection   `json:"performance"`
}

package settingsnorm

import "github.com/dalemusser/stratamember/internal/domain/models"

// Canonical report-builder option lists.
var (
	DefaultReportTypes = []models.Option{
		{Value: "membership", Label: "Membership Summary"},
		{Value: "financial", Label: "Financial Report"},
		{Value: "dues", Label: "Dues Compliance"},
		{Value: "benefits", Label: "Benefits Utilization"},
		{Value: "events", Label: "Event Attendance"},
		{Value: "tickets", Label: "Support Tickets"},
	}
	DefaultDateRanges = []models.Option{
		{Value: string(models.Range7Days), Label: "Last 7 Days"},
		{Value: string(models.Range30Days), Label: "Last 30 Days"},
		{Value: string(models.Range90Days), Label: "Last 90 Days"},
		{Value: string(models.Range12Month), Label: "Last 12 Months"},
	}
	DefaultFilters = []models.Option{
		{Value: "company", Label: "Company"},
		{Value: "status", Label: "Membership Status"},
		{Value: "tenure", Label: "Years of Employment"},
		{Value: "date-joined", Label: "Date Joined"},
	}
	DefaultExportFormats = []models.Option{
		{Value: "csv", Label: "CSV"},
		{Value: "xlsx", Label: "Excel"},
		{Value: "pdf", Label: "PDF"},
	}
)

// Report-builder list names, as reported in Defaulted.
const (
	ListReportTypes   = "reportTypes"
	ListDateRanges    = "dateRanges"
	ListFilters       = "filters"
	ListExportFormats = "exportFormats"
)

// ReportBuilder is a normalized report-builder setting.
type ReportBuilder struct {
	ReportTypes   []models.Option
	DateRanges    []models.Option
	Filters       []models.Option
	ExportFormats []models.Option
	Defaulted     []string // lists that fell back to their canonical default
}

// Custom reports whether at least one list came from the setting.
func (rb ReportBuilder) Custom() bool {
	return len(rb.Defaulted) < 4
}

// NormalizeReportBuilder normalizes each list of a report-builder setting
// independently. raw may be a document, a JSON string or nil; camelCase and
// snake_case keys are both accepted.
func NormalizeReportBuilder(raw any) ReportBuilder {
	fs, _ := fields(decodeJSON(raw))

	var rb ReportBuilder
	list := func(name string, defaults []models.Option, keys ...string) []models.Option {
		v, _ := lookup(fs, keys...)
		opts, ok := Options(v, defaults)
		if !ok {
			rb.Defaulted = append(rb.Defaulted, name)
		}
		return opts
	}

	rb.ReportTypes = list(ListReportTypes, DefaultReportTypes, "reportTypes", "report_types")
	rb.DateRanges = list(ListDateRanges, DefaultDateRanges, "dateRanges", "date_ranges")
	rb.Filters = list(ListFilters, DefaultFilters, "filters")
	rb.ExportFormats = list(ListExportFormats, DefaultExportFormats, "exportFormats", "export_formats")
	return rb
}

// RangeLabel returns the display label of a lookback window.
func RangeLabel(key models.RangeKey) string {
	for _, o := range DefaultDateRanges {
		if o.Value == string(key) {
			return o.Label
		}
	}
	return string(key)
}

// internal/app/features/reports/export.go
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	summarystore "github.com/dalemusser/stratamember/internal/app/store/summary"
	"github.com/dalemusser/stratamember/internal/app/system/companyagg"
	"github.com/dalemusser/stratamember/internal/app/system/jsonutil"
	"github.com/dalemusser/stratamember/internal/app/system/normalize"
	"github.com/dalemusser/stratamember/internal/app/system/settingsnorm"
	"github.com/dalemusser/stratamember/internal/app/system/timeouts"
	"github.com/dalemusser/stratamember/internal/app/system/timeseries"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServeMembershipExport handles GET /reports/membership-export. It writes
// one CSV row per company, or only the requested company when it exists.
// Unlike the summary, a store failure is reported as a 500.
func (h *Handler) ServeMembershipExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "membership export")
	defer cancel()

	rng := ParseRange(query.Get(r, "range"))
	company := normalize.QueryParam(query.Get(r, "company"))
	if strings.EqualFold(company, "all") {
		company = ""
	}

	now := h.Assembler.now().UTC()
	win := summarystore.NewWindow(now, timeseries.WindowStart(now, h.Assembler.cfg.TrendMonths))

	runner := h.Assembler.exec.Runner()
	if runner == nil {
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to export membership report", "no store configured")
		return
	}
	var rows []summarystore.CompanyMembersRow
	if err := runner.Rows(ctx, summarystore.MembersByCompany(win), &rows); err != nil {
		h.ErrLog.Log(r, "membership export query failed", err)
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to export membership report", err.Error())
		return
	}

	stats := companyagg.Stats(companyCounts(rows))
	if len(stats) == 0 {
		stats = h.Samples.Payload(now, h.Assembler.cfg.TrendMonths).Members.CompanyStats
	}

	slug := "all"
	if company != "" {
		if s, ok := companyagg.Find(stats, company); ok {
			stats = []models.CompanyStat{s}
			slug = normalize.Slug(s.Company)
		}
	}

	filename := fmt.Sprintf("membership_report_%s_%s.csv", rng, slug)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.Log.Error("CSV write failed (BOM)", zap.Error(err))
		return
	}
	if err := WriteMembershipCSV(w, stats, rng); err != nil {
		h.Log.Error("CSV write failed (rows)", zap.Error(err))
		return
	}

	h.Log.Info("membership CSV exported",
		zap.String("range", string(rng)),
		zap.String("company", slug),
		zap.Int("rows", len(stats)),
	)
}

// ParseRange reads a lookback window key. Unknown or empty keys mean 30d.
func ParseRange(s string) models.RangeKey {
	key := models.RangeKey(strings.ToLower(normalize.QueryParam(s)))
	for _, k := range models.RangeKeys {
		if k == key {
			return k
		}
	}
	return models.Range30Days
}

// MembershipHeader is the header row of the membership export.
func MembershipHeader(rng models.RangeKey) []string {
	return []string{"Company", "Active Members", "Inactive Members", "Total Members",
		fmt.Sprintf("New Members (%s)", settingsnorm.RangeLabel(rng)), "Retention Rate"}
}

// WriteMembershipCSV writes the header and one row per company with CRLF
// line endings.
func WriteMembershipCSV(w io.Writer, stats []models.CompanyStat, rng models.RangeKey) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(MembershipHeader(rng)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range stats {
		row := []string{
			GuardFormula(s.Company),
			formatCount(s.Total),
			formatCount(s.Inactive),
			formatCount(s.TotalAllStatuses),
			formatCount(s.NewJoinersByRange[rng]),
			formatRate(s.RetentionRate),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %q: %w", s.Company, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// GuardFormula prefixes values that spreadsheets would evaluate as a
// formula with a single quote.
func GuardFormula(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

func formatCount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatRate(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64) + "%"
}


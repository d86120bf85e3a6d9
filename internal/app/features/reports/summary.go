// internal/app/features/reports/summary.go
package reports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/stratamember/internal/app/system/jsonutil"
	"github.com/dalemusser/stratamember/internal/app/system/timeouts"
	"github.com/dalemusser/stratamember/internal/domain/models"
	"go.uber.org/zap"
)

// Short messages reported in meta.error.
const (
	ErrStoreUnavailable = "database unavailable"
	ErrAssemblyFailed   = "summary could not be assembled"
)

// ServeSummary handles GET /reports/summary. It always answers 200 with a
// complete payload; when the store cannot be reached or assembly fails the
// payload is the sample with meta.alertType "error".
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Request(), h.Log, "reports summary")
	defer cancel()

	jsonutil.OK(w, h.summary(ctx, r))
}

func (h *Handler) summary(ctx context.Context, r *http.Request) (p models.SummaryPayload) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("summary panic: %v", rec)
			h.ErrLog.Log(r, "summary assembly failed", err)
			p = h.Assembler.Failed(ErrAssemblyFailed, err)
		}
	}()

	pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	err := h.Assembler.Ping(pctx)
	cancel()
	if err != nil {
		h.ErrLog.Log(r, "summary store ping failed", err)
		return h.Assembler.Failed(ErrStoreUnavailable, err)
	}

	p = h.Assembler.Build(ctx)
	h.Log.Info("summary served",
		zap.String("request_id", p.Meta.RequestID),
		zap.Bool("is_sample", p.Meta.IsSample),
		zap.Int("warnings", len(p.Meta.Warnings)),
	)
	return p
}

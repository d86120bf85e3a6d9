// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/stratamember/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratamember/internal/app/features/health"
	reportsfeature "github.com/dalemusser/stratamember/internal/app/features/reports"
	ticketstore "github.com/dalemusser/stratamember/internal/app/store/tickets"
	"github.com/dalemusser/stratamember/internal/app/system/apicors"
	"github.com/dalemusser/stratamember/internal/app/system/auth"
	"github.com/dalemusser/stratamember/internal/app/system/jsonutil"
	"github.com/dalemusser/stratamember/internal/app/system/reportmetrics"
	"github.com/dalemusser/stratamember/internal/app/system/safequery"
	"github.com/dalemusser/stratamember/internal/app/system/samples"
	"github.com/dalemusser/stratamember/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, index setup, and
// Startup have completed. The summary engine is assembled here:
//
//	MongoRunner -> Executor (per-query timeout, metrics) -> Assembler -> reports.Handler
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	metrics := reportmetrics.Default()
	runner := safequery.NewMongoRunner(deps.MongoDatabase)
	executor := safequery.NewExecutor(runner, logger, timeouts.Query(), metrics)

	assembler := reportsfeature.NewAssembler(executor, samples.Default(), metrics, logger, reportsfeature.Config{
		TrendMonths:    appCfg.SummaryTrendMonths,
		Concurrency:    appCfg.SummaryMaxConcurrency,
		SampleFallback: appCfg.SummarySampleFallback,
	})

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	reportsHandler := reportsfeature.NewHandler(assembler, ticketstore.New(deps.MongoDatabase), errLog, logger)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request IDs are echoed by the error logger.
	r.Use(chimw.RequestID)

	// Request timeout middleware: the handlers apply their own shorter
	// deadlines; this is the outer bound.
	r.Use(chimw.Timeout(outerTimeout()))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Reporting API: permissive (or origin-listed) CORS, optional Bearer API key.
	r.Route("/reports", func(sr chi.Router) {
		sr.Use(apicors.MiddlewareWithOrigins(appCfg.ReportsAllowedOrigins...))
		if appCfg.APIKey != "" {
			sr.Use(auth.APIKeyAuth(appCfg.APIKey, logger))
		}
		sr.Mount("/", reportsfeature.Routes(reportsHandler))
	})

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(runner, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Prometheus exposition of the engine instruments
	r.Handle("/metrics", promhttp.Handler())

	// 404 catch-all for unmatched routes
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		jsonutil.Error(w, http.StatusNotFound, "Not found", "")
	})

	if appCfg.APIKey == "" {
		logger.Warn("api_key is empty: /reports is served without authentication")
	}
	return r, nil
}

// outerTimeout bounds every request: the longest handler deadline plus a
// margin for writing the response.
func outerTimeout() time.Duration {
	cur := timeouts.Current()
	longest := cur.Request
	if cur.Export > longest {
		longest = cur.Export
	}
	return longest + 5*time.Second
}

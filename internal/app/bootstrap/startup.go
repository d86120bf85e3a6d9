// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratamember/internal/app/system/samples"
	"github.com/dalemusser/stratamember/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It applies the configured timeouts and parses the embedded sample fixture
// so that a broken fixture stops the process here instead of on the first
// degraded request.
//
// Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:    appCfg.SummaryPingTimeout,
		Query:   appCfg.SummaryQueryTimeout,
		Request: appCfg.SummaryRequestTimeout,
		Export:  appCfg.ExportTimeout,
	})

	provider := samples.Default()

	cur := timeouts.Current()
	logger.Info("summary engine configured",
		zap.Int("trend_months", appCfg.SummaryTrendMonths),
		zap.Int("max_concurrency", appCfg.SummaryMaxConcurrency),
		zap.Bool("sample_fallback", appCfg.SummarySampleFallback),
		zap.String("sample_version", provider.Version()),
		zap.Duration("ping_timeout", cur.Ping),
		zap.Duration("query_timeout", cur.Query),
		zap.Duration("request_timeout", cur.Request),
		zap.Duration("export_timeout", cur.Export),
		zap.Bool("api_key_auth", appCfg.APIKey != ""),
	)
	return nil
}

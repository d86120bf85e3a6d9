// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAMEMBER"

// Limits enforced by ValidateConfig.
const (
	maxTrendMonths = 36
	maxConcurrency = 64
)

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, summary_trend_months, etc.
//   - Environment variables: STRATAMEMBER_MONGO_URI, STRATAMEMBER_SUMMARY_TREND_MONTHS, etc.
//   - Command-line flags: --mongo_uri, --summary_trend_months, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratamember", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// API access
	{Name: "api_key", Default: "", Desc: "Bearer API key for /reports (leave empty to disable API key auth)"},
	{Name: "reports_allowed_origins", Default: "", Desc: "Comma-separated browser origins allowed to read /reports (empty allows any)"},

	// Summary engine
	{Name: "summary_trend_months", Default: 8, Desc: "Months in the collections trend (1-36)"},
	{Name: "summary_max_concurrency", Default: 8, Desc: "Summary queries in flight per request"},
	{Name: "summary_sample_fallback", Default: true, Desc: "Show sample values for sections without live data"},
	{Name: "summary_query_timeout", Default: "5s", Desc: "Deadline of one summary query (e.g., 5s, 1500ms)"},
	{Name: "summary_request_timeout", Default: "30s", Desc: "Deadline of a whole summary request"},
	{Name: "summary_ping_timeout", Default: "2s", Desc: "Deadline of the store ping before assembly"},
	{Name: "export_timeout", Default: "60s", Desc: "Deadline of CSV exports and ticket listings"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATAMEMBER_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		APIKey:                appValues.String("api_key"),
		ReportsAllowedOrigins: splitList(appValues.String("reports_allowed_origins")),

		SummaryTrendMonths:    appValues.Int("summary_trend_months"),
		SummaryMaxConcurrency: appValues.Int("summary_max_concurrency"),
		SummarySampleFallback: appValues.Bool("summary_sample_fallback"),
		SummaryQueryTimeout:   appValues.Duration("summary_query_timeout", 5*time.Second),
		SummaryRequestTimeout: appValues.Duration("summary_request_timeout", 30*time.Second),
		SummaryPingTimeout:    appValues.Duration("summary_ping_timeout", 2*time.Second),
		ExportTimeout:         appValues.Duration("export_timeout", 60*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateSummary(appCfg); err != nil {
		logger.Error("invalid summary configuration", zap.Error(err))
		return err
	}
	return nil
}

func validateSummary(appCfg AppConfig) error {
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.SummaryTrendMonths < 1 || appCfg.SummaryTrendMonths > maxTrendMonths {
		return fmt.Errorf("summary_trend_months must be between 1 and %d, got %d", maxTrendMonths, appCfg.SummaryTrendMonths)
	}
	if appCfg.SummaryMaxConcurrency < 1 || appCfg.SummaryMaxConcurrency > maxConcurrency {
		return fmt.Errorf("summary_max_concurrency must be between 1 and %d, got %d", maxConcurrency, appCfg.SummaryMaxConcurrency)
	}
	timeouts := map[string]time.Duration{
		"summary_query_timeout":   appCfg.SummaryQueryTimeout,
		"summary_request_timeout": appCfg.SummaryRequestTimeout,
		"summary_ping_timeout":    appCfg.SummaryPingTimeout,
		"export_timeout":          appCfg.ExportTimeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if appCfg.SummaryQueryTimeout > appCfg.SummaryRequestTimeout {
		return fmt.Errorf("summary_query_timeout (%s) exceeds summary_request_timeout (%s)",
			appCfg.SummaryQueryTimeout, appCfg.SummaryRequestTimeout)
	}
	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Database connection timeouts
//
// The struct is passed to every lifecycle hook, so any configuration needed
// during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// API key authentication for /reports.
	// When set, requests need "Authorization: Bearer <key>". Empty disables the guard.
	APIKey string

	// Origins allowed to read /reports from a browser. Empty allows any origin.
	ReportsAllowedOrigins []string

	// Summary engine
	SummaryTrendMonths    int           // months in the collections trend (default: 8)
	SummaryMaxConcurrency int           // summary queries in flight per request (default: 8)
	SummarySampleFallback bool          // substitute sample values for sections without live data
	SummaryQueryTimeout   time.Duration // deadline of one summary query (default: 5s)
	SummaryRequestTimeout time.Duration // deadline of a whole summary request (default: 30s)
	SummaryPingTimeout    time.Duration // deadline of the store ping before assembly (default: 2s)
	ExportTimeout         time.Duration // deadline of CSV exports and ticket listings (default: 60s)
}

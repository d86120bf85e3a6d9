package bootstrap

import (
	"reflect"
	"testing"
	"time"
)

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:              "mongodb://localhost:27017",
		MongoDatabase:         "stratamember",
		SummaryTrendMonths:    8,
		SummaryMaxConcurrency: 8,
		SummarySampleFallback: true,
		SummaryQueryTimeout:   5 * time.Second,
		SummaryRequestTimeout: 30 * time.Second,
		SummaryPingTimeout:    2 * time.Second,
		ExportTimeout:         60 * time.Second,
	}
}

func TestValidateSummary(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"defaults", func(*AppConfig) {}, false},
		{"one month", func(c *AppConfig) { c.SummaryTrendMonths = 1 }, false},
		{"zero months", func(c *AppConfig) { c.SummaryTrendMonths = 0 }, true},
		{"too many months", func(c *AppConfig) { c.SummaryTrendMonths = 37 }, true},
		{"zero concurrency", func(c *AppConfig) { c.SummaryMaxConcurrency = 0 }, true},
		{"no database", func(c *AppConfig) { c.MongoDatabase = "" }, true},
		{"zero export timeout", func(c *AppConfig) { c.ExportTimeout = 0 }, true},
		{"query longer than request", func(c *AppConfig) { c.SummaryQueryTimeout = time.Minute }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateSummary(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSummary() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ", nil},
		{"https://a.example.org", []string{"https://a.example.org"}},
		{"https://a.example.org, https://b.example.org,", []string{"https://a.example.org", "https://b.example.org"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "mode: DRY_RUN\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Twitter.Source != "MOCK" {
		t.Errorf("Expected default twitter source MOCK, got %q", cfg.Twitter.Source)
	}
	if cfg.Twitter.MaxPosts != 50 {
		t.Errorf("Expected default max posts 50, got %d", cfg.Twitter.MaxPosts)
	}
	if cfg.Stocks.Source != "MOCK" {
		t.Errorf("Expected default stocks source MOCK, got %q", cfg.Stocks.Source)
	}
	if len(cfg.Analysis.Horizons) != 2 || cfg.Analysis.Horizons[0] != 1 || cfg.Analysis.Horizons[1] != 3 {
		t.Errorf("Expected default horizons [1 3], got %v", cfg.Analysis.Horizons)
	}
	if cfg.Analysis.Rules.EngagementPercentile != 90 {
		t.Errorf("Expected default engagement percentile 90, got %f", cfg.Analysis.Rules.EngagementPercentile)
	}
	if cfg.Output.ResultsFile != "data/results.json" {
		t.Errorf("Expected default results file, got %q", cfg.Output.ResultsFile)
	}
	if cfg.Analysis.SuccessThresholdPct == nil || *cfg.Analysis.SuccessThresholdPct != 3.0 {
		t.Errorf("Expected default success threshold 3.0, got %v", cfg.Analysis.SuccessThresholdPct)
	}
}

func TestLoadConfigExplicitZeroSuccessThreshold(t *testing.T) {
	path := writeConfig(t, "mode: DRY_RUN\nanalysis:\n  success_rate_threshold_pct: 0\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// 0 is a deliberate choice (count any rise), not an unset field.
	if cfg.Analysis.SuccessThresholdPct == nil || *cfg.Analysis.SuccessThresholdPct != 0 {
		t.Errorf("Expected explicit 0%% threshold preserved, got %v", cfg.Analysis.SuccessThresholdPct)
	}
}

func TestLoadConfigFull(t *testing.T) {
	path := writeConfig(t, `
mode: LIVE
twitter:
  source: API
  max_posts: 25
stocks:
  source: ALPHAVANTAGE
analysis:
  horizons: [1]
  success_rate_threshold_pct: 5.0
subjects:
  - handle: elonmusk
    ticker: TSLA
    days: 60
output:
  prolog_export: data/facts.pl
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Mode != "LIVE" {
		t.Errorf("Expected mode LIVE, got %q", cfg.Mode)
	}
	if cfg.Twitter.MaxPosts != 25 {
		t.Errorf("Expected max posts 25, got %d", cfg.Twitter.MaxPosts)
	}
	if len(cfg.Analysis.Horizons) != 1 || cfg.Analysis.Horizons[0] != 1 {
		t.Errorf("Expected horizons [1], got %v", cfg.Analysis.Horizons)
	}
	if cfg.Analysis.SuccessThresholdPct == nil || *cfg.Analysis.SuccessThresholdPct != 5.0 {
		t.Errorf("Expected success threshold 5.0, got %v", cfg.Analysis.SuccessThresholdPct)
	}
	if len(cfg.Subjects) != 1 || cfg.Subjects[0].Handle != "elonmusk" || cfg.Subjects[0].Ticker != "TSLA" {
		t.Errorf("Unexpected subjects: %+v", cfg.Subjects)
	}
	if cfg.Output.PrologExport != "data/facts.pl" {
		t.Errorf("Expected prolog export path preserved, got %q", cfg.Output.PrologExport)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"bad mode",
			"mode: PRODUCTION\n",
			"invalid mode",
		},
		{
			"bad twitter source",
			"mode: DRY_RUN\ntwitter:\n  source: RSS\n",
			"invalid twitter.source",
		},
		{
			"bad stocks source",
			"mode: DRY_RUN\nstocks:\n  source: YAHOO\n",
			"invalid stocks.source",
		},
		{
			"unsupported horizon",
			"mode: DRY_RUN\nanalysis:\n  horizons: [1, 5]\n",
			"unsupported horizon",
		},
		{
			"non-increasing tier thresholds",
			`mode: DRY_RUN
analysis:
  tiers:
    impactful: {min_abs_sentiment: 0.5, min_abs_change_pct: 3.0}
    highly_impactful: {min_abs_sentiment: 0.5, min_abs_change_pct: 5.0}
    viral_impactful: {min_abs_sentiment: 0.7, min_abs_change_pct: 8.0}
    engagement_percentile: 90
`,
			"strictly increasing",
		},
		{
			"engagement percentile out of range",
			`mode: DRY_RUN
analysis:
  tiers:
    impactful: {min_abs_sentiment: 0.3, min_abs_change_pct: 3.0}
    highly_impactful: {min_abs_sentiment: 0.5, min_abs_change_pct: 5.0}
    viral_impactful: {min_abs_sentiment: 0.7, min_abs_change_pct: 8.0}
    engagement_percentile: 150
`,
			"engagement_percentile",
		},
		{
			"subject missing ticker",
			"mode: DRY_RUN\nsubjects:\n  - handle: someone\n",
			"handle and ticker are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

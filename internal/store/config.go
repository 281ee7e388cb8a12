package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ceo-tweet-analyzer/internal/analysis"
	"ceo-tweet-analyzer/internal/types"
)

type Config struct {
	Mode string `yaml:"mode"` // DRY_RUN or LIVE

	Twitter struct {
		Source         string `yaml:"source"` // API, SCRAPE or MOCK
		MaxPosts       int    `yaml:"max_posts"`
		BearerTokenEnv string `yaml:"bearer_token_env"`
		MirrorBaseURL  string `yaml:"mirror_base_url"`
	} `yaml:"twitter"`

	Stocks struct {
		Source    string `yaml:"source"` // ALPHAVANTAGE, KITE or MOCK
		APIKeyEnv string `yaml:"api_key_env"`
		Kite      struct {
			APIKeyEnv      string `yaml:"api_key_env"`
			AccessTokenEnv string `yaml:"access_token_env"`
			Exchange       string `yaml:"exchange"`
		} `yaml:"kite"`
	} `yaml:"stocks"`

	Analysis analysis.Config `yaml:"analysis"`

	Subjects []Subject `yaml:"subjects"`

	Output struct {
		PrologExport string `yaml:"prolog_export"`
		ResultsFile  string `yaml:"results_file"`
	} `yaml:"output"`
}

// Subject is one handle/ticker pair for the batch runner.
type Subject struct {
	Handle string `yaml:"handle"`
	Ticker string `yaml:"ticker"`
	Days   int    `yaml:"days"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	switch c.Twitter.Source {
	case "API", "SCRAPE", "MOCK":
	default:
		return fmt.Errorf("invalid twitter.source '%s': must be 'API', 'SCRAPE' or 'MOCK'", c.Twitter.Source)
	}
	switch c.Stocks.Source {
	case "ALPHAVANTAGE", "KITE", "MOCK":
	default:
		return fmt.Errorf("invalid stocks.source '%s': must be 'ALPHAVANTAGE', 'KITE' or 'MOCK'", c.Stocks.Source)
	}

	if len(c.Analysis.Horizons) == 0 {
		return errors.New("analysis.horizons cannot be empty")
	}
	for _, h := range c.Analysis.Horizons {
		if h != 1 && h != 3 {
			return fmt.Errorf("unsupported horizon %d: the result schema carries 1 and 3 trading days", h)
		}
	}
	if c.Analysis.SuccessThresholdPct != nil && *c.Analysis.SuccessThresholdPct < 0 {
		return fmt.Errorf("analysis.success_rate_threshold_pct must be >= 0, got %.2f", *c.Analysis.SuccessThresholdPct)
	}

	rules := c.Analysis.Rules
	if rules.Impactful.MinAbsSentiment >= rules.HighlyImpactful.MinAbsSentiment ||
		rules.HighlyImpactful.MinAbsSentiment >= rules.ViralImpactful.MinAbsSentiment {
		return errors.New("tier sentiment thresholds must be strictly increasing")
	}
	if rules.Impactful.MinAbsChangePct >= rules.HighlyImpactful.MinAbsChangePct ||
		rules.HighlyImpactful.MinAbsChangePct >= rules.ViralImpactful.MinAbsChangePct {
		return errors.New("tier change thresholds must be strictly increasing")
	}
	if rules.EngagementPercentile <= 0 || rules.EngagementPercentile > 100 {
		return fmt.Errorf("tiers.engagement_percentile must be in (0, 100], got %.1f", rules.EngagementPercentile)
	}

	for i, s := range c.Subjects {
		if s.Handle == "" || s.Ticker == "" {
			return fmt.Errorf("subjects[%d]: handle and ticker are required", i)
		}
	}

	return nil
}

// Default returns the configuration used when no config file exists:
// DRY_RUN against mock collaborators.
func Default() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if c.Twitter.Source == "" {
		c.Twitter.Source = "MOCK"
	}
	if c.Twitter.MaxPosts == 0 {
		c.Twitter.MaxPosts = 50
	}
	if c.Twitter.BearerTokenEnv == "" {
		c.Twitter.BearerTokenEnv = "TWITTER_BEARER_TOKEN"
	}
	if c.Stocks.Source == "" {
		c.Stocks.Source = "MOCK"
	}
	if c.Stocks.APIKeyEnv == "" {
		c.Stocks.APIKeyEnv = "STOCK_API_KEY"
	}
	if c.Stocks.Kite.Exchange == "" {
		c.Stocks.Kite.Exchange = "NSE"
	}

	if len(c.Analysis.Horizons) == 0 {
		c.Analysis.Horizons = []int{1, 3}
	}
	// nil, not 0: an explicitly configured 0% threshold stays 0.
	if c.Analysis.SuccessThresholdPct == nil {
		c.Analysis.SuccessThresholdPct = types.Float64Ptr(3.0)
	}
	if c.Analysis.Rules.Impactful == (analysis.TierThresholds{}) {
		c.Analysis.Rules = analysis.DefaultRuleSet()
	}
	if c.Analysis.Rules.EngagementPercentile == 0 {
		c.Analysis.Rules.EngagementPercentile = 90
	}

	if c.Output.ResultsFile == "" {
		c.Output.ResultsFile = "data/results.json"
	}
}

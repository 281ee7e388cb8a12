package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ceo-tweet-analyzer/internal/analysis"
	"ceo-tweet-analyzer/internal/analysis/analysisobs"
	"ceo-tweet-analyzer/internal/interfaces"
	"ceo-tweet-analyzer/internal/logger"
	"ceo-tweet-analyzer/internal/stocks"
	"ceo-tweet-analyzer/internal/storage"
	"ceo-tweet-analyzer/internal/store"
	"ceo-tweet-analyzer/internal/trace"
	"ceo-tweet-analyzer/internal/twitter"
	"ceo-tweet-analyzer/internal/types"

	"github.com/joho/godotenv"
)

const defaultLookbackDays = 90

// trailing days of prices so the 3-trading-day horizon resolves at the
// window end
const horizonTrailingDays = 7

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx := context.Background()
	defer func() { _ = trace.Shutdown(ctx) }()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if len(cfg.Subjects) == 0 {
		fmt.Fprintln(os.Stderr, "No subjects configured: add handle/ticker pairs under 'subjects' in config.yaml")
		os.Exit(1)
	}

	postsFetcher, pricesFetcher, err := buildFetchers(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build fetchers: %v\n", err)
		os.Exit(1)
	}

	analyzer := analysisobs.Wrap(analysis.NewAnalyzer(cfg.Analysis))
	st := storage.NewStore(cfg.Output.ResultsFile)

	fmt.Printf("Running batch analysis for %d subjects...\n\n", len(cfg.Subjects))

	failures := 0
	for _, subject := range cfg.Subjects {
		days := subject.Days
		if days == 0 {
			days = defaultLookbackDays
		}

		result, err := runSubject(ctx, analyzer, postsFetcher, pricesFetcher, subject.Handle, subject.Ticker, days)
		if err != nil {
			failures++
			logger.ErrorWithErr(ctx, "Subject analysis failed", err,
				"handle", subject.Handle, "ticker", subject.Ticker)
			fmt.Printf("  ✗ @%s / %s: %v\n", subject.Handle, subject.Ticker, err)
			continue
		}

		if err := st.Append(result); err != nil {
			failures++
			fmt.Printf("  ✗ @%s / %s: failed to save: %v\n", subject.Handle, subject.Ticker, err)
			continue
		}

		fmt.Printf("  ✓ @%s / %s: %d posts, correlation 1d %s, 3d %s\n",
			subject.Handle, subject.Ticker, result.TotalPosts,
			formatCorrelation(result.Correlation1D), formatCorrelation(result.Correlation3D))
	}

	fmt.Printf("\nDone: %d/%d subjects analyzed, results in %s\n",
		len(cfg.Subjects)-failures, len(cfg.Subjects), cfg.Output.ResultsFile)

	if failures > 0 {
		os.Exit(1)
	}
}

func runSubject(ctx context.Context, analyzer interfaces.Analyzer, posts interfaces.PostsFetcher, prices interfaces.PricesFetcher, handle, ticker string, days int) (*types.AnalysisResult, error) {
	postSeq, err := posts.FetchPosts(ctx, handle, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	priceSeq, err := prices.FetchDaily(ctx, ticker, days+horizonTrailingDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	return analyzer.Analyze(ctx, handle, ticker, postSeq, priceSeq)
}

// buildFetchers selects collaborators from configuration; DRY_RUN
// forces mocks for both.
func buildFetchers(cfg *store.Config) (interfaces.PostsFetcher, interfaces.PricesFetcher, error) {
	if cfg.Mode == "DRY_RUN" {
		seed := time.Now().UnixNano()
		return twitter.NewMockFetcher(seed, cfg.Twitter.MaxPosts), stocks.NewMockFetcher(seed), nil
	}

	var postsFetcher interfaces.PostsFetcher
	switch cfg.Twitter.Source {
	case "API":
		token := os.Getenv(cfg.Twitter.BearerTokenEnv)
		if token == "" {
			return nil, nil, fmt.Errorf("twitter source is API but %s is not set", cfg.Twitter.BearerTokenEnv)
		}
		postsFetcher = twitter.NewAPIFetcher(token, cfg.Twitter.MaxPosts)
	case "SCRAPE":
		postsFetcher = twitter.NewScraper(twitter.DefaultMirrorSource(cfg.Twitter.MirrorBaseURL), cfg.Twitter.MaxPosts, 30*time.Second)
	default:
		postsFetcher = twitter.NewMockFetcher(time.Now().UnixNano(), cfg.Twitter.MaxPosts)
	}

	var pricesFetcher interfaces.PricesFetcher
	switch cfg.Stocks.Source {
	case "ALPHAVANTAGE":
		apiKey := os.Getenv(cfg.Stocks.APIKeyEnv)
		if apiKey == "" {
			return nil, nil, fmt.Errorf("stocks source is ALPHAVANTAGE but %s is not set", cfg.Stocks.APIKeyEnv)
		}
		pricesFetcher = stocks.NewAlphaVantageFetcher(apiKey)
	case "KITE":
		apiKey := os.Getenv(cfg.Stocks.Kite.APIKeyEnv)
		accessToken := os.Getenv(cfg.Stocks.Kite.AccessTokenEnv)
		if apiKey == "" || accessToken == "" {
			return nil, nil, fmt.Errorf("stocks source is KITE but %s or %s is not set",
				cfg.Stocks.Kite.APIKeyEnv, cfg.Stocks.Kite.AccessTokenEnv)
		}
		pricesFetcher = stocks.NewKiteFetcher(apiKey, accessToken, cfg.Stocks.Kite.Exchange)
	default:
		pricesFetcher = stocks.NewMockFetcher(time.Now().UnixNano())
	}

	return postsFetcher, pricesFetcher, nil
}

func formatCorrelation(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *v)
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"ceo-tweet-analyzer/internal/analysis"
	"ceo-tweet-analyzer/internal/analysis/analysisobs"
	"ceo-tweet-analyzer/internal/interfaces"
	"ceo-tweet-analyzer/internal/stocks"
	"ceo-tweet-analyzer/internal/store"
	"ceo-tweet-analyzer/internal/twitter"
	"ceo-tweet-analyzer/internal/types"
)

// horizonTrailingDays is how many extra calendar days of prices are
// requested beyond the analysis window so the longest horizon (3
// trading days) can resolve for posts near the window end.
const horizonTrailingDays = 7

// buildPostsFetcher selects the posts collaborator from configuration.
// DRY_RUN forces the mock regardless of the configured source.
func buildPostsFetcher(cfg *store.Config) (interfaces.PostsFetcher, error) {
	if cfg.Mode == "DRY_RUN" {
		return twitter.NewMockFetcher(time.Now().UnixNano(), cfg.Twitter.MaxPosts), nil
	}

	switch cfg.Twitter.Source {
	case "API":
		token := os.Getenv(cfg.Twitter.BearerTokenEnv)
		if token == "" {
			return nil, fmt.Errorf("twitter source is API but %s is not set", cfg.Twitter.BearerTokenEnv)
		}
		return twitter.NewAPIFetcher(token, cfg.Twitter.MaxPosts), nil
	case "SCRAPE":
		source := twitter.DefaultMirrorSource(cfg.Twitter.MirrorBaseURL)
		return twitter.NewScraper(source, cfg.Twitter.MaxPosts, 30*time.Second), nil
	default:
		return twitter.NewMockFetcher(time.Now().UnixNano(), cfg.Twitter.MaxPosts), nil
	}
}

// buildPricesFetcher selects the prices collaborator from configuration.
func buildPricesFetcher(cfg *store.Config) (interfaces.PricesFetcher, error) {
	if cfg.Mode == "DRY_RUN" {
		return stocks.NewMockFetcher(time.Now().UnixNano()), nil
	}

	switch cfg.Stocks.Source {
	case "ALPHAVANTAGE":
		apiKey := os.Getenv(cfg.Stocks.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("stocks source is ALPHAVANTAGE but %s is not set", cfg.Stocks.APIKeyEnv)
		}
		return stocks.NewAlphaVantageFetcher(apiKey), nil
	case "KITE":
		apiKey := os.Getenv(cfg.Stocks.Kite.APIKeyEnv)
		accessToken := os.Getenv(cfg.Stocks.Kite.AccessTokenEnv)
		if apiKey == "" || accessToken == "" {
			return nil, fmt.Errorf("stocks source is KITE but %s or %s is not set",
				cfg.Stocks.Kite.APIKeyEnv, cfg.Stocks.Kite.AccessTokenEnv)
		}
		return stocks.NewKiteFetcher(apiKey, accessToken, cfg.Stocks.Kite.Exchange), nil
	default:
		return stocks.NewMockFetcher(time.Now().UnixNano()), nil
	}
}

// runAnalysis wires fetchers and the engine together for one
// handle/ticker pair and returns the assembled result.
func runAnalysis(ctx context.Context, cfg *store.Config, handle, ticker string, days int) (*types.AnalysisResult, error) {
	postsFetcher, err := buildPostsFetcher(cfg)
	if err != nil {
		return nil, err
	}
	pricesFetcher, err := buildPricesFetcher(cfg)
	if err != nil {
		return nil, err
	}

	posts, err := postsFetcher.FetchPosts(ctx, handle, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts for @%s: %w", handle, err)
	}

	prices, err := pricesFetcher.FetchDaily(ctx, ticker, days+horizonTrailingDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices for %s: %w", ticker, err)
	}

	analyzer := analysisobs.Wrap(analysis.NewAnalyzer(cfg.Analysis))
	return analyzer.Analyze(ctx, handle, ticker, posts, prices)
}

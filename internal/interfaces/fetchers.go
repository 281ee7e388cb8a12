package interfaces

import (
	"context"

	"ceo-tweet-analyzer/internal/types"
)

// PostsFetcher supplies an ordered sequence of posts for a handle over
// a bounded lookback window
type PostsFetcher interface {
	// FetchPosts fetches posts for the handle covering the last N days
	FetchPosts(ctx context.Context, handle string, days int) ([]types.Post, error)
}

// PricesFetcher supplies an ordered, date-unique daily price series
type PricesFetcher interface {
	// FetchDaily fetches daily OHLCV data covering the last N days,
	// oldest first
	FetchDaily(ctx context.Context, ticker string, days int) ([]types.PricePoint, error)
}

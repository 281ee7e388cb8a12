package interfaces

import (
	"context"

	"ceo-tweet-analyzer/internal/types"
)

// Analyzer defines the interface for the correlation analysis engine
type Analyzer interface {
	// Analyze runs the full pipeline over already-fetched posts and prices
	Analyze(ctx context.Context, handle, ticker string, posts []types.Post, prices []types.PricePoint) (*types.AnalysisResult, error)
}

package analysisobs

import (
	"context"
	"time"

	"ceo-tweet-analyzer/internal/interfaces"
	"ceo-tweet-analyzer/internal/logger"
	"ceo-tweet-analyzer/internal/trace"
	"ceo-tweet-analyzer/internal/types"
)

// observableAnalyzer wraps an Analyzer with logging and tracing
type observableAnalyzer struct {
	inner interfaces.Analyzer
}

// Wrap wraps an Analyzer with observability middleware
func Wrap(analyzer interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{inner: analyzer}
}

// Analyze wraps the Analyze method with logging and tracing
func (o *observableAnalyzer) Analyze(ctx context.Context, handle, ticker string, posts []types.Post, prices []types.PricePoint) (*types.AnalysisResult, error) {
	ctx, span := trace.StartSpan(ctx, "analysis.Analyze")
	defer span.End()

	logger.Info(ctx, "Starting correlation analysis",
		"handle", handle,
		"ticker", ticker,
		"posts", len(posts),
		"price_points", len(prices))
	start := time.Now()

	result, err := o.inner.Analyze(ctx, handle, ticker, posts, prices)

	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithErr(ctx, "Correlation analysis failed", err,
			"handle", handle,
			"ticker", ticker,
			"duration_ms", duration.Milliseconds())
		span.RecordError(err)
		return nil, err
	}

	fields := []any{
		"handle", handle,
		"ticker", ticker,
		"duration_ms", duration.Milliseconds(),
		"posts_with_price_data", result.PostsWithPriceData,
	}
	if result.Correlation1D != nil {
		fields = append(fields, "correlation_1d", *result.Correlation1D)
	}
	if result.Correlation3D != nil {
		fields = append(fields, "correlation_3d", *result.Correlation3D)
	}
	logger.Info(ctx, "Correlation analysis completed", fields...)

	return result, nil
}

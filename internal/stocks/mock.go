package stocks

import (
	"context"
	"math/rand"
	"time"

	"ceo-tweet-analyzer/internal/types"
)

// MockFetcher generates a synthetic daily price series for DRY_RUN mode
// and tests: a seeded random walk over weekdays only, so the series has
// realistic weekend gaps for the aligner to skip.
type MockFetcher struct {
	seed int64
}

// NewMockFetcher creates a mock price fetcher.
func NewMockFetcher(seed int64) *MockFetcher {
	return &MockFetcher{seed: seed}
}

// FetchDaily generates weekday observations covering the last N
// calendar days plus a few trailing days so the longest horizon can
// resolve for posts near the window end. Oldest first, unique dates.
func (f *MockFetcher) FetchDaily(ctx context.Context, ticker string, days int) ([]types.PricePoint, error) {
	r := rand.New(rand.NewSource(f.seed))

	start := time.Now().UTC().AddDate(0, 0, -days)
	end := time.Now().UTC().AddDate(0, 0, 5)

	price := 100 + r.Float64()*400
	var prices []types.PricePoint

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		open := price * (1 + (r.Float64()-0.5)*0.01)
		closePrice := open * (1 + (r.Float64()-0.5)*0.06)
		high := open
		if closePrice > high {
			high = closePrice
		}
		high *= 1 + r.Float64()*0.01
		low := open
		if closePrice < low {
			low = closePrice
		}
		low *= 1 - r.Float64()*0.01

		y, m, day := d.Date()
		prices = append(prices, types.PricePoint{
			Ticker: ticker,
			Date:   time.Date(y, m, day, 0, 0, 0, 0, time.UTC),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: int64(1_000_000 + r.Intn(9_000_000)),
		})

		price = closePrice
	}

	return prices, nil
}

package stocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"ceo-tweet-analyzer/internal/logger"
	"ceo-tweet-analyzer/internal/types"
)

// KiteFetcher fetches daily candles from the Kite Connect historical
// data API, for tickers listed on Indian exchanges where Alpha Vantage
// coverage is thin.
type KiteFetcher struct {
	kc       *kiteconnect.Client
	exchange string

	mu            sync.Mutex
	symbolToToken map[string]int
}

// NewKiteFetcher creates a Kite-backed price fetcher.
func NewKiteFetcher(apiKey, accessToken, exchange string) *KiteFetcher {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)

	if exchange == "" {
		exchange = "NSE"
	}

	return &KiteFetcher{
		kc:            kc,
		exchange:      exchange,
		symbolToToken: make(map[string]int),
	}
}

// FetchDaily fetches day candles covering the last N calendar days,
// oldest first. Kite returns trading days only, so the series is
// already free of weekend and holiday gaps.
func (f *KiteFetcher) FetchDaily(ctx context.Context, ticker string, days int) ([]types.PricePoint, error) {
	token, err := f.resolveToken(ctx, ticker)
	if err != nil {
		return nil, err
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	candles, err := f.kc.GetHistoricalData(token, "day", from, to, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical data for %s: %w", ticker, err)
	}

	prices := make([]types.PricePoint, 0, len(candles))
	for _, c := range candles {
		prices = append(prices, types.PricePoint{
			Ticker: ticker,
			Date:   dateOnly(c.Date.Time),
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: int64(c.Volume),
		})
	}

	logger.Info(ctx, "Fetched price series", "ticker", ticker, "exchange", f.exchange, "points", len(prices))
	return prices, nil
}

// resolveToken maps a trading symbol to its instrument token, caching
// the full instrument dump after the first lookup.
func (f *KiteFetcher) resolveToken(ctx context.Context, ticker string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token, ok := f.symbolToToken[ticker]; ok {
		return token, nil
	}

	logger.Debug(ctx, "Loading instrument list", "exchange", f.exchange)
	instruments, err := f.kc.GetInstrumentsByExchange(f.exchange)
	if err != nil {
		return 0, fmt.Errorf("failed to load instruments for %s: %w", f.exchange, err)
	}

	for _, inst := range instruments {
		f.symbolToToken[inst.Tradingsymbol] = inst.InstrumentToken
	}

	token, ok := f.symbolToToken[ticker]
	if !ok {
		return 0, fmt.Errorf("no instrument found for %s on %s", ticker, f.exchange)
	}
	return token, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package stocks

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"ceo-tweet-analyzer/internal/api"
	"ceo-tweet-analyzer/internal/logger"
	"ceo-tweet-analyzer/internal/types"
)

// alphaVantageBase is the Alpha Vantage API base URL.
const alphaVantageBase = "https://www.alphavantage.co"

// timeSeriesResponse is the TIME_SERIES_DAILY payload. Error conditions
// come back as 200s with a message field set, so all three are checked.
type timeSeriesResponse struct {
	TimeSeries   map[string]dailyData `json:"Time Series (Daily)"`
	ErrorMessage string               `json:"Error Message"`
	Note         string               `json:"Note"`
}

type dailyData struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// AlphaVantageFetcher fetches daily OHLCV series from Alpha Vantage.
// The free tier returns roughly the last 100 trading days, which covers
// the default analysis window plus the trailing horizon days.
type AlphaVantageFetcher struct {
	client *api.Client
	apiKey string
}

// NewAlphaVantageFetcher creates an Alpha Vantage price fetcher.
func NewAlphaVantageFetcher(apiKey string) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{
		client: api.NewClient(
			api.WithBaseURL(alphaVantageBase),
			api.WithTimeout(30*time.Second),
			api.WithLogging(true),
		),
		apiKey: apiKey,
	}
}

// FetchDaily fetches daily prices for the ticker, oldest first, trimmed
// to the most recent N calendar days of observations.
func (f *AlphaVantageFetcher) FetchDaily(ctx context.Context, ticker string, days int) ([]types.PricePoint, error) {
	logger.Debug(ctx, "Fetching daily prices", "ticker", ticker, "days", days)

	endpoint := fmt.Sprintf("/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s&outputsize=compact",
		url.QueryEscape(ticker), url.QueryEscape(f.apiKey))

	resp, err := f.client.GETWithRetry(ctx, endpoint, nil, api.AlphaVantageHeaders())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices for %s: %w", ticker, err)
	}

	var ts timeSeriesResponse
	if err := resp.ParseJSON(&ts); err != nil {
		return nil, fmt.Errorf("failed to parse Alpha Vantage response: %w", err)
	}

	if ts.ErrorMessage != "" {
		return nil, fmt.Errorf("alpha vantage error for %s: %s", ticker, ts.ErrorMessage)
	}
	if strings.Contains(ts.Note, "API call frequency") {
		return nil, fmt.Errorf("alpha vantage rate limit exceeded: %s", ts.Note)
	}
	if len(ts.TimeSeries) == 0 {
		return nil, fmt.Errorf("no time series data for %s", ticker)
	}

	prices := make([]types.PricePoint, 0, len(ts.TimeSeries))
	for dateStr, daily := range ts.TimeSeries {
		point, err := parseDaily(ticker, dateStr, daily)
		if err != nil {
			return nil, err
		}
		prices = append(prices, point)
	}

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})

	if days > 0 && len(prices) > days {
		prices = prices[len(prices)-days:]
	}

	logger.Info(ctx, "Fetched price series", "ticker", ticker, "points", len(prices))
	return prices, nil
}

// parseDaily converts one string-typed API record into a PricePoint.
func parseDaily(ticker, dateStr string, daily dailyData) (types.PricePoint, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return types.PricePoint{}, fmt.Errorf("failed to parse date %q: %w", dateStr, err)
	}

	open, err := strconv.ParseFloat(daily.Open, 64)
	if err != nil {
		return types.PricePoint{}, fmt.Errorf("failed to parse open price %q: %w", daily.Open, err)
	}
	high, err := strconv.ParseFloat(daily.High, 64)
	if err != nil {
		return types.PricePoint{}, fmt.Errorf("failed to parse high price %q: %w", daily.High, err)
	}
	low, err := strconv.ParseFloat(daily.Low, 64)
	if err != nil {
		return types.PricePoint{}, fmt.Errorf("failed to parse low price %q: %w", daily.Low, err)
	}
	closePrice, err := strconv.ParseFloat(daily.Close, 64)
	if err != nil {
		return types.PricePoint{}, fmt.Errorf("failed to parse close price %q: %w", daily.Close, err)
	}
	volume, err := strconv.ParseInt(daily.Volume, 10, 64)
	if err != nil {
		return types.PricePoint{}, fmt.Errorf("failed to parse volume %q: %w", daily.Volume, err)
	}

	return types.PricePoint{
		Ticker: ticker,
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}

package stocks

import (
	"context"
	"testing"
	"time"
)

func TestParseDaily(t *testing.T) {
	point, err := parseDaily("ACME", "2026-01-05", dailyData{
		Open:   "100.50",
		High:   "105.25",
		Low:    "99.10",
		Close:  "104.00",
		Volume: "1234567",
	})
	if err != nil {
		t.Fatalf("parseDaily failed: %v", err)
	}

	if point.Ticker != "ACME" {
		t.Errorf("Expected ticker ACME, got %q", point.Ticker)
	}
	if !point.Date.Equal(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date %v", point.Date)
	}
	if point.Open != 100.50 || point.Close != 104.00 {
		t.Errorf("Unexpected open/close %f/%f", point.Open, point.Close)
	}
	if point.Volume != 1234567 {
		t.Errorf("Unexpected volume %d", point.Volume)
	}
}

func TestParseDailyErrors(t *testing.T) {
	valid := dailyData{Open: "1", High: "1", Low: "1", Close: "1", Volume: "1"}

	if _, err := parseDaily("ACME", "05/01/2026", valid); err == nil {
		t.Error("Expected error for a malformed date")
	}

	broken := valid
	broken.Close = "four"
	if _, err := parseDaily("ACME", "2026-01-05", broken); err == nil {
		t.Error("Expected error for a non-numeric close")
	}

	broken = valid
	broken.Volume = "1.5"
	if _, err := parseDaily("ACME", "2026-01-05", broken); err == nil {
		t.Error("Expected error for a fractional volume")
	}
}

func TestMockFetcherSeries(t *testing.T) {
	prices, err := NewMockFetcher(42).FetchDaily(context.Background(), "ACME", 30)
	if err != nil {
		t.Fatalf("FetchDaily failed: %v", err)
	}
	if len(prices) == 0 {
		t.Fatal("Expected a non-empty series")
	}

	for i, p := range prices {
		if wd := p.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("Observation %d falls on a weekend: %v", i, p.Date)
		}
		if p.Low > p.Open || p.Low > p.Close || p.High < p.Open || p.High < p.Close {
			t.Errorf("Observation %d has inconsistent OHLC: %+v", i, p)
		}
		if i > 0 && !prices[i-1].Date.Before(p.Date) {
			t.Errorf("Series not strictly ascending at index %d", i)
		}
	}
}

func TestMockFetcherDeterministic(t *testing.T) {
	first, err := NewMockFetcher(7).FetchDaily(context.Background(), "ACME", 30)
	if err != nil {
		t.Fatalf("FetchDaily failed: %v", err)
	}
	second, err := NewMockFetcher(7).FetchDaily(context.Background(), "ACME", 30)
	if err != nil {
		t.Fatalf("FetchDaily failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Expected identical series lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Close != second[i].Close {
			t.Fatalf("Close differs at index %d with the same seed", i)
		}
	}
}

func TestMockFetcherCoversTrailingDays(t *testing.T) {
	prices, err := NewMockFetcher(1).FetchDaily(context.Background(), "ACME", 30)
	if err != nil {
		t.Fatalf("FetchDaily failed: %v", err)
	}

	// Forward horizons for posts near "now" need observations past today.
	last := prices[len(prices)-1].Date
	if !last.After(time.Now().UTC().Truncate(24 * time.Hour)) {
		t.Errorf("Expected trailing observations past today, last is %v", last)
	}
}

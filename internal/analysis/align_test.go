package analysis

import (
	"testing"
	"time"

	"ceo-tweet-analyzer/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pricePoint(date time.Time, close float64) types.PricePoint {
	return types.PricePoint{
		Ticker: "TEST",
		Date:   date,
		Open:   close,
		High:   close,
		Low:    close,
		Close:  close,
		Volume: 1000,
	}
}

func weekSeries() []types.PricePoint {
	// Mon Jan 5 2026 through Fri Jan 9, then Mon Jan 12.
	return []types.PricePoint{
		pricePoint(day(2026, time.January, 5), 100),
		pricePoint(day(2026, time.January, 6), 104),
		pricePoint(day(2026, time.January, 7), 100),
		pricePoint(day(2026, time.January, 8), 94),
		pricePoint(day(2026, time.January, 9), 100),
		pricePoint(day(2026, time.January, 12), 100.5),
	}
}

func TestAlignExactTradingDay(t *testing.T) {
	aligner := NewTemporalAligner(weekSeries())

	al, ok := aligner.Align(time.Date(2026, time.January, 6, 14, 30, 0, 0, time.UTC))
	if !ok {
		t.Fatal("Expected alignment for a trading day")
	}
	if al.Baseline.Close != 104 {
		t.Errorf("Expected baseline close 104, got %f", al.Baseline.Close)
	}
}

func TestAlignWeekendSnapsToFriday(t *testing.T) {
	aligner := NewTemporalAligner(weekSeries())

	// Saturday Jan 10: the latest observation at or before is Friday Jan 9.
	al, ok := aligner.Align(day(2026, time.January, 10))
	if !ok {
		t.Fatal("Expected alignment for a weekend post")
	}
	if !al.Baseline.Date.Equal(day(2026, time.January, 9)) {
		t.Errorf("Expected Friday baseline, got %v", al.Baseline.Date)
	}

	// Horizon 1 from the Friday baseline is the next observation: Monday.
	next, ok := al.ForwardClose(1)
	if !ok {
		t.Fatal("Expected a horizon-1 close after Friday")
	}
	if next != 100.5 {
		t.Errorf("Expected Monday close 100.5, got %f", next)
	}
}

func TestAlignBeforeSeries(t *testing.T) {
	aligner := NewTemporalAligner(weekSeries())

	if _, ok := aligner.Align(day(2026, time.January, 2)); ok {
		t.Error("Expected no alignment for a post before the price series")
	}
}

func TestForwardCloseBeyondSeries(t *testing.T) {
	aligner := NewTemporalAligner(weekSeries())

	al, ok := aligner.Align(day(2026, time.January, 12))
	if !ok {
		t.Fatal("Expected alignment for the last trading day")
	}
	if _, ok := al.ForwardClose(1); ok {
		t.Error("Expected no horizon-1 close past the end of the series")
	}
}

func TestForwardCloseSkipsCalendarGaps(t *testing.T) {
	aligner := NewTemporalAligner(weekSeries())

	// Horizon counts trading observations, not calendar days.
	al, ok := aligner.Align(day(2026, time.January, 9))
	if !ok {
		t.Fatal("Expected alignment for Friday")
	}
	next, ok := al.ForwardClose(1)
	if !ok {
		t.Fatal("Expected a horizon-1 close")
	}
	if next != 100.5 {
		t.Errorf("Expected close from the next trading day (Monday), got %f", next)
	}
}

func TestAlignEmptySeries(t *testing.T) {
	aligner := NewTemporalAligner(nil)

	if _, ok := aligner.Align(day(2026, time.January, 5)); ok {
		t.Error("Expected no alignment against an empty series")
	}
}

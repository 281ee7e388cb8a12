package analysis

import (
	"sort"
	"time"

	"ceo-tweet-analyzer/internal/types"
)

// Alignment maps one post onto the price series: a baseline trading-day
// close plus lookups of forward closes N trading days later.
type Alignment struct {
	// Baseline is the latest observation dated at or before the post.
	Baseline *types.PricePoint

	series  []types.PricePoint
	baseIdx int
}

// TemporalAligner aligns posts with an ordered, date-unique price
// series. The series is shared and read-only, so one aligner can be
// used from multiple goroutines.
type TemporalAligner struct {
	series []types.PricePoint
}

// NewTemporalAligner wraps an ascending, date-unique price series.
// Callers are expected to have validated ordering (see ValidateInputs).
func NewTemporalAligner(series []types.PricePoint) *TemporalAligner {
	return &TemporalAligner{series: series}
}

// Align finds the baseline observation for a post: the latest trading
// day at or before the post's calendar date. Posts on weekends or
// holidays fall back to the prior trading day's close. Returns false
// when no observation exists at or before the post date; such posts
// carry no defined changes at any horizon.
func (a *TemporalAligner) Align(postedAt time.Time) (Alignment, bool) {
	if len(a.series) == 0 {
		return Alignment{}, false
	}

	day := dateOnly(postedAt)

	// First index strictly after the post's date; baseline is the one
	// before it.
	idx := sort.Search(len(a.series), func(i int) bool {
		return dateOnly(a.series[i].Date).After(day)
	})
	if idx == 0 {
		return Alignment{}, false
	}

	baseIdx := idx - 1
	return Alignment{
		Baseline: &a.series[baseIdx],
		series:   a.series,
		baseIdx:  baseIdx,
	}, true
}

// ForwardClose returns the close N trading days strictly after the
// baseline day. Calendar gaps (weekends, holidays) are skipped
// implicitly because the series only contains trading days. Returns
// false when the series does not extend that far.
func (al *Alignment) ForwardClose(horizon int) (float64, bool) {
	idx := al.baseIdx + horizon
	if horizon < 1 || idx >= len(al.series) {
		return 0, false
	}
	return al.series[idx].Close, true
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

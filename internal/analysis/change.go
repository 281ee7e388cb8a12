package analysis

import (
	"sort"

	"ceo-tweet-analyzer/internal/types"
)

// PercentChange returns the percentage change from old to new.
// A zero old price yields 0 by convention rather than an error, so the
// function is total and never fails.
func PercentChange(oldPrice, newPrice float64) float64 {
	if oldPrice == 0 {
		return 0
	}
	return ((newPrice - oldPrice) / oldPrice) * 100
}

// PeriodPerformance measures the instrument's move over the trailing
// calendar window: the latest close against the latest close at or
// before (latest date - days). The series must be ascending by date.
// Returns nil when the history does not reach back that far, or when
// the past close is 0.
func PeriodPerformance(prices []types.PricePoint, days int) *float64 {
	if len(prices) == 0 {
		return nil
	}

	latest := prices[len(prices)-1]
	target := dateOnly(latest.Date).AddDate(0, 0, -days)

	// First index strictly after the target date; the observation
	// before it is the closest one at or before the target.
	idx := sort.Search(len(prices), func(i int) bool {
		return dateOnly(prices[i].Date).After(target)
	})
	if idx == 0 {
		return nil
	}

	past := prices[idx-1]
	if past.Close == 0 {
		return nil
	}
	return types.Float64Ptr(PercentChange(past.Close, latest.Close))
}

package analysis

import (
	"fmt"
	"time"

	"ceo-tweet-analyzer/internal/types"
)

// StructuralInputError reports malformed collaborator data: an unsorted
// or duplicated price series, or post/price windows that do not overlap
// at all. Unlike undefined statistics, this aborts the run -- producing
// aggregates over broken input would be silently wrong.
type StructuralInputError struct {
	Collaborator string // which input: "posts" or "prices"
	Invariant    string // which invariant was violated
	Detail       string
}

func (e *StructuralInputError) Error() string {
	return fmt.Sprintf("structural input error from %s collaborator (%s): %s",
		e.Collaborator, e.Invariant, e.Detail)
}

// ValidateInputs checks the structural invariants the pipeline assumes:
// the price series is strictly ascending by date (ordered, no duplicate
// dates) and, when both sequences are non-empty, their time windows
// overlap.
func ValidateInputs(posts []types.Post, prices []types.PricePoint) error {
	for i := 1; i < len(prices); i++ {
		prev := dateOnly(prices[i-1].Date)
		cur := dateOnly(prices[i].Date)
		if cur.Equal(prev) {
			return &StructuralInputError{
				Collaborator: "prices",
				Invariant:    "unique trading dates",
				Detail:       fmt.Sprintf("duplicate observation for %s", cur.Format("2006-01-02")),
			}
		}
		if cur.Before(prev) {
			return &StructuralInputError{
				Collaborator: "prices",
				Invariant:    "ascending date order",
				Detail: fmt.Sprintf("%s follows %s",
					cur.Format("2006-01-02"), prev.Format("2006-01-02")),
			}
		}
	}

	if len(posts) > 0 && len(prices) > 0 {
		firstPost, lastPost := postDateRange(posts)
		firstPrice := dateOnly(prices[0].Date)
		lastPrice := dateOnly(prices[len(prices)-1].Date)

		if lastPrice.Before(firstPost) || firstPrice.After(lastPost) {
			return &StructuralInputError{
				Collaborator: "prices",
				Invariant:    "price window overlaps post window",
				Detail: fmt.Sprintf("prices cover %s..%s but posts span %s..%s",
					firstPrice.Format("2006-01-02"), lastPrice.Format("2006-01-02"),
					firstPost.Format("2006-01-02"), lastPost.Format("2006-01-02")),
			}
		}
	}

	return nil
}

func postDateRange(posts []types.Post) (first, last time.Time) {
	first = dateOnly(posts[0].CreatedAt)
	last = first
	for _, p := range posts[1:] {
		d := dateOnly(p.CreatedAt)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	return first, last
}

package twitter

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"ceo-tweet-analyzer/internal/types"
)

// MockFetcher generates synthetic posts for DRY_RUN mode and tests.
// Deterministic for a given seed.
type MockFetcher struct {
	seed     int64
	maxPosts int
}

// NewMockFetcher creates a mock posts fetcher.
func NewMockFetcher(seed int64, maxPosts int) *MockFetcher {
	if maxPosts <= 0 {
		maxPosts = defaultMaxPosts
	}
	return &MockFetcher{seed: seed, maxPosts: maxPosts}
}

// Sample texts spanning clearly positive, clearly negative and neutral
// phrasing so the downstream sentiment distribution is non-degenerate.
var mockTexts = []string{
	"Record quarter, incredible growth ahead. Proud of the team!",
	"Great progress on the new factory, excited for what comes next",
	"This is a breakthrough. Best product we have ever shipped",
	"Unfortunate delay in deliveries this week, sorry everyone",
	"Difficult quarter. Demand is a real concern going forward",
	"Production update coming later today",
	"Visited the Berlin site today",
	"Not happy with how the launch went, we will fix the issue",
	"Love seeing the first customer reviews, amazing response",
	"Terrible supply chain problems continue to hurt margins",
}

// FetchPosts generates posts spread over the lookback window, newest
// first, skewed toward weekdays the way real posting activity is not --
// weekend posts are kept deliberately so alignment fallback gets
// exercised in dry runs.
func (m *MockFetcher) FetchPosts(ctx context.Context, handle string, days int) ([]types.Post, error) {
	r := rand.New(rand.NewSource(m.seed))

	count := m.maxPosts
	if days > 0 && days < count {
		count = days
	}

	now := time.Now().UTC()
	posts := make([]types.Post, 0, count)

	for i := 0; i < count; i++ {
		daysAgo := 0
		if days > 0 {
			daysAgo = r.Intn(days)
		}
		createdAt := now.AddDate(0, 0, -daysAgo).
			Add(-time.Duration(r.Intn(12)) * time.Hour)

		posts = append(posts, types.Post{
			ID:          fmt.Sprintf("mock-%s-%d", handle, i),
			Text:        mockTexts[r.Intn(len(mockTexts))],
			CreatedAt:   createdAt,
			RepostCount: r.Intn(20000),
			LikeCount:   r.Intn(100000),
		})
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

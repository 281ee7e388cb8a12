package twitter

import (
	"context"
	"testing"
	"time"
)

func TestMockFetcherDeterministic(t *testing.T) {
	first, err := NewMockFetcher(42, 20).FetchPosts(context.Background(), "ceo", 30)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	second, err := NewMockFetcher(42, 20).FetchPosts(context.Background(), "ceo", 30)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Expected identical post counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Text != second[i].Text ||
			first[i].RepostCount != second[i].RepostCount {
			t.Fatalf("Post %d differs across runs with the same seed", i)
		}
	}
}

func TestMockFetcherRespectsCap(t *testing.T) {
	posts, err := NewMockFetcher(1, 5).FetchPosts(context.Background(), "ceo", 90)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if len(posts) != 5 {
		t.Errorf("Expected 5 posts, got %d", len(posts))
	}
}

func TestMockFetcherWindowAndOrder(t *testing.T) {
	days := 30
	posts, err := NewMockFetcher(7, 50).FetchPosts(context.Background(), "ceo", days)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if len(posts) == 0 {
		t.Fatal("Expected some posts")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days-1)
	for i, p := range posts {
		if p.CreatedAt.Before(cutoff) {
			t.Errorf("Post %d older than the lookback window: %v", i, p.CreatedAt)
		}
		if i > 0 && posts[i-1].CreatedAt.Before(p.CreatedAt) {
			t.Errorf("Posts not sorted newest first at index %d", i)
		}
	}
}

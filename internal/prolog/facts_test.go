package prolog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ceo-tweet-analyzer/internal/types"
)

func sampleResult() *types.AnalysisResult {
	impactA := types.PostImpact{
		Post: types.Post{
			ID:          "1001",
			Text:        "great quarter",
			CreatedAt:   time.Date(2026, time.January, 5, 15, 0, 0, 0, time.UTC),
			RepostCount: 200,
			LikeCount:   800,
		},
		Sentiment: types.Float64Ptr(1.0),
	}
	impactA.SetChange(1, types.Float64Ptr(4.0))
	impactA.SetChange(3, types.Float64Ptr(-6.0))
	impactA.SetTiers(1, []types.ImpactTier{types.TierImpactful})
	impactA.SetTiers(3, []types.ImpactTier{types.TierImpactful, types.TierHighlyImpactful})

	impactB := types.PostImpact{
		Post: types.Post{
			ID:        "1002",
			Text:      "routine update",
			CreatedAt: time.Date(2026, time.January, 7, 9, 0, 0, 0, time.UTC),
		},
		Sentiment: types.Float64Ptr(0.0),
	}
	impactB.SetChange(1, types.Float64Ptr(0.5))

	return &types.AnalysisResult{
		Handle:              "ceo",
		Ticker:              "ACME",
		Impacts:             []types.PostImpact{impactA, impactB},
		EngagementThreshold: 1000,
	}
}

func countLines(facts, prefix string) int {
	n := 0
	for _, line := range strings.Split(facts, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestGenerateFactsAttributeFacts(t *testing.T) {
	facts := GenerateFacts(sampleResult())

	if got := countLines(facts, "tweet("); got != 2 {
		t.Errorf("Expected one tweet/5 fact per post, got %d", got)
	}
	// Post A has two defined changes, post B one.
	if got := countLines(facts, "price_change("); got != 3 {
		t.Errorf("Expected 3 price_change/3 facts, got %d", got)
	}

	if !strings.Contains(facts, "tweet('1001', 20260105, 1.000, 200, 800).") {
		t.Errorf("Missing expected tweet fact in:\n%s", facts)
	}
	if !strings.Contains(facts, "price_change('1001', 3, -6.000).") {
		t.Errorf("Missing expected price_change fact in:\n%s", facts)
	}
}

func TestGenerateFactsTierCountsMatchTags(t *testing.T) {
	result := sampleResult()
	facts := GenerateFacts(result)

	wantByPredicate := map[string]int{}
	for i := range result.Impacts {
		for _, h := range []int{1, 3} {
			for _, tier := range result.Impacts[i].Tiers(h) {
				switch tier {
				case types.TierImpactful:
					wantByPredicate["impactful_tweet("]++
				case types.TierHighlyImpactful:
					wantByPredicate["highly_impactful_tweet("]++
				case types.TierViralImpactful:
					wantByPredicate["viral_impactful_tweet("]++
				}
			}
		}
	}

	for prefix, want := range wantByPredicate {
		if got := countLines(facts, prefix); got != want {
			t.Errorf("Expected %d %s facts, got %d", want, prefix, got)
		}
	}
	// highly_impactful_tweet is a prefix clash guard: impactful_tweet
	// lines must not be double counted.
	if got := countLines(facts, "impactful_tweet("); got != 2 {
		t.Errorf("Expected 2 impactful_tweet facts, got %d", got)
	}
}

func TestGenerateFactsOrderFollowsInput(t *testing.T) {
	facts := GenerateFacts(sampleResult())

	first := strings.Index(facts, "tweet('1001'")
	second := strings.Index(facts, "tweet('1002'")
	if first == -1 || second == -1 {
		t.Fatalf("Missing tweet facts in:\n%s", facts)
	}
	if first > second {
		t.Error("Expected facts in input post order")
	}
}

func TestGenerateFactsDedupe(t *testing.T) {
	result := sampleResult()
	// Duplicate the first post wholesale; repeated (predicate, id,
	// horizon) triples must be emitted once.
	result.Impacts = append(result.Impacts, result.Impacts[0])

	facts := GenerateFacts(result)
	if got := countLines(facts, "tweet('1001'"); got != 1 {
		t.Errorf("Expected duplicate tweet facts suppressed, got %d", got)
	}
	if got := countLines(facts, "price_change('1001', 1,"); got != 1 {
		t.Errorf("Expected duplicate price_change facts suppressed, got %d", got)
	}
	if got := countLines(facts, "highly_impactful_tweet('1001'"); got != 1 {
		t.Errorf("Expected duplicate tier facts suppressed, got %d", got)
	}
}

func TestGenerateFactsRules(t *testing.T) {
	facts := GenerateFacts(sampleResult())

	for _, rule := range []string{"impactful(TweetId, Days) :-", "highly_impactful(TweetId, Days) :-", "viral_impactful(TweetId, Days) :-"} {
		if !strings.Contains(facts, rule) {
			t.Errorf("Missing rule clause %q", rule)
		}
	}
}

func TestGenerateFactsSelfContainedEngagementCutoff(t *testing.T) {
	facts := GenerateFacts(sampleResult())

	// The viral rule body references engagement_threshold/1, so the
	// program must state it as a fact or the query cannot resolve.
	if !strings.Contains(facts, "engagement_threshold(T)") {
		t.Fatalf("Viral rule no longer consults engagement_threshold in:\n%s", facts)
	}
	if got := countLines(facts, "engagement_threshold("); got != 1 {
		t.Errorf("Expected exactly one engagement_threshold fact, got %d", got)
	}
	if !strings.Contains(facts, "engagement_threshold(1000).") {
		t.Errorf("Missing engagement_threshold fact in:\n%s", facts)
	}
}

func TestGenerateFactsSanitizesIDs(t *testing.T) {
	result := &types.AnalysisResult{
		Handle: "ceo",
		Ticker: "ACME",
		Impacts: []types.PostImpact{
			{Post: types.Post{ID: "bad'id", CreatedAt: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)}},
			{Post: types.Post{CreatedAt: time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)}},
		},
	}

	facts := GenerateFacts(result)
	if strings.Contains(facts, "bad'id") {
		t.Error("Expected quotes stripped from atom bodies")
	}
	if !strings.Contains(facts, "tweet('bad_id'") {
		t.Errorf("Expected sanitized ID in:\n%s", facts)
	}
	if !strings.Contains(facts, "tweet('tweet_1'") {
		t.Errorf("Expected positional fallback for empty IDs in:\n%s", facts)
	}
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "facts.pl")

	if err := Export(sampleResult(), path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if !strings.Contains(string(data), "tweet('1001'") {
		t.Error("Exported file missing tweet facts")
	}
}

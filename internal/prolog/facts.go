// Package prolog renders analysis results as a Prolog fact program for
// external rule-querying tools. The tier rules themselves are evaluated
// in Go by the analysis package; this export states the same facts and
// rules declaratively.
package prolog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ceo-tweet-analyzer/internal/types"
)

// tierPredicates maps each impact tier to its exported predicate name.
var tierPredicates = map[types.ImpactTier]string{
	types.TierImpactful:       "impactful_tweet",
	types.TierHighlyImpactful: "highly_impactful_tweet",
	types.TierViralImpactful:  "viral_impactful_tweet",
}

// Horizons covered by the fact export, in emission order.
var factHorizons = []int{1, 3}

// GenerateFacts renders the complete fact program for a result:
// tweet/5 and price_change/3 attribute facts plus one tier fact per
// satisfied (post, horizon) tier. Facts follow the input post order and
// no (predicate, post id, horizon) pair is emitted twice.
func GenerateFacts(result *types.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%% Prolog facts for CEO Tweet Analysis\n")
	fmt.Fprintf(&b, "%% CEO: @%s\n", result.Handle)
	fmt.Fprintf(&b, "%% Ticker: %s\n", result.Ticker)
	fmt.Fprintf(&b, "%% Generated: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05"))

	b.WriteString("% tweet(TweetId, Date, Sentiment, Retweets, Likes).\n")
	b.WriteString("% price_change(TweetId, Days, PercentChange).\n")
	b.WriteString("% engagement_threshold(MinEngagement).\n")
	b.WriteString("% impactful_tweet(TweetId, Days) and stricter tiers.\n\n")

	// The viral rule consults this dataset-wide cutoff, so the program
	// stays queryable on its own.
	fmt.Fprintf(&b, "engagement_threshold(%.0f).\n\n", result.EngagementThreshold)

	seen := make(map[string]bool)

	for i := range result.Impacts {
		impact := &result.Impacts[i]
		id := termID(impact.Post.ID, i)

		sentiment := 0.0
		if impact.Sentiment != nil {
			sentiment = *impact.Sentiment
		}
		emit(&b, seen, fmt.Sprintf("tweet('%s', %s, %.3f, %d, %d).",
			id,
			impact.Post.CreatedAt.UTC().Format("20060102"),
			sentiment,
			impact.Post.RepostCount,
			impact.Post.LikeCount),
			"tweet", id, 0)

		for _, h := range factHorizons {
			if change := impact.Change(h); change != nil {
				emit(&b, seen, fmt.Sprintf("price_change('%s', %d, %.3f).", id, h, *change),
					"price_change", id, h)
			}
		}

		for _, h := range factHorizons {
			for _, tier := range impact.Tiers(h) {
				pred := tierPredicates[tier]
				emit(&b, seen, fmt.Sprintf("%s('%s', %d).", pred, id, h), pred, id, h)
			}
		}
	}

	b.WriteString("\n% Rules for identifying impactful tweets\n")
	b.WriteString("% A tweet is impactful at a horizon if it has strong sentiment\n")
	b.WriteString("% and was followed by a significant price movement; stricter\n")
	b.WriteString("% tiers raise both thresholds and the viral tier additionally\n")
	b.WriteString("% requires top-decile engagement.\n\n")

	b.WriteString("impactful(TweetId, Days) :-\n" +
		"\ttweet(TweetId, _, Sentiment, _, _),\n" +
		"\tabs(Sentiment) > 0.3,\n" +
		"\tprice_change(TweetId, Days, Change),\n" +
		"\tabs(Change) > 3.0.\n\n")

	b.WriteString("highly_impactful(TweetId, Days) :-\n" +
		"\ttweet(TweetId, _, Sentiment, _, _),\n" +
		"\tabs(Sentiment) > 0.5,\n" +
		"\tprice_change(TweetId, Days, Change),\n" +
		"\tabs(Change) > 5.0.\n\n")

	b.WriteString("viral_impactful(TweetId, Days) :-\n" +
		"\ttweet(TweetId, _, Sentiment, Retweets, Likes),\n" +
		"\tabs(Sentiment) > 0.7,\n" +
		"\tprice_change(TweetId, Days, Change),\n" +
		"\tabs(Change) > 8.0,\n" +
		"\tengagement_threshold(T),\n" +
		"\tRetweets + Likes >= T.\n")

	return b.String()
}

// Export writes the fact program to path, creating parent directories.
func Export(result *types.AnalysisResult, path string) error {
	facts := GenerateFacts(result)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create Prolog export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(facts), 0o644); err != nil {
		return fmt.Errorf("failed to write Prolog facts: %w", err)
	}
	return nil
}

// emit appends a fact line unless the (predicate, id, horizon) triple
// was already written.
func emit(b *strings.Builder, seen map[string]bool, line, predicate, id string, horizon int) {
	key := fmt.Sprintf("%s/%s/%d", predicate, id, horizon)
	if seen[key] {
		return
	}
	seen[key] = true
	b.WriteString(line)
	b.WriteByte('\n')
}

// termID turns a post ID into a safe Prolog atom body, falling back to
// a positional name for empty IDs.
func termID(id string, idx int) string {
	if id == "" {
		return fmt.Sprintf("tweet_%d", idx)
	}
	return strings.Map(func(r rune) rune {
		if r == '\'' || r == '\\' {
			return '_'
		}
		return r
	}, id)
}

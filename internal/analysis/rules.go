package analysis

import (
	"math"
	"sort"

	"ceo-tweet-analyzer/internal/types"
)

// TierThresholds configures one impact tier. A post qualifies when both
// the absolute sentiment and absolute percentage change clear the
// minimums; the viral tier additionally requires engagement at or above
// the dataset percentile.
type TierThresholds struct {
	MinAbsSentiment float64 `yaml:"min_abs_sentiment"`
	MinAbsChangePct float64 `yaml:"min_abs_change_pct"`
}

// RuleSet is the declarative three-tier classification. Thresholds must
// be strictly increasing across tiers so the tiers stay nested.
type RuleSet struct {
	Impactful            TierThresholds `yaml:"impactful"`
	HighlyImpactful      TierThresholds `yaml:"highly_impactful"`
	ViralImpactful       TierThresholds `yaml:"viral_impactful"`
	EngagementPercentile float64        `yaml:"engagement_percentile"`
}

// DefaultRuleSet returns the built-in tier thresholds.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Impactful:            TierThresholds{MinAbsSentiment: 0.3, MinAbsChangePct: 3.0},
		HighlyImpactful:      TierThresholds{MinAbsSentiment: 0.5, MinAbsChangePct: 5.0},
		ViralImpactful:       TierThresholds{MinAbsSentiment: 0.7, MinAbsChangePct: 8.0},
		EngagementPercentile: 90,
	}
}

// RuleClassifier tags posts with impact tiers. The engagement threshold
// is a dataset-wide aggregate, so classification only runs after every
// post's sentiment and changes are known.
type RuleClassifier struct {
	rules RuleSet
}

// NewRuleClassifier builds a classifier; zero-valued rules fall back to
// the defaults.
func NewRuleClassifier(rules RuleSet) *RuleClassifier {
	if rules.Impactful == (TierThresholds{}) {
		rules = DefaultRuleSet()
	}
	return &RuleClassifier{rules: rules}
}

// EngagementThreshold computes the configured percentile of engagement
// (reposts + likes) across posts with a defined sentiment. Returns 0
// when no such posts exist, which makes the engagement condition
// trivially satisfied for an empty dataset.
func (c *RuleClassifier) EngagementThreshold(impacts []types.PostImpact) float64 {
	var engagements []float64
	for i := range impacts {
		if impacts[i].Sentiment != nil {
			engagements = append(engagements, float64(impacts[i].Post.Engagement()))
		}
	}
	if len(engagements) == 0 {
		return 0
	}

	sort.Float64s(engagements)

	// Nearest-rank percentile.
	rank := int(math.Ceil(c.rules.EngagementPercentile / 100 * float64(len(engagements))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(engagements) {
		rank = len(engagements)
	}
	return engagements[rank-1]
}

// Classify evaluates the tier rules for one post at one horizon.
// Tiers are evaluated loosest first and each stricter tier is only
// tried once the looser one passed, so the nesting invariant
// (viral => highly => impactful) holds by construction. Returns nil
// when sentiment or the horizon change is undefined.
func (c *RuleClassifier) Classify(impact *types.PostImpact, horizon int, engagementThreshold float64) []types.ImpactTier {
	if impact.Sentiment == nil {
		return nil
	}
	change := impact.Change(horizon)
	if change == nil {
		return nil
	}

	absSentiment := math.Abs(*impact.Sentiment)
	absChange := math.Abs(*change)

	var tiers []types.ImpactTier

	if absSentiment > c.rules.Impactful.MinAbsSentiment && absChange > c.rules.Impactful.MinAbsChangePct {
		tiers = append(tiers, types.TierImpactful)

		if absSentiment > c.rules.HighlyImpactful.MinAbsSentiment && absChange > c.rules.HighlyImpactful.MinAbsChangePct {
			tiers = append(tiers, types.TierHighlyImpactful)

			if absSentiment > c.rules.ViralImpactful.MinAbsSentiment &&
				absChange > c.rules.ViralImpactful.MinAbsChangePct &&
				float64(impact.Post.Engagement()) >= engagementThreshold {
				tiers = append(tiers, types.TierViralImpactful)
			}
		}
	}

	return tiers
}

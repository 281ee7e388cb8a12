package analysis

import (
	"context"
	"fmt"
	"sync"

	"ceo-tweet-analyzer/internal/types"
)

// Config holds the already-validated knobs the engine accepts. Zero
// values fall back to the defaults, so Config{} is usable directly.
type Config struct {
	// Horizons in trading days; defaults to {1, 3}.
	Horizons []int `yaml:"horizons"`

	// SuccessThresholdPct is the rise a positive-sentiment post must be
	// followed by to count toward the success rate. nil means the 3%
	// default; an explicit 0 counts any rise.
	SuccessThresholdPct *float64 `yaml:"success_rate_threshold_pct"`

	Lexicon Lexicon `yaml:"lexicon"`
	Rules   RuleSet `yaml:"tiers"`
}

// defaultSuccessThresholdPct is the rise bar for the success rate.
const defaultSuccessThresholdPct = 3.0

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Horizons:            []int{1, 3},
		SuccessThresholdPct: types.Float64Ptr(defaultSuccessThresholdPct),
		Lexicon:             DefaultLexicon(),
		Rules:               DefaultRuleSet(),
	}
}

// Analyzer orchestrates the full pipeline: per-post sentiment,
// alignment and changes (phase 1), dataset-wide correlation and the
// engagement percentile (phase 2), then per-post tier classification
// against the phase-2 threshold (phase 3). Deterministic for identical
// inputs; performs no I/O.
type Analyzer struct {
	cfg        Config
	scorer     *SentimentScorer
	classifier *RuleClassifier
}

// NewAnalyzer creates an analyzer. Missing config fields take defaults.
func NewAnalyzer(cfg Config) *Analyzer {
	if len(cfg.Horizons) == 0 {
		cfg.Horizons = []int{1, 3}
	}
	if cfg.SuccessThresholdPct == nil {
		cfg.SuccessThresholdPct = types.Float64Ptr(defaultSuccessThresholdPct)
	}
	return &Analyzer{
		cfg:        cfg,
		scorer:     NewSentimentScorer(cfg.Lexicon),
		classifier: NewRuleClassifier(cfg.Rules),
	}
}

// Analyze runs the pipeline over already-fetched, ordered sequences.
// Posts with no usable baseline keep nil fields and are excluded from
// the aggregates; only malformed input shape is returned as an error.
func (a *Analyzer) Analyze(ctx context.Context, handle, ticker string, posts []types.Post, prices []types.PricePoint) (*types.AnalysisResult, error) {
	if err := ValidateInputs(posts, prices); err != nil {
		return nil, fmt.Errorf("rejecting analysis run: %w", err)
	}

	aligner := NewTemporalAligner(prices)
	impacts := make([]types.PostImpact, len(posts))

	// Phase 1: per-post sentiment, alignment and percentage changes.
	// Each post reads only its own slot and the shared immutable price
	// series, so a plain parallel map needs no locking.
	var wg sync.WaitGroup
	for i := range posts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			impacts[i] = a.analyzePost(posts[i], aligner)
		}(i)
	}
	wg.Wait()

	// Phase 2: dataset-wide reductions. This is a barrier: correlation
	// and the engagement percentile need the complete phase-1 output.
	correlations := make(map[int]*float64, len(a.cfg.Horizons))
	for _, h := range a.cfg.Horizons {
		correlations[h] = a.correlationForHorizon(impacts, h)
	}
	engagementThreshold := a.classifier.EngagementThreshold(impacts)

	// Phase 3: tier classification per post against the shared
	// threshold. Parallel again; each goroutine owns its slot.
	for i := range impacts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, h := range a.cfg.Horizons {
				impacts[i].SetTiers(h, a.classifier.Classify(&impacts[i], h, engagementThreshold))
			}
		}(i)
	}
	wg.Wait()

	result := a.assembleResult(handle, ticker, posts, prices, impacts)
	result.EngagementThreshold = engagementThreshold
	for _, h := range a.cfg.Horizons {
		switch h {
		case 1:
			result.Correlation1D = correlations[1]
		case 3:
			result.Correlation3D = correlations[3]
		}
	}

	return result, nil
}

// analyzePost computes one post's sentiment, baseline and per-horizon
// percentage changes.
func (a *Analyzer) analyzePost(post types.Post, aligner *TemporalAligner) types.PostImpact {
	impact := types.PostImpact{Post: post}
	impact.Sentiment = types.Float64Ptr(a.scorer.Score(post.Text))

	alignment, ok := aligner.Align(post.CreatedAt)
	if !ok {
		return impact
	}

	impact.PriceAtPost = types.Float64Ptr(alignment.Baseline.Close)
	for _, h := range a.cfg.Horizons {
		if forward, ok := alignment.ForwardClose(h); ok {
			impact.SetChange(h, types.Float64Ptr(PercentChange(alignment.Baseline.Close, forward)))
		}
	}

	return impact
}

// correlationForHorizon reduces the valid (sentiment, change) pairs for
// one horizon into a Pearson coefficient. A post with no change at this
// horizon is skipped here but can still contribute to other horizons.
func (a *Analyzer) correlationForHorizon(impacts []types.PostImpact, horizon int) *float64 {
	var sentiments, changes []float64
	for i := range impacts {
		change := impacts[i].Change(horizon)
		if impacts[i].Sentiment == nil || change == nil {
			continue
		}
		sentiments = append(sentiments, *impacts[i].Sentiment)
		changes = append(changes, *change)
	}
	return PearsonCorrelation(sentiments, changes)
}

func (a *Analyzer) assembleResult(handle, ticker string, posts []types.Post, prices []types.PricePoint, impacts []types.PostImpact) *types.AnalysisResult {
	result := &types.AnalysisResult{
		Handle:        handle,
		Ticker:        ticker,
		Impacts:       impacts,
		TotalPosts:    len(posts),
		Performance1W: PeriodPerformance(prices, 7),
		Performance1M: PeriodPerformance(prices, 30),
		Performance3M: PeriodPerformance(prices, 90),
	}

	if len(posts) > 0 {
		start, end := postDateRange(posts)
		result.StartDate = start
		result.EndDate = end
	}

	for i := range impacts {
		if impacts[i].PriceAtPost != nil {
			result.PostsWithPriceData++
		}
		if s := impacts[i].Sentiment; s != nil {
			switch {
			case *s > 0:
				result.PositivePosts++
			case *s < 0:
				result.NegativePosts++
			default:
				result.NeutralPosts++
			}
		}
	}

	result.PositiveSuccessRate1D = a.successRate(impacts, 1)
	result.PositiveSuccessRate3D = a.successRate(impacts, 3)

	return result
}

// successRate returns the percentage of positive-sentiment posts whose
// change at the horizon exceeded the success threshold. Posts with an
// undefined change count as misses, matching how the rate is read: "of
// the positive posts, how many were followed by a rise".
func (a *Analyzer) successRate(impacts []types.PostImpact, horizon int) float64 {
	positive := 0
	hits := 0
	for i := range impacts {
		if impacts[i].Sentiment == nil || *impacts[i].Sentiment <= 0 {
			continue
		}
		positive++
		if change := impacts[i].Change(horizon); change != nil && *change > *a.cfg.SuccessThresholdPct {
			hits++
		}
	}
	if positive == 0 {
		return 0
	}
	return float64(hits) / float64(positive) * 100
}

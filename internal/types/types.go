package types

import "time"

// Post is a single short-form post from the tracked account.
// Immutable once fetched; sentiment lives on PostImpact, not here.
type Post struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	RepostCount int       `json:"repost_count"`
	LikeCount   int       `json:"like_count"`
}

// Engagement is the combined engagement counter used by the viral tier.
func (p *Post) Engagement() int {
	return p.RepostCount + p.LikeCount
}

// PricePoint is one trading day of OHLCV data for a ticker.
type PricePoint struct {
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"` // UTC midnight of the trading day
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Volume int64     `json:"volume"`
}

// DailyChangePercent returns the open-to-close change for the day.
// Zero open is treated as zero change, not an error.
func (p *PricePoint) DailyChangePercent() float64 {
	if p.Open == 0 {
		return 0
	}
	return ((p.Close - p.Open) / p.Open) * 100
}

// ImpactTier is an ordered classification of a post's price effect.
// Tiers are strictly nested: Viral implies Highly implies Impactful.
type ImpactTier string

const (
	TierImpactful       ImpactTier = "impactful"
	TierHighlyImpactful ImpactTier = "highly_impactful"
	TierViralImpactful  ImpactTier = "viral_impactful"
)

// PostImpact holds the per-post analysis output. Numeric fields are
// pointers: nil means "undefined" (no baseline, not enough forward
// trading days, or no sentiment), which is a valid analytic outcome
// and must not be collapsed to zero.
type PostImpact struct {
	Post        Post         `json:"post"`
	Sentiment   *float64     `json:"sentiment,omitempty"`
	PriceAtPost *float64     `json:"price_at_post,omitempty"`
	Change1D    *float64     `json:"change_1d,omitempty"`
	Change3D    *float64     `json:"change_3d,omitempty"`
	Tiers1D     []ImpactTier `json:"tiers_1d,omitempty"`
	Tiers3D     []ImpactTier `json:"tiers_3d,omitempty"`
}

// Change returns the percentage change for the given horizon, if defined.
func (pi *PostImpact) Change(horizon int) *float64 {
	switch horizon {
	case 1:
		return pi.Change1D
	case 3:
		return pi.Change3D
	}
	return nil
}

// SetChange stores the percentage change for the given horizon.
func (pi *PostImpact) SetChange(horizon int, v *float64) {
	switch horizon {
	case 1:
		pi.Change1D = v
	case 3:
		pi.Change3D = v
	}
}

// Tiers returns the tier tags for the given horizon.
func (pi *PostImpact) Tiers(horizon int) []ImpactTier {
	switch horizon {
	case 1:
		return pi.Tiers1D
	case 3:
		return pi.Tiers3D
	}
	return nil
}

// SetTiers stores the tier tags for the given horizon.
func (pi *PostImpact) SetTiers(horizon int, tiers []ImpactTier) {
	switch horizon {
	case 1:
		pi.Tiers1D = tiers
	case 3:
		pi.Tiers3D = tiers
	}
}

// HasTier reports whether the post carries the tier at the horizon.
func (pi *PostImpact) HasTier(horizon int, tier ImpactTier) bool {
	for _, t := range pi.Tiers(horizon) {
		if t == tier {
			return true
		}
	}
	return false
}

// AnalysisResult is the assembled output of one analysis run.
// Built once by the orchestrator, immutable afterwards.
type AnalysisResult struct {
	Handle    string    `json:"handle"`
	Ticker    string    `json:"ticker"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Impacts []PostImpact `json:"impacts"`

	// Pearson correlation between sentiment and forward change per
	// horizon. nil when fewer than 2 valid pairs exist or either
	// deviation vector has zero variance.
	Correlation1D *float64 `json:"correlation_1d,omitempty"`
	Correlation3D *float64 `json:"correlation_3d,omitempty"`

	// Percentage of positive-sentiment posts whose forward change
	// exceeded the configured success threshold.
	PositiveSuccessRate1D float64 `json:"positive_success_rate_1d"`
	PositiveSuccessRate3D float64 `json:"positive_success_rate_3d"`

	// Overall instrument performance over trailing calendar windows,
	// measured against the latest observation. nil when the series
	// history does not reach back that far.
	Performance1W *float64 `json:"performance_1w,omitempty"`
	Performance1M *float64 `json:"performance_1m,omitempty"`
	Performance3M *float64 `json:"performance_3m,omitempty"`

	// EngagementThreshold is the engagement percentile cutoff the viral
	// tier was judged against for this dataset.
	EngagementThreshold float64 `json:"engagement_threshold"`

	TotalPosts         int `json:"total_posts"`
	PostsWithPriceData int `json:"posts_with_price_data"`
	PositivePosts      int `json:"positive_posts"`
	NegativePosts      int `json:"negative_posts"`
	NeutralPosts       int `json:"neutral_posts"`
}

// Correlation returns the correlation for the given horizon, if defined.
func (r *AnalysisResult) Correlation(horizon int) *float64 {
	switch horizon {
	case 1:
		return r.Correlation1D
	case 3:
		return r.Correlation3D
	}
	return nil
}

// Float64Ptr is a convenience helper for building optional values.
func Float64Ptr(v float64) *float64 { return &v }

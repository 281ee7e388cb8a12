package main

import (
	"encoding/json"
	"fmt"
	"os"

	"ceo-tweet-analyzer/internal/types"
)

func printResults(result *types.AnalysisResult) {
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                      ANALYSIS SUMMARY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("CEO:                @%s\n", result.Handle)
	fmt.Printf("Ticker:             %s\n", result.Ticker)
	fmt.Printf("Period:             %s to %s\n",
		result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02"))
	fmt.Printf("Posts analyzed:     %d (%d with price data)\n",
		result.TotalPosts, result.PostsWithPriceData)
	fmt.Printf("Sentiment split:    %d positive / %d negative / %d neutral\n",
		result.PositivePosts, result.NegativePosts, result.NeutralPosts)
	fmt.Println()

	fmt.Printf("Stock performance:  1w %s | 1m %s | 3m %s\n",
		formatOptionalPct(result.Performance1W),
		formatOptionalPct(result.Performance1M),
		formatOptionalPct(result.Performance3M))
	fmt.Println()

	fmt.Printf("Correlation (1d):   %s\n", formatOptional(result.Correlation1D))
	fmt.Printf("Correlation (3d):   %s\n", formatOptional(result.Correlation3D))
	fmt.Printf("Positive posts followed by rise (1d): %.1f%%\n", result.PositiveSuccessRate1D)
	fmt.Printf("Positive posts followed by rise (3d): %.1f%%\n", result.PositiveSuccessRate3D)
	fmt.Println()

	impactful := collectImpactful(result)
	if len(impactful) == 0 {
		fmt.Println("No posts met the impact tier thresholds")
		return
	}

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                      IMPACTFUL POSTS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	for _, impact := range impactful {
		printImpact(impact)
		fmt.Println()
	}
}

// collectImpactful filters posts that carry at least one tier at any
// horizon, preserving input order.
func collectImpactful(result *types.AnalysisResult) []*types.PostImpact {
	var impactful []*types.PostImpact
	for i := range result.Impacts {
		if len(result.Impacts[i].Tiers1D) > 0 || len(result.Impacts[i].Tiers3D) > 0 {
			impactful = append(impactful, &result.Impacts[i])
		}
	}
	return impactful
}

func printImpact(impact *types.PostImpact) {
	text := impact.Post.Text
	if runes := []rune(text); len(runes) > 80 {
		text = string(runes[:77]) + "..."
	}

	fmt.Printf("  [%s] %s\n", impact.Post.CreatedAt.Format("2006-01-02"), text)
	fmt.Printf("    Sentiment: %s | Change 1d: %s | Change 3d: %s\n",
		formatOptional(impact.Sentiment),
		formatOptionalPct(impact.Change1D),
		formatOptionalPct(impact.Change3D))
	fmt.Printf("    Engagement: %d reposts, %d likes\n", impact.Post.RepostCount, impact.Post.LikeCount)

	if len(impact.Tiers1D) > 0 {
		fmt.Printf("    Tiers (1d): %s\n", joinTiers(impact.Tiers1D))
	}
	if len(impact.Tiers3D) > 0 {
		fmt.Printf("    Tiers (3d): %s\n", joinTiers(impact.Tiers3D))
	}
}

func printJSON(result *types.AnalysisResult) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
	}
}

// formatOptional renders an optional value or "n/a" for undefined.
func formatOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *v)
}

func formatOptionalPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

func joinTiers(tiers []types.ImpactTier) string {
	s := ""
	for i, t := range tiers {
		if i > 0 {
			s += ", "
		}
		s += string(t)
	}
	return s
}

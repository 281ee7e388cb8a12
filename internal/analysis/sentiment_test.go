package analysis

import "testing"

func TestScoreEmptyText(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	if got := scorer.Score(""); got != 0 {
		t.Errorf("Expected empty text to score 0, got %f", got)
	}
}

func TestScoreNoMatches(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	if got := scorer.Score("The quarterly report is published on Tuesday"); got != 0 {
		t.Errorf("Expected text without lexicon matches to score 0, got %f", got)
	}
}

func TestScorePositive(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	got := scorer.Score("This is great and amazing!")
	if got <= 0 {
		t.Errorf("Expected positive score, got %f", got)
	}
	if got > 1 {
		t.Errorf("Expected score within [-1,1], got %f", got)
	}
}

func TestScoreNegative(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	got := scorer.Score("This is terrible and awful!")
	if got >= 0 {
		t.Errorf("Expected negative score, got %f", got)
	}
	if got < -1 {
		t.Errorf("Expected score within [-1,1], got %f", got)
	}
}

func TestScoreNegationFlipsPolarity(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	plain := scorer.Score("good")
	negated := scorer.Score("not good")

	if plain <= 0 {
		t.Fatalf("Expected positive score for 'good', got %f", plain)
	}
	if negated >= 0 {
		t.Errorf("Expected negative score for 'not good', got %f", negated)
	}
	if plain != -negated {
		t.Errorf("Expected negation to flip the contribution: %f vs %f", plain, negated)
	}
}

func TestScoreNegationContraction(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	// The apostrophe is dropped during tokenization so "don't" becomes
	// the negation token "dont".
	if got := scorer.Score("I don't love this"); got >= 0 {
		t.Errorf("Expected negated positive term to score negative, got %f", got)
	}
}

func TestScoreMixedIsMean(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	// One positive and one negative match average to 0.
	if got := scorer.Score("great but terrible"); got != 0 {
		t.Errorf("Expected balanced text to score 0, got %f", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	text := "Record growth, best quarter ever. Proud of the team!"
	first := scorer.Score(text)
	for i := 0; i < 10; i++ {
		if got := scorer.Score(text); got != first {
			t.Fatalf("Expected deterministic score, got %f then %f", first, got)
		}
	}
}

func TestScoreLexiconOverride(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{
		Positive: []string{"rocket"},
		Negative: []string{"crater"},
	})

	if got := scorer.Score("rocket"); got != 1 {
		t.Errorf("Expected overridden positive term to score 1, got %f", got)
	}
	if got := scorer.Score("crater"); got != -1 {
		t.Errorf("Expected overridden negative term to score -1, got %f", got)
	}
	// Default lexicon words should no longer match.
	if got := scorer.Score("great"); got != 0 {
		t.Errorf("Expected default term to score 0 under override, got %f", got)
	}
}

func TestScoreBounds(t *testing.T) {
	scorer := NewSentimentScorer(Lexicon{})

	texts := []string{
		"great great great great great great",
		"terrible awful bad worst sad sorry",
		"not great not terrible good bad win loss",
	}
	for _, text := range texts {
		got := scorer.Score(text)
		if got < -1 || got > 1 {
			t.Errorf("Score(%q) = %f outside [-1,1]", text, got)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"don't stop", []string{"dont", "stop"}},
		{"", nil},
		{"  \t\n ", nil},
		{"up 20% today", []string{"up", "20", "today"}},
	}

	for _, tt := range tests {
		got := tokenize(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

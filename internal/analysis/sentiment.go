package analysis

import (
	"strings"
	"unicode"
)

// Lexicon holds the word sets consulted by the sentiment scorer.
// Word lists are matched against lower-cased tokens.
type Lexicon struct {
	Positive  []string
	Negative  []string
	Negations []string
}

// DefaultLexicon returns the built-in financial/CEO-speak word lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: []string{
			"great", "excellent", "amazing", "good", "success", "win", "winning",
			"growth", "profit", "record", "best", "excited", "love", "fantastic",
			"incredible", "revolutionary", "breakthrough", "proud", "happy",
		},
		Negative: []string{
			"bad", "terrible", "awful", "poor", "loss", "losing", "fail", "failure",
			"worst", "sad", "disappointed", "concern", "problem", "issue", "difficult",
			"challenge", "unfortunate", "regret", "sorry",
		},
		Negations: []string{
			"not", "no", "never", "none", "cannot", "dont", "doesnt", "didnt",
			"wont", "cant", "isnt", "wasnt", "arent", "werent", "aint",
			"shouldnt", "wouldnt", "couldnt", "hardly", "without",
		},
	}
}

// SentimentScorer maps post text to a sentiment score in [-1, 1].
// It is a pure function over a static lexicon: deterministic, no state
// mutated per call, safe to run on posts concurrently.
type SentimentScorer struct {
	positive  map[string]bool
	negative  map[string]bool
	negations map[string]bool
}

// NewSentimentScorer builds a scorer from the given lexicon.
// An empty lexicon falls back to the defaults.
func NewSentimentScorer(lex Lexicon) *SentimentScorer {
	if len(lex.Positive) == 0 && len(lex.Negative) == 0 {
		def := DefaultLexicon()
		lex.Positive = def.Positive
		lex.Negative = def.Negative
	}
	if len(lex.Negations) == 0 {
		lex.Negations = DefaultLexicon().Negations
	}
	return &SentimentScorer{
		positive:  toSet(lex.Positive),
		negative:  toSet(lex.Negative),
		negations: toSet(lex.Negations),
	}
}

// Score tokenizes the text and walks tokens left to right. A lexicon
// match records +1 or -1; the polarity flips when the immediately
// preceding token is a negation word ("not good" scores negative).
// The score is the mean of recorded polarities, clamped to [-1, 1].
// Text with no lexicon matches scores 0 (neutral, not undefined).
func (s *SentimentScorer) Score(text string) float64 {
	tokens := tokenize(text)

	sum := 0.0
	matches := 0

	for i, tok := range tokens {
		polarity := 0.0
		if s.positive[tok] {
			polarity = 1.0
		} else if s.negative[tok] {
			polarity = -1.0
		} else {
			continue
		}

		if i > 0 && s.negations[tokens[i-1]] {
			polarity = -polarity
		}

		sum += polarity
		matches++
	}

	if matches == 0 {
		return 0
	}

	return clamp(sum/float64(matches), -1, 1)
}

// tokenize splits text into lower-cased word tokens. Letters and digits
// form tokens; apostrophes are dropped in place so contractions stay a
// single token ("don't" -> "dont").
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			current.WriteRune(r)
		case r == '\'' || r == '’':
			// skip, keep the word together
		default:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = true
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package polarity scores the emotional polarity of a single text using a
// VADER-style lexicon and rule analyzer (negation, intensifiers, punctuation
// emphasis). Pure and deterministic; no I/O.
package polarity

import (
	"github.com/jonreiter/govader"
)

// Analyzer computes compound polarity scores for text.
// Safe for concurrent use; the underlying lexicon is read-only.
type Analyzer struct {
	scores func(string) govader.Sentiment
}

// NewAnalyzer creates an Analyzer with the default English lexicon.
func NewAnalyzer() *Analyzer {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	return &Analyzer{scores: analyzer.PolarityScores}
}

// Compound returns the compound polarity of text in [-1, 1].
// Callers must reject empty or whitespace-only text before invocation.
func (a *Analyzer) Compound(text string) float64 {
	return a.scores(text).Compound
}

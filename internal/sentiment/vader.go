package sentiment

import (
	"github.com/jonreiter/govader"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Analyzer scores cleaned review text with VADER and maps the compound
// polarity score onto a three-way label. Constructed once at cold start; the
// underlying lexicon is read-only after construction.
type Analyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity in [-1, 1] and its label.
func (a *Analyzer) Score(text string) (float64, string) {
	score := a.analyzer.PolarityScores(text).Compound
	return score, Label(score)
}

// Label applies the fixed classification thresholds: a compound score of
// exactly 0.05 is positive and exactly -0.05 is negative.
func Label(score float64) string {
	switch {
	case score >= positiveThreshold:
		return "positive"
	case score <= negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

package reputation

import (
	"strings"

	"github.com/socialsentrix/sentrix/internal/reputation/polarity"
	"github.com/socialsentrix/sentrix/pkg/utils"
)

// minSentimentSample is the item count below which the raw polarity mean is
// shrunk toward zero, so a single strongly-worded item cannot produce an
// extreme score.
const minSentimentSample = 5

// sentimentLabel maps a score threshold to a display label.
type sentimentLabel struct {
	Min   int
	Label string
}

var sentimentLabels = []sentimentLabel{
	{Min: 75, Label: "Very Positive"},
	{Min: 56, Label: "Positive"},
	{Min: 45, Label: "Neutral"},
	{Min: 25, Label: "Negative"},
	{Min: 0, Label: "Very Negative"},
}

// labelForSentiment resolves the display label for a sentiment score.
// Fewer than five scored items is too little signal to label.
func labelForSentiment(score, items int) string {
	if items < minSentimentSample {
		return "N/A"
	}

	if score == 50 {
		return "True Neutral"
	}

	for _, l := range sentimentLabels {
		if score >= l.Min {
			return l.Label
		}
	}

	return "N/A"
}

// shrinkMean pulls a small-sample mean toward zero by n/minSentimentSample.
func shrinkMean(mean float64, n int) float64 {
	if n < minSentimentSample {
		return mean * float64(n) / minSentimentSample
	}

	return mean
}

// polarityToScore rescales a compound polarity in [-1, 1] to [0, 100].
func polarityToScore(mean float64) int {
	return utils.ClampScore((mean + 1) * 50)
}

// scoreSentiment aggregates text polarity across in-window posts and comments.
func scoreSentiment(analyzer *polarity.Analyzer, activity []*ActivityItem, window TimeWindow) SentimentScore {
	var (
		all         []float64
		posts       []float64
		comments    []float64
		communities = make(map[string][]float64)
	)

	for _, item := range activity {
		if item.Kind != KindPost && item.Kind != KindComment {
			continue
		}

		if !window.Contains(item.CreatedAt) {
			continue
		}

		if strings.TrimSpace(item.Text) == "" {
			continue
		}

		compound := analyzer.Compound(item.Text)
		all = append(all, compound)

		if item.Kind == KindPost {
			posts = append(posts, compound)
		} else {
			comments = append(comments, compound)
		}

		if item.Community != "" {
			communities[item.Community] = append(communities[item.Community], compound)
		}
	}

	n := len(all)
	if n == 0 {
		return SentimentScore{
			Score: 50,
			Label: labelForSentiment(50, 0),
		}
	}

	score := polarityToScore(shrinkMean(mean(all), n))

	result := SentimentScore{
		Score: score,
		Label: labelForSentiment(score, n),
		Items: n,
	}

	if len(posts) > 0 {
		postScore := polarityToScore(mean(posts))
		result.PostScore = &postScore
	}

	if len(comments) > 0 {
		commentScore := polarityToScore(mean(comments))
		result.CommentScore = &commentScore
	}

	if len(communities) > 0 {
		perCommunity := make(map[string]int, len(communities))
		for community, values := range communities {
			perCommunity[community] = polarityToScore(shrinkMean(mean(values), len(values)))
		}

		result.Communities = perCommunity
	}

	return result
}

// mean returns the arithmetic mean of values. Callers guarantee len > 0.
func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

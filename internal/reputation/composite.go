package reputation

import (
	"github.com/socialsentrix/sentrix/pkg/utils"
)

// combineScores folds the five sub-scores into the composite R using the
// platform weight table. Sub-scores arrive already clamped, so the weighted
// sum only needs rounding and a final clamp.
func combineScores(weights Weights, s, e, t, i, c int) int {
	sum := weights.Sentiment*float64(s) +
		weights.Engagement*float64(e) +
		weights.Trustworthiness*float64(t) +
		weights.Influence*float64(i) +
		weights.Consistency*float64(c)

	return utils.ClampScore(sum)
}

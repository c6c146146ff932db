package reputation

import (
	"context"
	"math"
	"strings"

	"github.com/socialsentrix/sentrix/pkg/utils"
)

const (
	// engagementDecayDays is the exponential decay constant for item age.
	engagementDecayDays = 90

	// postGroupWeight and commentGroupWeight combine the two per-kind
	// averages when both are present.
	postGroupWeight    = 0.7
	commentGroupWeight = 0.3

	// duplicationPenaltyWeight scales the penalty for posts sharing
	// identical normalized text.
	duplicationPenaltyWeight = 0.5
	// deletionPenaltyWeight scales the penalty for removed items.
	deletionPenaltyWeight = 0.3
	// diversityBonus rewards windows containing both posts and comments.
	diversityBonus = 1.05

	// minEngagementSample is the item count below which the score is
	// blended toward the neutral midpoint.
	minEngagementSample = 5
)

// weightedRatio accumulates a time-decayed average of engagement ratios.
type weightedRatio struct {
	sum    float64
	weight float64
}

func (r *weightedRatio) add(ratio, weight float64) {
	r.sum += ratio * weight
	r.weight += weight
}

func (r *weightedRatio) average() (float64, bool) {
	if r.weight == 0 {
		return 0, false
	}

	return r.sum / r.weight, true
}

// scoreEngagement normalizes in-window engagement against community baselines,
// applies time-decay weighting and the duplication, deletion, and diversity
// adjustments. The baseline fetch is the only I/O in the engine.
func (e *Engine) scoreEngagement(
	ctx context.Context, activity []*ActivityItem, window TimeWindow, policy RateLimitPolicy,
) EngagementScore {
	inWindow := make([]*ActivityItem, 0, len(activity))
	for _, item := range activity {
		if window.Contains(item.CreatedAt) {
			inWindow = append(inWindow, item)
		}
	}

	if len(inWindow) == 0 {
		return EngagementScore{Score: 50}
	}

	// Fetch a baseline for every distinct community referenced in the window.
	baselines := e.baselines.FetchAll(ctx, distinctCommunities(inWindow), policy)

	var (
		postRatios    weightedRatio
		commentRatios weightedRatio
		postCount     int
		commentCount  int
		deletedCount  int
	)

	for _, item := range inWindow {
		if item.Deleted {
			deletedCount++
		}

		if item.Kind == KindComment {
			commentCount++
		} else {
			postCount++
		}

		baseline, ok := baselines[item.Community]
		if !ok {
			baseline = DefaultBaseline()
		}

		var actual, expected float64
		if item.Kind == KindComment {
			actual = float64(item.ReactionCount)
			expected = baseline.AvgReactions
		} else {
			actual = float64(item.ReactionCount + item.ReplyCount)
			expected = baseline.AvgReactions + baseline.AvgReplies
		}

		ratio := actual / expected
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			continue
		}

		ageDays := window.End.Sub(item.CreatedAt).Hours() / 24
		weight := math.Exp(-ageDays / engagementDecayDays)
		if weight == 0 {
			continue
		}

		if item.Kind == KindComment {
			commentRatios.add(ratio, weight)
		} else {
			postRatios.add(ratio, weight)
		}
	}

	postAvg, hasPosts := postRatios.average()
	commentAvg, hasComments := commentRatios.average()

	var combined float64

	switch {
	case hasPosts && hasComments:
		combined = postGroupWeight*postAvg + commentGroupWeight*commentAvg
	case hasPosts:
		combined = postAvg
	case hasComments:
		combined = commentAvg
	}

	// Logistic squash: the platform's center ratio maps to a base score of 50.
	score := 100 / (1 + math.Exp(-e.platform.LogisticSlope*(combined-e.platform.LogisticCenter)))

	duplication := countDuplicates(inWindow)
	if duplication.Total > 0 {
		duplicateFraction := 1 - float64(duplication.Unique)/float64(duplication.Total)
		score *= 1 - duplicationPenaltyWeight*duplicateFraction
	}

	deletedFraction := float64(deletedCount) / float64(len(inWindow))
	score *= 1 - deletionPenaltyWeight*deletedFraction

	if postCount > 0 && commentCount > 0 {
		score *= diversityBonus
	}

	// Small windows carry little signal; blend toward the neutral midpoint.
	if n := len(inWindow); n < minEngagementSample {
		score = 50 + (score-50)*float64(n)/minEngagementSample
	}

	return EngagementScore{
		Score:     utils.ClampScore(score),
		Baselines: baselines,
		Deletion: DeletionStats{
			Deleted: deletedCount,
			Total:   len(inWindow),
			Percent: math.Round(deletedFraction*10000) / 100,
		},
		Duplication: duplication,
		Diversity: DiversityStats{
			Posts:    postCount,
			Comments: commentCount,
		},
	}
}

// distinctCommunities returns the unique non-empty community identifiers
// referenced by items, in first-seen order.
func distinctCommunities(items []*ActivityItem) []string {
	seen := make(map[string]struct{})

	var communities []string

	for _, item := range items {
		if item.Community == "" {
			continue
		}

		if _, ok := seen[item.Community]; ok {
			continue
		}

		seen[item.Community] = struct{}{}
		communities = append(communities, item.Community)
	}

	return communities
}

// countDuplicates counts posts sharing identical normalized text.
func countDuplicates(items []*ActivityItem) DuplicationStats {
	normalizer := utils.NewTextNormalizer()
	unique := make(map[string]struct{})
	total := 0

	for _, item := range items {
		if item.Kind != KindPost || strings.TrimSpace(item.Text) == "" {
			continue
		}

		total++

		normalized := normalizer.Normalize(item.Text)
		if normalized == "" {
			normalized = strings.TrimSpace(item.Text)
		}

		unique[normalized] = struct{}{}
	}

	return DuplicationStats{
		Unique: len(unique),
		Total:  total,
	}
}

package reputation

import (
	"math"

	"github.com/socialsentrix/sentrix/pkg/utils"
)

const (
	// postKarmaWeight and commentKarmaWeight combine the karma components
	// before tier resolution.
	postKarmaWeight    = 0.75
	commentKarmaWeight = 0.25

	// communityReachCap bounds the moderated-audience term.
	communityReachCap = 20
	// itemImpactCap bounds the per-item impact term.
	itemImpactCap = 40
	// viralBonusCap bounds the virality bonus.
	viralBonusCap = 10
	// viralReactionThreshold is the reaction count above which an item
	// counts as viral.
	viralReactionThreshold = 1000
)

// scoreInfluence computes the tiered influence heuristic. Karma and audience
// terms use lifetime metadata; the per-item impact term uses in-window posts
// and reposts.
func scoreInfluence(account AccountMetadata, activity []*ActivityItem, window TimeWindow) InfluenceScore {
	weightedKarma := postKarmaWeight*float64(account.PostKarma) + commentKarmaWeight*float64(account.CommentKarma)

	var karmaScore int
	if weightedKarma >= 0 {
		karmaScore = resolveTier(influenceKarmaTiers, int64(weightedKarma))
	}

	var audience int64
	for _, community := range account.ModeratedCommunities {
		audience += int64(community.MemberCount)
	}

	// Followers count toward reach for platforms without moderated communities.
	reach := audience + int64(account.FollowerCount)
	reachScore := min(communityReachCap, int(math.Round(math.Log10(float64(reach)+1)*5)))

	var (
		impactTotal  int64
		contentCount int
		viralCount   int
	)

	for _, item := range activity {
		if item.Kind == KindComment || !window.Contains(item.CreatedAt) {
			continue
		}

		contentCount++
		impactTotal += item.ReactionCount + item.ReshareCount

		if item.ReactionCount > viralReactionThreshold {
			viralCount++
		}
	}

	var (
		avgImpact   float64
		impactScore int
	)

	if contentCount > 0 {
		avgImpact = float64(impactTotal) / float64(contentCount)
		impactScore = min(itemImpactCap, int(math.Round(math.Log2(avgImpact+1)*10)))
	}

	viralScore := min(viralBonusCap, viralCount*2)

	return InfluenceScore{
		Score:             utils.ClampScore(float64(karmaScore + reachScore + impactScore + viralScore)),
		PostKarma:         int64(account.PostKarma),
		CommentKarma:      int64(account.CommentKarma),
		FollowerCount:     int64(account.FollowerCount),
		ModeratedAudience: audience,
		ContentCount:      contentCount,
		AvgImpact:         math.Round(avgImpact*100) / 100,
		ViralCount:        viralCount,
	}
}

package reputation_test

import (
	"context"
	"testing"
	"time"

	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBaselines serves a fixed baseline for every community and records the
// communities requested per call.
type stubBaselines struct {
	baseline reputation.CommunityBaseline
	calls    [][]string
}

func (s *stubBaselines) FetchAll(
	_ context.Context, communities []string, _ reputation.RateLimitPolicy,
) map[string]reputation.CommunityBaseline {
	s.calls = append(s.calls, communities)

	baselines := make(map[string]reputation.CommunityBaseline, len(communities))
	for _, community := range communities {
		baselines[community] = s.baseline
	}

	return baselines
}

func newTestEngine(platform reputation.Platform) (*reputation.Engine, *stubBaselines) {
	baselines := &stubBaselines{baseline: reputation.DefaultBaseline()}
	return reputation.NewEngine(platform, baselines, zap.NewNop()), baselines
}

func TestScoreEmptySnapshot(t *testing.T) {
	t.Parallel()

	engine, baselines := newTestEngine(reputation.PlatformReddit())

	result, err := engine.Score(context.Background(), &reputation.Request{})
	require.NoError(t, err)

	assert.Equal(t, 50, result.S.Score)
	assert.Equal(t, "N/A", result.S.Label)
	assert.Equal(t, 0, result.S.Items)
	assert.Equal(t, 50, result.E.Score)
	assert.Equal(t, 0, result.T.Score)
	assert.Equal(t, 5, result.I.Score)
	assert.Equal(t, 0, result.C.Score)
	assert.Nil(t, result.C.Breakdown)
	assert.Equal(t, 26, result.R)

	// No in-window activity means no baseline fetches at all.
	assert.Empty(t, baselines.calls)
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(reputation.PlatformReddit())

	base := time.Now().UTC().Truncate(time.Second).Add(-48 * time.Hour)
	creation := base.AddDate(-4, 0, 0)

	req := &reputation.Request{
		Activity: []*reputation.ActivityItem{
			{Kind: reputation.KindPost, Text: "What a fantastic release, great work everyone!", CreatedAt: base, ReactionCount: 40, ReplyCount: 6, Community: "golang"},
			{Kind: reputation.KindComment, Text: "This broke my build and the docs are useless.", CreatedAt: base.AddDate(0, 0, -3), ReactionCount: 2, Community: "golang"},
			{Kind: reputation.KindPost, Text: "Weekly progress notes on the parser rewrite.", CreatedAt: base.AddDate(0, 0, -10), ReactionCount: 12, ReplyCount: 1, Community: "compilers"},
		},
		Account: reputation.AccountMetadata{
			CreationDate: &creation,
			PostKarma:    5200,
			CommentKarma: 800,
		},
	}

	first, err := engine.Score(context.Background(), req)
	require.NoError(t, err)

	second, err := engine.Score(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreCompositeMatchesWeights(t *testing.T) {
	t.Parallel()

	for _, platform := range []reputation.Platform{reputation.PlatformReddit(), reputation.PlatformBluesky()} {
		engine, _ := newTestEngine(platform)

		base := time.Date(2026, time.May, 10, 9, 0, 0, 0, time.UTC)
		req := &reputation.Request{
			Activity: []*reputation.ActivityItem{
				{Kind: reputation.KindPost, Text: "Release day, everything shipped on time!", CreatedAt: base, ReactionCount: 30, ReplyCount: 4, Community: "golang"},
				{Kind: reputation.KindComment, Text: "Nice catch, thanks for the fix.", CreatedAt: base.AddDate(0, 0, -1), ReactionCount: 3, Community: "golang"},
			},
			Account: reputation.AccountMetadata{PostKarma: 1500, VerifiedEmail: true},
		}

		result, err := engine.Score(context.Background(), req)
		require.NoError(t, err)

		weights := platform.Weights
		expected := weights.Sentiment*float64(result.S.Score) +
			weights.Engagement*float64(result.E.Score) +
			weights.Trustworthiness*float64(result.T.Score) +
			weights.Influence*float64(result.I.Score) +
			weights.Consistency*float64(result.C.Score)

		assert.InDelta(t, expected, float64(result.R), 0.5, "platform %s", platform.Name)
		assert.GreaterOrEqual(t, result.R, 0)
		assert.LessOrEqual(t, result.R, 100)
	}
}

func TestScoreSubScoresClamped(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(reputation.PlatformReddit())

	base := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	creation := base.AddDate(-20, 0, 0)

	// Extreme inputs on every axis must still land inside [0, 100].
	activity := make([]*reputation.ActivityItem, 0, 40)
	for i := 0; i < 40; i++ {
		activity = append(activity, &reputation.ActivityItem{
			Kind:          reputation.KindPost,
			Text:          "I absolutely love this amazing wonderful fantastic community!!!",
			CreatedAt:     base.AddDate(0, 0, -i),
			ReactionCount: 50_000,
			ReplyCount:    9_000,
			ReshareCount:  4_000,
			Community:     "popular",
		})
	}

	result, err := engine.Score(context.Background(), &reputation.Request{
		Activity: activity,
		Account: reputation.AccountMetadata{
			CreationDate:  &creation,
			PostKarma:     5_000_000,
			CommentKarma:  2_000_000,
			VerifiedEmail: true,
			PremiumTier:   true,
			Badges:        []string{"gold"},
			Trophies:      []string{"ten-year club"},
			ModeratedCommunities: []reputation.ModeratedCommunity{
				{Name: "popular", MemberCount: 30_000_000},
			},
		},
	})
	require.NoError(t, err)

	for name, score := range map[string]int{
		"S": result.S.Score,
		"E": result.E.Score,
		"T": result.T.Score,
		"I": result.I.Score,
		"C": result.C.Score,
		"R": result.R,
	} {
		assert.GreaterOrEqual(t, score, 0, name)
		assert.LessOrEqual(t, score, 100, name)
	}
}

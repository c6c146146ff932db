package reputation_test

import (
	"context"
	"testing"
	"time"

	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityAt(times ...time.Time) []*reputation.ActivityItem {
	items := make([]*reputation.ActivityItem, 0, len(times))
	for _, ts := range times {
		items = append(items, &reputation.ActivityItem{Kind: reputation.KindPost, CreatedAt: ts})
	}

	return items
}

// recentMidweek returns a recent Wednesday noon, so fixtures offset by a few
// hours never straddle an ISO week boundary.
func recentMidweek() time.Time {
	t := time.Now().UTC().AddDate(0, 0, -7)
	for t.Weekday() != time.Wednesday {
		t = t.AddDate(0, 0, -1)
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func TestScoreConsistencySingleActiveWeek(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(reputation.PlatformReddit())

	base := recentMidweek()

	result, err := engine.Score(context.Background(), &reputation.Request{
		Activity: activityAt(base, base.Add(time.Hour), base.Add(2*time.Hour)),
	})
	require.NoError(t, err)

	// All activity in one recent week: zero variance, no inactive weeks,
	// sustainable-pace bonus, no recency penalty.
	require.NotNil(t, result.C.Breakdown)
	assert.Equal(t, 100, result.C.Score)
	assert.InDelta(t, 0, result.C.Breakdown.CV, 1e-9)
	assert.Equal(t, 1, result.C.Breakdown.TotalWeeks)
	assert.Equal(t, 1, result.C.Breakdown.ActiveWeeks)
	assert.Equal(t, 0, result.C.Breakdown.InactiveWeeks)
}

func TestScoreConsistencyStaleActivity(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(reputation.PlatformReddit())

	base := recentMidweek().AddDate(-1, -1, 0)

	result, err := engine.Score(context.Background(), &reputation.Request{
		Activity: activityAt(base, base.Add(time.Hour), base.Add(2*time.Hour)),
	})
	require.NoError(t, err)

	// Last activity over a year ago takes the full recency penalty.
	assert.Equal(t, 85, result.C.Score)
}

func TestScoreConsistencyInactiveWeeks(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(reputation.PlatformReddit())

	base := recentMidweek()

	// Two active weeks separated by a long silent stretch.
	result, err := engine.Score(context.Background(), &reputation.Request{
		Activity: activityAt(
			base.AddDate(0, 0, -70),
			base.AddDate(0, 0, -69),
			base,
			base.Add(time.Hour),
		),
	})
	require.NoError(t, err)

	require.NotNil(t, result.C.Breakdown)
	assert.Equal(t, 2, result.C.Breakdown.ActiveWeeks)
	assert.Equal(t, 11, result.C.Breakdown.TotalWeeks)
	assert.Equal(t, 9, result.C.Breakdown.InactiveWeeks)
	assert.Equal(t, 75, result.C.Score)

	single, err := engine.Score(context.Background(), &reputation.Request{
		Activity: activityAt(base, base.Add(time.Hour)),
	})
	require.NoError(t, err)

	assert.Less(t, result.C.Score, single.C.Score)
}

func TestScoreConsistencyNoActivityIsZero(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(reputation.PlatformReddit())

	result, err := engine.Score(context.Background(), &reputation.Request{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.C.Score)
	assert.Nil(t, result.C.Breakdown)
}

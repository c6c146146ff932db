package reputation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/socialsentrix/sentrix/pkg/utils"
)

const (
	// cvPenaltyCap bounds the deduction for erratic weekly volume.
	cvPenaltyCap = 30
	// inactivePenaltyCap bounds the deduction for inactive weeks.
	inactivePenaltyCap = 30
	// sustainableBonus rewards a mean weekly count in [1, 5].
	sustainableBonus = 5

	hoursPerWeek  = 24 * 7
	hoursPerMonth = 24 * 30.44
)

// scoreConsistency buckets in-window activity into ISO weeks and penalizes
// erratic volume, inactive stretches, and stale recency. No activity at all is
// an explicit zero: silence is a negative signal here, not a neutral one.
func scoreConsistency(activity []*ActivityItem, window TimeWindow, now time.Time) ConsistencyScore {
	var dates []time.Time

	for _, item := range activity {
		if window.Contains(item.CreatedAt) {
			dates = append(dates, item.CreatedAt)
		}
	}

	if len(dates) == 0 {
		return ConsistencyScore{Score: 0}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	buckets := make(map[string]int)

	for _, date := range dates {
		year, week := date.ISOWeek()
		buckets[fmt.Sprintf("%d-W%02d", year, week)]++
	}

	var sum float64
	for _, count := range buckets {
		sum += float64(count)
	}

	weeklyMean := sum / float64(len(buckets))

	var variance float64
	for _, count := range buckets {
		variance += math.Pow(float64(count)-weeklyMean, 2)
	}

	variance /= float64(len(buckets))
	cv := math.Sqrt(variance) / weeklyMean

	first, last := dates[0], dates[len(dates)-1]

	totalWeeks := int(math.Ceil(last.Sub(first).Hours() / hoursPerWeek))
	totalWeeks = max(totalWeeks, 1)
	inactiveWeeks := max(totalWeeks-len(buckets), 0)

	score := 100.0

	if cv > 1 {
		score -= math.Min(cvPenaltyCap, (cv-1)*25)
	}

	if inactiveWeeks > 0 {
		score -= math.Min(inactivePenaltyCap, float64(inactiveWeeks)/float64(totalWeeks)*100)
	}

	if weeklyMean >= 1 && weeklyMean <= 5 {
		score += sustainableBonus
	}

	monthsSinceLast := now.Sub(last).Hours() / hoursPerMonth

	switch {
	case monthsSinceLast >= 12:
		score -= 20
	case monthsSinceLast >= 6:
		score -= 10
	case monthsSinceLast >= 3:
		score -= 5
	}

	return ConsistencyScore{
		Score: utils.ClampScore(score),
		Breakdown: &ConsistencyBreakdown{
			SpanStart:     first,
			SpanEnd:       last,
			TotalWeeks:    totalWeeks,
			ActiveWeeks:   len(buckets),
			InactiveWeeks: inactiveWeeks,
			CV:            cv,
			LastActive:    last,
		},
	}
}

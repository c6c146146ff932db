package reputation

// tier is one row of an ordered bonus table. Tables are resolved
// first-match-descending, so rows must be sorted by Min descending.
type tier struct {
	Min   int64
	Bonus int
}

// resolveTier returns the bonus of the first tier whose minimum is met.
func resolveTier(tiers []tier, value int64) int {
	for _, t := range tiers {
		if value >= t.Min {
			return t.Bonus
		}
	}

	return 0
}

// moderationReachTiers maps the largest moderated community's member count to
// a trust bonus.
var moderationReachTiers = []tier{
	{Min: 1_000_000, Bonus: 35},
	{Min: 100_000, Bonus: 15},
	{Min: 1_000, Bonus: 5},
}

// accountAgeTiers maps account age in whole years to a trust bonus.
var accountAgeTiers = []tier{
	{Min: 15, Bonus: 35},
	{Min: 10, Bonus: 28},
	{Min: 7, Bonus: 22},
	{Min: 5, Bonus: 16},
	{Min: 3, Bonus: 11},
	{Min: 2, Bonus: 7},
	{Min: 1, Bonus: 4},
}

// trustKarmaTiers maps total karma magnitude to a trust bonus.
var trustKarmaTiers = []tier{
	{Min: 100_000, Bonus: 15},
	{Min: 10_000, Bonus: 10},
	{Min: 1_000, Bonus: 6},
	{Min: 100, Bonus: 3},
}

// influenceKarmaTiers maps weighted karma magnitude to the influence base.
// Negative karma resolves to no match and scores zero.
var influenceKarmaTiers = []tier{
	{Min: 1_000_000, Bonus: 75},
	{Min: 100_000, Bonus: 60},
	{Min: 10_000, Bonus: 45},
	{Min: 1_000, Bonus: 30},
	{Min: 100, Bonus: 15},
	{Min: 0, Bonus: 5},
}

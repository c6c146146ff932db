package reputation

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/socialsentrix/sentrix/pkg/utils"
)

// ApproxCount is an int64 count that also decodes suffixed strings like
// "1.2M" or "853k". Platform APIs report karma and member counts either way;
// everything downstream sees the canonical numeric form.
type ApproxCount int64

// UnmarshalJSON implements json.Unmarshaler.
func (c *ApproxCount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := sonic.Unmarshal(data, &raw); err != nil {
			return err
		}

		value, err := utils.ParseApproxCount(raw)
		if err != nil {
			return err
		}

		*c = ApproxCount(value)

		return nil
	}

	var value int64
	if err := sonic.Unmarshal(data, &value); err != nil {
		return err
	}

	*c = ApproxCount(value)

	return nil
}

// ActivityKind identifies the kind of a single activity item.
type ActivityKind int

const (
	KindPost ActivityKind = iota
	KindComment
	KindRepost
)

// ActivityItem is one post, comment, or repost from a normalized activity
// snapshot. Items are owned by a single scoring call and never mutated.
type ActivityItem struct {
	Kind          ActivityKind `json:"kind"`
	Text          string       `json:"text,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	ReactionCount int64        `json:"reactionCount"`
	ReplyCount    int64        `json:"replyCount"`
	ReshareCount  int64        `json:"reshareCount"`
	Community     string       `json:"community,omitempty"`
	Deleted       bool         `json:"deleted"`
}

// ModeratedCommunity is a community the account moderates.
type ModeratedCommunity struct {
	Name        string      `json:"name"`
	MemberCount ApproxCount `json:"memberCount"`
}

// AccountMetadata holds lifetime account information. Karma and member counts
// decode from either raw numbers or suffixed strings like "1.2M"; the engine
// only ever sees the canonical numeric form.
type AccountMetadata struct {
	CreationDate         *time.Time           `json:"creationDate,omitempty"`
	PostKarma            ApproxCount          `json:"postKarma"`
	CommentKarma         ApproxCount          `json:"commentKarma"`
	FollowerCount        ApproxCount          `json:"followerCount"`
	FollowingCount       ApproxCount          `json:"followingCount"`
	VerifiedEmail        bool                 `json:"verifiedEmail"`
	PremiumTier          bool                 `json:"premiumTier"`
	Badges               []string             `json:"badges,omitempty"`
	Trophies             []string             `json:"trophies,omitempty"`
	ModeratedCommunities []ModeratedCommunity `json:"moderatedCommunities,omitempty"`
	PlatformAdmin        bool                 `json:"platformAdmin"`
	ExternalDomainHandle bool                 `json:"externalDomainHandle"`
}

// TimeWindow bounds the activity considered by the windowed scorers.
// A zero window means the full span of the snapshot.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether no explicit window was requested.
func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Contains reports whether t falls inside the window (inclusive).
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CommunityBaseline is the expected engagement for a community, computed over
// its most recent posts. Fetched at most once per community per scoring call.
type CommunityBaseline struct {
	AvgReactions    float64 `json:"avgReactions"`
	AvgReplies      float64 `json:"avgReplies"`
	MedianReactions float64 `json:"medianReactions"`
	MedianReplies   float64 `json:"medianReplies"`
}

// DefaultBaseline is used when a community's baseline cannot be fetched.
func DefaultBaseline() CommunityBaseline {
	return CommunityBaseline{
		AvgReactions:    5,
		AvgReplies:      1,
		MedianReactions: 5,
		MedianReplies:   1,
	}
}

// RateLimitPolicy is the request budget for baseline fetches during one
// scoring call.
type RateLimitPolicy struct {
	// Requests allowed per rate window.
	RequestsPerWindow int
	// Fixed wait after a throttling response.
	Backoff time.Duration
	// Maximum concurrent fetches in flight.
	BatchSize int
	// Backoff retries per community before degrading to the default baseline.
	MaxThrottleRetries uint64
}

// SentimentScore is the S sub-score with its breakdown.
type SentimentScore struct {
	Score        int            `json:"score"`
	Label        string         `json:"label"`
	PostScore    *int           `json:"avgPosts,omitempty"`
	CommentScore *int           `json:"avgComments,omitempty"`
	Communities  map[string]int `json:"communities,omitempty"`
	Items        int            `json:"n"`
}

// DeletionStats summarizes removed or deleted items in the window.
type DeletionStats struct {
	Deleted int     `json:"deleted"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// DuplicationStats summarizes repeated post text in the window.
type DuplicationStats struct {
	Unique int `json:"unique"`
	Total  int `json:"total"`
}

// DiversityStats counts content types present in the window.
type DiversityStats struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// EngagementScore is the E sub-score with its breakdown.
type EngagementScore struct {
	Score       int                          `json:"score"`
	Baselines   map[string]CommunityBaseline `json:"baselines,omitempty"`
	Deletion    DeletionStats                `json:"deletion"`
	Duplication DuplicationStats             `json:"duplication"`
	Diversity   DiversityStats               `json:"diversity"`
}

// TrustScore is the T sub-score with its breakdown.
type TrustScore struct {
	Score                int                  `json:"score"`
	PlatformAdmin        bool                 `json:"platformAdmin"`
	VerifiedEmail        bool                 `json:"verifiedEmail"`
	PremiumTier          bool                 `json:"premiumTier"`
	ExternalDomainHandle bool                 `json:"externalDomainHandle"`
	Badges               []string             `json:"badges,omitempty"`
	Trophies             []string             `json:"trophies,omitempty"`
	AccountAgeYears      float64              `json:"accountAgeYears"`
	ModeratedCommunities []ModeratedCommunity `json:"moderatedCommunities,omitempty"`
}

// InfluenceScore is the I sub-score with its breakdown.
type InfluenceScore struct {
	Score             int     `json:"score"`
	PostKarma         int64   `json:"postKarma"`
	CommentKarma      int64   `json:"commentKarma"`
	FollowerCount     int64   `json:"followerCount"`
	ModeratedAudience int64   `json:"moderatedAudience"`
	ContentCount      int     `json:"contentCount"`
	AvgImpact         float64 `json:"avgImpact"`
	ViralCount        int     `json:"viralCount"`
}

// ConsistencyBreakdown describes the weekly activity distribution.
// It is nil when the window holds no timestamped activity.
type ConsistencyBreakdown struct {
	SpanStart     time.Time `json:"spanStart"`
	SpanEnd       time.Time `json:"spanEnd"`
	TotalWeeks    int       `json:"totalWeeks"`
	ActiveWeeks   int       `json:"activeWeeks"`
	InactiveWeeks int       `json:"inactiveWeeks"`
	CV            float64   `json:"cv"`
	LastActive    time.Time `json:"lastActive"`
}

// ConsistencyScore is the C sub-score with its breakdown.
type ConsistencyScore struct {
	Score     int                   `json:"score"`
	Breakdown *ConsistencyBreakdown `json:"breakdown"`
}

// SETICResult is the full scoring output: five sub-scores plus the weighted
// composite R. All scores are integers in [0, 100].
type SETICResult struct {
	S SentimentScore   `json:"S"`
	E EngagementScore  `json:"E"`
	T TrustScore       `json:"T"`
	I InfluenceScore   `json:"I"`
	C ConsistencyScore `json:"C"`
	R int              `json:"R"`
}

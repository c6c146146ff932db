package reputation

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownPlatform is returned when no profile exists for a platform name.
var ErrUnknownPlatform = errors.New("unknown platform")

// Weights is the composite weight table for one platform. Weights sum to 1.
type Weights struct {
	Sentiment       float64
	Engagement      float64
	Trustworthiness float64
	Influence       float64
	Consistency     float64
}

// Platform parameterizes the engine for one social platform. All fields are
// read-only after construction; the same scoring code runs for every platform
// with these values injected.
type Platform struct {
	// Name is the canonical lowercase platform identifier.
	Name string
	// Weights is the composite weight table.
	Weights Weights
	// LogisticCenter is the engagement ratio mapped to a 50 base score.
	LogisticCenter float64
	// LogisticSlope controls how sharply the squash saturates.
	LogisticSlope float64
	// AuthenticatedRequests is the per-window fetch budget with a credential.
	AuthenticatedRequests int
	// AnonymousRequests is the per-window fetch budget without one.
	AnonymousRequests int
	// ThrottleBackoff is the fixed wait after a throttling response.
	ThrottleBackoff time.Duration
	// FetchBatchSize is the concurrent fetch ceiling.
	FetchBatchSize int
	// MaxThrottleRetries bounds backoff retries per community.
	MaxThrottleRetries uint64
}

// Policy derives the rate-limit budget for one scoring call.
// A platform credential unlocks the larger request budget.
func (p Platform) Policy(hasCredential bool) RateLimitPolicy {
	requests := p.AnonymousRequests
	if hasCredential {
		requests = p.AuthenticatedRequests
	}

	return RateLimitPolicy{
		RequestsPerWindow:  requests,
		Backoff:            p.ThrottleBackoff,
		BatchSize:          p.FetchBatchSize,
		MaxThrottleRetries: p.MaxThrottleRetries,
	}
}

// PlatformReddit returns the scoring profile for Reddit.
func PlatformReddit() Platform {
	return Platform{
		Name: "reddit",
		Weights: Weights{
			Sentiment:       0.25,
			Engagement:      0.25,
			Trustworthiness: 0.20,
			Influence:       0.20,
			Consistency:     0.10,
		},
		LogisticCenter:        0.05,
		LogisticSlope:         8,
		AuthenticatedRequests: 60,
		AnonymousRequests:     20,
		ThrottleBackoff:       90 * time.Second,
		FetchBatchSize:        5,
		MaxThrottleRetries:    3,
	}
}

// PlatformBluesky returns the scoring profile for Bluesky.
func PlatformBluesky() Platform {
	return Platform{
		Name: "bluesky",
		Weights: Weights{
			Sentiment:       0.20,
			Engagement:      0.25,
			Trustworthiness: 0.20,
			Influence:       0.20,
			Consistency:     0.15,
		},
		LogisticCenter:        0.2,
		LogisticSlope:         8,
		AuthenticatedRequests: 60,
		AnonymousRequests:     20,
		ThrottleBackoff:       90 * time.Second,
		FetchBatchSize:        5,
		MaxThrottleRetries:    3,
	}
}

// LookupPlatform resolves a platform name to its scoring profile.
func LookupPlatform(name string) (Platform, error) {
	switch strings.ToLower(name) {
	case "reddit":
		return PlatformReddit(), nil
	case "bluesky":
		return PlatformBluesky(), nil
	default:
		return Platform{}, ErrUnknownPlatform
	}
}

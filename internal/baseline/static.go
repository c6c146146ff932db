package baseline

import (
	"context"

	"github.com/socialsentrix/sentrix/internal/reputation"
)

// StaticSource serves a fixed baseline for platforms without per-community
// feeds to sample. Bluesky engagement is normalized against the default
// expectation rather than a fetched one.
type StaticSource struct {
	baseline reputation.CommunityBaseline
}

// NewStaticSource creates a StaticSource serving the given baseline.
func NewStaticSource(baseline reputation.CommunityBaseline) *StaticSource {
	return &StaticSource{baseline: baseline}
}

// Fetch returns the fixed baseline. It never fails and performs no I/O.
func (s *StaticSource) Fetch(context.Context, string) (reputation.CommunityBaseline, error) {
	return s.baseline, nil
}

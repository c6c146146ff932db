// Package reputation implements the SETIC scoring engine: five sub-scores
// (Sentiment, Engagement, Trustworthiness, Influence, Consistency) computed
// over a normalized activity snapshot, combined into a weighted composite.
package reputation

import (
	"context"
	"time"

	"github.com/socialsentrix/sentrix/internal/reputation/polarity"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// BaselineProvider supplies community engagement baselines for one scoring
// call. Implementations degrade failed fetches to the default baseline and
// must return an entry for every requested community.
type BaselineProvider interface {
	FetchAll(ctx context.Context, communities []string, policy RateLimitPolicy) map[string]CommunityBaseline
}

// Request is one scoring invocation. The activity snapshot and account
// metadata come from the ingestion boundary; the engine never fetches or
// persists profiles itself.
type Request struct {
	Activity []*ActivityItem
	Account  AccountMetadata
	// Window bounds the windowed scorers; zero means the full snapshot span.
	Window TimeWindow
	// Credential is an opaque platform access token, empty when absent.
	Credential string
	// Authenticated reports whether the caller holds a session, independent
	// of whether they supplied a platform credential.
	Authenticated bool
}

// Engine scores one platform's accounts. All weight tables and thresholds are
// read-only; the per-call baseline cache is the only mutable state, and it is
// owned by a single invocation.
type Engine struct {
	platform  Platform
	baselines BaselineProvider
	analyzer  *polarity.Analyzer
	logger    *zap.Logger
}

// NewEngine creates an Engine for the given platform profile.
func NewEngine(platform Platform, baselines BaselineProvider, logger *zap.Logger) *Engine {
	return &Engine{
		platform:  platform,
		baselines: baselines,
		analyzer:  polarity.NewAnalyzer(),
		logger:    logger.Named("reputation").With(zap.String("platform", platform.Name)),
	}
}

// Platform returns the engine's platform profile.
func (e *Engine) Platform() Platform {
	return e.platform
}

// Score computes the full SETIC result for one request. Sentiment, trust,
// influence, and consistency are pure and run concurrently; engagement runs
// on the calling goroutine since it is the only component doing I/O.
func (e *Engine) Score(ctx context.Context, req *Request) (*SETICResult, error) {
	window := resolveWindow(req.Activity, req.Window)
	now := time.Now()

	var result SETICResult

	p := pool.New().WithContext(ctx)

	p.Go(func(context.Context) error {
		result.S = scoreSentiment(e.analyzer, req.Activity, window)
		return nil
	})
	p.Go(func(context.Context) error {
		result.T = scoreTrust(req.Account, now)
		return nil
	})
	p.Go(func(context.Context) error {
		result.I = scoreInfluence(req.Account, req.Activity, window)
		return nil
	})
	p.Go(func(context.Context) error {
		result.C = scoreConsistency(req.Activity, window, now)
		return nil
	})

	result.E = e.scoreEngagement(ctx, req.Activity, window, e.platform.Policy(req.Credential != ""))

	if err := p.Wait(); err != nil {
		return nil, err
	}

	result.R = combineScores(e.platform.Weights,
		result.S.Score, result.E.Score, result.T.Score, result.I.Score, result.C.Score)

	e.logger.Debug("Scored account",
		zap.Int("activity", len(req.Activity)),
		zap.Int("S", result.S.Score),
		zap.Int("E", result.E.Score),
		zap.Int("T", result.T.Score),
		zap.Int("I", result.I.Score),
		zap.Int("C", result.C.Score),
		zap.Int("R", result.R))

	return &result, nil
}

// resolveWindow defaults a zero window to the full span of the snapshot.
func resolveWindow(activity []*ActivityItem, window TimeWindow) TimeWindow {
	if !window.IsZero() {
		if window.End.IsZero() {
			window.End = time.Now()
		}

		return window
	}

	if len(activity) == 0 {
		now := time.Now()
		return TimeWindow{Start: now, End: now}
	}

	resolved := TimeWindow{Start: activity[0].CreatedAt, End: activity[0].CreatedAt}

	for _, item := range activity[1:] {
		if item.CreatedAt.Before(resolved.Start) {
			resolved.Start = item.CreatedAt
		}

		if item.CreatedAt.After(resolved.End) {
			resolved.End = item.CreatedAt
		}
	}

	return resolved
}

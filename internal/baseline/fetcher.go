// Package baseline fetches expected community engagement statistics for the
// engagement scorer. Fetches run in bounded batches under a rate-limit policy
// and degrade to a default baseline instead of failing the scoring call.
package baseline

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/pkg/utils"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ErrThrottled is returned by a Source when the platform signals rate
// limiting. The fetcher waits the policy's fixed backoff and retries.
var ErrThrottled = errors.New("throttled by platform")

// Source fetches raw recent-activity statistics for one community.
type Source interface {
	Fetch(ctx context.Context, community string) (reputation.CommunityBaseline, error)
}

// Fetcher coordinates batched, cached baseline fetches for one platform.
type Fetcher struct {
	source Source
	logger *zap.Logger
}

// New creates a Fetcher around the given source.
func New(source Source, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		logger: logger.Named("baseline_fetcher"),
	}
}

// FetchAll fetches a baseline for every community, at most once each. Fetches
// run in batches of policy.BatchSize; batches are processed sequentially to
// respect the rate budget. Every community gets an entry: total fetch failure
// degrades to the default baseline.
func (f *Fetcher) FetchAll(
	ctx context.Context, communities []string, policy reputation.RateLimitPolicy,
) map[string]reputation.CommunityBaseline {
	cache := NewCache()

	batchSize := max(policy.BatchSize, 1)

	for start := 0; start < len(communities); start += batchSize {
		end := min(start+batchSize, len(communities))

		p := pool.New().WithContext(ctx).WithMaxGoroutines(batchSize)

		for _, community := range communities[start:end] {
			p.Go(func(ctx context.Context) error {
				if _, ok := cache.Get(community); ok {
					return nil
				}

				cache.Set(community, f.fetchOne(ctx, community, policy))

				return nil
			})
		}

		if err := p.Wait(); err != nil {
			f.logger.Warn("Baseline batch interrupted", zap.Error(err))
			break
		}
	}

	// Fill in defaults for anything an interrupted batch left behind.
	for _, community := range communities {
		if _, ok := cache.Get(community); !ok {
			cache.Set(community, reputation.DefaultBaseline())
		}
	}

	return cache.Snapshot()
}

// fetchOne fetches a single community's baseline, waiting out throttling
// signals up to the policy's retry ceiling. Any terminal failure degrades to
// the default baseline.
func (f *Fetcher) fetchOne(
	ctx context.Context, community string, policy reputation.RateLimitPolicy,
) reputation.CommunityBaseline {
	operation := func() (reputation.CommunityBaseline, error) {
		result, err := f.source.Fetch(ctx, community)
		if err != nil && !errors.Is(err, ErrThrottled) {
			// Only throttling is worth waiting out; everything else
			// degrades immediately.
			return result, backoff.Permanent(err)
		}

		return result, err
	}

	result, err := utils.WithRetry(ctx, operation,
		utils.GetThrottleRetryOptions(policy.Backoff, policy.MaxThrottleRetries))
	if err != nil {
		f.logger.Warn("Baseline fetch failed, using default",
			zap.String("community", community),
			zap.Error(err))

		return reputation.DefaultBaseline()
	}

	return result
}

package setup

import (
	"time"

	"github.com/socialsentrix/sentrix/internal/baseline"
	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/setup/config"
)

// Engines builds a scoring engine per supported platform, keyed by lowercase
// platform name. Reddit samples live community listings for engagement
// baselines; Bluesky has no per-community feed and normalizes against the
// default baseline.
func (a *App) Engines() map[string]*reputation.Engine {
	reddit := applyRateLimit(reputation.PlatformReddit(), &a.Config.RateLimit)
	bluesky := applyRateLimit(reputation.PlatformBluesky(), &a.Config.RateLimit)

	redditFetcher := baseline.New(baseline.NewRedditSource(&a.Config.Baseline, a.Logger), a.Logger)
	blueskyFetcher := baseline.New(baseline.NewStaticSource(reputation.DefaultBaseline()), a.Logger)

	return map[string]*reputation.Engine{
		reddit.Name:  reputation.NewEngine(reddit, redditFetcher, a.Logger),
		bluesky.Name: reputation.NewEngine(bluesky, blueskyFetcher, a.Logger),
	}
}

// applyRateLimit overrides a platform's built-in rate budget with configured
// values, keeping the platform defaults for anything left unset.
func applyRateLimit(platform reputation.Platform, cfg *config.RateLimit) reputation.Platform {
	if cfg.AuthenticatedRequests > 0 {
		platform.AuthenticatedRequests = cfg.AuthenticatedRequests
	}

	if cfg.AnonymousRequests > 0 {
		platform.AnonymousRequests = cfg.AnonymousRequests
	}

	if cfg.BackoffSeconds > 0 {
		platform.ThrottleBackoff = time.Duration(cfg.BackoffSeconds) * time.Second
	}

	if cfg.BatchSize > 0 {
		platform.FetchBatchSize = cfg.BatchSize
	}

	if cfg.MaxThrottleRetries > 0 {
		platform.MaxThrottleRetries = uint64(cfg.MaxThrottleRetries)
	}

	return platform
}

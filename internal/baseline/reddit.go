package baseline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/setup/config"
	"github.com/socialsentrix/sentrix/pkg/utils"
	"go.uber.org/zap"
)

var (
	// ErrUnexpectedStatus is returned for non-throttling HTTP failures.
	ErrUnexpectedStatus = errors.New("unexpected status from baseline endpoint")
	// ErrEmptyListing is returned when a community has no recent posts.
	ErrEmptyListing = errors.New("community listing is empty")
)

// RedditSource fetches a subreddit's recent-post statistics from the
// read-only listing API.
type RedditSource struct {
	client     *http.Client
	baseURL    string
	userAgent  string
	sampleSize int
	logger     *zap.Logger
}

// NewRedditSource creates a RedditSource from baseline configuration.
func NewRedditSource(cfg *config.Baseline, logger *zap.Logger) *RedditSource {
	return &RedditSource{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Millisecond,
		},
		baseURL:    cfg.RedditURL,
		userAgent:  cfg.UserAgent,
		sampleSize: cfg.SampleSize,
		logger:     logger.Named("reddit_source"),
	}
}

// Fetch returns engagement statistics over the community's most recent posts.
func (s *RedditSource) Fetch(ctx context.Context, community string) (reputation.CommunityBaseline, error) {
	listingURL := fmt.Sprintf("%s/r/%s/new.json?limit=%d",
		s.baseURL, url.PathEscape(community), s.sampleSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return reputation.CommunityBaseline{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return reputation.CommunityBaseline{}, fmt.Errorf("failed to fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		s.logger.Debug("Rate limited while fetching community", zap.String("community", community))
		return reputation.CommunityBaseline{}, ErrThrottled
	}

	if resp.StatusCode != http.StatusOK {
		return reputation.CommunityBaseline{}, fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return reputation.CommunityBaseline{}, fmt.Errorf("failed to read listing body: %w", err)
	}

	var listing struct {
		Data struct {
			Children []struct {
				Data struct {
					Ups         int64 `json:"ups"`
					NumComments int64 `json:"num_comments"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}

	if err := sonic.Unmarshal(body, &listing); err != nil {
		return reputation.CommunityBaseline{}, fmt.Errorf("failed to parse listing: %w", err)
	}

	posts := listing.Data.Children
	if len(posts) == 0 {
		return reputation.CommunityBaseline{}, ErrEmptyListing
	}

	reactions := make([]float64, 0, len(posts))
	replies := make([]float64, 0, len(posts))

	var reactionSum, replySum float64

	for _, post := range posts {
		reactions = append(reactions, float64(post.Data.Ups))
		replies = append(replies, float64(post.Data.NumComments))
		reactionSum += float64(post.Data.Ups)
		replySum += float64(post.Data.NumComments)
	}

	sort.Float64s(reactions)
	sort.Float64s(replies)

	return reputation.CommunityBaseline{
		AvgReactions:    reactionSum / float64(len(posts)),
		AvgReplies:      replySum / float64(len(posts)),
		MedianReactions: utils.Median(reactions),
		MedianReplies:   utils.Median(replies),
	}, nil
}

package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/rest"
	"github.com/socialsentrix/sentrix/internal/rest/types"
	"github.com/socialsentrix/sentrix/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStorage is an in-memory snapshot store for handler tests.
type memoryStorage struct {
	snapshots map[string]*storage.SnapshotPayload
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{snapshots: make(map[string]*storage.SnapshotPayload)}
}

func (m *memoryStorage) SaveSnapshot(
	_ context.Context, platform, username string, payload *storage.SnapshotPayload,
) (uuid.UUID, error) {
	m.snapshots[strings.ToLower(platform)+"/"+strings.ToLower(username)] = payload
	return uuid.New(), nil
}

func (m *memoryStorage) GetSnapshot(_ context.Context, platform, username string) (*storage.SnapshotPayload, error) {
	payload, ok := m.snapshots[strings.ToLower(platform)+"/"+strings.ToLower(username)]
	if !ok {
		return nil, storage.ErrSnapshotNotFound
	}

	return payload, nil
}

func (m *memoryStorage) Close() error { return nil }

// stubBaselines serves the default baseline for every community.
type stubBaselines struct{}

func (stubBaselines) FetchAll(
	_ context.Context, communities []string, _ reputation.RateLimitPolicy,
) map[string]reputation.CommunityBaseline {
	baselines := make(map[string]reputation.CommunityBaseline, len(communities))
	for _, community := range communities {
		baselines[community] = reputation.DefaultBaseline()
	}

	return baselines
}

func newTestServer(db storage.Client) *httptest.Server {
	logger := zap.NewNop()
	engines := map[string]*reputation.Engine{
		"reddit":  reputation.NewEngine(reputation.PlatformReddit(), stubBaselines{}, logger),
		"bluesky": reputation.NewEngine(reputation.PlatformBluesky(), stubBaselines{}, logger),
	}

	return httptest.NewServer(rest.NewServer(db, engines, logger))
}

func seedSnapshot(db *memoryStorage, username string) {
	base := time.Now().UTC().Add(-24 * time.Hour)
	db.snapshots["reddit/"+username] = &storage.SnapshotPayload{
		Activity: []*reputation.ActivityItem{
			{Kind: reputation.KindPost, Text: "Shipping the new release today!", CreatedAt: base, ReactionCount: 12, ReplyCount: 2, Community: "golang"},
			{Kind: reputation.KindComment, Text: "Thanks, this helped a lot.", CreatedAt: base.Add(time.Hour), ReactionCount: 4, Community: "golang"},
		},
		Account: reputation.AccountMetadata{PostKarma: 2500, VerifiedEmail: true},
	}
}

func TestGetScore(t *testing.T) {
	t.Parallel()

	db := newMemoryStorage()
	seedSnapshot(db, "gopher")

	server := newTestServer(db)
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/profiles/reddit/gopher/score")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result reputation.SETICResult
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&result))

	assert.GreaterOrEqual(t, result.R, 0)
	assert.LessOrEqual(t, result.R, 100)
	assert.Equal(t, 21, result.T.Score) // verified email + karma tier
}

func TestGetScoreNotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(newMemoryStorage())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/profiles/reddit/nobody/score")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetScoreUnknownPlatform(t *testing.T) {
	t.Parallel()

	server := newTestServer(newMemoryStorage())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/profiles/myspace/someone/score")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetScoreInvalidWindow(t *testing.T) {
	t.Parallel()

	db := newMemoryStorage()
	seedSnapshot(db, "gopher")

	server := newTestServer(db)
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/profiles/reddit/gopher/score?start=yesterday")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetScoreDryRun(t *testing.T) {
	t.Parallel()

	db := newMemoryStorage()
	seedSnapshot(db, "gopher")

	server := newTestServer(db)
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/profiles/reddit/gopher/score?dryRun=true")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var estimate reputation.CostEstimate
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&estimate))

	assert.Equal(t, reputation.AuthAnonymous, estimate.Status)
	assert.Equal(t, 1, estimate.Communities)
	assert.Equal(t, 20, estimate.RequestsPerWindow)
}

func TestGetScoreDryRunWithCredential(t *testing.T) {
	t.Parallel()

	db := newMemoryStorage()
	seedSnapshot(db, "gopher")

	server := newTestServer(db)
	defer server.Close()

	req, err := http.NewRequestWithContext(
		context.Background(), http.MethodGet,
		server.URL+"/v1/profiles/reddit/gopher/score?dryRun=true", nil)
	require.NoError(t, err)
	req.Header.Set("X-Platform-Token", "token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var estimate reputation.CostEstimate
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&estimate))

	assert.Equal(t, reputation.AuthWithCredential, estimate.Status)
	assert.Equal(t, 60, estimate.RequestsPerWindow)
}

func TestSubmitProfile(t *testing.T) {
	t.Parallel()

	db := newMemoryStorage()

	server := newTestServer(db)
	defer server.Close()

	body, err := sonic.Marshal(types.SubmitProfileRequest{
		Platform: "reddit",
		Username: "Gopher",
		Activity: []*reputation.ActivityItem{
			{Kind: reputation.KindPost, Text: "Hello!", CreatedAt: time.Now().UTC()},
		},
	})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/v1/profiles", "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitted types.SubmitProfileResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&submitted))
	assert.NotEqual(t, uuid.Nil, submitted.ID)

	// The snapshot is retrievable under the lowercased key.
	_, err = db.GetSnapshot(context.Background(), "reddit", "gopher")
	require.NoError(t, err)
}

func TestSubmitProfileValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer(newMemoryStorage())
	t.Cleanup(server.Close)

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown platform", body: `{"platform": "myspace", "username": "someone"}`},
		{name: "missing username", body: `{"platform": "reddit"}`},
		{name: "malformed json", body: `{"platform":`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := http.Post(server.URL+"/v1/profiles", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

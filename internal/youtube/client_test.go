package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/ykkmr/youtube-search-backend/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return mustClient(t, &config.YouTubeConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 10,
	})
}

func mustClient(t *testing.T, cfg *config.YouTubeConfig) *Client {
	t.Helper()
	c, err := NewClient(cfg, nil)
	require.NoError(t, err)
	return c
}

// resource is the last path segment, e.g. "search" for /youtube/v3/search
func resource(r *http.Request) string {
	return path.Base(r.URL.Path)
}

func TestClient_Search_Params(t *testing.T) {
	var got url.Values
	var endpoint string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		endpoint = resource(r)
		got = r.URL.Query()
		w.Write([]byte(`{"pageInfo":{"totalResults":7},"nextPageToken":"N1","items":[]}`))
	})

	page, err := c.Search(context.Background(), SearchParams{
		Query:          "golang tutorial",
		MaxResults:     30,
		PublishedAfter: "2024-01-01T00:00:00Z",
		VideoDuration:  "shorts",
		VideoLicense:   "creativeCommon",
		PageToken:      "P0",
	})
	require.NoError(t, err)

	assert.Equal(t, "search", endpoint)
	assert.Equal(t, "snippet", got.Get("part"))
	assert.Equal(t, "golang tutorial", got.Get("q"))
	assert.Equal(t, "video", got.Get("type"))
	assert.Equal(t, "30", got.Get("maxResults"))
	assert.Equal(t, "relevance", got.Get("order"))
	assert.Equal(t, "test-key", got.Get("key"))
	assert.Equal(t, "2024-01-01T00:00:00Z", got.Get("publishedAfter"))
	assert.Equal(t, "short", got.Get("videoDuration"))
	assert.Equal(t, "creativeCommon", got.Get("videoLicense"))
	assert.Equal(t, "P0", got.Get("pageToken"))
	assert.False(t, got.Has("publishedBefore"))
	assert.False(t, got.Has("videoDefinition"))

	assert.Equal(t, int64(7), page.TotalResults)
	assert.Equal(t, "N1", page.NextPageToken)
	assert.Empty(t, page.Hits)
}

func TestClient_VideosAndChannels_Params(t *testing.T) {
	calls := map[string]url.Values{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls[resource(r)] = r.URL.Query()
		switch resource(r) {
		case "videos":
			w.Write([]byte(`{"items":[{"id":"v1","statistics":{"viewCount":"10"},"contentDetails":{"duration":"PT10S"}}]}`))
		case "channels":
			w.Write([]byte(`{"items":[{"id":"c1","statistics":{"subscriberCount":"99"}}]}`))
		}
	})

	videos, err := c.Videos(context.Background(), []string{"v1", "v2"})
	require.NoError(t, err)
	assert.Equal(t, VideoStats{ViewCount: 10, Duration: "PT10S"}, videos["v1"])

	channels, err := c.Channels(context.Background(), []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), channels["c1"].SubscriberCount)

	assert.Equal(t, "snippet,statistics,contentDetails", strings.Join(calls["videos"]["part"], ","))
	assert.Equal(t, "v1,v2", strings.Join(calls["videos"]["id"], ","))
	assert.Equal(t, "test-key", calls["videos"].Get("key"))
	assert.Equal(t, "snippet,statistics", strings.Join(calls["channels"]["part"], ","))
	assert.Equal(t, "c1", strings.Join(calls["channels"]["id"], ","))
}

func TestClient_EmptyIDsSkipCall(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call to %s", r.URL.Path)
	})

	videos, err := c.Videos(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, videos)

	channels, err := c.Channels(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, channels)
}

func TestClient_TooManyIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call to %s", r.URL.Path)
	})

	ids := make([]string, MaxIDsPerCall+1)
	for i := range ids {
		ids[i] = "c"
	}
	_, err := c.Channels(context.Background(), ids)
	assert.ErrorIs(t, err, ErrTooManyIDs)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantBody string
	}{
		{name: "with body", status: http.StatusForbidden, body: `{"error":{"message":"quotaExceeded"}}`, wantBody: `{"error":{"message":"quotaExceeded"}}`},
		{name: "empty body", status: http.StatusInternalServerError, body: "", wantBody: "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Search(context.Background(), SearchParams{Query: "x", MaxResults: 5})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantBody, apiErr.Body)
			assert.Equal(t, "search", apiErr.Endpoint)
			assert.Contains(t, err.Error(), "YouTube API error")
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	c.timeout = 50 * time.Millisecond

	_, err := c.Videos(context.Background(), []string{"v1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotContains(t, err.Error(), "test-key")
}

func TestClient_ConnectionErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := mustClient(t, &config.YouTubeConfig{APIKey: "secret-key", BaseURL: baseURL, Timeout: 10})

	_, err := c.Search(context.Background(), SearchParams{Query: "x", MaxResults: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), err.Error())
}

func TestClient_APIKeyNotConfigured(t *testing.T) {
	for _, key := range []string{"", config.PlaceholderAPIKey} {
		c := mustClient(t, &config.YouTubeConfig{APIKey: key, BaseURL: "http://127.0.0.1:1", Timeout: 10})
		_, err := c.Search(context.Background(), SearchParams{Query: "x", MaxResults: 1})
		assert.ErrorIs(t, err, ErrAPIKeyNotConfigured)
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.Search(context.Background(), SearchParams{Query: "x", MaxResults: 1})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_RateLimiterTimeout(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"items":[]}`))
	})
	c.limiter = rate.NewLimiter(rate.Limit(0.5), 1)
	c.timeout = 50 * time.Millisecond

	_, err := c.Channels(context.Background(), []string{"c1"})
	require.NoError(t, err)

	// the next token is two seconds away, past the per-call deadline
	start := time.Now()
	_, err = c.Channels(context.Background(), []string{"c1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_RateLimiterCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call to %s", r.URL.Path)
	})
	c.limiter = rate.NewLimiter(rate.Limit(0.5), 1)
	c.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Videos(ctx, []string{"v1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestClient_RateLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := mustClient(t, &config.YouTubeConfig{
		APIKey:            "k",
		BaseURL:           srv.URL,
		Timeout:           10,
		RequestsPerSecond: 20,
	})
	require.NotNil(t, c.limiter)

	start := time.Now()
	for i := 0; i < 25; i++ {
		_, err := c.Channels(context.Background(), []string{"c1"})
		require.NoError(t, err)
	}
	// burst of 20, then 5 more at 20/s
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

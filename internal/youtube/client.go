package youtube

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/ykkmr/youtube-search-backend/internal/config"
)

const (
	endpointSearch   = "search"
	endpointVideos   = "videos"
	endpointChannels = "channels"
)

var (
	searchParts  = []string{"snippet"}
	videoParts   = []string{"snippet", "statistics", "contentDetails"}
	channelParts = []string{"snippet", "statistics"}
)

// Client YouTube Data API v3 client. No retries are done here.
type Client struct {
	config  *config.YouTubeConfig
	service *ytapi.Service
	limiter *rate.Limiter
	timeout time.Duration
	log     *zap.Logger
}

// NewClient creates a YouTube API client
func NewClient(cfg *config.YouTubeConfig, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("youtube")

	base := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err == nil {
			base.Proxy = http.ProxyURL(proxyURL)
			log.Info("using proxy", zap.String("proxy", proxyURL.Redacted()))
		} else {
			log.Warn("invalid proxy, connecting directly", zap.Error(err))
		}
	}

	// WithHTTPClient bypasses the library's credential options, so the key
	// rides on the transport instead of option.WithAPIKey.
	httpClient := &http.Client{
		Transport: &transport.APIKey{Key: cfg.APIKey, Transport: base},
	}

	service, err := ytapi.NewService(context.Background(),
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(cfg.BaseURL+"/"),
	)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	c := &Client{
		config:  cfg,
		service: service,
		timeout: cfg.RequestTimeout(),
		log:     log,
	}

	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c, nil
}

// Search calls search.list
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchPage, error) {
	order := p.Order
	if order == "" {
		order = "relevance"
	}

	call := c.service.Search.List(searchParts).
		Q(p.Query).
		Type("video").
		MaxResults(int64(p.MaxResults)).
		Order(order)
	if p.PublishedAfter != "" {
		call = call.PublishedAfter(p.PublishedAfter)
	}
	if p.PublishedBefore != "" {
		call = call.PublishedBefore(p.PublishedBefore)
	}
	if d := upstreamDuration(p.VideoDuration); d != "" {
		call = call.VideoDuration(d)
	}
	if p.VideoDefinition != "" {
		call = call.VideoDefinition(p.VideoDefinition)
	}
	if p.VideoLicense != "" {
		call = call.VideoLicense(p.VideoLicense)
	}
	if p.PageToken != "" {
		call = call.PageToken(p.PageToken)
	}

	var resp *ytapi.SearchListResponse
	err := c.do(ctx, endpointSearch, func(ctx context.Context) (err error) {
		resp, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	return searchPage(resp), nil
}

// Videos calls videos.list for at most MaxIDsPerCall ids
func (c *Client) Videos(ctx context.Context, ids []string) (map[string]VideoStats, error) {
	if len(ids) == 0 {
		return map[string]VideoStats{}, nil
	}
	if len(ids) > MaxIDsPerCall {
		return nil, fmt.Errorf("%w: %d videos", ErrTooManyIDs, len(ids))
	}

	call := c.service.Videos.List(videoParts).Id(strings.Join(ids, ","))

	var resp *ytapi.VideoListResponse
	err := c.do(ctx, endpointVideos, func(ctx context.Context) (err error) {
		resp, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	return videoStats(resp), nil
}

// Channels calls channels.list for at most MaxIDsPerCall ids
func (c *Client) Channels(ctx context.Context, ids []string) (map[string]ChannelStats, error) {
	if len(ids) == 0 {
		return map[string]ChannelStats{}, nil
	}
	if len(ids) > MaxIDsPerCall {
		return nil, fmt.Errorf("%w: %d channels", ErrTooManyIDs, len(ids))
	}

	call := c.service.Channels.List(channelParts).Id(strings.Join(ids, ","))

	var resp *ytapi.ChannelListResponse
	err := c.do(ctx, endpointChannels, func(ctx context.Context) (err error) {
		resp, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	return channelStats(resp), nil
}

// do runs one API call under the per-call timeout and the outbound limiter
func (c *Client) do(ctx context.Context, endpoint string, fn func(ctx context.Context) error) error {
	if !c.config.APIKeyConfigured() {
		return ErrAPIKeyNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// Wait fails early when the next token lies past the deadline
			if errors.Is(ctx.Err(), context.Canceled) {
				return fmt.Errorf("youtube %s: %w", endpoint, ctx.Err())
			}
			return fmt.Errorf("%w: %s waiting for rate limiter after %s", ErrTimeout, endpoint, c.timeout)
		}
	}

	start := time.Now()
	err := fn(ctx)
	if err != nil {
		err = c.upstreamError(ctx, endpoint, err)
	}

	c.log.Debug("upstream call",
		zap.String("endpoint", endpoint),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err),
	)
	return err
}

// upstreamError maps a failed call onto APIError, ErrTimeout or
// ErrInvalidResponse. The url.Error wrapper is dropped because its message
// carries the request URL, API key included.
func (c *Client) upstreamError(ctx context.Context, endpoint string, err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		body := strings.TrimSpace(gErr.Body)
		if body == "" {
			body = unknownErrorBody
		}
		return &APIError{Endpoint: endpoint, StatusCode: gErr.Code, Body: body}
	}

	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s after %s", ErrTimeout, endpoint, c.timeout)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("youtube %s: %w", endpoint, urlErr.Err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("youtube %s: %w", endpoint, err)
	}

	// anything else failed while decoding a 2xx body
	return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, endpoint, err)
}

// upstreamDuration maps the client-side shorts class onto the API's short class
func upstreamDuration(d string) string {
	if d == "shorts" {
		return "short"
	}
	return d
}

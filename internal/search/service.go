package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ykkmr/youtube-search-backend/internal/config"
	"github.com/ykkmr/youtube-search-backend/internal/model"
	"github.com/ykkmr/youtube-search-backend/internal/youtube"
)

// Service video search service
type Service struct {
	config  *config.Config
	fetcher *Fetcher
	log     *zap.Logger
}

// NewService creates the search service
func NewService(cfg *config.Config, upstream Upstream, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("search")

	return &Service{
		config:  cfg,
		fetcher: NewFetcher(upstream, log),
		log:     log,
	}
}

// Search runs the keyword search with all client-side filters
func (s *Service) Search(ctx context.Context, q *model.SearchQuery) (*model.SearchResult, error) {
	if !s.config.YouTube.APIKeyConfigured() {
		return nil, youtube.ErrAPIKeyNotConfigured
	}

	target := s.config.Search.DefaultMaxResults
	if q.MaxResults != nil {
		target = *q.MaxResults
	}

	start := time.Now()
	result, err := s.fetcher.Fetch(ctx, q, target)
	if err != nil {
		s.log.Warn("search failed",
			zap.String("keyword", q.Keyword),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("search done",
		zap.String("keyword", q.Keyword),
		zap.Int("target", target),
		zap.Int("results", len(result.Videos)),
		zap.Bool("enriched", q.NeedsEnrichment()),
		zap.Duration("latency", time.Since(start)),
	)
	return result, nil
}

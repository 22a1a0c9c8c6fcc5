package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ykkmr/youtube-search-backend/internal/model"
	"github.com/ykkmr/youtube-search-backend/internal/youtube"
)

// Page size multipliers, applied to the number of results still wanted.
// Stricter filters discard more hits, so they over-fetch harder.
const (
	plainMultiplier  = 3
	statsMultiplier  = 5
	shortsMultiplier = 10

	maxPageSize = youtube.MaxIDsPerCall
)

// Fetch-more budgets, counted in extra pages after the first
const (
	attemptBudget      = 3
	emptyAttemptBudget = 5
)

// Fetcher runs the search, enrich and filter rounds for one query,
// following next-page tokens until enough results survive the filters.
type Fetcher struct {
	upstream Upstream
	joiner   *Joiner
	log      *zap.Logger
}

// NewFetcher creates a pagination fetcher
func NewFetcher(upstream Upstream, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		upstream: upstream,
		joiner:   NewJoiner(upstream),
		log:      log,
	}
}

// Fetch returns up to target filtered videos for q, starting at q.PageToken
func (f *Fetcher) Fetch(ctx context.Context, q *model.SearchQuery, target int) (*model.SearchResult, error) {
	acc, page, err := f.round(ctx, q, q.PageToken, target, nil)
	if err != nil {
		return nil, err
	}
	return f.fetchMore(ctx, q, target, acc, page, 0)
}

// fetchMore keeps requesting pages while results are short, a next page
// exists and the attempt budget allows it.
func (f *Fetcher) fetchMore(ctx context.Context, q *model.SearchQuery, target int, acc []model.VideoResult, last *youtube.SearchPage, attempts int) (*model.SearchResult, error) {
	budget := attemptBudget
	if len(acc) == 0 {
		budget = emptyAttemptBudget
	}

	if len(acc) >= target || last.NextPageToken == "" || attempts >= budget {
		if acc == nil {
			acc = []model.VideoResult{}
		}
		return &model.SearchResult{
			Videos:        acc,
			TotalResults:  last.TotalResults,
			NextPageToken: last.NextPageToken,
			PrevPageToken: last.PrevPageToken,
		}, nil
	}

	next, page, err := f.round(ctx, q, last.NextPageToken, target-len(acc), acc)
	if err != nil {
		return nil, err
	}
	return f.fetchMore(ctx, q, target, next, page, attempts+1)
}

// round fetches one page, enriches it when needed and appends the survivors
// to a copy of acc.
func (f *Fetcher) round(ctx context.Context, q *model.SearchQuery, pageToken string, remaining int, acc []model.VideoResult) ([]model.VideoResult, *youtube.SearchPage, error) {
	size := pageSize(q, remaining)

	page, err := f.upstream.Search(ctx, youtube.SearchParams{
		Query:           q.Keyword,
		MaxResults:      size,
		Order:           q.Order,
		PublishedAfter:  q.PublishedAfter,
		PublishedBefore: q.PublishedBefore,
		VideoDuration:   q.VideoDuration,
		VideoDefinition: q.VideoDefinition,
		VideoLicense:    q.VideoLicense,
		PageToken:       pageToken,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("search videos: %w", err)
	}

	hits := unseen(page.Hits, acc)

	var stats *Stats
	if q.NeedsEnrichment() && len(hits) > 0 {
		stats, err = f.joiner.Join(ctx, hits)
		if err != nil {
			return nil, nil, err
		}
	}

	kept := Filter(hits, stats, q, remaining)

	f.log.Debug("search round",
		zap.String("page_token", pageToken),
		zap.Int("page_size", size),
		zap.Int("hits", len(page.Hits)),
		zap.Int("kept", len(kept)),
		zap.String("next_page_token", page.NextPageToken),
	)

	next := make([]model.VideoResult, 0, len(acc)+len(kept))
	next = append(next, acc...)
	next = append(next, kept...)
	return next, page, nil
}

// pageSize upstream maxResults for a round that still needs remaining videos
func pageSize(q *model.SearchQuery, remaining int) int {
	multiplier := plainMultiplier
	switch {
	case q.Shorts():
		multiplier = shortsMultiplier
	case q.HasCountFilter():
		multiplier = statsMultiplier
	}
	// compare before multiplying so huge targets cannot overflow
	if remaining > maxPageSize/multiplier {
		return maxPageSize
	}
	return remaining * multiplier
}

// unseen drops hits whose video is already accumulated or repeated in the page
func unseen(hits []youtube.SearchHit, acc []model.VideoResult) []youtube.SearchHit {
	seen := make(map[string]struct{}, len(acc)+len(hits))
	for _, v := range acc {
		seen[v.VideoID] = struct{}{}
	}

	out := make([]youtube.SearchHit, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.VideoID]; ok {
			continue
		}
		seen[h.VideoID] = struct{}{}
		out = append(out, h)
	}
	return out
}

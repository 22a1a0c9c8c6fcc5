package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ykkmr/youtube-search-backend/internal/youtube"
)

// Upstream is the part of the YouTube client the pipeline depends on
type Upstream interface {
	Search(ctx context.Context, p youtube.SearchParams) (*youtube.SearchPage, error)
	Videos(ctx context.Context, ids []string) (map[string]youtube.VideoStats, error)
	Channels(ctx context.Context, ids []string) (map[string]youtube.ChannelStats, error)
}

// Stats statistics joined onto one page of hits
type Stats struct {
	Videos   map[string]youtube.VideoStats
	Channels map[string]youtube.ChannelStats
}

// Joiner batch-fetches video and channel statistics for search hits
type Joiner struct {
	upstream Upstream
}

// NewJoiner creates a stats joiner
func NewJoiner(upstream Upstream) *Joiner {
	return &Joiner{upstream: upstream}
}

// Join fetches statistics for the distinct videos and channels in hits.
// Video and channel batches run concurrently; the first failure cancels the
// rest and fails the join.
func (j *Joiner) Join(ctx context.Context, hits []youtube.SearchHit) (*Stats, error) {
	videoIDs, channelIDs := distinctIDs(hits)
	videoBatches := chunk(videoIDs, youtube.MaxIDsPerCall)
	channelBatches := chunk(channelIDs, youtube.MaxIDsPerCall)

	videoResults := make([]map[string]youtube.VideoStats, len(videoBatches))
	channelResults := make([]map[string]youtube.ChannelStats, len(channelBatches))

	g, gctx := errgroup.WithContext(ctx)
	for i, ids := range videoBatches {
		i, ids := i, ids
		g.Go(func() error {
			m, err := j.upstream.Videos(gctx, ids)
			if err != nil {
				return fmt.Errorf("fetch video details: %w", err)
			}
			videoResults[i] = m
			return nil
		})
	}
	for i, ids := range channelBatches {
		i, ids := i, ids
		g.Go(func() error {
			m, err := j.upstream.Channels(gctx, ids)
			if err != nil {
				return fmt.Errorf("fetch channel details: %w", err)
			}
			channelResults[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Videos:   make(map[string]youtube.VideoStats, len(videoIDs)),
		Channels: make(map[string]youtube.ChannelStats, len(channelIDs)),
	}
	for _, m := range videoResults {
		for id, v := range m {
			stats.Videos[id] = v
		}
	}
	for _, m := range channelResults {
		for id, c := range m {
			stats.Channels[id] = c
		}
	}
	return stats, nil
}

// distinctIDs collects video and channel ids in first-seen order
func distinctIDs(hits []youtube.SearchHit) (videoIDs, channelIDs []string) {
	seenVideo := make(map[string]struct{}, len(hits))
	seenChannel := make(map[string]struct{}, len(hits))

	for _, h := range hits {
		if _, ok := seenVideo[h.VideoID]; !ok && h.VideoID != "" {
			seenVideo[h.VideoID] = struct{}{}
			videoIDs = append(videoIDs, h.VideoID)
		}
		if _, ok := seenChannel[h.ChannelID]; !ok && h.ChannelID != "" {
			seenChannel[h.ChannelID] = struct{}{}
			channelIDs = append(channelIDs, h.ChannelID)
		}
	}
	return videoIDs, channelIDs
}

func chunk(ids []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

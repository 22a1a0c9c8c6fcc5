package search

import (
	"github.com/ykkmr/youtube-search-backend/internal/model"
	"github.com/ykkmr/youtube-search-backend/internal/youtube"
)

// shortsMaxSeconds exclusive upper bound for shorts
const shortsMaxSeconds = 60

// Filter applies, in order, the title match, the shorts duration check and
// the view-count and subscriber-count ranges to each hit, and returns at most
// target survivors in upstream order. stats is nil when enrichment did not
// run; missing statistics count as zero.
func Filter(hits []youtube.SearchHit, stats *Stats, q *model.SearchQuery, target int) []model.VideoResult {
	results := make([]model.VideoResult, 0, min(len(hits), max(target, 0)))

	for _, hit := range hits {
		if len(results) >= target {
			break
		}

		if !MatchTitle(hit.Title, q.Keyword) {
			continue
		}

		var (
			video       youtube.VideoStats
			hasVideo    bool
			subscribers int64
		)
		if stats != nil {
			video, hasVideo = stats.Videos[hit.VideoID]
			subscribers = stats.Channels[hit.ChannelID].SubscriberCount
		}

		if q.Shorts() {
			seconds, ok := ParseDuration(video.Duration)
			if !ok || seconds >= shortsMaxSeconds {
				continue
			}
		}
		if !inRange(video.ViewCount, q.MinViewCount, q.MaxViewCount) {
			continue
		}
		if !inRange(subscribers, q.MinSubscriberCount, q.MaxSubscriberCount) {
			continue
		}

		result := model.VideoResult{
			VideoID:      hit.VideoID,
			Title:        hit.Title,
			Description:  hit.Description,
			ThumbnailURL: hit.ThumbnailURL,
			ChannelID:    hit.ChannelID,
			ChannelTitle: hit.ChannelTitle,
			PublishedAt:  hit.PublishedAt,
		}
		if stats != nil {
			result.ViewCount = &video.ViewCount
			result.SubscriberCount = &subscribers
			if hasVideo {
				result.LikeCount = &video.LikeCount
				result.CommentCount = &video.CommentCount
				if video.Duration != "" {
					result.Duration = &video.Duration
				}
			}
		}
		results = append(results, result)
	}

	return results
}

func inRange(v int64, lo, hi *int64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

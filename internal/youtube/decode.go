package youtube

import (
	ytapi "google.golang.org/api/youtube/v3"
)

// Missing parts of an API resource degrade to zero values instead of
// failing the page. Hits without a video id are dropped.

func searchPage(resp *ytapi.SearchListResponse) *SearchPage {
	page := &SearchPage{
		NextPageToken: resp.NextPageToken,
		PrevPageToken: resp.PrevPageToken,
		Hits:          make([]SearchHit, 0, len(resp.Items)),
	}
	if resp.PageInfo != nil {
		page.TotalResults = resp.PageInfo.TotalResults
	}

	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		hit := SearchHit{VideoID: item.Id.VideoId}
		if s := item.Snippet; s != nil {
			hit.ChannelID = s.ChannelId
			hit.Title = plainText(s.Title)
			hit.Description = plainText(s.Description)
			hit.ChannelTitle = plainText(s.ChannelTitle)
			hit.PublishedAt = s.PublishedAt
			if s.Thumbnails != nil && s.Thumbnails.Default != nil {
				hit.ThumbnailURL = s.Thumbnails.Default.Url
			}
		}
		page.Hits = append(page.Hits, hit)
	}

	return page
}

func videoStats(resp *ytapi.VideoListResponse) map[string]VideoStats {
	stats := make(map[string]VideoStats, len(resp.Items))
	for _, v := range resp.Items {
		if v == nil || v.Id == "" {
			continue
		}
		var s VideoStats
		if st := v.Statistics; st != nil {
			s.ViewCount = int64(st.ViewCount)
			s.LikeCount = int64(st.LikeCount)
			s.CommentCount = int64(st.CommentCount)
		}
		if v.ContentDetails != nil {
			s.Duration = v.ContentDetails.Duration
		}
		stats[v.Id] = s
	}
	return stats
}

func channelStats(resp *ytapi.ChannelListResponse) map[string]ChannelStats {
	stats := make(map[string]ChannelStats, len(resp.Items))
	for _, ch := range resp.Items {
		if ch == nil || ch.Id == "" {
			continue
		}
		// hidden subscriber counts are absent and count as 0
		var s ChannelStats
		if ch.Statistics != nil {
			s.SubscriberCount = int64(ch.Statistics.SubscriberCount)
		}
		stats[ch.Id] = s
	}
	return stats
}

package model

// ErrSearchFailed is the error code returned for every failed search.
const ErrSearchFailed = "SEARCH_FAILED"

// DurationShorts is the client-side duration class for videos under a minute.
const DurationShorts = "shorts"

// SearchQuery search request, bound from a JSON body (POST) or query string (GET)
type SearchQuery struct {
	Keyword         string `json:"keyword" form:"keyword" binding:"required"`
	MaxResults      *int   `json:"maxResults,omitempty" form:"maxResults" binding:"omitempty,gt=0"`
	Order           string `json:"order,omitempty" form:"order" binding:"omitempty,oneof=relevance date rating title videoCount viewCount"`
	PublishedAfter  string `json:"publishedAfter,omitempty" form:"publishedAfter" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	PublishedBefore string `json:"publishedBefore,omitempty" form:"publishedBefore" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	VideoDuration   string `json:"videoDuration,omitempty" form:"videoDuration" binding:"omitempty,oneof=any short medium long shorts"`
	VideoDefinition string `json:"videoDefinition,omitempty" form:"videoDefinition" binding:"omitempty,oneof=any high standard"`
	VideoLicense    string `json:"videoLicense,omitempty" form:"videoLicense" binding:"omitempty,oneof=any creativeCommon youtube"`
	PageToken       string `json:"pageToken,omitempty" form:"pageToken"`

	// Client-side filters, applied after enrichment
	MinViewCount       *int64 `json:"minViewCount,omitempty" form:"minViewCount" binding:"omitempty,min=0"`
	MaxViewCount       *int64 `json:"maxViewCount,omitempty" form:"maxViewCount" binding:"omitempty,min=0"`
	MinSubscriberCount *int64 `json:"minSubscriberCount,omitempty" form:"minSubscriberCount" binding:"omitempty,min=0"`
	MaxSubscriberCount *int64 `json:"maxSubscriberCount,omitempty" form:"maxSubscriberCount" binding:"omitempty,min=0"`
}

// Shorts reports whether the shorts duration filter is requested
func (q *SearchQuery) Shorts() bool {
	return q.VideoDuration == DurationShorts
}

// HasCountFilter reports whether any view/subscriber range bound is set
func (q *SearchQuery) HasCountFilter() bool {
	return q.MinViewCount != nil || q.MaxViewCount != nil ||
		q.MinSubscriberCount != nil || q.MaxSubscriberCount != nil
}

// NeedsEnrichment reports whether video/channel statistics must be fetched
func (q *SearchQuery) NeedsEnrichment() bool {
	return q.HasCountFilter() || q.Shorts()
}

// VideoResult a single video in the response
type VideoResult struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`

	// Populated only when enrichment ran
	ViewCount       *int64  `json:"viewCount,omitempty"`
	LikeCount       *int64  `json:"likeCount,omitempty"`
	CommentCount    *int64  `json:"commentCount,omitempty"`
	Duration        *string `json:"duration,omitempty"`
	SubscriberCount *int64  `json:"subscriberCount,omitempty"`
}

// SearchResult search response
type SearchResult struct {
	Videos        []VideoResult `json:"videos"`
	TotalResults  int64         `json:"totalResults"`
	NextPageToken string        `json:"nextPageToken,omitempty"`
	PrevPageToken string        `json:"prevPageToken,omitempty"`
}

// ErrorResponse error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse health check response
type HealthResponse struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	Upstream         string `json:"upstream"`
}

// ConfigResponse runtime settings, secrets redacted
type ConfigResponse struct {
	Server  interface{} `json:"server"`
	YouTube interface{} `json:"youtube"`
	Search  interface{} `json:"search"`
}

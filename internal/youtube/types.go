package youtube

// MaxIDsPerCall upstream limit on ids per videos/channels request, also the
// search page size ceiling.
const MaxIDsPerCall = 50

// SearchParams parameters of one search.list call
type SearchParams struct {
	Query           string
	MaxResults      int
	Order           string
	PublishedAfter  string
	PublishedBefore string
	VideoDuration   string
	VideoDefinition string
	VideoLicense    string
	PageToken       string
}

// SearchHit one video item of a search page
type SearchHit struct {
	VideoID      string
	ChannelID    string
	Title        string
	Description  string
	ThumbnailURL string
	ChannelTitle string
	PublishedAt  string
}

// SearchPage one decoded search page
type SearchPage struct {
	Hits          []SearchHit
	TotalResults  int64
	NextPageToken string
	PrevPageToken string
}

// VideoStats statistics and content details of a video
type VideoStats struct {
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Duration     string // ISO-8601 token, e.g. PT4M13S
}

// ChannelStats statistics of a channel
type ChannelStats struct {
	SubscriberCount int64
}

package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/ykkmr/youtube-search-backend/internal/youtube"
)

// fakeUpstream serves canned pages keyed by page token and records every call
type fakeUpstream struct {
	mu sync.Mutex

	pages    map[string]*youtube.SearchPage
	videos   map[string]youtube.VideoStats
	channels map[string]youtube.ChannelStats

	searchErr   error
	videosErr   error
	channelsErr error

	searchCalls  []youtube.SearchParams
	videoCalls   [][]string
	channelCalls [][]string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		pages:    make(map[string]*youtube.SearchPage),
		videos:   make(map[string]youtube.VideoStats),
		channels: make(map[string]youtube.ChannelStats),
	}
}

func (f *fakeUpstream) Search(_ context.Context, p youtube.SearchParams) (*youtube.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchCalls = append(f.searchCalls, p)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if page, ok := f.pages[p.PageToken]; ok {
		return page, nil
	}
	return &youtube.SearchPage{}, nil
}

func (f *fakeUpstream) Videos(_ context.Context, ids []string) (map[string]youtube.VideoStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.videoCalls = append(f.videoCalls, append([]string(nil), ids...))
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	out := make(map[string]youtube.VideoStats, len(ids))
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (f *fakeUpstream) Channels(_ context.Context, ids []string) (map[string]youtube.ChannelStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.channelCalls = append(f.channelCalls, append([]string(nil), ids...))
	if f.channelsErr != nil {
		return nil, f.channelsErr
	}
	out := make(map[string]youtube.ChannelStats, len(ids))
	for _, id := range ids {
		if c, ok := f.channels[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

// chain registers n pages linked by next-page tokens, starting at token "",
// each built by fill. The last page has no next token.
func (f *fakeUpstream) chain(n int, fill func(i int) []youtube.SearchHit) {
	for i := 0; i < n; i++ {
		token := ""
		if i > 0 {
			token = fmt.Sprintf("p%d", i+1)
		}
		next := ""
		if i < n-1 {
			next = fmt.Sprintf("p%d", i+2)
		}
		f.pages[token] = &youtube.SearchPage{
			Hits:          fill(i),
			TotalResults:  int64(1000 + i),
			NextPageToken: next,
			PrevPageToken: "prev-" + token,
		}
	}
}

func hit(videoID, channelID, title string) youtube.SearchHit {
	return youtube.SearchHit{
		VideoID:      videoID,
		ChannelID:    channelID,
		Title:        title,
		ChannelTitle: "Channel " + channelID,
		PublishedAt:  "2024-01-01T00:00:00Z",
	}
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yt-insights/channel-explorer/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const testAPIKey = "test-key"

// fakeYouTube serves the subset of the Data API the client uses
type fakeYouTube struct {
	server *httptest.Server

	mu    sync.Mutex
	calls map[string]int
	total int

	handles      map[string]string
	channels     map[string]*youtube.Channel
	uploads      map[string][]*youtube.SearchResult
	stats        map[string]*youtube.VideoStatistics
	comments     map[string][]*youtube.CommentThread
	failComments map[string]bool
	fail         map[string]int
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	t.Helper()
	f := &fakeYouTube{
		calls:        map[string]int{},
		handles:      map[string]string{},
		channels:     map[string]*youtube.Channel{},
		uploads:      map[string][]*youtube.SearchResult{},
		stats:        map[string]*youtube.VideoStatistics{},
		comments:     map[string][]*youtube.CommentThread{},
		failComments: map[string]bool{},
		fail:         map[string]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeYouTube) client(t *testing.T, creds config.CredentialProvider) *YouTubeClient {
	t.Helper()
	c, err := NewYouTubeClient(context.Background(), creds, option.WithEndpoint(f.server.URL+"/"))
	require.NoError(t, err)
	return c
}

func (f *fakeYouTube) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeYouTube) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *fakeYouTube) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/youtube/v3/")
	q := r.URL.Query()

	f.mu.Lock()
	f.calls[path]++
	f.total++
	status := f.fail[path]
	f.mu.Unlock()

	if q.Get("key") != testAPIKey {
		writeAPIError(w, http.StatusBadRequest, "API key not valid. Please pass a valid API key.")
		return
	}
	if status != 0 {
		writeAPIError(w, status, fmt.Sprintf("%s backend error", path))
		return
	}

	switch path {
	case "search":
		f.serveSearch(w, q)
	case "channels":
		var items []*youtube.Channel
		if ch, ok := f.channels[q.Get("id")]; ok {
			items = append(items, ch)
		}
		writeJSON(w, &youtube.ChannelListResponse{Items: items})
	case "videos":
		var items []*youtube.Video
		for _, id := range strings.Split(q.Get("id"), ",") {
			if s, ok := f.stats[id]; ok {
				items = append(items, &youtube.Video{Id: id, Statistics: s})
			}
		}
		writeJSON(w, &youtube.VideoListResponse{Items: items})
	case "commentThreads":
		videoID := q.Get("videoId")
		if q.Get("maxResults") != "5" {
			writeAPIError(w, http.StatusBadRequest, "unexpected maxResults")
			return
		}
		if f.failComments[videoID] {
			writeAPIError(w, http.StatusForbidden, "The video identified by the videoId parameter has disabled comments.")
			return
		}
		writeJSON(w, &youtube.CommentThreadListResponse{Items: f.comments[videoID]})
	default:
		http.NotFound(w, nil)
	}
}

func (f *fakeYouTube) serveSearch(w http.ResponseWriter, q map[string][]string) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	switch get("type") {
	case "channel":
		var items []*youtube.SearchResult
		if id, ok := f.handles[get("q")]; ok && get("maxResults") == "1" {
			items = append(items, &youtube.SearchResult{Id: &youtube.ResourceId{Kind: "youtube#channel", ChannelId: id}})
		}
		writeJSON(w, &youtube.SearchListResponse{Items: items})
	case "video":
		if get("order") != "date" || get("maxResults") != "10" {
			writeAPIError(w, http.StatusBadRequest, "unexpected search parameters")
			return
		}
		writeJSON(w, &youtube.SearchListResponse{Items: f.uploads[get("channelId")]})
	default:
		writeAPIError(w, http.StatusBadRequest, "unsupported search type")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

const mrBeastID = "UCX6OQ3DkcsbYNE6H8uQQuVA"

// seedChannel registers a channel with n recent videos, each with stats and
// two comments.
func (f *fakeYouTube) seedChannel(channelID, handle string, n int) []string {
	f.handles[handle] = channelID
	f.channels[channelID] = &youtube.Channel{
		Id: channelID,
		Snippet: &youtube.ChannelSnippet{
			Title:       "MrBeast",
			Description: "SUBSCRIBE FOR A COOKIE!",
			PublishedAt: "2012-02-20T00:43:50Z",
			Thumbnails: &youtube.ThumbnailDetails{
				Default: &youtube.Thumbnail{Url: "https://yt3.example/default.jpg"},
				Medium:  &youtube.Thumbnail{Url: "https://yt3.example/medium.jpg"},
			},
		},
		Statistics: &youtube.ChannelStatistics{SubscriberCount: 300000000, VideoCount: 800, ViewCount: 60000000000},
		ContentDetails: &youtube.ChannelContentDetails{
			RelatedPlaylists: &youtube.ChannelContentDetailsRelatedPlaylists{Uploads: "UU" + channelID[2:]},
		},
	}

	ids := make([]string, n)
	var results []*youtube.SearchResult
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("vid%02d", i)
		ids[i] = id
		results = append(results, &youtube.SearchResult{
			Id: &youtube.ResourceId{Kind: "youtube#video", VideoId: id},
			Snippet: &youtube.SearchResultSnippet{
				Title:       "Video " + id,
				Description: "About " + id,
				PublishedAt: fmt.Sprintf("2024-06-%02dT12:00:00Z", 28-i),
				Thumbnails:  &youtube.ThumbnailDetails{Medium: &youtube.Thumbnail{Url: "https://i.ytimg.example/" + id + ".jpg"}},
			},
		})
		f.stats[id] = &youtube.VideoStatistics{LikeCount: uint64(1000 + i), CommentCount: uint64(100 + i)}
		f.comments[id] = []*youtube.CommentThread{comment(id, 1), comment(id, 2)}
	}
	f.uploads[channelID] = results
	return ids
}

func comment(videoID string, n int) *youtube.CommentThread {
	return &youtube.CommentThread{
		Id: fmt.Sprintf("%s-c%d", videoID, n),
		Snippet: &youtube.CommentThreadSnippet{
			VideoId: videoID,
			TopLevelComment: &youtube.Comment{
				Snippet: &youtube.CommentSnippet{
					AuthorDisplayName:     fmt.Sprintf("viewer%d", n),
					AuthorProfileImageUrl: fmt.Sprintf("https://yt3.example/viewer%d.jpg", n),
					TextDisplay:           fmt.Sprintf("comment %d on %s", n, videoID),
					PublishedAt:           "2024-06-29T08:00:00Z",
				},
			},
		},
	}
}

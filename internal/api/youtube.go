package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yt-insights/channel-explorer/internal/config"
	"github.com/yt-insights/channel-explorer/internal/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	recentVideosLimit = 10
)

// YouTubeClient issues the Data API calls behind the resolver and the
// aggregator. The API key is read from the credential provider on every
// call and sent as the key query parameter.
type YouTubeClient struct {
	service *youtube.Service
	creds   config.CredentialProvider
}

// NewYouTubeClient creates a new YouTube client. opts are passed to
// youtube.NewService after a plain HTTP client, so callers can override the
// endpoint or the transport.
func NewYouTubeClient(ctx context.Context, creds config.CredentialProvider, opts ...option.ClientOption) (*YouTubeClient, error) {
	if creds == nil {
		creds = config.EnvCredentials(config.EnvAPIKey)
	}
	opts = append([]option.ClientOption{option.WithHTTPClient(&http.Client{})}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTubeClient{service: service, creds: creds}, nil
}

func (c *YouTubeClient) apiKey() (googleapi.CallOption, error) {
	key, ok := c.creds.APIKey()
	if !ok {
		return nil, &ConfigError{Err: config.ErrMissingAPIKey}
	}
	return googleapi.QueryParameter("key", key), nil
}

// searchChannel returns the channel id of the top channel search hit for q
func (c *YouTubeClient) searchChannel(ctx context.Context, key googleapi.CallOption, q string) (string, error) {
	response, err := c.service.Search.List([]string{"snippet"}).
		Q(q).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do(key)
	if err != nil {
		return "", upstreamError("search.channel", err)
	}
	if len(response.Items) == 0 || response.Items[0].Id == nil || response.Items[0].Id.ChannelId == "" {
		return "", &NotFoundError{Resource: "channel", Query: q}
	}
	return response.Items[0].Id.ChannelId, nil
}

// channelProfile fetches snippet, statistics and contentDetails of a channel
func (c *YouTubeClient) channelProfile(ctx context.Context, key googleapi.CallOption, channelID string) (*models.ChannelProfile, error) {
	response, err := c.service.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do(key)
	if err != nil {
		return nil, upstreamError("channels", err)
	}
	if len(response.Items) == 0 {
		return nil, &NotFoundError{Resource: "channel", Query: channelID}
	}

	item := response.Items[0]
	profile := &models.ChannelProfile{ID: item.Id}
	if item.Snippet != nil {
		profile.Title = item.Snippet.Title
		profile.Description = item.Snippet.Description
		profile.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
		if created := parseTime(item.Snippet.PublishedAt); !created.IsZero() {
			profile.CreatedYear = created.Year()
		}
	}
	if item.Statistics != nil {
		profile.SubscriberCount = int64(item.Statistics.SubscriberCount)
		profile.VideoCount = int64(item.Statistics.VideoCount)
		profile.ViewCount = int64(item.Statistics.ViewCount)
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		profile.UploadsPlaylist = item.ContentDetails.RelatedPlaylists.Uploads
	}
	return profile, nil
}

// recentVideos lists the latest videos of a channel, newest first, in the
// order the API returns them.
func (c *YouTubeClient) recentVideos(ctx context.Context, key googleapi.CallOption, channelID string) ([]models.VideoSummary, error) {
	response, err := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(recentVideosLimit).
		Context(ctx).
		Do(key)
	if err != nil {
		return nil, upstreamError("search.video", err)
	}

	videos := make([]models.VideoSummary, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			log.Warn().Str("channel_id", channelID).Msg("Skipping search result without video id")
			continue
		}
		video := models.VideoSummary{ID: item.Id.VideoId}
		if item.Snippet != nil {
			video.Title = item.Snippet.Title
			video.Description = item.Snippet.Description
			video.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
			video.PublishedAt = parseTime(item.Snippet.PublishedAt)
		}
		videos = append(videos, video)
	}
	return videos, nil
}

// videoStatistics fetches like and comment counts for all ids in one call
func (c *YouTubeClient) videoStatistics(ctx context.Context, key googleapi.CallOption, videoIDs []string) (map[string]models.VideoEngagement, error) {
	response, err := c.service.Videos.List([]string{"statistics"}).
		Id(strings.Join(videoIDs, ",")).
		Context(ctx).
		Do(key)
	if err != nil {
		return nil, upstreamError("videos", err)
	}

	stats := make(map[string]models.VideoEngagement, len(response.Items))
	for _, item := range response.Items {
		if item.Statistics == nil {
			continue
		}
		likes := int64(item.Statistics.LikeCount)
		comments := int64(item.Statistics.CommentCount)
		stats[item.Id] = models.VideoEngagement{LikeCount: &likes, CommentCount: &comments}
	}
	return stats, nil
}

// commentSample fetches up to MaxCommentsPerVideo top-level comments
func (c *YouTubeClient) commentSample(ctx context.Context, key googleapi.CallOption, videoID string) ([]models.Comment, error) {
	response, err := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(models.MaxCommentsPerVideo).
		Context(ctx).
		Do(key)
	if err != nil {
		return nil, upstreamError("commentThreads", err)
	}

	comments := make([]models.Comment, 0, len(response.Items))
	for _, thread := range response.Items {
		if len(comments) == models.MaxCommentsPerVideo {
			break
		}
		if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil || thread.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		s := thread.Snippet.TopLevelComment.Snippet
		comments = append(comments, models.Comment{
			AuthorName:   s.AuthorDisplayName,
			AuthorAvatar: s.AuthorProfileImageUrl,
			Text:         s.TextDisplay,
			PublishedAt:  parseTime(s.PublishedAt),
		})
	}
	return comments, nil
}

// thumbnailURL prefers the medium size the dashboard displays
func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.Medium, t.High, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Warn().Err(err).Str("date", value).Msg("Failed to parse published date")
		return time.Time{}
	}
	return parsed
}

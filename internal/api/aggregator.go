package api

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/yt-insights/channel-explorer/internal/models"
	"golang.org/x/sync/errgroup"
)

// Aggregate fetches the profile, the recent videos, their statistics and a
// comment sample per video, and joins them into one view in the order of
// the recent-videos search. A failed comment fetch only empties that
// video's sample; every other failure aborts the aggregation.
func (c *YouTubeClient) Aggregate(ctx context.Context, channelID string) (*models.AggregateView, error) {
	key, err := c.apiKey()
	if err != nil {
		return nil, err
	}

	logger := log.With().Str("channel_id", channelID).Logger()
	logger.Info().Msg("Aggregating channel")

	profile, err := c.channelProfile(ctx, key, channelID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch channel profile")
		return nil, err
	}

	videos, err := c.recentVideos(ctx, key, channelID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch recent videos")
		return nil, err
	}

	videoIDs := make([]string, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.ID
	}

	stats := map[string]models.VideoEngagement{}
	comments := make([][]models.Comment, len(videoIDs))

	if len(videoIDs) > 0 {
		var eg errgroup.Group

		eg.Go(func() error {
			result, err := c.videoStatistics(ctx, key, videoIDs)
			if err != nil {
				return err
			}
			stats = result
			return nil
		})

		for i, videoID := range videoIDs {
			i, videoID := i, videoID
			eg.Go(func() error {
				sample, err := c.commentSample(ctx, key, videoID)
				if err != nil {
					logger.Warn().Err(err).Str("video_id", videoID).Msg("Comments disabled or unavailable for video")
					sample = []models.Comment{}
				}
				comments[i] = sample
				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			logger.Error().Err(err).Msg("Failed to fetch video statistics")
			return nil, err
		}
	}

	entries := make([]models.VideoEntry, len(videos))
	for i, v := range videos {
		entries[i] = models.VideoEntry{
			Video:      v,
			Engagement: stats[v.ID],
			Comments:   comments[i],
		}
	}

	logger.Info().Int("videos", len(entries)).Msg("Channel aggregated")

	return &models.AggregateView{
		Channel: *profile,
		Videos:  entries,
		Summary: models.Summarize(entries),
	}, nil
}

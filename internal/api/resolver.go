package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// HandlePrefix marks a channel handle such as "@MrBeast"
const HandlePrefix = "@"

// IsHandle reports whether input is in handle form
func IsHandle(input string) bool {
	return strings.HasPrefix(input, HandlePrefix)
}

// Resolve turns a handle into a canonical channel id with a single channel
// search. Any other input is returned unchanged without a network call.
func (c *YouTubeClient) Resolve(ctx context.Context, input string) (string, error) {
	key, err := c.apiKey()
	if err != nil {
		return "", err
	}
	if !IsHandle(input) {
		return input, nil
	}

	channelID, err := c.searchChannel(ctx, key, input)
	if err != nil {
		log.Error().Err(err).Str("input", input).Msg("Failed to resolve channel handle")
		return "", err
	}
	log.Info().Str("input", input).Str("channel_id", channelID).Msg("Resolved channel handle")
	return channelID, nil
}

// ExtractChannelFromURL returns resolver input for a YouTube channel URL:
// the channel id for /channel/<id> URLs and the handle for /@handle URLs.
// Custom (/c/<name>) and legacy username (/user/<name>) URLs become the
// handle "@<name>", which Resolve looks up with a channel search.
func ExtractChannelFromURL(channelURL string) (string, error) {
	raw := strings.TrimSpace(channelURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(parsedURL.Hostname())
	switch {
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		segments := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")
		switch {
		case len(segments) >= 2 && segments[0] == "channel" && segments[1] != "":
			return segments[1], nil
		case len(segments) >= 2 && (segments[0] == "c" || segments[0] == "user") && segments[1] != "":
			return HandlePrefix + strings.TrimPrefix(segments[1], HandlePrefix), nil
		case len(segments) >= 1 && IsHandle(segments[0]) && len(segments[0]) > len(HandlePrefix):
			return segments[0], nil
		}
	case host == "youtu.be":
		return "", fmt.Errorf("youtu.be URLs are video URLs, not channel URLs")
	}

	return "", fmt.Errorf("unsupported YouTube URL format")
}

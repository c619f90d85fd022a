package models

// ChannelProfile is the channel header of the dashboard
type ChannelProfile struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Thumbnail       string `json:"thumbnailUrl"`
	SubscriberCount int64  `json:"subscriberCount"`
	VideoCount      int64  `json:"videoCount"`
	ViewCount       int64  `json:"viewCount"`
	CreatedYear     int    `json:"createdYear,omitempty"`
	UploadsPlaylist string `json:"uploadsPlaylistId,omitempty"`
}

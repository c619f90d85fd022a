package models

import "time"

// MaxCommentsPerVideo bounds every CommentSample
const MaxCommentsPerVideo = 5

// VideoSummary represents one item of the recent-videos search
type VideoSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnailUrl"`
	PublishedAt time.Time `json:"publishedAt"`
}

// VideoEngagement holds the statistics of a video. Counts are nil when the
// statistics fetch returned no entry for the video. A returned entry always
// sets both counts; a count the API leaves out (hidden likes, disabled
// comments) is reported as 0.
type VideoEngagement struct {
	LikeCount    *int64 `json:"likeCount,omitempty"`
	CommentCount *int64 `json:"commentCount,omitempty"`
}

// Comment is the top-level comment of a comment thread
type Comment struct {
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatarUrl"`
	Text         string    `json:"text"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// VideoEntry joins a video with its engagement and comment sample
type VideoEntry struct {
	Video      VideoSummary    `json:"video"`
	Engagement VideoEngagement `json:"engagement"`
	Comments   []Comment       `json:"comments"`
}

package models

// AggregateView is everything the dashboard renders for one channel
type AggregateView struct {
	Channel ChannelProfile `json:"channel"`
	Videos  []VideoEntry   `json:"videos"`
	Summary Summary        `json:"summary"`
}

// Summary represents engagement totals over the fetched videos
type Summary struct {
	Videos             int     `json:"videos"`
	VideosWithStats    int     `json:"videosWithStats"`
	TotalLikes         int64   `json:"totalLikes"`
	TotalComments      int64   `json:"totalComments"`
	AverageLikes       float64 `json:"averageLikes"`
	CommentsSampled    int     `json:"commentsSampled"`
	VideosWithComments int     `json:"videosWithComments"`
}

// Summarize computes the summary from the entries. Averages only count
// videos that have statistics.
func Summarize(entries []VideoEntry) Summary {
	s := Summary{Videos: len(entries)}
	for _, e := range entries {
		if e.Engagement.LikeCount != nil || e.Engagement.CommentCount != nil {
			s.VideosWithStats++
		}
		if e.Engagement.LikeCount != nil {
			s.TotalLikes += *e.Engagement.LikeCount
		}
		if e.Engagement.CommentCount != nil {
			s.TotalComments += *e.Engagement.CommentCount
		}
		if len(e.Comments) > 0 {
			s.VideosWithComments++
			s.CommentsSampled += len(e.Comments)
		}
	}
	if s.VideosWithStats > 0 {
		s.AverageLikes = float64(s.TotalLikes) / float64(s.VideosWithStats)
	}
	return s
}

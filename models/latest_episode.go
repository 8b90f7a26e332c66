package models

// LatestEpisodeRecord is a feed-shaped row from the active backend.
type LatestEpisodeRecord struct {
	SeriesSlug   string `json:"series_slug"`
	SeriesTitle  string `json:"series_title"`
	Season       int    `json:"season"`
	Episode      int    `json:"episode"`
	EpisodeTitle string `json:"episode_title"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	AddedAt      string `json:"added_at,omitempty"`
}

// LatestEpisodeEntry is one item of the latest-episodes feed.
type LatestEpisodeEntry struct {
	SeriesSlug string `json:"seriesSlug"`
	Series     string `json:"series"`
	Season     int    `json:"season"`
	Episode    int    `json:"episode"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	AddedAt    string `json:"addedAt"`
}

// Package models defines the data structures used throughout the application.
package models

// Backend identifies which source backend produced a set of records.
type Backend string

// Backend constants
const (
	BackendRelational Backend = "relational"
	BackendStatic     Backend = "static"
)

// SeriesRecord is a series as returned by the active source backend.
// The relational backend fills Description; the static document fills
// ID, Synopsis and TotalEpisodes instead.
type SeriesRecord struct {
	ID            string   `json:"id,omitempty"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Poster        string   `json:"poster,omitempty"`
	BannerImage   string   `json:"banner_image,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Description   string   `json:"description,omitempty"`
	Synopsis      string   `json:"synopsis,omitempty"`
	Status        string   `json:"status,omitempty"`
	Year          *int     `json:"year,omitempty"`
	ReleaseYear   *int     `json:"release_year,omitempty"`
	TotalEpisodes *int     `json:"totalEpisodes,omitempty"`
}

// EpisodeRecord is a single episode belonging to one series.
// (SeriesSlug, Season, Episode) is unique.
type EpisodeRecord struct {
	SeriesSlug      string      `json:"series_slug"`
	Season          int         `json:"season"`
	Episode         int         `json:"episode"`
	Title           string      `json:"title"`
	Duration        string      `json:"duration,omitempty"`
	Description     string      `json:"description,omitempty"`
	ReleaseDate     string      `json:"releaseDate,omitempty"`
	Thumbnail       string      `json:"thumbnail,omitempty"`
	MainPoster      string      `json:"episode_main_poster,omitempty"`
	CardThumbnail   string      `json:"episode_card_thumbnail,omitempty"`
	ListThumbnail   string      `json:"episode_list_thumbnail,omitempty"`
	PlayerThumbnail string      `json:"video_player_thumbnail,omitempty"`
	Servers         []ServerRef `json:"servers,omitempty"`
}

// IntPtr returns a pointer to i. Handy for the optional year fields.
func IntPtr(i int) *int {
	return &i
}

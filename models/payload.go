package models

// EntryType is the canonical kind of a library entry.
type EntryType string

// Entry type constants
const (
	EntryTypeSeries EntryType = "series"
	EntryTypeMovie  EntryType = "movie"
)

// LibraryEntry is the backend-agnostic catalog item.
type LibraryEntry struct {
	Type          EntryType `json:"type"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Poster        string    `json:"poster"`
	Genres        []string  `json:"genres"`
	Synopsis      string    `json:"synopsis"`
	Status        string    `json:"status"`
	ReleaseYear   *int      `json:"release_year"`
	TotalEpisodes *int      `json:"totalEpisodes"`
}

// SeriesDetail is the payload of the series detail view.
// Seasons maps a season key to its episode numbers, Episodes maps the
// same key to the full episode summaries, both in (season, episode) order.
type SeriesDetail struct {
	Type          EntryType                   `json:"type"`
	Slug          string                      `json:"slug"`
	Title         string                      `json:"title"`
	Description   string                      `json:"description"`
	Poster        string                      `json:"poster"`
	BannerImage   string                      `json:"banner_image,omitempty"`
	Genres        []string                    `json:"genres"`
	Status        string                      `json:"status"`
	ReleaseYear   *int                        `json:"release_year"`
	TotalEpisodes int                         `json:"totalEpisodes"`
	Seasons       map[string][]string         `json:"seasons"`
	Episodes      map[string][]EpisodeSummary `json:"episodes"`
}

// EpisodeSummary is one episode inside a SeriesDetail.
type EpisodeSummary struct {
	ID              string `json:"id"`
	Number          int    `json:"number"`
	Title           string `json:"title"`
	Duration        string `json:"duration"`
	Thumbnail       string `json:"thumbnail"`
	MainPoster      string `json:"episode_main_poster,omitempty"`
	CardThumbnail   string `json:"episode_card_thumbnail,omitempty"`
	ListThumbnail   string `json:"episode_list_thumbnail,omitempty"`
	PlayerThumbnail string `json:"video_player_thumbnail,omitempty"`
	Description     string `json:"description"`
}

// EpisodePayload is the response for a single resolved episode.
type EpisodePayload struct {
	Series          string      `json:"series"`
	Season          int         `json:"season"`
	Episode         int         `json:"episode"`
	EpisodeTitle    string      `json:"episode_title"`
	Title           string      `json:"title"`
	Thumbnail       string      `json:"thumbnail"`
	MainPoster      string      `json:"episode_main_poster,omitempty"`
	CardThumbnail   string      `json:"episode_card_thumbnail,omitempty"`
	ListThumbnail   string      `json:"episode_list_thumbnail,omitempty"`
	PlayerThumbnail string      `json:"video_player_thumbnail,omitempty"`
	Servers         []ServerRef `json:"servers"`
	Description     string      `json:"description"`
	Duration        string      `json:"duration"`
	ReleaseDate     string      `json:"releaseDate"`
}

// MovieDetail is the payload of the movie detail view.
type MovieDetail struct {
	Type        EntryType   `json:"type"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Poster      string      `json:"poster"`
	BannerImage string      `json:"banner_image,omitempty"`
	MoviePoster string      `json:"movie_poster"`
	Thumbnail   string      `json:"thumbnail"`
	Genres      []string    `json:"genres"`
	Languages   []string    `json:"languages"`
	Status      string      `json:"status"`
	ReleaseYear *int        `json:"release_year"`
	Runtime     string      `json:"runtime"`
	Servers     []ServerRef `json:"servers"`
}

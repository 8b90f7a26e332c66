package models

// StaticDocument is the bundled fallback dataset. Series and movies share
// one list; the catalog classifies them by ID.
type StaticDocument struct {
	Series []StaticEntry `json:"series"`
}

// StaticEntry is one record of the static document.
type StaticEntry struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Poster        string          `json:"poster"`
	BannerImage   string          `json:"banner_image,omitempty"`
	Genres        []string        `json:"genres"`
	Synopsis      string          `json:"synopsis"`
	Status        string          `json:"status"`
	Year          *int            `json:"year"`
	TotalEpisodes *int            `json:"totalEpisodes"`
	Runtime       string          `json:"runtime,omitempty"`
	Languages     []string        `json:"languages,omitempty"`
	Servers       []ServerRef     `json:"servers,omitempty"`
	Episodes      []StaticEpisode `json:"episodes"`
}

// StaticEpisode is an episode of a static entry. The document has no
// season dimension.
type StaticEpisode struct {
	Number      int         `json:"number"`
	Title       string      `json:"title"`
	Duration    string      `json:"duration,omitempty"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Description string      `json:"description,omitempty"`
	ReleaseDate string      `json:"releaseDate,omitempty"`
	Servers     []ServerRef `json:"servers,omitempty"`
}

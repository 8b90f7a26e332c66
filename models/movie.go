package models

// MovieRecord is a movie as returned by the active source backend.
type MovieRecord struct {
	SeriesRecord
	Runtime   string      `json:"runtime,omitempty"`
	Languages []string    `json:"languages,omitempty"`
	Servers   []ServerRef `json:"servers,omitempty"`
}

package source

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"aniverse/logger"
	"aniverse/metrics"
	"aniverse/models"

	"github.com/goccy/go-json"
)

// latestPerEntry is how many episodes of each record feed the static
// latest-episodes list. The document has no timestamps to order by.
const latestPerEntry = 3

//go:embed data/sample-series.json
var bundledDocument []byte

// StaticSource serves the catalog from an in-memory document. The
// document is read-only after construction.
type StaticSource struct {
	doc    models.StaticDocument
	bySlug map[string]int
}

// NewStaticSource serves doc.
func NewStaticSource(doc models.StaticDocument) *StaticSource {
	bySlug := make(map[string]int, len(doc.Series))
	for i, e := range doc.Series {
		if _, dup := bySlug[e.Slug]; !dup {
			bySlug[e.Slug] = i
		}
	}
	metrics.StaticDocumentEntries.Set(float64(len(doc.Series)))
	return &StaticSource{doc: doc, bySlug: bySlug}
}

// OpenStaticSource loads the document at path, or the bundled one when
// path is empty. A document that cannot be read or decoded is logged and
// replaced by an empty one.
func OpenStaticSource(path string) *StaticSource {
	l := logger.New("source")

	doc, err := LoadDocument(path)
	if err != nil {
		l.Error().Err(err).Str("path", path).Msg("Static document unusable, serving an empty catalog")
		return NewStaticSource(models.StaticDocument{})
	}

	l.Info().Int("entries", len(doc.Series)).Msg("Static document loaded")
	return NewStaticSource(doc)
}

// LoadDocument reads and decodes a static document. An empty path
// selects the bundled document.
func LoadDocument(path string) (models.StaticDocument, error) {
	data := bundledDocument
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return models.StaticDocument{}, fmt.Errorf("failed to read static document: %w", err)
		}
	}
	return DecodeDocument(data)
}

// DecodeDocument decodes a static document.
func DecodeDocument(data []byte) (models.StaticDocument, error) {
	var doc models.StaticDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.StaticDocument{}, fmt.Errorf("failed to decode static document: %w", err)
	}
	return doc, nil
}

// Document returns the served document.
func (s *StaticSource) Document() models.StaticDocument {
	return s.doc
}

// Backend implements Provider.
func (s *StaticSource) Backend() models.Backend {
	return models.BackendStatic
}

// ListSeries implements Provider. Series and movies share one list in the
// document, so every record is returned.
func (s *StaticSource) ListSeries(ctx context.Context) ([]models.SeriesRecord, error) {
	out := make([]models.SeriesRecord, 0, len(s.doc.Series))
	for i := range s.doc.Series {
		out = append(out, seriesRecord(&s.doc.Series[i]))
	}
	return out, nil
}

// ListMovies implements Provider. The document has no separate movie list.
func (s *StaticSource) ListMovies(ctx context.Context) ([]models.MovieRecord, error) {
	return []models.MovieRecord{}, nil
}

// ListEpisodes implements Provider. Episodes keep document order and carry
// no season.
func (s *StaticSource) ListEpisodes(ctx context.Context, seriesSlug string) ([]models.EpisodeRecord, error) {
	entry := s.lookup(seriesSlug)
	if entry == nil {
		return []models.EpisodeRecord{}, nil
	}

	out := make([]models.EpisodeRecord, 0, len(entry.Episodes))
	for _, ep := range entry.Episodes {
		out = append(out, episodeRecord(entry.Slug, ep))
	}
	return out, nil
}

// ListLatestEpisodes implements Provider. It takes the first few episodes
// of each record in document order.
func (s *StaticSource) ListLatestEpisodes(ctx context.Context, limit int) ([]models.LatestEpisodeRecord, error) {
	out := []models.LatestEpisodeRecord{}
	for _, entry := range s.doc.Series {
		eps := entry.Episodes
		if len(eps) > latestPerEntry {
			eps = eps[:latestPerEntry]
		}
		for _, ep := range eps {
			out = append(out, models.LatestEpisodeRecord{
				SeriesSlug:   entry.Slug,
				SeriesTitle:  entry.Title,
				Season:       1,
				Episode:      ep.Number,
				EpisodeTitle: ep.Title,
				Thumbnail:    ep.Thumbnail,
				AddedAt:      ep.ReleaseDate,
			})
		}
	}

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindSeries implements Provider.
func (s *StaticSource) FindSeries(ctx context.Context, slug string) (*models.SeriesRecord, error) {
	entry := s.lookup(slug)
	if entry == nil {
		return nil, fmt.Errorf("series %q: %w", slug, ErrNotFound)
	}
	rec := seriesRecord(entry)
	return &rec, nil
}

// FindMovie implements Provider. Any record of the document matches.
func (s *StaticSource) FindMovie(ctx context.Context, slug string) (*models.MovieRecord, error) {
	entry := s.lookup(slug)
	if entry == nil {
		return nil, fmt.Errorf("movie %q: %w", slug, ErrNotFound)
	}
	return &models.MovieRecord{
		SeriesRecord: seriesRecord(entry),
		Runtime:      entry.Runtime,
		Languages:    entry.Languages,
		Servers:      entry.Servers,
	}, nil
}

// FindEpisode implements Provider. The document only knows season 1.
func (s *StaticSource) FindEpisode(ctx context.Context, seriesSlug string, season, episode int) (*models.EpisodeRecord, error) {
	entry := s.lookup(seriesSlug)
	if entry == nil || season != 1 {
		return nil, fmt.Errorf("episode %s %d-%d: %w", seriesSlug, season, episode, ErrNotFound)
	}

	for _, ep := range entry.Episodes {
		if ep.Number == episode {
			rec := episodeRecord(entry.Slug, ep)
			rec.Season = 1
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("episode %s %d-%d: %w", seriesSlug, season, episode, ErrNotFound)
}

func (s *StaticSource) lookup(slug string) *models.StaticEntry {
	i, ok := s.bySlug[slug]
	if !ok {
		return nil
	}
	return &s.doc.Series[i]
}

func seriesRecord(e *models.StaticEntry) models.SeriesRecord {
	return models.SeriesRecord{
		ID:            e.ID,
		Slug:          e.Slug,
		Title:         e.Title,
		Poster:        e.Poster,
		BannerImage:   e.BannerImage,
		Genres:        e.Genres,
		Synopsis:      e.Synopsis,
		Status:        e.Status,
		Year:          e.Year,
		TotalEpisodes: e.TotalEpisodes,
	}
}

func episodeRecord(slug string, ep models.StaticEpisode) models.EpisodeRecord {
	return models.EpisodeRecord{
		SeriesSlug:  slug,
		Episode:     ep.Number,
		Title:       ep.Title,
		Duration:    ep.Duration,
		Description: ep.Description,
		ReleaseDate: ep.ReleaseDate,
		Thumbnail:   ep.Thumbnail,
		Servers:     ep.Servers,
	}
}

package catalog

import (
	"aniverse/models"
)

// Library statuses for records that carry none.
const (
	StatusAvailable = "Available"
	StatusMovie     = "Movie"
)

// Classifier decides whether a static document record is a series or a
// movie. The static document stores both in one list, so the split is a
// closed allow-list of series IDs rather than anything inferred.
type Classifier struct {
	series map[string]struct{}
}

// NewClassifier builds a classifier from the IDs of known series.
func NewClassifier(seriesIDs []string) *Classifier {
	c := &Classifier{series: make(map[string]struct{}, len(seriesIDs))}
	for _, id := range seriesIDs {
		c.series[id] = struct{}{}
	}
	return c
}

// Classify returns the entry type of a static record.
func (c *Classifier) Classify(id string) models.EntryType {
	if _, ok := c.series[id]; ok {
		return models.EntryTypeSeries
	}
	return models.EntryTypeMovie
}

// Normalizer maps backend records into library entries.
type Normalizer struct {
	classifier *Classifier
}

// NewNormalizer creates a normalizer using c for static records.
func NewNormalizer(c *Classifier) *Normalizer {
	return &Normalizer{classifier: c}
}

// BuildLibrary returns one entry per record, series first then movies, in
// the order the backend returned them.
func (n *Normalizer) BuildLibrary(backend models.Backend, series []models.SeriesRecord, movies []models.MovieRecord) []models.LibraryEntry {
	library := make([]models.LibraryEntry, 0, len(series)+len(movies))

	for _, s := range series {
		if backend == models.BackendStatic {
			library = append(library, n.staticEntry(s))
			continue
		}
		library = append(library, models.LibraryEntry{
			Type:        models.EntryTypeSeries,
			Slug:        s.Slug,
			Title:       s.Title,
			Poster:      s.Poster,
			Genres:      orEmpty(s.Genres),
			Synopsis:    s.Description,
			Status:      StatusAvailable,
			ReleaseYear: s.Year,
		})
	}

	for _, m := range movies {
		entry := models.LibraryEntry{
			Type:          models.EntryTypeMovie,
			Slug:          m.Slug,
			Title:         m.Title,
			Poster:        m.Poster,
			Genres:        orEmpty(m.Genres),
			Synopsis:      firstNonEmpty(m.Description, m.Synopsis),
			Status:        StatusMovie,
			ReleaseYear:   m.Year,
			TotalEpisodes: models.IntPtr(1),
		}
		library = append(library, entry)
	}

	return library
}

func (n *Normalizer) staticEntry(s models.SeriesRecord) models.LibraryEntry {
	return models.LibraryEntry{
		Type:          n.classifier.Classify(s.ID),
		Slug:          s.Slug,
		Title:         s.Title,
		Poster:        s.Poster,
		Genres:        orEmpty(s.Genres),
		Synopsis:      s.Synopsis,
		Status:        firstNonEmpty(s.Status, StatusAvailable),
		ReleaseYear:   s.Year,
		TotalEpisodes: s.TotalEpisodes,
	}
}

// Package catalog turns source records into the payloads served by the
// API: the library, series and movie details, single episodes and the
// latest-episodes feed.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"aniverse/models"
	"aniverse/source"

	"golang.org/x/sync/errgroup"
)

// Feed sizes per backend. The static feed is smaller because it is built
// from document order, not recency.
const (
	RelationalFeedLimit = 20
	StaticFeedLimit     = 9
)

// Service assembles catalog payloads from the active source.
type Service struct {
	source     source.Provider
	normalizer *Normalizer
}

// NewService creates a catalog service over p.
func NewService(p source.Provider, n *Normalizer) *Service {
	return &Service{source: p, normalizer: n}
}

// Backend reports which backend the service reads from.
func (s *Service) Backend() models.Backend {
	return s.source.Backend()
}

// Library lists every series and movie. Both lists are read concurrently
// and either failure fails the whole call.
func (s *Service) Library(ctx context.Context) ([]models.LibraryEntry, error) {
	var (
		series []models.SeriesRecord
		movies []models.MovieRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = s.source.ListSeries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		movies, err = s.source.ListMovies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}

	return s.normalizer.BuildLibrary(s.source.Backend(), series, movies), nil
}

// SeriesDetail assembles a series with its episodes grouped by season.
func (s *Service) SeriesDetail(ctx context.Context, slug string) (*models.SeriesDetail, error) {
	series, err := s.source.FindSeries(ctx, slug)
	if err != nil {
		return nil, lookupError("series", slug, err)
	}

	episodes, err := s.source.ListEpisodes(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load episodes of %q: %w", slug, err)
	}

	backend := s.source.Backend()
	seasons, grouped := GroupBySeason(backend, episodes)

	detail := &models.SeriesDetail{
		Type:          models.EntryTypeSeries,
		Slug:          series.Slug,
		Title:         series.Title,
		Description:   firstNonEmpty(series.Description, series.Synopsis),
		Poster:        series.Poster,
		BannerImage:   series.BannerImage,
		Genres:        orEmpty(series.Genres),
		Status:        firstNonEmpty(series.Status, StatusAvailable),
		ReleaseYear:   firstYear(series.Year, series.ReleaseYear),
		TotalEpisodes: len(episodes),
		Seasons:       seasons,
		Episodes:      grouped,
	}

	// The static document declares its own total; zero means undeclared.
	if backend == models.BackendStatic && series.TotalEpisodes != nil && *series.TotalEpisodes > 0 {
		detail.TotalEpisodes = *series.TotalEpisodes
	}

	return detail, nil
}

// MovieDetail assembles a single movie.
func (s *Service) MovieDetail(ctx context.Context, slug string) (*models.MovieDetail, error) {
	movie, err := s.source.FindMovie(ctx, slug)
	if err != nil {
		return nil, lookupError("movie", slug, err)
	}

	return &models.MovieDetail{
		Type:        models.EntryTypeMovie,
		Slug:        movie.Slug,
		Title:       movie.Title,
		Description: firstNonEmpty(movie.Description, movie.Synopsis),
		Poster:      movie.Poster,
		BannerImage: movie.BannerImage,
		MoviePoster: movie.Poster,
		Thumbnail:   movie.Poster,
		Genres:      orEmpty(movie.Genres),
		Languages:   orEmpty(movie.Languages),
		Status:      StatusMovie,
		ReleaseYear: firstYear(movie.Year, movie.ReleaseYear),
		Runtime:     movie.Runtime,
		Servers:     orEmpty(movie.Servers),
	}, nil
}

// ResolveEpisode looks up one episode by its "season-episode" address.
// The address is validated before the source is queried.
func (s *Service) ResolveEpisode(ctx context.Context, slug, address string) (*models.EpisodePayload, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}

	ep, err := s.source.FindEpisode(ctx, slug, addr.Season, addr.Episode)
	if err != nil {
		return nil, lookupError("episode "+addr.String()+" of", slug, err)
	}

	return &models.EpisodePayload{
		Series:          slug,
		Season:          ep.Season,
		Episode:         ep.Episode,
		EpisodeTitle:    ep.Title,
		Title:           ep.Title,
		Thumbnail:       episodeThumbnail(ep.CardThumbnail, ep.ListThumbnail, ep.Thumbnail),
		MainPoster:      ep.MainPoster,
		CardThumbnail:   ep.CardThumbnail,
		ListThumbnail:   ep.ListThumbnail,
		PlayerThumbnail: ep.PlayerThumbnail,
		Servers:         orEmpty(ep.Servers),
		Description:     ep.Description,
		Duration:        ep.Duration,
		ReleaseDate:     ep.ReleaseDate,
	}, nil
}

// LatestEpisodes returns the recently added episodes feed. On the static
// backend the order is document order, not recency.
func (s *Service) LatestEpisodes(ctx context.Context) ([]models.LatestEpisodeEntry, error) {
	limit := RelationalFeedLimit
	if s.source.Backend() == models.BackendStatic {
		limit = StaticFeedLimit
	}

	records, err := s.source.ListLatestEpisodes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest episodes: %w", err)
	}
	if len(records) > limit {
		records = records[:limit]
	}

	feed := make([]models.LatestEpisodeEntry, 0, len(records))
	for _, r := range records {
		feed = append(feed, models.LatestEpisodeEntry{
			SeriesSlug: r.SeriesSlug,
			Series:     r.SeriesTitle,
			Season:     r.Season,
			Episode:    r.Episode,
			Title:      r.EpisodeTitle,
			Thumbnail:  r.Thumbnail,
			AddedAt:    r.AddedAt,
		})
	}
	return feed, nil
}

func lookupError(kind, slug string, err error) error {
	if errors.Is(err, source.ErrNotFound) {
		return fmt.Errorf("%s %q: %w", kind, slug, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %q: %w", kind, slug, err)
}

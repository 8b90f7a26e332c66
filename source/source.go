// Package source provides read access to the catalog backend: a relational
// store when one is configured, otherwise a static fallback document.
package source

import (
	"context"
	"errors"
	"fmt"

	"aniverse/config"
	"aniverse/database"
	"aniverse/logger"
	"aniverse/models"
)

var (
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable wraps backend failures.
	ErrUnavailable = errors.New("source unavailable")
)

// Provider is the capability set both backends expose. Implementations are
// immutable after construction and safe for concurrent use.
type Provider interface {
	Backend() models.Backend
	ListSeries(ctx context.Context) ([]models.SeriesRecord, error)
	ListMovies(ctx context.Context) ([]models.MovieRecord, error)
	ListEpisodes(ctx context.Context, seriesSlug string) ([]models.EpisodeRecord, error)
	ListLatestEpisodes(ctx context.Context, limit int) ([]models.LatestEpisodeRecord, error)
	FindSeries(ctx context.Context, slug string) (*models.SeriesRecord, error)
	FindMovie(ctx context.Context, slug string) (*models.MovieRecord, error)
	FindEpisode(ctx context.Context, seriesSlug string, season, episode int) (*models.EpisodeRecord, error)
}

// Select picks the backend once at startup. The relational store is used
// only when both its URL and key are configured.
func Select(ctx context.Context, cfg *config.Config) (Provider, error) {
	l := logger.New("source")

	if !cfg.Store.Configured() {
		l.Warn().Msg("Store URL or key not set, serving the static document")
		return OpenStaticSource(cfg.Static.Document), nil
	}

	db, err := database.Open(cfg.Store.URL, cfg.Store.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to open relational store: %w", err)
	}

	if db.Driver() == database.DriverSQLite {
		if err := db.InitSchema(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach relational store: %w", err)
	}

	l.Info().Str("driver", db.Driver()).Msg("Serving the relational store")
	return NewRelationalSource(db), nil
}

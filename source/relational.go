package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aniverse/database"
	"aniverse/logger"
	"aniverse/metrics"
	"aniverse/models"
	"aniverse/repository"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "relational-store"

// RelationalSource reads the catalog from the relational store. Every call
// runs through a circuit breaker and is timed into the source metrics.
type RelationalSource struct {
	db       *database.DB
	series   *repository.SeriesRepository
	movies   *repository.MovieRepository
	episodes *repository.EpisodeRepository
	latest   *repository.LatestEpisodeRepository
	cb       *gobreaker.CircuitBreaker[any]
	log      zerolog.Logger
}

// NewRelationalSource wraps an open store.
func NewRelationalSource(db *database.DB) *RelationalSource {
	l := logger.New("source")
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 5 {
				return true
			}
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Misses and abandoned requests say nothing about store health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, repository.ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &RelationalSource{
		db:       db,
		series:   repository.NewSeriesRepository(db),
		movies:   repository.NewMovieRepository(db),
		episodes: repository.NewEpisodeRepository(db),
		latest:   repository.NewLatestEpisodeRepository(db),
		cb:       cb,
		log:      l,
	}
}

// Backend implements Provider.
func (s *RelationalSource) Backend() models.Backend {
	return models.BackendRelational
}

// ListSeries implements Provider.
func (s *RelationalSource) ListSeries(ctx context.Context) ([]models.SeriesRecord, error) {
	return execute(s, "list_series", func() ([]models.SeriesRecord, error) {
		return s.series.GetAll(ctx)
	})
}

// ListMovies implements Provider.
func (s *RelationalSource) ListMovies(ctx context.Context) ([]models.MovieRecord, error) {
	return execute(s, "list_movies", func() ([]models.MovieRecord, error) {
		return s.movies.GetAll(ctx)
	})
}

// ListEpisodes implements Provider. An unknown series has no episodes.
func (s *RelationalSource) ListEpisodes(ctx context.Context, seriesSlug string) ([]models.EpisodeRecord, error) {
	return execute(s, "list_episodes", func() ([]models.EpisodeRecord, error) {
		return s.episodes.GetBySeries(ctx, seriesSlug)
	})
}

// ListLatestEpisodes implements Provider. Rows come newest first.
func (s *RelationalSource) ListLatestEpisodes(ctx context.Context, limit int) ([]models.LatestEpisodeRecord, error) {
	return execute(s, "list_latest_episodes", func() ([]models.LatestEpisodeRecord, error) {
		return s.latest.GetRecent(ctx, limit)
	})
}

// FindSeries implements Provider.
func (s *RelationalSource) FindSeries(ctx context.Context, slug string) (*models.SeriesRecord, error) {
	return execute(s, "find_series", func() (*models.SeriesRecord, error) {
		return s.series.GetBySlug(ctx, slug)
	})
}

// FindMovie implements Provider.
func (s *RelationalSource) FindMovie(ctx context.Context, slug string) (*models.MovieRecord, error) {
	return execute(s, "find_movie", func() (*models.MovieRecord, error) {
		return s.movies.GetBySlug(ctx, slug)
	})
}

// FindEpisode implements Provider.
func (s *RelationalSource) FindEpisode(ctx context.Context, seriesSlug string, season, episode int) (*models.EpisodeRecord, error) {
	return execute(s, "find_episode", func() (*models.EpisodeRecord, error) {
		return s.episodes.Get(ctx, seriesSlug, season, episode)
	})
}

// PingContext checks that the store answers. It bypasses the breaker so the
// probe keeps reporting while the circuit is open.
func (s *RelationalSource) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the store connection.
func (s *RelationalSource) Close() error {
	return s.db.Close()
}

// DB exposes the underlying store, used for seeding.
func (s *RelationalSource) DB() *database.DB {
	return s.db
}

func execute[T any](s *RelationalSource, op string, fn func() (T, error)) (T, error) {
	var zero T
	start := time.Now()

	result, err := s.cb.Execute(func() (any, error) {
		return fn()
	})
	metrics.SourceQueryDuration.WithLabelValues(string(models.BackendRelational), op).
		Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		metrics.SourceQueryErrors.WithLabelValues(string(models.BackendRelational), op).Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.log.Warn().Err(err).Str("operation", op).Msg("Store request rejected by circuit breaker")
		}
		return zero, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	typed, ok := result.(T)
	if !ok && result != nil {
		return zero, fmt.Errorf("%s: %w: unexpected result type %T", op, ErrUnavailable, result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

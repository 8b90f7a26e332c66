package source

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"aniverse/config"
	"aniverse/database"
	"aniverse/models"
	"aniverse/repository"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRelational(t *testing.T) *RelationalSource {
	db, err := database.NewDB(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())

	ctx := context.Background()
	series := repository.NewSeriesRepository(db)
	require.NoError(t, series.Create(ctx, &models.SeriesRecord{
		Slug: "food-wars", Title: "Food Wars", Genres: []string{"Comedy"}, Year: models.IntPtr(2015),
	}))

	episodes := repository.NewEpisodeRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 2; i++ {
		require.NoError(t, episodes.Create(ctx, &models.EpisodeRecord{
			SeriesSlug: "food-wars", Season: 1, Episode: i, Title: "Episode",
		}, base.Add(time.Duration(i)*time.Hour)))
	}

	movies := repository.NewMovieRepository(db)
	require.NoError(t, movies.Create(ctx, &models.MovieRecord{
		SeriesRecord: models.SeriesRecord{Slug: "suzume", Title: "Suzume"},
		Runtime:      "2h 2m",
	}))

	src := NewRelationalSource(db)
	t.Cleanup(func() {
		if err := src.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})
	return src
}

func TestRelationalSource_Reads(t *testing.T) {
	ctx := context.Background()
	src := setupRelational(t)
	assert.Equal(t, models.BackendRelational, src.Backend())

	series, err := src.ListSeries(ctx)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "Food Wars", series[0].Title)

	movies, err := src.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "2h 2m", movies[0].Runtime)

	eps, err := src.ListEpisodes(ctx, "food-wars")
	require.NoError(t, err)
	assert.Len(t, eps, 2)

	latest, err := src.ListLatestEpisodes(ctx, 20)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 2, latest[0].Episode, "newest first")

	ep, err := src.FindEpisode(ctx, "food-wars", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, ep.Episode)

	m, err := src.FindMovie(ctx, "suzume")
	require.NoError(t, err)
	assert.Equal(t, "Suzume", m.Title)

	require.NoError(t, src.PingContext(ctx))
}

func TestRelationalSource_Misses(t *testing.T) {
	ctx := context.Background()
	src := setupRelational(t)

	// Misses never trip the breaker.
	for i := 0; i < 20; i++ {
		_, err := src.FindSeries(ctx, "unknown-slug")
		require.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	_, err := src.FindMovie(ctx, "unknown-slug")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.FindEpisode(ctx, "food-wars", 1, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.FindSeries(ctx, "food-wars")
	assert.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, src.cb.State())
}

func TestRelationalSource_FailuresOpenBreaker(t *testing.T) {
	ctx := context.Background()
	src := setupRelational(t)
	require.NoError(t, src.db.Close())

	for i := 0; i < 5; i++ {
		_, err := src.ListSeries(ctx)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.NotErrorIs(t, err, ErrNotFound)
	}

	assert.Equal(t, gobreaker.StateOpen, src.cb.State())

	_, err := src.FindSeries(ctx, "food-wars")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("static without store settings", func(t *testing.T) {
		cfg := config.Default()
		p, err := Select(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, models.BackendStatic, p.Backend())
	})

	t.Run("static when key is missing", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.URL = ":memory:"
		p, err := Select(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, models.BackendStatic, p.Backend())
	})

	t.Run("relational when configured", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.URL = ":memory:"
		cfg.Store.Key = "key"
		p, err := Select(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, models.BackendRelational, p.Backend())

		rel, ok := p.(*RelationalSource)
		require.True(t, ok)
		defer rel.Close()

		series, err := p.ListSeries(ctx)
		require.NoError(t, err)
		assert.Empty(t, series)
	})

	t.Run("unreachable store fails startup", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.URL = "file:" + filepath.Join(t.TempDir(), "missing-dir", "catalog.db")
		cfg.Store.Key = "key"
		_, err := Select(ctx, cfg)
		assert.Error(t, err)
	})

	t.Run("supabase rest url fails startup", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.URL = "https://abcd.supabase.co"
		cfg.Store.Key = "anon-key"
		_, err := Select(ctx, cfg)
		assert.ErrorIs(t, err, database.ErrUnsupportedStoreURL)
	})
}

package repository

import (
	"context"
	"testing"

	"aniverse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesRepository_GetAll_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	series, err := NewSeriesRepository(db).GetAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, series)
}

func TestSeriesRepository_GetAll_OrderedByTitle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSeriesRepository(db)

	createTestSeries(t, repo, "one-piece", "One Piece", "Adventure")
	createTestSeries(t, repo, "food-wars", "Food Wars", "Comedy", "Ecchi")
	createTestSeries(t, repo, "bleach", "Bleach", "Action")

	series, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, "Bleach", series[0].Title)
	assert.Equal(t, "Food Wars", series[1].Title)
	assert.Equal(t, "One Piece", series[2].Title)
	assert.Equal(t, []string{"Comedy", "Ecchi"}, series[1].Genres)
}

func TestSeriesRepository_GetBySlug(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSeriesRepository(db)

	created := createTestSeries(t, repo, "food-wars", "Food Wars", "Comedy")

	got, err := repo.GetBySlug(context.Background(), "food-wars")
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Poster, got.Poster)
	assert.Equal(t, created.Description, got.Description)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2015, *got.Year)
	assert.Nil(t, got.ReleaseYear)
	assert.Empty(t, got.BannerImage)
}

func TestSeriesRepository_GetBySlug_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := NewSeriesRepository(db).GetBySlug(context.Background(), "unknown-slug")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "unknown-slug")
}

func TestSeriesRepository_Create_Duplicate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewSeriesRepository(db)

	createTestSeries(t, repo, "food-wars", "Food Wars")
	err := repo.Create(context.Background(), &models.SeriesRecord{Slug: "food-wars", Title: "Again"})
	assert.Error(t, err)
}

func TestSeriesRepository_CorruptGenres(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.Exec(`INSERT INTO series (slug, title, genres) VALUES ('broken', 'Broken', 'not-json')`)
	require.NoError(t, err)

	_, err = NewSeriesRepository(db).GetAll(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestSeriesRepository_CancelledContext(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSeriesRepository(db).GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

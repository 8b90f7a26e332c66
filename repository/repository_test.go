package repository

import (
	"context"
	"testing"

	"aniverse/database"
	"aniverse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*database.DB, func()) {
	// Create a temporary test database
	testDB, err := database.NewDB(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Initialize schema
	if err := testDB.InitSchema(); err != nil {
		t.Fatalf("Failed to initialize test schema: %v", err)
	}

	cleanup := func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	}

	return testDB, cleanup
}

func createTestSeries(t *testing.T, repo *SeriesRepository, slug, title string, genres ...string) *models.SeriesRecord {
	s := &models.SeriesRecord{
		Slug:        slug,
		Title:       title,
		Poster:      "https://cdn.example/" + slug + ".jpg",
		Genres:      genres,
		Description: "About " + title,
		Year:        models.IntPtr(2015),
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{"null", nil, nil},
		{"empty text", "", nil},
		{"json text", `["Action","Comedy"]`, []string{"Action", "Comedy"}},
		{"json bytes", []byte(`["Drama"]`), []string{"Drama"}},
		{"postgres array", `{Action,"Slice of Life"}`, []string{"Action", "Slice of Life"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l stringList
			require.NoError(t, l.Scan(tt.value))
			assert.Equal(t, tt.want, []string(l))
		})
	}

	var l stringList
	require.NoError(t, l.Scan(`{}`))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(`["unterminated`))
	assert.Error(t, l.Scan(42))
}

func TestSeriesRepository_ReadsArrayLiteralGenres(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.Exec(`INSERT INTO series (slug, title, genres) VALUES ('mushishi', 'Mushishi', '{Mystery,"Slice of Life"}')`)
	require.NoError(t, err)

	s, err := NewSeriesRepository(db).GetBySlug(context.Background(), "mushishi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mystery", "Slice of Life"}, s.Genres)
}

func TestRepositories_RunInsideTransaction(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	createTestSeries(t, NewSeriesRepository(tx), "food-wars", "Food Wars")
	require.NoError(t, tx.Rollback())

	_, err = NewSeriesRepository(db).GetBySlug(ctx, "food-wars")
	assert.ErrorIs(t, err, ErrNotFound)

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	createTestSeries(t, NewSeriesRepository(tx), "food-wars", "Food Wars")
	require.NoError(t, tx.Commit())

	_, err = NewSeriesRepository(db).GetBySlug(ctx, "food-wars")
	assert.NoError(t, err)
}

package catalog

import (
	"testing"

	"aniverse/config"
	"aniverse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer() *Normalizer {
	return NewNormalizer(NewClassifier(config.DefaultStaticSeriesIDs))
}

func TestClassifier(t *testing.T) {
	c := NewClassifier(config.DefaultStaticSeriesIDs)
	assert.Equal(t, models.EntryTypeSeries, c.Classify("food-wars"))
	assert.Equal(t, models.EntryTypeSeries, c.Classify("campfire-cooking"))
	assert.Equal(t, models.EntryTypeMovie, c.Classify("suzume"))
	assert.Equal(t, models.EntryTypeMovie, c.Classify(""))

	custom := NewClassifier([]string{"suzume"})
	assert.Equal(t, models.EntryTypeSeries, custom.Classify("suzume"))
	assert.Equal(t, models.EntryTypeMovie, custom.Classify("food-wars"))
}

func TestBuildLibrary_Relational(t *testing.T) {
	series := []models.SeriesRecord{
		{Slug: "bleach", Title: "Bleach", Description: "Soul reapers", Genres: []string{"Action"}, Year: models.IntPtr(2004), Status: "Completed"},
		{Slug: "food-wars", Title: "Food Wars"},
	}
	movies := []models.MovieRecord{
		{SeriesRecord: models.SeriesRecord{Slug: "suzume", Title: "Suzume", Description: "Doors", Year: models.IntPtr(2022)}},
	}

	library := newNormalizer().BuildLibrary(models.BackendRelational, series, movies)
	require.Len(t, library, len(series)+len(movies))

	bleach := library[0]
	assert.Equal(t, models.EntryTypeSeries, bleach.Type)
	assert.Equal(t, "Soul reapers", bleach.Synopsis)
	assert.Equal(t, StatusAvailable, bleach.Status, "series status is not taken from the record")
	assert.Equal(t, models.IntPtr(2004), bleach.ReleaseYear)
	assert.Nil(t, bleach.TotalEpisodes)

	assert.Equal(t, "food-wars", library[1].Slug)
	assert.NotNil(t, library[1].Genres)
	assert.Empty(t, library[1].Genres)
	assert.Nil(t, library[1].ReleaseYear)

	suzume := library[2]
	assert.Equal(t, models.EntryTypeMovie, suzume.Type)
	assert.Equal(t, StatusMovie, suzume.Status)
	assert.Equal(t, "Doors", suzume.Synopsis)
	assert.Equal(t, models.IntPtr(1), suzume.TotalEpisodes)
}

func TestBuildLibrary_Static(t *testing.T) {
	series := []models.SeriesRecord{
		{ID: "campfire-cooking", Slug: "campfire-cooking", Title: "Campfire Cooking", Synopsis: "Cooking", Status: "Ongoing", TotalEpisodes: models.IntPtr(12)},
		{ID: "suzume", Slug: "suzume", Title: "Suzume", Synopsis: "Doors"},
		{ID: "food-wars", Slug: "food-wars", Title: "Food Wars"},
	}

	library := newNormalizer().BuildLibrary(models.BackendStatic, series, nil)
	require.Len(t, library, 3)

	assert.Equal(t, models.EntryTypeSeries, library[0].Type)
	assert.Equal(t, "Cooking", library[0].Synopsis)
	assert.Equal(t, "Ongoing", library[0].Status)
	assert.Equal(t, models.IntPtr(12), library[0].TotalEpisodes)

	assert.Equal(t, models.EntryTypeMovie, library[1].Type)
	assert.Equal(t, StatusAvailable, library[1].Status)
	assert.Nil(t, library[1].TotalEpisodes)

	assert.Equal(t, models.EntryTypeSeries, library[2].Type)
}

func TestBuildLibrary_Properties(t *testing.T) {
	n := newNormalizer()
	for _, backend := range []models.Backend{models.BackendRelational, models.BackendStatic} {
		for size := 0; size < 6; size++ {
			series := make([]models.SeriesRecord, size)
			movies := make([]models.MovieRecord, size/2)
			for i := range series {
				series[i] = models.SeriesRecord{ID: "id", Slug: "s", Title: "T"}
			}

			library := n.BuildLibrary(backend, series, movies)
			assert.Len(t, library, len(series)+len(movies))
			assert.NotNil(t, library)
			for _, entry := range library {
				assert.Contains(t, []models.EntryType{models.EntryTypeSeries, models.EntryTypeMovie}, entry.Type)
			}
		}
	}
}

func TestBuildLibrary_PreservesOrder(t *testing.T) {
	series := []models.SeriesRecord{
		{Slug: "c", Title: "Charlie"},
		{Slug: "a", Title: "Alpha"},
		{Slug: "b", Title: "Bravo"},
	}

	library := newNormalizer().BuildLibrary(models.BackendRelational, series, nil)
	require.Len(t, library, 3)
	assert.Equal(t, "c", library[0].Slug)
	assert.Equal(t, "a", library[1].Slug)
	assert.Equal(t, "b", library[2].Slug)
}

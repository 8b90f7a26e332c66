package catalog

import (
	"cmp"
	"slices"
	"strconv"

	"aniverse/models"
)

// staticSeasonKey is the only season of static document series.
const staticSeasonKey = "1"

// GroupBySeason buckets episodes by season key in (season, episode)
// order. Static document episodes carry no season and all land in "1".
// The input is not modified and empty input yields empty maps.
func GroupBySeason(backend models.Backend, episodes []models.EpisodeRecord) (map[string][]string, map[string][]models.EpisodeSummary) {
	seasons := make(map[string][]string)
	grouped := make(map[string][]models.EpisodeSummary)

	sorted := slices.Clone(episodes)
	slices.SortStableFunc(sorted, func(a, b models.EpisodeRecord) int {
		if backend == models.BackendStatic {
			return cmp.Compare(a.Episode, b.Episode)
		}
		return cmp.Or(cmp.Compare(a.Season, b.Season), cmp.Compare(a.Episode, b.Episode))
	})

	for _, ep := range sorted {
		key := strconv.Itoa(ep.Season)
		if backend == models.BackendStatic {
			key = staticSeasonKey
		}

		number := strconv.Itoa(ep.Episode)
		seasons[key] = append(seasons[key], number)
		grouped[key] = append(grouped[key], models.EpisodeSummary{
			ID:              key + "-" + number,
			Number:          ep.Episode,
			Title:           ep.Title,
			Duration:        ep.Duration,
			Thumbnail:       episodeThumbnail(ep.CardThumbnail, ep.ListThumbnail, ep.Thumbnail),
			MainPoster:      ep.MainPoster,
			CardThumbnail:   ep.CardThumbnail,
			ListThumbnail:   ep.ListThumbnail,
			PlayerThumbnail: ep.PlayerThumbnail,
			Description:     ep.Description,
		})
	}

	return seasons, grouped
}

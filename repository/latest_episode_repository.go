package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aniverse/models"
)

// LatestEpisodeRepository reads the latest_episodes feed view
type LatestEpisodeRepository struct {
	db Querier
}

// NewLatestEpisodeRepository creates a new latest episode repository
func NewLatestEpisodeRepository(db Querier) *LatestEpisodeRepository {
	return &LatestEpisodeRepository{db: db}
}

// GetRecent returns at most limit feed rows, newest first
func (r *LatestEpisodeRepository) GetRecent(ctx context.Context, limit int) ([]models.LatestEpisodeRecord, error) {
	query := `
		SELECT series_slug, series_title, season, episode, episode_title, thumbnail, added_at
		FROM latest_episodes
		ORDER BY added_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest episodes: %w", err)
	}
	defer closeRows(rows)

	var feed []models.LatestEpisodeRecord
	for rows.Next() {
		var rec models.LatestEpisodeRecord
		var seriesTitle, episodeTitle, thumbnail sql.NullString
		var addedAt timestamp

		if err := rows.Scan(&rec.SeriesSlug, &seriesTitle, &rec.Season, &rec.Episode,
			&episodeTitle, &thumbnail, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan latest episode: %w", err)
		}

		rec.SeriesTitle = seriesTitle.String
		rec.EpisodeTitle = episodeTitle.String
		rec.Thumbnail = thumbnail.String
		if addedAt.Valid {
			rec.AddedAt = addedAt.Time.UTC().Format(time.RFC3339)
		}

		feed = append(feed, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return feed, nil
}

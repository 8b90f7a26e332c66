package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aniverse/models"
)

const episodeColumns = `series_slug, season, episode, title, thumbnail, episode_main_poster,
	episode_card_thumbnail, episode_list_thumbnail, video_player_thumbnail, servers`

// EpisodeRepository handles database operations for episodes
type EpisodeRepository struct {
	db Querier
}

// NewEpisodeRepository creates a new episode repository
func NewEpisodeRepository(db Querier) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// GetBySeries retrieves the episodes of one series ordered by season, then episode
func (r *EpisodeRepository) GetBySeries(ctx context.Context, seriesSlug string) ([]models.EpisodeRecord, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE series_slug = $1 ORDER BY season, episode`

	rows, err := r.db.QueryContext(ctx, query, seriesSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer closeRows(rows)

	var episodes []models.EpisodeRecord
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return episodes, nil
}

// Get retrieves a single episode by its (series, season, episode) key
func (r *EpisodeRepository) Get(ctx context.Context, seriesSlug string, season, episode int) (*models.EpisodeRecord, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE series_slug = $1 AND season = $2 AND episode = $3`

	ep, err := scanEpisode(r.db.QueryRowContext(ctx, query, seriesSlug, season, episode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("episode %s %d-%d: %w", seriesSlug, season, episode, ErrNotFound)
		}
		return nil, err
	}

	return &ep, nil
}

// Create inserts a new episode. A zero addedAt uses the store's current time.
func (r *EpisodeRepository) Create(ctx context.Context, ep *models.EpisodeRecord, addedAt time.Time) error {
	servers, err := encodeList(ep.Servers, len(ep.Servers) == 0)
	if err != nil {
		return err
	}

	if addedAt.IsZero() {
		addedAt = time.Now()
	}

	query := `
		INSERT INTO episodes (series_slug, season, episode, title, thumbnail, episode_main_poster,
		                      episode_card_thumbnail, episode_list_thumbnail, video_player_thumbnail,
		                      servers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.ExecContext(ctx, query,
		ep.SeriesSlug, ep.Season, ep.Episode, nullString(ep.Title), nullString(ep.Thumbnail),
		nullString(ep.MainPoster), nullString(ep.CardThumbnail), nullString(ep.ListThumbnail),
		nullString(ep.PlayerThumbnail), servers, addedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create episode: %w", err)
	}

	return nil
}

func scanEpisode(row scanner) (models.EpisodeRecord, error) {
	var ep models.EpisodeRecord
	var title, thumbnail, mainPoster, card, list, player, servers sql.NullString

	err := row.Scan(
		&ep.SeriesSlug, &ep.Season, &ep.Episode, &title, &thumbnail,
		&mainPoster, &card, &list, &player, &servers,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ep, err
		}
		return ep, fmt.Errorf("failed to scan episode: %w", err)
	}

	ep.Title = title.String
	ep.Thumbnail = thumbnail.String
	ep.MainPoster = mainPoster.String
	ep.CardThumbnail = card.String
	ep.ListThumbnail = list.String
	ep.PlayerThumbnail = player.String

	if ep.Servers, err = decodeServers(servers); err != nil {
		return ep, fmt.Errorf("episode %s %d-%d: %w", ep.SeriesSlug, ep.Season, ep.Episode, err)
	}

	return ep, nil
}

// Package repository provides data access layer for the catalog store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aniverse/logger"
	"aniverse/models"
)

const seriesColumns = `slug, title, poster, banner_image, genres, description, status, year, release_year`

// SeriesRepository handles database operations for series
type SeriesRepository struct {
	db Querier
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(db Querier) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// GetAll retrieves all series ordered by title
func (r *SeriesRepository) GetAll(ctx context.Context) ([]models.SeriesRecord, error) {
	query := `SELECT ` + seriesColumns + ` FROM series ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer closeRows(rows)

	var series []models.SeriesRecord
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return series, nil
}

// GetBySlug retrieves a series by its slug
func (r *SeriesRepository) GetBySlug(ctx context.Context, slug string) (*models.SeriesRecord, error) {
	query := `SELECT ` + seriesColumns + ` FROM series WHERE slug = $1`

	s, err := scanSeries(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("series %q: %w", slug, ErrNotFound)
		}
		return nil, err
	}

	return &s, nil
}

// Create inserts a new series
func (r *SeriesRepository) Create(ctx context.Context, s *models.SeriesRecord) error {
	genres, err := encodeList(s.Genres, len(s.Genres) == 0)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO series (slug, title, poster, banner_image, genres, description, status, year, release_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.ExecContext(ctx, query,
		s.Slug, s.Title, nullString(s.Poster), nullString(s.BannerImage), genres,
		nullString(s.Description), nullString(s.Status), nullIntPtr(s.Year), nullIntPtr(s.ReleaseYear),
	)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}

	return nil
}

func scanSeries(row scanner) (models.SeriesRecord, error) {
	var s models.SeriesRecord
	var poster, banner, description, status sql.NullString
	var genres stringList
	var year, releaseYear sql.NullInt64

	err := row.Scan(&s.Slug, &s.Title, &poster, &banner, &genres, &description, &status, &year, &releaseYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("failed to scan series: %w", err)
	}

	s.Poster = poster.String
	s.BannerImage = banner.String
	s.Description = description.String
	s.Status = status.String
	s.Year = intPtr(year)
	s.ReleaseYear = intPtr(releaseYear)
	s.Genres = genres

	return s, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		l := logger.New("repository")
		l.Warn().Err(err).Msg("Failed to close rows")
	}
}

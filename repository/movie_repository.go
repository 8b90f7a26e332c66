package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aniverse/models"
)

const movieColumns = `slug, title, poster, banner_image, genres, description, status, year, release_year, runtime, languages, servers`

// MovieRepository handles database operations for movies
type MovieRepository struct {
	db Querier
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db Querier) *MovieRepository {
	return &MovieRepository{db: db}
}

// GetAll retrieves all movies ordered by title
func (r *MovieRepository) GetAll(ctx context.Context) ([]models.MovieRecord, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer closeRows(rows)

	var movies []models.MovieRecord
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return movies, nil
}

// GetBySlug retrieves a movie by its slug
func (r *MovieRepository) GetBySlug(ctx context.Context, slug string) (*models.MovieRecord, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE slug = $1`

	m, err := scanMovie(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie %q: %w", slug, ErrNotFound)
		}
		return nil, err
	}

	return &m, nil
}

// Create inserts a new movie
func (r *MovieRepository) Create(ctx context.Context, m *models.MovieRecord) error {
	genres, err := encodeList(m.Genres, len(m.Genres) == 0)
	if err != nil {
		return err
	}
	languages, err := encodeList(m.Languages, len(m.Languages) == 0)
	if err != nil {
		return err
	}
	servers, err := encodeList(m.Servers, len(m.Servers) == 0)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO movies (slug, title, poster, banner_image, genres, description, status, year, release_year,
		                    runtime, languages, servers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.ExecContext(ctx, query,
		m.Slug, m.Title, nullString(m.Poster), nullString(m.BannerImage), genres,
		nullString(m.Description), nullString(m.Status), nullIntPtr(m.Year), nullIntPtr(m.ReleaseYear),
		nullString(m.Runtime), languages, servers,
	)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func scanMovie(row scanner) (models.MovieRecord, error) {
	var m models.MovieRecord
	var poster, banner, description, status, runtime, servers sql.NullString
	var genres, languages stringList
	var year, releaseYear sql.NullInt64

	err := row.Scan(
		&m.Slug, &m.Title, &poster, &banner, &genres, &description, &status,
		&year, &releaseYear, &runtime, &languages, &servers,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m, err
		}
		return m, fmt.Errorf("failed to scan movie: %w", err)
	}

	m.Poster = poster.String
	m.BannerImage = banner.String
	m.Description = description.String
	m.Status = status.String
	m.Runtime = runtime.String
	m.Year = intPtr(year)
	m.ReleaseYear = intPtr(releaseYear)

	m.Genres = genres
	m.Languages = languages
	if m.Servers, err = decodeServers(servers); err != nil {
		return m, fmt.Errorf("movie %q: %w", m.Slug, err)
	}

	return m, nil
}

// Package database provides database connectivity and schema management.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"aniverse/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // Import pgx driver
	_ "github.com/mattn/go-sqlite3"    // Import sqlite3 driver
)

// Driver names
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
	driver string
}

// Open connects to the relational store at storeURL. Postgres URLs get
// key injected as the connection password; sqlite://, file: and :memory:
// open SQLite. Any other URL is rejected before a connection is attempted.
func Open(storeURL, key string) (*DB, error) {
	driver, dsn, err := resolveDSN(storeURL, key)
	if err != nil {
		return nil, err
	}
	return NewDB(driver, dsn)
}

// NewDB creates a new database connection
func NewDB(driver, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every SQLite connection to :memory: is a separate database.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, driver: driver}, nil
}

// Driver returns the name of the SQL driver in use.
func (db *DB) Driver() string {
	return db.driver
}

// ErrUnsupportedStoreURL is returned for store URLs that name neither
// Postgres nor SQLite. Supabase REST endpoints (https://...) land here.
var ErrUnsupportedStoreURL = errors.New("unsupported store url")

func resolveDSN(storeURL, key string) (string, string, error) {
	switch {
	case storeURL == "":
		return "", "", fmt.Errorf("store url is empty")
	case strings.HasPrefix(storeURL, "postgres://"), strings.HasPrefix(storeURL, "postgresql://"):
		u, err := url.Parse(storeURL)
		if err != nil {
			return "", "", fmt.Errorf("invalid store url: %w", err)
		}
		if key != "" {
			user := "postgres"
			if u.User != nil && u.User.Username() != "" {
				user = u.User.Username()
			}
			u.User = url.UserPassword(user, key)
		}
		return DriverPostgres, u.String(), nil
	case strings.HasPrefix(storeURL, "sqlite://"):
		path := strings.TrimPrefix(storeURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: sqlite url has no path", ErrUnsupportedStoreURL)
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(storeURL, "file:"), storeURL == ":memory:":
		return DriverSQLite, storeURL, nil
	default:
		scheme := storeURL
		if u, err := url.Parse(storeURL); err == nil && u.Scheme != "" {
			scheme = u.Scheme + "://"
		}
		return "", "", fmt.Errorf("%w %q: use postgres://, postgresql://, sqlite://, file: or :memory:", ErrUnsupportedStoreURL, scheme)
	}
}

// InitSchema initializes the catalog schema. It targets SQLite stores
// used for development; production Postgres schemas are managed outside
// the server.
func (db *DB) InitSchema() error {
	schema := `
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS series (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		poster TEXT,
		banner_image TEXT,
		genres TEXT,
		description TEXT,
		status TEXT,
		year INTEGER,
		release_year INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_series_title ON series(title);

	CREATE TABLE IF NOT EXISTS movies (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		poster TEXT,
		banner_image TEXT,
		genres TEXT,
		description TEXT,
		status TEXT,
		year INTEGER,
		release_year INTEGER,
		runtime TEXT,
		languages TEXT,
		servers TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title);

	CREATE TABLE IF NOT EXISTS episodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		series_slug TEXT NOT NULL,
		season INTEGER NOT NULL CHECK (season > 0),
		episode INTEGER NOT NULL CHECK (episode > 0),
		title TEXT,
		thumbnail TEXT,
		episode_main_poster TEXT,
		episode_card_thumbnail TEXT,
		episode_list_thumbnail TEXT,
		video_player_thumbnail TEXT,
		servers TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (series_slug, season, episode),
		FOREIGN KEY (series_slug) REFERENCES series (slug) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_episodes_series_slug ON episodes(series_slug);
	CREATE INDEX IF NOT EXISTS idx_episodes_created_at ON episodes(created_at);

	CREATE VIEW IF NOT EXISTS latest_episodes AS
		SELECT e.series_slug AS series_slug,
		       s.title AS series_title,
		       e.season AS season,
		       e.episode AS episode,
		       e.title AS episode_title,
		       COALESCE(NULLIF(e.episode_card_thumbnail, ''), NULLIF(e.episode_list_thumbnail, ''), e.thumbnail) AS thumbnail,
		       e.created_at AS added_at
		FROM episodes e
		JOIN series s ON s.slug = e.series_slug;
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	l := logger.New("database")
	l.Debug().Str("driver", db.driver).Msg("Database schema initialized")
	return nil
}

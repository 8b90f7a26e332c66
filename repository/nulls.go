package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"aniverse/models"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Querier is satisfied by *database.DB and *sql.Tx, so repositories can run
// inside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// Helper functions for handling null values
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullIntPtr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	return models.IntPtr(int(n.Int64))
}

// Array columns are stored as JSON text.

func encodeList(v interface{}, empty bool) (sql.NullString, error) {
	if empty {
		return sql.NullString{Valid: false}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode column: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// stringList scans a list column holding JSON text (the SQLite schema) or
// a Postgres text[] array, which the pgx driver hands over as an array
// literal such as {Action,"Slice of Life"}.
type stringList []string

// Scan implements sql.Scanner.
func (l *stringList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported list column type %T", value)
	}

	raw = strings.TrimSpace(raw)
	var items []string
	switch {
	case raw == "":
	case raw[0] == '{':
		if err := pgtype.NewMap().SQLScanner(&items).Scan(raw); err != nil {
			return fmt.Errorf("failed to decode text array: %w", err)
		}
	default:
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return fmt.Errorf("failed to decode string list: %w", err)
		}
	}

	*l = items
	return nil
}

func decodeServers(col sql.NullString) ([]models.ServerRef, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var out []models.ServerRef
	if err := json.Unmarshal([]byte(col.String), &out); err != nil {
		return nil, fmt.Errorf("failed to decode servers: %w", err)
	}
	return out, nil
}

// timestamp scans TIMESTAMP columns that a driver may hand back either as
// time.Time or as text.
type timestamp struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (t *timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", value)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

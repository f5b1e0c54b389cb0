// internal/store/sqlite.go
//
// SQLite-backed implementation of the Store interface, plus the shared
// database opener used by the leaderboard tables.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout,
//     foreign keys), creating the parent directory for relative paths.
//   - Idempotent schema setup.
//   - Rooms are stored as one JSON document per code with an integer
//     version column; the conditional write is a single UPDATE guarded by
//     `WHERE code=? AND version=?`, checked via RowsAffected.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mrlynn/speakerbingo/internal/room"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
    code       TEXT PRIMARY KEY,
    doc        TEXT NOT NULL,
    version    INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS profiles (
    player_id    TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    doc          TEXT NOT NULL,
    total_points INTEGER NOT NULL DEFAULT 0,
    updated_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_profiles_points ON profiles(total_points DESC);
`

// OpenDB opens (and creates if missing) the SQLite database file and
// applies the schema.
func OpenDB(dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/app.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// sqlite is the durable Store implementation.
type sqlite struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened database handle as a Store.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqlite{db: db}
}

func (s *sqlite) Create(ctx context.Context, r *room.Room) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", r.RoomCode, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO rooms (code, doc, version, created_at, updated_at)
        VALUES (?, ?, 1, ?, ?)`,
		r.RoomCode, string(doc), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("insert room %s: %w", r.RoomCode, err)
	}
	return nil
}

func (s *sqlite) Get(ctx context.Context, code string) (*room.Room, int64, error) {
	var doc string
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT doc, version FROM rooms WHERE code=?`, code,
	).Scan(&doc, &version)
	if err == sql.ErrNoRows {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("select room %s: %w", code, err)
	}
	var r room.Room
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return nil, 0, fmt.Errorf("unmarshal room %s: %w", code, err)
	}
	return &r, version, nil
}

func (s *sqlite) Update(ctx context.Context, code string, version int64, r *room.Room) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", code, err)
	}
	res, err := s.db.ExecContext(ctx, `
        UPDATE rooms SET doc=?, version=version+1, updated_at=?
        WHERE code=? AND version=?`,
		string(doc), time.Now().UTC().Format(time.RFC3339), code, version,
	)
	if err != nil {
		return fmt.Errorf("update room %s: %w", code, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", code, err)
	}
	if n == 0 {
		// Either the version moved underneath us or the room is gone;
		// distinguish so callers retry only real conflicts.
		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM rooms WHERE code=?`, code).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// isUniqueViolation detects a primary key collision without depending on
// driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

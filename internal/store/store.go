package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "wheelpicker.sqlite"

// Store owns the state directory: the sqlite cache (region dataset and pick
// history) and the small JSON picker state file.
type Store struct {
	Dir string

	// Now stamps history rows; nil means time.Now.
	Now func() time.Time
}

// DefaultDir is $WHEELPICKER_STATE_DIR, or <user config dir>/wheelpicker.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("WHEELPICKER_STATE_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.Join(err, herr)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wheelpicker"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.SQLitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI read while a CLI import writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS provinces (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			pos INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cities (
			code TEXT PRIMARY KEY,
			province_code TEXT NOT NULL REFERENCES provinces(code) ON DELETE CASCADE,
			name TEXT NOT NULL,
			pos INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cities_province ON cities(province_code, pos);`,
		`CREATE TABLE IF NOT EXISTS areas (
			code TEXT PRIMARY KEY,
			city_code TEXT NOT NULL REFERENCES cities(code) ON DELETE CASCADE,
			name TEXT NOT NULL,
			pos INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_areas_city ON areas(city_code, pos);`,
		`CREATE TABLE IF NOT EXISTS picks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			label TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_kind ON picks(kind, created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func readMeta(ctx context.Context, db *sql.DB, k string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func writeMeta(ctx context.Context, tx *sql.Tx, k, v string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO meta(k, v) VALUES(?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`, k, v)
	return err
}

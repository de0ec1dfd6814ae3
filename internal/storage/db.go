package storage

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"labelpress/internal"
	"labelpress/internal/settings"
)

const settingsKey = "settings"

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  kind TEXT NOT NULL,
  format TEXT NOT NULL,
  rows INTEGER NOT NULL,
  pages INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_createdAt ON runs(createdAt);
`

	_, err := d.conn.Exec(schema)
	return err
}

// SettingsJSON returns the stored settings document. ok is false when
// nothing has been saved yet.
func (d *DB) SettingsJSON() ([]byte, bool, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, settingsKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (d *DB) SaveSettingsJSON(doc []byte) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value, updatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updatedAt=CURRENT_TIMESTAMP
`, settingsKey, string(doc))
	return err
}

// SettingsSnapshot loads the current configuration once. A missing or
// malformed document yields the compiled-in defaults; the malformed case
// is logged so the operator can repair the stored copy.
func (d *DB) SettingsSnapshot(logger *slog.Logger) settings.Settings {
	doc, ok, err := d.SettingsJSON()
	if err != nil {
		logger.Warn("settings read failed, using defaults", "err", err)
		return settings.Default()
	}
	if !ok {
		return settings.Default()
	}
	parsed, err := settings.Parse(doc)
	if err != nil {
		logger.Warn("stored settings are malformed, using defaults", "err", err)
		return settings.Default()
	}
	return parsed
}

func (d *DB) InsertRun(traceID, kind, format string, rows, pages int) error {
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, kind, format, rows, pages) VALUES (?, ?, ?, ?, ?)
`, traceID, kind, format, rows, pages)
	return err
}

func (d *DB) ListRuns(limit int) ([]internal.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.conn.Query(`
SELECT id, traceId, kind, format, rows, pages, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.RunRecord{}
	for rows.Next() {
		var r internal.RunRecord
		if err := rows.Scan(&r.ID, &r.TraceID, &r.Kind, &r.Format, &r.Rows, &r.Pages, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

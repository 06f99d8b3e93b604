package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/autobrand/crm-cli/internal/model"
)

// snapshotKey is the single row the workspace document lives under.
const snapshotKey = "workspace"

const (
	defaultCurrency   = "USD"
	defaultDateFormat = "MM/DD/YYYY"
)

// SQLiteStore implements Store using modernc.org/sqlite, holding the whole
// workspace as one JSON document in a key-value table.
type SQLiteStore struct {
	db       *sql.DB
	defaults model.Settings
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
// defaults fills the settings of a fresh workspace and of snapshots that
// predate the settings object; empty fields fall back to USD / MM/DD/YYYY.
func NewSQLite(dsn string, defaults model.Settings) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	if defaults.Currency == "" {
		defaults.Currency = defaultCurrency
	}
	if defaults.DateFormat == "" {
		defaults.DateFormat = defaultDateFormat
	}
	return &SQLiteStore{db: db, defaults: defaults}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the snapshot row. A missing row or an empty services
// collection triggers the one-time catalog seed, which is persisted
// immediately so later loads see a stable document.
func (s *SQLiteStore) Load(ctx context.Context) (*model.Workspace, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT doc FROM snapshots WHERE key = ?`, snapshotKey,
	)

	ws := &model.Workspace{}
	var doc string
	err := row.Scan(&doc)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, eris.Wrap(err, "sqlite: load snapshot")
	default:
		if err := json.Unmarshal([]byte(doc), ws); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal snapshot")
		}
	}

	// Fresh workspaces and snapshots with a blank settings object both pick
	// up the configured defaults.
	if ws.Settings.Currency == "" {
		ws.Settings.Currency = s.defaults.Currency
	}
	if ws.Settings.DateFormat == "" {
		ws.Settings.DateFormat = s.defaults.DateFormat
	}

	if len(ws.Services) == 0 {
		ws.Services = DefaultServices()
		if err := s.Save(ctx, ws); err != nil {
			return nil, err
		}
	}

	return ws, nil
}

// Save writes the full document. A failed write is retried once before the
// failure is surfaced as a *PersistenceError.
func (s *SQLiteStore) Save(ctx context.Context, ws *model.Workspace) error {
	doc, err := json.Marshal(ws)
	if err != nil {
		return &PersistenceError{Op: "marshal", Err: err}
	}

	writeErr := s.write(ctx, doc)
	if writeErr != nil {
		writeErr = s.write(ctx, doc)
	}
	if writeErr != nil {
		return &PersistenceError{Op: "save", Err: writeErr}
	}
	return nil
}

func (s *SQLiteStore) write(ctx context.Context, doc []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		snapshotKey, string(doc), time.Now().UTC(),
	)
	return err
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/internalerr"
	"github.com/cognicore/toolcat/pkg/toolcat/store"
)

const dateLayout = "2006-01-02"

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, internalerr.ErrStoreUnavailable, err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w: %v", pragma, internalerr.ErrStoreUnavailable, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	tutorials TEXT NOT NULL,
	defects TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS snapshots_source ON snapshots(source, created_at);

CREATE TABLE IF NOT EXISTS snapshot_entries (
	snapshot_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	country TEXT NOT NULL,
	url TEXT NOT NULL,
	description TEXT NOT NULL,
	open_source INTEGER NOT NULL,
	company TEXT NOT NULL,
	popularity INTEGER NOT NULL,
	last_updated TEXT NOT NULL,
	trend TEXT NOT NULL,
	date_defaulted INTEGER NOT NULL,
	PRIMARY KEY(snapshot_id, pos),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveSnapshot implements store.Store.
func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap store.Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = store.NewID(snap.CreatedAt)
	}
	tutorials, err := json.Marshal(snap.Tutorials)
	if err != nil {
		return "", fmt.Errorf("encode tutorials: %w", err)
	}
	defects, err := json.Marshal(snap.Defects)
	if err != nil {
		return "", fmt.Errorf("encode defects: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots(id, source, created_at, tutorials, defects) VALUES(?, ?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.CreatedAt.UTC().UnixNano(), string(tutorials), string(defects),
	); err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO snapshot_entries(snapshot_id, pos, name, category, country, url, description,
	open_source, company, popularity, last_updated, trend, date_defaulted)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare entries: %w", err)
	}
	defer stmt.Close()

	for i, e := range snap.Entries {
		if _, err := stmt.ExecContext(ctx,
			snap.ID, i, e.Name, e.Category, e.Country, e.URL, e.Description,
			boolInt(e.OpenSource), e.Company, e.Popularity, e.LastUpdated.Format(dateLayout),
			string(e.Trend), boolInt(e.DateDefaulted),
		); err != nil {
			return "", fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}
	return snap.ID, nil
}

// GetSnapshot implements store.Store.
func (s *sqliteStore) GetSnapshot(ctx context.Context, id string) (store.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, tutorials, defects FROM snapshots WHERE id = ?`, id)
	snap, err := s.loadSnapshot(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Snapshot{}, fmt.Errorf("snapshot %s: %w", id, internalerr.ErrNotFound)
	}
	return snap, err
}

// LatestSnapshot implements store.Store.
func (s *sqliteStore) LatestSnapshot(ctx context.Context, source string) (store.Snapshot, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, source, created_at, tutorials, defects FROM snapshots
WHERE source = ?
ORDER BY created_at DESC, id DESC
LIMIT 1`, source)
	snap, err := s.loadSnapshot(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *sqliteStore) loadSnapshot(ctx context.Context, row *sql.Row) (store.Snapshot, error) {
	var (
		snap               store.Snapshot
		createdAt          int64
		tutorials, defects string
	)
	if err := row.Scan(&snap.ID, &snap.Source, &createdAt, &tutorials, &defects); err != nil {
		return store.Snapshot{}, err
	}
	snap.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(tutorials), &snap.Tutorials); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode tutorials: %w", err)
	}
	if err := json.Unmarshal([]byte(defects), &snap.Defects); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode defects: %w", err)
	}

	entries, err := s.loadEntries(ctx, snap.ID)
	if err != nil {
		return store.Snapshot{}, err
	}
	snap.Entries = entries
	return snap, nil
}

func (s *sqliteStore) loadEntries(ctx context.Context, id string) ([]catalog.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, category, country, url, description, open_source, company,
	popularity, last_updated, trend, date_defaulted
FROM snapshot_entries WHERE snapshot_id = ? ORDER BY pos`, id)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []catalog.Entry
	for rows.Next() {
		var (
			e                       catalog.Entry
			openSource, defaulted   int
			lastUpdated, trendLabel string
		)
		if err := rows.Scan(&e.Name, &e.Category, &e.Country, &e.URL, &e.Description, &openSource,
			&e.Company, &e.Popularity, &lastUpdated, &trendLabel, &defaulted); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		d, err := time.Parse(dateLayout, lastUpdated)
		if err != nil {
			return nil, fmt.Errorf("parse entry date %q: %w", lastUpdated, err)
		}
		e.LastUpdated = d
		e.Trend = catalog.Trend(trendLabel)
		e.OpenSource = openSource != 0
		e.DateDefaulted = defaulted != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

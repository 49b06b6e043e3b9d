// Package cache keeps a local SQLite snapshot of the last server responses:
// taxonomy lists and the most recent page per (resource, query). The TUI
// renders the snapshot immediately at startup, so the previous page stays
// visible while the first real fetch is in flight.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"

	_ "modernc.org/sqlite"
)

type Cache struct {
	db *sql.DB
}

// DefaultPath places the snapshot next to the session files.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "snapshot.sqlite")
}

func Open(ctx context.Context, path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS taxonomy (
			kind TEXT NOT NULL,
			id INTEGER NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (kind, id)
		);`,
		`CREATE TABLE IF NOT EXISTS pages (
			resource TEXT NOT NULL,
			query TEXT NOT NULL,
			payload BLOB NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (resource, query)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveTaxonomy replaces the snapshot of one taxonomy kind.
func (c *Cache) SaveTaxonomy(ctx context.Context, kind string, entities []model.TaxonomyEntity) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM taxonomy WHERE kind = ?`, kind); err != nil {
		return err
	}
	for _, e := range entities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO taxonomy (kind, id, name, color) VALUES (?, ?, ?, ?)`,
			kind, e.ID, e.Name, e.Color); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (c *Cache) LoadTaxonomy(ctx context.Context, kind string) ([]model.TaxonomyEntity, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, color FROM taxonomy WHERE kind = ? ORDER BY id`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TaxonomyEntity
	for rows.Next() {
		var e model.TaxonomyEntity
		if err := rows.Scan(&e.ID, &e.Name, &e.Color); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SavePage stores a fetched page keyed by resource name and canonical query
// string. One row per key; a newer fetch replaces the older snapshot.
func SavePage[T any](ctx context.Context, c *Cache, resource string, q query.State, page model.Page[T]) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pages (resource, query, payload, fetched_at) VALUES (?, ?, ?, ?)`,
		resource, q.Encode().Encode(), payload, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadPage returns the snapshot for (resource, q), or ok=false when none is
// stored.
func LoadPage[T any](ctx context.Context, c *Cache, resource string, q query.State) (model.Page[T], bool, error) {
	var page model.Page[T]
	var payload []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT payload FROM pages WHERE resource = ? AND query = ?`,
		resource, q.Encode().Encode()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return page, false, nil
	}
	if err != nil {
		return page, false, err
	}
	if err := json.Unmarshal(payload, &page); err != nil {
		// Treat a corrupt snapshot as a miss; it gets overwritten on the
		// next successful fetch.
		return model.Page[T]{}, false, nil
	}
	return page, true, nil
}

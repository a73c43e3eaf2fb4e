// Package catalog persists the history of integration runs in SQLite so
// operators can see when each source was last refreshed and what changed.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/forest-rents/stumpage-cli/internal/model"
)

// Catalog records integration runs in a SQLite database.
type Catalog struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at the given path and
// configures WAL mode.
func Open(dsn string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "catalog: exec %s", pragma)
		}
	}
	return &Catalog{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	strategy   TEXT NOT NULL,
	years      TEXT,
	summary    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Migrate creates the schema.
func (c *Catalog) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "catalog: migrate")
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RecordRun stores one integration run and returns it with its assigned ID.
func (c *Catalog) RecordRun(ctx context.Context, source string, strategy model.ReplaceStrategy, years *model.YearRange, summary model.RunSummary) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: marshal summary")
	}

	var yearsJSON sql.NullString
	if years != nil {
		b, err := json.Marshal(years)
		if err != nil {
			return nil, eris.Wrap(err, "catalog: marshal years")
		}
		yearsJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, strategy, years, summary, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, source, string(strategy), yearsJSON, string(summaryJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: insert run")
	}

	return &model.Run{
		ID:        id,
		Source:    source,
		Strategy:  strategy,
		Years:     years,
		Summary:   summary,
		CreatedAt: now,
	}, nil
}

// ListRuns returns the most recent runs, newest first. A zero limit
// defaults to 20.
func (c *Catalog) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, source, strategy, years, summary, created_at FROM runs ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		var (
			run         model.Run
			strategy    string
			yearsJSON   sql.NullString
			summaryJSON string
		)
		if err := rows.Scan(&run.ID, &run.Source, &strategy, &yearsJSON, &summaryJSON, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "catalog: scan run")
		}
		run.Strategy = model.ReplaceStrategy(strategy)
		if yearsJSON.Valid {
			var years model.YearRange
			if err := json.Unmarshal([]byte(yearsJSON.String), &years); err != nil {
				return nil, eris.Wrap(err, "catalog: unmarshal years")
			}
			run.Years = &years
		}
		if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
			return nil, eris.Wrap(err, "catalog: unmarshal summary")
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "catalog: iterate runs")
}

/*
Package sqlite provides a SQLite-backed implementation of
planner.StateStore.

PURPOSE:
  The planner's state is small (a handful of years, each a categories
  list plus an events map), so each year is stored as one JSON document
  in its own row. The active year lives in a meta table. Save replaces
  everything inside a single transaction, which gives the same
  all-or-nothing behavior the engine's commit pipeline assumes.

KEY TABLES:
  years: year INTEGER PRIMARY KEY, data_json TEXT
  meta:  key/value rows, currently just active_year

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Readers don't block the single writer
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./timeoff.db")
  if err != nil { log.Fatal(err) }
  defer st.Close()

  state, err := st.Load(ctx)       // nil when the database is fresh
  ...
  engine.OnCommit = func(s *planner.Store) { st.Save(ctx, s) }

SEE ALSO:
  - planner/store.go: interface definition
  - planner/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/timeoff-planner/planner"
)

const activeYearKey = "active_year"

// Store implements planner.StateStore on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (creating if needed) the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS years (
		year INTEGER PRIMARY KEY,
		data_json TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the persisted store. A fresh database yields (nil, nil);
// the caller falls back to planner defaults.
func (s *Store) Load(ctx context.Context) (*planner.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rawYear string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, activeYearKey).Scan(&rawYear)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read active year: %w", err)
	}
	activeYear, err := strconv.Atoi(rawYear)
	if err != nil {
		return nil, fmt.Errorf("%w: active year %q", planner.ErrMalformedData, rawYear)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT year, data_json FROM years`)
	if err != nil {
		return nil, fmt.Errorf("failed to read years: %w", err)
	}
	defer rows.Close()

	state := &planner.Store{Year: activeYear, Years: map[int]*planner.YearData{}}
	for rows.Next() {
		var year int
		var data string
		if err := rows.Scan(&year, &data); err != nil {
			return nil, err
		}
		var yd planner.YearData
		if err := json.Unmarshal([]byte(data), &yd); err != nil {
			return nil, fmt.Errorf("%w: year %d: %v", planner.ErrMalformedData, year, err)
		}
		if yd.Events == nil {
			yd.Events = map[string]planner.Event{}
		}
		state.Years[year] = &yd
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(state.Years) == 0 {
		return nil, nil
	}
	return state, nil
}

// Save replaces the persisted store atomically.
func (s *Store) Save(ctx context.Context, state *planner.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM years`); err != nil {
		return err
	}
	for year, yd := range state.Years {
		data, err := json.Marshal(yd)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO years (year, data_json, updated_at) VALUES (?, ?, datetime('now'))`,
			year, string(data)); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		activeYearKey, strconv.Itoa(state.Year)); err != nil {
		return err
	}
	return tx.Commit()
}

package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (creating if needed) the run database at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ferrors.StorageError(err, "open sqlite database").WithContext("path", dbPath).Build()
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, ferrors.StorageError(err, "initialize schema").WithContext("path", dbPath).Build()
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		start_year INTEGER NOT NULL,
		end_year INTEGER NOT NULL,
		status TEXT NOT NULL,
		years_completed INTEGER NOT NULL DEFAULT 0,
		started INTEGER NOT NULL,
		finished INTEGER,
		config_path TEXT,
		git_commit TEXT,
		git_dirty INTEGER NOT NULL DEFAULT 0,
		errors TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);
	CREATE TABLE IF NOT EXISTS ledger_rows (
		run_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		metrics BLOB NOT NULL,
		PRIMARY KEY (run_id, year)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun inserts the run or replaces its stored metadata.
func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errorsJSON []byte
	if len(run.Errors) > 0 {
		var err error
		if errorsJSON, err = json.Marshal(run.Errors); err != nil {
			return ferrors.StorageError(err, "marshal run errors").Build()
		}
	}
	var finished sql.NullInt64
	if !run.Finished.IsZero() {
		finished = sql.NullInt64{Int64: run.Finished.UnixMilli(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, start_year, end_year, status, years_completed, started, finished, config_path, git_commit, git_dirty, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			years_completed = excluded.years_completed,
			finished = excluded.finished,
			errors = excluded.errors`,
		run.ID, strconv.FormatUint(run.Seed, 10), run.StartYear, run.EndYear, run.Status, run.YearsCompleted,
		run.Started.UnixMilli(), finished, run.ConfigPath, run.Commit, run.Dirty, string(errorsJSON),
	)
	if err != nil {
		return ferrors.StorageError(err, "save run").WithContext("run_id", run.ID).Build()
	}
	return nil
}

// AppendYear stores entry under runID, replacing any row for the same year.
func (s *SQLiteStore) AppendYear(ctx context.Context, runID string, entry ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make(map[ledger.Metric]ledger.Value, len(ledger.Catalogue()))
	for _, m := range ledger.Catalogue() {
		values[m] = entry.Get(m)
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return ferrors.StorageError(err, "marshal ledger row").Build()
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO ledger_rows (run_id, year, metrics) VALUES (?, ?, ?)",
		runID, entry.Year, payload,
	)
	if err != nil {
		return ferrors.StorageError(err, "insert ledger row").WithContext("run_id", runID).WithContext("year", entry.Year).Build()
	}
	return nil
}

const runColumns = "id, seed, start_year, end_year, status, years_completed, started, finished, config_path, git_commit, git_dirty, errors"

// GetRun retrieves one run. A missing run is a not-found error.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return Run{}, ferrors.NotFoundError("run").WithContext("run_id", id).Build()
	}
	if err != nil {
		return Run{}, ferrors.StorageError(err, "query run").WithContext("run_id", id).Build()
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY started DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, ferrors.StorageError(err, "query runs").Build()
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, ferrors.StorageError(err, "scan run").Build()
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, ferrors.StorageError(err, "iterate runs").Build()
	}
	return runs, nil
}

// LoadLedger rebuilds the run's table in year order with the current metric
// catalogue as columns. Metrics absent from a stored row are missing.
func (s *SQLiteStore) LoadLedger(ctx context.Context, id string) (ledger.Table, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return ledger.Table{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT year, metrics FROM ledger_rows WHERE run_id = ? ORDER BY year", id)
	if err != nil {
		return ledger.Table{}, ferrors.StorageError(err, "query ledger rows").WithContext("run_id", id).Build()
	}
	defer rows.Close()

	cols := ledger.Catalogue()
	table := ledger.Table{Columns: cols, Rows: []ledger.Row{}}
	for rows.Next() {
		var year int
		var payload []byte
		if err := rows.Scan(&year, &payload); err != nil {
			return ledger.Table{}, ferrors.StorageError(err, "scan ledger row").Build()
		}
		var values map[ledger.Metric]ledger.Value
		if err := json.Unmarshal(payload, &values); err != nil {
			return ledger.Table{}, ferrors.StorageError(err, "unmarshal ledger row").WithContext("year", year).Build()
		}
		row := ledger.Row{Year: year, Values: make([]ledger.Value, len(cols))}
		for i, m := range cols {
			row.Values[i] = values[m]
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return ledger.Table{}, ferrors.StorageError(err, "iterate ledger rows").Build()
	}
	return table, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run        Run
		seed       string
		started    int64
		finished   sql.NullInt64
		configPath sql.NullString
		commit     sql.NullString
		errorsJSON sql.NullString
	)
	err := sc.Scan(&run.ID, &seed, &run.StartYear, &run.EndYear, &run.Status, &run.YearsCompleted,
		&started, &finished, &configPath, &commit, &run.Dirty, &errorsJSON)
	if err != nil {
		return Run{}, err
	}
	if run.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return Run{}, fmt.Errorf("parse seed %q: %w", seed, err)
	}
	run.Started = time.UnixMilli(started).UTC()
	if finished.Valid {
		run.Finished = time.UnixMilli(finished.Int64).UTC()
	}
	run.ConfigPath = configPath.String
	run.Commit = commit.String
	if errorsJSON.Valid && errorsJSON.String != "" {
		if err := json.Unmarshal([]byte(errorsJSON.String), &run.Errors); err != nil {
			return Run{}, fmt.Errorf("unmarshal run errors: %w", err)
		}
	}
	return run, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

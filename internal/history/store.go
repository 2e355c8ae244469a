package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned by Get for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	unit          TEXT NOT NULL,
	horizon_start REAL NOT NULL,
	horizon_end   REAL NOT NULL,
	placed        INTEGER NOT NULL,
	unplaced      INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS outcomes (
	run_id      TEXT NOT NULL,
	position    INTEGER NOT NULL,
	task_id     TEXT NOT NULL,
	status      TEXT NOT NULL,
	start_at    REAL,
	end_at      REAL,
	flexibility REAL NOT NULL,
	endangered  INTEGER NOT NULL,
	step        INTEGER NOT NULL,
	PRIMARY KEY (run_id, task_id),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// Run is one recorded planning run.
type Run struct {
	ID           string
	Unit         string
	HorizonStart float64
	HorizonEnd   float64
	Placed       int
	Unplaced     int
	CreatedAt    time.Time
	Outcomes     []Outcome
}

// Outcome is the recorded result for one task. Start and End are nil when
// the task was not placed.
type Outcome struct {
	TaskID      string
	Status      string
	Start       *float64
	End         *float64
	Flexibility float64
	Endangered  bool
	Step        int
}

// Store persists runs in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to prepare history database %q: %w", path, err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records r and its outcomes in one transaction. A zero CreatedAt is
// set to the current time.
func (s *Store) Save(ctx context.Context, r Run) error {
	if r.ID == "" {
		return errors.New("run id must not be empty")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, unit, horizon_start, horizon_end, placed, unplaced, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Unit, r.HorizonStart, r.HorizonEnd, r.Placed, r.Unplaced, r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run '%s': %w", r.ID, err)
	}

	for i, o := range r.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, position, task_id, status, start_at, end_at, flexibility, endangered, step)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, i, o.TaskID, o.Status, o.Start, o.End, o.Flexibility, o.Endangered, o.Step,
		)
		if err != nil {
			return fmt.Errorf("failed to insert outcome of task '%s': %w", o.TaskID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Run recorded.", "outcomes", len(r.Outcomes))
	return nil
}

// Get loads a run and its outcomes in their original order.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	var (
		r       Run
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, unit, horizon_start, horizon_end, placed, unplaced, created_at
		 FROM runs WHERE run_id = ?`, id,
	).Scan(&r.ID, &r.Unit, &r.HorizonStart, &r.HorizonEnd, &r.Placed, &r.Unplaced, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: '%s'", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query run '%s': %w", id, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, fmt.Errorf("run '%s' has a malformed timestamp: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT task_id, status, start_at, end_at, flexibility, endangered, step
		 FROM outcomes WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return Run{}, fmt.Errorf("failed to query outcomes of run '%s': %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o          Outcome
			start, end sql.NullFloat64
		)
		if err := rows.Scan(&o.TaskID, &o.Status, &start, &end, &o.Flexibility, &o.Endangered, &o.Step); err != nil {
			return Run{}, fmt.Errorf("failed to scan outcome: %w", err)
		}
		if start.Valid {
			o.Start = &start.Float64
		}
		if end.Valid {
			o.End = &end.Float64
		}
		r.Outcomes = append(r.Outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("failed to read outcomes of run '%s': %w", id, err)
	}
	return r, nil
}

// RunIDs lists recorded runs, newest first.
func (s *Store) RunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id FROM runs ORDER BY created_at DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sociophysics/normsim/internal/sim"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id         TEXT PRIMARY KEY,
	population     INTEGER NOT NULL,
	bias_a_conform REAL NOT NULL,
	bias_a_break   REAL NOT NULL,
	bias_b_conform REAL NOT NULL,
	bias_b_break   REAL NOT NULL,
	strength_a     REAL NOT NULL,
	strength_b     REAL NOT NULL,
	entanglement   REAL NOT NULL,
	seed           INTEGER NOT NULL,
	steps          INTEGER NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS step_records (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	step         INTEGER NOT NULL,
	a_conforming INTEGER NOT NULL,
	a_breaking   INTEGER NOT NULL,
	b_conforming INTEGER NOT NULL,
	b_breaking   INTEGER NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	trigger_type TEXT NOT NULL,
	params_json TEXT,
	outcome     TEXT NOT NULL,
	reason      TEXT,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// #endregion schema

// #region store-struct
// Store archives simulation runs in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region save-run
// SaveRun archives a completed run's parameters and full history atomically.
func (s *Store) SaveRun(cfg sim.Config, h sim.History) (RunRecord, error) {
	rec := RunRecord{
		RunID:     uuid.New().String(),
		Config:    cfg,
		Steps:     len(h),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return RunRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, population, bias_a_conform, bias_a_break,
		  bias_b_conform, bias_b_break, strength_a, strength_b, entanglement,
		  seed, steps, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, cfg.PopulationSize,
		cfg.BiasA[0], cfg.BiasA[1], cfg.BiasB[0], cfg.BiasB[1],
		cfg.StrengthA, cfg.StrengthB, cfg.Entanglement,
		cfg.Seed, rec.Steps, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}

	for _, step := range h {
		_, err = tx.Exec(
			`INSERT INTO step_records (run_id, step, a_conforming, a_breaking, b_conforming, b_breaking)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.RunID, step.Step,
			step.AConforming, step.ABreaking, step.BConforming, step.BBreaking,
		)
		if err != nil {
			return RunRecord{}, fmt.Errorf("insert step %d: %w", step.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return RunRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// #endregion save-run

// #region get-run
// GetRun retrieves a stored run's parameters by ID.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var createdStr string

	err := s.db.QueryRow(
		`SELECT run_id, population, bias_a_conform, bias_a_break,
		  bias_b_conform, bias_b_break, strength_a, strength_b, entanglement,
		  seed, steps, created_at
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.Config.PopulationSize,
		&rec.Config.BiasA[0], &rec.Config.BiasA[1],
		&rec.Config.BiasB[0], &rec.Config.BiasB[1],
		&rec.Config.StrengthA, &rec.Config.StrengthB, &rec.Config.Entanglement,
		&rec.Config.Seed, &rec.Steps, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// #endregion get-run

// #region get-history
// GetHistory retrieves a run's full step sequence in step order.
func (s *Store) GetHistory(runID string) (sim.History, error) {
	rows, err := s.db.Query(
		`SELECT step, a_conforming, a_breaking, b_conforming, b_breaking
		 FROM step_records WHERE run_id = ? ORDER BY step ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query steps for %s: %w", runID, err)
	}
	defer rows.Close()

	var h sim.History
	for rows.Next() {
		var rec sim.StepRecord
		if err := rows.Scan(&rec.Step, &rec.AConforming, &rec.ABreaking, &rec.BConforming, &rec.BBreaking); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		h = append(h, rec)
	}
	return h, rows.Err()
}

// #endregion get-history

// #region list-runs
// ListRuns returns the most recent runs.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, population, bias_a_conform, bias_a_break,
		  bias_b_conform, bias_b_break, strength_a, strength_b, entanglement,
		  seed, steps, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.Config.PopulationSize,
			&rec.Config.BiasA[0], &rec.Config.BiasA[1],
			&rec.Config.BiasB[0], &rec.Config.BiasB[1],
			&rec.Config.StrengthA, &rec.Config.StrengthB, &rec.Config.Entanglement,
			&rec.Config.Seed, &rec.Steps, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-runs

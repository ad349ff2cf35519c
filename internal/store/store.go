// Package store keeps sweep results and chain traces in a SQLite database so
// runs can be compared and re-plotted later.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"ising-mc/internal/core"
	"ising-mc/internal/mc"
)

// Run kinds.
const (
	KindSweep = "sweep"
	KindTrace = "trace"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("store: run not found")

// Run is the header row shared by sweeps and traces.
type Run struct {
	ID          string  `db:"id"`
	Kind        string  `db:"kind"`
	Model       string  `db:"model"`
	Seed        int64   `db:"seed"`
	Size        int     `db:"size"`
	Temperature float64 `db:"temperature"`
	Created     int64   `db:"created_unix"`
	ParamsJSON  string  `db:"params_json"`
}

// CreatedAt returns the creation time of the run.
func (r Run) CreatedAt() time.Time { return time.Unix(0, r.Created) }

// Parameters decodes the configuration the run was started with.
func (r Run) Parameters() (core.ParameterSnapshot, error) {
	var snap core.ParameterSnapshot
	if err := json.Unmarshal([]byte(r.ParamsJSON), &snap); err != nil {
		return core.ParameterSnapshot{}, fmt.Errorf("decode parameters of run %s: %w", r.ID, err)
	}
	return snap, nil
}

type observableRow struct {
	Index          int     `db:"idx"`
	Temperature    float64 `db:"temperature"`
	Energy         float64 `db:"energy"`
	Magnetization  float64 `db:"magnetization"`
	SpecificHeat   float64 `db:"specific_heat"`
	Susceptibility float64 `db:"susceptibility"`
	Acceptance     float64 `db:"acceptance"`
}

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		model TEXT NOT NULL,
		seed INTEGER NOT NULL,
		size INTEGER NOT NULL,
		temperature REAL NOT NULL,
		created_unix INTEGER NOT NULL,
		params_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS observables (
		run_id TEXT NOT NULL REFERENCES runs(id),
		idx INTEGER NOT NULL,
		temperature REAL NOT NULL,
		energy REAL NOT NULL,
		magnetization REAL NOT NULL,
		specific_heat REAL NOT NULL,
		susceptibility REAL NOT NULL,
		acceptance REAL NOT NULL,
		PRIMARY KEY (run_id, idx)
	);

	CREATE TABLE IF NOT EXISTS trace_points (
		run_id TEXT NOT NULL REFERENCES runs(id),
		step INTEGER NOT NULL,
		energy REAL NOT NULL,
		magnetization REAL NOT NULL,
		PRIMARY KEY (run_id, step)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind, created_unix);
	`
	_, err := db.conn.Exec(schema)
	return err
}

func (db *DB) insertRun(tx *sqlx.Tx, kind string, cfg mc.Config, size int, temperature float64) (string, error) {
	paramsJSON, err := json.Marshal(cfg.Parameters())
	if err != nil {
		return "", fmt.Errorf("encode parameters: %w", err)
	}
	id := uuid.NewString()
	_, err = tx.Exec(`INSERT INTO runs
		(id, kind, model, seed, size, temperature, created_unix, params_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, kind, cfg.Model, cfg.Seed, size, temperature, db.now().UnixNano(), string(paramsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SaveSweep stores a sweep result and returns the id of the new run.
func (db *DB) SaveSweep(cfg mc.Config, res *mc.SweepResult) (string, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id, err := db.insertRun(tx, KindSweep, cfg, cfg.Size, 0)
	if err != nil {
		return "", err
	}

	stmt, err := tx.Preparex(`INSERT INTO observables
		(run_id, idx, temperature, energy, magnetization, specific_heat, susceptibility, acceptance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i := 0; i < res.Len(); i++ {
		p := res.Point(i)
		_, err := stmt.Exec(id, i, p.Temperature, p.Energy, p.Magnetization,
			p.SpecificHeat, p.Susceptibility, p.Acceptance)
		if err != nil {
			return "", fmt.Errorf("insert observable %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Debug("sweep saved", "run", id, "model", cfg.Model, "temperatures", res.Len())
	return id, nil
}

// SaveTrace stores a chain trace and returns the id of the new run.
func (db *DB) SaveTrace(cfg mc.Config, tr *mc.Trace) (string, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id, err := db.insertRun(tx, KindTrace, cfg, tr.Size, tr.Temperature)
	if err != nil {
		return "", err
	}

	stmt, err := tx.Preparex(`INSERT INTO trace_points
		(run_id, step, energy, magnetization) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, p := range tr.Points {
		if _, err := stmt.Exec(id, p.Step, p.Energy, p.Magnetization); err != nil {
			return "", fmt.Errorf("insert trace point %d: %w", p.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Debug("trace saved", "run", id, "model", cfg.Model, "points", len(tr.Points))
	return id, nil
}

// Run returns the header of a stored run.
func (db *DB) Run(id string) (Run, error) {
	var r Run
	err := db.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// Runs lists stored runs of the given kind, oldest first. An empty kind
// lists every run.
func (db *DB) Runs(kind string) ([]Run, error) {
	var runs []Run
	var err error
	if kind == "" {
		err = db.conn.Select(&runs, "SELECT * FROM runs ORDER BY created_unix, rowid")
	} else {
		err = db.conn.Select(&runs, "SELECT * FROM runs WHERE kind = ? ORDER BY created_unix, rowid", kind)
	}
	return runs, err
}

// LoadSweep reads back a stored sweep.
func (db *DB) LoadSweep(id string) (*mc.SweepResult, error) {
	run, err := db.Run(id)
	if err != nil {
		return nil, err
	}
	if run.Kind != KindSweep {
		return nil, fmt.Errorf("run %s is a %s, not a sweep", id, run.Kind)
	}
	var rows []observableRow
	err = db.conn.Select(&rows, `SELECT idx, temperature, energy, magnetization,
		specific_heat, susceptibility, acceptance
		FROM observables WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("load observables of %s: %w", id, err)
	}
	points := make([]mc.Observables, len(rows))
	for i, r := range rows {
		points[i] = mc.Observables{
			Temperature:    r.Temperature,
			Energy:         r.Energy,
			Magnetization:  r.Magnetization,
			SpecificHeat:   r.SpecificHeat,
			Susceptibility: r.Susceptibility,
			Acceptance:     r.Acceptance,
		}
	}
	return mc.NewSweepResult(run.Model, points), nil
}

// LoadTrace reads back a stored trace.
func (db *DB) LoadTrace(id string) (*mc.Trace, error) {
	run, err := db.Run(id)
	if err != nil {
		return nil, err
	}
	if run.Kind != KindTrace {
		return nil, fmt.Errorf("run %s is a %s, not a trace", id, run.Kind)
	}
	tr := &mc.Trace{Model: run.Model, Size: run.Size, Temperature: run.Temperature}
	err = db.conn.Select(&tr.Points,
		"SELECT step, energy, magnetization FROM trace_points WHERE run_id = ? ORDER BY step", id)
	if err != nil {
		return nil, fmt.Errorf("load trace points of %s: %w", id, err)
	}
	return tr, nil
}

// Package history persists saved evaluations.
//
// Entries are append-only: the schema rejects UPDATE and DELETE on the
// evaluations table, so a saved report is never rewritten. Listings are
// newest first, mirroring the "most recent evaluation" view.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/HendryAvila/yardstick/internal/pipeline"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// newID is a package-level variable so tests can pin identifiers.
var newID = func() string { return uuid.NewString() }

// timeLayout stores created_at as fixed-width UTC text so that string
// order in SQLite matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when no entry matches a lookup.
var ErrNotFound = errors.New("history: entry not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// Entry is one saved evaluation.
type Entry struct {
	ID        string          `json:"id" yaml:"id"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	Input     pipeline.Input  `json:"input" yaml:"input"`
	Report    pipeline.Report `json:"report" yaml:"report"`
}

// Stats holds aggregate figures over every saved entry.
type Stats struct {
	Total        int                        `json:"total" yaml:"total"`
	AverageScore float64                    `json:"average_score" yaml:"average_score"`
	ByRisk       map[pipeline.RiskLevel]int `json:"by_risk" yaml:"by_risk"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds history store configuration.
type Config struct {
	DataDir      string
	DefaultLimit int
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed evaluation history.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (creating if needed) history.db under cfg.DataDir and runs
// migrations.
func New(cfg Config) (*Store, error) {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "history.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DefaultLimit is the number of entries Recent returns for limit <= 0.
func (s *Store) DefaultLimit() int {
	return s.cfg.DefaultLimit
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS evaluations (
			seq            INTEGER PRIMARY KEY AUTOINCREMENT,
			id             TEXT    NOT NULL UNIQUE,
			scenario       TEXT    NOT NULL,
			response       TEXT    NOT NULL DEFAULT '',
			overall_score  REAL    NOT NULL,
			risk_level     TEXT    NOT NULL,
			interpretation TEXT    NOT NULL,
			report         TEXT    NOT NULL,
			created_at     TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_eval_created ON evaluations(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_eval_risk    ON evaluations(risk_level);

		CREATE TRIGGER IF NOT EXISTS evaluations_no_update
		BEFORE UPDATE ON evaluations
		BEGIN
			SELECT RAISE(ABORT, 'evaluations are append-only');
		END;

		CREATE TRIGGER IF NOT EXISTS evaluations_no_delete
		BEFORE DELETE ON evaluations
		BEGIN
			SELECT RAISE(ABORT, 'evaluations are append-only');
		END;
	`)
	return err
}

// ─── Writes ──────────────────────────────────────────────────────────────────

// Save appends an evaluation and returns the stored entry.
func (s *Store) Save(in pipeline.Input, report pipeline.Report) (*Entry, error) {
	if strings.TrimSpace(in.Scenario) == "" {
		return nil, fmt.Errorf("history: save: %w", pipeline.ErrInvalidInput)
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("history: encode report: %w", err)
	}

	e := &Entry{
		ID:        newID(),
		CreatedAt: timeNow().UTC(),
		Input:     in,
		Report:    report.Clone(),
	}

	_, err = s.db.Exec(
		`INSERT INTO evaluations (id, scenario, response, overall_score, risk_level, interpretation, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, in.Scenario, in.Response, report.OverallScore,
		string(report.RiskLevel), string(report.Interpretation), string(data),
		e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("history: insert: %w", err)
	}
	return e, nil
}

// ImportResult counts what Import did.
type ImportResult struct {
	Imported int `json:"imported" yaml:"imported"`
	Skipped  int `json:"skipped" yaml:"skipped"`
}

// Import restores exported entries in one transaction, keeping their IDs
// and timestamps. Restored entries take their place in listings by
// creation time, not by when they were imported. Entries whose ID already exists are skipped, so
// importing the same export twice is harmless.
func (s *Store) Import(entries []Entry) (*ImportResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("history: import: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &ImportResult{}
	for _, e := range entries {
		if e.ID == "" || strings.TrimSpace(e.Input.Scenario) == "" {
			return nil, fmt.Errorf("history: import entry %q: %w", e.ID, pipeline.ErrInvalidInput)
		}
		data, err := json.Marshal(e.Report)
		if err != nil {
			return nil, fmt.Errorf("history: encode report %s: %w", e.ID, err)
		}
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO evaluations (id, scenario, response, overall_score, risk_level, interpretation, report, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Input.Scenario, e.Input.Response, e.Report.OverallScore,
			string(e.Report.RiskLevel), string(e.Report.Interpretation), string(data),
			e.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return nil, fmt.Errorf("history: import entry %s: %w", e.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("history: import: commit: %w", err)
	}
	return result, nil
}

// ─── Reads ───────────────────────────────────────────────────────────────────

const selectEntry = `SELECT id, scenario, response, report, created_at FROM evaluations`

// Get returns the entry with the given id.
func (s *Store) Get(id string) (*Entry, error) {
	row := s.db.QueryRow(selectEntry+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// Chronological order by creation time. Entries created in the same
// instant keep insertion order.
const (
	newestFirst = ` ORDER BY created_at DESC, seq DESC`
	oldestFirst = ` ORDER BY created_at ASC, seq ASC`
)

// Latest returns the entry with the newest creation time.
func (s *Store) Latest() (*Entry, error) {
	row := s.db.QueryRow(selectEntry + newestFirst + ` LIMIT 1`)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less uses the configured default.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	return s.queryEntries(selectEntry+newestFirst+` LIMIT ?`, limit)
}

// Export returns every entry, oldest first.
func (s *Store) Export() ([]Entry, error) {
	return s.queryEntries(selectEntry + oldestFirst)
}

// Stats returns aggregate figures over all entries.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByRisk: map[pipeline.RiskLevel]int{}}

	var avg sql.NullFloat64
	if err := s.db.QueryRow(
		`SELECT COUNT(*), AVG(overall_score) FROM evaluations`,
	).Scan(&stats.Total, &avg); err != nil {
		return nil, fmt.Errorf("history: stats: %w", err)
	}
	stats.AverageScore = avg.Float64

	rows, err := s.db.Query(`SELECT risk_level, COUNT(*) FROM evaluations GROUP BY risk_level`)
	if err != nil {
		return nil, fmt.Errorf("history: stats by risk: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, err
		}
		stats.ByRisk[pipeline.RiskLevel(level)] = n
	}
	return stats, rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e         Entry
		report    string
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.Input.Scenario, &e.Input.Response, &report, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(report), &e.Report); err != nil {
		return nil, fmt.Errorf("history: decode report %s: %w", e.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("history: parse created_at %s: %w", e.ID, err)
	}
	e.CreatedAt = t
	return &e, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *e)
	}
	return results, rows.Err()
}

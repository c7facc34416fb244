// internal/results/db.go
//
// SQLite persistence for finished games and benchmark runs.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Insert/query helpers used by the HTTP server and the bench command.
//
// The solver never touches this package; drivers write here best-effort.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguesser/assets"
)

// DB wraps the results database.
type DB struct{ sql *sql.DB }

// Open opens (and creates if missing) the database at dsn and migrates it.
func Open(dsn string) (*DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under the bench fan-in.
	db.SetMaxOpenConns(1)

	if err := migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error { return d.sql.Close() }

// migrate applies *.sql files from fsys in lexical order, skipping applied ones.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

/* ------------------------------ games ----------------------------------- */

// GameRecord is one finished interactive game.
type GameRecord struct {
	ID         string
	Length     int
	Pattern    string // '_' for unknown slots
	Guessed    string
	Wrong      int
	Status     string // session phase: won, lost, stuck, abandoned
	StartedAt  time.Time
	FinishedAt time.Time
}

// InsertGame stores a finished game. Re-inserting an ID is ignored.
func (d *DB) InsertGame(ctx context.Context, g GameRecord) error {
	_, err := d.sql.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, length, pattern, guessed, wrong, status, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Length, g.Pattern, g.Guessed, g.Wrong, g.Status,
		g.StartedAt.UTC().Format(time.RFC3339), g.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GameStats counts finished games by status.
type GameStats struct {
	Played   int            `json:"played"`
	Won      int            `json:"won"`
	ByStatus map[string]int `json:"byStatus"`
}

func (d *DB) GameStats(ctx context.Context) (GameStats, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT status, COUNT(1) FROM games GROUP BY status`)
	if err != nil {
		return GameStats{}, err
	}
	defer rows.Close()

	st := GameStats{ByStatus: map[string]int{}}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return GameStats{}, err
		}
		st.ByStatus[status] = n
		st.Played += n
		if strings.EqualFold(status, "won") {
			st.Won += n
		}
	}
	return st, rows.Err()
}

/* ---------------------------- bench runs -------------------------------- */

// BenchRun is one benchmark summary.
type BenchRun struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"` // dictionary label
	Total     int       `json:"total"`
	Wins      int       `json:"wins"`
	MaxWrong  int       `json:"maxWrong"`
	Workers   int       `json:"workers"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"` // populated by the DB
}

func (d *DB) InsertBenchRun(ctx context.Context, r BenchRun) error {
	_, err := d.sql.ExecContext(ctx, `
        INSERT INTO bench_runs (id, source, total, wins, max_wrong, workers, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Source, r.Total, r.Wins, r.MaxWrong, r.Workers, r.ElapsedMs,
	)
	return err
}

// RecentBenchRuns returns the newest runs first. Default limit is 20.
func (d *DB) RecentBenchRuns(ctx context.Context, limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.QueryContext(ctx, `
        SELECT id, source, total, wins, max_wrong, workers, elapsed_ms, created_at
        FROM bench_runs
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BenchRun, 0, limit)
	for rows.Next() {
		var (
			r       BenchRun
			created string
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Total, &r.Wins, &r.MaxWrong, &r.Workers, &r.ElapsedMs, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Package storage provides SQLite-based persistence for solved levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a level has no recorded solves.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for solve records.
type Store struct {
	db *sql.DB
}

// Solve is one recorded completion of a level.
type Solve struct {
	ID        int64
	Level     string
	Moves     int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			moves INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_best ON solves(level, moves, elapsed_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSolve records a completion of level. Returns the ID of the inserted record.
func (s *Store) SaveSolve(level string, moves int, elapsed time.Duration) (int64, error) {
	if level == "" {
		return 0, errors.New("storage: level name is empty")
	}

	result, err := s.db.Exec(
		"INSERT INTO solves (level, moves, elapsed_ms) VALUES (?, ?, ?)",
		level, moves, elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestSolves returns up to limit solves of level, fewest moves first and
// fastest first among equal move counts.
func (s *Store) BestSolves(level string, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, moves, elapsed_ms, created_at
		 FROM solves
		 WHERE level = ?
		 ORDER BY moves ASC, elapsed_ms ASC, id ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		solve, err := scanSolve(rows)
		if err != nil {
			return nil, err
		}
		solves = append(solves, solve)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return solves, nil
}

// Best returns the best solve of level, or ErrNotFound.
func (s *Store) Best(level string) (Solve, error) {
	solves, err := s.BestSolves(level, 1)
	if err != nil {
		return Solve{}, err
	}
	if len(solves) == 0 {
		return Solve{}, fmt.Errorf("%w: no solves for %q", ErrNotFound, level)
	}
	return solves[0], nil
}

// ClearSolves deletes all solves of level.
func (s *Store) ClearSolves(level string) error {
	if _, err := s.db.Exec("DELETE FROM solves WHERE level = ?", level); err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (Solve, error) {
	var solve Solve
	var elapsedMs int64
	var createdAt any
	if err := row.Scan(&solve.ID, &solve.Level, &solve.Moves, &elapsedMs, &createdAt); err != nil {
		return solve, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	solve.Elapsed = time.Duration(elapsedMs) * time.Millisecond

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		solve.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			solve.CreatedAt = parsed
		}
	}
	return solve, nil
}

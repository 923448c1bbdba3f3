// Package storage provides SQLite-based persistence for saved courses and
// best solves, keyed by level.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/levels/formats"
	"github.com/vovakirdan/trackrace/internal/track"
)

// Store manages the SQLite database connection for course persistence.
type Store struct {
	db *sql.DB
}

// SolveEntry is the best solve recorded for a level.
type SolveEntry struct {
	LevelKey  string
	Solve     levels.SolveData
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS courses (
			level_key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS solves (
			level_key TEXT PRIMARY KEY,
			tiles INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveCourse stores the course for a level, replacing any earlier one.
func (s *Store) SaveCourse(levelKey string, c track.Course) error {
	data, err := yaml.Marshal(formats.EncodeCourse(c))
	if err != nil {
		return fmt.Errorf("storage: cannot encode course: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO courses (level_key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		levelKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save course: %w", err)
	}
	return nil
}

// LoadCourse returns the saved course for a level. The bool is false when
// nothing was saved.
func (s *Store) LoadCourse(levelKey string) (track.Course, bool, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM courses WHERE level_key = ?", levelKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return track.Course{}, false, nil
	}
	if err != nil {
		return track.Course{}, false, fmt.Errorf("storage: cannot query course: %w", err)
	}

	var tiles []formats.YAMLTile
	if err := yaml.Unmarshal([]byte(data), &tiles); err != nil {
		return track.Course{}, false, fmt.Errorf("storage: cannot decode course: %w", err)
	}
	c, err := formats.DecodeCourse(tiles)
	if err != nil {
		return track.Course{}, false, fmt.Errorf("storage: cannot decode course: %w", err)
	}
	return c, true, nil
}

// DeleteCourse removes the saved course for a level.
func (s *Store) DeleteCourse(levelKey string) error {
	_, err := s.db.Exec("DELETE FROM courses WHERE level_key = ?", levelKey)
	if err != nil {
		return fmt.Errorf("storage: cannot delete course: %w", err)
	}
	return nil
}

// SaveSolve merges a solve into the best one recorded for the level and
// returns the result.
func (s *Store) SaveSolve(levelKey string, solve levels.SolveData) (levels.SolveData, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return solve, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	best := solve
	var prev levels.SolveData
	err = tx.QueryRow("SELECT tiles, turns FROM solves WHERE level_key = ?", levelKey).Scan(&prev.Tiles, &prev.Turns)
	switch {
	case err == nil:
		best = prev.Combine(solve)
	case !errors.Is(err, sql.ErrNoRows):
		return solve, fmt.Errorf("storage: cannot query solve: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO solves (level_key, tiles, turns, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_key) DO UPDATE SET tiles = excluded.tiles, turns = excluded.turns, updated_at = excluded.updated_at`,
		levelKey, best.Tiles, best.Turns,
	)
	if err != nil {
		return solve, fmt.Errorf("storage: cannot save solve: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return solve, fmt.Errorf("storage: cannot commit solve: %w", err)
	}
	return best, nil
}

// LoadSolve returns the best solve for a level. The bool is false when the
// level was never solved.
func (s *Store) LoadSolve(levelKey string) (levels.SolveData, bool, error) {
	var sd levels.SolveData
	err := s.db.QueryRow("SELECT tiles, turns FROM solves WHERE level_key = ?", levelKey).Scan(&sd.Tiles, &sd.Turns)
	if errors.Is(err, sql.ErrNoRows) {
		return sd, false, nil
	}
	if err != nil {
		return sd, false, fmt.Errorf("storage: cannot query solve: %w", err)
	}
	return sd, true, nil
}

// AllSolves returns every recorded solve ordered by level key.
func (s *Store) AllSolves() ([]SolveEntry, error) {
	rows, err := s.db.Query(
		`SELECT level_key, tiles, turns, updated_at
		 FROM solves
		 ORDER BY level_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var entries []SolveEntry
	for rows.Next() {
		var e SolveEntry
		var updatedAt any
		if err := rows.Scan(&e.LevelKey, &e.Solve.Tiles, &e.Solve.Turns, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			e.UpdatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.UpdatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearSolves removes every recorded solve.
func (s *Store) ClearSolves() error {
	_, err := s.db.Exec("DELETE FROM solves")
	if err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}

// Autosave returns a course change hook that saves into s. Failures are
// logged and otherwise ignored so editing never stops on a storage error.
func (s *Store) Autosave(levelKey string, logger *log.Logger) func(track.Course) {
	return func(c track.Course) {
		if err := s.SaveCourse(levelKey, c); err != nil {
			logger.Warn("autosave failed", "level", levelKey, "error", err)
		}
	}
}

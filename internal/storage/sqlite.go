// Package storage provides SQLite-based persistence for the word-of-day
// records and the leaderboard. Uses the pure-Go modernc.org/sqlite driver
// to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/pro-power/wordsurf/internal/wordofday"
)

// DefaultTopScores is the leaderboard size served when no limit is given.
const DefaultTopScores = 5

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LeaderboardEntry is a single persisted score record.
type LeaderboardEntry struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"-"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"-"`
}

// Open creates or opens a SQLite database at the given path. It creates the
// parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
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
		CREATE TABLE IF NOT EXISTS word_of_day (
			date TEXT PRIMARY KEY,
			word TEXT NOT NULL,
			bonus_word TEXT NOT NULL,
			definition TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(score DESC);
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

// WordOfDay returns the record for a date, or (nil, nil) when none exists.
func (s *Store) WordOfDay(ctx context.Context, date string) (*wordofday.Record, error) {
	var rec wordofday.Record
	err := s.db.QueryRowContext(ctx,
		`SELECT date, word, bonus_word, definition FROM word_of_day WHERE date = ?`,
		date,
	).Scan(&rec.Date, &rec.Word, &rec.BonusWord, &rec.Definition)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query word of day: %w", err)
	}
	return &rec, nil
}

// PutWordOfDay inserts a record for its date. The date is the primary key
// and the insert is OR IGNORE, so the first writer for a date wins and a
// concurrent second writer cannot create a duplicate.
func (s *Store) PutWordOfDay(ctx context.Context, rec wordofday.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO word_of_day (date, word, bonus_word, definition) VALUES (?, ?, ?, ?)`,
		rec.Date, rec.Word, rec.BonusWord, rec.Definition,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save word of day: %w", err)
	}
	return nil
}

// DeleteWordOfDay removes the record for a date. Test-support operation.
func (s *Store) DeleteWordOfDay(ctx context.Context, date string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM word_of_day WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("storage: cannot delete word of day: %w", err)
	}
	return nil
}

// SaveScore appends a leaderboard entry and returns its ID.
func (s *Store) SaveScore(ctx context.Context, name, email string, score int) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard (name, email, score) VALUES (?, ?, ?)`,
		name, email, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N leaderboard entries ordered by score
// descending, earliest submission first on ties.
func (s *Store) TopScores(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultTopScores
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, score, created_at
		 FROM leaderboard
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Ensure Store implements the provider's store contract.
var _ wordofday.Store = (*Store)(nil)

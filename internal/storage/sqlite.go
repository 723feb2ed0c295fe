// Package storage provides SQLite-based persistence for scores and stage clears.
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

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	Stage     int // Zero-based index of the stage the run ended on
	Kills     int
	CreatedAt time.Time
}

// StageClear records a stage completed during a run.
type StageClear struct {
	ID         int64
	GameID     string
	Player     string
	StageIndex int
	StageName  string
	Score      int // Run score after the clear bonus
	Ticks      int // Play ticks spent on the stage
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			stage INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS stage_clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			stage_index INTEGER NOT NULL,
			stage_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_stage_clears_game ON stage_clears(game_id, stage_name);
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

// SaveScore records a bare score for the given game.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.SaveRun(ScoreEntry{GameID: gameID, Score: score})
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score, stage, kills) VALUES (?, ?, ?, ?, ?)",
		e.GameID, e.Player, e.Score, e.Stage, e.Kills,
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

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, stage, kills, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Stage, &e.Kills, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores and stage clears for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM stage_clears WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear stage records: %w", err)
	}
	return nil
}

// RecordStageClear stores a completed stage.
func (s *Store) RecordStageClear(c StageClear) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO stage_clears (game_id, player, stage_index, stage_name, score, ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.GameID, c.Player, c.StageIndex, c.StageName, c.Score, c.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record stage clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// FastestClears returns the quickest clear of each stage for the given game,
// ordered by stage name.
func (s *Store) FastestClears(gameID string) ([]StageClear, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.game_id, c.player, c.stage_index, c.stage_name, c.score, c.ticks, c.created_at
		 FROM stage_clears c
		 WHERE c.game_id = ?
		   AND c.id = (
		     SELECT f.id FROM stage_clears f
		     WHERE f.game_id = c.game_id AND f.stage_name = c.stage_name
		     ORDER BY f.ticks ASC, f.id ASC
		     LIMIT 1
		   )
		 ORDER BY c.stage_name`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stage clears: %w", err)
	}
	defer rows.Close()

	var clears []StageClear
	for rows.Next() {
		var c StageClear
		var createdAt any
		if err := rows.Scan(&c.ID, &c.GameID, &c.Player, &c.StageIndex, &c.StageName, &c.Score, &c.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTimestamp(createdAt)
		clears = append(clears, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return clears, nil
}

// ErrNoClears is returned by BestClear when a stage has never been cleared.
var ErrNoClears = errors.New("storage: stage never cleared")

// BestClear returns the fastest clear of one stage.
func (s *Store) BestClear(gameID, stageName string) (StageClear, error) {
	var c StageClear
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, game_id, player, stage_index, stage_name, score, ticks, created_at
		 FROM stage_clears
		 WHERE game_id = ? AND stage_name = ?
		 ORDER BY ticks ASC, id ASC
		 LIMIT 1`,
		gameID, stageName,
	).Scan(&c.ID, &c.GameID, &c.Player, &c.StageIndex, &c.StageName, &c.Score, &c.Ticks, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StageClear{}, ErrNoClears
	}
	if err != nil {
		return StageClear{}, fmt.Errorf("storage: cannot query stage clear: %w", err)
	}
	c.CreatedAt = parseTimestamp(createdAt)
	return c, nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

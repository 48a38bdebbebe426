package settings

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store provides SQLite-backed persistence for player settings.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ Repository = (*Store)(nil)

// Open opens and migrates a settings SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("settings path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate settings: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the player's settings. Unknown players get Defaults.
func (s *Store) Load(ctx context.Context, player string) (Settings, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT difficulty, sound_enabled FROM settings WHERE player = ?`,
		player,
	)

	var difficulty string
	var sound int64
	if err := row.Scan(&difficulty, &sound); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("load settings: %w", err)
	}
	return parse(difficulty, sound != 0)
}

// Save upserts the player's settings and keeps the best score.
func (s *Store) Save(ctx context.Context, player string, st Settings) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO settings (player, difficulty, sound_enabled, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(player) DO UPDATE SET
		    difficulty = excluded.difficulty,
		    sound_enabled = excluded.sound_enabled,
		    updated_at = excluded.updated_at`,
		player, string(st.Difficulty), boolToInt(st.SoundEnabled), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// RecordScore stores score when it beats the player's best and returns the best.
func (s *Store) RecordScore(ctx context.Context, player string, score int) (int, error) {
	d := Defaults()
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO settings (player, difficulty, sound_enabled, best_score, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(player) DO UPDATE SET
		    best_score = MAX(best_score, excluded.best_score),
		    updated_at = excluded.updated_at`,
		player, string(d.Difficulty), boolToInt(d.SoundEnabled), score, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("record score: %w", err)
	}

	var best int
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT best_score FROM settings WHERE player = ?`, player,
	).Scan(&best); err != nil {
		return 0, fmt.Errorf("read best score: %w", err)
	}
	return best, nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

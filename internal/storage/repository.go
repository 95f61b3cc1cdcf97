// Package storage persists the habit collection in SQLite as a single
// serialized blob under a fixed key, per the load/save contract the core
// exposes to its storage collaborator.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"habits/internal/core"
	"habits/internal/state"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements state.Loader. An absent row or a payload that no longer
// parses yields the seed dataset instead of an error.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Habit, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM habit_state WHERE key = ?`, state.StateKey).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		slog.InfoContext(ctx, "No stored habit state, using seed dataset",
			"state_key", state.StateKey)
		return state.DefaultHabits(), nil
	case err != nil:
		return nil, fmt.Errorf("read habit state: %w", err)
	}

	habits := state.Decode([]byte(payload))
	slog.DebugContext(ctx, "Habit state loaded",
		"state_key", state.StateKey,
		"habit_count", len(habits))
	return habits, nil
}

// Save implements state.Saver by upserting the serialized collection.
func (r *SQLiteRepository) Save(ctx context.Context, habits []core.Habit) error {
	payload, err := state.Encode(habits)
	if err != nil {
		return fmt.Errorf("encode habit state: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO habit_state (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		state.StateKey, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save habit state: %w", err)
	}

	slog.DebugContext(ctx, "Habit state saved",
		"state_key", state.StateKey,
		"habit_count", len(habits))
	return nil
}

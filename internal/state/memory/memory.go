// Package memory implements the state ports with an in-memory collection,
// optionally mirrored to a JSON file for local development.
package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"habits/internal/core"
	"habits/internal/state"
)

type Store struct {
	mu     sync.Mutex
	path   string
	habits []core.Habit
}

// New returns a store seeded with the given habits.
func New(habits []core.Habit) *Store {
	return &Store{habits: core.Normalize(habits)}
}

// NewFromFile loads the habit collection from a JSON file. A missing or
// malformed file yields the seed dataset; subsequent saves are written back
// to the same path. An empty path keeps the store purely in memory.
func NewFromFile(path string) *Store {
	var payload []byte
	if path != "" {
		payload, _ = os.ReadFile(path)
	}
	return &Store{path: path, habits: state.Decode(payload)}
}

// Load returns a deep copy of the current collection.
func (s *Store) Load(_ context.Context) ([]core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.habits), nil
}

// Save replaces the collection and, when a path is configured, mirrors it
// to disk.
func (s *Store) Save(_ context.Context, habits []core.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits = cloneAll(habits)
	if s.path == "" {
		return nil
	}

	payload, err := state.Encode(s.habits)
	if err != nil {
		return fmt.Errorf("encode habit state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, payload, 0644); err != nil {
		return fmt.Errorf("write habit state: %w", err)
	}
	return nil
}

func cloneAll(habits []core.Habit) []core.Habit {
	out := make([]core.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, h.Clone())
	}
	return out
}

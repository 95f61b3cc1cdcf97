// Package services orchestrates habit state transitions: loading the
// collection, applying a pure transformation, and persisting the result.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"habits/internal/core"
	"habits/internal/state"
)

// HabitService serializes load-transform-save cycles over the habit store.
// All mutations go through the pure transformations in core.
type HabitService struct {
	store state.Store
	gen   core.Generator
	clock func() time.Time

	mu sync.Mutex

	// onChange is invoked after every successful save. Used by the HTTP
	// layer to invalidate rendered fragments.
	onChange func()
}

func NewHabitService(store state.Store, gen core.Generator) *HabitService {
	return &HabitService{
		store: store,
		gen:   gen,
		clock: time.Now,
	}
}

// SetOnChange registers a callback fired after each successful mutation.
func (s *HabitService) SetOnChange(fn func()) {
	s.onChange = fn
}

// List returns the current habit collection.
func (s *HabitService) List(ctx context.Context) ([]core.Habit, error) {
	habits, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	return habits, nil
}

// Create adds a new habit from a draft. An empty name leaves the
// collection unchanged without error.
func (s *HabitService) Create(ctx context.Context, draft core.Draft) error {
	return s.mutate(ctx, "create habit", func(habits []core.Habit) []core.Habit {
		return core.AddHabit(habits, draft, s.gen, s.clock())
	})
}

// Toggle flips completion of a habit for the given day.
func (s *HabitService) Toggle(ctx context.Context, habitID, dateID string) error {
	return s.mutate(ctx, "toggle completion", func(habits []core.Habit) []core.Habit {
		return core.ToggleCompletion(habits, habitID, dateID)
	})
}

// AddReminder attaches a reminder time to a habit.
func (s *HabitService) AddReminder(ctx context.Context, habitID, reminderTime string) error {
	return s.mutate(ctx, "add reminder", func(habits []core.Habit) []core.Habit {
		return core.AddReminder(habits, habitID, reminderTime)
	})
}

// RemoveReminder detaches a reminder time from a habit.
func (s *HabitService) RemoveReminder(ctx context.Context, habitID, reminderTime string) error {
	return s.mutate(ctx, "remove reminder", func(habits []core.Habit) []core.Habit {
		return core.RemoveReminder(habits, habitID, reminderTime)
	})
}

// Delete removes a habit from the collection.
func (s *HabitService) Delete(ctx context.Context, habitID string) error {
	return s.mutate(ctx, "delete habit", func(habits []core.Habit) []core.Habit {
		return core.DeleteHabit(habits, habitID)
	})
}

func (s *HabitService) mutate(ctx context.Context, op string, transform func([]core.Habit) []core.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: load habits: %w", op, err)
	}

	next := transform(habits)

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("%s: save habits: %w", op, err)
	}

	slog.DebugContext(ctx, "Habit state mutated",
		"operation", op,
		"habit_count", len(next))

	if s.onChange != nil {
		s.onChange()
	}
	return nil
}

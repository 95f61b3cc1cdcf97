package state

import (
	"encoding/json"
	"time"

	"habits/internal/core"
)

// StateKey is the fixed identifier the serialized habit collection is
// stored under, regardless of backend.
const StateKey = "habits.v1"

// DefaultHabits returns the deterministic seed dataset substituted whenever
// persisted state is absent or fails to parse. Fixed ids and timestamps keep
// the fallback reproducible across runs.
func DefaultHabits() []core.Habit {
	createdAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return []core.Habit{
		{
			ID:          "seed-read",
			Name:        "Read",
			Emoji:       "📚",
			Color:       "#6c8ebf",
			GoalPerWeek: 5,
			Reminders:   []string{"21:00"},
			Completions: []string{},
			CreatedAt:   createdAt,
		},
		{
			ID:          "seed-move",
			Name:        "Move",
			Emoji:       "🏃",
			Color:       "#82b366",
			GoalPerWeek: 3,
			Reminders:   []string{"07:30"},
			Completions: []string{},
			CreatedAt:   createdAt,
		},
		{
			ID:          "seed-water",
			Name:        "Drink water",
			Emoji:       "💧",
			Color:       "#9673a6",
			GoalPerWeek: 7,
			Reminders:   []string{},
			Completions: []string{},
			CreatedAt:   createdAt,
		},
	}
}

// Encode serializes the habit collection for storage.
func Encode(habits []core.Habit) ([]byte, error) {
	return json.Marshal(habits)
}

// Decode parses a serialized habit collection. Absent or malformed payloads
// fall back to the seed dataset instead of failing the caller; well-formed
// payloads are normalized back to the core's structural invariants.
func Decode(payload []byte) []core.Habit {
	if len(payload) == 0 {
		return DefaultHabits()
	}
	var habits []core.Habit
	if err := json.Unmarshal(payload, &habits); err != nil {
		return DefaultHabits()
	}
	if habits == nil {
		habits = []core.Habit{}
	}
	return core.Normalize(habits)
}

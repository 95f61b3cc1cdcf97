package core

import (
	"strings"
	"time"
)

// Generator supplies identity and display color for new habits. It is
// injected so AddHabit stays deterministic under test; production wiring
// uses a random implementation.
type Generator interface {
	NewID() string
	NewColor() string
}

// The transformations below are total pure functions over the habit
// collection: they return a fresh collection without aliasing the previous
// collection's mutable members, and malformed input (missing id, empty
// name, empty time) is absorbed as an identity return rather than an error.

// ToggleCompletion flips membership of dateID in the habit's completion set.
func ToggleCompletion(habits []Habit, habitID, dateID string) []Habit {
	return updateHabit(habits, habitID, func(h *Habit) {
		if h.CompletedOn(dateID) {
			out := h.Completions[:0:0]
			for _, d := range h.Completions {
				if d != dateID {
					out = append(out, d)
				}
			}
			h.Completions = out
			return
		}
		h.Completions = sortedUnique(append(h.Completions, dateID))
	})
}

// AddHabit constructs a new habit from the draft and prepends it. A draft
// whose trimmed name is empty leaves the collection unchanged. GoalPerWeek
// is clamped to a minimum of 1.
func AddHabit(habits []Habit, d Draft, gen Generator, now time.Time) []Habit {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return habits
	}
	goal := d.GoalPerWeek
	if goal < 1 {
		goal = 1
	}
	var reminders []string
	if t := strings.TrimSpace(d.Reminder); t != "" {
		reminders = []string{t}
	}
	h := Habit{
		ID:          gen.NewID(),
		Name:        name,
		Emoji:       d.Emoji,
		Color:       gen.NewColor(),
		GoalPerWeek: goal,
		Reminders:   reminders,
		Completions: []string{},
		CreatedAt:   now,
	}
	out := make([]Habit, 0, len(habits)+1)
	out = append(out, h)
	for _, existing := range habits {
		out = append(out, existing.Clone())
	}
	return out
}

// AddReminder inserts a reminder time into the habit's reminder set,
// deduplicating and re-sorting. An empty time is a no-op.
func AddReminder(habits []Habit, habitID, reminderTime string) []Habit {
	if strings.TrimSpace(reminderTime) == "" {
		return habits
	}
	return updateHabit(habits, habitID, func(h *Habit) {
		h.Reminders = sortedUnique(append(h.Reminders, reminderTime))
	})
}

// RemoveReminder drops a reminder time from the habit's reminder set.
func RemoveReminder(habits []Habit, habitID, reminderTime string) []Habit {
	return updateHabit(habits, habitID, func(h *Habit) {
		out := h.Reminders[:0:0]
		for _, t := range h.Reminders {
			if t != reminderTime {
				out = append(out, t)
			}
		}
		h.Reminders = out
	})
}

// DeleteHabit removes the habit with the given id; absent ids are a no-op.
// The caller owns clearing any pending selection that referenced the habit.
func DeleteHabit(habits []Habit, habitID string) []Habit {
	found := false
	for _, h := range habits {
		if h.ID == habitID {
			found = true
			break
		}
	}
	if !found {
		return habits
	}
	out := make([]Habit, 0, len(habits)-1)
	for _, h := range habits {
		if h.ID != habitID {
			out = append(out, h.Clone())
		}
	}
	return out
}

// updateHabit clones the collection and applies fn to the habit with the
// given id. Identity return when the id is not present.
func updateHabit(habits []Habit, habitID string, fn func(*Habit)) []Habit {
	found := false
	for _, h := range habits {
		if h.ID == habitID {
			found = true
			break
		}
	}
	if !found {
		return habits
	}
	out := make([]Habit, 0, len(habits))
	for _, h := range habits {
		c := h.Clone()
		if c.ID == habitID {
			fn(&c)
		}
		out = append(out, c)
	}
	return out
}

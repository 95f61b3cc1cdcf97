package core

import (
	"sort"
	"strings"
	"time"
)

type (
	// Habit is a tracked habit. Reminders and Completions are sets coerced
	// to sorted unique slices on every mutation; membership, not count, is
	// what matters for a completion date.
	Habit struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Emoji       string    `json:"emoji"`
		Color       string    `json:"color"`
		GoalPerWeek int       `json:"goalPerWeek"`
		Reminders   []string  `json:"reminders"`
		Completions []string  `json:"completions"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Draft carries the user-supplied fields for a habit about to be created.
	Draft struct {
		Name        string
		Emoji       string
		GoalPerWeek int
		Reminder    string
	}

	// ReminderAlert is the ephemeral record emitted when a reminder fires.
	// It snapshots the habit name so later renames do not rewrite history.
	ReminderAlert struct {
		HabitID   string    `json:"habitId"`
		HabitName string    `json:"habitName"`
		Time      string    `json:"time"`
		DateID    string    `json:"dateId"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

// Key returns the composite dedup key: at most one alert with a given key
// may be produced per calendar day.
func (a ReminderAlert) Key() string {
	return a.HabitID + "|" + a.Time + "|" + a.DateID
}

// Clone returns a deep copy of the habit, so callers can hand copies out
// without aliasing the slices of the stored collection.
func (h Habit) Clone() Habit {
	c := h
	c.Reminders = append([]string(nil), h.Reminders...)
	c.Completions = append([]string(nil), h.Completions...)
	return c
}

// CompletedOn reports whether the habit has a completion for the given date.
func (h Habit) CompletedOn(dateID string) bool {
	for _, d := range h.Completions {
		if d == dateID {
			return true
		}
	}
	return false
}

// Normalize coerces externally loaded habits back to the structural
// invariants the transformations maintain: sorted unique reminder and
// completion sets, completions restricted to valid date identifiers, and a
// goal of at least 1.
func Normalize(habits []Habit) []Habit {
	out := make([]Habit, 0, len(habits))
	for _, h := range habits {
		c := h.Clone()
		c.Reminders = sortedUnique(c.Reminders)
		dates := make([]string, 0, len(c.Completions))
		for _, d := range c.Completions {
			if _, err := time.Parse(dateLayout, strings.TrimSpace(d)); err == nil {
				dates = append(dates, strings.TrimSpace(d))
			}
		}
		c.Completions = sortedUnique(dates)
		if c.GoalPerWeek < 1 {
			c.GoalPerWeek = 1
		}
		out = append(out, c)
	}
	return out
}

// sortedUnique trims, drops empties and duplicates, and sorts ascending.
func sortedUnique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

package core

import (
	"sort"
	"time"
)

// CurrentStreak counts consecutive completed calendar days walking backward
// from asOf, stopping at the first missing day. A habit with no completion
// on asOf has a current streak of 0 regardless of earlier history.
func CurrentStreak(h Habit, asOf time.Time) int {
	if len(h.Completions) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(h.Completions))
	for _, d := range h.Completions {
		set[d] = struct{}{}
	}
	year, month, day := asOf.Date()
	cursor := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	streak := 0
	for {
		if _, ok := set[cursor.Format(dateLayout)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// LongestStreak finds the maximum run of calendar-consecutive dates in the
// completion set: sort descending, extend the run while the previous date is
// exactly one day after the current, reset otherwise. Entries that do not
// parse as dates are skipped.
func LongestStreak(h Habit) int {
	dates := make([]time.Time, 0, len(h.Completions))
	for _, d := range h.Completions {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].Equal(dates[i].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

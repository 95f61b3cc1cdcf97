package core

import "time"

// DayProgress is one day of the weekly completion overview.
type DayProgress struct {
	Day            string
	CompletedCount int
	Percentage     float64
}

// TodayCompletionRatio returns the fraction of habits completed on todayID,
// in [0,1]. An empty collection yields 0 rather than dividing by zero.
func TodayCompletionRatio(habits []Habit, todayID string) float64 {
	if len(habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range habits {
		if h.CompletedOn(todayID) {
			done++
		}
	}
	return float64(done) / float64(len(habits))
}

// WeeklyProgress computes per-day completion counts and fractions over the
// last 7 calendar days ending at asOf, oldest first.
func WeeklyProgress(habits []Habit, asOf time.Time) []DayProgress {
	days := RecentDays(7, asOf)
	out := make([]DayProgress, 0, len(days))
	for _, day := range days {
		count := 0
		for _, h := range habits {
			if h.CompletedOn(day) {
				count++
			}
		}
		pct := 0.0
		if len(habits) > 0 {
			pct = float64(count) / float64(len(habits))
		}
		out = append(out, DayProgress{Day: day, CompletedCount: count, Percentage: pct})
	}
	return out
}

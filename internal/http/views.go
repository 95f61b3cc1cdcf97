package http

import (
	"fmt"
	"time"

	"habits/internal/core"
)

// habitView is the template projection of a habit with its computed
// progress numbers.
type habitView struct {
	ID            string
	Name          string
	Emoji         string
	Color         string
	GoalPerWeek   int
	Reminders     []string
	NextReminder  string
	HasNext       bool
	DoneToday     bool
	CurrentStreak int
	LongestStreak int
	WeekCount     int
}

type indexView struct {
	Today      string
	TodayRatio string
	Habits     []habitView
	Week       []dayView
}

type dayView struct {
	Day     string
	Count   int
	Width   int
	IsToday bool
}

func buildHabitViews(habits []core.Habit, now time.Time) []habitView {
	todayID := core.DateKey(now)
	week := core.RecentDays(7, now)
	weekSet := make(map[string]struct{}, len(week))
	for _, d := range week {
		weekSet[d] = struct{}{}
	}

	views := make([]habitView, 0, len(habits))
	for _, h := range habits {
		weekCount := 0
		for _, d := range h.Completions {
			if _, ok := weekSet[d]; ok {
				weekCount++
			}
		}
		next, hasNext := core.NextReminder(h.Reminders, now)
		views = append(views, habitView{
			ID:            h.ID,
			Name:          h.Name,
			Emoji:         h.Emoji,
			Color:         h.Color,
			GoalPerWeek:   h.GoalPerWeek,
			Reminders:     h.Reminders,
			NextReminder:  next,
			HasNext:       hasNext,
			DoneToday:     h.CompletedOn(todayID),
			CurrentStreak: core.CurrentStreak(h, now),
			LongestStreak: core.LongestStreak(h),
			WeekCount:     weekCount,
		})
	}
	return views
}

func buildDayViews(progress []core.DayProgress, todayID string) []dayView {
	views := make([]dayView, 0, len(progress))
	for _, p := range progress {
		width := int(p.Percentage * 100)
		if width > 100 {
			width = 100
		}
		views = append(views, dayView{
			Day:     p.Day,
			Count:   p.CompletedCount,
			Width:   width,
			IsToday: p.Day == todayID,
		})
	}
	return views
}

func formatRatio(ratio float64) string {
	return fmt.Sprintf("%d%%", int(ratio*100+0.5))
}

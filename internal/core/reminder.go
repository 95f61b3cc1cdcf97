package core

import "time"

// fireWindowSeconds is the tolerance around a reminder's scheduled time.
// The evaluator assumes it is driven no coarser than once per minute, so a
// moment inside the window is seen at least once.
const fireWindowSeconds = 30

// Evaluator matches the current wall-clock time against all habits'
// reminder times and emits at most one alert per (habit, time) pair per
// calendar day. The dedup cache is owned by the evaluator and replaced
// wholesale when the calendar date rolls over; the driving cadence belongs
// to the caller. State is not persisted: losing it may re-fire a reminder
// that is still inside its window after a restart, which is acceptable.
type Evaluator struct {
	fired  map[string]struct{}
	dateID string
}

// NewEvaluator returns an evaluator with an empty dedup cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{fired: make(map[string]struct{})}
}

// Evaluate runs one evaluation pass at the given moment and returns the
// alerts newly emitted on this tick. Reminder times that do not parse as
// HH:MM are skipped and never block other habits or reminders.
func (e *Evaluator) Evaluate(now time.Time, habits []Habit) []ReminderAlert {
	dateID := DateKey(now)
	if dateID != e.dateID {
		e.fired = make(map[string]struct{})
		e.dateID = dateID
	}

	nowSec := now.Hour()*3600 + now.Minute()*60 + now.Second()
	var alerts []ReminderAlert
	for _, h := range habits {
		for _, t := range h.Reminders {
			target, ok := ParseClock(t)
			if !ok {
				continue
			}
			delta := nowSec - target
			if delta < 0 {
				delta = -delta
			}
			if delta > fireWindowSeconds {
				continue
			}
			alert := ReminderAlert{
				HabitID:   h.ID,
				HabitName: h.Name,
				Time:      t,
				DateID:    dateID,
				CreatedAt: now,
			}
			if _, done := e.fired[alert.Key()]; done {
				continue
			}
			e.fired[alert.Key()] = struct{}{}
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

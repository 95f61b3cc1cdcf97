package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"habits/internal/core"
	"habits/internal/state"
)

// AlertPublisher fans fired alerts out to an external surface. The runner
// works without one; alerts then only accumulate in the pending list.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert core.ReminderAlert) error
}

// ReminderRunner periodically evaluates reminders against the habit
// collection. Fired alerts are kept in a pending list until dismissed and
// forwarded to the publisher when one is configured.
type ReminderRunner struct {
	store     state.Loader
	publisher AlertPublisher
	interval  time.Duration

	mu        sync.Mutex
	evaluator *core.Evaluator
	pending   []core.ReminderAlert
}

func NewReminderRunner(store state.Loader, publisher AlertPublisher, interval time.Duration) *ReminderRunner {
	return &ReminderRunner{
		store:     store,
		publisher: publisher,
		interval:  interval,
		evaluator: core.NewEvaluator(),
	}
}

// Tick runs one evaluation pass at the given instant and returns the
// alerts that fired during it.
func (r *ReminderRunner) Tick(ctx context.Context, now time.Time) ([]core.ReminderAlert, error) {
	habits, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	alerts := r.evaluator.Evaluate(now, habits)
	r.pending = append(r.pending, alerts...)
	r.mu.Unlock()

	for _, alert := range alerts {
		slog.InfoContext(ctx, "Reminder fired",
			"habit_id", alert.HabitID,
			"habit_name", alert.HabitName,
			"reminder_time", alert.Time,
			"date_id", alert.DateID)
		r.publish(ctx, alert)
	}
	return alerts, nil
}

func (r *ReminderRunner) publish(ctx context.Context, alert core.ReminderAlert) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishAlert(ctx, alert); err != nil {
		// Publish failures never lose the alert, it stays pending.
		slog.ErrorContext(ctx, "Failed to publish alert",
			"habit_id", alert.HabitID,
			"reminder_time", alert.Time,
			"error", err)
	}
}

// Pending returns a copy of the alerts not yet dismissed, newest last.
func (r *ReminderRunner) Pending() []core.ReminderAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.ReminderAlert, len(r.pending))
	copy(out, r.pending)
	return out
}

// Dismiss removes a pending alert by its composite key. It reports
// whether an alert was removed.
func (r *ReminderRunner) Dismiss(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, alert := range r.pending {
		if alert.Key() == key {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Run evaluates reminders on a fixed interval until the context is
// cancelled.
func (r *ReminderRunner) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Reminder loop started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Reminder loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case now := <-ticker.C:
			if _, err := r.Tick(ctx, now); err != nil {
				slog.ErrorContext(ctx, "Reminder evaluation failed", "error", err)
			}
		}
	}
}

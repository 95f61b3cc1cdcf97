package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"habits/internal/core"
	"habits/internal/state/memory"
)

type recordingPublisher struct {
	alerts []core.ReminderAlert
	err    error
}

func (p *recordingPublisher) PublishAlert(_ context.Context, alert core.ReminderAlert) error {
	if p.err != nil {
		return p.err
	}
	p.alerts = append(p.alerts, alert)
	return nil
}

func reminderHabits() []core.Habit {
	return []core.Habit{
		{ID: "h1", Name: "Read", GoalPerWeek: 5, Reminders: []string{"07:00"}},
	}
}

func TestTickFiresWithinWindow(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	runner := NewReminderRunner(memory.New(reminderHabits()), pub, 15*time.Second)

	now := time.Date(2026, 8, 25, 7, 0, 10, 0, time.UTC)
	alerts, err := runner.Tick(ctx, now)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].HabitID != "h1" || alerts[0].Time != "07:00" || alerts[0].DateID != "2026-08-25" {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}

	if len(pub.alerts) != 1 {
		t.Fatalf("expected 1 published alert, got %d", len(pub.alerts))
	}
	if got := runner.Pending(); len(got) != 1 {
		t.Fatalf("expected 1 pending alert, got %d", len(got))
	}
}

func TestTickDedupesAcrossTicks(t *testing.T) {
	ctx := context.Background()
	runner := NewReminderRunner(memory.New(reminderHabits()), nil, 15*time.Second)

	base := time.Date(2026, 8, 25, 7, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, 15 * time.Second, 29 * time.Second} {
		if _, err := runner.Tick(ctx, base.Add(offset)); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	if got := runner.Pending(); len(got) != 1 {
		t.Fatalf("expected 1 pending alert after repeated ticks, got %d", len(got))
	}
}

func TestTickRefiresNextDay(t *testing.T) {
	ctx := context.Background()
	runner := NewReminderRunner(memory.New(reminderHabits()), nil, 15*time.Second)

	day1 := time.Date(2026, 8, 25, 7, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	runner.Tick(ctx, day1)
	runner.Tick(ctx, day2)

	pending := runner.Pending()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending alerts across days, got %d", len(pending))
	}
	if pending[0].DateID == pending[1].DateID {
		t.Error("alerts should carry distinct date ids")
	}
}

func TestPublisherFailureKeepsAlertPending(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("broker down")}
	runner := NewReminderRunner(memory.New(reminderHabits()), pub, 15*time.Second)

	now := time.Date(2026, 8, 25, 7, 0, 0, 0, time.UTC)
	alerts, err := runner.Tick(ctx, now)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected alert despite publish failure, got %d", len(alerts))
	}
	if got := runner.Pending(); len(got) != 1 {
		t.Fatalf("expected alert to stay pending, got %d", len(got))
	}
}

func TestDismiss(t *testing.T) {
	ctx := context.Background()
	runner := NewReminderRunner(memory.New(reminderHabits()), nil, 15*time.Second)

	now := time.Date(2026, 8, 25, 7, 0, 0, 0, time.UTC)
	alerts, _ := runner.Tick(ctx, now)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}

	if !runner.Dismiss(alerts[0].Key()) {
		t.Fatal("Dismiss returned false for pending alert")
	}
	if got := runner.Pending(); len(got) != 0 {
		t.Fatalf("expected no pending alerts after dismiss, got %d", len(got))
	}
	if runner.Dismiss(alerts[0].Key()) {
		t.Error("Dismiss should return false for unknown key")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	runner := NewReminderRunner(memory.New(nil), nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

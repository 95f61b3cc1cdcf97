package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"habits/internal/core"
	"habits/internal/state/memory"
)

type seqGen struct{ n int }

func (g *seqGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func (g *seqGen) NewColor() string { return "#4f7cac" }

func newTestService(t *testing.T, habits []core.Habit) *HabitService {
	t.Helper()
	store := memory.New(habits)
	return NewHabitService(store, &seqGen{})
}

func TestCreateAddsHabit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	if err := svc.Create(ctx, core.Draft{Name: "Read", GoalPerWeek: 5}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	habits, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	if habits[0].Name != "Read" {
		t.Errorf("name = %q, want %q", habits[0].Name, "Read")
	}
	if habits[0].GoalPerWeek != 5 {
		t.Errorf("goal = %d, want 5", habits[0].GoalPerWeek)
	}
}

func TestCreateEmptyNameIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	if err := svc.Create(ctx, core.Draft{Name: "   "}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	habits, _ := svc.List(ctx)
	if len(habits) != 0 {
		t.Fatalf("expected no habits, got %d", len(habits))
	}
}

func TestTogglePersists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, []core.Habit{{ID: "h1", Name: "Move", GoalPerWeek: 3}})

	if err := svc.Toggle(ctx, "h1", "2026-08-25"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	habits, _ := svc.List(ctx)
	if !habits[0].CompletedOn("2026-08-25") {
		t.Error("completion not persisted")
	}

	if err := svc.Toggle(ctx, "h1", "2026-08-25"); err != nil {
		t.Fatalf("second Toggle failed: %v", err)
	}
	habits, _ = svc.List(ctx)
	if habits[0].CompletedOn("2026-08-25") {
		t.Error("double toggle should clear completion")
	}
}

func TestReminderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, []core.Habit{{ID: "h1", Name: "Water", GoalPerWeek: 7}})

	if err := svc.AddReminder(ctx, "h1", "08:00"); err != nil {
		t.Fatalf("AddReminder failed: %v", err)
	}
	habits, _ := svc.List(ctx)
	if len(habits[0].Reminders) != 1 || habits[0].Reminders[0] != "08:00" {
		t.Fatalf("reminders = %v, want [08:00]", habits[0].Reminders)
	}

	if err := svc.RemoveReminder(ctx, "h1", "08:00"); err != nil {
		t.Fatalf("RemoveReminder failed: %v", err)
	}
	habits, _ = svc.List(ctx)
	if len(habits[0].Reminders) != 0 {
		t.Fatalf("reminders = %v, want empty", habits[0].Reminders)
	}
}

func TestDeleteRemovesHabit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, []core.Habit{
		{ID: "h1", Name: "A", GoalPerWeek: 1},
		{ID: "h2", Name: "B", GoalPerWeek: 1},
	})

	if err := svc.Delete(ctx, "h1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	habits, _ := svc.List(ctx)
	if len(habits) != 1 || habits[0].ID != "h2" {
		t.Fatalf("unexpected habits after delete: %+v", habits)
	}
}

func TestOnChangeFiresAfterMutation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, []core.Habit{{ID: "h1", Name: "A", GoalPerWeek: 1}})

	calls := 0
	svc.SetOnChange(func() { calls++ })

	if err := svc.Toggle(ctx, "h1", "2026-08-25"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("onChange calls = %d, want 1", calls)
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context) ([]core.Habit, error) {
	return nil, errors.New("backend down")
}

func (failingStore) Save(context.Context, []core.Habit) error {
	return errors.New("backend down")
}

func TestMutateWrapsStoreErrors(t *testing.T) {
	svc := NewHabitService(failingStore{}, &seqGen{})
	err := svc.Toggle(context.Background(), "h1", "2026-08-25")
	if err == nil {
		t.Fatal("expected error from failing store")
	}
}

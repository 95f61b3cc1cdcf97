package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"habits/internal/amqp"
)

func alertMsg(i int) *amqp.AlertMessage {
	return &amqp.AlertMessage{
		HabitID:   fmt.Sprintf("h%d", i),
		HabitName: "Read",
		Time:      "07:00",
		DateID:    "2026-08-25",
		CreatedAt: time.Now(),
	}
}

func TestHandleAlertRecordsHistory(t *testing.T) {
	ctx := context.Background()
	n := NewNotifier(10)

	for i := 0; i < 3; i++ {
		if err := n.HandleAlert(ctx, alertMsg(i)); err != nil {
			t.Fatalf("HandleAlert failed: %v", err)
		}
	}

	if got := n.Handled(); got != 3 {
		t.Errorf("Handled = %d, want 3", got)
	}
	history := n.History()
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].HabitID != "h0" || history[2].HabitID != "h2" {
		t.Errorf("history not oldest first: %+v", history)
	}
}

func TestHandleAlertBoundsHistory(t *testing.T) {
	ctx := context.Background()
	n := NewNotifier(5)

	for i := 0; i < 12; i++ {
		if err := n.HandleAlert(ctx, alertMsg(i)); err != nil {
			t.Fatalf("HandleAlert failed: %v", err)
		}
	}

	history := n.History()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	if history[0].HabitID != "h7" {
		t.Errorf("oldest retained = %q, want h7", history[0].HabitID)
	}
	if got := n.Handled(); got != 12 {
		t.Errorf("Handled = %d, want 12", got)
	}
}

func TestHandleAlertRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	n := NewNotifier(10)

	msg := &amqp.AlertMessage{HabitName: "Read"}
	if err := n.HandleAlert(ctx, msg); err == nil {
		t.Fatal("expected error for incomplete message")
	}
	if got := n.Handled(); got != 0 {
		t.Errorf("Handled = %d, want 0", got)
	}
}

// Package worker handles reminder alerts delivered over AMQP. The notifier
// is the consuming side of the alert fan-out: it records each alert and
// keeps a bounded history for inspection.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"habits/internal/amqp"
)

const defaultHistoryLimit = 200

// Notifier processes reminder alert messages from the queue.
type Notifier struct {
	historyLimit int

	mu      sync.Mutex
	history []amqp.AlertMessage
	handled int
}

func NewNotifier(historyLimit int) *Notifier {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Notifier{historyLimit: historyLimit}
}

// HandleAlert processes a single alert message. It validates the payload,
// logs the notification, and appends it to the bounded history.
func (n *Notifier) HandleAlert(ctx context.Context, msg *amqp.AlertMessage) error {
	if msg.HabitID == "" || msg.Time == "" || msg.DateID == "" {
		return fmt.Errorf("incomplete alert message: habit_id=%q time=%q date_id=%q",
			msg.HabitID, msg.Time, msg.DateID)
	}

	n.mu.Lock()
	n.history = append(n.history, *msg)
	if len(n.history) > n.historyLimit {
		n.history = n.history[len(n.history)-n.historyLimit:]
	}
	n.handled++
	handled := n.handled
	n.mu.Unlock()

	slog.InfoContext(ctx, "Reminder notification",
		"habit_id", msg.HabitID,
		"habit_name", msg.HabitName,
		"reminder_time", msg.Time,
		"date_id", msg.DateID,
		"latency", time.Since(msg.CreatedAt).Round(time.Millisecond),
		"handled_total", handled)

	return nil
}

// History returns a copy of the retained alerts, oldest first.
func (n *Notifier) History() []amqp.AlertMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]amqp.AlertMessage, len(n.history))
	copy(out, n.history)
	return out
}

// Handled returns the total number of alerts processed since startup.
func (n *Notifier) Handled() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.handled
}

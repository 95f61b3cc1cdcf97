package amqp

import (
	"encoding/json"
	"time"

	"habits/internal/core"
)

// AlertMessage is the wire form of a fired reminder alert. It carries the
// full display snapshot so consumers never need to read habit state.
type AlertMessage struct {
	HabitID   string    `json:"habit_id"`
	HabitName string    `json:"habit_name"`
	Time      string    `json:"time"`
	DateID    string    `json:"date_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAlertMessage converts a core alert record to its wire form.
func NewAlertMessage(a core.ReminderAlert) *AlertMessage {
	return &AlertMessage{
		HabitID:   a.HabitID,
		HabitName: a.HabitName,
		Time:      a.Time,
		DateID:    a.DateID,
		CreatedAt: a.CreatedAt,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AlertMessageFromJSON creates a message from JSON bytes.
func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

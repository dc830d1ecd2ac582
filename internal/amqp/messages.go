package amqp

import (
	"encoding/json"
	"time"
)

// Expense change event kinds carried on the retrain queue.
const (
	EventCreated = "created"
	EventDeleted = "deleted"
	EventCleared = "cleared"
	EventSeeded  = "seeded"
)

// ExpenseEventMessage tells the retrain worker that the expense history
// changed. It carries only the event kind and the affected id (when there is
// one); the worker re-reads the store itself.
type ExpenseEventMessage struct {
	Event     string    `json:"event"`
	ID        int64     `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage creates an event message stamped with the current
// time.
func NewExpenseEventMessage(event string, id int64) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Event:     event,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON decodes a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

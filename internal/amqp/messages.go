package amqp

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"worklog/internal/ports"
)

// EntryChangedMessage announces that a work entry was created, edited, paid or
// deleted. It carries only the month bucket; the worker reloads the data itself.
type EntryChangedMessage struct {
	MessageID string            `json:"message_id"`
	ID        int64             `json:"id"`
	Action    ports.EntryAction `json:"action"`
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	Timestamp time.Time         `json:"timestamp"`
}

func NewEntryChangedMessage(ev ports.EntryEvent) *EntryChangedMessage {
	return &EntryChangedMessage{
		MessageID: uuid.NewString(),
		ID:        ev.ID,
		Action:    ev.Action,
		Year:      ev.Year,
		Month:     ev.Month,
		Timestamp: time.Now(),
	}
}

// Event converts the message back into the domain event.
func (m *EntryChangedMessage) Event() ports.EntryEvent {
	return ports.EntryEvent{ID: m.ID, Action: m.Action, Year: m.Year, Month: m.Month}
}

func (m *EntryChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntryChangedMessageFromJSON decodes and sanity-checks a message body.
func EntryChangedMessageFromJSON(data []byte) (*EntryChangedMessage, error) {
	var msg EntryChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Month < 1 || msg.Month > 12 {
		return nil, fmt.Errorf("invalid month %d", msg.Month)
	}
	return &msg, nil
}

package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotStarted is returned when the server has no client connection yet.
var ErrNotStarted = errors.New("nats server not started")

// Publisher sends raw data on a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the envelope published for everything a session does.
type Event struct {
	Session string    `json:"session"`
	Name    string    `json:"name"`
	Time    time.Time `json:"time"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
}

// Subject is the subject a session's events are published on.
func Subject(sessionID string) string {
	return fmt.Sprintf("questkeep.%s.events", sessionID)
}

// EventPublisher encodes events as JSON and publishes them on the session's
// subject.
type EventPublisher struct {
	pub Publisher
	now func() time.Time
}

func NewEventPublisher(pub Publisher) *EventPublisher {
	return &EventPublisher{pub: pub, now: time.Now}
}

// PublishEvent stamps ev when it has no time and publishes it. Events raised
// before the server is up have no listeners and are dropped.
func (p *EventPublisher) PublishEvent(ev Event) error {
	if ev.Time.IsZero() {
		ev.Time = p.now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event %s: %w", ev.Name, err)
	}

	err = p.pub.Publish(Subject(ev.Session), data)
	if errors.Is(err, ErrNotStarted) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("publishing event %s: %w", ev.Name, err)
	}
	return nil
}

// DecodeEvent parses a published envelope. Data is left as generic JSON.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("unmarshalling event: %w", err)
	}
	return ev, nil
}

package events

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gp-assess/platform/internal/shared/types"
)

// Event types published by the session module.
const (
	TypeSessionCreated   = "session.created"
	TypeFieldUpdated     = "session.field_updated"
	TypeDocumentExported = "session.document_exported"
	TypeSessionCleared   = "session.cleared"
)

// Event represents a domain event
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`

	// Subject information
	SessionID  types.ID `json:"session_id,omitempty"`
	Assessment string   `json:"assessment,omitempty"`

	// Event data. Field keys and export formats only; field values are
	// patient data and never travel on the bus.
	Data map[string]string `json:"data,omitempty"`
}

// NewEvent creates a new event with auto-generated ID and timestamp
func NewEvent(eventType, source string, data map[string]string) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// WithSession sets the subject session on the event
func (e Event) WithSession(sessionID types.ID, assessment string) Event {
	e.SessionID = sessionID
	e.Assessment = assessment
	return e
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus provides in-process event publishing and subscription. Dispatch is
// synchronous on the publisher's goroutine; handler errors are logged and
// never fail the publishing operation.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

// NewBus creates a new in-process event bus
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]Handler)}
}

// Subscribe registers a handler for an event type. A type ending in "*"
// matches by prefix, e.g. "session.*".
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventType] = append(b.subs[eventType], h)
}

// Publish dispatches an event to all matching subscribers
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	var matched []Handler
	for pattern, handlers := range b.subs {
		if matches(pattern, event.Type) {
			matched = append(matched, handlers...)
		}
	}
	b.mu.RUnlock()

	for _, h := range matched {
		if err := h(ctx, event); err != nil {
			log.Printf("event handler failed for %s: %v", event.Type, err)
		}
	}
}

func matches(pattern, eventType string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(eventType, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == eventType
}

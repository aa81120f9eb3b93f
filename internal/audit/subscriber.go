package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/gp-assess/platform/internal/shared/events"
	"github.com/gp-assess/platform/internal/shared/types"
)

// Subscriber turns session events into audit entries
type Subscriber struct {
	repo *Repository
	bus  *events.Bus
}

// NewSubscriber creates a new audit subscriber
func NewSubscriber(repo *Repository, bus *events.Bus) *Subscriber {
	return &Subscriber{repo: repo, bus: bus}
}

// Start subscribes to all session events
func (s *Subscriber) Start() {
	s.bus.Subscribe("session.*", s.handleEvent)
}

func (s *Subscriber) handleEvent(ctx context.Context, event events.Event) error {
	entry := entryFromEvent(event)
	if entry == nil {
		return nil
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// entryFromEvent maps an event onto an entry. Event data carries field
// keys and export formats only, so copying from it never leaks a value.
func entryFromEvent(event events.Event) *Entry {
	if event.SessionID.IsZero() {
		return nil
	}

	entry := &Entry{
		ID:         types.NewID(),
		SessionID:  event.SessionID,
		Assessment: event.Assessment,
		Action:     event.Type,
		CreatedAt:  event.Timestamp.UTC().Truncate(time.Microsecond),
	}

	switch event.Type {
	case events.TypeFieldUpdated:
		entry.FieldKey = event.Data["field_key"]
	case events.TypeDocumentExported:
		entry.Detail = event.Data["format"]
	}

	return entry
}

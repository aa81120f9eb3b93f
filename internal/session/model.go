package session

import (
	"time"

	"github.com/gp-assess/platform/internal/forms"
	"github.com/gp-assess/platform/internal/shared/types"
)

// CurrentSchemaVersion is stamped on new sessions. Bump it when a field
// key changes meaning so stale saved sessions can be detected on load.
const CurrentSchemaVersion = 1

// Session is one in-progress assessment form. State holds every field
// the practitioner has touched; Generated holds the last generated block
// per rule target, which the merge step needs to tell generated text
// apart from practitioner edits on the next regeneration.
type Session struct {
	ID            types.ID          `json:"id"`
	Assessment    string            `json:"assessment"`
	SchemaVersion int               `json:"schema_version"`
	State         forms.FormState   `json:"state"`
	Generated     map[string]string `json:"generated"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// New creates an empty session for the given assessment
func New(assessment string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            types.NewID(),
		Assessment:    assessment,
		SchemaVersion: CurrentSchemaVersion,
		State:         forms.New(),
		Generated:     make(map[string]string),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Summary is the list representation: identity and progress, no field
// values.
type Summary struct {
	ID            types.ID  `json:"id"`
	Assessment    string    `json:"assessment"`
	SchemaVersion int       `json:"schema_version"`
	FieldCount    int       `json:"field_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Summarize strips field values for listing
func (s *Session) Summarize() Summary {
	return Summary{
		ID:            s.ID,
		Assessment:    s.Assessment,
		SchemaVersion: s.SchemaVersion,
		FieldCount:    len(s.State),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

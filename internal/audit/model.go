package audit

import (
	"time"

	"github.com/gp-assess/platform/internal/shared/types"
)

// Entry is one row of the activity trail. It records which field was
// touched, never what was typed into it; field values are patient data
// and stay out of the log.
type Entry struct {
	ID         types.ID  `json:"id"`
	SessionID  types.ID  `json:"session_id"`
	Assessment string    `json:"assessment"`
	Action     string    `json:"action"`
	FieldKey   string    `json:"field_key,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gp-assess/platform/internal/forms"
	"github.com/gp-assess/platform/internal/shared/errors"
	"github.com/gp-assess/platform/internal/shared/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides database operations for sessions. The whole form
// state travels as one JSONB blob per write; there is no per-field SQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new session repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save upserts the session. Last write wins; the suite is single-user
// per session so there is no concurrent-editor protocol.
func (r *Repository) Save(ctx context.Context, s *Session) error {
	stateJSON, err := json.Marshal(s.State)
	if err != nil {
		return errors.Wrap(err, "failed to encode session state")
	}
	generatedJSON, err := json.Marshal(s.Generated)
	if err != nil {
		return errors.Wrap(err, "failed to encode generated blocks")
	}

	query := `
		INSERT INTO assessment.sessions (
			id, assessment, schema_version, state, generated, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			generated = EXCLUDED.generated,
			updated_at = EXCLUDED.updated_at`

	s.UpdatedAt = time.Now().UTC()
	_, err = r.pool.Exec(ctx, query,
		s.ID, s.Assessment, s.SchemaVersion, stateJSON, generatedJSON,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// Get retrieves a session by ID
func (r *Repository) Get(ctx context.Context, id types.ID) (*Session, error) {
	query := `
		SELECT id, assessment, schema_version, state, generated, created_at, updated_at
		FROM assessment.sessions
		WHERE id = $1`

	return r.scanSession(r.pool.QueryRow(ctx, query, id), id.String())
}

// GetByAssessment retrieves the most recently updated session for an
// assessment, used to offer restore-or-discard when a form is reopened.
func (r *Repository) GetByAssessment(ctx context.Context, assessment string) (*Session, error) {
	query := `
		SELECT id, assessment, schema_version, state, generated, created_at, updated_at
		FROM assessment.sessions
		WHERE assessment = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	return r.scanSession(r.pool.QueryRow(ctx, query, assessment), assessment)
}

// List returns summaries of all sessions, newest first, optionally
// filtered to one assessment type
func (r *Repository) List(ctx context.Context, assessment string) ([]Summary, error) {
	query := `
		SELECT id, assessment, schema_version, state, created_at, updated_at
		FROM assessment.sessions
		WHERE $1 = '' OR assessment = $1
		ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, assessment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sum Summary
		var stateJSON []byte
		if err := rows.Scan(&sum.ID, &sum.Assessment, &sum.SchemaVersion,
			&stateJSON, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan session summary")
		}
		sum.FieldCount = len(decodeState(stateJSON, sum.ID.String()))
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Delete removes a session
func (r *Repository) Delete(ctx context.Context, id types.ID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM assessment.sessions WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	if result.RowsAffected() == 0 {
		return errors.NotFound("session", id.String())
	}

	return nil
}

func (r *Repository) scanSession(row pgx.Row, ref string) (*Session, error) {
	s := &Session{}
	var stateJSON, generatedJSON []byte

	err := row.Scan(&s.ID, &s.Assessment, &s.SchemaVersion,
		&stateJSON, &generatedJSON, &s.CreatedAt, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("session", ref)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}

	s.State = decodeState(stateJSON, s.ID.String())
	s.Generated = decodeGenerated(generatedJSON, s.ID.String())

	return s, nil
}

// decodeState tolerates a corrupt blob: the session loads empty rather
// than failing, so the practitioner can start over instead of being
// locked out.
func decodeState(data []byte, id string) forms.FormState {
	state := forms.New()
	if len(data) == 0 {
		return state
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("session %s: corrupt state blob discarded: %v", id, err)
		return state
	}
	for key, value := range raw {
		state.Set(key, value)
	}
	return state
}

func decodeGenerated(data []byte, id string) map[string]string {
	generated := make(map[string]string)
	if len(data) == 0 {
		return generated
	}
	if err := json.Unmarshal(data, &generated); err != nil {
		log.Printf("session %s: corrupt generated blob discarded: %v", id, err)
		return make(map[string]string)
	}
	return generated
}

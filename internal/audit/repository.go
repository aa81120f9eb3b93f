package audit

import (
	"context"

	"github.com/gp-assess/platform/internal/shared/errors"
	"github.com/gp-assess/platform/internal/shared/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides append and read access to the audit log
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Append writes one entry. The log is append-only; there is no update
// or delete path.
func (r *Repository) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO assessment.audit_log (
			id, session_id, assessment, action, field_key, detail, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.SessionID, entry.Assessment,
		entry.Action, entry.FieldKey, entry.Detail, entry.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to append audit entry")
	}

	return nil
}

// ListBySession returns a session's trail, oldest first
func (r *Repository) ListBySession(ctx context.Context, sessionID types.ID) ([]Entry, error) {
	query := `
		SELECT id, session_id, assessment, action, field_key, detail, created_at
		FROM assessment.audit_log
		WHERE session_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list audit entries")
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Assessment,
			&e.Action, &e.FieldKey, &e.Detail, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan audit entry")
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

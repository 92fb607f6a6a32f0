package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/okandemirel/sales-analyst/internal/domain/analysis"
)

type ResponseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Save inserts one log entry. Entries are never updated or deleted.
func (r *ResponseRepository) Save(ctx context.Context, e *domain.LogEntry) error {
	const q = `
INSERT INTO responses
  (id, session_id, user_prompt, response, model, duration_ms, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);
`
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, e.ID, e.SessionID, e.Prompt, e.Response, e.Model, e.DurationMS, createdAt)
	return err
}

// Recent returns the last limit entries ordered by created_at desc.
func (r *ResponseRepository) Recent(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	const q = `
SELECT id, session_id, user_prompt, response, model, duration_ms, created_at
FROM responses
ORDER BY created_at DESC, id DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		var created time.Time
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Prompt, &e.Response, &e.Model, &e.DurationMS, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = created
		out = append(out, &e)
	}
	return out, rows.Err()
}

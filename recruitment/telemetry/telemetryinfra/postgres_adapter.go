package telemetryinfra

import (
	"context"
	"fmt"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/txx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
	"github.com/jmoiron/sqlx"
)

// PostgresEventRepository stores audit events in ab_test_events
type PostgresEventRepository struct {
	db *sqlx.DB
}

func NewPostgresEventRepository(db *sqlx.DB) *PostgresEventRepository {
	return &PostgresEventRepository{
		db: db,
	}
}

// Save inserts the event; a redelivered event is ignored
func (r *PostgresEventRepository) Save(ctx context.Context, event telemetry.Event) error {
	query := `
		INSERT INTO ab_test_events (id, session_id, variant, event_type, occurred_at)
		VALUES (:id, :session_id, :variant, :event_type, :occurred_at)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := sqlx.NamedExecContext(ctx, txx.Ext(ctx, r.db), query, event); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// ListBySession returns a session's events, oldest first
func (r *PostgresEventRepository) ListBySession(ctx context.Context, session kernel.SessionID) ([]telemetry.Event, error) {
	query := `
		SELECT id, session_id, variant, event_type, occurred_at
		FROM ab_test_events
		WHERE session_id = $1
		ORDER BY occurred_at, id
	`

	events := make([]telemetry.Event, 0)
	if err := sqlx.SelectContext(ctx, txx.Ext(ctx, r.db), &events, query, session.String()); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

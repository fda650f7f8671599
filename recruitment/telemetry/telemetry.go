package telemetry

import (
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

// Event is one A/B testing audit record
type Event struct {
	ID          kernel.EventID   `db:"id" json:"id"`
	SessionID   kernel.SessionID `db:"session_id" json:"session_id"`
	Variant     string           `db:"variant" json:"variant"`
	Description string           `db:"event_type" json:"event_type"`
	OccurredAt  time.Time        `db:"occurred_at" json:"occurred_at"`
}

func NewEvent(session kernel.SessionID, variant, description string) Event {
	return Event{
		ID:          kernel.NewEventID(),
		SessionID:   session,
		Variant:     variant,
		Description: description,
		OccurredAt:  time.Now(),
	}
}

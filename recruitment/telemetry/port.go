package telemetry

import (
	"context"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
)

// Recorder accepts audit events. Callers treat failures as non-fatal.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// Queue buffers events between the request path and the storage worker
type Queue interface {
	Enqueue(ctx context.Context, event Event) error

	// Dequeue blocks up to timeout; it returns nil data when nothing arrived
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a retry
	EnqueueDelayed(ctx context.Context, event Event, delay time.Duration) error

	// MoveDelayedToReady moves due retries to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}

type Repository interface {
	// Save stores an event. Saving the same event id twice is a no-op.
	Save(ctx context.Context, event Event) error

	// ListBySession returns a session's events, oldest first
	ListBySession(ctx context.Context, session kernel.SessionID) ([]Event, error)
}

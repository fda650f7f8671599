package telemetrysrv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
)

// QueueRecorder hands events to the queue; the worker stores them.
// Each enqueue is bounded by timeout so a slow queue cannot hold up the
// request that produced the event.
type QueueRecorder struct {
	queue   telemetry.Queue
	timeout time.Duration
}

func NewQueueRecorder(queue telemetry.Queue, timeout time.Duration) *QueueRecorder {
	return &QueueRecorder{queue: queue, timeout: timeout}
}

func (r *QueueRecorder) Record(ctx context.Context, event telemetry.Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.queue.Enqueue(ctx, event); err != nil {
		return errx.Wrap(err, "failed to enqueue event", errx.TypeExternal)
	}
	return nil
}

// NopRecorder drops every event
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, telemetry.Event) error { return nil }

// Service stores events taken off the queue
type Service struct {
	repo telemetry.Repository
}

func NewService(repo telemetry.Repository) *Service {
	return &Service{repo: repo}
}

// Decode parses a queued payload
func (s *Service) Decode(data []byte) (telemetry.Event, error) {
	var event telemetry.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return telemetry.Event{}, errx.Wrap(err, "failed to decode event", errx.TypeValidation)
	}
	if event.ID == "" {
		event.ID = kernel.NewEventID()
	}
	return event, nil
}

// Store persists one event
func (s *Service) Store(ctx context.Context, event telemetry.Event) error {
	if err := s.repo.Save(ctx, event); err != nil {
		return errx.Wrap(err, "failed to store event", errx.TypeInternal)
	}
	return nil
}

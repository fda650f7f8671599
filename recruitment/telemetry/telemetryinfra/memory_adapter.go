package telemetryinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
)

// MemoryQueue implements telemetry.Queue on a buffered channel. Delayed
// events are re-queued immediately by MoveDelayedToReady once due.
type MemoryQueue struct {
	ready chan []byte

	mu      sync.Mutex
	delayed []delayedEvent
}

type delayedEvent struct {
	data []byte
	due  time.Time
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	return &MemoryQueue{
		ready: make(chan []byte, capacity),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, event telemetry.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.ID, err)
	}

	select {
	case q.ready <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("enqueue event %s: queue full", event.ID)
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case data := <-q.ready:
		return data, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) EnqueueDelayed(_ context.Context, event telemetry.Event, delay time.Duration) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal delayed event %s: %w", event.ID, err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.delayed = append(q.delayed, delayedEvent{data: data, due: time.Now().Add(delay)})
	return nil
}

func (q *MemoryQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	moved := 0
	pending := q.delayed[:0]
	for _, d := range q.delayed {
		if d.due.After(now) {
			pending = append(pending, d)
			continue
		}
		select {
		case q.ready <- d.data:
			moved++
		case <-ctx.Done():
			return moved, ctx.Err()
		default:
			pending = append(pending, d)
		}
	}
	q.delayed = pending
	return moved, nil
}

// MemoryEventRepository implements telemetry.Repository in process memory
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[kernel.EventID]telemetry.Event
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{
		events: make(map[kernel.EventID]telemetry.Event),
	}
}

func (r *MemoryEventRepository) Save(_ context.Context, event telemetry.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[event.ID]; !ok {
		r.events[event.ID] = event
	}
	return nil
}

func (r *MemoryEventRepository) ListBySession(_ context.Context, session kernel.SessionID) ([]telemetry.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]telemetry.Event, 0)
	for _, e := range r.events {
		if e.SessionID == session {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(a, b int) bool {
		if events[a].OccurredAt.Equal(events[b].OccurredAt) {
			return events[a].ID < events[b].ID
		}
		return events[a].OccurredAt.Before(events[b].OccurredAt)
	})
	return events, nil
}

package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry/telemetryinfra"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry/telemetrysrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepository struct{}

func (failingRepository) Save(context.Context, telemetry.Event) error {
	return errors.New("database unavailable")
}

func (failingRepository) ListBySession(context.Context, kernel.SessionID) ([]telemetry.Event, error) {
	return nil, nil
}

func TestEventWorker_DrainsQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	queue := telemetryinfra.NewMemoryQueue(16)
	repo := telemetryinfra.NewMemoryEventRepository()
	recorder := telemetrysrv.NewQueueRecorder(queue, time.Second)

	w := NewEventWorker(telemetrysrv.NewService(repo), queue, 2)
	w.Start(ctx)

	for _, desc := range []string{"applied to engineer", "rejected a@x.com for engineer"} {
		require.NoError(t, recorder.Record(ctx, telemetry.NewEvent("s-1", "A", desc)))
	}

	require.Eventually(t, func() bool {
		events, err := repo.ListBySession(context.Background(), "s-1")
		return err == nil && len(events) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()
}

func TestEventWorker_StoreFailureIsDelayed(t *testing.T) {
	ctx := context.Background()
	queue := telemetryinfra.NewMemoryQueue(4)
	w := NewEventWorker(telemetrysrv.NewService(failingRepository{}), queue, 1)

	w.handle(ctx, 0, []byte(`{"id":"e-1","session_id":"s-1","event_type":"applied to engineer"}`))

	// parked for the retry delay, not yet ready
	moved, err := queue.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	data, err := queue.Dequeue(ctx, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestNewEventWorker_AtLeastOne(t *testing.T) {
	w := NewEventWorker(telemetrysrv.NewService(telemetryinfra.NewMemoryEventRepository()), telemetryinfra.NewMemoryQueue(1), 0)
	assert.Equal(t, 1, w.workers)
}

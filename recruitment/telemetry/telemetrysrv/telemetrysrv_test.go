package telemetrysrv

import (
	"context"
	"testing"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry/telemetryinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRecorder(t *testing.T) {
	ctx := context.Background()
	queue := telemetryinfra.NewMemoryQueue(1)
	recorder := NewQueueRecorder(queue, time.Second)

	require.NoError(t, recorder.Record(ctx, telemetry.NewEvent("s-1", "A", "applied to engineer")))

	err := recorder.Record(ctx, telemetry.NewEvent("s-1", "A", "applied to designer"))
	require.Error(t, err, "queue holds one event")
	assert.True(t, errx.IsType(err, errx.TypeExternal))
}

// stalledQueue blocks every enqueue until the caller gives up
type stalledQueue struct {
	telemetry.Queue
}

func (stalledQueue) Enqueue(ctx context.Context, _ telemetry.Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestQueueRecorder_BoundsSlowQueue(t *testing.T) {
	recorder := NewQueueRecorder(stalledQueue{}, 20*time.Millisecond)

	start := time.Now()
	err := recorder.Record(context.Background(), telemetry.NewEvent("s-1", "A", "applied to engineer"))
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeExternal))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestService_Decode(t *testing.T) {
	s := NewService(telemetryinfra.NewMemoryEventRepository())

	event, err := s.Decode([]byte(`{"session_id":"s-1","variant":"B","event_type":"applied to engineer"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "applied to engineer", event.Description)
	assert.Equal(t, "B", event.Variant)

	_, err = s.Decode([]byte(`{not json`))
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestService_StoreIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := telemetryinfra.NewMemoryEventRepository()
	s := NewService(repo)

	event := telemetry.NewEvent("s-1", "A", "applied to engineer")
	require.NoError(t, s.Store(ctx, event))
	require.NoError(t, s.Store(ctx, event))

	events, err := repo.ListBySession(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

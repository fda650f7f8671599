package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/logx"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry/telemetrysrv"
)

const (
	dequeueTimeout = 5 * time.Second
	retryDelay     = 30 * time.Second
	moveInterval   = 30 * time.Second
)

// EventWorker drains the telemetry queue into storage
type EventWorker struct {
	service *telemetrysrv.Service
	queue   telemetry.Queue
	workers int
	wg      sync.WaitGroup
}

func NewEventWorker(service *telemetrysrv.Service, queue telemetry.Queue, workers int) *EventWorker {
	if workers < 1 {
		workers = 1
	}
	return &EventWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

// Start launches the pool; it returns immediately
func (w *EventWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d telemetry workers", w.workers)

	w.wg.Add(w.workers + 1)
	go w.moveDelayedEvents(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processEvents(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *EventWorker) Wait() {
	w.wg.Wait()
}

func (w *EventWorker) processEvents(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Debugf("Telemetry worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Telemetry worker %d stopping", workerID)
			return
		default:
		}

		data, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logx.Errorf("Telemetry worker %d dequeue error: %v", workerID, err)
			}
			continue
		}
		if len(data) == 0 {
			continue
		}

		w.handle(ctx, workerID, data)
	}
}

func (w *EventWorker) handle(ctx context.Context, workerID int, data []byte) {
	event, err := w.service.Decode(data)
	if err != nil {
		logx.Errorf("Telemetry worker %d dropping payload: %v (data: %s)", workerID, err, string(data))
		return
	}

	if err := w.service.Store(ctx, event); err != nil {
		logx.Warnf("Telemetry worker %d store failed for %s, retrying later: %v", workerID, event.ID, err)
		if err := w.queue.EnqueueDelayed(ctx, event, retryDelay); err != nil {
			logx.Errorf("Telemetry worker %d lost event %s: %v", workerID, event.ID, err)
		}
	}
}

func (w *EventWorker) moveDelayedEvents(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed events: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed events to ready queue", count)
			}
		}
	}
}

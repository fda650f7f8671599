package telemetryinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/recruitment/telemetry"
	"github.com/go-redis/redis/v8"
)

// RedisQueue implements telemetry.Queue on a Redis list, with retries held
// in a sorted set scored by due time
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based event queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}

// Enqueue adds an event to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, event telemetry.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue event %s: %w", event.ID, err)
	}

	return nil
}

// Dequeue pops the oldest event, blocking up to timeout
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue event: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// EnqueueDelayed schedules an event for a later attempt
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, event telemetry.Event, delay time.Duration) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal delayed event %s: %w", event.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed event %s: %w", event.ID, err)
	}

	return nil
}

// MoveDelayedToReady moves due events back to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	events, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed events: %w", err)
	}

	if len(events) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, event := range events {
		pipe.LPush(ctx, q.queueName, event)
		pipe.ZRem(ctx, q.delayedQueue(), event)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed events to ready: %w", err)
	}

	return len(events), nil
}

// Size returns the number of ready events
func (q *RedisQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// Ping checks if Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

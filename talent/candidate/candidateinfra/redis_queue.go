package candidateinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talentwire/scout/talent/candidate"
)

// RedisIndexQueue implements candidate.IndexQueue using Redis
type RedisIndexQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisIndexQueue creates a new Redis-based index queue
func NewRedisIndexQueue(client *redis.Client, queueName string) candidate.IndexQueue {
	return &RedisIndexQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a job to the ready queue
func (q *RedisIndexQueue) Enqueue(ctx context.Context, job *candidate.ProfileIndexJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal index job %s: %w", job.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue index job %s: %w", job.ID, err)
	}

	return nil
}

// EnqueueDelayed schedules a job for later processing (for retries)
func (q *RedisIndexQueue) EnqueueDelayed(ctx context.Context, job *candidate.ProfileIndexJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed index job %s: %w", job.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	delayedQueue := q.queueName + ":delayed"

	if err := q.client.ZAdd(ctx, delayedQueue, redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed index job %s: %w", job.ID, err)
	}

	return nil
}

// Dequeue gets a job from the queue (blocking with timeout).
// Returns nil, nil when the timeout elapses with no job.
func (q *RedisIndexQueue) Dequeue(ctx context.Context, timeout time.Duration) (*candidate.ProfileIndexJob, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue index job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var job candidate.ProfileIndexJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal index job: %w", err)
	}

	return &job, nil
}

// MoveDelayedToReady moves delayed jobs that are due to the ready queue
func (q *RedisIndexQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	delayedQueue := q.queueName + ":delayed"
	now := float64(time.Now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, delayedQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed index jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	// Use pipeline for atomic operations
	pipe := q.client.Pipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, delayedQueue, job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed index jobs to ready: %w", err)
	}

	return len(jobs), nil
}

// Stats returns queue statistics
func (q *RedisIndexQueue) Stats(ctx context.Context) (map[string]any, error) {
	ready, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return nil, fmt.Errorf("get queue size: %w", err)
	}

	delayed, err := q.client.ZCard(ctx, q.queueName+":delayed").Result()
	if err != nil {
		return nil, fmt.Errorf("get delayed queue size: %w", err)
	}

	return map[string]any{
		"queue_name":   q.queueName,
		"ready_jobs":   ready,
		"delayed_jobs": delayed,
		"total_jobs":   ready + delayed,
	}, nil
}

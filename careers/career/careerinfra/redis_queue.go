package careerinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/go-redis/redis/v8"
)

// RedisQueue carries ingestion chunks on a Redis list
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) Name() string { return q.queueName }

// Enqueue pushes a chunk onto the queue
func (q *RedisQueue) Enqueue(ctx context.Context, job career.IngestJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal ingest job %s: %w", job.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return career.ErrQueueUnavailable(err).WithDetail("job_id", job.ID)
	}
	return nil
}

// Dequeue blocks up to timeout for the oldest chunk
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue ingest job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}
	return []byte(result[1]), nil
}

// Size returns the number of chunks waiting
func (q *RedisQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, career.ErrQueueUnavailable(err)
	}
	return size, nil
}

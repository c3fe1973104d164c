package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"youtube-fetcher/domain/model"
	"youtube-fetcher/domain/repository"
)

const (
	queueName   = "youtube_fetch_jobs"
	popInterval = 5 * time.Second
)

// JobQueue hands work to the background workers through a Redis list
type JobQueue struct {
	cache repository.ICache
}

// NewJobQueue creates a new Redis-backed job queue
func NewJobQueue(cache repository.ICache) repository.IJobQueue {
	return &JobQueue{cache: cache}
}

func (q *JobQueue) Enqueue(ctx context.Context, payload *model.JobPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}
	return q.cache.PushQueue(ctx, queueName, raw)
}

// Dequeue blocks briefly waiting for work; returns nil when the queue is empty
// so the worker loop can observe context cancellation between polls.
func (q *JobQueue) Dequeue(ctx context.Context) (*model.JobPayload, error) {
	raw, err := q.cache.PopQueue(ctx, queueName, popInterval)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var payload model.JobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal job payload: %w", err)
	}
	return &payload, nil
}

package repository

import (
	"context"
	"encoding/json"

	"youtube-fetcher/domain/model"
)

// IJobStore defines job record storage. Records expire one hour after the
// last write regardless of terminal state; only the worker owning a job id
// mutates its record.
type IJobStore interface {
	Create(ctx context.Context, jobID, jobType string) error
	SetRunning(ctx context.Context, jobID string) error
	// UpdateProgress accepts monotonically non-decreasing values in [0,100];
	// out-of-range or decreasing values are ignored without failing the job.
	UpdateProgress(ctx context.Context, jobID string, progress int) error
	Complete(ctx context.Context, jobID string, result json.RawMessage) error
	Fail(ctx context.Context, jobID string, errMsg string) error
	GetStatus(ctx context.Context, jobID string) (*model.Job, error)
}

// IJobQueue hands submitted work to the background workers
type IJobQueue interface {
	Enqueue(ctx context.Context, payload *model.JobPayload) error
	Dequeue(ctx context.Context) (*model.JobPayload, error)
}

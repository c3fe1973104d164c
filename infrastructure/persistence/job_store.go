package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"youtube-fetcher/domain/model"
	"youtube-fetcher/domain/repository"
	"youtube-fetcher/infrastructure/logger"
)

const (
	jobKeyPrefix = "yt_job:"
	// Retention window after the last write, terminal or not
	jobTTL = time.Hour
)

// JobStore keeps job records as Redis hashes keyed yt_job:{id}
type JobStore struct {
	cache repository.ICache
}

// NewJobStore creates a new Redis-backed job store
func NewJobStore(cache repository.ICache) repository.IJobStore {
	return &JobStore{cache: cache}
}

func jobKey(jobID string) string {
	return jobKeyPrefix + jobID
}

func (s *JobStore) write(ctx context.Context, jobID string, fields map[string]interface{}) error {
	key := jobKey(jobID)
	fields["updated_at"] = time.Now().Unix()
	if err := s.cache.HashSet(ctx, key, fields); err != nil {
		return err
	}
	if err := s.cache.Expire(ctx, key, jobTTL); err != nil {
		return err
	}
	return nil
}

// Create initializes a queued record with zero progress
func (s *JobStore) Create(ctx context.Context, jobID, jobType string) error {
	return s.write(ctx, jobID, map[string]interface{}{
		"status":   model.JobStatusQueued,
		"progress": 0,
		"job_type": jobType,
	})
}

// SetRunning marks the job as picked up by a worker
func (s *JobStore) SetRunning(ctx context.Context, jobID string) error {
	return s.write(ctx, jobID, map[string]interface{}{
		"status": model.JobStatusRunning,
	})
}

// UpdateProgress writes a progress value. Out-of-range or decreasing values
// are dropped without failing the job.
func (s *JobStore) UpdateProgress(ctx context.Context, jobID string, progress int) error {
	if progress < 0 || progress > 100 {
		logger.GetLogger().WithField("jobId", jobID).WithField("progress", progress).
			Warn("Rejected out-of-range progress value")
		return nil
	}
	current, err := s.GetStatus(ctx, jobID)
	if err != nil {
		return err
	}
	if current.IsTerminal() {
		logger.GetLogger().WithField("jobId", jobID).WithField("status", current.Status).
			Warn("Rejected progress write on terminal job")
		return nil
	}
	if progress < current.Progress {
		logger.GetLogger().WithField("jobId", jobID).WithField("progress", progress).
			Warn("Rejected decreasing progress value")
		return nil
	}
	return s.write(ctx, jobID, map[string]interface{}{
		"status":   model.JobStatusRunning,
		"progress": progress,
	})
}

// Complete finalizes the job with its result payload
func (s *JobStore) Complete(ctx context.Context, jobID string, result json.RawMessage) error {
	return s.write(ctx, jobID, map[string]interface{}{
		"status":   model.JobStatusDone,
		"progress": 100,
		"result":   string(result),
	})
}

// Fail records the error and marks the job failed
func (s *JobStore) Fail(ctx context.Context, jobID string, errMsg string) error {
	return s.write(ctx, jobID, map[string]interface{}{
		"status": model.JobStatusFailed,
		"error":  errMsg,
	})
}

// GetStatus reads the current record, ErrJobNotFound when unknown or expired
func (s *JobStore) GetStatus(ctx context.Context, jobID string) (*model.Job, error) {
	data, err := s.cache.HashGetAll(ctx, jobKey(jobID))
	if err != nil {
		return nil, fmt.Errorf("read job %s: %w", jobID, err)
	}
	if len(data) == 0 {
		return nil, model.ErrJobNotFound
	}

	job := &model.Job{
		ID:     jobID,
		Type:   data["job_type"],
		Status: data["status"],
		Error:  data["error"],
	}
	if v, convErr := strconv.Atoi(data["progress"]); convErr == nil {
		job.Progress = v
	}
	if v, convErr := strconv.ParseInt(data["updated_at"], 10, 64); convErr == nil {
		job.UpdatedAt = v
	}
	if raw := data["result"]; raw != "" {
		job.Result = json.RawMessage(raw)
	}
	return job, nil
}

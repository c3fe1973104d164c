package usecase

import (
	"context"
	"fmt"

	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/model"
	"youtube-fetcher/domain/repository"

	"github.com/google/uuid"
)

const (
	defaultMaxResults = 20
	maxResultsCap     = 50
)

// IJobUseCase defines the interface for job submission and status operations
type IJobUseCase interface {
	SubmitScrape(ctx context.Context, req *dto.ScrapeRequest) (string, error)
	SubmitThumbnails(ctx context.Context, req *dto.ThumbnailFetchRequest) (string, error)
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
}

// JobUseCase implements job submission and status operations
type JobUseCase struct {
	store repository.IJobStore
	queue repository.IJobQueue
}

// NewJobUseCase creates a new job use case instance
func NewJobUseCase(store repository.IJobStore, queue repository.IJobQueue) IJobUseCase {
	return &JobUseCase{store: store, queue: queue}
}

// SubmitScrape validates the request, creates a queued record and enqueues
// the work exactly once.
func (u *JobUseCase) SubmitScrape(ctx context.Context, req *dto.ScrapeRequest) (string, error) {
	if req == nil || req.Query == "" {
		return "", model.NewValidationError("query is required")
	}
	if req.MaxResults == 0 {
		req.MaxResults = defaultMaxResults
	}
	if req.MaxResults < 1 || req.MaxResults > maxResultsCap {
		return "", model.NewValidationError("max_results must be between 1 and %d", maxResultsCap)
	}
	if req.Format == "" {
		req.Format = model.FormatStandard
	}
	if req.Format != model.FormatStandard && req.Format != model.FormatTubeBuddy {
		return "", model.NewValidationError("format must be %q or %q", model.FormatStandard, model.FormatTubeBuddy)
	}

	return u.submit(ctx, &model.JobPayload{
		JobID:        uuid.New().String(),
		Type:         model.JobTypeScrape,
		Query:        req.Query,
		MaxResults:   req.MaxResults,
		OutputFormat: req.Format,
	})
}

// SubmitThumbnails validates the request and enqueues a thumbnail job
func (u *JobUseCase) SubmitThumbnails(ctx context.Context, req *dto.ThumbnailFetchRequest) (string, error) {
	if req == nil || req.Query == "" {
		return "", model.NewValidationError("query is required")
	}
	if req.MaxThumbnails == 0 {
		req.MaxThumbnails = defaultMaxResults
	}
	if req.MaxThumbnails < 1 || req.MaxThumbnails > maxResultsCap {
		return "", model.NewValidationError("max_thumbnails must be between 1 and %d", maxResultsCap)
	}

	return u.submit(ctx, &model.JobPayload{
		JobID:         uuid.New().String(),
		Type:          model.JobTypeThumbnail,
		Query:         req.Query,
		MaxThumbnails: req.MaxThumbnails,
	})
}

func (u *JobUseCase) submit(ctx context.Context, payload *model.JobPayload) (string, error) {
	if err := u.store.Create(ctx, payload.JobID, payload.Type); err != nil {
		return "", fmt.Errorf("create job record: %w", err)
	}
	if err := u.queue.Enqueue(ctx, payload); err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return payload.JobID, nil
}

// GetJob reads the current job record
func (u *JobUseCase) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	if jobID == "" {
		return nil, model.NewValidationError("job id is required")
	}
	return u.store.GetStatus(ctx, jobID)
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/model"
	"youtube-fetcher/domain/repository"
	"youtube-fetcher/infrastructure/logger"
)

// Pool runs background jobs pulled from the queue. Each job is owned by
// exactly one worker; every failure, panics included, is captured into the
// job record so no job is left running after its worker finishes.
type Pool struct {
	store   repository.IJobStore
	queue   repository.IJobQueue
	scraper repository.IScraper
	fetcher repository.IThumbnailFetcher
	count   int
}

// NewPool creates a worker pool of the given size
func NewPool(store repository.IJobStore, queue repository.IJobQueue, scraper repository.IScraper, fetcher repository.IThumbnailFetcher, count int) *Pool {
	if count < 1 {
		count = 1
	}
	return &Pool{
		store:   store,
		queue:   queue,
		scraper: scraper,
		fetcher: fetcher,
		count:   count,
	}
}

// Run blocks consuming the queue until ctx is cancelled
func (p *Pool) Run(ctx context.Context) error {
	logger.GetLogger().WithField("workers", p.count).Info("Starting job workers")
	done := make(chan struct{})
	for i := 0; i < p.count; i++ {
		go func(id int) {
			p.loop(ctx, id)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < p.count; i++ {
		<-done
	}
	return ctx.Err()
}

func (p *Pool) loop(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.GetLogger().WithField("error", err).Error("Failed to dequeue job")
			continue
		}
		if payload == nil {
			continue
		}
		logger.GetLogger().WithField("jobId", payload.JobID).WithField("worker", workerID).
			Info("Picked up job")
		p.run(ctx, payload)
	}
}

// run executes one job and finalizes its record. The worker boundary catches
// everything: pipeline errors and panics both end in a failed record.
func (p *Pool) run(ctx context.Context, payload *model.JobPayload) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().WithField("jobId", payload.JobID).WithField("panic", r).
				Error("Job panicked")
			p.fail(ctx, payload.JobID, fmt.Sprintf("job panicked: %v", r))
		}
	}()

	if err := p.store.SetRunning(ctx, payload.JobID); err != nil {
		logger.GetLogger().WithField("jobId", payload.JobID).WithField("error", err).
			Error("Failed to mark job running")
		return
	}
	p.progress(ctx, payload.JobID, 10)

	var (
		result interface{}
		err    error
	)
	switch payload.Type {
	case model.JobTypeScrape:
		result, err = p.runScrape(ctx, payload)
	case model.JobTypeThumbnail:
		result, err = p.runThumbnails(ctx, payload)
	default:
		err = fmt.Errorf("unknown job type %q", payload.Type)
	}
	if err != nil {
		p.fail(ctx, payload.JobID, err.Error())
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		p.fail(ctx, payload.JobID, fmt.Sprintf("encode job result: %v", err))
		return
	}
	if err := p.store.Complete(ctx, payload.JobID, raw); err != nil {
		logger.GetLogger().WithField("jobId", payload.JobID).WithField("error", err).
			Error("Failed to finalize job")
	}
}

func (p *Pool) runScrape(ctx context.Context, payload *model.JobPayload) (interface{}, error) {
	searchResult, err := p.scraper.Search(ctx, payload.Query, payload.MaxResults)
	if err != nil {
		return nil, err
	}
	p.progress(ctx, payload.JobID, 90)
	return &dto.ScrapeResult{
		Success:          true,
		EstimatedResults: searchResult.EstimatedResults,
		Videos:           searchResult.Render(payload.OutputFormat),
	}, nil
}

func (p *Pool) runThumbnails(ctx context.Context, payload *model.JobPayload) (interface{}, error) {
	return p.fetcher.Fetch(ctx, payload.Query, payload.MaxThumbnails, func(progress int) {
		p.progress(ctx, payload.JobID, progress)
	})
}

func (p *Pool) progress(ctx context.Context, jobID string, value int) {
	if err := p.store.UpdateProgress(ctx, jobID, value); err != nil {
		logger.GetLogger().WithField("jobId", jobID).WithField("error", err).
			Warn("Failed to write job progress")
	}
}

func (p *Pool) fail(ctx context.Context, jobID, msg string) {
	if err := p.store.Fail(ctx, jobID, msg); err != nil {
		logger.GetLogger().WithField("jobId", jobID).WithField("error", err).
			Error("Failed to mark job failed")
	}
}

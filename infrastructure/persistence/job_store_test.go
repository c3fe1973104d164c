package persistence_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"youtube-fetcher/domain/model"
	"youtube-fetcher/infrastructure/persistence"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) HashSet(ctx context.Context, key string, fields map[string]interface{}) error {
	args := m.Called(ctx, key, fields)
	return args.Error(0)
}

func (m *MockCache) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

func (m *MockCache) PushQueue(ctx context.Context, queue string, payload []byte) error {
	args := m.Called(ctx, queue, payload)
	return args.Error(0)
}

func (m *MockCache) PopQueue(ctx context.Context, queue string, timeout time.Duration) ([]byte, error) {
	args := m.Called(ctx, queue, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func fieldsWith(expected map[string]interface{}) interface{} {
	return mock.MatchedBy(func(fields map[string]interface{}) bool {
		for k, v := range expected {
			if fields[k] != v {
				return false
			}
		}
		_, hasTimestamp := fields["updated_at"]
		return hasTimestamp
	})
}

func TestJobStore_CreateWritesQueuedRecordWithTTL(t *testing.T) {
	cache := new(MockCache)
	cache.On("HashSet", mock.Anything, "yt_job:job-1", fieldsWith(map[string]interface{}{
		"status":   model.JobStatusQueued,
		"progress": 0,
		"job_type": model.JobTypeScrape,
	})).Return(nil)
	cache.On("Expire", mock.Anything, "yt_job:job-1", time.Hour).Return(nil)

	store := persistence.NewJobStore(cache)
	err := store.Create(context.Background(), "job-1", model.JobTypeScrape)

	assert.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestJobStore_GetStatusNotFound(t *testing.T) {
	cache := new(MockCache)
	cache.On("HashGetAll", mock.Anything, "yt_job:gone").Return(map[string]string{}, nil)

	store := persistence.NewJobStore(cache)
	_, err := store.GetStatus(context.Background(), "gone")

	assert.ErrorIs(t, err, model.ErrJobNotFound)
}

func TestJobStore_GetStatusParsesRecord(t *testing.T) {
	cache := new(MockCache)
	cache.On("HashGetAll", mock.Anything, "yt_job:job-1").Return(map[string]string{
		"status":     model.JobStatusDone,
		"progress":   "100",
		"job_type":   model.JobTypeThumbnail,
		"result":     `{"count":3}`,
		"updated_at": "1700000000",
	}, nil)

	store := persistence.NewJobStore(cache)
	job, err := store.GetStatus(context.Background(), "job-1")

	assert.NoError(t, err)
	assert.Equal(t, model.JobStatusDone, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, model.JobTypeThumbnail, job.Type)
	assert.Equal(t, json.RawMessage(`{"count":3}`), job.Result)
	assert.Equal(t, int64(1700000000), job.UpdatedAt)
	assert.True(t, job.IsTerminal())
}

func TestJobStore_UpdateProgressRejectsOutOfRange(t *testing.T) {
	cache := new(MockCache)

	store := persistence.NewJobStore(cache)
	assert.NoError(t, store.UpdateProgress(context.Background(), "job-1", -1))
	assert.NoError(t, store.UpdateProgress(context.Background(), "job-1", 101))

	cache.AssertNotCalled(t, "HashSet", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobStore_UpdateProgressRejectsDecreasing(t *testing.T) {
	cache := new(MockCache)
	cache.On("HashGetAll", mock.Anything, "yt_job:job-1").Return(map[string]string{
		"status":   model.JobStatusRunning,
		"progress": "50",
		"job_type": model.JobTypeScrape,
	}, nil)

	store := persistence.NewJobStore(cache)
	assert.NoError(t, store.UpdateProgress(context.Background(), "job-1", 40))

	cache.AssertNotCalled(t, "HashSet", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobStore_UpdateProgressRejectedOnTerminalJob(t *testing.T) {
	cache := new(MockCache)
	cache.On("HashGetAll", mock.Anything, "yt_job:job-1").Return(map[string]string{
		"status":   model.JobStatusDone,
		"progress": "100",
		"job_type": model.JobTypeScrape,
	}, nil)

	store := persistence.NewJobStore(cache)
	// A late progress write must not resurrect a finished job
	assert.NoError(t, store.UpdateProgress(context.Background(), "job-1", 100))

	cache.AssertNotCalled(t, "HashSet", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobStore_UpdateProgressAdvances(t *testing.T) {
	cache := new(MockCache)
	cache.On("HashGetAll", mock.Anything, "yt_job:job-1").Return(map[string]string{
		"status":   model.JobStatusRunning,
		"progress": "50",
		"job_type": model.JobTypeScrape,
	}, nil)
	cache.On("HashSet", mock.Anything, "yt_job:job-1", fieldsWith(map[string]interface{}{
		"status":   model.JobStatusRunning,
		"progress": 60,
	})).Return(nil)
	cache.On("Expire", mock.Anything, "yt_job:job-1", time.Hour).Return(nil)

	store := persistence.NewJobStore(cache)
	assert.NoError(t, store.UpdateProgress(context.Background(), "job-1", 60))
	cache.AssertExpectations(t)
}

func TestJobStore_CompleteAndFail(t *testing.T) {
	cache := new(MockCache)
	cache.On("HashSet", mock.Anything, "yt_job:done-job", fieldsWith(map[string]interface{}{
		"status":   model.JobStatusDone,
		"progress": 100,
		"result":   `{"ok":true}`,
	})).Return(nil)
	cache.On("HashSet", mock.Anything, "yt_job:failed-job", fieldsWith(map[string]interface{}{
		"status": model.JobStatusFailed,
		"error":  "scrape blew up",
	})).Return(nil)
	cache.On("Expire", mock.Anything, mock.Anything, time.Hour).Return(nil)

	store := persistence.NewJobStore(cache)
	assert.NoError(t, store.Complete(context.Background(), "done-job", json.RawMessage(`{"ok":true}`)))
	assert.NoError(t, store.Fail(context.Background(), "failed-job", "scrape blew up"))
	cache.AssertExpectations(t)
}

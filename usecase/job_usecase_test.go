package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/model"
	"youtube-fetcher/usecase"
)

type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) Create(ctx context.Context, jobID, jobType string) error {
	args := m.Called(ctx, jobID, jobType)
	return args.Error(0)
}

func (m *MockJobStore) SetRunning(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockJobStore) UpdateProgress(ctx context.Context, jobID string, progress int) error {
	args := m.Called(ctx, jobID, progress)
	return args.Error(0)
}

func (m *MockJobStore) Complete(ctx context.Context, jobID string, result json.RawMessage) error {
	args := m.Called(ctx, jobID, result)
	return args.Error(0)
}

func (m *MockJobStore) Fail(ctx context.Context, jobID string, errMsg string) error {
	args := m.Called(ctx, jobID, errMsg)
	return args.Error(0)
}

func (m *MockJobStore) GetStatus(ctx context.Context, jobID string) (*model.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) Enqueue(ctx context.Context, payload *model.JobPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockJobQueue) Dequeue(ctx context.Context) (*model.JobPayload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobPayload), args.Error(1)
}

func TestSubmitScrape_CreatesQueuedRecordAndEnqueuesOnce(t *testing.T) {
	store := new(MockJobStore)
	queue := new(MockJobQueue)
	store.On("Create", mock.Anything, mock.Anything, model.JobTypeScrape).Return(nil).Once()
	queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(p *model.JobPayload) bool {
		return p.Type == model.JobTypeScrape && p.Query == "lofi beats" &&
			p.MaxResults == 20 && p.OutputFormat == model.FormatStandard
	})).Return(nil).Once()

	u := usecase.NewJobUseCase(store, queue)
	jobID, err := u.SubmitScrape(context.Background(), &dto.ScrapeRequest{Query: "lofi beats"})

	assert.NoError(t, err)
	assert.NotEmpty(t, jobID)
	store.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestSubmitScrape_ValidatesInput(t *testing.T) {
	u := usecase.NewJobUseCase(new(MockJobStore), new(MockJobQueue))

	_, err := u.SubmitScrape(context.Background(), &dto.ScrapeRequest{Query: ""})
	assert.True(t, model.IsValidation(err))

	_, err = u.SubmitScrape(context.Background(), &dto.ScrapeRequest{Query: "q", MaxResults: 51})
	assert.True(t, model.IsValidation(err))

	_, err = u.SubmitScrape(context.Background(), &dto.ScrapeRequest{Query: "q", Format: "yaml"})
	assert.True(t, model.IsValidation(err))
}

func TestSubmitThumbnails_ValidatesInput(t *testing.T) {
	u := usecase.NewJobUseCase(new(MockJobStore), new(MockJobQueue))

	_, err := u.SubmitThumbnails(context.Background(), &dto.ThumbnailFetchRequest{Query: "q", MaxThumbnails: 51})
	assert.True(t, model.IsValidation(err))
}

func TestGetJob_NotFoundPassthrough(t *testing.T) {
	store := new(MockJobStore)
	store.On("GetStatus", mock.Anything, "missing").Return(nil, model.ErrJobNotFound)

	u := usecase.NewJobUseCase(store, new(MockJobQueue))
	_, err := u.GetJob(context.Background(), "missing")

	assert.ErrorIs(t, err, model.ErrJobNotFound)
}

func TestGetJob_ReturnsFreshRecord(t *testing.T) {
	store := new(MockJobStore)
	store.On("GetStatus", mock.Anything, "job-1").Return(&model.Job{
		ID:       "job-1",
		Status:   model.JobStatusQueued,
		Progress: 0,
	}, nil)

	u := usecase.NewJobUseCase(store, new(MockJobQueue))
	job, err := u.GetJob(context.Background(), "job-1")

	assert.NoError(t, err)
	assert.Equal(t, model.JobStatusQueued, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Nil(t, job.Result)
	assert.Empty(t, job.Error)
}

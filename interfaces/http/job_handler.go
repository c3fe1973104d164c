package http

import (
	"errors"
	"net/http"

	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/model"
	"youtube-fetcher/usecase"

	"github.com/gin-gonic/gin"
)

// IJobHandler defines the interface for job HTTP handlers
type IJobHandler interface {
	EnqueueScrape(ctx *gin.Context)
	EnqueueThumbnails(ctx *gin.Context)
	GetJobStatus(ctx *gin.Context)
}

// JobHandler implements the job HTTP handlers
type JobHandler struct {
	jobUseCase usecase.IJobUseCase
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(jobUseCase usecase.IJobUseCase) IJobHandler {
	return &JobHandler{jobUseCase: jobUseCase}
}

// EnqueueScrape handles POST /search/scrape
func (h *JobHandler) EnqueueScrape(ctx *gin.Context) {
	var req dto.ScrapeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID, err := h.jobUseCase.SubmitScrape(ctx.Request.Context(), &req)
	if err != nil {
		writeJobError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, dto.JobResponse{JobID: jobID})
}

// EnqueueThumbnails handles POST /thumbnails/fetch
func (h *JobHandler) EnqueueThumbnails(ctx *gin.Context) {
	var req dto.ThumbnailFetchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID, err := h.jobUseCase.SubmitThumbnails(ctx.Request.Context(), &req)
	if err != nil {
		writeJobError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, dto.JobResponse{JobID: jobID})
}

// GetJobStatus handles GET /jobs/:job_id
func (h *JobHandler) GetJobStatus(ctx *gin.Context) {
	job, err := h.jobUseCase.GetJob(ctx.Request.Context(), ctx.Param("job_id"))
	if err != nil {
		writeJobError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.JobStatusResponse{
		Status:   job.Status,
		Progress: job.Progress,
		Result:   job.Result,
		Error:    job.Error,
	})
}

func writeJobError(ctx *gin.Context, err error) {
	switch {
	case model.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrJobNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

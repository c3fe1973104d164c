package http

import (
	"errors"
	"net/http"

	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/model"
	"youtube-fetcher/usecase"

	"github.com/gin-gonic/gin"
)

// IYouTubeHandler defines the interface for the synchronous Data API proxy
type IYouTubeHandler interface {
	GetVideoDescriptions(ctx *gin.Context)
	GetChannelSubscribers(ctx *gin.Context)
}

// YouTubeHandler implements the Data API proxy HTTP handlers
type YouTubeHandler struct {
	youtubeUseCase usecase.IYouTubeUseCase
}

// NewYouTubeHandler creates a new YouTube handler instance
func NewYouTubeHandler(youtubeUseCase usecase.IYouTubeUseCase) IYouTubeHandler {
	return &YouTubeHandler{youtubeUseCase: youtubeUseCase}
}

// GetVideoDescriptions handles POST /youtube/videos
func (h *YouTubeHandler) GetVideoDescriptions(ctx *gin.Context) {
	var req dto.VideoDescriptionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.youtubeUseCase.GetVideoDescriptions(ctx.Request.Context(), &req)
	if err != nil {
		writeUpstreamError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetChannelSubscribers handles POST /youtube/channels
func (h *YouTubeHandler) GetChannelSubscribers(ctx *gin.Context) {
	var req dto.ChannelSubscribersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.youtubeUseCase.GetChannelSubscribers(ctx.Request.Context(), &req)
	if err != nil {
		writeUpstreamError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// writeUpstreamError distinguishes "try later" (quota) from "broken"
func writeUpstreamError(ctx *gin.Context, err error) {
	switch {
	case model.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrQuotaExhausted):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "YouTube API quota exceeded"})
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

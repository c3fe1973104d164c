package usecase

import (
	"context"
	"fmt"

	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/repository"
)

// IYouTubeUseCase defines the synchronous Data API proxy operations. These
// bypass the job queue: the upstream answers fast and callers want the data
// inline.
type IYouTubeUseCase interface {
	GetVideoDescriptions(ctx context.Context, req *dto.VideoDescriptionsRequest) (*dto.VideoDescriptionsResponse, error)
	GetChannelSubscribers(ctx context.Context, req *dto.ChannelSubscribersRequest) (*dto.ChannelSubscribersResponse, error)
}

// YouTubeUseCase implements the Data API proxy operations
type YouTubeUseCase struct {
	api repository.IYouTubeDataAPI
}

// NewYouTubeUseCase creates a new YouTube use case instance
func NewYouTubeUseCase(api repository.IYouTubeDataAPI) IYouTubeUseCase {
	return &YouTubeUseCase{api: api}
}

// GetVideoDescriptions fetches full descriptions for a batch of video ids
func (u *YouTubeUseCase) GetVideoDescriptions(ctx context.Context, req *dto.VideoDescriptionsRequest) (*dto.VideoDescriptionsResponse, error) {
	descriptions, err := u.api.GetVideoDescriptions(ctx, req.VideoIDs)
	if err != nil {
		return nil, fmt.Errorf("get video descriptions: %w", err)
	}
	return &dto.VideoDescriptionsResponse{Descriptions: descriptions}, nil
}

// GetChannelSubscribers fetches subscriber counts for a batch of channel ids
func (u *YouTubeUseCase) GetChannelSubscribers(ctx context.Context, req *dto.ChannelSubscribersRequest) (*dto.ChannelSubscribersResponse, error) {
	subscribers, err := u.api.GetChannelSubscribers(ctx, req.ChannelIDs)
	if err != nil {
		return nil, fmt.Errorf("get channel subscribers: %w", err)
	}
	return &dto.ChannelSubscribersResponse{Subscribers: subscribers}, nil
}

package repository

import (
	"context"

	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/model"
)

// ProgressFunc reports job progress in [0,100]
type ProgressFunc func(progress int)

// IScraper defines YouTube search results page scraping
type IScraper interface {
	Search(ctx context.Context, query string, maxResults int) (*model.SearchResult, error)
}

// IThumbnailFetcher downloads thumbnails for a search query
type IThumbnailFetcher interface {
	Fetch(ctx context.Context, query string, maxThumbnails int, progress ProgressFunc) (*model.ThumbnailResult, error)
}

// IYouTubeDataAPI defines the proxied YouTube Data API v3 operations
type IYouTubeDataAPI interface {
	GetVideoDescriptions(ctx context.Context, videoIDs []string) (map[string]dto.VideoDescription, error)
	GetChannelSubscribers(ctx context.Context, channelIDs []string) (map[string]int64, error)
}

// IDebugStore persists artifacts for operator inspection. Best effort: a
// failing implementation must never fail the calling pipeline.
type IDebugStore interface {
	Save(name string, data []byte) error
}

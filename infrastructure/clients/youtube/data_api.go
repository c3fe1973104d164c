package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"youtube-fetcher/domain/dto"
	"youtube-fetcher/domain/model"
	"youtube-fetcher/domain/repository"
	"youtube-fetcher/infrastructure/logger"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const maxBatchSize = 50

// ModeMock serves cached responses only and performs no upstream calls
const (
	ModeLive = "LIVE"
	ModeMock = "MOCK"
)

// ServiceFactory builds a YouTube service bound to one API key. Injectable so
// tests can point the service at a local HTTP double.
type ServiceFactory func(ctx context.Context, apiKey string) (*yt.Service, error)

func defaultServiceFactory(ctx context.Context, apiKey string) (*yt.Service, error) {
	return yt.NewService(ctx, option.WithAPIKey(apiKey))
}

// DataAPI proxies the YouTube Data API v3 with key rotation and a file-backed
// response cache. Synchronous: callers bear the upstream latency directly.
type DataAPI struct {
	mode       string
	rotator    *KeyRotator
	cache      *ResponseCache
	newService ServiceFactory
}

// NewDataAPI creates the Data API client
func NewDataAPI(mode string, rotator *KeyRotator, cache *ResponseCache) repository.IYouTubeDataAPI {
	api := &DataAPI{
		mode:       mode,
		rotator:    rotator,
		cache:      cache,
		newService: defaultServiceFactory,
	}
	logger.GetLogger().WithField("mode", mode).Info("YouTube Data API client initialized")
	return api
}

// NewDataAPIWithFactory creates the client with a custom service factory
func NewDataAPIWithFactory(mode string, rotator *KeyRotator, cache *ResponseCache, factory ServiceFactory) repository.IYouTubeDataAPI {
	return &DataAPI{mode: mode, rotator: rotator, cache: cache, newService: factory}
}

func validateBatch(kind string, ids []string) error {
	if len(ids) == 0 {
		return model.NewValidationError("at least one %s id is required", kind)
	}
	if len(ids) > maxBatchSize {
		return model.NewValidationError("at most %d %s ids per request, got %d", maxBatchSize, kind, len(ids))
	}
	return nil
}

func isQuotaError(err error) bool {
	var ge *googleapi.Error
	return errors.As(err, &ge) && ge.Code == 403
}

func upstreamError(err error) error {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return &model.UpstreamError{StatusCode: ge.Code, Msg: ge.Message}
	}
	return fmt.Errorf("youtube api call failed: %w", err)
}

// GetVideoDescriptions fetches full descriptions for up to 50 video ids
func (c *DataAPI) GetVideoDescriptions(ctx context.Context, videoIDs []string) (map[string]dto.VideoDescription, error) {
	if err := validateBatch("video", videoIDs); err != nil {
		return nil, err
	}

	fingerprint := Fingerprint("videos", "snippet", videoIDs)
	if raw, ok := c.cache.Get(fingerprint); ok {
		var resp yt.VideoListResponse
		if err := json.Unmarshal(raw, &resp); err == nil {
			return mapDescriptions(&resp), nil
		}
		logger.GetLogger().WithField("fingerprint", fingerprint).Warn("Discarding unreadable cache entry")
	}
	if c.mode == ModeMock || c.rotator.Mock() {
		return map[string]dto.VideoDescription{}, nil
	}

	resp, err := c.call(ctx, fingerprint, func(svc *yt.Service) (interface{}, error) {
		return svc.Videos.List([]string{"snippet"}).Id(videoIDs...).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}
	return mapDescriptions(resp.(*yt.VideoListResponse)), nil
}

// GetChannelSubscribers fetches subscriber counts for up to 50 channel ids.
// Channels hiding their count map to -1.
func (c *DataAPI) GetChannelSubscribers(ctx context.Context, channelIDs []string) (map[string]int64, error) {
	if err := validateBatch("channel", channelIDs); err != nil {
		return nil, err
	}

	fingerprint := Fingerprint("channels", "statistics", channelIDs)
	if raw, ok := c.cache.Get(fingerprint); ok {
		var resp yt.ChannelListResponse
		if err := json.Unmarshal(raw, &resp); err == nil {
			return mapSubscribers(&resp), nil
		}
		logger.GetLogger().WithField("fingerprint", fingerprint).Warn("Discarding unreadable cache entry")
	}
	if c.mode == ModeMock || c.rotator.Mock() {
		return map[string]int64{}, nil
	}

	resp, err := c.call(ctx, fingerprint, func(svc *yt.Service) (interface{}, error) {
		return svc.Channels.List([]string{"statistics"}).Id(channelIDs...).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}
	return mapSubscribers(resp.(*yt.ChannelListResponse)), nil
}

// call runs one upstream request, rotating keys on quota rejection until
// success, a non-quota error, or full exhaustion. Successful responses are
// cached before returning.
func (c *DataAPI) call(ctx context.Context, fingerprint string, do func(*yt.Service) (interface{}, error)) (interface{}, error) {
	for {
		if c.rotator.Exhausted() {
			return nil, model.ErrQuotaExhausted
		}
		key := c.rotator.CurrentKey()
		svc, err := c.newService(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("create youtube service: %w", err)
		}

		resp, err := do(svc)
		if err != nil {
			if isQuotaError(err) {
				logger.GetLogger().Warn("YouTube API key exhausted, rotating")
				if !c.rotator.Rotate(key) {
					return nil, model.ErrQuotaExhausted
				}
				continue
			}
			return nil, upstreamError(err)
		}

		if raw, marshalErr := json.Marshal(resp); marshalErr == nil {
			if cacheErr := c.cache.Put(fingerprint, raw); cacheErr != nil {
				logger.GetLogger().WithField("error", cacheErr).Warn("Failed to cache YouTube API response")
			}
		}
		return resp, nil
	}
}

func mapDescriptions(resp *yt.VideoListResponse) map[string]dto.VideoDescription {
	descriptions := make(map[string]dto.VideoDescription)
	for _, item := range resp.Items {
		if item.Snippet != nil {
			descriptions[item.Id] = dto.VideoDescription{Description: item.Snippet.Description}
		}
	}
	return descriptions
}

func mapSubscribers(resp *yt.ChannelListResponse) map[string]int64 {
	subscribers := make(map[string]int64)
	for _, item := range resp.Items {
		if item.Statistics == nil {
			continue
		}
		if item.Statistics.HiddenSubscriberCount {
			subscribers[item.Id] = -1
			continue
		}
		subscribers[item.Id] = int64(item.Statistics.SubscriberCount)
	}
	return subscribers
}

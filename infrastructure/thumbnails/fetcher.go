package thumbnails

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"youtube-fetcher/domain/model"
	"youtube-fetcher/domain/repository"
	"youtube-fetcher/infrastructure/logger"

	"golang.org/x/sync/semaphore"
)

const (
	// Hard ceiling on simultaneous downloads regardless of batch size
	concurrentDownloads = 10
	downloadTimeout     = 30 * time.Second
	// Scrape a few extra results since not every video carries a usable URL
	scrapeOverfetch = 5
)

// Fetcher scrapes a search query for thumbnail URLs, downloads them under a
// bounded-concurrency gate and classifies each payload by magic bytes.
type Fetcher struct {
	scraper    repository.IScraper
	debugStore repository.IDebugStore
	client     *http.Client
}

// NewFetcher creates a thumbnail fetcher
func NewFetcher(scraper repository.IScraper, debugStore repository.IDebugStore) repository.IThumbnailFetcher {
	return &Fetcher{
		scraper:    scraper,
		debugStore: debugStore,
		client:     &http.Client{Timeout: downloadTimeout},
	}
}

// Fetch downloads thumbnails for the query's search results. Individual
// download failures are isolated as per-item errors; the call fails only when
// nothing could be downloaded at all.
func (f *Fetcher) Fetch(ctx context.Context, query string, maxThumbnails int, progress repository.ProgressFunc) (*model.ThumbnailResult, error) {
	searchResult, err := f.scraper.Search(ctx, query, maxThumbnails+scrapeOverfetch)
	if err != nil {
		return nil, fmt.Errorf("scrape for thumbnails: %w", err)
	}
	if progress != nil {
		progress(30)
	}

	urls := make([]string, 0, len(searchResult.Videos))
	for i := range searchResult.Videos {
		if searchResult.Videos[i].Thumbnail != "" {
			urls = append(urls, searchResult.Videos[i].Thumbnail)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no thumbnail URLs found for query %q", query)
	}

	downloaded := f.downloadAll(ctx, urls, progress)

	thumbnails := make([]model.Thumbnail, 0, maxThumbnails)
	failures := 0
	for _, thumb := range downloaded {
		if thumb.Error != "" {
			failures++
			thumbnails = append(thumbnails, thumb)
			continue
		}
		if len(thumbnails)-failures >= maxThumbnails {
			continue
		}
		f.persistDebug(thumb)
		thumb.Base64 = base64.StdEncoding.EncodeToString(thumb.Data)
		thumbnails = append(thumbnails, thumb)
	}

	succeeded := len(thumbnails) - failures
	if succeeded == 0 {
		return nil, fmt.Errorf("all %d thumbnail downloads failed for query %q", len(urls), query)
	}

	return &model.ThumbnailResult{
		Query:      query,
		Thumbnails: thumbnails,
		Count:      succeeded,
	}, nil
}

// downloadAll fetches every URL with at most concurrentDownloads in flight
func (f *Fetcher) downloadAll(ctx context.Context, urls []string, progress repository.ProgressFunc) []model.Thumbnail {
	sem := semaphore.NewWeighted(concurrentDownloads)
	results := make([]model.Thumbnail, len(urls))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	for i, url := range urls {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = model.Thumbnail{URL: url, Error: err.Error()}
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			defer sem.Release(1)

			results[i] = f.download(ctx, url)

			// Report under the lock so concurrent completions stay monotonic
			mu.Lock()
			done++
			if progress != nil {
				// 30..95 while downloads complete, 100 is the store's finalize
				progress(30 + done*65/len(urls))
			}
			mu.Unlock()
		}(i, url)
	}
	wg.Wait()
	return results
}

func (f *Fetcher) download(ctx context.Context, url string) model.Thumbnail {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Thumbnail{URL: url, Error: err.Error()}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		logger.GetLogger().WithField("url", url).WithField("error", err).Warn("Thumbnail download failed")
		return model.Thumbnail{URL: url, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Thumbnail{URL: url, Error: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Thumbnail{URL: url, Error: err.Error()}
	}

	return model.Thumbnail{
		URL:       url,
		MediaType: DetectMediaType(data, resp.Header.Get("Content-Type")),
		Data:      data,
	}
}

// persistDebug saves the raw bytes for operator inspection, best effort
func (f *Fetcher) persistDebug(thumb model.Thumbnail) {
	sum := md5.Sum([]byte(thumb.URL))
	name := fmt.Sprintf("%x%s", sum[:8], Extension(thumb.MediaType))
	if err := f.debugStore.Save(name, thumb.Data); err != nil {
		logger.GetLogger().WithField("url", thumb.URL).WithField("error", err).
			Warn("Failed to persist debug thumbnail")
	}
}

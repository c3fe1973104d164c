package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"youtube-fetcher/domain/model"
	"youtube-fetcher/domain/repository"
	"youtube-fetcher/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

const (
	searchURL = "https://www.youtube.com/results"

	// Served markup differs for unknown clients; identify as a browser
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type searchParams struct {
	SearchQuery string `url:"search_query"`
	Page        int    `url:"page"`
}

// Scraper fetches YouTube search result pages and parses the embedded
// ytInitialData document into video records.
type Scraper struct {
	client    *http.Client
	baseURL   string
	cookies   string
	userAgent string
	backoff   func(retry int) time.Duration
}

// NewScraper creates a scraper using the configured cookie and user agent
func NewScraper(cookies, userAgent string) repository.IScraper {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Scraper{
		client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   searchURL,
		cookies:   cookies,
		userAgent: userAgent,
		backoff:   backoffDelay,
	}
}

// NewScraperWithBaseURL is used by tests to point at a local HTTP double
func NewScraperWithBaseURL(baseURL, cookies, userAgent string) repository.IScraper {
	s := NewScraper(cookies, userAgent).(*Scraper)
	s.baseURL = baseURL
	return s
}

// Search scrapes one results page. Transient upstream errors (5xx, network)
// retry up to 3 times after the initial request, with exponential backoff;
// a structural parse failure returns immediately.
func (s *Scraper) Search(ctx context.Context, searchQuery string, maxResults int) (*model.SearchResult, error) {
	values, err := query.Values(searchParams{SearchQuery: searchQuery, Page: 1})
	if err != nil {
		return nil, fmt.Errorf("encode search params: %w", err)
	}
	url := s.baseURL + "?" + values.Encode()

	var lastErr error
	for retry := 0; retry <= maxRetries; retry++ {
		if retry > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.backoff(retry)):
			}
		}

		html, fetchErr := s.fetch(ctx, url)
		if fetchErr != nil {
			if isTransient(fetchErr) {
				lastErr = fetchErr
				logger.GetLogger().WithField("retry", retry).WithField("error", fetchErr).
					Warn("Transient scrape failure, retrying")
				continue
			}
			return nil, fetchErr
		}
		return s.parse(html, maxResults)
	}
	return nil, fmt.Errorf("scrape failed after %d retries: %w", maxRetries, lastErr)
}

func isTransient(err error) bool {
	var ue *model.UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode >= 500 || ue.StatusCode == 0
	}
	return false
}

func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create scrape request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if s.cookies != "" {
		req.Header.Set("Cookie", s.cookies)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &model.UpstreamError{StatusCode: 0, Msg: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.UpstreamError{StatusCode: resp.StatusCode, Msg: "unexpected status from search page"}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.UpstreamError{StatusCode: 0, Msg: err.Error()}
	}
	return string(body), nil
}

func (s *Scraper) parse(html string, maxResults int) (*model.SearchResult, error) {
	data, err := extractInitialData(html)
	if err != nil {
		return nil, err
	}

	estimated, ok := estimatedResults(data)
	if !ok {
		return nil, &model.ParseError{Msg: "estimatedResults not found in ytInitialData"}
	}

	renderers := videoRenderers(data)
	videos := make([]model.VideoRecord, 0, maxResults)
	for _, renderer := range renderers {
		if len(videos) >= maxResults {
			break
		}
		record, parseErr := parseRenderer(renderer)
		if parseErr != nil {
			logger.GetLogger().WithField("error", parseErr).Debug("Skipping unparsable video renderer")
			continue
		}
		videos = append(videos, *record)
	}

	return &model.SearchResult{
		EstimatedResults: estimated,
		Videos:           videos,
	}, nil
}

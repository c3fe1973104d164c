package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"youtube-fetcher/domain/model"
)

func renderer(videoID, title, channelID, channelName, views, published, thumbnail string) map[string]interface{} {
	return map[string]interface{}{
		"videoRenderer": map[string]interface{}{
			"videoId": videoID,
			"title":   map[string]interface{}{"runs": []interface{}{map[string]interface{}{"text": title}}},
			"ownerText": map[string]interface{}{"runs": []interface{}{map[string]interface{}{
				"text": channelName,
				"navigationEndpoint": map[string]interface{}{
					"browseEndpoint": map[string]interface{}{"browseId": channelID},
				},
			}}},
			"viewCountText":     map[string]interface{}{"simpleText": views},
			"publishedTimeText": map[string]interface{}{"simpleText": published},
			"detailedMetadataSnippets": []interface{}{map[string]interface{}{
				"snippetText": map[string]interface{}{"runs": []interface{}{
					map[string]interface{}{"text": "about "},
					map[string]interface{}{"text": title},
				}},
			}},
			"thumbnail": map[string]interface{}{"thumbnails": []interface{}{
				map[string]interface{}{"url": "https://i.ytimg.com/small.jpg"},
				map[string]interface{}{"url": thumbnail},
			}},
		},
	}
}

func searchPage(t *testing.T, items ...interface{}) string {
	t.Helper()
	data := map[string]interface{}{
		"estimatedResults": "54321",
		"contents": map[string]interface{}{
			"twoColumnSearchResultsRenderer": map[string]interface{}{
				"primaryContents": map[string]interface{}{
					"sectionListRenderer": map[string]interface{}{
						"contents": []interface{}{
							map[string]interface{}{
								"itemSectionRenderer": map[string]interface{}{"contents": items},
							},
						},
					},
				},
			},
		},
	}
	raw, err := json.Marshal(data)
	assert.NoError(t, err)
	return "<html><script>var ytInitialData = " + string(raw) + ";</script></html>"
}

func TestSearch_ParsesVideoRenderers(t *testing.T) {
	page := searchPage(t,
		renderer("vid-1", "First Video", "chan-1", "Channel One", "1.2M views", "2 days ago", "https://i.ytimg.com/vid-1.jpg"),
		map[string]interface{}{"shelfRenderer": map[string]interface{}{}},
		map[string]interface{}{"channelRenderer": map[string]interface{}{}},
		renderer("vid-2", "Second Video", "chan-2", "Channel Two", "887 views", "1 week ago", "https://i.ytimg.com/vid-2.jpg"),
	)

	var gotCookie, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "test query", r.URL.Query().Get("search_query"))
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewScraperWithBaseURL(srv.URL, "CONSENT=YES+1", "test-agent/1.0")
	result, err := s.Search(context.Background(), "test query", 20)

	assert.NoError(t, err)
	assert.Equal(t, "CONSENT=YES+1", gotCookie)
	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Equal(t, int64(54321), result.EstimatedResults)
	assert.Len(t, result.Videos, 2)

	first := result.Videos[0]
	assert.Equal(t, "vid-1", first.VideoID)
	assert.Equal(t, "First Video", first.Title)
	assert.Equal(t, "chan-1", first.ChannelID)
	assert.Equal(t, "Channel One", first.ChannelName)
	assert.Equal(t, int64(1_200_000), first.Views)
	assert.Equal(t, "2 days ago", first.PublishedTime)
	assert.Equal(t, "about First Video", first.DescriptionSnippet)
	// Largest (last) thumbnail variant wins
	assert.Equal(t, "https://i.ytimg.com/vid-1.jpg", first.Thumbnail)
}

func TestSearch_MaxResultsCapsOutput(t *testing.T) {
	page := searchPage(t,
		renderer("vid-1", "One", "c", "C", "1 view", "", "u"),
		renderer("vid-2", "Two", "c", "C", "2 views", "", "u"),
		renderer("vid-3", "Three", "c", "C", "3 views", "", "u"),
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewScraperWithBaseURL(srv.URL, "", "agent")
	result, err := s.Search(context.Background(), "q", 2)

	assert.NoError(t, err)
	assert.Len(t, result.Videos, 2)
	assert.Equal(t, "vid-2", result.Videos[1].VideoID)
}

func TestSearch_UnparsableRecordDroppedNotBatch(t *testing.T) {
	page := searchPage(t,
		renderer("vid-1", "Good", "c", "C", "10 views", "", "u"),
		renderer("vid-2", "Bad", "c", "C", "mystery amount", "", "u"),
		renderer("vid-3", "AlsoGood", "c", "C", "20 views", "", "u"),
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewScraperWithBaseURL(srv.URL, "", "agent")
	result, err := s.Search(context.Background(), "q", 20)

	assert.NoError(t, err)
	assert.Len(t, result.Videos, 2)
	assert.Equal(t, "vid-1", result.Videos[0].VideoID)
	assert.Equal(t, "vid-3", result.Videos[1].VideoID)
}

func TestSearch_ServerErrorRetriesThreeTimes(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewScraperWithBaseURL(srv.URL, "", "agent").(*Scraper)
	s.backoff = func(int) time.Duration { return 0 }
	_, err := s.Search(context.Background(), "q", 20)

	assert.Error(t, err)
	var ue *model.UpstreamError
	assert.ErrorAs(t, err, &ue)
	// Initial request plus three retries
	assert.Equal(t, int32(4), atomic.LoadInt32(&requests))
}

func TestSearch_MissingMarkerFailsWithoutRetry(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("<html>no embedded data here</html>"))
	}))
	defer srv.Close()

	s := NewScraperWithBaseURL(srv.URL, "", "agent")
	_, err := s.Search(context.Background(), "q", 20)

	assert.True(t, model.IsParse(err))
	assert.Equal(t, 1, requests)
}

func TestSearch_RendersBothFormatsFromSameData(t *testing.T) {
	page := searchPage(t,
		renderer("vid-1", "Video", "chan-1", "Channel", "1.2M views", "1 day ago", "thumb"),
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewScraperWithBaseURL(srv.URL, "", "agent")
	result, err := s.Search(context.Background(), "q", 20)
	assert.NoError(t, err)

	standard := result.Render(model.FormatStandard).([]model.StandardVideo)
	tubebuddy := result.Render(model.FormatTubeBuddy).([]model.TubeBuddyVideo)

	assert.Equal(t, int64(1_200_000), standard[0].Views)
	assert.Equal(t, "1.2M views", tubebuddy[0].ViewCount)
	assert.Equal(t, standard[0].VideoID, tubebuddy[0].ID)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid-1", tubebuddy[0].URL)
	assert.Equal(t, "https://www.youtube.com/channel/chan-1", tubebuddy[0].ChannelURL)
}

func TestExtractInitialData_UnbalancedLiteral(t *testing.T) {
	_, err := extractInitialData("var ytInitialData = {\"a\": {\"b\": 1}")
	assert.True(t, model.IsParse(err))
}

func TestExtractInitialData_BracesInsideStrings(t *testing.T) {
	data, err := extractInitialData(`var ytInitialData = {"title": "has } and { inside", "n": 1};</script>`)
	assert.NoError(t, err)
	assert.Equal(t, "has } and { inside", data["title"])
}

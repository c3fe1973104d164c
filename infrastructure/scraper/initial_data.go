package scraper

import (
	"encoding/json"
	"strconv"
	"strings"

	"youtube-fetcher/domain/model"
)

const initialDataMarker = "var ytInitialData = "

// extractInitialData locates the script-assigned ytInitialData literal and
// parses the balanced JSON object that follows the marker. A missing marker
// or malformed JSON is a structural ParseError and must not be retried.
func extractInitialData(html string) (map[string]interface{}, error) {
	start := strings.Index(html, initialDataMarker)
	if start == -1 {
		return nil, &model.ParseError{Msg: "ytInitialData marker not found in page"}
	}
	start += len(initialDataMarker)

	depth := 0
	inString := false
	escaped := false
	end := -1
	for i := start; i < len(html); i++ {
		ch := html[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					end = i + 1
				}
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		return nil, &model.ParseError{Msg: "unbalanced ytInitialData literal"}
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(html[start:end]), &data); err != nil {
		return nil, &model.ParseError{Msg: "malformed ytInitialData JSON: " + err.Error()}
	}
	return data, nil
}

// videoRenderers walks the search result tree and collects videoRenderer
// items only, skipping shelves, ads and channel cards.
func videoRenderers(data map[string]interface{}) []map[string]interface{} {
	sections := digSlice(data,
		"contents", "twoColumnSearchResultsRenderer", "primaryContents", "sectionListRenderer", "contents")

	var renderers []map[string]interface{}
	for _, section := range sections {
		sectionMap, ok := section.(map[string]interface{})
		if !ok {
			continue
		}
		for _, item := range digSlice(sectionMap, "itemSectionRenderer", "contents") {
			itemMap, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if renderer, ok := itemMap["videoRenderer"].(map[string]interface{}); ok {
				renderers = append(renderers, renderer)
			}
		}
	}
	return renderers
}

// parseRenderer converts one videoRenderer into a VideoRecord. An unparsable
// view count fails this record only, never the whole batch.
func parseRenderer(renderer map[string]interface{}) (*model.VideoRecord, error) {
	videoID, _ := renderer["videoId"].(string)
	if videoID == "" {
		return nil, &model.ParseError{Msg: "videoRenderer without videoId"}
	}

	viewCountText := digString(renderer, "viewCountText", "simpleText")
	if viewCountText == "" {
		viewCountText = digString(renderer, "shortViewCountText", "simpleText")
	}
	views, err := ParseViewCount(viewCountText)
	if err != nil {
		return nil, err
	}

	ownerRun := firstRun(renderer, "ownerText")
	channelName, _ := ownerRun["text"].(string)

	return &model.VideoRecord{
		VideoID:            videoID,
		Title:              runText(firstRun(renderer, "title")),
		ChannelID:          digString(ownerRun, "navigationEndpoint", "browseEndpoint", "browseId"),
		ChannelName:        channelName,
		Views:              views,
		ViewCountText:      viewCountText,
		PublishedTime:      digString(renderer, "publishedTimeText", "simpleText"),
		DescriptionSnippet: descriptionSnippet(renderer),
		Thumbnail:          bestThumbnail(renderer),
	}, nil
}

func descriptionSnippet(renderer map[string]interface{}) string {
	snippets, _ := renderer["detailedMetadataSnippets"].([]interface{})
	if len(snippets) == 0 {
		return ""
	}
	first, ok := snippets[0].(map[string]interface{})
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, run := range digSlice(first, "snippetText", "runs") {
		if runMap, ok := run.(map[string]interface{}); ok {
			if text, ok := runMap["text"].(string); ok {
				b.WriteString(text)
			}
		}
	}
	return b.String()
}

// bestThumbnail returns the last (largest) thumbnail variant
func bestThumbnail(renderer map[string]interface{}) string {
	thumbnails := digSlice(renderer, "thumbnail", "thumbnails")
	if len(thumbnails) == 0 {
		return ""
	}
	last, ok := thumbnails[len(thumbnails)-1].(map[string]interface{})
	if !ok {
		return ""
	}
	url, _ := last["url"].(string)
	return url
}

// estimatedResults searches the whole tree; the field moves around between
// page layouts so a fixed path is not reliable.
func estimatedResults(data map[string]interface{}) (int64, bool) {
	value := findKeyRecursive(data, "estimatedResults")
	text, ok := value.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func findKeyRecursive(data interface{}, key string) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if value, ok := v[key]; ok {
			return value
		}
		for _, child := range v {
			if result := findKeyRecursive(child, key); result != nil {
				return result
			}
		}
	case []interface{}:
		for _, child := range v {
			if result := findKeyRecursive(child, key); result != nil {
				return result
			}
		}
	}
	return nil
}

func dig(m map[string]interface{}, keys ...string) map[string]interface{} {
	current := m
	for _, key := range keys {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func digSlice(m map[string]interface{}, keys ...string) []interface{} {
	if len(keys) == 0 || m == nil {
		return nil
	}
	parent := dig(m, keys[:len(keys)-1]...)
	if parent == nil {
		return nil
	}
	s, _ := parent[keys[len(keys)-1]].([]interface{})
	return s
}

func digString(m map[string]interface{}, keys ...string) string {
	if len(keys) == 0 || m == nil {
		return ""
	}
	parent := dig(m, keys[:len(keys)-1]...)
	if parent == nil {
		return ""
	}
	s, _ := parent[keys[len(keys)-1]].(string)
	return s
}

func firstRun(m map[string]interface{}, key string) map[string]interface{} {
	runs := digSlice(m, key, "runs")
	if len(runs) == 0 {
		return nil
	}
	run, _ := runs[0].(map[string]interface{})
	return run
}

func runText(run map[string]interface{}) string {
	if run == nil {
		return ""
	}
	text, _ := run["text"].(string)
	return text
}

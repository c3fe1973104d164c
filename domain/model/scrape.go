package model

import "fmt"

// Output formats for scraped search results
const (
	FormatStandard  = "standard"
	FormatTubeBuddy = "tubebuddy"
)

// VideoRecord is a single video parsed out of the YouTube search results page
type VideoRecord struct {
	VideoID            string
	Title              string
	ChannelID          string
	ChannelName        string
	Views              int64
	ViewCountText      string
	PublishedTime      string
	DescriptionSnippet string
	Thumbnail          string
}

// StandardVideo is the snake_case rendering with numeric views
type StandardVideo struct {
	VideoID            string `json:"video_id"`
	Title              string `json:"title"`
	ChannelName        string `json:"channel_name"`
	ChannelID          string `json:"channel_id"`
	Views              int64  `json:"views"`
	PublishedTime      string `json:"published_time"`
	DescriptionSnippet string `json:"description_snippet"`
	Thumbnail          string `json:"thumbnail"`
}

// TubeBuddyVideo is the PascalCase rendering with textual view counts
type TubeBuddyVideo struct {
	Type          string `json:"Type"`
	ID            string `json:"Id"`
	URL           string `json:"URL"`
	ChannelID     string `json:"ChannelId"`
	ChannelName   string `json:"ChannelName"`
	ChannelURL    string `json:"ChannelUrl"`
	Desc          string `json:"Desc"`
	PublishedTime string `json:"PublishedTime"`
	Thumbnail     string `json:"Thumbnail"`
	Title         string `json:"Title"`
	ViewCount     string `json:"ViewCount"`
}

// Standard renders the record in standard form
func (v *VideoRecord) Standard() StandardVideo {
	return StandardVideo{
		VideoID:            v.VideoID,
		Title:              v.Title,
		ChannelName:        v.ChannelName,
		ChannelID:          v.ChannelID,
		Views:              v.Views,
		PublishedTime:      v.PublishedTime,
		DescriptionSnippet: v.DescriptionSnippet,
		Thumbnail:          v.Thumbnail,
	}
}

// TubeBuddy renders the record in TubeBuddy form
func (v *VideoRecord) TubeBuddy() TubeBuddyVideo {
	return TubeBuddyVideo{
		Type:          "video",
		ID:            v.VideoID,
		URL:           fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.VideoID),
		ChannelID:     v.ChannelID,
		ChannelName:   v.ChannelName,
		ChannelURL:    fmt.Sprintf("https://www.youtube.com/channel/%s", v.ChannelID),
		Desc:          v.DescriptionSnippet,
		PublishedTime: v.PublishedTime,
		Thumbnail:     v.Thumbnail,
		Title:         v.Title,
		ViewCount:     v.ViewCountText,
	}
}

// SearchResult is the outcome of scraping one search results page
type SearchResult struct {
	EstimatedResults int64
	Videos           []VideoRecord
}

// Render serializes the videos in the requested output format
func (r *SearchResult) Render(format string) interface{} {
	if format == FormatTubeBuddy {
		videos := make([]TubeBuddyVideo, 0, len(r.Videos))
		for i := range r.Videos {
			videos = append(videos, r.Videos[i].TubeBuddy())
		}
		return videos
	}
	videos := make([]StandardVideo, 0, len(r.Videos))
	for i := range r.Videos {
		videos = append(videos, r.Videos[i].Standard())
	}
	return videos
}

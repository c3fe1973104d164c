package model

// MediaType identifies an image format detected from magic bytes
type MediaType string

const (
	MediaTypeWebP    MediaType = "image/webp"
	MediaTypePNG     MediaType = "image/png"
	MediaTypeJPEG    MediaType = "image/jpeg"
	MediaTypeUnknown MediaType = "application/octet-stream"
)

// Thumbnail is a downloaded and encoded thumbnail image. Data holds the raw
// bytes for debug persistence and is not serialized into job results.
type Thumbnail struct {
	URL       string    `json:"url"`
	MediaType MediaType `json:"media_type"`
	Base64    string    `json:"base64"`
	Error     string    `json:"error,omitempty"`
	Data      []byte    `json:"-"`
}

// ThumbnailResult is the job result payload for a thumbnail fetch
type ThumbnailResult struct {
	Query      string      `json:"query"`
	Thumbnails []Thumbnail `json:"thumbnails"`
	Count      int         `json:"count"`
}

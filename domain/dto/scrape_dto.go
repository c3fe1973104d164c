package dto

// ScrapeRequest asks for a background scrape of YouTube search results
type ScrapeRequest struct {
	Query      string `json:"query" binding:"required"`
	MaxResults int    `json:"max_results"`
	Format     string `json:"format"`
}

// ThumbnailFetchRequest asks for a background thumbnail download run
type ThumbnailFetchRequest struct {
	Query         string `json:"query" binding:"required"`
	MaxThumbnails int    `json:"max_thumbnails"`
}

// ScrapeResult is embedded into the job result when a scrape completes
type ScrapeResult struct {
	Success          bool        `json:"success"`
	EstimatedResults int64       `json:"estimated_results"`
	Videos           interface{} `json:"videos"`
}

package model

import "encoding/json"

// Job types
const (
	JobTypeScrape    = "scrape"
	JobTypeThumbnail = "thumbnail"
)

// Job statuses
const (
	JobStatusQueued  = "queued"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// Job represents a background job tracked in the job store
type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"job_type"`
	Status    string          `json:"status"`
	Progress  int             `json:"progress"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt int64           `json:"updated_at"`
}

// IsTerminal reports whether the job reached a final state
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusFailed
}

// JobPayload is the unit of work pushed onto the job queue
type JobPayload struct {
	JobID         string `json:"job_id"`
	Type          string `json:"type"`
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results,omitempty"`
	OutputFormat  string `json:"output_format,omitempty"`
	MaxThumbnails int    `json:"max_thumbnails,omitempty"`
}

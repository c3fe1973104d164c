package dto

import "encoding/json"

// JobResponse acknowledges an accepted job submission
type JobResponse struct {
	JobID string `json:"job_id"`
}

// JobStatusResponse is the public view of a job record
type JobStatusResponse struct {
	Status   string          `json:"status"`
	Progress int             `json:"progress"`
	Result   json.RawMessage `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}

package types

import "time"

// Capture is one saved snapshot as seen by the gallery, the catalog and the HTTP API.
type Capture struct {
	ID        int64     `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	TakenAt   time.Time `json:"taken_at"`
	Trigger   string    `json:"trigger,omitempty"` // "smile" or "manual"; empty when unknown
	Size      int64     `json:"size,omitempty"`
}

// Session summarises one run of the camera loop.
type Session struct {
	ID           string     `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	CaptureCount int        `json:"capture_count"`
}

// ErrorResult is the JSON body returned by the HTTP API on failure.
type ErrorResult struct {
	Error string `json:"error"`
}

package domain

import "time"

// MediaKind enumerates the media categories accepted at intake.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindImage MediaKind = "image"
)

// ProcessingStatus enumerates the lifecycle states of an upload.
type ProcessingStatus string

const (
	StatusProcessing ProcessingStatus = "processing"
	StatusDone       ProcessingStatus = "done"
	StatusFailed     ProcessingStatus = "failed"
)

// ProcessingRecord tracks one submitted media item. UserID is an opaque
// caller-supplied identifier; it is never validated against a registry.
type ProcessingRecord struct {
	UserID    string           `json:"user_id"`
	Status    ProcessingStatus `json:"status"`
	MediaType MediaKind        `json:"media_type"`
	CreatedAt time.Time        `json:"created_at"`
}

package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the state of a pipeline step.
type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ProgressEvent reports a change in one pipeline step.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// RunID groups the events of a single pipeline run
	RunID uuid.UUID `json:"run_id"`

	// Step names the pipeline step, e.g. "retrieve_transcript"
	Step string `json:"step"`

	Status  Status `json:"status"`
	VideoID string `json:"video_id,omitempty"`

	// Message is a short human readable description
	Message string `json:"message"`

	CreatedAt time.Time `json:"created_at"`
}

// NewProgressEvent creates a ProgressEvent stamped with a fresh ID and the current time.
func NewProgressEvent(runID uuid.UUID, step string, status Status, videoID, message string) *ProgressEvent {
	return &ProgressEvent{
		ID:        uuid.New(),
		RunID:     runID,
		Step:      step,
		Status:    status,
		VideoID:   videoID,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *ProgressEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *ProgressEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ProgressEvent) error
}

package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the gamification services.
const (
	// EventTypeProgressUpdated is emitted after any XP, streak or quest
	// mutation to a user's progress state.
	EventTypeProgressUpdated = "progress.updated"

	// EventTypeLevelUp is emitted when an XP award crosses a level boundary.
	EventTypeLevelUp = "progress.level_up"

	// EventTypeBadgeUnlocked is emitted once per newly unlocked badge.
	EventTypeBadgeUnlocked = "progress.badge_unlocked"
)

// ProgressEvent represents a gamification state change for a single user.
// It carries the changed data as an opaque JSON payload so that emitters
// have no direct dependency on the handlers that consume them.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates what kind of progress change occurred
	Type string `json:"type"`

	// UserID identifies the user whose progress changed
	UserID string `json:"user_id"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProgressEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProgressEvent creates a new ProgressEvent with the specified type,
// user and payload.
func NewProgressEvent(eventType, userID string, payload interface{}) (*ProgressEvent, error) {
	// Serialize the payload to JSON
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProgressEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ProgressEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *ProgressEvent) error
}

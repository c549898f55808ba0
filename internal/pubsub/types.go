package pubsub

import (
	"sync"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	mu       sync.Mutex
	topics   map[string]*pubsub.Topic
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventScheduleApplied carries an ApplyResult after a non-dry-run apply,
	// for downstream consumers like stats rollups and calendar sync.
	EventScheduleApplied EventType = "schedule-applied"
)

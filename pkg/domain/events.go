package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSearchStart EventType = "search_start"
	EventProgress    EventType = "progress"
	EventOutcome     EventType = "outcome"
)

// SearchEvent describes a point in the lifecycle of one search.
type SearchEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Strategy  string    `json:"strategy,omitempty"`

	// Progress counters, populated where meaningful.
	Frames int `json:"frames,omitempty"`
	Trials int `json:"trials,omitempty"`
	Nodes  int `json:"nodes,omitempty"`
}

// LifecycleHooks defines callbacks for search observability. All hooks are
// optional and invoked synchronously from the coordinator.
type LifecycleHooks struct {
	OnSearchStart func(context.Context, *SearchEvent)
	OnProgress    func(context.Context, *SearchEvent)
	OnOutcome     func(context.Context, *SearchEvent)
}

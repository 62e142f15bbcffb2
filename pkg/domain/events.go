package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter   EventType = "step_enter"
	EventStepLeave   EventType = "step_leave"
	EventStepSkipped EventType = "step_skipped"
	EventFinish      EventType = "finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Mode      Mode      `json:"mode"`
}

// StepEvent represents entering, leaving or skipping a step.
type StepEvent struct {
	EventBase
	Index   int    `json:"index"`
	Target  Target `json:"target"`
	Message string `json:"message,omitempty"`
}

// FinishEvent is emitted once, when the tour reaches its sink state.
type FinishEvent struct {
	EventBase
	Shown   int `json:"shown"`
	Skipped int `json:"skipped"`
}

// LifecycleHooks defines callbacks for driver observability.
type LifecycleHooks struct {
	OnStepEnter   func(context.Context, *StepEvent)
	OnStepLeave   func(context.Context, *StepEvent)
	OnStepSkipped func(context.Context, *StepEvent)
	OnFinish      func(context.Context, *FinishEvent)
}

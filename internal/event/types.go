// Package event defines the events a sequencer run emits, so presentation
// layers (TUI, headless printer, logs) can follow a run without depending on
// the sequencer itself.
package event

import (
	"time"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "step.changed", "run.finished")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeRunStarted    = "run.started"
	TypeRunFinished   = "run.finished"
	TypeBoardCleared  = "board.cleared"
	TypeStepChanged   = "step.changed"
	TypeArrowAnimated = "arrow.animated"
	TypeProgress      = "progress.updated"
	TypeInfoShown     = "info.shown"
	TypeInfoHidden    = "info.hidden"
	TypeStepPulsed    = "step.pulsed"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string, at time.Time) baseEvent {
	return baseEvent{eventType: eventType, timestamp: at}
}

// -----------------------------------------------------------------------------
// Run Lifecycle Events
// -----------------------------------------------------------------------------

// RunStartedEvent is emitted when a normal or error-simulation run begins.
type RunStartedEvent struct {
	baseEvent
	RunID string
	Kind  string // "normal" or "error"
}

// NewRunStartedEvent creates a RunStartedEvent.
func NewRunStartedEvent(at time.Time, runID, kind string) RunStartedEvent {
	return RunStartedEvent{baseEvent: newBaseEvent(TypeRunStarted, at), RunID: runID, Kind: kind}
}

// RunFinishedEvent is emitted when the running flag clears.
type RunFinishedEvent struct {
	baseEvent
	RunID   string
	Kind    string
	Outcome string // "completed", "failed" or "canceled"
}

// NewRunFinishedEvent creates a RunFinishedEvent.
func NewRunFinishedEvent(at time.Time, runID, kind, outcome string) RunFinishedEvent {
	return RunFinishedEvent{
		baseEvent: newBaseEvent(TypeRunFinished, at),
		RunID:     runID,
		Kind:      kind,
		Outcome:   outcome,
	}
}

// -----------------------------------------------------------------------------
// Board Events
// -----------------------------------------------------------------------------

// BoardClearedEvent is emitted when every step, arrow and the progress bar
// return to their initial state.
type BoardClearedEvent struct {
	baseEvent
	Steps int
}

// NewBoardClearedEvent creates a BoardClearedEvent.
func NewBoardClearedEvent(at time.Time, total int) BoardClearedEvent {
	return BoardClearedEvent{baseEvent: newBaseEvent(TypeBoardCleared, at), Steps: total}
}

// StepChangedEvent is emitted when a step element changes visual state.
type StepChangedEvent struct {
	baseEvent
	Index  int
	StepID string
	State  steps.State
}

// NewStepChangedEvent creates a StepChangedEvent.
func NewStepChangedEvent(at time.Time, index int, stepID string, state steps.State) StepChangedEvent {
	return StepChangedEvent{
		baseEvent: newBaseEvent(TypeStepChanged, at),
		Index:     index,
		StepID:    stepID,
		State:     state,
	}
}

// ArrowAnimatedEvent is emitted when the transition arrow leaving a step animates.
type ArrowAnimatedEvent struct {
	baseEvent
	Index int
}

// NewArrowAnimatedEvent creates an ArrowAnimatedEvent.
func NewArrowAnimatedEvent(at time.Time, index int) ArrowAnimatedEvent {
	return ArrowAnimatedEvent{baseEvent: newBaseEvent(TypeArrowAnimated, at), Index: index}
}

// ProgressEvent is emitted when the progress bar width changes.
type ProgressEvent struct {
	baseEvent
	Percent float64
}

// NewProgressEvent creates a ProgressEvent.
func NewProgressEvent(at time.Time, percent float64) ProgressEvent {
	return ProgressEvent{baseEvent: newBaseEvent(TypeProgress, at), Percent: percent}
}

// StepPulsedEvent is emitted during the completion flourish.
type StepPulsedEvent struct {
	baseEvent
	Index int
}

// NewStepPulsedEvent creates a StepPulsedEvent.
func NewStepPulsedEvent(at time.Time, index int) StepPulsedEvent {
	return StepPulsedEvent{baseEvent: newBaseEvent(TypeStepPulsed, at), Index: index}
}

// -----------------------------------------------------------------------------
// Info Panel Events
// -----------------------------------------------------------------------------

// InfoShownEvent is emitted when the info panel displays an entry.
type InfoShownEvent struct {
	baseEvent
	Entry    steps.Descriptor
	Duration time.Duration // how long until the panel auto-hides
}

// NewInfoShownEvent creates an InfoShownEvent.
func NewInfoShownEvent(at time.Time, entry steps.Descriptor, d time.Duration) InfoShownEvent {
	return InfoShownEvent{baseEvent: newBaseEvent(TypeInfoShown, at), Entry: entry, Duration: d}
}

// InfoHiddenEvent is emitted when the info panel hides.
type InfoHiddenEvent struct {
	baseEvent
}

// NewInfoHiddenEvent creates an InfoHiddenEvent.
func NewInfoHiddenEvent(at time.Time) InfoHiddenEvent {
	return InfoHiddenEvent{baseEvent: newBaseEvent(TypeInfoHidden, at)}
}

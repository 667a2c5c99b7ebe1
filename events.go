package genui

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Event Interface
// -----------------------------------------------------------------------------

// Severity ranks events for diagnostics sinks.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Event is a diagnostic published through a [Session].
//
// Every event can be reduced to a (severity, structured context, message) triple,
// which is all a logging sink needs. Subscribers that want the typed payload use the
// subscriber interfaces in subscribers.go instead.
//
// The set of events is closed; events are created by this module only.
type Event interface {
	// EventName returns one of the EventName constants.
	EventName() string

	// Severity returns how important the event is.
	Severity() Severity

	// Message returns a one-line human readable description.
	Message() string

	// Attrs returns structured context as alternating key/value pairs.
	Attrs() []any

	// Base returns the fields common to all events.
	Base() BaseEvent

	setBase(b BaseEvent)
}

// BaseEvent holds the fields the session stamps on every published event.
type BaseEvent struct {
	// Session is the name of the publishing session.
	Session string

	// Frame is the 1-indexed frame being processed, or 0 outside of frame processing.
	Frame int

	// Timestamp is when the event was published.
	Timestamp time.Time
}

// Base implements Event.
func (b *BaseEvent) Base() BaseEvent { return *b }

func (b *BaseEvent) setBase(v BaseEvent) { *b = v }

func (b *BaseEvent) attrs(extra ...any) []any {
	out := make([]any, 0, len(extra)+4)
	out = append(out, "session", b.Session)
	if b.Frame > 0 {
		out = append(out, "frame", b.Frame)
	}
	return append(out, extra...)
}

// -----------------------------------------------------------------------------
// Frame Events
// -----------------------------------------------------------------------------

// FrameHydratedEvent is published when an intermediate frame parsed and walked
// successfully and its tree was emitted.
type FrameHydratedEvent struct {
	BaseEvent

	// Length is the frame length in bytes.
	Length int

	// Duration is how long parse and walk took.
	Duration time.Duration
}

func (e *FrameHydratedEvent) EventName() string  { return EventNameFrameHydrated }
func (e *FrameHydratedEvent) Severity() Severity { return SeverityDebug }
func (e *FrameHydratedEvent) Message() string    { return "frame hydrated" }
func (e *FrameHydratedEvent) Attrs() []any {
	return e.attrs("length", e.Length, "duration", e.Duration)
}

// FrameRejectedEvent is published when an intermediate frame failed to parse or
// walk. The frame is skipped and nothing is emitted for it.
type FrameRejectedEvent struct {
	BaseEvent

	// Length is the frame length in bytes.
	Length int

	// Err is the swallowed error.
	Err error
}

func (e *FrameRejectedEvent) EventName() string  { return EventNameFrameRejected }
func (e *FrameRejectedEvent) Severity() Severity { return SeverityDebug }
func (e *FrameRejectedEvent) Message() string    { return "frame not ready" }
func (e *FrameRejectedEvent) Attrs() []any {
	return e.attrs("length", e.Length, "error", errString(e.Err))
}

// FrameRegressionEvent is published when a frame is not an extension of the frame
// before it. The frame is still processed.
type FrameRegressionEvent struct {
	BaseEvent

	// PreviousLength is the length of the previous frame.
	PreviousLength int

	// Length is the length of the offending frame.
	Length int
}

func (e *FrameRegressionEvent) EventName() string  { return EventNameFrameRegression }
func (e *FrameRegressionEvent) Severity() Severity { return SeverityWarn }
func (e *FrameRegressionEvent) Message() string {
	return "frame does not extend the previous frame"
}
func (e *FrameRegressionEvent) Attrs() []any {
	return e.attrs("previous_length", e.PreviousLength, "length", e.Length)
}

// FinalHydratedEvent is published when the final document was hydrated.
type FinalHydratedEvent struct {
	BaseEvent

	// Length is the final document length in bytes.
	Length int

	// Duration is how long parse and walk took.
	Duration time.Duration
}

func (e *FinalHydratedEvent) EventName() string  { return EventNameFinalHydrated }
func (e *FinalHydratedEvent) Severity() Severity { return SeverityInfo }
func (e *FinalHydratedEvent) Message() string    { return "final document hydrated" }
func (e *FinalHydratedEvent) Attrs() []any {
	return e.attrs("length", e.Length, "duration", e.Duration)
}

// -----------------------------------------------------------------------------
// Walker Events
// -----------------------------------------------------------------------------

// UnresolvedComponentEvent is published once per component tag whose name is not in
// the registry. The tag and its subtree are dropped from the output.
type UnresolvedComponentEvent struct {
	BaseEvent

	// Component is the unresolved tag name.
	Component string

	// Hint tells the caller how to fix it.
	Hint string
}

func (e *UnresolvedComponentEvent) EventName() string  { return EventNameUnresolvedComponent }
func (e *UnresolvedComponentEvent) Severity() Severity { return SeverityWarn }
func (e *UnresolvedComponentEvent) Message() string {
	return fmt.Sprintf("%s: %s", ErrUnresolvedComponent, e.Component)
}
func (e *UnresolvedComponentEvent) Attrs() []any {
	return e.attrs("component", e.Component, "hint", e.Hint)
}

// -----------------------------------------------------------------------------
// Error Events
// -----------------------------------------------------------------------------

// ErrorEvent is published when a render terminates with an error.
type ErrorEvent struct {
	BaseEvent

	// Err is the error returned to the consumer.
	Err error
}

func (e *ErrorEvent) EventName() string  { return EventNameError }
func (e *ErrorEvent) Severity() Severity { return SeverityError }
func (e *ErrorEvent) Message() string    { return "render failed" }
func (e *ErrorEvent) Attrs() []any       { return e.attrs("error", errString(e.Err)) }

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Package tt provides test helpers and doubles for the genui packages.
package tt

import (
	"sync"

	"github.com/rickchristie/genui"
)

// -----------------------------------------------------------------------------
// Recorder - captures published events
// -----------------------------------------------------------------------------

// Recorder is a genui.EventDispatcher that keeps every event it receives.
// It can be used directly as a session dispatcher or subscribed to an
// events.Registry (it implements genui.EventSubscriber).
type Recorder struct {
	mu     sync.Mutex
	events []genui.Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Dispatch implements genui.EventDispatcher.
func (r *Recorder) Dispatch(_ *genui.Session, event genui.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// OnEvent implements genui.EventSubscriber.
func (r *Recorder) OnEvent(sess *genui.Session, event genui.Event) {
	r.Dispatch(sess, event)
}

// Events returns a copy of the recorded events in publish order.
func (r *Recorder) Events() []genui.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]genui.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the recorded event names in publish order.
func (r *Recorder) Names() []string {
	events := r.Events()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName()
	}
	return names
}

// Count returns how many events named name were recorded.
func (r *Recorder) Count(name string) int {
	return CountEventNames(r.Events())[name]
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// CountEventNames counts events by name.
func CountEventNames(events []genui.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.EventName()]++
	}
	return counts
}

// Unresolved returns the component names of all UnresolvedComponentEvents, in order.
func Unresolved(events []genui.Event) []string {
	var names []string
	for _, e := range events {
		if u, ok := e.(*genui.UnresolvedComponentEvent); ok {
			names = append(names, u.Component)
		}
	}
	return names
}

// -----------------------------------------------------------------------------
// Session Helpers
// -----------------------------------------------------------------------------

// NewSession creates a session over a registry of the given component names, with a
// Recorder attached and a mock clock that advances one millisecond per reading.
func NewSession(components ...string) (*genui.Session, *Recorder) {
	rec := NewRecorder()
	sess := genui.NewSession("test", Registry(components...)).
		WithEvents(rec).
		WithTimeProvider(NewClock())
	return sess, rec
}

// Registry builds a registry where each component's handle is its own name.
func Registry(components ...string) *genui.Registry {
	examples := make([]genui.Example, 0, len(components))
	for _, name := range components {
		examples = append(examples, genui.Example{Component: name, Handle: name})
	}
	return genui.NewRegistry(examples...)
}

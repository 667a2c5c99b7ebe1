package genui

import (
	"sync"
	"time"
)

// EventDispatcher delivers published events to subscribers.
// events.Registry is the standard implementation.
type EventDispatcher interface {
	Dispatch(sess *Session, event Event)
}

// Session is the ambient state of one completion: the component registry, the
// diagnostics sink, stats and the frame currently being processed.
//
// A Session is created once per completion and outlives every frame. The walker and
// the render coordinator publish their diagnostics through it; a nil *Session is
// accepted everywhere and silently drops events.
type Session struct {
	mu sync.RWMutex

	name     string
	registry *Registry
	events   EventDispatcher
	stats    *SessionStats
	clock    TimeProvider

	frame     int
	startTime time.Time

	// unresolved holds component names already reported as unresolved.
	unresolved map[string]bool
}

// NewSession creates a Session with the given name and registry.
func NewSession(name string, registry *Registry) *Session {
	clock := NewDefaultTimeProvider()
	return &Session{
		name:       name,
		registry:   registry,
		stats:      NewSessionStats(),
		clock:      clock,
		startTime:  clock.Now(),
		unresolved: make(map[string]bool),
	}
}

// WithEvents sets the event dispatcher. Returns the session for chaining.
func (s *Session) WithEvents(d EventDispatcher) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = d
	return s
}

// WithTimeProvider replaces the session clock. Returns the session for chaining.
func (s *Session) WithTimeProvider(tp TimeProvider) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = tp
	s.startTime = tp.Now()
	return s
}

// Name returns the session name.
func (s *Session) Name() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Registry returns the component registry.
func (s *Session) Registry() *Registry {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Stats returns the session counters.
func (s *Session) Stats() *SessionStats {
	if s == nil {
		return NewSessionStats()
	}
	return s.stats
}

// Clock returns the session time provider.
func (s *Session) Clock() TimeProvider {
	if s == nil {
		return NewDefaultTimeProvider()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock
}

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startTime
}

// Frame returns the 1-indexed frame currently being processed, or 0.
func (s *Session) Frame() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// SetFrame records the frame currently being processed. Events published until the
// next call are stamped with it. Pass 0 when processing the final document.
func (s *Session) SetFrame(frame int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
}

// Publish stamps event with the session base fields, updates stats and dispatches
// it to the configured dispatcher.
func (s *Session) Publish(event Event) {
	if s == nil || event == nil {
		return
	}

	s.mu.RLock()
	base := BaseEvent{
		Session:   s.name,
		Frame:     s.frame,
		Timestamp: s.clock.Now(),
	}
	dispatcher := s.events
	s.mu.RUnlock()

	event.setBase(base)
	s.updateStats(event)

	if dispatcher != nil {
		dispatcher.Dispatch(s, event)
	}
}

// updateStats bumps the counters that follow directly from an event.
func (s *Session) updateStats(event Event) {
	switch e := event.(type) {
	case *FrameHydratedEvent:
		s.stats.IncrCounter(KeyFramesHydrated, 1)
	case *FrameRejectedEvent:
		s.stats.IncrCounter(KeyFramesRejected, 1)
	case *FrameRegressionEvent:
		s.stats.IncrCounter(KeyFrameRegressions, 1)
	case *UnresolvedComponentEvent:
		s.stats.IncrCounter(KeyUnresolvedComponents, 1)
		s.stats.IncrCounter(KeyUnresolvedComponentsFor+e.Component, 1)
	}
}

// PublishUnresolvedComponent publishes an UnresolvedComponentEvent for name.
//
// Every frame of a stream is hydrated from scratch, so the same tag is met again and
// again; only the first occurrence of each name in a session is reported.
// It returns whether an event was published.
func (s *Session) PublishUnresolvedComponent(name string) bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	if s.unresolved[name] {
		s.mu.Unlock()
		return false
	}
	s.unresolved[name] = true
	s.mu.Unlock()

	s.Publish(&UnresolvedComponentEvent{
		Component: name,
		Hint:      "add a usage example of <" + name + "> to the component examples",
	})
	return true
}

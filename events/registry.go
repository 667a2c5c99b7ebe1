package events

import (
	"github.com/rickchristie/genui"
)

// Registry manages event subscribers and dispatches events to them.
//
// # Overview
//
// Registry implements genui.EventDispatcher. It:
//   - Stores registered subscribers in order
//   - Dispatches each event to the subscribers implementing the matching interface
//   - Dispatches every event to subscribers implementing genui.EventSubscriber
//
// Subscribers can implement any combination of subscriber interfaces; they only
// receive events for the interfaces they implement.
//
// # Creating and Using
//
//	registry := events.NewRegistry()
//	registry.Subscribe(events.NewSlogSubscriber(slog.Default()))
//	registry.Subscribe(&PruneCounter{})
//
//	sess := genui.NewSession("chat-42", reg).WithEvents(registry)
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all subscribers before the session starts
// rendering. Dispatch is only called by genui.Session.
type Registry struct {
	subscribers []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		subscribers: make([]any, 0),
	}
}

// Subscribe adds a subscriber to the registry. The subscriber can implement any
// combination of subscriber interfaces (genui.FrameHydratedSubscriber,
// genui.UnresolvedComponentSubscriber, genui.EventSubscriber, etc.).
//
// Subscribers are called in the order they are registered.
func (r *Registry) Subscribe(subscriber any) *Registry {
	r.subscribers = append(r.subscribers, subscriber)
	return r
}

// Dispatch sends an event to all matching subscribers.
// This is called by Session.Publish after stamping the event and updating stats.
func (r *Registry) Dispatch(sess *genui.Session, event genui.Event) {
	switch e := event.(type) {
	case *genui.FrameHydratedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(genui.FrameHydratedSubscriber); ok {
				sub.OnFrameHydrated(sess, e)
			}
		}
	case *genui.FrameRejectedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(genui.FrameRejectedSubscriber); ok {
				sub.OnFrameRejected(sess, e)
			}
		}
	case *genui.FrameRegressionEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(genui.FrameRegressionSubscriber); ok {
				sub.OnFrameRegression(sess, e)
			}
		}
	case *genui.FinalHydratedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(genui.FinalHydratedSubscriber); ok {
				sub.OnFinalHydrated(sess, e)
			}
		}
	case *genui.UnresolvedComponentEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(genui.UnresolvedComponentSubscriber); ok {
				sub.OnUnresolvedComponent(sess, e)
			}
		}
	case *genui.ErrorEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(genui.ErrorSubscriber); ok {
				sub.OnError(sess, e)
			}
		}
	}

	for _, s := range r.subscribers {
		if sub, ok := s.(genui.EventSubscriber); ok {
			sub.OnEvent(sess, event)
		}
	}
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	return len(r.subscribers)
}

// Clear removes all registered subscribers.
func (r *Registry) Clear() {
	r.subscribers = make([]any, 0)
}

package genui

// Subscriber interfaces define type-safe event subscriptions.
//
// Implement any combination of these interfaces on a single struct to receive
// multiple event types. The events.Registry detects which interfaces a subscriber
// implements and only calls those.
//
// # Example
//
//	type PruneCounter struct {
//	    names []string
//	}
//
//	func (c *PruneCounter) OnUnresolvedComponent(
//	    sess *Session,
//	    event *UnresolvedComponentEvent,
//	) {
//	    c.names = append(c.names, event.Component)
//	}
//
//	registry := events.NewRegistry()
//	registry.Subscribe(&PruneCounter{})

// FrameHydratedSubscriber receives FrameHydratedEvent events.
type FrameHydratedSubscriber interface {
	OnFrameHydrated(sess *Session, event *FrameHydratedEvent)
}

// FrameRejectedSubscriber receives FrameRejectedEvent events.
type FrameRejectedSubscriber interface {
	OnFrameRejected(sess *Session, event *FrameRejectedEvent)
}

// FrameRegressionSubscriber receives FrameRegressionEvent events.
type FrameRegressionSubscriber interface {
	OnFrameRegression(sess *Session, event *FrameRegressionEvent)
}

// FinalHydratedSubscriber receives FinalHydratedEvent events.
type FinalHydratedSubscriber interface {
	OnFinalHydrated(sess *Session, event *FinalHydratedEvent)
}

// UnresolvedComponentSubscriber receives UnresolvedComponentEvent events.
type UnresolvedComponentSubscriber interface {
	OnUnresolvedComponent(sess *Session, event *UnresolvedComponentEvent)
}

// ErrorSubscriber receives ErrorEvent events.
type ErrorSubscriber interface {
	OnError(sess *Session, event *ErrorEvent)
}

// EventSubscriber receives every event. Use it for generic sinks such as loggers.
type EventSubscriber interface {
	OnEvent(sess *Session, event Event)
}

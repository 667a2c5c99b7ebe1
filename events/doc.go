// Package events provides the event subscription registry and the standard
// diagnostics sinks for genui sessions.
//
// # Overview
//
// Sessions publish typed events while a stream is hydrated: frames that hydrated,
// frames that were rejected as not ready yet, unresolved components, the final
// document and terminal errors. A [Registry] attached to the session with
// genui.Session.WithEvents delivers each event to the subscribers that implement the
// matching interface.
//
// # Quick Start
//
//	// 1. Create subscribers by implementing subscriber interfaces
//	type MissingComponents struct {
//	    names []string
//	}
//
//	func (m *MissingComponents) OnUnresolvedComponent(
//	    sess *genui.Session,
//	    event *genui.UnresolvedComponentEvent,
//	) {
//	    m.names = append(m.names, event.Component)
//	}
//
//	// 2. Create and configure registry
//	missing := &MissingComponents{}
//	registry := events.NewRegistry().
//	    Subscribe(missing).
//	    Subscribe(events.NewSlogSubscriber(logger))
//
//	// 3. Attach it to the session
//	sess := genui.NewSession("chat-42", components).WithEvents(registry)
//
// # Event Types
//
//   - FrameHydratedEvent (debug): an intermediate frame was emitted
//   - FrameRejectedEvent (debug): an intermediate frame was swallowed
//   - FrameRegressionEvent (warn): a frame did not extend the previous one
//   - FinalHydratedEvent (info): the final document was emitted
//   - UnresolvedComponentEvent (warn): a tag named an unknown component
//   - ErrorEvent (error): the stream ended with an error
//
// # Sinks
//
// [SlogSubscriber] writes every event through log/slog, mapping the event severity
// to the log level. [YAMLSubscriber] dumps events with all their attributes, which
// is handy when replaying recorded generations.
package events

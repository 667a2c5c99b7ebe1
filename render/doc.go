// Package render drives a streaming generation through the markup gate and the
// walker, emitting a UI tree for every frame that hydrates and always ending with
// the tree of the final document.
//
// # Quick Start
//
//	reg := genui.NewRegistry(examples...)
//	for tree, err := range render.Stream(ctx, source, reg, render.DefaultConfig()) {
//	    if err != nil {
//	        return err // only final-document and source failures get here
//	    }
//	    redraw(tree)
//	}
//
// To receive diagnostics, create the session yourself:
//
//	registry := events.NewRegistry().Subscribe(events.NewSlogSubscriber(logger))
//	sess := genui.NewSession("chat-42", reg).WithEvents(registry)
//	c := render.New(sess, render.DefaultConfig())
//	for tree, err := range c.Stream(ctx, source) { ... }
//
// # State Machine
//
//	Streaming --emit/swallow/skip--> Streaming
//	Streaming --finalize--> Finalizing --complete--> Done
//	Streaming, Finalizing --fail/abort--> Done
//
// A frame that does not parse, or uses an attribute expression other than a
// literal, is swallowed: a FrameRejectedEvent is published and nothing is emitted,
// so the consumer keeps showing the previous tree. Every other failure moves to
// Done through "fail" and is returned as the last element of the sequence.
package render

package genui

import "errors"

// Hydration errors.
//
// Per-frame failures are swallowed by the render coordinator and only show up as
// events. Errors on the final document are returned to the caller.
var (
	// ErrUnresolvedComponent describes a component tag missing from the registry.
	// It is only ever carried by diagnostics; the node is dropped, the frame succeeds.
	ErrUnresolvedComponent = errors.New("unresolved component")

	// ErrUnsupportedAttributeExpression is returned when a component attribute value is
	// an expression other than a literal scalar. It aborts the walk of that document.
	ErrUnsupportedAttributeExpression = errors.New("unsupported attribute expression")

	// ErrUnhandledNodeKind is returned when the walker meets a parse node it does not
	// know. It signals a parser/walker mismatch and is never recovered.
	ErrUnhandledNodeKind = errors.New("unhandled node kind")

	// ErrFinalDocumentUnparsable is returned when the complete document delivered at
	// the end of the stream does not parse.
	ErrFinalDocumentUnparsable = errors.New("final document unparsable")

	// ErrSourceClosed is returned by a frame source that was closed before producing
	// its final document.
	ErrSourceClosed = errors.New("frame source closed")
)

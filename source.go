package genui

import (
	"context"
	"sync"
)

// Frame is one incremental snapshot of the document being generated.
type Frame struct {
	// Index is the 1-indexed position of the frame in the stream.
	Index int

	// Text is the document prefix generated so far.
	Text string
}

// FrameSource is the generation source: a sequence of growing document prefixes
// followed by exactly one final, complete document.
//
// Each frame is expected to extend the previous one (never shrink or rewrite text
// already emitted). Sources are not required to enforce this; the render
// coordinator only diagnoses violations.
//
// A FrameSource is consumed by one goroutine at a time.
type FrameSource interface {
	// NextFrame blocks until the next frame is available. It returns ok=false once
	// no more intermediate frames will be produced; Final must be called next.
	NextFrame(ctx context.Context) (frame Frame, ok bool, err error)

	// Final blocks until the complete document is available and returns it.
	Final(ctx context.Context) (string, error)

	// Close releases resources held by the source, cancelling generation if it is
	// still running. Safe to call multiple times.
	Close()
}

// StaticSource is a FrameSource over a fixed list of frames and a final document.
// It is useful for tests and for replaying recorded generations.
type StaticSource struct {
	mu     sync.Mutex
	frames []string
	final  string
	next   int
	closed bool
}

// NewStaticSource creates a StaticSource that yields frames in order, then final.
func NewStaticSource(frames []string, final string) *StaticSource {
	return &StaticSource{
		frames: frames,
		final:  final,
	}
}

// NextFrame implements FrameSource.
func (s *StaticSource) NextFrame(ctx context.Context) (Frame, bool, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Frame{}, false, ErrSourceClosed
	}
	if s.next >= len(s.frames) {
		return Frame{}, false, nil
	}

	f := Frame{Index: s.next + 1, Text: s.frames[s.next]}
	s.next++
	return f, true, nil
}

// Final implements FrameSource.
func (s *StaticSource) Final(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSourceClosed
	}
	return s.final, nil
}

// Close implements FrameSource.
func (s *StaticSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Consumed returns how many frames have been handed out so far.
func (s *StaticSource) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// IsClosed reports whether Close has been called.
func (s *StaticSource) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Compile-time check that StaticSource implements FrameSource.
var _ FrameSource = (*StaticSource)(nil)

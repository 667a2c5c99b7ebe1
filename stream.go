package genui

import (
	"context"
	"sync"
	"time"

	"github.com/rickchristie/genui/internal/buffer"
)

// StreamBuffer adapts a push-style producer (a model streaming callback) into a
// pull-style [FrameSource].
//
// The producer calls Send for every chunk and Complete once. Send never blocks, even
// when nobody is pulling frames yet. Each content chunk becomes a frame holding the
// whole document accumulated so far.
//
// In latest-only mode (see [StreamBufferConfig]) frames that are still pending when a
// newer one arrives are dropped, so a consumer that hydrates slower than the model
// generates always works on the newest prefix.
type StreamBuffer struct {
	frames *buffer.Unbounded[Frame]
	acc    *StreamAccumulator

	mu        sync.Mutex
	completed bool
	closed    bool
	final     string
	finalErr  error
	done      chan struct{}
	cancel    context.CancelFunc

	clock     TimeProvider
	startTime time.Time
}

// StreamBufferConfig configures a StreamBuffer.
type StreamBufferConfig struct {
	// LatestOnly coalesces pending frames, keeping only the newest.
	LatestOnly bool

	// TimeProvider is the clock used by Duration. Defaults to the system clock.
	TimeProvider TimeProvider
}

// NewStreamBuffer creates a StreamBuffer that delivers every frame.
func NewStreamBuffer() *StreamBuffer {
	return NewStreamBufferWithConfig(StreamBufferConfig{})
}

// NewStreamBufferWithConfig creates a StreamBuffer with the given configuration.
func NewStreamBufferWithConfig(cfg StreamBufferConfig) *StreamBuffer {
	frames := buffer.NewUnbounded[Frame]()
	if cfg.LatestOnly {
		frames = buffer.NewLatest[Frame]()
	}
	clock := cfg.TimeProvider
	if clock == nil {
		clock = NewDefaultTimeProvider()
	}
	return &StreamBuffer{
		frames:    frames,
		acc:       NewStreamAccumulator(),
		done:      make(chan struct{}),
		clock:     clock,
		startTime: clock.Now(),
	}
}

// WithCancel registers a function Close calls to stop the producer.
// Returns the buffer for chaining.
func (s *StreamBuffer) WithCancel(cancel context.CancelFunc) *StreamBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = cancel
	return s
}

// Send adds a chunk. It never blocks and is safe from any goroutine.
// Chunks sent after Complete or Close are ignored.
func (s *StreamBuffer) Send(chunk StreamChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed || s.closed {
		return
	}
	if frame, ok := s.acc.Add(chunk); ok {
		s.frames.Send(frame)
	}
}

// SendContent sends a content-only chunk.
func (s *StreamBuffer) SendContent(content string) {
	s.Send(StreamChunk{Content: content})
}

// SendReasoning sends a reasoning-only chunk.
func (s *StreamBuffer) SendReasoning(reasoning string) {
	s.Send(StreamChunk{ReasoningContent: reasoning})
}

// Complete ends the stream with the final document, or with the error that
// stopped generation. Only the first call has any effect.
func (s *StreamBuffer) Complete(final string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed || s.closed {
		return
	}
	s.completed = true
	s.final = final
	s.finalErr = err
	s.frames.Close()
	close(s.done)
}

// CompleteWithAccumulated ends the stream using the accumulated content as the
// final document.
func (s *StreamBuffer) CompleteWithAccumulated(err error) {
	s.Complete(s.acc.Content(), err)
}

// NextFrame implements FrameSource.
func (s *StreamBuffer) NextFrame(ctx context.Context) (Frame, bool, error) {
	if s.isClosed() {
		return Frame{}, false, ErrSourceClosed
	}

	select {
	case <-ctx.Done():
		return Frame{}, false, ctx.Err()
	case frame, ok := <-s.frames.Receive():
		if !ok {
			if s.isClosed() {
				return Frame{}, false, ErrSourceClosed
			}
			return Frame{}, false, nil
		}
		return frame, true, nil
	}
}

// Final implements FrameSource.
func (s *StreamBuffer) Final(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed && !s.completed {
		return "", ErrSourceClosed
	}
	return s.final, s.finalErr
}

// Close implements FrameSource. It stops the producer through the registered
// cancel function and discards pending frames.
func (s *StreamBuffer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancel
	if !s.completed {
		close(s.done)
	}
	s.mu.Unlock()

	s.frames.Discard()
	if cancel != nil {
		cancel()
	}
}

func (s *StreamBuffer) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// AccumulatedContent returns the document accumulated so far.
func (s *StreamBuffer) AccumulatedContent() string {
	return s.acc.Content()
}

// AccumulatedReasoning returns the reasoning content accumulated so far.
func (s *StreamBuffer) AccumulatedReasoning() string {
	return s.acc.ReasoningContent()
}

// Duration returns the time elapsed since the buffer was created.
func (s *StreamBuffer) Duration() time.Duration {
	return s.clock.Since(s.startTime)
}

// Compile-time check that StreamBuffer implements FrameSource.
var _ FrameSource = (*StreamBuffer)(nil)

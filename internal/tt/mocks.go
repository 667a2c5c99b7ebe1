package tt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rickchristie/genui"
	"github.com/tmc/langchaingo/llms"
)

// Epoch is the start time of clocks created by NewClock.
var Epoch = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// NewClock returns a mock clock starting at Epoch that advances one millisecond
// every time it is read.
func NewClock() *genui.MockTimeProvider {
	return genui.NewMockTimeProvider(Epoch).WithStep(time.Millisecond)
}

// -----------------------------------------------------------------------------
// MockSource - implements genui.FrameSource with scripted failures
// -----------------------------------------------------------------------------

// MockSource is a scripted genui.FrameSource. It records how it was driven so tests
// can check that consumers stop pulling and close it.
type MockSource struct {
	mu sync.Mutex

	frames    []string
	frameErrs map[int]error
	final     string
	finalErr  error

	next       int
	nextCalls  int
	finalCalls int
	closeCalls int
}

// NewMockSource creates a MockSource yielding frames in order.
// The final document defaults to the last frame.
func NewMockSource(frames ...string) *MockSource {
	m := &MockSource{frames: frames, frameErrs: make(map[int]error)}
	if len(frames) > 0 {
		m.final = frames[len(frames)-1]
	}
	return m
}

// WithFinal sets the final document.
func (m *MockSource) WithFinal(final string) *MockSource {
	m.final = final
	return m
}

// WithFinalError makes Final fail with err.
func (m *MockSource) WithFinalError(err error) *MockSource {
	m.finalErr = err
	return m
}

// WithFrameError makes the NextFrame call for the 1-indexed frame fail with err
// instead of yielding it.
func (m *MockSource) WithFrameError(frame int, err error) *MockSource {
	m.frameErrs[frame] = err
	return m
}

// NextFrame implements genui.FrameSource.
func (m *MockSource) NextFrame(ctx context.Context) (genui.Frame, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextCalls++
	if err := ctx.Err(); err != nil {
		return genui.Frame{}, false, err
	}
	if m.closeCalls > 0 {
		return genui.Frame{}, false, errors.New("mock source: NextFrame after Close")
	}
	if m.next >= len(m.frames) {
		return genui.Frame{}, false, nil
	}

	m.next++
	if err, ok := m.frameErrs[m.next]; ok {
		return genui.Frame{}, false, err
	}
	return genui.Frame{Index: m.next, Text: m.frames[m.next-1]}, true, nil
}

// Final implements genui.FrameSource.
func (m *MockSource) Final(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.finalCalls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.final, m.finalErr
}

// Close implements genui.FrameSource.
func (m *MockSource) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
}

// NextCalls returns how many times NextFrame was called.
func (m *MockSource) NextCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextCalls
}

// FinalCalls returns how many times Final was called.
func (m *MockSource) FinalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finalCalls
}

// CloseCalls returns how many times Close was called.
func (m *MockSource) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

var _ genui.FrameSource = (*MockSource)(nil)

// -----------------------------------------------------------------------------
// MockModel - implements llms.Model with scripted streaming
// -----------------------------------------------------------------------------

// MockModel is an llms.Model that replays scripted chunks through the streaming
// callbacks in the call options, then returns the concatenated content.
type MockModel struct {
	mu sync.Mutex

	chunks    []genui.StreamChunk
	err       error
	callCount int

	// block, when set, makes GenerateContent wait for ctx cancellation after the
	// scripted chunks.
	block bool

	// CapturedMessages stores the messages passed to each GenerateContent call.
	CapturedMessages [][]llms.MessageContent
}

// NewMockModel creates a MockModel that streams the given content chunks.
func NewMockModel(chunks ...string) *MockModel {
	m := &MockModel{}
	for _, c := range chunks {
		m.chunks = append(m.chunks, genui.StreamChunk{Content: c})
	}
	return m
}

// AddReasoning appends a reasoning-only chunk.
func (m *MockModel) AddReasoning(reasoning string) *MockModel {
	m.chunks = append(m.chunks, genui.StreamChunk{ReasoningContent: reasoning})
	return m
}

// AddContent appends a content chunk.
func (m *MockModel) AddContent(content string) *MockModel {
	m.chunks = append(m.chunks, genui.StreamChunk{Content: content})
	return m
}

// WithError makes GenerateContent fail with err after streaming.
func (m *MockModel) WithError(err error) *MockModel {
	m.err = err
	return m
}

// WithBlock makes GenerateContent block until its context is cancelled.
func (m *MockModel) WithBlock() *MockModel {
	m.block = true
	return m
}

// CallCount returns the number of GenerateContent calls.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// GenerateContent implements llms.Model.
func (m *MockModel) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	m.mu.Lock()
	m.callCount++
	m.CapturedMessages = append(m.CapturedMessages, messages)
	m.mu.Unlock()

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	var content, reasoning string
	for _, chunk := range m.chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content += chunk.Content
		reasoning += chunk.ReasoningContent

		var err error
		switch {
		case opts.StreamingReasoningFunc != nil:
			err = opts.StreamingReasoningFunc(ctx, []byte(chunk.ReasoningContent), []byte(chunk.Content))
		case opts.StreamingFunc != nil && chunk.Content != "":
			err = opts.StreamingFunc(ctx, []byte(chunk.Content))
		}
		if err != nil {
			return nil, err
		}
	}

	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:          content,
			ReasoningContent: reasoning,
		}},
	}, nil
}

// Call implements llms.Model.
func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

var _ llms.Model = (*MockModel)(nil)

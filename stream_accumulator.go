package genui

import (
	"strings"
	"sync"
)

// StreamChunk is one piece of model output as delivered by a streaming callback.
type StreamChunk struct {
	// Content is document text.
	Content string

	// ReasoningContent is reasoning/thinking text. It never becomes part of the
	// document.
	ReasoningContent string
}

// StreamAccumulator turns a sequence of StreamChunks into growing document frames.
// Every chunk that adds content yields a new frame whose text is everything
// accumulated so far.
//
// Usage:
//
//	acc := NewStreamAccumulator()
//	for _, chunk := range chunks {
//	    if frame, ok := acc.Add(chunk); ok {
//	        handle(frame)
//	    }
//	}
//	final := acc.Content()
type StreamAccumulator struct {
	mu               sync.Mutex
	content          strings.Builder
	reasoningContent strings.Builder
	frames           int
}

// NewStreamAccumulator creates a new StreamAccumulator.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{}
}

// Add adds a chunk. It returns the new frame and true when the chunk carried
// content; reasoning-only and empty chunks return false.
func (a *StreamAccumulator) Add(chunk StreamChunk) (Frame, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if chunk.ReasoningContent != "" {
		a.reasoningContent.WriteString(chunk.ReasoningContent)
	}
	if chunk.Content == "" {
		return Frame{}, false
	}

	a.content.WriteString(chunk.Content)
	a.frames++
	return Frame{Index: a.frames, Text: a.content.String()}, true
}

// Content returns the accumulated document so far.
func (a *StreamAccumulator) Content() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.content.String()
}

// ReasoningContent returns the accumulated reasoning content so far.
func (a *StreamAccumulator) ReasoningContent() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reasoningContent.String()
}

// Frames returns how many frames have been produced.
func (a *StreamAccumulator) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}

// Reset clears the accumulator for reuse.
func (a *StreamAccumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.content.Reset()
	a.reasoningContent.Reset()
	a.frames = 0
}

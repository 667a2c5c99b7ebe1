package genui

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamAccumulator_Add(t *testing.T) {
	type input struct {
		chunks []StreamChunk
	}

	type expected struct {
		frames    []Frame
		content   string
		reasoning string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "every content chunk yields the whole prefix",
			input: input{
				chunks: []StreamChunk{
					{Content: "<Badge"},
					{Content: ">Hi"},
					{Content: "</Badge>"},
				},
			},
			expected: expected{
				frames: []Frame{
					{Index: 1, Text: "<Badge"},
					{Index: 2, Text: "<Badge>Hi"},
					{Index: 3, Text: "<Badge>Hi</Badge>"},
				},
				content: "<Badge>Hi</Badge>",
			},
		},
		{
			name: "reasoning never becomes a frame",
			input: input{
				chunks: []StreamChunk{
					{ReasoningContent: "The user wants "},
					{ReasoningContent: "a badge."},
					{Content: "Hi"},
				},
			},
			expected: expected{
				frames:    []Frame{{Index: 1, Text: "Hi"}},
				content:   "Hi",
				reasoning: "The user wants a badge.",
			},
		},
		{
			name: "mixed chunk counts both",
			input: input{
				chunks: []StreamChunk{
					{Content: "A", ReasoningContent: "r"},
				},
			},
			expected: expected{
				frames:    []Frame{{Index: 1, Text: "A"}},
				content:   "A",
				reasoning: "r",
			},
		},
		{
			name: "empty chunks",
			input: input{
				chunks: []StreamChunk{{}, {Content: ""}, {ReasoningContent: ""}},
			},
			expected: expected{frames: nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewStreamAccumulator()

			var frames []Frame
			for _, chunk := range tt.input.chunks {
				if frame, ok := acc.Add(chunk); ok {
					frames = append(frames, frame)
				}
			}

			assert.Equal(t, tt.expected.frames, frames)
			assert.Equal(t, tt.expected.content, acc.Content())
			assert.Equal(t, tt.expected.reasoning, acc.ReasoningContent())
			assert.Equal(t, len(tt.expected.frames), acc.Frames())
		})
	}
}

func TestStreamAccumulator_Reset(t *testing.T) {
	acc := NewStreamAccumulator()
	acc.Add(StreamChunk{Content: "Hello", ReasoningContent: "thinking"})

	acc.Reset()

	assert.Empty(t, acc.Content())
	assert.Empty(t, acc.ReasoningContent())
	assert.Equal(t, 0, acc.Frames())

	frame, ok := acc.Add(StreamChunk{Content: "Again"})
	assert.True(t, ok)
	assert.Equal(t, Frame{Index: 1, Text: "Again"}, frame)
}

func TestStreamAccumulator_ConcurrentAdd(t *testing.T) {
	acc := NewStreamAccumulator()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc.Add(StreamChunk{Content: "x"})
		}()
	}
	wg.Wait()

	assert.Len(t, acc.Content(), 50)
	assert.Equal(t, 50, acc.Frames())
}

package models

import (
	"context"

	"github.com/rickchristie/genui"
	"github.com/tmc/langchaingo/llms"
)

// LCGWrapper wraps an llms.Model and turns its streaming output into a
// genui.FrameSource.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLCGWrapper(llm).WithModelName("gpt-4.1")
//
//	source := model.Stream(ctx, messages)
//	for tree, err := range render.Stream(ctx, source, reg, render.DefaultConfig()) {
//	    ...
//	}
type LCGWrapper struct {
	model      llms.Model
	modelName  string // Optional model name, reported in usage stats
	latestOnly bool
	session    *genui.Session
	clock      genui.TimeProvider
}

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{
		model: model,
	}
}

// WithModelName sets the model name. Returns the model for chaining.
func (m *LCGWrapper) WithModelName(name string) *LCGWrapper {
	m.modelName = name
	return m
}

// WithLatestOnly makes streams coalesce frames the consumer has not picked up yet,
// so a slow renderer always hydrates the newest prefix.
// Returns the model for chaining.
func (m *LCGWrapper) WithLatestOnly(latestOnly bool) *LCGWrapper {
	m.latestOnly = latestOnly
	return m
}

// WithSession records token usage of every generation in the session stats.
// Returns the model for chaining.
func (m *LCGWrapper) WithSession(sess *genui.Session) *LCGWrapper {
	m.session = sess
	return m
}

// WithTimeProvider sets the clock used to measure generation time.
// Returns the model for chaining.
func (m *LCGWrapper) WithTimeProvider(tp genui.TimeProvider) *LCGWrapper {
	m.clock = tp
	return m
}

// ModelName returns the configured model name.
func (m *LCGWrapper) ModelName() string {
	return m.modelName
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// Stream starts a streaming generation and returns the stream buffer it feeds.
//
// Every content chunk becomes a frame holding the whole document generated so far;
// reasoning chunks are accumulated separately and never reach the document. The
// final document is the response content, or the accumulated content when the
// provider does not return it. Closing the buffer cancels the generation.
//
// The buffer never blocks the producer even if the consumer is slow or not
// reading.
func (m *LCGWrapper) Stream(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) *genui.StreamBuffer {
	ctx, cancel := context.WithCancel(ctx)
	stream := genui.NewStreamBufferWithConfig(genui.StreamBufferConfig{
		LatestOnly:   m.latestOnly,
		TimeProvider: m.clock,
	}).WithCancel(cancel)

	// WithStreamingReasoningFunc receives both reasoning and content chunks, so
	// WithStreamingFunc must not be set as well.
	streamingCallback := llms.WithStreamingReasoningFunc(
		func(ctx context.Context, reasoningChunk, contentChunk []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stream.Send(genui.StreamChunk{
				Content:          string(contentChunk),
				ReasoningContent: string(reasoningChunk),
			})
			return nil
		},
	)

	// StreamThinking is added before user options so users can override it.
	// The streaming callback is added last to ensure it takes effect.
	opts := make([]llms.CallOption, 0, len(options)+2)
	opts = append(opts, llms.WithStreamThinking(true))
	opts = append(opts, options...)
	opts = append(opts, streamingCallback)

	go func() {
		defer cancel()

		resp, err := m.model.GenerateContent(ctx, messages, opts...)
		if err != nil {
			stream.CompleteWithAccumulated(err)
			return
		}

		usage := convertUsage(resp)
		usage.Duration = stream.Duration()
		m.recordUsage(usage)

		if final := responseContent(resp); final != "" {
			stream.Complete(final, nil)
			return
		}
		stream.CompleteWithAccumulated(nil)
	}()

	return stream
}

// Generate runs a generation to completion without streaming and returns the
// document.
func (m *LCGWrapper) Generate(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (string, Usage, error) {
	clock := m.clock
	if clock == nil {
		clock = genui.NewDefaultTimeProvider()
	}

	start := clock.Now()
	resp, err := m.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return "", Usage{}, err
	}

	usage := convertUsage(resp)
	usage.Duration = clock.Since(start)
	m.recordUsage(usage)
	return responseContent(resp), usage, nil
}

func (m *LCGWrapper) recordUsage(u Usage) {
	if m.session == nil {
		return
	}
	stats := m.session.Stats()
	stats.IncrCounter(genui.KeyGenerations, 1)
	stats.IncrCounter(genui.KeyInputTokens, int64(u.InputTokens))
	stats.IncrCounter(genui.KeyOutputTokens, int64(u.OutputTokens))
	stats.IncrCounter(genui.KeyCachedInputTokens, int64(u.CachedInputTokens))
	stats.IncrCounter(genui.KeyReasoningTokens, int64(u.ReasoningTokens))
	if m.modelName != "" {
		stats.IncrCounter(genui.KeyOutputTokensFor+m.modelName, int64(u.OutputTokens))
	}
}

// responseContent returns the content of the first choice.
func responseContent(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return ""
	}
	return resp.Choices[0].Content
}

package genui

// Standard key prefix for all genui stat keys.
// Callers should use their own prefix (e.g., "myapp:") for custom counters.
const KeyPrefix = "genui:"

// Frame tracking keys.
const (
	KeyFrames           = "genui:frames"
	KeyFramesHydrated   = "genui:frames_hydrated"
	KeyFramesRejected   = "genui:frames_rejected"
	KeyFramesSkipped    = "genui:frames_skipped"
	KeyFrameRegressions = "genui:frame_regressions"
)

// Component resolution keys.
const (
	KeyUnresolvedComponents    = "genui:unresolved_components"
	KeyUnresolvedComponentsFor = "genui:unresolved_components:" // + component name
)

// Model usage keys, recorded by models.LCGWrapper.
const (
	KeyGenerations       = "genui:generations"
	KeyInputTokens       = "genui:input_tokens"
	KeyOutputTokens      = "genui:output_tokens"
	KeyCachedInputTokens = "genui:cached_input_tokens"
	KeyReasoningTokens   = "genui:reasoning_tokens"
	KeyOutputTokensFor   = "genui:output_tokens:" // + model name
)

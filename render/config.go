package render

// Config holds configuration options for the Coordinator.
type Config struct {
	// SkipUnchangedFrames skips hydrating a frame whose text equals the previous
	// frame's. Nothing is emitted for it.
	SkipUnchangedFrames bool

	// SessionName names the session created by Stream and Render.
	SessionName string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SkipUnchangedFrames: true,
		SessionName:         "render",
	}
}

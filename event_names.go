package genui

// Event name constants.
//
// Event names follow the pattern "namespace:category:what", mirroring the stat keys
// in stats_keys.go.
const (
	// Frame processing
	EventNameFrameHydrated   = "genui:frame:hydrated"
	EventNameFrameRejected   = "genui:frame:rejected"
	EventNameFrameRegression = "genui:frame:regression"
	EventNameFinalHydrated   = "genui:final:hydrated"

	// Walker diagnostics
	EventNameUnresolvedComponent = "genui:component:unresolved"

	// Errors
	EventNameError = "genui:error"
)

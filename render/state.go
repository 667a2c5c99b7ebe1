package render

import "fmt"

// State is the coordinator lifecycle state.
type State int

const (
	// StateStreaming consumes intermediate frames.
	StateStreaming State = iota

	// StateFinalizing consumes the final, complete document.
	StateFinalizing

	// StateDone is terminal: the final tree was emitted, an error was returned, or
	// the consumer stopped iterating.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStreaming:
		return "streaming"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transition names a move of the coordinator state machine.
type Transition string

const (
	// TransitionEmit: an intermediate frame hydrated and its tree was emitted.
	TransitionEmit Transition = "emit"

	// TransitionSwallow: an intermediate frame failed to parse or walk. The failure
	// is reported as an event only and nothing is emitted.
	TransitionSwallow Transition = "swallow"

	// TransitionSkip: an intermediate frame equal to the previous one was not
	// hydrated again.
	TransitionSkip Transition = "skip"

	// TransitionFinalize: the source has no more intermediate frames.
	TransitionFinalize Transition = "finalize"

	// TransitionComplete: the final document hydrated and its tree was emitted.
	TransitionComplete Transition = "complete"

	// TransitionFail: an error was returned to the consumer.
	TransitionFail Transition = "fail"

	// TransitionAbort: the consumer stopped iterating.
	TransitionAbort Transition = "abort"
)

// transitions lists the legal moves out of each non-terminal state.
var transitions = map[State]map[Transition]State{
	StateStreaming: {
		TransitionEmit:     StateStreaming,
		TransitionSwallow:  StateStreaming,
		TransitionSkip:     StateStreaming,
		TransitionFinalize: StateFinalizing,
		TransitionFail:     StateDone,
		TransitionAbort:    StateDone,
	},
	StateFinalizing: {
		TransitionComplete: StateDone,
		TransitionFail:     StateDone,
		TransitionAbort:    StateDone,
	},
}

// next returns the state t leads to from s.
func next(s State, t Transition) (State, bool) {
	to, ok := transitions[s][t]
	return to, ok
}

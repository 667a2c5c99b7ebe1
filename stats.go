package genui

import (
	"maps"
	"sync"
)

// SessionStats holds monotonically increasing counters for one render session.
// All standard keys are prefixed with "genui:"; see stats_keys.go.
//
// The coordinator is the only writer during a render. Reads are safe from any
// goroutine.
type SessionStats struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewSessionStats creates an empty SessionStats.
func NewSessionStats() *SessionStats {
	return &SessionStats{counters: make(map[string]int64)}
}

// IncrCounter adds delta to the counter under key. Negative deltas are ignored.
func (s *SessionStats) IncrCounter(key string, delta int64) {
	if delta <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += delta
}

// GetCounter returns the value of the counter under key, or 0.
func (s *SessionStats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Counters returns a copy of all counters.
func (s *SessionStats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.counters)
}

// GetFrames returns the number of intermediate frames received.
func (s *SessionStats) GetFrames() int64 {
	return s.GetCounter(KeyFrames)
}

// GetFramesHydrated returns the number of intermediate frames emitted.
func (s *SessionStats) GetFramesHydrated() int64 {
	return s.GetCounter(KeyFramesHydrated)
}

// GetFramesRejected returns the number of intermediate frames swallowed.
func (s *SessionStats) GetFramesRejected() int64 {
	return s.GetCounter(KeyFramesRejected)
}

// GetUnresolvedComponents returns how many distinct component names were reported
// as unresolved. With a name, it returns 1 if that component was reported.
func (s *SessionStats) GetUnresolvedComponents(name ...string) int64 {
	if len(name) > 0 {
		return s.GetCounter(KeyUnresolvedComponentsFor + name[0])
	}
	return s.GetCounter(KeyUnresolvedComponents)
}

package genui

import (
	"sync"
	"time"
)

// TimeProvider supplies the clock used to stamp events and measure hydration time.
// Inject a [MockTimeProvider] in tests for deterministic timestamps and durations.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t.
	Since(t time.Time) time.Duration
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// Since returns time.Since(t).
func (p *DefaultTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// MockTimeProvider is a TimeProvider with a manually controlled clock.
// Each call to Now advances the clock by Step, so durations are predictable.
type MockTimeProvider struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewMockTimeProvider creates a MockTimeProvider starting at start.
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// WithStep makes every Now call advance the clock by step.
func (p *MockTimeProvider) WithStep(step time.Duration) *MockTimeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step = step
	return p
}

// Now returns the mocked time, then advances it by the configured step.
func (p *MockTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.now
	p.now = p.now.Add(p.step)
	return t
}

// Since returns the mocked time minus t. It does not advance the clock.
func (p *MockTimeProvider) Since(t time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now.Sub(t)
}

// Advance moves the clock forward by d.
func (p *MockTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = p.now.Add(d)
}

var (
	_ TimeProvider = (*DefaultTimeProvider)(nil)
	_ TimeProvider = (*MockTimeProvider)(nil)
)

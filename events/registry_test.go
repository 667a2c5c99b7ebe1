package events

import (
	"errors"
	"testing"

	"github.com/rickchristie/genui"
	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------
// Test Subscribers
// -----------------------------------------------------------------------------

type mockFrameHydratedSubscriber struct {
	called bool
	event  *genui.FrameHydratedEvent
}

func (s *mockFrameHydratedSubscriber) OnFrameHydrated(
	_ *genui.Session,
	e *genui.FrameHydratedEvent,
) {
	s.called = true
	s.event = e
}

type mockFrameRejectedSubscriber struct {
	called bool
	event  *genui.FrameRejectedEvent
}

func (s *mockFrameRejectedSubscriber) OnFrameRejected(
	_ *genui.Session,
	e *genui.FrameRejectedEvent,
) {
	s.called = true
	s.event = e
}

type mockUnresolvedSubscriber struct {
	called bool
	event  *genui.UnresolvedComponentEvent
}

func (s *mockUnresolvedSubscriber) OnUnresolvedComponent(
	_ *genui.Session,
	e *genui.UnresolvedComponentEvent,
) {
	s.called = true
	s.event = e
}

// multiSubscriber implements multiple interfaces
type multiSubscriber struct {
	regressionCalled bool
	finalCalled      bool
	errorCalled      bool
	all              []string
}

func (s *multiSubscriber) OnFrameRegression(_ *genui.Session, _ *genui.FrameRegressionEvent) {
	s.regressionCalled = true
}

func (s *multiSubscriber) OnFinalHydrated(_ *genui.Session, _ *genui.FinalHydratedEvent) {
	s.finalCalled = true
}

func (s *multiSubscriber) OnError(_ *genui.Session, _ *genui.ErrorEvent) {
	s.errorCalled = true
}

func (s *multiSubscriber) OnEvent(_ *genui.Session, e genui.Event) {
	s.all = append(s.all, e.EventName())
}

// -----------------------------------------------------------------------------
// Registry Tests
// -----------------------------------------------------------------------------

func TestNewRegistry_ReturnsEmptyRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.NotNil(t, registry)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_Subscribe_ChainMultiple(t *testing.T) {
	registry := NewRegistry()

	result := registry.Subscribe(&mockFrameHydratedSubscriber{}).Subscribe(&mockFrameRejectedSubscriber{})

	assert.Same(t, registry, result, "Subscribe should return registry for chaining")
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_Clear_RemovesAllSubscribers(t *testing.T) {
	registry := NewRegistry()
	registry.Subscribe(&mockFrameHydratedSubscriber{})
	registry.Subscribe(&mockFrameRejectedSubscriber{})

	registry.Clear()

	assert.Equal(t, 0, registry.Len())
}

// -----------------------------------------------------------------------------
// Dispatch Tests
// -----------------------------------------------------------------------------

func TestRegistry_Dispatch_TypedEvents(t *testing.T) {
	hydrated := &mockFrameHydratedSubscriber{}
	rejected := &mockFrameRejectedSubscriber{}
	unresolved := &mockUnresolvedSubscriber{}
	registry := NewRegistry().Subscribe(hydrated).Subscribe(rejected).Subscribe(unresolved)
	sess := genui.NewSession("test", nil)

	event := &genui.FrameRejectedEvent{Length: 3, Err: errors.New("not yet")}
	registry.Dispatch(sess, event)

	assert.False(t, hydrated.called, "non-matching subscriber should not be called")
	assert.True(t, rejected.called, "matching subscriber should be called")
	assert.Same(t, event, rejected.event)
	assert.False(t, unresolved.called)

	unresolvedEvent := &genui.UnresolvedComponentEvent{Component: "Chart"}
	registry.Dispatch(sess, unresolvedEvent)

	assert.True(t, unresolved.called)
	assert.Same(t, unresolvedEvent, unresolved.event)
}

func TestRegistry_Dispatch_MultiInterfaceSubscriber(t *testing.T) {
	sub := &multiSubscriber{}
	registry := NewRegistry().Subscribe(sub)
	sess := genui.NewSession("test", nil)

	registry.Dispatch(sess, &genui.FrameRegressionEvent{})
	registry.Dispatch(sess, &genui.FinalHydratedEvent{})
	registry.Dispatch(sess, &genui.ErrorEvent{})
	registry.Dispatch(sess, &genui.FrameHydratedEvent{})

	assert.True(t, sub.regressionCalled)
	assert.True(t, sub.finalCalled)
	assert.True(t, sub.errorCalled)
	assert.Equal(t, []string{
		genui.EventNameFrameRegression,
		genui.EventNameFinalHydrated,
		genui.EventNameError,
		genui.EventNameFrameHydrated,
	}, sub.all, "EventSubscriber receives every event")
}

func TestRegistry_Dispatch_CallsInOrder(t *testing.T) {
	var order []int
	registry := NewRegistry().
		Subscribe(&orderTrackingSubscriber{order: &order, id: 1}).
		Subscribe(&orderTrackingSubscriber{order: &order, id: 2}).
		Subscribe(&orderTrackingSubscriber{order: &order, id: 3})

	registry.Dispatch(genui.NewSession("test", nil), &genui.FrameHydratedEvent{})

	assert.Equal(t, []int{1, 2, 3}, order)
}

type orderTrackingSubscriber struct {
	order *[]int
	id    int
}

func (s *orderTrackingSubscriber) OnFrameHydrated(_ *genui.Session, _ *genui.FrameHydratedEvent) {
	*s.order = append(*s.order, s.id)
}

func TestRegistry_ThroughSession(t *testing.T) {
	sub := &mockUnresolvedSubscriber{}
	sess := genui.NewSession("chat", nil).WithEvents(NewRegistry().Subscribe(sub))
	sess.SetFrame(4)

	sess.PublishUnresolvedComponent("Chart")

	assert.True(t, sub.called)
	assert.Equal(t, "Chart", sub.event.Component)
	assert.Equal(t, "chat", sub.event.Base().Session)
	assert.Equal(t, 4, sub.event.Base().Frame)
}

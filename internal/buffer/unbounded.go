// Package buffer provides the queues that sit between push-style producers (model
// streaming callbacks) and the pull-style render coordinator.
package buffer

import (
	"sync"
)

// Unbounded provides non-blocking sends with unlimited buffering.
// Producers never block waiting for consumers.
//
// In latest-only mode (see [NewLatest]) a Send replaces whatever is still pending,
// so a slow consumer only ever sees the newest item. This is how growing document
// prefixes are coalesced: a newer prefix supersedes every older one.
//
// Usage:
//
//	buf := buffer.NewUnbounded[genui.Frame]()
//	go func() {
//	    for item := range buf.Receive() {
//	        // Process item
//	    }
//	}()
//	buf.Send(item1)  // Never blocks
//	buf.Close()      // Closes the receive channel once drained
type Unbounded[T any] struct {
	mu     sync.Mutex
	items  []T
	cond   *sync.Cond
	closed bool
	latest bool
	out    chan T
}

// NewUnbounded creates a buffer that delivers every item in send order.
func NewUnbounded[T any]() *Unbounded[T] {
	return newBuffer[T](false, 1)
}

// NewLatest creates a buffer that only keeps the most recent pending item.
func NewLatest[T any]() *Unbounded[T] {
	return newBuffer[T](true, 0)
}

func newBuffer[T any](latest bool, outCap int) *Unbounded[T] {
	b := &Unbounded[T]{
		items:  make([]T, 0, 64),
		latest: latest,
		out:    make(chan T, outCap),
	}
	b.cond = sync.NewCond(&b.mu)
	go b.drainLoop()
	return b
}

// drainLoop moves items from the internal queue to the output channel until the
// buffer is closed and empty.
func (b *Unbounded[T]) drainLoop() {
	for {
		item, ok := b.dequeue()
		if !ok {
			close(b.out)
			return
		}
		b.out <- item
	}
}

// dequeue blocks until an item is available or the buffer is closed.
// Returns (zero, false) once closed and empty.
func (b *Unbounded[T]) dequeue() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.items) == 0 && !b.closed {
		b.cond.Wait()
	}

	if len(b.items) == 0 {
		var zero T
		return zero, false
	}

	item := b.items[0]
	b.items = b.items[1:]
	return item, true
}

// Send adds an item to the buffer. It never blocks and is safe from any goroutine.
// Items sent after Close are silently ignored.
func (b *Unbounded[T]) Send(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	if b.latest {
		b.items = append(b.items[:0], item)
	} else {
		b.items = append(b.items, item)
	}
	b.cond.Signal()
}

// Receive returns the channel items are delivered on. It is closed after Close once
// all pending items are drained.
func (b *Unbounded[T]) Receive() <-chan T {
	return b.out
}

// Close marks the buffer closed. Safe to call multiple times.
func (b *Unbounded[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	b.cond.Signal()
}

// Discard drops all pending items and closes the buffer. Use it when the consumer
// goes away so the drain goroutine can exit without anyone reading.
func (b *Unbounded[T]) Discard() {
	b.mu.Lock()
	b.items = b.items[:0]
	b.closed = true
	b.cond.Signal()
	b.mu.Unlock()

	// Unblock a drain loop stuck sending an item nobody will read.
	go func() {
		for range b.out {
		}
	}()
}

// Len returns the number of pending items.
func (b *Unbounded[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// IsClosed reports whether Close has been called.
func (b *Unbounded[T]) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

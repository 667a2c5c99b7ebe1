package buffer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbounded_BasicSendReceive(t *testing.T) {
	type input struct {
		items []string
	}

	type expected struct {
		received []string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "sends and receives prefixes in order",
			input:    input{items: []string{"<", "<Ba", "<Badge/>"}},
			expected: expected{received: []string{"<", "<Ba", "<Badge/>"}},
		},
		{
			name:     "empty buffer",
			input:    input{items: []string{}},
			expected: expected{received: nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewUnbounded[string]()

			for _, item := range tt.input.items {
				buf.Send(item)
			}
			buf.Close()

			var received []string
			for item := range buf.Receive() {
				received = append(received, item)
			}

			assert.Equal(t, tt.expected.received, received)
		})
	}
}

func TestUnbounded_SendNeverBlocks(t *testing.T) {
	buf := NewUnbounded[int]()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			buf.Send(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Send blocked without a consumer")
	}

	buf.Close()
	count := 0
	for range buf.Receive() {
		count++
	}
	assert.Equal(t, 10000, count)
}

func TestUnbounded_SendAfterCloseIgnored(t *testing.T) {
	buf := NewUnbounded[int]()
	buf.Send(1)
	buf.Close()
	buf.Send(2)

	var received []int
	for item := range buf.Receive() {
		received = append(received, item)
	}

	assert.Equal(t, []int{1}, received)
	assert.True(t, buf.IsClosed())
}

func TestLatest_KeepsOnlyNewestPending(t *testing.T) {
	buf := NewLatest[string]()

	// Wait until the drain loop holds the first item, blocked on the unbuffered
	// output channel, so the following sends all land in the pending slot.
	buf.Send("a")
	require.Eventually(t, func() bool { return buf.Len() == 0 }, time.Second, time.Millisecond)

	buf.Send("ab")
	buf.Send("abc")
	buf.Send("abcd")
	assert.Equal(t, 1, buf.Len())
	buf.Close()

	var received []string
	for item := range buf.Receive() {
		received = append(received, item)
	}

	assert.Equal(t, []string{"a", "abcd"}, received)
}

func TestUnbounded_DiscardReleasesDrainLoop(t *testing.T) {
	buf := NewUnbounded[int]()
	for i := 0; i < 5; i++ {
		buf.Send(i)
	}

	buf.Discard()

	assert.True(t, buf.IsClosed())
	assert.Equal(t, 0, buf.Len())
	buf.Send(9)
	assert.Equal(t, 0, buf.Len())
}

func TestUnbounded_ConcurrentSenders(t *testing.T) {
	buf := NewUnbounded[int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				buf.Send(i)
			}
		}()
	}
	wg.Wait()
	buf.Close()

	count := 0
	for range buf.Receive() {
		count++
	}
	assert.Equal(t, 800, count)
}

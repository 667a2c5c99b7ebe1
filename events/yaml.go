package events

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rickchristie/genui"
	"gopkg.in/yaml.v3"
)

// YAMLSubscriber dumps every event as a timestamped header followed by its
// attributes as a YAML mapping. Nothing is truncated, which makes it useful when
// replaying a stream to see why frames were rejected:
//
//	>>> [genui:frame:rejected]: 2026-01-02 15:04:05.000
//	error: 'markup: 1:1: unterminated tag'
//	frame: 3
//	length: 10
//	session: replay
type YAMLSubscriber struct {
	mu  sync.Mutex
	out io.Writer

	// minSeverity filters out less important events.
	minSeverity genui.Severity
}

// NewYAMLSubscriber creates a YAMLSubscriber writing to stdout.
func NewYAMLSubscriber() *YAMLSubscriber {
	return NewYAMLSubscriberWithWriter(os.Stdout)
}

// NewYAMLSubscriberWithWriter creates a YAMLSubscriber writing to w.
func NewYAMLSubscriberWithWriter(w io.Writer) *YAMLSubscriber {
	return &YAMLSubscriber{out: w}
}

// WithMinSeverity drops events below sev. Returns the subscriber for chaining.
func (y *YAMLSubscriber) WithMinSeverity(sev genui.Severity) *YAMLSubscriber {
	y.minSeverity = sev
	return y
}

// OnEvent implements genui.EventSubscriber.
func (y *YAMLSubscriber) OnEvent(_ *genui.Session, event genui.Event) {
	if event.Severity() < y.minSeverity {
		return
	}

	y.mu.Lock()
	defer y.mu.Unlock()

	timestamp := event.Base().Timestamp.Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(y.out, ">>> [%s]: %s\n", event.EventName(), timestamp)

	data, err := yaml.Marshal(attrMap(event.Attrs()))
	if err != nil {
		fmt.Fprintf(y.out, "(failed to marshal: %v)\n", err)
		return
	}
	fmt.Fprint(y.out, string(data))
}

// attrMap turns alternating key/value pairs into a map. Durations are rendered
// with their String form.
func attrMap(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		switch v := kv[i+1].(type) {
		case time.Duration:
			out[key] = v.String()
		default:
			out[key] = v
		}
	}
	return out
}

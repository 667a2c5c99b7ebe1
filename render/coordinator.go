package render

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/hydrate"
	"github.com/rickchristie/genui/markup"
)

// ErrStreamConsumed is returned when the sequence of a Coordinator is iterated a
// second time. A frame source can only be consumed once.
var ErrStreamConsumed = errors.New("render: stream already consumed")

// Coordinator drives a frame source through the markup gate and the walker for
// one completion.
//
// The coordinator is pull based: it asks the source for the next frame only after
// the consumer has taken the previous tree, and processes frames strictly one at a
// time, in order. Intermediate frames that fail to parse or walk are swallowed;
// the final document is always hydrated and emitted last, or its failure returned.
//
// State is safe to read from other goroutines while the stream runs.
type Coordinator struct {
	session *genui.Session
	walker  *hydrate.Walker
	config  Config

	mu          sync.Mutex
	state       State
	started     bool
	last        genui.Node
	history     []Transition
	prevText    string
	hasPrevText bool
}

// New creates a Coordinator for one completion. The session supplies the registry,
// receives diagnostics and collects stats.
func New(session *genui.Session, config Config) *Coordinator {
	return &Coordinator{
		session: session,
		walker:  hydrate.NewWalker(session.Registry()).WithSession(session),
		config:  config,
		state:   StateStreaming,
	}
}

// Stream hydrates the frames of source with a new session over registry.
// See [Coordinator.Stream].
func Stream(
	ctx context.Context,
	source genui.FrameSource,
	registry *genui.Registry,
	config Config,
) iter.Seq2[genui.Node, error] {
	return New(genui.NewSession(config.SessionName, registry), config).Stream(ctx, source)
}

// Render hydrates a fixed list of frames followed by the final document.
// Unlike [Stream], every iteration of the returned sequence starts over with a
// fresh source and session.
func Render(
	ctx context.Context,
	frames []string,
	final string,
	registry *genui.Registry,
	config Config,
) iter.Seq2[genui.Node, error] {
	return func(yield func(genui.Node, error) bool) {
		source := genui.NewStaticSource(frames, final)
		for node, err := range Stream(ctx, source, registry, config) {
			if !yield(node, err) {
				return
			}
		}
	}
}

// Stream returns the sequence of trees hydrated from source.
//
// The sequence yields zero or more intermediate trees, then exactly one of:
//   - the tree of the final document, with a nil error;
//   - a nil tree and an error, after which the sequence ends.
//
// Errors are genui.ErrFinalDocumentUnparsable (wrapping the *markup.SyntaxError),
// genui.ErrUnsupportedAttributeExpression for the final document,
// genui.ErrUnhandledNodeKind for any frame, and source or context errors.
//
// The source is closed when the sequence ends, including when the consumer stops
// early. The sequence can be iterated once; later iterations yield
// ErrStreamConsumed.
func (c *Coordinator) Stream(ctx context.Context, source genui.FrameSource) iter.Seq2[genui.Node, error] {
	return func(yield func(genui.Node, error) bool) {
		if !c.start() {
			yield(nil, ErrStreamConsumed)
			return
		}
		defer source.Close()

		for {
			frame, ok, err := source.NextFrame(ctx)
			if err != nil {
				yield(nil, c.fail(fmt.Errorf("next frame: %w", err)))
				return
			}
			if !ok {
				break
			}

			node, err := c.hydrateFrame(frame)
			if err != nil {
				yield(nil, c.fail(err))
				return
			}
			if node == nil {
				continue
			}
			if !yield(node, nil) {
				c.apply(TransitionAbort)
				return
			}
		}

		c.apply(TransitionFinalize)
		c.session.SetFrame(0)

		final, err := source.Final(ctx)
		if err != nil {
			yield(nil, c.fail(fmt.Errorf("final document: %w", err)))
			return
		}

		node, err := c.hydrateFinal(final)
		if err != nil {
			yield(nil, c.fail(err))
			return
		}
		c.apply(TransitionComplete)
		yield(node, nil)
	}
}

// hydrateFrame processes one intermediate frame. It returns the tree to emit, nil
// when the frame is swallowed or skipped, or an error that ends the stream.
func (c *Coordinator) hydrateFrame(frame genui.Frame) (genui.Node, error) {
	sess := c.session
	sess.SetFrame(frame.Index)
	sess.Stats().IncrCounter(genui.KeyFrames, 1)

	prev, hasPrev := c.previous()
	if hasPrev && !strings.HasPrefix(frame.Text, prev) {
		sess.Publish(&genui.FrameRegressionEvent{
			PreviousLength: len(prev),
			Length:         len(frame.Text),
		})
	}
	if c.config.SkipUnchangedFrames && hasPrev && frame.Text == prev {
		sess.Stats().IncrCounter(genui.KeyFramesSkipped, 1)
		c.apply(TransitionSkip)
		return nil, nil
	}
	c.setPrevious(frame.Text)

	start := sess.Clock().Now()
	node, err := c.hydrate(frame.Text)
	if err != nil {
		if !swallowable(err) {
			return nil, err
		}
		sess.Publish(&genui.FrameRejectedEvent{Length: len(frame.Text), Err: err})
		c.apply(TransitionSwallow)
		return nil, nil
	}

	sess.Publish(&genui.FrameHydratedEvent{
		Length:   len(frame.Text),
		Duration: sess.Clock().Since(start),
	})
	c.setLast(node)
	c.apply(TransitionEmit)
	return node, nil
}

// hydrateFinal processes the final document. Every failure is returned.
func (c *Coordinator) hydrateFinal(final string) (genui.Node, error) {
	sess := c.session

	start := sess.Clock().Now()
	node, err := c.hydrate(final)
	if err != nil {
		var synErr *markup.SyntaxError
		if errors.As(err, &synErr) {
			return nil, fmt.Errorf("%w: %w", genui.ErrFinalDocumentUnparsable, err)
		}
		return nil, err
	}

	sess.Publish(&genui.FinalHydratedEvent{
		Length:   len(final),
		Duration: sess.Clock().Since(start),
	})
	c.setLast(node)
	return node, nil
}

func (c *Coordinator) hydrate(doc string) (genui.Node, error) {
	root, err := markup.TryParse(doc)
	if err != nil {
		return nil, err
	}
	return c.walker.Walk(root)
}

// swallowable reports whether an intermediate frame failing with err is only "not
// ready yet". Unhandled node kinds signal a parser/walker mismatch and never are.
func swallowable(err error) bool {
	var synErr *markup.SyntaxError
	return errors.As(err, &synErr) || errors.Is(err, genui.ErrUnsupportedAttributeExpression)
}

// fail publishes err as an ErrorEvent, ends the state machine and returns err.
func (c *Coordinator) fail(err error) error {
	c.session.Publish(&genui.ErrorEvent{Err: err})
	c.apply(TransitionFail)
	return err
}

func (c *Coordinator) start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return false
	}
	c.started = true
	return true
}

// apply moves the state machine along t. Moves not listed in transitions are
// programming errors.
func (c *Coordinator) apply(t Transition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	to, ok := next(c.state, t)
	if !ok {
		panic(fmt.Sprintf("render: illegal transition %q from state %s", t, c.state))
	}
	c.state = to
	c.history = append(c.history, t)
}

func (c *Coordinator) previous() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prevText, c.hasPrevText
}

func (c *Coordinator) setPrevious(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prevText = text
	c.hasPrevText = true
}

func (c *Coordinator) setLast(n genui.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = n
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Last returns the last successfully hydrated tree, or nil.
func (c *Coordinator) Last() genui.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Transitions returns the transitions taken so far, in order.
func (c *Coordinator) Transitions() []Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Transition, len(c.history))
	copy(out, c.history)
	return out
}

// Session returns the coordinator's session.
func (c *Coordinator) Session() *genui.Session {
	return c.session
}

package render

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/internal/tt"
	"github.com/rickchristie/genui/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(seq iter.Seq2[genui.Node, error]) ([]genui.Node, error) {
	var nodes []genui.Node
	for node, err := range seq {
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

const badgeTree = `
	Container
	  Invocation Badge {color="red"}
	    Display "Hi"
`

func TestCoordinator_Stream(t *testing.T) {
	type input struct {
		components []string
		frames     []string
		final      string
		config     Config
	}

	type expected struct {
		trees       []string
		events      []string
		transitions []Transition
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "only parsable frames are emitted",
			input: input{
				components: []string{"Badge"},
				frames:     []string{"<Ba", "<Badge col", "<Badge color='red'>Hi</Badge>"},
				final:      "<Badge color='red'>Hi</Badge>",
				config:     DefaultConfig(),
			},
			expected: expected{
				trees: []string{badgeTree, badgeTree},
				events: []string{
					genui.EventNameFrameRejected,
					genui.EventNameFrameRejected,
					genui.EventNameFrameHydrated,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{
					TransitionSwallow, TransitionSwallow, TransitionEmit,
					TransitionFinalize, TransitionComplete,
				},
			},
		},
		{
			name: "final tree is emitted when no frame ever parsed",
			input: input{
				components: []string{"Badge"},
				frames:     []string{"<Ba", "<Badge col", "<Badge color='red'>H"},
				final:      "<Badge color='red'>Hi</Badge>",
				config:     DefaultConfig(),
			},
			expected: expected{
				trees: []string{badgeTree},
				events: []string{
					genui.EventNameFrameRejected,
					genui.EventNameFrameRejected,
					genui.EventNameFrameRejected,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{
					TransitionSwallow, TransitionSwallow, TransitionSwallow,
					TransitionFinalize, TransitionComplete,
				},
			},
		},
		{
			name: "unknown component is dropped with one diagnostic",
			input: input{
				final:  "<Unknown foo='1'/>",
				config: DefaultConfig(),
			},
			expected: expected{
				trees: []string{`
					Container
					  Dropped unresolved Unknown
				`},
				events: []string{
					genui.EventNameUnresolvedComponent,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{TransitionFinalize, TransitionComplete},
			},
		},
		{
			name: "unknown component in every frame is reported once",
			input: input{
				frames: []string{"<Chart/>", "<Chart/> a", "<Chart/> ab"},
				final:  "<Chart/> ab",
				config: DefaultConfig(),
			},
			expected: expected{
				trees: []string{
					"Container\n  Dropped unresolved Chart\n",
					"Container\n  Dropped unresolved Chart\n  Display \" a\"\n",
					"Container\n  Dropped unresolved Chart\n  Display \" ab\"\n",
					"Container\n  Dropped unresolved Chart\n  Display \" ab\"\n",
				},
				events: []string{
					genui.EventNameUnresolvedComponent,
					genui.EventNameFrameHydrated,
					genui.EventNameFrameHydrated,
					genui.EventNameFrameHydrated,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{
					TransitionEmit, TransitionEmit, TransitionEmit,
					TransitionFinalize, TransitionComplete,
				},
			},
		},
		{
			name: "complex attribute in an intermediate frame is swallowed",
			input: input{
				components: []string{"Badge"},
				frames:     []string{"<Badge color={theme}/>", "<Badge color={theme}/>!"},
				final:      "<Badge color='red'>Hi</Badge>",
				config:     DefaultConfig(),
			},
			expected: expected{
				trees: []string{badgeTree},
				events: []string{
					genui.EventNameFrameRejected,
					genui.EventNameFrameRejected,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{
					TransitionSwallow, TransitionSwallow,
					TransitionFinalize, TransitionComplete,
				},
			},
		},
		{
			name: "unchanged frames are skipped",
			input: input{
				frames: []string{"a", "a", "ab"},
				final:  "ab",
				config: DefaultConfig(),
			},
			expected: expected{
				trees: []string{
					"Container\n  Display \"a\"\n",
					"Container\n  Display \"ab\"\n",
					"Container\n  Display \"ab\"\n",
				},
				events: []string{
					genui.EventNameFrameHydrated,
					genui.EventNameFrameHydrated,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{
					TransitionEmit, TransitionSkip, TransitionEmit,
					TransitionFinalize, TransitionComplete,
				},
			},
		},
		{
			name: "unchanged frames are hydrated again when skipping is off",
			input: input{
				frames: []string{"a", "a"},
				final:  "a",
				config: Config{},
			},
			expected: expected{
				trees: []string{
					"Container\n  Display \"a\"\n",
					"Container\n  Display \"a\"\n",
					"Container\n  Display \"a\"\n",
				},
				events: []string{
					genui.EventNameFrameHydrated,
					genui.EventNameFrameHydrated,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{
					TransitionEmit, TransitionEmit,
					TransitionFinalize, TransitionComplete,
				},
			},
		},
		{
			name: "frame that does not extend the previous one is diagnosed",
			input: input{
				frames: []string{"abc", "ab"},
				final:  "ab",
				config: DefaultConfig(),
			},
			expected: expected{
				trees: []string{
					"Container\n  Display \"abc\"\n",
					"Container\n  Display \"ab\"\n",
					"Container\n  Display \"ab\"\n",
				},
				events: []string{
					genui.EventNameFrameHydrated,
					genui.EventNameFrameRegression,
					genui.EventNameFrameHydrated,
					genui.EventNameFinalHydrated,
				},
				transitions: []Transition{
					TransitionEmit, TransitionEmit,
					TransitionFinalize, TransitionComplete,
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess, rec := tt.NewSession(tc.input.components...)
			c := New(sess, tc.input.config)
			source := genui.NewStaticSource(tc.input.frames, tc.input.final)

			nodes, err := collect(c.Stream(context.Background(), source))

			require.NoError(t, err)
			tt.AssertTrees(t, tc.expected.trees, nodes)
			assert.Equal(t, tc.expected.events, rec.Names())
			assert.Equal(t, tc.expected.transitions, c.Transitions())
			assert.Equal(t, StateDone, c.State())
			assert.Same(t, nodes[len(nodes)-1], c.Last())
			assert.True(t, source.IsClosed())
		})
	}
}

func TestCoordinator_Stream_EventFrames(t *testing.T) {
	sess, rec := tt.NewSession("Badge")
	c := New(sess, DefaultConfig())
	source := genui.NewStaticSource(
		[]string{"<Ba", "<Badge col", "<Badge color='red'>Hi</Badge>"},
		"<Badge color='red'>Hi</Badge>",
	)

	_, err := collect(c.Stream(context.Background(), source))
	require.NoError(t, err)

	var frames []int
	for _, e := range rec.Events() {
		frames = append(frames, e.Base().Frame)
		assert.Equal(t, "test", e.Base().Session)
		assert.False(t, e.Base().Timestamp.IsZero())
	}
	assert.Equal(t, []int{1, 2, 3, 0}, frames)

	stats := sess.Stats()
	assert.Equal(t, int64(3), stats.GetFrames())
	assert.Equal(t, int64(1), stats.GetFramesHydrated())
	assert.Equal(t, int64(2), stats.GetFramesRejected())
}

func TestCoordinator_Stream_Errors(t *testing.T) {
	boom := errors.New("boom")

	type input struct {
		source *tt.MockSource
	}

	type expected struct {
		trees       []string
		is          []error
		msg         string
		syntaxError bool
		nextCalls   int
		finalCalls  int
		transitions []Transition
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "unparsable final document",
			input: input{source: tt.NewMockSource("<Card>").WithFinal("<Card><Badge")},
			expected: expected{
				is:          []error{genui.ErrFinalDocumentUnparsable, markup.ErrSyntax},
				msg:         "final document unparsable: markup: 1:7: unterminated tag",
				syntaxError: true,
				nextCalls:   2,
				finalCalls:  1,
				transitions: []Transition{TransitionSwallow, TransitionFinalize, TransitionFail},
			},
		},
		{
			name:  "complex attribute in the final document",
			input: input{source: tt.NewMockSource("<Badge/>").WithFinal("<Badge color={theme}/>")},
			expected: expected{
				trees:       []string{"Container\n  Invocation Badge\n"},
				is:          []error{genui.ErrUnsupportedAttributeExpression},
				msg:         "<Badge> attribute color={theme}: unsupported attribute expression",
				nextCalls:   2,
				finalCalls:  1,
				transitions: []Transition{TransitionEmit, TransitionFinalize, TransitionFail},
			},
		},
		{
			name:  "source fails mid-stream",
			input: input{source: tt.NewMockSource("<Badge/>", "<Badge/>x").WithFrameError(2, boom)},
			expected: expected{
				trees:       []string{"Container\n  Invocation Badge\n"},
				is:          []error{boom},
				msg:         "next frame: boom",
				nextCalls:   2,
				finalCalls:  0,
				transitions: []Transition{TransitionEmit, TransitionFail},
			},
		},
		{
			name:  "source fails to deliver the final document",
			input: input{source: tt.NewMockSource("<Badge/>").WithFinalError(boom)},
			expected: expected{
				trees:       []string{"Container\n  Invocation Badge\n"},
				is:          []error{boom},
				msg:         "final document: boom",
				nextCalls:   2,
				finalCalls:  1,
				transitions: []Transition{TransitionEmit, TransitionFinalize, TransitionFail},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess, rec := tt.NewSession("Card", "Badge")
			c := New(sess, DefaultConfig())

			nodes, err := collect(c.Stream(context.Background(), tc.input.source))

			require.Error(t, err)
			tt.AssertTrees(t, tc.expected.trees, nodes)
			for _, target := range tc.expected.is {
				assert.ErrorIs(t, err, target)
			}
			assert.Equal(t, tc.expected.msg, err.Error())

			var synErr *markup.SyntaxError
			assert.Equal(t, tc.expected.syntaxError, errors.As(err, &synErr))

			assert.Equal(t, tc.expected.nextCalls, tc.input.source.NextCalls())
			assert.Equal(t, tc.expected.finalCalls, tc.input.source.FinalCalls())
			assert.Equal(t, 1, tc.input.source.CloseCalls())
			assert.Equal(t, tc.expected.transitions, c.Transitions())
			assert.Equal(t, StateDone, c.State())
			assert.Equal(t, 1, rec.Count(genui.EventNameError))
		})
	}
}

func TestCoordinator_Stream_ConsumerStops(t *testing.T) {
	sess, rec := tt.NewSession("Badge")
	c := New(sess, DefaultConfig())
	source := tt.NewMockSource("<Badge/>", "<Badge/>a", "<Badge/>ab")

	var got []genui.Node
	for node, err := range c.Stream(context.Background(), source) {
		require.NoError(t, err)
		got = append(got, node)
		break
	}

	require.Len(t, got, 1)
	assert.Equal(t, 1, source.NextCalls())
	assert.Equal(t, 0, source.FinalCalls())
	assert.Equal(t, 1, source.CloseCalls())
	assert.Equal(t, StateDone, c.State())
	assert.Equal(t, []Transition{TransitionEmit, TransitionAbort}, c.Transitions())
	assert.Same(t, got[0], c.Last())
	assert.Zero(t, rec.Count(genui.EventNameError))
}

func TestCoordinator_Stream_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess, _ := tt.NewSession()
	c := New(sess, DefaultConfig())
	source := tt.NewMockSource("a", "ab")

	nodes, err := collect(c.Stream(ctx, source))

	assert.Empty(t, nodes)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, source.CloseCalls())
	assert.Nil(t, c.Last())
}

func TestCoordinator_Stream_ConsumedOnce(t *testing.T) {
	c := New(genui.NewSession("once", nil), DefaultConfig())
	seq := c.Stream(context.Background(), genui.NewStaticSource(nil, "hello"))

	first, err := collect(seq)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := collect(seq)
	assert.ErrorIs(t, err, ErrStreamConsumed)
	assert.Empty(t, second)
}

func TestRender_Restartable(t *testing.T) {
	reg := tt.Registry("Badge")
	seq := Render(
		context.Background(),
		[]string{"<Ba", "<Badge color='red'>Hi</Badge>"},
		"<Badge color='red'>Hi</Badge>",
		reg,
		DefaultConfig(),
	)

	first, err := collect(seq)
	require.NoError(t, err)
	second, err := collect(seq)
	require.NoError(t, err)

	tt.AssertTrees(t, []string{badgeTree, badgeTree}, first)
	assert.Equal(t, first, second)
}

func TestStream_FromStreamBuffer(t *testing.T) {
	chunks := []string{"Here: ", "<Bad", "ge color=", "'red'>", "Hi</Badge>", "\n"}
	buf := genui.NewStreamBuffer()

	go func() {
		for _, c := range chunks {
			buf.SendReasoning("thinking ")
			buf.SendContent(c)
		}
		buf.CompleteWithAccumulated(nil)
	}()

	nodes, err := collect(Stream(context.Background(), buf, tt.Registry("Badge"), DefaultConfig()))
	require.NoError(t, err)

	// Frames: "Here: " parses; the tag is incomplete for the next three chunks;
	// then the closed tag and the trailing newline; then the final document.
	withBadge := `
		Container
		  Display "Here: "
		  Invocation Badge {color="red"}
		    Display "Hi"
	`
	withBreak := `
		Container
		  Display "Here: "
		  Invocation Badge {color="red"}
		    Display "Hi"
		  LineBreak
	`
	tt.AssertTrees(t, []string{
		"Container\n  Display \"Here: \"\n",
		withBadge,
		withBreak,
		withBreak,
	}, nodes)
}

func TestSwallowable(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected bool
	}{
		{name: "syntax error", input: &markup.SyntaxError{Msg: "x"}, expected: true},
		{name: "wrapped syntax error", input: fmt.Errorf("frame: %w", &markup.SyntaxError{}), expected: true},
		{name: "unsupported attribute", input: fmt.Errorf("<B>: %w", genui.ErrUnsupportedAttributeExpression), expected: true},
		{name: "unhandled node kind", input: fmt.Errorf("%w: *x", genui.ErrUnhandledNodeKind), expected: false},
		{name: "other error", input: errors.New("other"), expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, swallowable(tc.input))
		})
	}
}

func TestNext_TerminalStateHasNoMoves(t *testing.T) {
	for _, tr := range []Transition{
		TransitionEmit, TransitionSwallow, TransitionSkip, TransitionFinalize,
		TransitionComplete, TransitionFail, TransitionAbort,
	} {
		_, ok := next(StateDone, tr)
		assert.False(t, ok, tr)
	}

	_, ok := next(StateFinalizing, TransitionEmit)
	assert.False(t, ok)
}

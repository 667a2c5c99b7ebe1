package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/render"
)

type replayOptions struct {
	chunk      int
	delay      time.Duration
	finalOnly  bool
	latestOnly bool
	keepFrames bool
}

func newReplayCmd(global *globalOptions) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Replay a markup document as a simulated token stream",
		Long: `Split a markup document into chunks and stream it through the renderer,
printing the UI tree of every frame that hydrates and of the final document.

Use "-" to read the document from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.chunk, "chunk", 16, "chunk size in characters")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "delay between chunks")
	cmd.Flags().BoolVar(&opts.finalOnly, "final-only", false, "print only the final tree")
	cmd.Flags().BoolVar(&opts.latestOnly, "latest-only", false, "coalesce frames the renderer has not picked up yet")
	cmd.Flags().BoolVar(&opts.keepFrames, "keep-unchanged", false, "re-hydrate frames identical to the previous one")

	return cmd
}

func runReplay(cmd *cobra.Command, global *globalOptions, opts *replayOptions, path string) error {
	if opts.chunk <= 0 {
		return fmt.Errorf("--chunk must be positive, got %d", opts.chunk)
	}

	doc, err := readDocument(cmd, path)
	if err != nil {
		return err
	}

	cat, err := global.loadCatalog()
	if err != nil {
		return err
	}
	sess, closeEvents, err := global.newSession("replay", global.registry(cat), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeEvents()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	stream := genui.NewStreamBufferWithConfig(genui.StreamBufferConfig{LatestOnly: opts.latestOnly}).
		WithCancel(cancel)
	go feed(ctx, stream, chunks(doc, opts.chunk), opts.delay)

	cfg := render.DefaultConfig()
	cfg.SessionName = "replay"
	cfg.SkipUnchangedFrames = !opts.keepFrames

	out := newPrinter(cmd.OutOrStdout(), DefaultTheme, global.noColor)
	var last genui.Node
	for tree, err := range render.New(sess, cfg).Stream(ctx, stream) {
		if err != nil {
			out.Error(err)
			return err
		}
		last = tree
		if opts.finalOnly {
			continue
		}
		out.Header(frameLabel(sess.Frame()))
		out.Tree(tree)
	}

	if opts.finalOnly {
		out.Tree(last)
	}
	out.Summary(sess.Stats())
	return nil
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// feed sends chunks to stream, then completes it with the accumulated document.
func feed(ctx context.Context, stream *genui.StreamBuffer, parts []string, delay time.Duration) {
	for _, part := range parts {
		if delay > 0 {
			select {
			case <-ctx.Done():
				stream.CompleteWithAccumulated(ctx.Err())
				return
			case <-time.After(delay):
			}
		}
		stream.SendContent(part)
	}
	stream.CompleteWithAccumulated(nil)
}

// chunks splits s into pieces of at most size runes.
func chunks(s string, size int) []string {
	runes := []rune(s)
	var out []string
	for len(runes) > 0 {
		n := min(size, len(runes))
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}

func frameLabel(frame int) string {
	if frame == 0 {
		return "final"
	}
	return fmt.Sprintf("frame %d", frame)
}

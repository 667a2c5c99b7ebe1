package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/catalog"
	"github.com/rickchristie/genui/models"
	"github.com/rickchristie/genui/render"
)

const systemPreamble = `You answer in markup. Write plain text and use the components listed below
as tags where they help. Do not use any other component. Attribute values must be
quoted strings or literal {numbers}, {true}, {false} or {null}; never write other
expressions.`

type chatOptions struct {
	provider   string
	model      string
	baseURL    string
	latestOnly bool
	frames     bool
}

func newChatCmd(global *globalOptions) *cobra.Command {
	opts := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with a model and render its answers as UI trees",
		Long: `Start an interactive chat. Every answer is streamed through the renderer and
its final UI tree is printed. The component catalog is sent as the system prompt.

Type /quit or press Ctrl-D to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", envOr("GENUI_PROVIDER", "openai"), "model provider: openai or github")
	cmd.Flags().StringVar(&opts.model, "model", os.Getenv("GENUI_MODEL"), "model name")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", os.Getenv("GENUI_BASE_URL"), "OpenAI-compatible API base URL")
	cmd.Flags().BoolVar(&opts.latestOnly, "latest-only", true, "coalesce frames the renderer has not picked up yet")
	cmd.Flags().BoolVar(&opts.frames, "frames", false, "print every intermediate tree, not just the final one")

	return cmd
}

// newModel creates the model for opts. The API token comes from GENUI_API_KEY.
func newModel(opts *chatOptions) (*models.LCGWrapper, error) {
	token := os.Getenv("GENUI_API_KEY")
	switch opts.provider {
	case "openai":
		return models.NewOpenAIModel(opts.model, token, opts.baseURL)
	case "github":
		return models.NewGitHubModel(opts.model, token)
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.provider)
	}
}

func runChat(cmd *cobra.Command, global *globalOptions, opts *chatOptions) error {
	cat, err := global.loadCatalog()
	if err != nil {
		return err
	}
	model, err := newModel(opts)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	c := newChat(global, opts, cat, model.WithLatestOnly(opts.latestOnly), cmd.OutOrStdout(), cmd.ErrOrStderr())
	defer c.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		if err := c.Turn(cmd.Context(), line); err != nil {
			// A failed answer does not end the conversation.
			c.out.Error(err)
		}
	}
}

// chat holds the conversation state of the chat command.
type chat struct {
	global  *globalOptions
	opts    *chatOptions
	model   *models.LCGWrapper
	reg     *genui.Registry
	out     *printer
	stderr  io.Writer
	history []llms.MessageContent
	id      string // Prefix of session names, unique per run
	turns   int
	closers []func() error
}

func newChat(
	global *globalOptions,
	opts *chatOptions,
	cat *catalog.Catalog,
	model *models.LCGWrapper,
	stdout, stderr io.Writer,
) *chat {
	system := systemPreamble
	if cat != nil {
		system += "\n\n" + catalog.Prompt(cat)
	}
	return &chat{
		global:  global,
		opts:    opts,
		model:   model,
		reg:     global.registry(cat),
		out:     newPrinter(stdout, DefaultTheme, global.noColor),
		stderr:  stderr,
		history: []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeSystem, system)},
		id:      uuid.NewString()[:8],
	}
}

// Turn sends one user message and prints the rendered answer. The final document
// is added to the history only when it hydrated.
func (c *chat) Turn(ctx context.Context, input string) error {
	c.turns++
	sess, closeEvents, err := c.global.newSession(fmt.Sprintf("chat-%s-%d", c.id, c.turns), c.reg, c.stderr)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, closeEvents)

	messages := append(slices.Clip(c.history), llms.TextParts(llms.ChatMessageTypeHuman, input))
	source := c.model.WithSession(sess).Stream(ctx, messages)

	var last genui.Node
	for tree, err := range render.New(sess, render.DefaultConfig()).Stream(ctx, source) {
		if err != nil {
			return err
		}
		last = tree
		if c.opts.frames && sess.Frame() > 0 {
			c.out.Header(frameLabel(sess.Frame()))
			c.out.Tree(tree)
		}
	}

	final, err := source.Final(ctx)
	if err != nil {
		return err
	}
	c.history = append(messages, llms.TextParts(llms.ChatMessageTypeAI, final))
	c.out.Tree(last)
	return nil
}

// Close releases the event sinks opened by the chat.
func (c *chat) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/catalog"
	"github.com/rickchristie/genui/events"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	catalog    string
	components []string
	logLevel   string
	eventsFile string
	noColor    bool
}

// NewRootCmd builds the genui command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "genui",
		Short: "Hydrate streamed markup into UI trees",
		Long: `genui - render streaming model output as component trees.

Components are declared in a YAML catalog (--catalog) or registered by name
(--component). Tags naming anything else are dropped from the output.

Environment:
  GENUI_CATALOG     default for --catalog
  GENUI_LOG_LEVEL   default for --log-level
  GENUI_API_KEY     API token for 'chat'
  GENUI_MODEL       default for 'chat --model'
  GENUI_BASE_URL    default for 'chat --base-url'

Examples:
  # Replay a recorded answer in 8-byte chunks and show every frame
  genui replay answer.mdx --catalog components.yaml --chunk 8

  # Chat with a model through the GitHub Models API
  GENUI_API_KEY=$GITHUB_TOKEN genui chat --provider github --catalog components.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.catalog, "catalog", os.Getenv("GENUI_CATALOG"), "component catalog (YAML)")
	flags.StringSliceVar(&opts.components, "component", nil, "register a component by name (repeatable)")
	flags.StringVar(&opts.logLevel, "log-level", envOr("GENUI_LOG_LEVEL", "warn"), "event log level: debug, info, warn, error or off")
	flags.StringVar(&opts.eventsFile, "events-yaml", "", "append every event as YAML to this file")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newReplayCmd(opts))
	rootCmd.AddCommand(newChatCmd(opts))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// envOr returns the environment variable key, or def when it is unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadCatalog loads the configured catalog. It returns a nil catalog when none is
// configured.
func (o *globalOptions) loadCatalog() (*catalog.Catalog, error) {
	if o.catalog == "" {
		return nil, nil
	}
	return catalog.Load(o.catalog)
}

// registry builds the component registry from the catalog and --component flags.
func (o *globalOptions) registry(cat *catalog.Catalog) *genui.Registry {
	var examples []genui.Example
	if cat != nil {
		examples = cat.Examples(nil)
	}
	for _, name := range o.components {
		examples = append(examples, genui.Example{Component: name, Handle: name})
	}
	return genui.NewRegistry(examples...)
}

// newSession creates a session wired to the configured event sinks. The returned
// function closes the event file, if any.
func (o *globalOptions) newSession(
	name string,
	reg *genui.Registry,
	stderr io.Writer,
) (*genui.Session, func() error, error) {
	registry := events.NewRegistry()

	if !strings.EqualFold(o.logLevel, "off") {
		var level slog.Level
		if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
			return nil, nil, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		registry.Subscribe(events.NewSlogSubscriber(logger))
	}

	closer := func() error { return nil }
	if o.eventsFile != "" {
		f, err := os.OpenFile(o.eventsFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open events file: %w", err)
		}
		registry.Subscribe(events.NewYAMLSubscriberWithWriter(f).WithMinSeverity(genui.SeverityDebug))
		closer = f.Close
	}

	return genui.NewSession(name, reg).WithEvents(registry), closer, nil
}

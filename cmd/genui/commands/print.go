package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rickchristie/genui"
)

// Theme defines the color scheme for tree output.
type Theme struct {
	Primary lipgloss.Color // Component invocations
	Element lipgloss.Color // Plain elements
	Dim     lipgloss.Color // Headers and summaries
	Warn    lipgloss.Color // Dropped nodes and errors
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Element: lipgloss.Color("#58a6ff"),
	Dim:     lipgloss.Color("#6e7681"),
	Warn:    lipgloss.Color("#f0883e"),
}

// printer writes UI trees to a terminal.
type printer struct {
	w     io.Writer
	plain bool

	header    lipgloss.Style
	component lipgloss.Style
	element   lipgloss.Style
	dropped   lipgloss.Style
	failure   lipgloss.Style
}

func newPrinter(w io.Writer, theme Theme, plain bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:         w,
		plain:     plain,
		header:    r.NewStyle().Bold(true).Foreground(theme.Dim),
		component: r.NewStyle().Bold(true).Foreground(theme.Primary),
		element:   r.NewStyle().Foreground(theme.Element),
		dropped:   r.NewStyle().Foreground(theme.Warn),
		failure:   r.NewStyle().Bold(true).Foreground(theme.Warn),
	}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if p.plain {
		return s
	}
	return style.Render(s)
}

// Header prints a section header such as "── frame 3 ──".
func (p *printer) Header(label string) {
	fmt.Fprintln(p.w, p.render(p.header, "── "+label+" ──"))
}

// Tree prints the genui.Sprint dump of n, coloring each line by node kind.
func (p *printer) Tree(n genui.Node) {
	dump := strings.TrimSuffix(genui.Sprint(n), "\n")
	for _, line := range strings.Split(dump, "\n") {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		kind, _, _ := strings.Cut(body, " ")
		switch kind {
		case "Invocation":
			body = p.render(p.component, body)
		case "Element":
			body = p.render(p.element, body)
		case "Dropped":
			body = p.render(p.dropped, body)
		}
		fmt.Fprintln(p.w, indent+body)
	}
}

// Error prints a terminal error.
func (p *printer) Error(err error) {
	fmt.Fprintln(p.w, p.render(p.failure, "error: "+err.Error()))
}

// Summary prints the session counters.
func (p *printer) Summary(stats *genui.SessionStats) {
	fmt.Fprintln(p.w, p.render(p.header, fmt.Sprintf(
		"frames: %d, hydrated: %d, rejected: %d, unresolved components: %d",
		stats.GetFrames(),
		stats.GetFramesHydrated(),
		stats.GetFramesRejected(),
		stats.GetUnresolvedComponents(),
	)))
}

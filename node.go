package genui

import "strings"

// Node is a node of the renderer-agnostic UI tree produced by hydration.
//
// The set of node types is closed: [Container], [Element], [Invocation], [Display],
// [LineBreak] and [Dropped]. Renderers should switch over them exhaustively.
//
// A Node tree is owned by the consumer once produced. It holds no references back
// into the parsed document.
type Node interface {
	uiNode()
}

// Container groups child nodes without adding any meaning of its own.
// The document root always hydrates to a Container.
type Container struct {
	Children []Node
}

func (*Container) uiNode() {}

// Element is a plain markup tag (e.g. <p>, <ul>) passed through for the renderer to
// interpret. No component resolution is attempted for it.
type Element struct {
	// Tag is the tag name exactly as written.
	Tag string

	// Atom is the HTML atom name of Tag, or "" when Tag is not a known HTML element.
	Atom string

	// Props holds the element's attributes.
	Props map[string]any

	Children []Node
}

func (*Element) uiNode() {}

// Invocation is a resolved component invocation.
type Invocation struct {
	// Component is the registry entry the tag resolved to.
	Component Component

	// Props maps attribute names to scalar values: string, bool, float64 or nil.
	Props map[string]any

	Children []Node
}

func (*Invocation) uiNode() {}

// Display is a run of literal text.
type Display struct {
	// Content holds the text as a single-element slice. The text is never split.
	Content []string
}

func (*Display) uiNode() {}

// Text returns the concatenated content.
func (d *Display) Text() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Content, "")
}

// LineBreak is a text node consisting of exactly one newline.
type LineBreak struct{}

func (*LineBreak) uiNode() {}

// DropReason tells why a node was replaced by a [Dropped] placeholder.
type DropReason string

const (
	// DropUnresolved marks a component tag whose name is not in the registry.
	DropUnresolved DropReason = "unresolved"

	// DropImport marks a module-level import or export declaration.
	DropImport DropReason = "import"
)

// Dropped is a no-op placeholder for a node that was ignored or could not be
// resolved. Its subtree is not part of the output.
type Dropped struct {
	Reason DropReason

	// Name is the unresolved component name, if any.
	Name string
}

func (*Dropped) uiNode() {}

// Compile-time checks that all node types implement Node.
var (
	_ Node = (*Container)(nil)
	_ Node = (*Element)(nil)
	_ Node = (*Invocation)(nil)
	_ Node = (*Display)(nil)
	_ Node = (*LineBreak)(nil)
	_ Node = (*Dropped)(nil)
)

package markup

import "golang.org/x/net/html/atom"

// Node is a parsed document node.
//
// The set is closed: [*Root], [*Element], [*ComponentTag], [*Text] and [*Import].
// Consumers switch over these types and treat anything else as a parser/consumer
// mismatch.
type Node interface {
	parseNode()
}

// Root is the document node. It is never a child of another node.
type Root struct {
	Children []Node
}

func (*Root) parseNode() {}

// Element is a plain markup tag such as <p> or <ul>: a tag whose name starts with a
// lower-case letter and contains no dot.
type Element struct {
	// Tag is the tag name as written.
	Tag string

	// Atom is the HTML atom for Tag, or 0 when Tag is not a known HTML name.
	Atom atom.Atom

	Attrs    []Attr
	Children []Node

	// SelfClosing is set for <tag/> and for HTML void elements.
	SelfClosing bool
}

func (*Element) parseNode() {}

// ComponentTag is a tag naming a component: its name starts with an upper-case
// letter (<Badge>) or contains a dot (<Card.Header>).
type ComponentTag struct {
	Name     string
	Attrs    []Attr
	Children []Node

	// SelfClosing is set for <Name/>.
	SelfClosing bool
}

func (*ComponentTag) parseNode() {}

// Text is literal text between tags, with character references decoded.
type Text struct {
	Value string
}

func (*Text) parseNode() {}

// Import is a module-level import or export declaration.
type Import struct {
	// Src is the declaration source, without the trailing newline.
	Src string
}

func (*Import) parseNode() {}

// AttrKind classifies an attribute value.
type AttrKind int

const (
	// AttrBool is a bare attribute with no value, as in <Input disabled/>.
	AttrBool AttrKind = iota

	// AttrLiteral is a quoted string or an expression holding a single scalar
	// literal: a string, number, true, false or null.
	AttrLiteral

	// AttrExpr is any other expression, including spread attributes.
	AttrExpr
)

// String returns the kind name.
func (k AttrKind) String() string {
	switch k {
	case AttrBool:
		return "bool"
	case AttrLiteral:
		return "literal"
	case AttrExpr:
		return "expr"
	default:
		return "unknown"
	}
}

// Attr is one attribute of a start tag.
type Attr struct {
	// Name is the attribute name. It is empty for spread attributes ({...props}).
	Name string

	Kind AttrKind

	// Value is the scalar for AttrLiteral: string, bool, float64 or nil.
	Value any

	// Expr is the raw expression source between the braces, for values written as
	// {expression}. It is empty for quoted values and bare attributes.
	Expr string
}

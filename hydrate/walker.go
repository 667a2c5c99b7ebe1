package hydrate

import (
	"fmt"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/markup"
)

// Walker turns parsed documents into UI trees.
//
// A Walker holds no per-document state and may be reused for any number of
// documents, one at a time.
type Walker struct {
	registry *genui.Registry
	session  *genui.Session
}

// NewWalker creates a Walker resolving component tags against registry.
func NewWalker(registry *genui.Registry) *Walker {
	return &Walker{registry: registry}
}

// WithSession sets the session that receives diagnostics. When the walker was
// created without a registry, the session's registry is used.
// Returns the walker for chaining.
func (w *Walker) WithSession(s *genui.Session) *Walker {
	w.session = s
	if w.registry == nil {
		w.registry = s.Registry()
	}
	return w
}

// Walk is shorthand for NewWalker(registry).Walk(n).
func Walk(n markup.Node, registry *genui.Registry) (genui.Node, error) {
	return NewWalker(registry).Walk(n)
}

// Walk converts n into a UI tree, depth first, keeping document order.
//
//   - *markup.Root becomes a *genui.Container.
//   - *markup.Element becomes a *genui.Element with the same tag.
//   - *markup.ComponentTag becomes a *genui.Invocation when the name is registered,
//     and a *genui.Dropped placeholder (plus an UnresolvedComponentEvent) otherwise.
//   - *markup.Text becomes *genui.LineBreak for "\n", nothing for "", and
//     *genui.Display for anything else.
//   - *markup.Import becomes a *genui.Dropped placeholder.
//
// Attribute values must be literals: any other expression fails the walk with
// genui.ErrUnsupportedAttributeExpression. A node of any other type fails it with
// genui.ErrUnhandledNodeKind. Walk returns a nil Node and no error only for empty
// text.
func (w *Walker) Walk(n markup.Node) (genui.Node, error) {
	switch t := n.(type) {
	case *markup.Root:
		children, err := w.walkChildren(t.Children)
		if err != nil {
			return nil, err
		}
		return &genui.Container{Children: children}, nil

	case *markup.Element:
		return w.walkElement(t)

	case *markup.ComponentTag:
		return w.walkComponent(t)

	case *markup.Text:
		switch t.Value {
		case "":
			return nil, nil
		case "\n":
			return &genui.LineBreak{}, nil
		default:
			return &genui.Display{Content: []string{t.Value}}, nil
		}

	case *markup.Import:
		return &genui.Dropped{Reason: genui.DropImport}, nil

	default:
		return nil, fmt.Errorf("%w: %T", genui.ErrUnhandledNodeKind, n)
	}
}

// walkChildren walks nodes in order. Children that walk to nothing get no slot.
func (w *Walker) walkChildren(nodes []markup.Node) ([]genui.Node, error) {
	var out []genui.Node
	for _, c := range nodes {
		ui, err := w.Walk(c)
		if err != nil {
			return nil, err
		}
		if ui == nil {
			continue
		}
		out = append(out, ui)
	}
	return out, nil
}

func (w *Walker) walkElement(el *markup.Element) (genui.Node, error) {
	props, err := extractProps("<"+el.Tag+">", el.Attrs)
	if err != nil {
		return nil, err
	}
	children, err := w.walkChildren(el.Children)
	if err != nil {
		return nil, err
	}
	return &genui.Element{
		Tag:      el.Tag,
		Atom:     el.Atom.String(),
		Props:    props,
		Children: children,
	}, nil
}

func (w *Walker) walkComponent(tag *markup.ComponentTag) (genui.Node, error) {
	component, ok := w.registry.Lookup(tag.Name)
	if !ok {
		w.session.PublishUnresolvedComponent(tag.Name)
		return &genui.Dropped{Reason: genui.DropUnresolved, Name: tag.Name}, nil
	}

	props, err := extractProps("<"+tag.Name+">", tag.Attrs)
	if err != nil {
		return nil, err
	}
	children, err := w.walkChildren(tag.Children)
	if err != nil {
		return nil, err
	}
	return &genui.Invocation{
		Component: component,
		Props:     props,
		Children:  children,
	}, nil
}

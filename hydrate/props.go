package hydrate

import (
	"fmt"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/markup"
)

// extractProps builds the props of a tag from its attributes. Bare attributes are
// true, literals keep their scalar value, and the last of duplicate names wins.
func extractProps(tag string, attrs []markup.Attr) (map[string]any, error) {
	props := make(map[string]any, len(attrs))
	for _, a := range attrs {
		switch a.Kind {
		case markup.AttrBool:
			props[a.Name] = true
		case markup.AttrLiteral:
			props[a.Name] = a.Value
		case markup.AttrExpr:
			if a.Name == "" {
				return nil, fmt.Errorf("%s spread attribute {%s}: %w",
					tag, a.Expr, genui.ErrUnsupportedAttributeExpression)
			}
			return nil, fmt.Errorf("%s attribute %s={%s}: %w",
				tag, a.Name, a.Expr, genui.ErrUnsupportedAttributeExpression)
		default:
			return nil, fmt.Errorf("%s attribute %s: unknown kind %v: %w",
				tag, a.Name, a.Kind, genui.ErrUnhandledNodeKind)
		}
	}
	return props, nil
}

package genui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Sprint returns a deterministic, indented text dump of a UI tree.
//
//	Container
//	  Invocation Badge {color="red"}
//	    Display "Hi"
//	  LineBreak
//	  Dropped unresolved Chart
func Sprint(n Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, n)
	return sb.String()
}

// Fprint writes the dump produced by [Sprint] to w.
func Fprint(w io.Writer, n Node) error {
	return fprint(w, n, 0)
}

func fprint(w io.Writer, n Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	var (
		line     string
		children []Node
	)

	switch t := n.(type) {
	case *Container:
		line = "Container"
		children = t.Children
	case *Element:
		line = "Element " + t.Tag + FormatProps(t.Props)
		children = t.Children
	case *Invocation:
		line = "Invocation " + t.Component.Name + FormatProps(t.Props)
		children = t.Children
	case *Display:
		line = "Display " + strconv.Quote(t.Text())
	case *LineBreak:
		line = "LineBreak"
	case *Dropped:
		line = "Dropped " + string(t.Reason)
		if t.Name != "" {
			line += " " + t.Name
		}
	case nil:
		line = "<nil>"
	default:
		line = fmt.Sprintf("<unknown %T>", n)
	}

	if _, err := fmt.Fprintln(w, indent+line); err != nil {
		return err
	}
	for _, c := range children {
		if err := fprint(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// FormatProps renders props as ` {k1=v1 k2=v2}` with sorted keys, or "" when empty.
func FormatProps(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+formatScalar(props[k]))
	}
	return " {" + strings.Join(parts, " ") + "}"
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

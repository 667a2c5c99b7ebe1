package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rickchristie/genui"
	"golang.org/x/net/html"
)

// Markup renders a usage example as markup that hydrates back to the same
// invocation tree.
//
//	<Badge color="red" count={2}>New</Badge>
func Markup(ex genui.Example) string {
	var sb strings.Builder
	writeExample(&sb, ex)
	return sb.String()
}

func writeExample(sb *strings.Builder, ex genui.Example) {
	if ex.Component == "" {
		sb.WriteString(html.EscapeString(ex.Text))
		for _, child := range ex.Children {
			writeExample(sb, child)
		}
		return
	}

	sb.WriteByte('<')
	sb.WriteString(ex.Component)
	writeProps(sb, ex.Props)
	if ex.Text == "" && len(ex.Children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	sb.WriteString(html.EscapeString(ex.Text))
	for _, child := range ex.Children {
		writeExample(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(ex.Component)
	sb.WriteByte('>')
}

func writeProps(sb *strings.Builder, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		switch v := props[k].(type) {
		case bool:
			if !v {
				sb.WriteString("={false}")
			}
		case string:
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(v))
			sb.WriteByte('"')
		case nil:
			sb.WriteString("={null}")
		case float64:
			sb.WriteString("={" + strconv.FormatFloat(v, 'f', -1, 64) + "}")
		case int, int64, uint64:
			sb.WriteString(fmt.Sprintf("={%d}", v))
		default:
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(fmt.Sprint(v)))
			sb.WriteByte('"')
		}
	}
}

// Prompt renders the catalog as a reference section for a system prompt: each
// component with its description, its props and its examples as markup.
func Prompt(c *Catalog) string {
	var sb strings.Builder
	for i, spec := range c.Components {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "## <%s>\n", spec.Name)
		if spec.Description != "" {
			sb.WriteString(spec.Description)
			sb.WriteByte('\n')
		}
		writePropList(&sb, spec.Props)
		for _, ex := range spec.Examples {
			sb.WriteString(Markup(toExample(ex, nil)))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func writePropList(sb *strings.Builder, raw map[string]any) {
	props, _ := raw["properties"].(map[string]any)
	if len(props) == 0 {
		return
	}
	required := map[string]bool{}
	if list, ok := raw["required"].([]any); ok {
		for _, name := range list {
			required[fmt.Sprint(name)] = true
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString("Props:\n")
	for _, name := range names {
		prop, _ := props[name].(map[string]any)
		fmt.Fprintf(sb, "- %s (%s", name, describe(prop))
		if required[name] {
			sb.WriteString(", required")
		}
		sb.WriteByte(')')
		if desc, ok := prop["description"].(string); ok && desc != "" {
			sb.WriteString(": " + desc)
		}
		sb.WriteByte('\n')
	}
}

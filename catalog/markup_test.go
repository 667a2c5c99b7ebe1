package catalog

import (
	"path/filepath"
	"testing"

	"github.com/rickchristie/genui"
	"github.com/rickchristie/genui/hydrate"
	"github.com/rickchristie/genui/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkup(t *testing.T) {
	type input struct {
		example genui.Example
	}

	type expected struct {
		markup string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "self-closing component",
			input:    input{example: genui.Example{Component: "Badge", Props: map[string]any{"color": "red"}}},
			expected: expected{markup: `<Badge color="red"/>`},
		},
		{
			name: "every literal kind",
			input: input{example: genui.Example{
				Component: "Badge",
				Props: map[string]any{
					"active": true,
					"hidden": false,
					"label":  `a "b" <c>`,
					"count":  2.5,
					"n":      3,
					"icon":   nil,
				},
			}},
			expected: expected{
				markup: `<Badge active count={2.5} hidden={false} icon={null} label="a &#34;b&#34; &lt;c&gt;" n={3}/>`,
			},
		},
		{
			name: "nested content",
			input: input{example: genui.Example{
				Component: "Card",
				Props:     map[string]any{"title": "Status"},
				Children: []genui.Example{
					{Text: "Build: "},
					{Component: "Badge", Props: map[string]any{"color": "green"}, Text: "OK"},
				},
			}},
			expected: expected{markup: `<Card title="Status">Build: <Badge color="green">OK</Badge></Card>`},
		},
		{
			name:     "text is escaped",
			input:    input{example: genui.Example{Text: "1 < 2 & 3"}},
			expected: expected{markup: "1 &lt; 2 &amp; 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected.markup, Markup(tt.input.example))
		})
	}
}

func TestMarkup_Hydrates(t *testing.T) {
	reg := genui.NewRegistry(genui.Example{Component: "Card"}, genui.Example{Component: "Badge"})
	ex := genui.Example{
		Component: "Card",
		Props:     map[string]any{"title": `"Quoted" & <raw>`, "wide": true, "ratio": -0.25},
		Children: []genui.Example{
			{Text: "1 < 2 "},
			{Component: "Badge", Props: map[string]any{"count": 3.0, "icon": nil, "hidden": false}},
		},
	}

	root, err := markup.TryParse(Markup(ex))
	require.NoError(t, err)
	tree, err := hydrate.Walk(root, reg)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"Container\n"+
		"  Invocation Card {ratio=-0.25 title=\"\\\"Quoted\\\" & <raw>\" wide=true}\n"+
		"    Display \"1 < 2 \"\n"+
		"    Invocation Badge {count=3 hidden=false icon=null}\n",
		genui.Sprint(tree))
}

func TestPrompt(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "dashboard.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ""+
		"## <Badge>\n"+
		"A small colored label.\n"+
		"Props:\n"+
		"- color (string, required): Background color\n"+
		"- count (number)\n"+
		"<Badge color=\"red\">New</Badge>\n"+
		"\n"+
		"## <Card>\n"+
		"A boxed section with a title.\n"+
		"Props:\n"+
		"- title (string)\n"+
		"<Card title=\"Status\">Build: <Badge color=\"green\" count={3}>OK</Badge></Card>\n"+
		"\n"+
		"## <Chart.Line>\n",
		Prompt(c))
}

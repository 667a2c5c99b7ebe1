package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/rickchristie/genui/catalog"
	"github.com/rickchristie/genui/internal/tt"
	"github.com/rickchristie/genui/models"
)

func newTestChat(t *testing.T, mock *tt.MockModel, cat *catalog.Catalog, frames bool) (*chat, *bytes.Buffer) {
	t.Helper()
	global := &globalOptions{components: []string{"Badge"}, logLevel: "off", noColor: true}
	var out, errOut bytes.Buffer
	c := newChat(global, &chatOptions{frames: frames}, cat, models.NewLCGWrapper(mock), &out, &errOut)
	t.Cleanup(func() { _ = c.Close() })
	return c, &out
}

func messageText(m llms.MessageContent) string {
	var sb bytes.Buffer
	for _, part := range m.Parts {
		if text, ok := part.(llms.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

func TestChat_Turn(t *testing.T) {
	mock := tt.NewMockModel("Hi <Badge>", "!</Badge>")
	c, out := newTestChat(t, mock, nil, false)

	require.NoError(t, c.Turn(context.Background(), "hello"))
	require.NoError(t, c.Turn(context.Background(), "again"))

	tree := "" +
		"Container\n" +
		"  Display \"Hi \"\n" +
		"  Invocation Badge\n" +
		"    Display \"!\"\n"
	assert.Equal(t, tree+tree, out.String())

	require.Len(t, mock.CapturedMessages, 2)
	assert.Len(t, mock.CapturedMessages[0], 2, "system prompt and the first question")
	assert.Len(t, mock.CapturedMessages[1], 4, "the first answer is part of the history")
	assert.Equal(t, "Hi <Badge>!</Badge>", messageText(mock.CapturedMessages[1][2]))
	assert.Equal(t, llms.ChatMessageTypeAI, mock.CapturedMessages[1][2].Role)
	assert.Equal(t, "again", messageText(mock.CapturedMessages[1][3]))
}

func TestChat_Turn_Frames(t *testing.T) {
	mock := tt.NewMockModel("Hi", " there")
	c, out := newTestChat(t, mock, nil, true)

	require.NoError(t, c.Turn(context.Background(), "hello"))

	assert.Equal(t, ""+
		"── frame 1 ──\n"+
		"Container\n"+
		"  Display \"Hi\"\n"+
		"── frame 2 ──\n"+
		"Container\n"+
		"  Display \"Hi there\"\n"+
		"Container\n"+
		"  Display \"Hi there\"\n",
		out.String())
}

func TestChat_Turn_ModelError(t *testing.T) {
	boom := errors.New("rate limited")
	mock := tt.NewMockModel("Hi").WithError(boom)
	c, out := newTestChat(t, mock, nil, false)

	err := c.Turn(context.Background(), "hello")

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out.String())
	assert.Len(t, c.history, 1, "failed answers are not remembered")
}

func TestChat_SystemPrompt(t *testing.T) {
	cat, err := catalog.Parse([]byte("" +
		"components:\n" +
		"  - name: Badge\n" +
		"    description: A small colored label.\n"))
	require.NoError(t, err)
	mock := tt.NewMockModel("ok")
	c, _ := newTestChat(t, mock, cat, false)

	require.NoError(t, c.Turn(context.Background(), "hello"))

	system := messageText(mock.CapturedMessages[0][0])
	assert.Equal(t, llms.ChatMessageTypeSystem, mock.CapturedMessages[0][0].Role)
	assert.Contains(t, system, systemPreamble)
	assert.Contains(t, system, "## <Badge>\nA small colored label.\n")
}

func TestNewModel(t *testing.T) {
	t.Setenv("GENUI_API_KEY", "")

	_, err := newModel(&chatOptions{provider: "openai"})
	assert.ErrorIs(t, err, models.ErrMissingToken)

	_, err = newModel(&chatOptions{provider: "github"})
	assert.ErrorIs(t, err, models.ErrMissingToken)

	_, err = newModel(&chatOptions{provider: "carrier-pigeon"})
	assert.EqualError(t, err, `unknown provider "carrier-pigeon"`)

	t.Setenv("GENUI_API_KEY", "sk-test")
	model, err := newModel(&chatOptions{provider: "github", model: "openai/gpt-4.1"})
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4.1", model.ModelName())
}

func TestChat_SessionPrefixUniquePerRun(t *testing.T) {
	a, _ := newTestChat(t, tt.NewMockModel("a"), nil, false)
	b, _ := newTestChat(t, tt.NewMockModel("b"), nil, false)

	assert.Len(t, a.id, 8)
	assert.NotEqual(t, a.id, b.id)
}

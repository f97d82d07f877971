package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewRenderer(&out, &errOut, mode), &out, &errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{ModeAuto, ModeMarkdown},
		{"", ModeMarkdown},
		{"bogus", ModeMarkdown},
		{ModeText, ModeText},
		{ModeMarkdown, ModeMarkdown},
		{ModeJSON, ModeJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode)
			assert.False(t, r.IsTTY(), "buffers are never terminals")
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestHeader(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown)
	r.Header(2, "Routes")
	assert.Equal(t, "## Routes\n\n", out.String())

	r, out, _ = newTestRenderer(ModeText)
	r.Header(1, "Routes")
	assert.Contains(t, out.String(), "Routes")
	assert.NotContains(t, out.String(), "#")
}

func TestMessages_NoColorOffTerminal(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText)
	r.Success("done")
	r.Muted("quiet")
	r.StatusLine("cookbook.yaml", "success", "(created)")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "✓ done\nquiet\n  ✓ cookbook.yaml (created)\n", out.String())
	assert.Equal(t, "! careful\n✗ broken\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestJSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"routes": 4}))
	assert.Equal(t, "{\n  \"routes\": 4\n}\n", out.String())
}

func TestTable(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown)
	r.Table([]string{"Path", "View"}, [][]string{{"/", "Home"}, {"/explore", "Explore"}})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| path | view |", strings.ToLower(lines[0]))
	assert.Equal(t, "| /explore | Explore |", lines[3])

	r, out, _ = newTestRenderer(ModeText)
	r.Table([]string{"Path"}, [][]string{{"/"}})
	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "PATH")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **Path:** /explore", FormatKeyValue("Path", "/explore"))
	assert.Equal(t, "```html\n<p>x</p>\n```", FormatCodeBlock("html", "<p>x</p>\n"))
}

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrinter(plain bool, width int) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf, plain, false, width), &buf
}

func TestTable_Aligned(t *testing.T) {
	p, buf := newTestPrinter(false, 100)

	require.NoError(t, p.Table([]Row{
		{Key: "long_key", Value: "val"},
		{Key: "key", Value: "val"},
	}))

	assert.Equal(t, "long_key val\nkey      val\n", buf.String())
}

func TestTable_Plain(t *testing.T) {
	p, buf := newTestPrinter(true, 100)

	require.NoError(t, p.Table([]Row{
		{Key: "long_key", Value: "val"},
		{Key: "key", Value: "multi\nline"},
	}))

	assert.Equal(t, "long_key=val\nkey=multiline\n", buf.String())
}

// The key always stays on one line; the value gets at least one column.
func TestTable_TooNarrow(t *testing.T) {
	p, buf := newTestPrinter(false, 1)

	require.NoError(t, p.Table([]Row{{Key: "some", Value: "table"}}))

	assert.Equal(t, "some t\n     a\n     b\n     l\n     e\n", buf.String())
}

func TestTable_WrapsAtWords(t *testing.T) {
	p, buf := newTestPrinter(false, 20)

	require.NoError(t, p.Table([]Row{{Key: "Work", Value: "Piano Sonata No. 14 in C-sharp minor"}}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "Work Piano"))
	for _, line := range lines {
		assert.LessOrEqual(t, Width(strings.TrimRight(line, " ")), 20, line)
	}
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "     "), line)
	}
}

func TestStyle_NoColor(t *testing.T) {
	p, _ := newTestPrinter(false, 80)
	assert.Equal(t, "text", p.Style(lipgloss.NewStyle().Bold(true), "text"))
	assert.Equal(t, "text", p.Gradient("text", T().Primary, T().Secondary))
}

func TestNewPrinter_PlainDisablesColor(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, true, true, 0)
	assert.False(t, p.Color)
	assert.Equal(t, DefaultWidth, p.Width)
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	assert.False(t, ColorEnabled(), "NO_COLOR set to any value disables colour")

	t.Setenv("TERM", "dumb")
	assert.False(t, ColorEnabled())
}

func TestGradientSteps(t *testing.T) {
	steps := gradientSteps(3, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))
	require.Len(t, steps, 3)
	assert.Equal(t, "#000000", steps[0].Hex())
	assert.Equal(t, "#ffffff", steps[2].Hex())

	// ANSI colour numbers fall back to grey
	assert.Equal(t, neutral, gradientSteps(1, lipgloss.Color("240"), lipgloss.Color("#ffffff"))[0])
}

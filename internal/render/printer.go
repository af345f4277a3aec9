package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is used when the output width is unknown.
const DefaultWidth = 80

// Printer writes formatted output. Plain selects machine-readable key=value
// output; Color enables escape sequences.
type Printer struct {
	Out   io.Writer
	Plain bool
	Color bool
	Width int

	renderer *lipgloss.Renderer
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer, plain, color bool, width int) *Printer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Printer{
		Out:      out,
		Plain:    plain,
		Color:    color && !plain,
		Width:    width,
		renderer: lipgloss.NewRenderer(out),
	}
}

// ColorEnabled reports whether the environment allows coloured output.
func ColorEnabled() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	return !noColor && os.Getenv("TERM") != "dumb"
}

// Style renders text with s when colour is enabled.
func (p *Printer) Style(s lipgloss.Style, text string) string {
	if !p.Color {
		return text
	}
	return s.Renderer(p.renderer).Render(text)
}

// Line writes s followed by a newline.
func (p *Printer) Line(s string) error {
	_, err := io.WriteString(p.Out, s+"\n")
	return err
}

// Row is a table line. A nil Style uses the theme's value style.
type Row struct {
	Key   string
	Value string
	Style *lipgloss.Style
}

// Table writes rows as aligned key/value pairs, wrapping values to the
// printer width. In plain mode each row is a "key=value" line.
func (p *Printer) Table(rows []Row) error {
	var b strings.Builder

	if p.Plain {
		for _, r := range rows {
			b.WriteString(Sanitize(r.Key) + "=" + Sanitize(r.Value) + "\n")
		}
		_, err := io.WriteString(p.Out, b.String())
		return err
	}

	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, Width(r.Key))
	}
	valWidth := max(p.Width-keyWidth-1, 1)

	styles := T().S()
	blank := strings.Repeat(" ", keyWidth)
	for _, r := range rows {
		valStyle := styles.Value
		if r.Style != nil {
			valStyle = *r.Style
		}

		for i, line := range Wrap(r.Value, valWidth) {
			key := blank
			if i == 0 {
				key = p.Style(styles.Key, Pad(Sanitize(r.Key), keyWidth))
			}
			b.WriteString(key + " " + p.Style(valStyle, line) + "\n")
		}
	}

	_, err := io.WriteString(p.Out, b.String())
	return err
}

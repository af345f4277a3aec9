package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for ANSI palette colours, which have no fixed RGB value.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient renders bold text with a horizontal colour gradient, one step per
// grapheme cluster. Without colour support the text is returned unchanged.
func (p *Printer) Gradient(text string, from, to lipgloss.Color) string {
	if !p.Color || text == "" {
		return text
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	base := p.renderer.NewStyle().Bold(true)
	if len(clusters) == 1 {
		return base.Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range gradientSteps(len(clusters), from, to) {
		b.WriteString(base.Foreground(lipgloss.Color(c.Hex())).Render(clusters[i]))
	}
	return b.String()
}

// gradientSteps blends n colours from from to to in HCL space.
func gradientSteps(n int, from, to lipgloss.Color) []colorful.Color {
	start, end := hexColor(from), hexColor(to)
	if n < 2 {
		return []colorful.Color{start}
	}

	steps := make([]colorful.Color, n)
	for i := range steps {
		steps[i] = start.BlendHcl(end, float64(i)/float64(n-1)).Clamped()
	}
	return steps
}

func hexColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}

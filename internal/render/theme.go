package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the colours used in command output.
type Theme struct {
	Primary   lipgloss.Color // current song, headings
	Secondary lipgloss.Color // gradient end
	FgBase    lipgloss.Color
	FgMuted   lipgloss.Color
	Value     lipgloss.Color // table values
	Warning   lipgloss.Color
	Error     lipgloss.Color

	styles *Styles
}

// Styles contains pre-built styles for output elements.
type Styles struct {
	Base    lipgloss.Style
	Key     lipgloss.Style // table keys
	Value   lipgloss.Style // table values
	Title   lipgloss.Style // song title
	Header  lipgloss.Style // section headings
	Bullet  lipgloss.Style
	Playing lipgloss.Style // current song in listings
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),
	FgBase:    lipgloss.Color("#c0c0c0"),
	FgMuted:   lipgloss.Color("#808080"),
	Value:     lipgloss.Color("#42b883"),
	Warning:   lipgloss.Color("#f1a208"),
	Error:     lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Key:     lipgloss.NewStyle().Foreground(t.FgMuted).Faint(true),
		Value:   lipgloss.NewStyle().Foreground(t.Value).Bold(true),
		Title:   base.Bold(true),
		Header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Bullet:  lipgloss.NewStyle().Foreground(t.Secondary),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

// themeAccents maps the persisted theme name to its accent color. Unknown
// names fall back to blue.
var themeAccents = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("39"),
	"green":  lipgloss.Color("42"),
	"purple": lipgloss.Color("135"),
	"red":    lipgloss.Color("196"),
	"indigo": lipgloss.Color("63"),
	"orange": lipgloss.Color("208"),
}

var ThemeNames = []string{"blue", "green", "purple", "red", "indigo", "orange"}

type Styles struct {
	Theme   string
	Accent  lipgloss.Style
	Title   lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Badge   lipgloss.Style
}

func NewStyles(theme string) Styles {
	accent, ok := themeAccents[theme]
	if !ok {
		theme = "blue"
		accent = themeAccents["blue"]
	}
	return Styles{
		Theme:   theme,
		Accent:  lipgloss.NewStyle().Foreground(accent),
		Title:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Tab:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		TabOn:   lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true).Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("161")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Badge:   lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for links, borders
	ColorDanger    = "196" // Red - for the disconnected banner
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title        lipgloss.Style // Bold accent color - for headings
	TitleWarning lipgloss.Style // Bold danger color - for the disconnected heading
	Box          lipgloss.Style // Rounded border around the whole view
	BoxDanger    lipgloss.Style // Rounded border, danger color
	Normal       lipgloss.Style // Student names
	Bullet       lipgloss.Style // List markers
	Hint         lipgloss.Style // Help/hint text (muted color)
	Link         lipgloss.Style // Hyperlink text
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Bullet: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Link: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Underline(true),
}

// Package tui implements the guided bouquet configurator using Bubble Tea.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - soft floral tones
var (
	colorBlossom   = lipgloss.Color("#FFF0EB")
	colorPetal     = lipgloss.Color("#E8A0BF")
	colorStem      = lipgloss.Color("#6B8E6B")
	colorBark      = lipgloss.Color("#8B7355")
	colorHighlight = lipgloss.Color("#FF9ECD")
	colorSuccess   = lipgloss.Color("#4CAF50")
	colorWarning   = lipgloss.Color("#FFC107")
	colorError     = lipgloss.Color("#F44336")
	colorMuted     = lipgloss.Color("#9E9E9E")
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// App container
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHelp  lipgloss.Style

	// Step sections
	StepTitle    lipgloss.Style
	StepSubtitle lipgloss.Style

	// Catalog items
	ItemName     lipgloss.Style
	ItemDesc     lipgloss.Style
	ItemSelected lipgloss.Style
	ItemPrice    lipgloss.Style

	// Flower groups
	GroupHeader lipgloss.Style
	GroupBadge  lipgloss.Style
	SwatchFocus lipgloss.Style

	// Order summary
	SummaryTitle lipgloss.Style
	SummaryLine  lipgloss.Style
	SummaryTotal lipgloss.Style

	// General
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Box       lipgloss.Style
	HelpBar   lipgloss.Style
}

// DefaultStyles returns the default TUI styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBark).
			MarginBottom(1).
			Padding(0, 1),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(colorPetal).
			Bold(true),

		HeaderHelp: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),

		StepTitle: lipgloss.NewStyle().
			Foreground(colorPetal).
			Bold(true).
			MarginBottom(1),

		StepSubtitle: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),

		ItemName: lipgloss.NewStyle().
			Foreground(colorBlossom).
			Bold(true),

		ItemDesc: lipgloss.NewStyle().
			Foreground(colorMuted),

		ItemSelected: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true),

		ItemPrice: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),

		GroupHeader: lipgloss.NewStyle().
			Foreground(colorBlossom).
			Bold(true),

		GroupBadge: lipgloss.NewStyle().
			Foreground(colorStem).
			Bold(true),

		SwatchFocus: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true),

		SummaryTitle: lipgloss.NewStyle().
			Foreground(colorPetal).
			Bold(true).
			MarginBottom(1),

		SummaryLine: lipgloss.NewStyle().
			Foreground(colorBlossom),

		SummaryTotal: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(colorMuted),

		Highlight: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBark).
			Padding(1, 2),

		HelpBar: lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1),
	}
}

// swatch renders a variety's display color as a dot. Varieties without
// a hex color fall back to a plain dot.
func swatch(hex string) string {
	if hex == "" {
		return "●"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

// Package tui: Lipgloss style constants for the "Nebula Dark" theme.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all theme-aware Lipgloss styles.
type Styles struct {
	// Colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Danger     lipgloss.Color
	Warning    lipgloss.Color
	Success    lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color

	// Component styles
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	Sidebar        lipgloss.Style
	TargetItem     lipgloss.Style
	TargetSelected lipgloss.Style
	PanelTitle     lipgloss.Style
	TableHeader    lipgloss.Style
	TableRow       lipgloss.Style
	TableRowSel    lipgloss.Style
	SampleViewport lipgloss.Style
	Footer         lipgloss.Style
	FooterKey      lipgloss.Style
	Modal          lipgloss.Style
	ModalTitle     lipgloss.Style
	ModalInput     lipgloss.Style
	StatusOK       lipgloss.Style
	StatusWarn     lipgloss.Style
	StatusErr      lipgloss.Style
	Border         lipgloss.Style
}

// newStyles returns the "Nebula Dark" theme styles. The palette
// matches pkg/pprint so the viewer and the plain CLI read as one tool.
func newStyles() Styles {
	bg := lipgloss.Color("#0B0D16")
	surface := lipgloss.Color("#141829")
	primary := lipgloss.Color("#818CF8")
	accent := lipgloss.Color("#2DD4BF")
	danger := lipgloss.Color("#F87171")
	warning := lipgloss.Color("#FBBF24")
	success := lipgloss.Color("#4ADE80")
	muted := lipgloss.Color("#565B6E")
	text := lipgloss.Color("#E4E4E7")

	border := lipgloss.Border{
		Top: "─", Bottom: "─", Left: "│", Right: "│",
		TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
	}

	return Styles{
		Background: bg, Surface: surface, Primary: primary,
		Accent: accent, Danger: danger, Warning: warning,
		Success: success, Muted: muted, Text: text,

		Header: lipgloss.NewStyle().
			Background(primary).Foreground(bg).
			Bold(true).Padding(0, 1),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(accent).Bold(true),

		Sidebar: lipgloss.NewStyle().
			Background(surface).Foreground(text).
			BorderStyle(border).BorderRight(true).
			BorderForeground(muted).
			Padding(1, 1),

		TargetItem: lipgloss.NewStyle().
			Foreground(text).PaddingLeft(2),

		TargetSelected: lipgloss.NewStyle().
			Foreground(accent).Bold(true).PaddingLeft(1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(primary).Bold(true).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
			BorderForeground(muted).Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Foreground(muted).Bold(true).Padding(0, 1),

		TableRow: lipgloss.NewStyle().
			Foreground(text).Padding(0, 1),

		TableRowSel: lipgloss.NewStyle().
			Background(surface).Foreground(accent).Bold(true).Padding(0, 1),

		SampleViewport: lipgloss.NewStyle().
			Background(bg).Foreground(text).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(surface).Foreground(muted).
			Padding(0, 1),

		FooterKey: lipgloss.NewStyle().
			Foreground(primary).Bold(true),

		Modal: lipgloss.NewStyle().
			Background(surface).Foreground(text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Foreground(warning).Bold(true),

		ModalInput: lipgloss.NewStyle().
			Foreground(text).Background(bg).
			Border(lipgloss.NormalBorder()).BorderForeground(muted),

		StatusOK:   lipgloss.NewStyle().Foreground(success),
		StatusWarn: lipgloss.NewStyle().Foreground(warning),
		StatusErr:  lipgloss.NewStyle().Foreground(danger),

		Border: lipgloss.NewStyle().BorderStyle(border).BorderForeground(muted),
	}
}

// Package components: TUI sub-components for ephem's trajectory viewer.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─────────────────────────────────────────────────────────────────────────────
// Header component
// ─────────────────────────────────────────────────────────────────────────────

// Header renders the top status bar.
type Header struct {
	kernel      string
	target      string
	observer    string
	frame       string
	sampleCount int
}

// NewHeader creates a Header for the named kernel.
func NewHeader(kernel string) Header {
	return Header{kernel: kernel}
}

func (h *Header) SetQuery(target, observer, frame string) {
	h.target, h.observer, h.frame = target, observer, frame
}

func (h *Header) SetSampleCount(n int) { h.sampleCount = n }

// View renders the header bar. Accepts total terminal width.
func (h *Header) View(width int) string {
	left := fmt.Sprintf(" ◉ EPHEM  %s ", h.kernel)
	if h.target != "" {
		left = fmt.Sprintf(" ◉ EPHEM  %s  %s ← %s ", h.kernel, h.target, h.observer)
	}
	right := fmt.Sprintf(" %s · %d samples ", h.frame, h.sampleCount)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#818CF8")).
		Foreground(lipgloss.Color("#0B0D16")).
		Bold(true).
		Width(width).
		Render(left + strings.Repeat(" ", gap) + right)
}

// ─────────────────────────────────────────────────────────────────────────────
// Sidebar component
// ─────────────────────────────────────────────────────────────────────────────

// Sidebar renders the target body navigator.
type Sidebar struct {
	selected int
	items    []string
}

// NewSidebar creates an empty Sidebar.
func NewSidebar() Sidebar { return Sidebar{} }

// SetTargets updates the body list.
func (s *Sidebar) SetTargets(names []string) {
	s.items = names
	if s.selected >= len(names) {
		s.selected = 0
	}
}

// Select highlights the body at index i.
func (s *Sidebar) Select(i int) {
	if i >= 0 && i < len(s.items) {
		s.selected = i
	}
}

// View renders the sidebar.
func (s *Sidebar) View(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#818CF8")).Bold(true).
		Render("TARGETS")

	content := title + "\n"

	if len(s.items) == 0 {
		content += lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565B6E")).
			Render("  (no bodies)")
	}

	for i, name := range s.items {
		icon := "○ "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#E4E4E7")).PaddingLeft(2)
		if i == s.selected {
			icon = "▶ "
			style = style.Foreground(lipgloss.Color("#2DD4BF")).Bold(true)
		}
		content += style.Render(icon+name) + "\n"
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#141829")).
		Width(width).Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(lipgloss.Color("#565B6E")).
		Padding(1, 1).
		Render(content)
}

// ─────────────────────────────────────────────────────────────────────────────
// Footer component
// ─────────────────────────────────────────────────────────────────────────────

// Footer renders the bottom hint bar.
type Footer struct {
	err     error
	playing bool
}

// NewFooter creates a Footer.
func NewFooter() Footer { return Footer{} }

// SetError sets an error message to display.
func (f *Footer) SetError(err error) { f.err = err }

// SetPlaying toggles the playback indicator.
func (f *Footer) SetPlaying(on bool) { f.playing = on }

// View renders the footer.
func (f *Footer) View(width int) string {
	play := "play"
	if f.playing {
		play = "pause"
	}
	hints := []struct{ key, desc string }{
		{"↑↓", "scroll"}, {"←→", "step"}, {"space", play},
		{"p", "plane"}, {"n", "target"}, {"/", "epoch"}, {"?", "help"}, {"q", "quit"},
	}

	content := ""
	for _, h := range hints {
		content += lipgloss.NewStyle().Foreground(lipgloss.Color("#818CF8")).Bold(true).Render(h.key)
		content += lipgloss.NewStyle().Foreground(lipgloss.Color("#565B6E")).Render(" " + h.desc + "  ")
	}

	if f.err != nil {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).
			Render("Error: " + f.err.Error())
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#141829")).
		Width(width).Padding(0, 1).
		Render(content)
}

// Package components: plot panel, info panel, and modal rendering.
package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/plot"
	"github.com/kepler-works/ephem/internal/trajstat"
)

// ─────────────────────────────────────────────────────────────────────────────
// Plot panel
// ─────────────────────────────────────────────────────────────────────────────

// RenderPlot renders the braille trajectory chart with the cursor sample
// marked and a scale caption underneath.
func RenderPlot(samples []v1.Sample, plane plot.Plane, cursor int, width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#818CF8")).Bold(true).
		Padding(0, 1).
		Render("TRAJECTORY — " + plane.String())

	if len(samples) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565B6E")).
			Padding(2, 2).
			Render("No samples loaded. Press r to requery.")
		return lipgloss.NewStyle().Width(width).Height(height).
			Render(lipgloss.JoinVertical(lipgloss.Left, title, empty))
	}

	chartW := width - 4
	chartH := height - 4
	if chartW < 8 {
		chartW = 8
	}
	if chartH < 4 {
		chartH = 4
	}

	ch := plot.NewChart(samples, plane, chartW, chartH)
	if cursor >= 0 && cursor < len(samples) {
		ch.MarkSample(samples[cursor], '◉')
	}

	canvas := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2DD4BF")).
		Padding(0, 2).
		Render(ch.String())

	caption := ""
	if cursor >= 0 && cursor < len(samples) {
		s := samples[cursor]
		caption = fmt.Sprintf("◉ %s   r=%.4e km   v=%.2f km/s",
			ephtime.FormatUTC(s.Epoch), s.Position.Norm(), s.Velocity.Norm())
	}
	caption += fmt.Sprintf("   ·   1 cell ≈ %.0f km", ch.KMPerCell)
	captionLine := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#565B6E")).
		Padding(0, 2).
		Render(caption)

	return lipgloss.NewStyle().Width(width).Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, canvas, captionLine))
}

// ─────────────────────────────────────────────────────────────────────────────
// Info panel
// ─────────────────────────────────────────────────────────────────────────────

// RenderInfo renders the query parameters and derived trajectory figures.
func RenderInfo(req v1.TrajectoryRequest, kernel string, sum trajstat.Summary, cursor int, cached bool, width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#818CF8")).Bold(true).
		Padding(0, 1).Render("QUERY")

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#565B6E")).Width(12)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#E4E4E7"))

	kv := func(k, v string) string {
		return "  " + label.Render(k) + value.Render(v) + "\n"
	}

	source := "live"
	if cached {
		source = "cache"
	}

	content := title + "\n\n"
	content += kv("Kernel", kernel)
	content += kv("Target", req.Target)
	content += kv("Observer", req.Observer)
	content += kv("Frame", req.Frame)
	content += kv("Correction", string(req.Correction))
	content += kv("From", ephtime.FormatUTC(req.From))
	content += kv("To", ephtime.FormatUTC(req.To))
	content += kv("Samples", fmt.Sprintf("%d (%s)", sum.Samples, source))

	content += "\n" + lipgloss.NewStyle().
		Foreground(lipgloss.Color("#818CF8")).Bold(true).
		Padding(0, 1).Render("TRAJECTORY") + "\n\n"

	content += kv("Range", fmt.Sprintf("%.4e .. %.4e km", sum.MinRange, sum.MaxRange))
	content += kv("Mean range", fmt.Sprintf("%.4e km", sum.MeanRange))
	content += kv("Speed", fmt.Sprintf("%.2f .. %.2f km/s", sum.MinSpeed, sum.MaxSpeed))
	content += kv("Arc length", fmt.Sprintf("%.4e km", sum.ArcLength))
	if sum.Period > 0 {
		content += kv("Period", fmtSeconds(sum.Period))
	}
	if !sum.PlaneNormal.IsZero() {
		n := sum.PlaneNormal
		content += kv("Normal", fmt.Sprintf("[%.3f %.3f %.3f]", n.X, n.Y, n.Z))
	}

	if sum.Samples > 0 {
		pct := float64(cursor) / float64(sum.Samples-1) * 100
		if sum.Samples == 1 {
			pct = 0
		}
		content += "\n  " + label.Render("Sweep") +
			sweepBar(pct, 24) + value.Render(fmt.Sprintf(" %3.0f%%", pct)) + "\n"
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

// ─────────────────────────────────────────────────────────────────────────────
// Modal
// ─────────────────────────────────────────────────────────────────────────────

// Modal is a pop-over dialog.
type Modal struct {
	title    string
	body     string
	style    lipgloss.Style
	onSubmit func(input string) tea.Cmd
	input    string
	typ      modalType
}

type modalType int

const (
	modalInput modalType = iota
	modalHelp
)

// NewEpochModal creates an epoch-entry dialog. onSubmit receives the typed
// text when the user confirms.
func NewEpochModal(style lipgloss.Style, onSubmit func(input string) tea.Cmd) *Modal {
	return &Modal{
		title:    "Jump to epoch",
		body:     "  UTC (2025-03-01T06:00:00) or ET seconds",
		style:    style,
		onSubmit: onSubmit,
		typ:      modalInput,
	}
}

// NewHelpModal creates the keyboard help modal.
func NewHelpModal(style lipgloss.Style, body string) *Modal {
	return &Modal{
		title: "Keyboard Shortcuts",
		body:  body,
		style: style,
		typ:   modalHelp,
	}
}

// HandleKey processes a key for the modal. Returns (cmd, done).
func (m *Modal) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		return nil, true
	case "q":
		if m.typ == modalHelp {
			return nil, true
		}
	case "enter":
		if m.typ == modalInput && m.onSubmit != nil {
			return m.onSubmit(strings.TrimSpace(m.input)), true
		}
		return nil, true
	case "backspace":
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return nil, false
	}
	if m.typ == modalInput && msg.Type == tea.KeyRunes {
		m.input += string(msg.Runes)
	}
	return nil, false
}

// Overlay renders the modal centred over the background content.
func (m *Modal) Overlay(bg string, width, height int) string {
	content := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FBBF24")).Bold(true).
		Render("⚠  "+m.title) + "\n\n"
	content += m.body

	if m.typ == modalInput {
		content += "\n\n  > " + m.input + "█"
		content += "\n\n  [Enter] Confirm   [Esc] Cancel"
	} else {
		content += "\n\n  [Esc] Close"
	}

	box := m.style.Render(content)
	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, l := range boxLines {
		if w := lipgloss.Width(l); w > boxWidth {
			boxWidth = w
		}
	}
	boxHeight := len(boxLines)

	// Simple centre overlay (approximate — production would use overlay library)
	topPad := (height - boxHeight) / 2
	leftPad := (width - boxWidth) / 2
	if topPad < 0 {
		topPad = 0
	}
	if leftPad < 0 {
		leftPad = 0
	}

	_ = bg // In a full implementation, we'd composite over bg
	padding := strings.Repeat("\n", topPad)
	indent := strings.Repeat(" ", leftPad)
	out := padding
	for _, l := range boxLines {
		out += indent + l + "\n"
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

func sweepBar(pct float64, width int) string {
	filled := int(pct / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2DD4BF")).
		Render("[" + bar + "]")
}

func fmtSeconds(sec float64) string {
	switch {
	case sec >= 2*365.25*86400:
		return fmt.Sprintf("%.2f years", sec/(365.25*86400))
	case sec >= 2*86400:
		return fmt.Sprintf("%.2f days", sec/86400)
	case sec >= 2*3600:
		return fmt.Sprintf("%.2f hours", sec/3600)
	default:
		return fmt.Sprintf("%.0f s", sec)
	}
}

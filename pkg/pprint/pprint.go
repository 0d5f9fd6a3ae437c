// Package pprint renders ephem's styled terminal output: status lines,
// key/value blocks, panels, tables, spinners and progress bars, all
// lipgloss-colored against a dark background.
package pprint

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ─────────────────────────────────────────────────────────────────────────────
// Colour palette
// ─────────────────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.Color("#818CF8") // Indigo
	ColorAccent  = lipgloss.Color("#2DD4BF") // Teal
	ColorSuccess = lipgloss.Color("#4ADE80") // Green
	ColorWarning = lipgloss.Color("#FBBF24") // Amber
	ColorError   = lipgloss.Color("#F87171") // Red
	ColorMuted   = lipgloss.Color("#565B6E") // Slate
	ColorText    = lipgloss.Color("#E4E4E7") // Off-white
	ColorBg      = lipgloss.Color("#0B0D16") // Near-black
)

// ─────────────────────────────────────────────────────────────────────────────
// Styles
// ─────────────────────────────────────────────────────────────────────────────

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Width(14)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	StylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)
)

// headerWidth matches the default plot width so section bars and
// canvases line up.
const headerWidth = 64

// ─────────────────────────────────────────────────────────────────────────────
// Status lines
// ─────────────────────────────────────────────────────────────────────────────

// Success prints a ✓ line.
func Success(format string, args ...any) {
	fmt.Println(StyleSuccess.Render("✓ ") + StyleText.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a ⚠ line.
func Warn(format string, args ...any) {
	fmt.Println(StyleWarning.Render("⚠ ") + StyleText.Render(fmt.Sprintf(format, args...)))
}

// Error prints a ✗ line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, StyleError.Render("✗ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Info prints a dimmed detail line.
func Info(format string, args ...any) {
	fmt.Println(StyleMuted.Render("  " + fmt.Sprintf(format, args...)))
}

// Step prints one step of a numbered sequence.
func Step(n int, total int, format string, args ...any) {
	idx := StylePrimary.Render(fmt.Sprintf("[%d/%d]", n, total))
	fmt.Println(idx + " " + StyleText.Render(fmt.Sprintf(format, args...)))
}

// Header prints an upper-case section header between full-width bars.
func Header(title string) {
	bar := strings.Repeat("─", headerWidth)
	fmt.Println()
	fmt.Println(StylePrimary.Render(bar))
	fmt.Println(StylePrimary.Render(" ◉ " + strings.ToUpper(title)))
	fmt.Println(StylePrimary.Render(bar))
}

// KV prints a labelled key/value line. Labels shorter than the label
// column width are padded so values align.
func KV(key, value string) {
	fmt.Println(StyleLabel.Render(key) + StyleText.Render(value))
}

// Rule prints a dimmed horizontal rule of width w.
func Rule(w int) {
	fmt.Println(StyleMuted.Render(strings.Repeat("─", w)))
}

// Panel prints body inside a rounded border, with an optional accent
// title on the first line.
func Panel(title, body string) {
	content := body
	if title != "" {
		content = StyleAccent.Render(" "+title+" ") + "\n" + body
	}
	fmt.Println(StylePanel.Render(content))
}

// ─────────────────────────────────────────────────────────────────────────────
// Table
// ─────────────────────────────────────────────────────────────────────────────

// Table accumulates rows and renders them with auto-sized columns.
type Table struct {
	headers []string
	rows    [][]string
	out     io.Writer
}

// NewTable creates a Table with the given column headers, writing to
// stdout on Render.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, out: os.Stdout}
}

// AddRow appends one data row. Rows may be shorter than the header.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render prints the headers, a separator and every row, each column
// sized to its widest cell.
func (t *Table) Render() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	pad := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			w := len(cell)
			if i < len(widths) {
				w = widths[i]
			}
			fmt.Fprintf(&b, "%-*s", w+2, cell)
		}
		return b.String()
	}

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w+2))
	}

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, StylePrimary.Render(pad(t.headers)))
	fmt.Fprintln(t.out, StyleMuted.Render(sep.String()))
	for _, row := range t.rows {
		fmt.Fprintln(t.out, StyleText.Render(pad(row)))
	}
	fmt.Fprintln(t.out)
}

// ─────────────────────────────────────────────────────────────────────────────
// Spinner
// ─────────────────────────────────────────────────────────────────────────────

// spinnerFrames cycle through lunar phases, 4 frames per revolution.
var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// Spinner is a single-line busy indicator animated from a goroutine.
type Spinner struct {
	label  string
	done   chan struct{}
	mu     sync.Mutex
	active bool
}

// NewSpinner creates a Spinner with the given label. Call Start to
// animate and Stop to resolve it into a ✓ or ✗ line.
func NewSpinner(label string) *Spinner {
	return &Spinner{label: label, done: make(chan struct{})}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.active = true
	s.mu.Unlock()

	go func() {
		tick := time.NewTicker(120 * time.Millisecond)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.done:
				return
			case <-tick.C:
				s.mu.Lock()
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Printf("\r%s %s ", StylePrimary.Render(frame), StyleText.Render(s.label))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and overwrites the line with the outcome.
// Calling Stop on a stopped Spinner is a no-op.
func (s *Spinner) Stop(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	close(s.done)
	s.active = false

	mark := StyleError.Render("✗")
	if success {
		mark = StyleSuccess.Render("✓")
	}
	fmt.Printf("\r%s %s\n", mark, StyleText.Render(s.label))
}

// ─────────────────────────────────────────────────────────────────────────────
// Progress bar
// ─────────────────────────────────────────────────────────────────────────────

// Progress is an inline progress bar redrawn in place by Set.
type Progress struct {
	label string
	total int
	width int
}

// NewProgress creates a Progress bar for total units of work.
func NewProgress(label string, total, width int) *Progress {
	return &Progress{label: label, total: total, width: width}
}

// Set redraws the bar at the given completion count. Reaching total
// terminates the line.
func (p *Progress) Set(current int) {
	if p.total <= 0 {
		return
	}
	pct := float64(current) / float64(p.total)
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(p.width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	fmt.Printf("\r%s [%s] %3.0f%%",
		StyleText.Render(p.label),
		StyleAccent.Render(bar),
		pct*100,
	)
	if current >= p.total {
		fmt.Println()
	}
}

// Package tui defines the Bubble Tea model for ephem's interactive
// trajectory viewer.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/core/config"
	"github.com/kepler-works/ephem/internal/core/logger"
	"github.com/kepler-works/ephem/internal/core/state"
	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/frames"
	"github.com/kepler-works/ephem/internal/plot"
	"github.com/kepler-works/ephem/internal/trajstat"
	"github.com/kepler-works/ephem/internal/tui/components"
)

// Config carries dependencies into the TUI app.
type Config struct {
	Kernel      v1.KernelSpec
	Eph         *ephemeris.Kernel
	State       *state.DB
	Log         *logger.Logger
	EphemConfig *config.Config
	Request     v1.TrajectoryRequest
}

// ActivePanel identifies which main panel has focus.
type ActivePanel int

const (
	PanelPlot ActivePanel = iota
	PanelSamples
	PanelInfo
)

// tickInterval paces the orbit sweep animation.
const tickInterval = 200 * time.Millisecond

// Model is the root Bubble Tea model (Elm architecture).
type Model struct {
	cfg Config

	// Dimensions
	width  int
	height int

	// Query state
	panel   ActivePanel
	request v1.TrajectoryRequest
	samples []v1.Sample
	summary trajstat.Summary
	cached  bool
	loading bool

	// Plot state
	plane   plot.Plane
	cursor  int
	playing bool

	// Target navigator
	targets        []string
	selectedTarget int

	// Sub-components
	header         components.Header
	sidebar        components.Sidebar
	footer         components.Footer
	modal          *components.Modal
	sampleViewport viewport.Model

	// Error state
	lastError error

	// Theme
	styles Styles
}

// tickMsg is emitted by the animation ticker.
type tickMsg time.Time

// trajectoryMsg carries a freshly queried sample set.
type trajectoryMsg struct {
	samples []v1.Sample
	cached  bool
}

// cursorMsg moves the orbit cursor to a sample index.
type cursorMsg int

// errMsg carries an error to display in the status bar.
type errMsg error

// New constructs a new TUI Model.
func New(cfg Config) *Model {
	styles := newStyles()
	sv := viewport.New(0, 0)
	sv.Style = styles.SampleViewport

	targets := cfg.Eph.Bodies()
	selected := 0
	for i, name := range targets {
		if name == cfg.Request.Target {
			selected = i
			break
		}
	}

	header := components.NewHeader(cfg.Kernel.Name)
	header.SetQuery(cfg.Request.Target, cfg.Request.Observer, cfg.Request.Frame)

	sidebar := components.NewSidebar()
	sidebar.SetTargets(targets)
	sidebar.Select(selected)

	return &Model{
		cfg:            cfg,
		request:        cfg.Request,
		loading:        true,
		targets:        targets,
		selectedTarget: selected,
		header:         header,
		sidebar:        sidebar,
		footer:         components.NewFooter(),
		sampleViewport: sv,
		styles:         styles,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Init
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.loadTrajectoryCmd(),
	)
}

// ─────────────────────────────────────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.sampleViewport.Width = m.width - 22 // sidebar width
		m.sampleViewport.Height = m.height - 8
		m.syncSamples()

	case tea.KeyMsg:
		// Modal intercepts key events when open
		if m.modal != nil {
			cmd, done := m.modal.HandleKey(msg)
			if done {
				m.modal = nil
			}
			return m, cmd
		}
		cmds = append(cmds, m.handleKey(msg))

	case tickMsg:
		cmds = append(cmds, m.tickCmd())
		if m.playing && len(m.samples) > 0 {
			m.stepCursor(1)
		}

	case trajectoryMsg:
		m.samples = msg.samples
		m.cached = msg.cached
		m.summary = trajstat.Summarize(msg.samples)
		m.cursor = 0
		m.loading = false
		m.lastError = nil
		m.footer.SetError(nil)
		m.header.SetQuery(m.request.Target, m.request.Observer, m.request.Frame)
		m.header.SetSampleCount(len(msg.samples))
		m.syncSamples()

	case cursorMsg:
		if n := len(m.samples); n > 0 {
			m.cursor = int(msg)
			if m.cursor < 0 {
				m.cursor = 0
			}
			if m.cursor >= n {
				m.cursor = n - 1
			}
			m.syncSamples()
		}

	case errMsg:
		m.lastError = msg
		m.loading = false
		m.footer.SetError(msg)
	}

	// Mouse wheel and other non-key events reach the sample viewport.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		var svCmd tea.Cmd
		m.sampleViewport, svCmd = m.sampleViewport.Update(msg)
		cmds = append(cmds, svCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input when no modal is open.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	kb := defaultKeymap()

	switch msg.String() {
	case kb.Quit, "ctrl+c":
		return tea.Quit

	case kb.TabNext:
		m.panel = (m.panel + 1) % 3

	case kb.TabPrev:
		m.panel = (m.panel + 2) % 3 // wrap backwards

	case kb.NavDown, "j":
		if m.panel == PanelSamples && m.cursor < len(m.samples)-1 {
			m.cursor++
			m.syncSamples()
		}

	case kb.NavUp, "k":
		if m.panel == PanelSamples && m.cursor > 0 {
			m.cursor--
			m.syncSamples()
		}

	case kb.StepFwd, "l":
		m.stepCursor(1)

	case kb.StepBack, "h":
		m.stepCursor(-1)

	case kb.Play:
		m.playing = !m.playing
		m.footer.SetPlaying(m.playing)

	case kb.Plane:
		m.plane = plot.Plane((int(m.plane) + 1) % 3)

	case kb.NextTarget:
		return m.shiftTarget(1)

	case kb.PrevTarget:
		return m.shiftTarget(-1)

	case kb.Reload:
		m.loading = true
		return m.loadTrajectoryCmd()

	case kb.Epoch:
		m.modal = components.NewEpochModal(m.styles.Modal, m.jumpToEpochCmd)

	case kb.Help:
		m.modal = components.NewHelpModal(m.styles.Modal, HelpText())
	}
	return nil
}

// stepCursor moves the orbit cursor, wrapping at both ends.
func (m *Model) stepCursor(d int) {
	n := len(m.samples)
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + d + n) % n
	m.syncSamples()
}

// shiftTarget selects the next target body and requeries, skipping the
// observer itself.
func (m *Model) shiftTarget(d int) tea.Cmd {
	n := len(m.targets)
	if n == 0 {
		return nil
	}
	i := m.selectedTarget
	for step := 0; step < n; step++ {
		i = (i + d + n) % n
		if m.targets[i] != m.request.Observer {
			break
		}
	}
	if i == m.selectedTarget {
		return nil
	}
	m.selectedTarget = i
	m.sidebar.Select(i)
	m.request.Target = m.targets[i]
	m.header.SetQuery(m.request.Target, m.request.Observer, m.request.Frame)
	m.loading = true
	return m.loadTrajectoryCmd()
}

// ─────────────────────────────────────────────────────────────────────────────
// View
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.header.View(m.width)
	sidebar := m.sidebar.View(20, m.height-4)
	mainPanel := m.renderMain()
	footer := m.footer.View(m.width)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainPanel)

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if m.modal != nil {
		view = m.modal.Overlay(view, m.width, m.height)
	}

	return view
}

func (m *Model) renderMain() string {
	mainWidth := m.width - 22

	if m.loading {
		return lipgloss.NewStyle().
			Foreground(m.styles.Muted).
			Padding(2, 2).
			Width(mainWidth).Height(m.height - 6).
			Render(fmt.Sprintf("Querying %s from %s...", m.request.Target, m.request.Observer))
	}

	switch m.panel {
	case PanelPlot:
		return components.RenderPlot(m.samples, m.plane, m.cursor, mainWidth, m.height-6)
	case PanelSamples:
		title := m.styles.PanelTitle.Render("SAMPLES")
		hdr := m.styles.TableHeader.Render(fmt.Sprintf(" %4s  %-20s  %-38s  %-12s  %s",
			"IDX", "EPOCH (UTC)", "POSITION km", "RANGE km", "SPEED"))
		return lipgloss.JoinVertical(lipgloss.Left, title, hdr, m.sampleViewport.View())
	case PanelInfo:
		return components.RenderInfo(m.request, m.cfg.Kernel.Name, m.summary, m.cursor, m.cached, mainWidth, m.height-6)
	}
	return ""
}

// syncSamples rebuilds the sample list content and keeps the cursor row
// visible in the viewport.
func (m *Model) syncSamples() {
	if len(m.samples) == 0 {
		m.sampleViewport.SetContent("")
		return
	}

	lines := make([]string, len(m.samples))
	for i, s := range m.samples {
		line := fmt.Sprintf("%4d  %-20s  [%11.1f %11.1f %11.1f]  %.4e  %6.2f",
			i, ephtime.FormatUTC(s.Epoch),
			s.Position.X, s.Position.Y, s.Position.Z,
			s.Position.Norm(), s.Velocity.Norm())
		if i == m.cursor {
			lines[i] = m.styles.TableRowSel.Render("▶" + line)
		} else {
			lines[i] = m.styles.TableRow.Render(" " + line)
		}
	}
	m.sampleViewport.SetContent(strings.Join(lines, "\n"))

	top := m.sampleViewport.YOffset
	h := m.sampleViewport.Height
	if m.cursor < top {
		m.sampleViewport.SetYOffset(m.cursor)
	} else if h > 0 && m.cursor >= top+h {
		m.sampleViewport.SetYOffset(m.cursor - h + 1)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Commands (async data fetchers)
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) loadTrajectoryCmd() tea.Cmd {
	req := m.request
	return func() tea.Msg {
		samples, cached, err := m.query(req)
		if err != nil {
			return errMsg(err)
		}
		return trajectoryMsg{samples: samples, cached: cached}
	}
}

// query resolves a trajectory through the cache, falling back to a live
// kernel read.
func (m *Model) query(req v1.TrajectoryRequest) ([]v1.Sample, bool, error) {
	useCache := m.cfg.EphemConfig != nil && m.cfg.EphemConfig.Cache.Enabled && m.cfg.State != nil
	key := state.TrajectoryKey(m.cfg.Kernel.Name, req)

	if useCache {
		if hit, err := m.cfg.State.GetTrajectory(key); err == nil && hit != nil {
			return hit.Samples, true, nil
		}
	}

	samples, err := m.cfg.Eph.Window(req.From, req.To, req.Samples, req.Target, req.Observer, req.Correction)
	if err != nil {
		return nil, false, err
	}
	if err := frames.RotateSamples(samples, req.Frame); err != nil {
		return nil, false, err
	}

	if useCache {
		traj := v1.Trajectory{
			Request:     req,
			Kernel:      m.cfg.Kernel.Name,
			Samples:     samples,
			GeneratedAt: time.Now().UTC(),
		}
		if err := m.cfg.State.PutTrajectory(key, traj); err != nil {
			m.cfg.Log.Warn("trajectory cache write failed", "err", err)
		} else if max := m.cfg.EphemConfig.Cache.MaxEntries; max > 0 {
			if _, err := m.cfg.State.PruneTrajectories(max); err != nil {
				m.cfg.Log.Warn("trajectory cache prune failed", "err", err)
			}
		}
	}

	m.cfg.Log.Debug("tui trajectory query",
		"target", req.Target, "observer", req.Observer, "samples", len(samples))
	return samples, false, nil
}

// jumpToEpochCmd parses the epoch the user typed and moves the cursor to
// the nearest sample.
func (m *Model) jumpToEpochCmd(input string) tea.Cmd {
	samples := m.samples
	return func() tea.Msg {
		et, err := parseEpoch(input)
		if err != nil {
			return errMsg(err)
		}
		if len(samples) == 0 {
			return nil
		}
		best, bestDist := 0, math.Inf(1)
		for i, s := range samples {
			if d := math.Abs(s.Epoch - et); d < bestDist {
				best, bestDist = i, d
			}
		}
		return cursorMsg(best)
	}
}

// parseEpoch accepts a UTC timestamp or raw ET seconds.
func parseEpoch(s string) (float64, error) {
	if t, err := ephtime.ParseUTC(s); err == nil {
		return ephtime.ET(t), nil
	}
	return ephtime.ParseET(s)
}

// Package plot rasterizes trajectories onto a braille canvas for terminal
// display. Each character cell carries a 2x4 dot grid, which on a typical
// terminal's 1:2 cell aspect gives near-square dot pitch, so orbits keep
// their shape without axis fudging.
package plot

import (
	"math"
	"strings"

	v1 "github.com/kepler-works/ephem/api/v1"
)

// Plane selects which position components feed the plot axes.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

// String returns the axis label pair for the plane.
func (p Plane) String() string {
	switch p {
	case PlaneXZ:
		return "XZ"
	case PlaneYZ:
		return "YZ"
	default:
		return "XY"
	}
}

// dotBits maps a (row, col) position inside a cell to its braille bit.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a fixed-size braille dot grid with optional rune overlays.
type Canvas struct {
	w, h    int // cells
	cells   []uint8
	overlay map[int]rune
}

// New returns an empty canvas of w by h character cells.
func New(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{
		w:       w,
		h:       h,
		cells:   make([]uint8, w*h),
		overlay: make(map[int]rune),
	}
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.h }

// DotWidth returns the drawable width in dots.
func (c *Canvas) DotWidth() int { return c.w * 2 }

// DotHeight returns the drawable height in dots.
func (c *Canvas) DotHeight() int { return c.h * 4 }

// SetDot turns on the dot at dot coordinates (x, y). Out-of-range dots are
// silently dropped so callers can plot without clipping first.
func (c *Canvas) SetDot(x, y int) {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return
	}
	c.cells[(y/4)*c.w+x/2] |= dotBits[y%4][x%2]
}

// MarkCell overlays a rune at cell coordinates, replacing any dots there.
func (c *Canvas) MarkCell(cx, cy int, r rune) {
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return
	}
	c.overlay[cy*c.w+cx] = r
}

// Rows renders the canvas, one string per cell row.
func (c *Canvas) Rows() []string {
	rows := make([]string, c.h)
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		b.Reset()
		for x := 0; x < c.w; x++ {
			idx := y*c.w + x
			if r, ok := c.overlay[idx]; ok {
				b.WriteRune(r)
				continue
			}
			if bits := c.cells[idx]; bits != 0 {
				b.WriteRune(rune(brailleBase + int(bits)))
			} else {
				b.WriteRune(' ')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

// String renders the canvas as newline-joined rows.
func (c *Canvas) String() string {
	return strings.Join(c.Rows(), "\n")
}

// ─────────────────────────────────────────────────────────────────────────────
// Trajectory rasterization
// ─────────────────────────────────────────────────────────────────────────────

// Chart is a trajectory rendered onto a canvas together with the projection
// that placed it, so callers can keep marking samples (a moving cursor, a
// highlighted epoch) in the same coordinate system.
type Chart struct {
	*Canvas

	// KMPerCell is the kilometres spanned by one character cell horizontally.
	KMPerCell float64

	plane      Plane
	scale      float64
	midU, midV float64
	empty      bool
}

// NewChart plots the samples' positions projected onto plane, uniformly
// scaled and centered. The observer origin is marked with '+' when it falls
// inside the data bounds.
func NewChart(samples []v1.Sample, plane Plane, w, h int) *Chart {
	ch := &Chart{Canvas: New(w, h), plane: plane}
	if len(samples) == 0 {
		ch.empty = true
		return ch
	}

	minU, maxU := math.Inf(1), math.Inf(-1)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		u, v := project(s, plane)
		minU = math.Min(minU, u)
		maxU = math.Max(maxU, u)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	// Pad 5% so extreme points stay off the border.
	spanU := maxU - minU
	spanV := maxV - minV
	padU := spanU * 0.05
	padV := spanV * 0.05
	if padU == 0 {
		padU = 1
	}
	if padV == 0 {
		padV = 1
	}
	minU, maxU = minU-padU, maxU+padU
	minV, maxV = minV-padV, maxV+padV

	// One scale for both axes keeps circles circular.
	ch.scale = math.Min(
		float64(ch.DotWidth()-1)/(maxU-minU),
		float64(ch.DotHeight()-1)/(maxV-minV),
	)
	ch.midU = (minU + maxU) / 2
	ch.midV = (minV + maxV) / 2

	for _, s := range samples {
		ch.SetDot(ch.toDot(project(s, plane)))
	}

	if minU <= 0 && 0 <= maxU && minV <= 0 && 0 <= maxV {
		ox, oy := ch.toDot(0, 0)
		ch.MarkCell(ox/2, oy/4, '+')
	}

	ch.KMPerCell = 2 / ch.scale
	return ch
}

// MarkSample overlays r at the cell the sample projects into.
func (ch *Chart) MarkSample(s v1.Sample, r rune) {
	if ch.empty {
		return
	}
	x, y := ch.toDot(project(s, ch.plane))
	if x < 0 || y < 0 || x >= ch.DotWidth() || y >= ch.DotHeight() {
		return
	}
	ch.MarkCell(x/2, y/4, r)
}

func (ch *Chart) toDot(u, v float64) (int, int) {
	dx := (u-ch.midU)*ch.scale + float64(ch.DotWidth())/2
	// Terminal rows grow downward.
	dy := float64(ch.DotHeight())/2 - (v-ch.midV)*ch.scale
	return int(math.Round(dx)), int(math.Round(dy))
}

// Trajectory plots the samples onto a fresh canvas and returns it with the
// kilometres-per-cell figure. Shorthand for NewChart when no further marking
// is needed.
func Trajectory(samples []v1.Sample, plane Plane, w, h int) (*Canvas, float64) {
	ch := NewChart(samples, plane, w, h)
	return ch.Canvas, ch.KMPerCell
}

func project(s v1.Sample, plane Plane) (float64, float64) {
	switch plane {
	case PlaneXZ:
		return s.Position.X, s.Position.Z
	case PlaneYZ:
		return s.Position.Y, s.Position.Z
	default:
		return s.Position.X, s.Position.Y
	}
}

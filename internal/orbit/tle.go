package orbit

import (
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/pkg/errs"
	"github.com/kepler-works/ephem/pkg/vec3"
)

// TLE is a two-line element set for SGP4 propagation.
type TLE struct {
	Name  string
	Line1 string
	Line2 string
}

// ParseTLE extracts a TLE from raw text: an optional name line followed
// by the two element lines. Blank lines are ignored.
func ParseTLE(raw string) (TLE, error) {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimRight(l, "\r \t"); l != "" {
			lines = append(lines, l)
		}
	}

	var t TLE
	switch len(lines) {
	case 2:
		t.Line1, t.Line2 = lines[0], lines[1]
	case 3:
		t.Name = strings.TrimSpace(lines[0])
		t.Line1, t.Line2 = lines[1], lines[2]
	default:
		return TLE{}, errs.Newf(errs.ErrOrbitTLE, "orbit.tle.parse",
			"want 2 element lines (plus optional name line), got %d lines", len(lines))
	}
	if err := t.validate(); err != nil {
		return TLE{}, err
	}
	return t, nil
}

// validate performs the structural checks SGP4 initialization assumes.
func (t TLE) validate() error {
	const op = "orbit.tle.parse"
	if len(t.Line1) < 69 || len(t.Line2) < 69 {
		return errs.Newf(errs.ErrOrbitTLE, op,
			"element lines must be 69 columns, got %d and %d", len(t.Line1), len(t.Line2))
	}
	if !strings.HasPrefix(t.Line1, "1 ") || !strings.HasPrefix(t.Line2, "2 ") {
		return errs.Newf(errs.ErrOrbitTLE, op, "element lines must start with \"1 \" and \"2 \"")
	}
	if t.Line1[2:7] != t.Line2[2:7] {
		return errs.Newf(errs.ErrOrbitTLE, op,
			"catalog numbers disagree: %q vs %q", t.Line1[2:7], t.Line2[2:7])
	}
	return nil
}

// FromTLE samples the SGP4-propagated trajectory of a satellite at
// sampleCount instants evenly spaced over [start, end] inclusive.
// States are TEME kilometres and kilometres per second; epochs are
// converted to ephemeris time. Propagation runs at whole-second clock
// resolution.
func FromTLE(tle TLE, start, end time.Time, sampleCount int) ([]v1.Sample, error) {
	const op = "orbit.tle.sample"
	if err := tle.validate(); err != nil {
		return nil, err
	}
	if sampleCount < 1 {
		return nil, errs.Newf(errs.ErrOrbitInvalidArg, op,
			"sample count must be at least 1, got %d", sampleCount)
	}
	if end.Before(start) {
		return nil, errs.Newf(errs.ErrOrbitInvalidArg, op,
			"window end %s precedes start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	sat := satellite.TLEToSat(tle.Line1, tle.Line2, satellite.GravityWGS72)

	span := end.Sub(start)
	samples := make([]v1.Sample, sampleCount)
	for i := range samples {
		at := start
		if sampleCount > 1 {
			at = start.Add(time.Duration(float64(span) * float64(i) / float64(sampleCount-1)))
		}
		// Keep the recorded epoch on the instant actually propagated.
		at = at.Round(time.Second).UTC()

		year, month, day := at.Date()
		hour, min, sec := at.Clock()
		pos, vel := satellite.Propagate(sat, year, int(month), day, hour, min, sec)

		samples[i] = v1.Sample{
			Epoch:    ephtime.ET(at),
			Position: vec3.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z},
			Velocity: vec3.Vec3{X: vel.X, Y: vel.Y, Z: vel.Z},
		}
	}
	return samples, nil
}

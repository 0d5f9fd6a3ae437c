// Package ephtime converts between civil UTC time and the ephemeris
// time scale used for all queries: TDB seconds past the J2000 epoch
// (2000 Jan 1 12:00:00 TDB). Julian-date helpers cover the boundary
// with kernel readers, which speak Julian Ephemeris Dates.
package ephtime

import (
	"math"
	"time"

	"github.com/kepler-works/ephem/pkg/errs"
)

const (
	// J2000JD is the Julian Date of the J2000.0 epoch.
	J2000JD = 2451545.0

	// SecondsPerDay is the length of a Julian day in SI seconds.
	SecondsPerDay = 86400.0

	// ttMinusTAI is the constant offset TT − TAI in seconds.
	ttMinusTAI = 32.184
)

// j2000 is the J2000 epoch as a TT clock reading.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// utcLayouts are the accepted epoch string forms, tried in order.
var utcLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseUTC parses an epoch string in one of the accepted UTC layouts.
func ParseUTC(s string) (time.Time, error) {
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.Newf(errs.ErrTimeParse, "ephtime.parse",
		"unrecognized epoch %q (want e.g. 2025-01-01 or 2025-01-01T12:00:00)", s).
		WithResource(s)
}

// ET converts a UTC instant to ephemeris time: TDB seconds past J2000.
// UTC → TAI uses the leap second table, TAI → TT is the fixed 32.184 s
// offset, and TT → TDB applies the periodic relativistic term.
func ET(t time.Time) float64 {
	t = t.UTC()
	dt := DeltaAT(t) + ttMinusTAI
	tt := t.Add(duration(dt)).Sub(j2000).Seconds()
	return tt + tdbMinusTT(tt)
}

// UTC converts ephemeris time back to a civil UTC instant.
func UTC(et float64) time.Time {
	tt := et - tdbMinusTT(et)
	ttClock := j2000.Add(duration(tt))

	dt := DeltaAT(ttClock) + ttMinusTAI
	utc := ttClock.Add(-duration(dt))
	// A leap boundary may sit between the TT guess and the true UTC
	// instant; one re-evaluation settles it.
	if dt2 := DeltaAT(utc) + ttMinusTAI; dt2 != dt {
		utc = ttClock.Add(-duration(dt2))
	}
	return utc
}

// ParseET parses a UTC epoch string straight to ephemeris time.
func ParseET(s string) (float64, error) {
	t, err := ParseUTC(s)
	if err != nil {
		return 0, err
	}
	return ET(t), nil
}

// JD converts ephemeris time to a Julian Ephemeris Date.
func JD(et float64) float64 {
	return J2000JD + et/SecondsPerDay
}

// FromJD converts a Julian Ephemeris Date to ephemeris time.
func FromJD(jd float64) float64 {
	return (jd - J2000JD) * SecondsPerDay
}

// FormatUTC renders an ephemeris time as a UTC calendar string for
// display.
func FormatUTC(et float64) string {
	return UTC(et).Format("2006-01-02 15:04:05.000") + " UTC"
}

// tdbMinusTT evaluates the dominant periodic term of TDB − TT in
// seconds, ≈1.657 ms at peak. tt is TT seconds past J2000.
func tdbMinusTT(tt float64) float64 {
	m := 6.239996 + 1.99096871e-7*tt
	return 0.001657 * math.Sin(m+0.01671*math.Sin(m))
}

func duration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

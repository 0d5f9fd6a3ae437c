package ephtime

import (
	"math"
	"testing"
	"time"

	"github.com/kepler-works/ephem/pkg/errs"
)

func TestETAtJ2000(t *testing.T) {
	// At 2000-01-01 12:00:00 UTC the TT offset is ΔAT(32) + 32.184 s.
	et := ET(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(et-64.184) > 0.01 {
		t.Fatalf("ET(J2000 noon UTC) = %v, want ≈ 64.184", et)
	}
}

func TestETMonotonicAcrossLeap(t *testing.T) {
	before := ET(time.Date(2016, time.December, 31, 23, 59, 59, 0, time.UTC))
	after := ET(time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC))
	// The 2017 leap second inserts an extra SI second between the two
	// civil instants.
	if gap := after - before; math.Abs(gap-2.0) > 0.001 {
		t.Fatalf("ET gap across 2017 leap second = %v, want ≈ 2", gap)
	}
}

func TestDeltaAT(t *testing.T) {
	cases := []struct {
		utc  time.Time
		want float64
	}{
		{time.Date(1971, time.June, 1, 0, 0, 0, 0, time.UTC), 10},
		{time.Date(1972, time.January, 1, 0, 0, 0, 0, time.UTC), 10},
		{time.Date(1999, time.June, 1, 0, 0, 0, 0, time.UTC), 32},
		{time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC), 36},
		{time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC), 37},
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 37},
	}
	for _, c := range cases {
		if got := DeltaAT(c.utc); got != c.want {
			t.Fatalf("DeltaAT(%v) = %v, want %v", c.utc, got, c.want)
		}
	}
}

func TestUTCRoundTrip(t *testing.T) {
	orig := time.Date(2025, time.March, 15, 6, 30, 0, 0, time.UTC)
	back := UTC(ET(orig))
	if d := back.Sub(orig); d < -time.Millisecond || d > time.Millisecond {
		t.Fatalf("round trip drifted by %v", d)
	}
}

func TestJDRoundTrip(t *testing.T) {
	if got := JD(0); got != J2000JD {
		t.Fatalf("JD(0) = %v, want %v", got, J2000JD)
	}
	if got := FromJD(J2000JD + 0.5); got != 43200 {
		t.Fatalf("FromJD(J2000+0.5d) = %v, want 43200", got)
	}
}

func TestParseUTCLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-01", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T12:00:00", time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)},
		{"2025-01-01 12:00:00", time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := ParseUTC(c.in)
		if err != nil {
			t.Fatalf("ParseUTC(%q): %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Fatalf("ParseUTC(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseUTCRejectsGarbage(t *testing.T) {
	_, err := ParseUTC("next tuesday")
	if err == nil {
		t.Fatal("expected error for unparseable epoch")
	}
	if !errs.IsCode(err, errs.ErrTimeParse) {
		t.Fatalf("error code = %v, want %v", err, errs.ErrTimeParse)
	}
}

func TestLinspaceEvenSpacing(t *testing.T) {
	got, err := Linspace(0, 8, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 2, 4, 6, 8}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinspaceEndpointsExact(t *testing.T) {
	from, to := 789410967.185, 790188867.185
	got, err := Linspace(from, to, 500)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != from || got[len(got)-1] != to {
		t.Fatalf("endpoints = %v..%v, want %v..%v", got[0], got[len(got)-1], from, to)
	}
}

func TestLinspaceSingleSample(t *testing.T) {
	got, err := Linspace(100, 200, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 100 {
		t.Fatalf("single-sample grid = %v, want [100]", got)
	}
}

func TestLinspaceRejectsBadCount(t *testing.T) {
	if _, err := Linspace(0, 1, 0); !errs.IsCode(err, errs.ErrTimeRange) {
		t.Fatalf("n=0 error = %v, want %v", err, errs.ErrTimeRange)
	}
	if _, err := Linspace(5, 1, 3); !errs.IsCode(err, errs.ErrTimeRange) {
		t.Fatalf("reversed range error = %v, want %v", err, errs.ErrTimeRange)
	}
}

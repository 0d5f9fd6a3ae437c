package orbit

import (
	"testing"
	"time"

	"github.com/kepler-works/ephem/pkg/errs"
)

// Reference ISS element set, widely reproduced in SGP4 verification
// material.
const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func TestParseTLETwoLines(t *testing.T) {
	tle, err := ParseTLE(issLine1 + "\n" + issLine2 + "\n")
	if err != nil {
		t.Fatal(err)
	}
	if tle.Name != "" || tle.Line1 != issLine1 || tle.Line2 != issLine2 {
		t.Fatalf("parsed = %+v", tle)
	}
}

func TestParseTLEWithName(t *testing.T) {
	tle, err := ParseTLE("ISS (ZARYA)\n" + issLine1 + "\n" + issLine2)
	if err != nil {
		t.Fatal(err)
	}
	if tle.Name != "ISS (ZARYA)" {
		t.Fatalf("name = %q, want ISS (ZARYA)", tle.Name)
	}
}

func TestParseTLERejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"single line", issLine1},
		{"short lines", "1 25544U\n2 25544"},
		{"swapped prefixes", issLine2 + "\n" + issLine1},
		{"catalog mismatch", issLine1 + "\n" + "2 99999  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseTLE(c.raw); !errs.IsCode(err, errs.ErrOrbitTLE) {
				t.Fatalf("error = %v, want code %v", err, errs.ErrOrbitTLE)
			}
		})
	}
}

func TestFromTLESamplesLEOStates(t *testing.T) {
	tle := TLE{Line1: issLine1, Line2: issLine2}
	start := time.Date(2008, time.September, 20, 12, 25, 40, 0, time.UTC)
	samples, err := FromTLE(tle, start, start.Add(90*time.Minute), 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 16 {
		t.Fatalf("len = %d, want 16", len(samples))
	}
	for i, s := range samples {
		r := s.Position.Norm()
		if r < 6400 || r > 7100 {
			t.Fatalf("sample %d: |position| = %v km, outside LEO band", i, r)
		}
		v := s.Velocity.Norm()
		if v < 6 || v > 9 {
			t.Fatalf("sample %d: |velocity| = %v km/s, outside LEO band", i, v)
		}
		if i > 0 && s.Epoch <= samples[i-1].Epoch {
			t.Fatalf("epochs not increasing at %d", i)
		}
	}
}

func TestFromTLESingleSample(t *testing.T) {
	tle := TLE{Line1: issLine1, Line2: issLine2}
	start := time.Date(2008, time.September, 20, 12, 0, 0, 0, time.UTC)
	samples, err := FromTLE(tle, start, start, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("len = %d, want 1", len(samples))
	}
}

func TestFromTLERejectsBadWindow(t *testing.T) {
	tle := TLE{Line1: issLine1, Line2: issLine2}
	start := time.Date(2008, time.September, 20, 12, 0, 0, 0, time.UTC)

	if _, err := FromTLE(tle, start, start.Add(time.Hour), 0); !errs.IsCode(err, errs.ErrOrbitInvalidArg) {
		t.Fatalf("n=0 error = %v, want %v", err, errs.ErrOrbitInvalidArg)
	}
	if _, err := FromTLE(tle, start, start.Add(-time.Hour), 5); !errs.IsCode(err, errs.ErrOrbitInvalidArg) {
		t.Fatalf("reversed window error = %v, want %v", err, errs.ErrOrbitInvalidArg)
	}
}

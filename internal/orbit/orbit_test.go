package orbit

import (
	"math"
	"testing"

	"github.com/kepler-works/ephem/pkg/errs"
)

func TestSynthesizeCircularity(t *testing.T) {
	samples, err := Synthesize(EarthMu, 7000, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range samples {
		if rel := math.Abs(s.Position.Norm()-7000) / 7000; rel > 1e-9 {
			t.Fatalf("sample %d: |position| = %v, want 7000 (rel err %g)", i, s.Position.Norm(), rel)
		}
	}
}

func TestSynthesizeVelocityTangential(t *testing.T) {
	samples, err := Synthesize(EarthMu, 7000, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	vCirc := math.Sqrt(EarthMu / 7000)
	for i, s := range samples {
		// Position and velocity stay orthogonal on a circular orbit.
		if dot := s.Position.Dot(s.Velocity); math.Abs(dot) > 1e-6 {
			t.Fatalf("sample %d: position·velocity = %v, want ≈ 0", i, dot)
		}
		if math.Abs(s.Velocity.Norm()-vCirc) > 1e-6 {
			t.Fatalf("sample %d: |velocity| = %v, want %v", i, s.Velocity.Norm(), vCirc)
		}
	}
}

func TestSynthesizePlanar(t *testing.T) {
	samples, err := Synthesize(EarthMu, 7000, 25, 12345.5)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range samples {
		if s.Position.Z != 0 || s.Velocity.Z != 0 {
			t.Fatalf("sample %d: out-of-plane components %v %v, want 0", i, s.Position.Z, s.Velocity.Z)
		}
	}
}

func TestSynthesizeCountAndSpacing(t *testing.T) {
	const n = 100
	start := 1000.0
	samples, err := Synthesize(EarthMu, 7000, n, start)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != n {
		t.Fatalf("len = %d, want %d", len(samples), n)
	}

	period := Period(EarthMu, 7000)
	step := period / float64(n-1)
	if samples[0].Epoch != start {
		t.Fatalf("first epoch = %v, want %v", samples[0].Epoch, start)
	}
	for i := 1; i < n; i++ {
		d := samples[i].Epoch - samples[i-1].Epoch
		if d <= 0 {
			t.Fatalf("epochs not strictly increasing at %d: delta %v", i, d)
		}
		if math.Abs(d-step) > 1e-7 {
			t.Fatalf("uneven spacing at %d: %v, want %v", i, d, step)
		}
	}
	if got := samples[n-1].Epoch - samples[0].Epoch; math.Abs(got-period) > 1e-7 {
		t.Fatalf("span = %v, want period %v", got, period)
	}
}

func TestSynthesizeKnownScenario(t *testing.T) {
	// LEO check case: mu=398600.4418, r=7000 km, 100 samples.
	samples, err := Synthesize(398600.4418, 7000, 100, 0)
	if err != nil {
		t.Fatal(err)
	}

	period := Period(398600.4418, 7000)
	if math.Abs(period-5828.5) > 0.2 {
		t.Fatalf("period = %v, want ≈ 5828.5 s", period)
	}

	first := samples[0]
	if first.Epoch != 0 {
		t.Fatalf("first epoch = %v, want 0", first.Epoch)
	}
	if first.Position.X != 7000 || first.Position.Y != 0 {
		t.Fatalf("first position = %+v, want (7000,0,0)", first.Position)
	}
	if first.Velocity.X != 0 {
		t.Fatalf("first velocity X = %v, want 0", first.Velocity.X)
	}
	if math.Abs(first.Velocity.Y-7.546) > 0.01 {
		t.Fatalf("first velocity Y = %v, want ≈ 7.546 km/s", first.Velocity.Y)
	}

	// Halfway through the revolution the body sits near the far side.
	mid := samples[50]
	if mid.Position.X > -6950 {
		t.Fatalf("mid position X = %v, want near -7000", mid.Position.X)
	}
	if math.Abs(mid.Position.Y) > 250 {
		t.Fatalf("mid position Y = %v, want near 0", mid.Position.Y)
	}
}

func TestSynthesizeSingleSample(t *testing.T) {
	samples, err := Synthesize(EarthMu, 7000, 1, 42.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("len = %d, want 1", len(samples))
	}
	s := samples[0]
	if s.Epoch != 42.0 {
		t.Fatalf("epoch = %v, want 42", s.Epoch)
	}
	if s.Position.X != 7000 || s.Position.Y != 0 || s.Position.Z != 0 {
		t.Fatalf("position = %+v, want (7000,0,0)", s.Position)
	}
}

func TestSynthesizeInvalidArguments(t *testing.T) {
	cases := []struct {
		name   string
		mu     float64
		radius float64
		count  int
		epoch  float64
	}{
		{"zero mu", 0, 7000, 10, 0},
		{"negative mu", -1, 7000, 10, 0},
		{"zero radius", EarthMu, 0, 10, 0},
		{"negative radius", EarthMu, -1, 10, 0},
		{"zero count", EarthMu, 7000, 0, 0},
		{"negative count", EarthMu, 7000, -5, 0},
		{"nan mu", math.NaN(), 7000, 10, 0},
		{"inf radius", EarthMu, math.Inf(1), 10, 0},
		{"nan epoch", EarthMu, 7000, 10, math.NaN()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			samples, err := Synthesize(c.mu, c.radius, c.count, c.epoch)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.IsCode(err, errs.ErrOrbitInvalidArg) {
				t.Fatalf("error = %v, want code %v", err, errs.ErrOrbitInvalidArg)
			}
			if samples != nil {
				t.Fatalf("got %d samples alongside error, want none", len(samples))
			}
		})
	}
}

package frames

import (
	"math"
	"testing"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/pkg/errs"
	"github.com/kepler-works/ephem/pkg/vec3"
)

func TestRotationIdentityForSameFrame(t *testing.T) {
	for _, name := range Known() {
		r, err := Rotation(name, name, 1e8)
		if err != nil {
			t.Fatalf("Rotation(%s,%s): %v", name, name, err)
		}
		if !matAlmostEqual(r, vec3.Identity(), 1e-12) {
			t.Fatalf("Rotation(%s,%s) not identity: %v", name, name, r)
		}
	}
}

func TestRotationOrthonormal(t *testing.T) {
	ets := []float64{0, 1e6, 7.9e8, -3.2e8}
	for _, et := range ets {
		r, err := Rotation("J2000", "IAU_MARS", et)
		if err != nil {
			t.Fatal(err)
		}
		if !matAlmostEqual(r.Mul(r.Transpose()), vec3.Identity(), 1e-10) {
			t.Fatalf("R·Rᵀ not identity at et=%v", et)
		}
	}
}

func TestRotationRoundTrip(t *testing.T) {
	const et = 7.9e8
	fwd, err := Rotation("J2000", "IAU_MARS", et)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Rotation("IAU_MARS", "J2000", et)
	if err != nil {
		t.Fatal(err)
	}
	v := vec3.New(4000, -2500, 1200)
	got := back.MulVec(fwd.MulVec(v))
	if got.DistanceTo(v) > 1e-6 {
		t.Fatalf("round trip moved vector by %v km", got.DistanceTo(v))
	}
}

func TestRotationCaseInsensitive(t *testing.T) {
	a, err := Rotation("j2000", "iau_mars", 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Rotation("J2000", "IAU_MARS", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !matAlmostEqual(a, b, 0) {
		t.Fatal("case-folded frame names produced different rotations")
	}
}

func TestMarsPoleDirection(t *testing.T) {
	// The body frame's +Z row, expressed in J2000, is the body's pole.
	r, err := Rotation("J2000", "IAU_MARS", 0)
	if err != nil {
		t.Fatal(err)
	}
	got := vec3.New(r[2][0], r[2][1], r[2][2])

	ra := 317.68143 * math.Pi / 180
	dec := 52.88650 * math.Pi / 180
	want := vec3.New(math.Cos(dec)*math.Cos(ra), math.Cos(dec)*math.Sin(ra), math.Sin(dec))

	if got.DistanceTo(want) > 1e-9 {
		t.Fatalf("Mars pole in J2000 = %+v, want %+v", got, want)
	}
}

func TestRotationUnknownFrame(t *testing.T) {
	_, err := Rotation("J2000", "IAU_KRYPTON", 0)
	if !errs.IsCode(err, errs.ErrFrameUnknown) {
		t.Fatalf("error = %v, want code %v", err, errs.ErrFrameUnknown)
	}
}

func TestLonLatDegrees(t *testing.T) {
	cases := []struct {
		v        vec3.Vec3
		lon, lat float64
	}{
		{vec3.New(1, 0, 0), 0, 0},
		{vec3.New(1, 1, 0), 45, 0},
		{vec3.New(0, -1, 0), -90, 0},
		{vec3.New(0, 0, 5), 0, 90},
		{vec3.New(1, 0, 1), 0, 45},
	}
	for _, c := range cases {
		lon, lat := LonLatDegrees(c.v)
		if math.Abs(lon-c.lon) > 1e-9 || math.Abs(lat-c.lat) > 1e-9 {
			t.Fatalf("LonLatDegrees(%+v) = (%v,%v), want (%v,%v)", c.v, lon, lat, c.lon, c.lat)
		}
	}
}

func TestSpherical(t *testing.T) {
	cases := []struct {
		v           vec3.Vec3
		r, lon, lat float64
	}{
		{vec3.New(2, 0, 0), 2, 0, 0},
		{vec3.New(0, 3, 0), 3, math.Pi / 2, 0},
		{vec3.New(0, 0, -4), 4, 0, -math.Pi / 2},
		{vec3.New(1, 1, 0), math.Sqrt2, math.Pi / 4, 0},
		{vec3.New(0, 0, 0), 0, 0, 0},
	}
	for _, c := range cases {
		r, lon, lat := Spherical(c.v)
		if math.Abs(r-c.r) > 1e-12 || math.Abs(lon-c.lon) > 1e-12 || math.Abs(lat-c.lat) > 1e-12 {
			t.Fatalf("Spherical(%+v) = (%v,%v,%v), want (%v,%v,%v)", c.v, r, lon, lat, c.r, c.lon, c.lat)
		}
	}
}

func TestKnownListsJ2000First(t *testing.T) {
	names := Known()
	if len(names) == 0 || names[0] != J2000 {
		t.Fatalf("Known() = %v, want J2000 first", names)
	}
}

func matAlmostEqual(a, b vec3.Mat3, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func TestRotateStateJ2000NoOp(t *testing.T) {
	pos := vec3.New(1.5e8, -2e7, 3e6)
	vel := vec3.New(10, 25, -3)
	p, v, err := RotateState(J2000, J2000, 4.2e8, pos, vel)
	if err != nil {
		t.Fatal(err)
	}
	if p != pos || v != vel {
		t.Fatalf("identity rotation changed state: %+v %+v", p, v)
	}
}

func TestRotateStateRoundTrip(t *testing.T) {
	const et = 7.9e8
	pos := vec3.New(3396, 1200, -800)
	vel := vec3.New(0.5, -2.1, 0.03)

	pm, vm, err := RotateState(J2000, "IAU_MARS", et, pos, vel)
	if err != nil {
		t.Fatal(err)
	}
	pb, vb, err := RotateState("IAU_MARS", J2000, et, pm, vm)
	if err != nil {
		t.Fatal(err)
	}
	if pb.DistanceTo(pos) > 1e-8 {
		t.Fatalf("position drifted %v km in round trip", pb.DistanceTo(pos))
	}
	if vb.DistanceTo(vel) > 1e-10 {
		t.Fatalf("velocity drifted %v km/s in round trip", vb.DistanceTo(vel))
	}
}

func TestRotateStateTransportTerm(t *testing.T) {
	// A point at rest on Earth's equator, seen from J2000, moves with the
	// planet's spin. Compare the analytic velocity against a central
	// difference of the rotated position.
	const (
		et = 2.5e8
		dt = 0.5
	)
	posFixed := vec3.New(6378.137, 0, 0)

	_, vJ, err := RotateState("IAU_EARTH", J2000, et, posFixed, vec3.Vec3{})
	if err != nil {
		t.Fatal(err)
	}

	atET := func(et float64) vec3.Vec3 {
		r, err := Rotation("IAU_EARTH", J2000, et)
		if err != nil {
			t.Fatal(err)
		}
		return r.MulVec(posFixed)
	}
	numeric := atET(et + dt).Sub(atET(et - dt)).Scale(1 / (2 * dt))

	if vJ.DistanceTo(numeric) > 1e-6 {
		t.Fatalf("transport velocity %+v, finite difference %+v", vJ, numeric)
	}

	// Sidereal spin at the equator is just under half a km/s.
	if s := vJ.Norm(); s < 0.45 || s > 0.48 {
		t.Fatalf("equatorial speed = %v km/s, want ~0.465", s)
	}
}

func TestSpinMatchesSiderealDay(t *testing.T) {
	m, _, err := model("IAU_EARTH")
	if err != nil {
		t.Fatal(err)
	}
	got := m.spin().Norm()
	want := 2 * math.Pi / 86164.0905 // sidereal day in seconds
	if math.Abs(got-want) > 1e-10 {
		t.Fatalf("spin rate = %v rad/s, want %v", got, want)
	}
}

func TestRotateSamplesInPlace(t *testing.T) {
	mk := func(et float64) v1.Sample {
		return v1.Sample{
			Epoch:    et,
			Position: vec3.New(7000, 100, -300),
			Velocity: vec3.New(1, 7.5, 0),
		}
	}
	samples := []v1.Sample{mk(0), mk(3600), mk(7200)}

	if err := RotateSamples(samples, "IAU_EARTH"); err != nil {
		t.Fatal(err)
	}

	// Rotation preserves distance from the origin.
	for i, s := range samples {
		if d := math.Abs(s.Position.Norm() - mk(0).Position.Norm()); d > 1e-8 {
			t.Fatalf("sample %d range changed by %v km", i, d)
		}
	}

	// Each epoch gets its own rotation, so equal inputs diverge.
	if samples[0].Position.DistanceTo(samples[1].Position) < 1 {
		t.Fatal("samples at different epochs rotated identically")
	}
}

func TestRotateSamplesJ2000NoOp(t *testing.T) {
	orig := v1.Sample{Epoch: 100, Position: vec3.New(1, 2, 3), Velocity: vec3.New(4, 5, 6)}
	samples := []v1.Sample{orig}
	if err := RotateSamples(samples, "j2000"); err != nil {
		t.Fatal(err)
	}
	if samples[0] != orig {
		t.Fatalf("J2000 rotation changed sample: %+v", samples[0])
	}
}

func TestRotateSamplesUnknownFrame(t *testing.T) {
	samples := []v1.Sample{{Epoch: 0, Position: vec3.New(1, 0, 0)}}
	err := RotateSamples(samples, "IAU_KRYPTON")
	if !errs.IsCode(err, errs.ErrFrameUnknown) {
		t.Fatalf("error = %v, want code %v", err, errs.ErrFrameUnknown)
	}
}

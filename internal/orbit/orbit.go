// Package orbit synthesizes idealized trajectories: closed-form
// circular two-body orbits and SGP4-propagated satellite tracks.
// Everything here is pure computation; callers own serialization and
// file I/O.
package orbit

import (
	"math"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/pkg/errs"
	"github.com/kepler-works/ephem/pkg/vec3"
)

const twoPi = 2 * math.Pi

// EarthMu is the standard gravitational parameter of Earth in km³/s².
const EarthMu = 398600.4418

// Period returns the two-body circular orbital period 2π·√(r³/μ) in
// seconds. Arguments must be positive; validation belongs to callers.
func Period(mu, radius float64) float64 {
	return twoPi * math.Sqrt(radius*radius*radius/mu)
}

// Synthesize generates one full revolution of an idealized circular
// orbit in the XY plane of the inertial frame, counterclockwise from
// +X. It returns exactly sampleCount samples at epochs evenly spaced
// over [startEpoch, startEpoch+T] inclusive, T being the orbital
// period; sampleCount == 1 yields the single sample at startEpoch.
//
// mu is the central body's gravitational parameter (km³/s²), radius
// the orbital radius (km), startEpoch TDB seconds past J2000. Invalid
// arguments fail with ErrOrbitInvalidArg and no samples.
func Synthesize(mu, radius float64, sampleCount int, startEpoch float64) ([]v1.Sample, error) {
	const op = "orbit.synthesize"
	switch {
	case math.IsNaN(mu) || math.IsInf(mu, 0) || mu <= 0:
		return nil, errs.Newf(errs.ErrOrbitInvalidArg, op,
			"gravitational parameter must be a positive finite number, got %g", mu)
	case math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0:
		return nil, errs.Newf(errs.ErrOrbitInvalidArg, op,
			"orbital radius must be a positive finite number, got %g", radius)
	case sampleCount < 1:
		return nil, errs.Newf(errs.ErrOrbitInvalidArg, op,
			"sample count must be at least 1, got %d", sampleCount)
	case math.IsNaN(startEpoch) || math.IsInf(startEpoch, 0):
		return nil, errs.Newf(errs.ErrOrbitInvalidArg, op,
			"start epoch must be finite, got %g", startEpoch)
	}

	period := Period(mu, radius)
	omega := twoPi / period

	samples := make([]v1.Sample, sampleCount)
	for i := range samples {
		var t float64
		if sampleCount > 1 {
			t = float64(i) * period / float64(sampleCount-1)
		}
		sin, cos := math.Sincos(omega * t)
		samples[i] = v1.Sample{
			Epoch:    startEpoch + t,
			Position: vec3.Vec3{X: radius * cos, Y: radius * sin},
			Velocity: vec3.Vec3{X: -radius * omega * sin, Y: radius * omega * cos},
		}
	}
	return samples, nil
}

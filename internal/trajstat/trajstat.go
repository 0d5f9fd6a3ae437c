// Package trajstat derives summary statistics from sampled trajectories for
// the TUI and the track/export report footers.
package trajstat

import (
	"math"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/pkg/vec3"
)

// Summary condenses a sampled trajectory into the figures shown to the user.
// All distances are km, speeds km/s, times seconds.
type Summary struct {
	Samples   int
	Span      float64 // last epoch minus first
	MinRange  float64
	MaxRange  float64
	MeanRange float64
	MinSpeed  float64
	MaxSpeed  float64
	ArcLength float64 // path length integrated by trapezoid over speed

	// PlaneNormal is the unit normal of the mean angular momentum; zero when
	// the motion is degenerate (radial or a single point).
	PlaneNormal vec3.Vec3

	// Period is 2π over the mean angular rate, an estimate that is exact for
	// circular motion and indicative otherwise. Zero when undefined.
	Period float64
}

// Summarize computes the Summary for a trajectory. An empty input yields the
// zero Summary.
func Summarize(samples []v1.Sample) Summary {
	s := Summary{Samples: len(samples)}
	if len(samples) == 0 {
		return s
	}

	s.Span = samples[len(samples)-1].Epoch - samples[0].Epoch
	s.MinRange = math.Inf(1)
	s.MinSpeed = math.Inf(1)

	var (
		rangeSum float64
		hSum     vec3.Vec3
		omegaSum float64
		omegaN   int
	)
	for _, smp := range samples {
		r := smp.Position.Norm()
		v := smp.Velocity.Norm()
		rangeSum += r
		s.MinRange = math.Min(s.MinRange, r)
		s.MaxRange = math.Max(s.MaxRange, r)
		s.MinSpeed = math.Min(s.MinSpeed, v)
		s.MaxSpeed = math.Max(s.MaxSpeed, v)

		h := smp.Position.Cross(smp.Velocity)
		hSum = hSum.Add(h)
		if r2 := r * r; r2 > 0 {
			omegaSum += h.Norm() / r2
			omegaN++
		}
	}
	s.MeanRange = rangeSum / float64(len(samples))

	if !hSum.IsZero() {
		s.PlaneNormal = hSum.Normalize()
	}
	if omegaN > 0 {
		if omega := omegaSum / float64(omegaN); omega > 0 {
			s.Period = 2 * math.Pi / omega
		}
	}

	for i := 1; i < len(samples); i++ {
		dt := samples[i].Epoch - samples[i-1].Epoch
		vAvg := (samples[i].Velocity.Norm() + samples[i-1].Velocity.Norm()) / 2
		s.ArcLength += vAvg * dt
	}

	return s
}

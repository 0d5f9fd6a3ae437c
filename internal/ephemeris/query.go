package ephemeris

import (
	"strings"

	"github.com/mshafiee/jpleph"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/pkg/errs"
	"github.com/kepler-works/ephem/pkg/vec3"
)

// cLight is the speed of light in km/s.
const cLight = 299792.458

// lightTimeRounds is the number of emission-time refinements; three
// rounds converge far below kernel interpolation error for solar
// system geometry.
const lightTimeRounds = 3

// ParseCorrection validates an aberration correction mode string.
func ParseCorrection(s string) (v1.Correction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return v1.CorrectionNone, nil
	case "lt":
		return v1.CorrectionLT, nil
	case "lt+s", "lts":
		return v1.CorrectionLTS, nil
	default:
		return "", errs.Newf(errs.ErrQueryCorrection, "ephemeris.correction",
			"unknown correction mode %q", s).
			WithAdvice("valid modes: none, lt, lt+s")
	}
}

// BarycentricState returns the state of body relative to the solar
// system barycenter at et, in km and km/s.
func (k *Kernel) BarycentricState(et float64, body string) (v1.StateVector, error) {
	const op = "ephemeris.barycentric"
	id, err := ResolveBody(body)
	if err != nil {
		return v1.StateVector{}, err
	}
	if err := k.checkCoverage(et, op); err != nil {
		return v1.StateVector{}, err
	}
	p, v, err := k.rawState(et, id, op)
	if err != nil {
		return v1.StateVector{}, err
	}
	return v1.StateVector{Sample: v1.Sample{Epoch: et, Position: p, Velocity: v}}, nil
}

// State returns the state of target relative to observer at et with
// the requested aberration correction, in km and km/s.
//
// Light-time correction evaluates the target at its emission epoch
// et − lt, iterated to convergence; the reported velocity is the
// difference of the barycentric velocities at the corrected epochs
// (the light-time rate term is not applied). Stellar aberration is the
// first-order displacement from the observer's barycentric velocity
// and shifts position only.
func (k *Kernel) State(et float64, target, observer string, corr v1.Correction) (v1.StateVector, error) {
	const op = "ephemeris.state"

	tgtID, err := ResolveBody(target)
	if err != nil {
		return v1.StateVector{}, err
	}
	obsID, err := ResolveBody(observer)
	if err != nil {
		return v1.StateVector{}, err
	}
	if err := k.checkCoverage(et, op); err != nil {
		return v1.StateVector{}, err
	}

	obsP, obsV, err := k.rawState(et, obsID, op)
	if err != nil {
		return v1.StateVector{}, err
	}
	targetAt := func(e float64) (vec3.Vec3, vec3.Vec3, error) {
		return k.rawState(e, tgtID, op)
	}

	var (
		tgtP, tgtV vec3.Vec3
		lt         float64
	)
	if corr == v1.CorrectionLT || corr == v1.CorrectionLTS {
		lt, tgtP, tgtV, err = solveLightTime(et, obsP, targetAt)
	} else if tgtP, tgtV, err = targetAt(et); err == nil {
		lt = tgtP.Sub(obsP).Norm() / cLight
	}
	if err != nil {
		return v1.StateVector{}, err
	}

	pos := tgtP.Sub(obsP)
	vel := tgtV.Sub(obsV)
	if corr == v1.CorrectionLTS {
		pos = aberrate(pos, obsV)
	}

	return v1.StateVector{
		Sample:    v1.Sample{Epoch: et, Position: pos, Velocity: vel},
		LightTime: lt,
	}, nil
}

// Window samples the relative trajectory at n evenly spaced epochs
// spanning [from, to] inclusive.
func (k *Kernel) Window(from, to float64, n int, target, observer string, corr v1.Correction) ([]v1.Sample, error) {
	const op = "ephemeris.window"

	grid, err := ephtime.Linspace(from, to, n)
	if err != nil {
		return nil, err
	}
	if err := k.checkCoverage(from, op); err != nil {
		return nil, err
	}
	if err := k.checkCoverage(to, op); err != nil {
		return nil, err
	}

	samples := make([]v1.Sample, 0, len(grid))
	for _, et := range grid {
		sv, err := k.State(et, target, observer, corr)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sv.Sample)
	}
	k.log.Debug("window sampled",
		"target", target,
		"observer", observer,
		"correction", string(corr),
		"samples", len(samples),
	)
	return samples, nil
}

// rawState queries the kernel for a barycentric state and converts the
// backend's AU and AU/day into km and km/s.
func (k *Kernel) rawState(et float64, id jpleph.Planet, op string) (vec3.Vec3, vec3.Vec3, error) {
	pos, vel, err := k.eph.CalculatePV(ephtime.JD(et), id, jpleph.CenterSolarSystemBarycenter, true)
	if err != nil {
		return vec3.Vec3{}, vec3.Vec3{}, errs.Wrap(err, errs.ErrQueryCompute, op).WithResource(k.path)
	}
	p := vec3.New(pos.X, pos.Y, pos.Z).Scale(k.au)
	v := vec3.New(vel.DX, vel.DY, vel.DZ).Scale(k.au / ephtime.SecondsPerDay)
	return p, v, nil
}

// solveLightTime iterates the emission epoch for a target seen from a
// fixed observer position until the light time is self-consistent.
// stateAt returns the target's barycentric state at an epoch; the
// returned state is the target's at et−lt.
func solveLightTime(et float64, obsP vec3.Vec3, stateAt func(float64) (vec3.Vec3, vec3.Vec3, error)) (float64, vec3.Vec3, vec3.Vec3, error) {
	p, v, err := stateAt(et)
	if err != nil {
		return 0, vec3.Vec3{}, vec3.Vec3{}, err
	}
	lt := p.Sub(obsP).Norm() / cLight
	for i := 0; i < lightTimeRounds; i++ {
		if p, v, err = stateAt(et - lt); err != nil {
			return 0, vec3.Vec3{}, vec3.Vec3{}, err
		}
		lt = p.Sub(obsP).Norm() / cLight
	}
	return lt, p, v, nil
}

// checkCoverage rejects epochs the kernel cannot evaluate.
func (k *Kernel) checkCoverage(et float64, op string) error {
	start, end := k.Coverage()
	if et < start || et > end {
		return errs.Newf(errs.ErrQueryEpoch, op,
			"epoch %s outside kernel coverage %s to %s",
			ephtime.FormatUTC(et), ephtime.FormatUTC(start), ephtime.FormatUTC(end)).
			WithResource(k.path).
			WithAdvice("pick an epoch inside the kernel's range (see `ephem kernels info`)")
	}
	return nil
}

// aberrate applies first-order stellar aberration: the apparent
// direction shift from the observer's barycentric velocity.
func aberrate(pos, obsVel vec3.Vec3) vec3.Vec3 {
	u := pos.Normalize()
	if u.IsZero() {
		return pos
	}
	vPerp := obsVel.Sub(u.Scale(obsVel.Dot(u)))
	return pos.Add(vPerp.Scale(pos.Norm() / cLight))
}

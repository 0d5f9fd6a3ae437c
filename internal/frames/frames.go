// Package frames builds rotation matrices between the J2000 inertial
// frame and IAU body-fixed frames, and converts Cartesian states to
// spherical coordinates. Models are the IAU 2009 pole/prime-meridian
// polynomials (secular terms; the Moon's long-period trigonometric
// corrections are not applied).
package frames

import (
	"fmt"
	"math"
	"sort"
	"strings"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/pkg/errs"
	"github.com/kepler-works/ephem/pkg/vec3"
)

// J2000 is the base inertial frame; all body-fixed frames are defined
// relative to it.
const J2000 = "J2000"

const (
	secondsPerDay     = 86400.0
	secondsPerCentury = 36525.0 * secondsPerDay
)

// poleModel holds IAU rotation constants for one body: pole right
// ascension/declination (degrees, degrees per Julian century) and
// prime meridian angle (degrees, degrees per day), all TDB from J2000.
type poleModel struct {
	ra0, ra1   float64
	dec0, dec1 float64
	w0, w1     float64
}

var bodyFrames = map[string]poleModel{
	"IAU_MARS":  {ra0: 317.68143, ra1: -0.1061, dec0: 52.88650, dec1: -0.0609, w0: 176.630, w1: 350.89198226},
	"IAU_EARTH": {ra0: 0.00, ra1: -0.641, dec0: 90.00, dec1: -0.557, w0: 190.147, w1: 360.9856235},
	"IAU_MOON":  {ra0: 269.9949, ra1: 0.0031, dec0: 66.5392, dec1: 0.0130, w0: 38.3213, w1: 13.17635815},
	"IAU_SUN":   {ra0: 286.13, ra1: 0, dec0: 63.87, dec1: 0, w0: 84.176, w1: 14.1844000},
}

// Known returns the supported frame names, sorted, J2000 first.
func Known() []string {
	names := make([]string, 0, len(bodyFrames)+1)
	for n := range bodyFrames {
		names = append(names, n)
	}
	sort.Strings(names)
	return append([]string{J2000}, names...)
}

// Rotation returns the matrix transforming coordinates expressed in
// `from` into coordinates expressed in `to` at ephemeris time et.
// Frame names are case-insensitive.
func Rotation(from, to string, et float64) (vec3.Mat3, error) {
	mf, err := toInertial(from, et)
	if err != nil {
		return vec3.Mat3{}, err
	}
	mt, err := toInertial(to, et)
	if err != nil {
		return vec3.Mat3{}, err
	}
	// from → J2000 → to.
	return mt.Transpose().Mul(mf), nil
}

// model resolves a frame name to its pole model. The bool reports the
// inertial (J2000) case, which has no model.
func model(name string) (poleModel, bool, error) {
	canon := strings.ToUpper(strings.TrimSpace(name))
	if canon == J2000 {
		return poleModel{}, true, nil
	}
	m, ok := bodyFrames[canon]
	if !ok {
		return poleModel{}, false, errs.Newf(errs.ErrFrameUnknown, "frames.rotation",
			"unknown frame %q", name).
			WithResource(name).
			WithAdvice(fmt.Sprintf("known frames: %s", strings.Join(Known(), ", ")))
	}
	return m, false, nil
}

// toInertial returns the matrix taking frame coordinates into J2000.
func toInertial(name string, et float64) (vec3.Mat3, error) {
	m, inertial, err := model(name)
	if err != nil {
		return vec3.Mat3{}, err
	}
	if inertial {
		return vec3.Identity(), nil
	}
	return m.rotation(et).Transpose(), nil
}

// RotateState transforms a position/velocity pair from frame `from` into
// frame `to` at ephemeris time et. Velocities pick up the frame's angular
// rate (transport term), dominated for IAU frames by the prime-meridian
// spin; the secular pole drift, degrees per century, is neglected.
func RotateState(from, to string, et float64, pos, vel vec3.Vec3) (vec3.Vec3, vec3.Vec3, error) {
	pos, vel, err := stateToInertial(from, et, pos, vel)
	if err != nil {
		return vec3.Vec3{}, vec3.Vec3{}, err
	}
	return stateFromInertial(to, et, pos, vel)
}

// stateToInertial re-expresses a body-fixed state in J2000.
func stateToInertial(name string, et float64, pos, vel vec3.Vec3) (vec3.Vec3, vec3.Vec3, error) {
	m, inertial, err := model(name)
	if err != nil {
		return vec3.Vec3{}, vec3.Vec3{}, err
	}
	if inertial {
		return pos, vel, nil
	}
	rt := m.rotation(et).Transpose()
	rJ := rt.MulVec(pos)
	vJ := rt.MulVec(vel.Add(m.spin().Cross(pos)))
	return rJ, vJ, nil
}

// stateFromInertial re-expresses a J2000 state in a body-fixed frame.
func stateFromInertial(name string, et float64, pos, vel vec3.Vec3) (vec3.Vec3, vec3.Vec3, error) {
	m, inertial, err := model(name)
	if err != nil {
		return vec3.Vec3{}, vec3.Vec3{}, err
	}
	if inertial {
		return pos, vel, nil
	}
	r := m.rotation(et)
	rF := r.MulVec(pos)
	vF := r.MulVec(vel).Sub(m.spin().Cross(rF))
	return rF, vF, nil
}

// spin is the frame's angular velocity about its own +Z axis, rad/s.
func (m poleModel) spin() vec3.Vec3 {
	return vec3.Vec3{Z: radians(m.w1) / secondsPerDay}
}

// rotation builds the J2000 → body-fixed matrix at et:
// R3(W) · R1(π/2 − δ) · R3(π/2 + α).
func (m poleModel) rotation(et float64) vec3.Mat3 {
	T := et / secondsPerCentury
	d := et / secondsPerDay

	ra := radians(m.ra0 + m.ra1*T)
	dec := radians(m.dec0 + m.dec1*T)
	w := radians(m.w0 + m.w1*d)

	return vec3.RotZ(w).Mul(vec3.RotX(math.Pi/2 - dec)).Mul(vec3.RotZ(math.Pi/2 + ra))
}

// RotateSamples re-expresses a J2000 sample window in the named frame,
// in place, evaluating the rotation at each sample's own epoch.
func RotateSamples(samples []v1.Sample, to string) error {
	if _, inertial, err := model(to); err != nil {
		return err
	} else if inertial {
		return nil
	}
	for i := range samples {
		p, v, err := stateFromInertial(to, samples[i].Epoch, samples[i].Position, samples[i].Velocity)
		if err != nil {
			return err
		}
		samples[i].Position = p
		samples[i].Velocity = v
	}
	return nil
}

// Spherical decomposes v into range, longitude and latitude (radians).
// Longitude is measured in the XY plane from +X toward +Y in (-π, π];
// latitude from the XY plane toward +Z in [-π/2, π/2]. The zero vector
// has no direction and returns all zeros.
func Spherical(v vec3.Vec3) (r, lon, lat float64) {
	r = v.Norm()
	if r == 0 {
		return 0, 0, 0
	}
	lon = math.Atan2(v.Y, v.X)
	lat = math.Asin(v.Z / r)
	return r, lon, lat
}

// LonLatDegrees returns the longitude and latitude of the direction of
// v in its frame, in degrees.
func LonLatDegrees(v vec3.Vec3) (lon, lat float64) {
	_, lonRad, latRad := Spherical(v)
	return degrees(lonRad), degrees(latRad)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Package ephemeris wraps binary JPL Development Ephemeris kernels for
// ephem state queries. A Kernel is a scoped handle: opened from a file,
// passed to the code that queries it, and released with Close on every
// exit path. Nothing in this package keeps process-global kernel state.
package ephemeris

import (
	"os"

	"github.com/mshafiee/jpleph"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/core/logger"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/pkg/errs"
)

// Kernel is an open ephemeris kernel.
type Kernel struct {
	eph  *jpleph.Ephemeris
	path string
	meta v1.KernelMeta
	au   float64 // km per AU from the kernel header
	log  *logger.Logger
}

var _ v1.Source = (*Kernel)(nil)

// Open loads the DE kernel at path and reads its header. The caller
// owns the returned handle and must Close it.
func Open(path string, log *logger.Logger) (*Kernel, error) {
	const op = "ephemeris.open"

	if _, err := os.Stat(path); err != nil {
		return nil, errs.Wrap(err, errs.ErrKernelOpen, op).
			WithResource(path).
			WithAdvice("check the kernel path in ephem.yaml, or register one with `ephem kernels add`")
	}

	eph, err := jpleph.NewEphemeris(path, true)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrKernelHeader, op).
			WithResource(path).
			WithAdvice("the file is not a readable binary DE ephemeris")
	}

	au := eph.GetEphemerisDouble(jpleph.AUinKM)
	startJD := eph.GetEphemerisDouble(jpleph.EphemerisStartJD)
	endJD := eph.GetEphemerisDouble(jpleph.EphemerisEndJD)
	if au <= 0 || endJD <= startJD {
		_ = eph.Close()
		return nil, errs.Newf(errs.ErrKernelHeader, op,
			"implausible header: au=%g km, coverage %f..%f JD", au, startJD, endJD).
			WithResource(path)
	}

	k := &Kernel{
		eph:  eph,
		path: path,
		au:   au,
		log:  log,
		meta: v1.KernelMeta{
			Name:           eph.GetEphemName(),
			StartJD:        startJD,
			EndJD:          endJD,
			StepDays:       eph.GetEphemerisDouble(jpleph.EphemerisStep),
			AUKm:           au,
			EarthMoonRatio: eph.GetEphemerisDouble(jpleph.EarthMoonMassRatio),
			Constants:      int(eph.GetEphemerisLong(jpleph.NumberOfConstants)),
		},
	}
	log.Debug("kernel opened",
		"path", path,
		"ephemeris", k.meta.Name,
		"start_jd", k.meta.StartJD,
		"end_jd", k.meta.EndJD,
	)
	return k, nil
}

// Close releases the kernel's file handle. The Kernel must not be used
// afterwards.
func (k *Kernel) Close() error {
	k.log.Debug("kernel closed", "path", k.path)
	return k.eph.Close()
}

// Meta returns the header metadata read at open time.
func (k *Kernel) Meta() v1.KernelMeta {
	return k.meta
}

// Path returns the file the kernel was opened from.
func (k *Kernel) Path() string {
	return k.path
}

// Coverage returns the kernel's evaluable interval in ephemeris time.
func (k *Kernel) Coverage() (startET, endET float64) {
	return ephtime.FromJD(k.meta.StartJD), ephtime.FromJD(k.meta.EndJD)
}

// Constant is one named header constant.
type Constant struct {
	Name  string
	Value float64
}

// Constants returns up to limit header constants in file order;
// limit <= 0 returns all of them.
func (k *Kernel) Constants(limit int) ([]Constant, error) {
	n := k.meta.Constants
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Constant, 0, n)
	for i := 0; i < n; i++ {
		name, err := k.eph.GetConstantName(i)
		if err != nil {
			return nil, errs.Wrap(err, errs.ErrKernelHeader, "ephemeris.constants").WithResource(k.path)
		}
		value, err := k.eph.GetConstantValue(i)
		if err != nil {
			return nil, errs.Wrap(err, errs.ErrKernelHeader, "ephemeris.constants").WithResource(k.path)
		}
		out = append(out, Constant{Name: name, Value: value})
	}
	return out, nil
}

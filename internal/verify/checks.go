// Package verify: individual check implementations.
package verify

import (
	"fmt"
	"math"
	"os"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
)

// minKernelSize rejects files too small to hold even a DE header record.
const minKernelSize = 4096

// Probe sanity bounds for Earth's barycentric state, km and km/s.
const (
	probeMinRange = 1.3e8
	probeMaxRange = 1.7e8
	probeMinSpeed = 25.0
	probeMaxSpeed = 35.0
)

// CheckFile verifies the kernel path exists and looks like a data file.
func CheckFile(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a kernel file", path)
	}
	if fi.Size() < minKernelSize {
		return "", fmt.Errorf("file is %d bytes, too small for a DE header", fi.Size())
	}
	return fmt.Sprintf("%.1f MiB", float64(fi.Size())/(1<<20)), nil
}

// CheckCoverage verifies the header's coverage window is sane.
func CheckCoverage(meta v1.KernelMeta) (string, error) {
	if meta.EndJD <= meta.StartJD {
		return "", fmt.Errorf("coverage window inverted: %.1f .. %.1f JD", meta.StartJD, meta.EndJD)
	}
	if meta.StepDays <= 0 {
		return "", fmt.Errorf("record step %.3f days is not positive", meta.StepDays)
	}
	years := (meta.EndJD - meta.StartJD) / 365.25
	return fmt.Sprintf("JD %.1f .. %.1f (%.0f years)", meta.StartJD, meta.EndJD, years), nil
}

// CheckProbe evaluates Earth's barycentric state at mid-coverage and sanity
// checks the magnitudes. Catches truncated or byte-mangled data segments that
// still carry a readable header.
func CheckProbe(k *ephemeris.Kernel) (string, error) {
	meta := k.Meta()
	et := ephtime.FromJD((meta.StartJD + meta.EndJD) / 2)

	sv, err := k.BarycentricState(et, "EARTH")
	if err != nil {
		return "", err
	}
	r := sv.Position.Norm()
	v := sv.Velocity.Norm()
	if math.IsNaN(r) || math.IsInf(r, 0) || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("probe state is not finite")
	}
	if r < probeMinRange || r > probeMaxRange {
		return "", fmt.Errorf("Earth barycentric range %.3e km outside [%.1e, %.1e]", r, probeMinRange, probeMaxRange)
	}
	if v < probeMinSpeed || v > probeMaxSpeed {
		return "", fmt.Errorf("Earth barycentric speed %.2f km/s outside [%.0f, %.0f]", v, probeMinSpeed, probeMaxSpeed)
	}
	return fmt.Sprintf("EARTH at mid-coverage: r=%.4e km, v=%.2f km/s", r, v), nil
}

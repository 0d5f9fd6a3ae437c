// Shared query plumbing: kernel resolution, epoch parsing, cached windows.
package commands

import (
	"os"
	"time"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/core/logger"
	"github.com/kepler-works/ephem/internal/core/state"
	"github.com/kepler-works/ephem/internal/ephemeris"
	"github.com/kepler-works/ephem/internal/ephtime"
	"github.com/kepler-works/ephem/internal/frames"
	"github.com/kepler-works/ephem/internal/registry"
	"github.com/kepler-works/ephem/pkg/errs"
)

// queryFlags are the flag values shared by track, state, and export.
type queryFlags struct {
	observer   string
	frame      string
	correction string
}

// defaulted fills empty query flags from ephem.yaml.
func (q *queryFlags) defaulted(rt *Runtime) {
	if q.observer == "" {
		q.observer = rt.Config.Query.Observer
	}
	if q.observer == "" {
		q.observer = "EARTH"
	}
	if q.frame == "" {
		q.frame = rt.Config.Query.Frame
	}
	if q.frame == "" {
		q.frame = "J2000"
	}
	if q.correction == "" {
		q.correction = rt.Config.Query.Correction
	}
	if q.correction == "" {
		q.correction = string(v1.CorrectionLTS)
	}
}

// resolveKernelSpec picks the kernel to open: the --kernel flag first, then
// the ephem.yaml default, then the registry default.
func resolveKernelSpec(rt *Runtime) (v1.KernelSpec, error) {
	const op = "cli.resolve_kernel"
	reg := registry.New(rt.State)

	if name := rt.Flags.Kernel; name != "" {
		if rec, err := reg.Get(name); err == nil {
			return rec.Spec, nil
		}
		if ks := rt.Config.KernelByName(name); ks != nil {
			return *ks, nil
		}
		return v1.KernelSpec{}, errs.Newf(errs.ErrKernelNotFound, op,
			"kernel %q is neither registered nor declared in ephem.yaml", name).
			WithResource(name).
			WithAdvice("Run 'ephem kernels add " + name + " <path>' or fix the name.")
	}

	if ks := rt.Config.DefaultKernel(); ks != nil {
		return *ks, nil
	}

	rec, err := reg.Default()
	if err != nil {
		return v1.KernelSpec{}, err
	}
	return rec.Spec, nil
}

// openKernel resolves and opens the active kernel. Callers must Close it.
func openKernel(rt *Runtime) (*ephemeris.Kernel, v1.KernelSpec, error) {
	spec, err := resolveKernelSpec(rt)
	if err != nil {
		return nil, v1.KernelSpec{}, err
	}
	k, err := ephemeris.Open(spec.Path, rt.Log)
	if err != nil {
		return nil, v1.KernelSpec{}, err
	}
	return k, spec, nil
}

// parseEpoch accepts a UTC calendar string or a raw ET seconds value.
func parseEpoch(s string) (float64, error) {
	const op = "cli.parse_epoch"
	if s == "" {
		return 0, errs.Newf(errs.ErrTimeParse, op, "epoch is empty").
			WithAdvice("Pass a UTC time like 2025-01-01T00:00:00 or raw ET seconds.")
	}
	if t, err := ephtime.ParseUTC(s); err == nil {
		return ephtime.ET(t), nil
	}
	et, err := ephtime.ParseET(s)
	if err != nil {
		return 0, errs.Newf(errs.ErrTimeParse, op, "cannot parse epoch %q", s).
			WithAdvice("Use 2006-01-02, 2006-01-02T15:04:05, or a float ET value.")
	}
	return et, nil
}

// queryWindow computes a windowed trajectory, consulting the BoltDB cache when
// enabled. Cache hits skip the kernel entirely.
func queryWindow(rt *Runtime, k *ephemeris.Kernel, kernelName string, req v1.TrajectoryRequest) (v1.Trajectory, bool, error) {
	cacheOn := rt.Config.Cache.Enabled
	cacheKey := ""
	if cacheOn {
		cacheKey = state.TrajectoryKey(kernelName, req)
		if hit, err := rt.State.GetTrajectory(cacheKey); err == nil && hit != nil {
			rt.Log.Debug("trajectory cache hit", "key", cacheKey)
			return *hit, true, nil
		}
	}

	samples, err := k.Window(req.From, req.To, req.Samples, req.Target, req.Observer, req.Correction)
	if err != nil {
		return v1.Trajectory{}, false, err
	}
	if err := frames.RotateSamples(samples, req.Frame); err != nil {
		return v1.Trajectory{}, false, err
	}

	traj := v1.Trajectory{
		Request:     req,
		Kernel:      kernelName,
		Samples:     samples,
		GeneratedAt: time.Now().UTC(),
	}

	if cacheOn {
		if err := rt.State.PutTrajectory(cacheKey, traj); err != nil {
			rt.Log.Warn("trajectory cache write failed", "err", err)
		} else if max := rt.Config.Cache.MaxEntries; max > 0 {
			if _, err := rt.State.PruneTrajectories(max); err != nil {
				rt.Log.Warn("trajectory cache prune failed", "err", err)
			}
		}
	}
	return traj, false, nil
}

// audit writes the append-only audit record for a query command.
func audit(rt *Runtime, op, kernel, target, result string) {
	rt.Log.Audit(logger.AuditEntry{
		Timestamp: time.Now().UTC(),
		Op:        op,
		User:      os.Getenv("USER"),
		Kernel:    kernel,
		Target:    target,
		Result:    result,
	})
}

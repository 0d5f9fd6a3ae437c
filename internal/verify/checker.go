// Package verify runs the integrity check suite against registered kernels.
package verify

import (
	"context"
	"time"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/internal/core/logger"
	"github.com/kepler-works/ephem/internal/ephemeris"
)

// Result is the outcome of a single check.
type Result struct {
	Name    string
	Passed  bool
	Detail  string
	Elapsed time.Duration
}

// Checker runs the kernel check suite: file, header, coverage, probe.
type Checker struct {
	log *logger.Logger
}

// NewChecker constructs a Checker.
func NewChecker(log *logger.Logger) *Checker {
	return &Checker{log: log}
}

// Run executes the suite in order. The file and header checks gate the rest:
// a kernel that cannot be opened is reported with the remaining checks skipped.
// Returns the header metadata when it was readable.
func (c *Checker) Run(ctx context.Context, spec v1.KernelSpec) ([]Result, *v1.KernelMeta) {
	var results []Result

	res := c.step(ctx, "file", func() (string, error) {
		return CheckFile(spec.Path)
	})
	results = append(results, res)
	if !res.Passed {
		return results, nil
	}

	var k *ephemeris.Kernel
	res = c.step(ctx, "header", func() (string, error) {
		var err error
		k, err = ephemeris.Open(spec.Path, c.log)
		if err != nil {
			return "", err
		}
		return k.Meta().Name, nil
	})
	results = append(results, res)
	if !res.Passed {
		return results, nil
	}
	defer k.Close()
	meta := k.Meta()

	results = append(results, c.step(ctx, "coverage", func() (string, error) {
		return CheckCoverage(meta)
	}))
	results = append(results, c.step(ctx, "probe", func() (string, error) {
		return CheckProbe(k)
	}))

	return results, &meta
}

// Status maps a suite outcome onto a registry status.
func Status(results []Result) v1.KernelStatus {
	if len(results) == 0 {
		return v1.KernelUnknown
	}
	for _, r := range results {
		if r.Passed {
			continue
		}
		if r.Name == "file" {
			return v1.KernelMissing
		}
		return v1.KernelCorrupt
	}
	return v1.KernelOK
}

// Failed returns the first failing result, if any.
func Failed(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}

func (c *Checker) step(ctx context.Context, name string, fn func() (string, error)) Result {
	if err := ctx.Err(); err != nil {
		return Result{Name: name, Passed: false, Detail: err.Error()}
	}
	start := time.Now()
	detail, err := fn()
	res := Result{Name: name, Passed: err == nil, Detail: detail, Elapsed: time.Since(start)}
	if err != nil {
		res.Detail = err.Error()
		c.log.Debug("kernel check failed", "check", name, "err", err)
	}
	return res
}

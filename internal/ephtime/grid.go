package ephtime

import "github.com/kepler-works/ephem/pkg/errs"

// Linspace returns n epochs evenly spaced over the closed interval
// [from, to]. Both endpoints are included; n == 1 yields just from.
func Linspace(from, to float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, errs.Newf(errs.ErrTimeRange, "ephtime.linspace",
			"sample count must be at least 1, got %d", n)
	}
	if n == 1 {
		return []float64{from}, nil
	}
	if to < from {
		return nil, errs.Newf(errs.ErrTimeRange, "ephtime.linspace",
			"range end %f precedes start %f", to, from)
	}

	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	// Pin the final epoch so accumulated rounding never overshoots the
	// requested end.
	out[n-1] = to
	return out, nil
}

package common

import "sort"

// LinearInterpolator evaluates a piecewise-linear function through a set of
// sample points, extrapolating linearly beyond the first and last point.
// Knots are sorted by x at construction.
type LinearInterpolator struct {
	xs []float64
	ys []float64
}

// NewLinearInterpolator creates an interpolator over the given knots.
// Returns nil when fewer than two knots are supplied.
func NewLinearInterpolator(xs, ys []float64) *LinearInterpolator {
	if len(xs) != len(ys) || len(xs) < 2 {
		return nil
	}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	li := &LinearInterpolator{
		xs: make([]float64, len(xs)),
		ys: make([]float64, len(ys)),
	}
	for i, j := range idx {
		li.xs[i] = xs[j]
		li.ys[i] = ys[j]
	}
	return li
}

// At evaluates the interpolant at x
func (li *LinearInterpolator) At(x float64) float64 {
	n := len(li.xs)

	// Locate the segment; clamp to the edge segments for extrapolation
	j := sort.SearchFloat64s(li.xs, x)
	if j <= 0 {
		j = 1
	} else if j >= n {
		j = n - 1
	}

	x0, x1 := li.xs[j-1], li.xs[j]
	y0, y1 := li.ys[j-1], li.ys[j]
	if x1 == x0 {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

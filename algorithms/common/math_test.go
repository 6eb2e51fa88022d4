package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 3.0, Median([]float64{3}))
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
}

func TestPopulationStd(t *testing.T) {
	// Var([2,3,4]) about the mean with N in the denominator is 2/3
	assert.InDelta(t, 0.816496580927726, PopulationStd([]float64{2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, PopulationStd(nil))
	assert.Equal(t, 0.0, PopulationStd([]float64{5}))
}

func TestTrapezoid(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 0, 5, 0, 0}
	assert.InDelta(t, 5.0, Trapezoid(x, y), 1e-12)

	// Non-uniform spacing
	assert.InDelta(t, 3.0, Trapezoid([]float64{0, 2}, []float64{1, 2}), 1e-12)

	// Degenerate input
	assert.Equal(t, 0.0, Trapezoid([]float64{1}, []float64{1}))
	assert.Equal(t, 0.0, Trapezoid([]float64{1, 2}, []float64{1}))
}

func TestPercentile(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 3.0, Percentile(data, 50), 1e-12)
	assert.InDelta(t, 1.0, Percentile(data, 0), 1e-12)
	assert.InDelta(t, 5.0, Percentile(data, 100), 1e-12)
}

func TestLinearInterpolator(t *testing.T) {
	li := NewLinearInterpolator([]float64{0, 1, 3}, []float64{0, 2, 6})
	require.NotNil(t, li)

	assert.InDelta(t, 1.0, li.At(0.5), 1e-12)
	assert.InDelta(t, 4.0, li.At(2.0), 1e-12)

	// Linear extrapolation beyond the knots
	assert.InDelta(t, -2.0, li.At(-1.0), 1e-12)
	assert.InDelta(t, 8.0, li.At(4.0), 1e-12)

	// Unsorted knots are sorted at construction
	li = NewLinearInterpolator([]float64{3, 0, 1}, []float64{6, 0, 2})
	require.NotNil(t, li)
	assert.InDelta(t, 4.0, li.At(2.0), 1e-12)

	assert.Nil(t, NewLinearInterpolator([]float64{1}, []float64{1}))
}

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAlternatingSignal(t *testing.T) {
	signal := []float64{0, 1, 0, 1, 0}
	timeAxis := []float64{0, 1, 2, 3, 4}

	d := NewExtremumDetector(DetectorParams{})
	peaks, valleys, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, peaks.Indices)
	assert.Equal(t, []float64{1, 3}, peaks.Times)
	assert.Equal(t, []float64{1, 1}, peaks.Amplitudes)

	// Border samples are never extrema, so only the interior minimum counts
	assert.Equal(t, []int{2}, valleys.Indices)
	assert.Equal(t, []float64{0}, valleys.Amplitudes)
}

func TestDetectStructuralAlignment(t *testing.T) {
	signal := []float64{0, 2, 1, 3, 0, 4, 1, 2, 0}
	timeAxis := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}

	d := NewExtremumDetector(DetectorParams{})
	peaks, valleys, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)

	for _, set := range []*ExtremumSet{peaks, valleys} {
		assert.Len(t, set.Times, len(set.Indices))
		assert.Len(t, set.Amplitudes, len(set.Indices))
	}

	// Every peak is a strict local maximum, every valley a strict local minimum
	for _, p := range peaks.Indices {
		assert.Greater(t, signal[p], signal[p-1])
		assert.Greater(t, signal[p], signal[p+1])
	}
	for _, v := range valleys.Indices {
		assert.Less(t, signal[v], signal[v-1])
		assert.Less(t, signal[v], signal[v+1])
	}
}

func TestDetectEmptyAndDegenerateSignals(t *testing.T) {
	d := NewExtremumDetector(DetectorParams{})

	peaks, valleys, err := d.Detect(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, peaks.Len())
	assert.Equal(t, 0, valleys.Len())

	peaks, valleys, err = d.Detect([]float64{1}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0, peaks.Len())
	assert.Equal(t, 0, valleys.Len())

	// A constant signal has no strict local extremum
	peaks, valleys, err = d.Detect([]float64{2, 2, 2, 2}, []float64{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, peaks.Len())
	assert.Equal(t, 0, valleys.Len())
}

func TestDetectPlateauMidpoint(t *testing.T) {
	signal := []float64{0, 1, 1, 1, 0}
	timeAxis := []float64{0, 1, 2, 3, 4}

	d := NewExtremumDetector(DetectorParams{})
	peaks, _, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, peaks.Indices)
}

func TestDetectDistanceConstraint(t *testing.T) {
	signal := []float64{0, 3, 0, 5, 0, 3, 0}
	timeAxis := []float64{0, 1, 2, 3, 4, 5, 6}

	// Without the constraint all three maxima are reported
	d := NewExtremumDetector(DetectorParams{})
	peaks, _, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, peaks.Indices)

	// With a minimum separation of 3 samples only the tallest survives
	d = NewExtremumDetector(DetectorParams{DistanceSeconds: 3})
	peaks, _, err = d.Detect(signal, timeAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, peaks.Indices)
}

func TestDetectProminenceConstraint(t *testing.T) {
	// The second maximum only rises 1 above its higher flanking minimum
	signal := []float64{0, 5, 3, 4, 0}
	timeAxis := []float64{0, 1, 2, 3, 4}

	d := NewExtremumDetector(DetectorParams{Prominence: 2})
	peaks, _, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, peaks.Indices)
	assert.Equal(t, []float64{5}, peaks.Amplitudes)
}

func TestDetectWidthConstraint(t *testing.T) {
	// A one-sample spike next to a broad triangular bump
	signal := []float64{0, 0, 5, 0, 0, 0, 1, 2, 3, 4, 5, 4, 3, 2, 1, 0}
	timeAxis := make([]float64, len(signal))
	for i := range timeAxis {
		timeAxis[i] = float64(i)
	}

	d := NewExtremumDetector(DetectorParams{WidthSeconds: 3})
	peaks, _, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, peaks.Indices)
}

func TestDetectWidthConstraintInSeconds(t *testing.T) {
	signal := []float64{0, 0, 5, 0, 0, 0, 1, 2, 3, 4, 5, 4, 3, 2, 1, 0}
	timeAxis := make([]float64, len(signal))
	for i := range timeAxis {
		timeAxis[i] = float64(i) / 1000.0
	}

	// 3 ms at 1 kHz converts to 3 samples
	d := NewExtremumDetector(DetectorParams{WidthSeconds: 0.003, SampleRate: 1000})
	peaks, _, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, peaks.Indices)
}

func TestDetectIdempotent(t *testing.T) {
	signal := []float64{0, 2, 1, 3, 0, 4, 1, 2, 0}
	timeAxis := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}

	d := NewExtremumDetector(DetectorParams{Prominence: 1})
	peaks1, valleys1, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)
	peaks2, valleys2, err := d.Detect(signal, timeAxis)
	require.NoError(t, err)

	assert.Equal(t, peaks1, peaks2)
	assert.Equal(t, valleys1, valleys2)
}

func TestDetectMalformedInput(t *testing.T) {
	d := NewExtremumDetector(DetectorParams{})

	_, _, err := d.Detect([]float64{1, 2, 3}, []float64{0, 1})
	assert.Error(t, err)

	_, _, err = d.Detect([]float64{1, 2, 3}, []float64{0, 2, 1})
	assert.Error(t, err)

	d = NewExtremumDetector(DetectorParams{SampleRate: -1})
	_, _, err = d.Detect([]float64{1, 2, 3}, []float64{0, 1, 2})
	assert.Error(t, err)
}

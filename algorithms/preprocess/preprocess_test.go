package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectArtifacts(t *testing.T) {
	control := []float64{1, 2, 1, 2, 1, 2, 1, 2, 1, 50}
	mask := DetectArtifacts(control, 3)
	require.Len(t, mask, len(control))

	for i := 0; i < 9; i++ {
		assert.False(t, mask[i], "sample %d flagged", i)
	}
	assert.True(t, mask[9])
}

func TestDetectArtifactsCleanAndDegenerate(t *testing.T) {
	mask := DetectArtifacts(nil, 3)
	assert.Empty(t, mask)

	mask = DetectArtifacts([]float64{5}, 3)
	assert.Equal(t, []bool{false}, mask)
}

func TestDenoiseInterpolatesMaskedSpans(t *testing.T) {
	timeAxis := []float64{0, 1, 2, 3, 4}
	signal := []float64{0, 1, 100, 3, 4}
	mask := []bool{false, false, true, false, false}

	out := Denoise(signal, timeAxis, mask, nil, false)
	require.Len(t, out, 5)
	assert.InDelta(t, 2.0, out[2], 1e-12)

	// Clean samples are untouched, input is not modified
	assert.Equal(t, 1.0, out[1])
	assert.Equal(t, 100.0, signal[2])
}

func TestDenoiseAggressiveBlendsRegression(t *testing.T) {
	n := 13
	timeAxis := make([]float64, n)
	control := make([]float64, n)
	signal := make([]float64, n)
	mask := make([]bool, n)
	for i := range signal {
		timeAxis[i] = float64(i)
		control[i] = float64(i + 1)
		signal[i] = 2 * control[i]
	}
	signal[6] = 999
	mask[6] = true

	// The regression prediction and the interpolation agree exactly here, so
	// the blend reproduces the uncorrupted value
	out := Denoise(signal, timeAxis, mask, control, true)
	assert.InDelta(t, 14.0, out[6], 1e-9)
}

func TestDenoiseNoArtifacts(t *testing.T) {
	signal := []float64{1, 2, 3}
	out := Denoise(signal, []float64{0, 1, 2}, []bool{false, false, false}, nil, false)
	assert.Equal(t, signal, out)
}

func TestFitControl(t *testing.T) {
	control := []float64{1, 2, 3, 4}
	signal := []float64{3, 5, 7, 9}

	fitted := FitControl(signal, control)
	require.Len(t, fitted, 4)
	for i := range fitted {
		assert.InDelta(t, signal[i], fitted[i], 1e-9)
	}

	corrected := CorrectMotion(signal, control)
	for _, v := range corrected {
		assert.InDelta(t, 0.0, v, 1e-9)
	}
}

func TestFitControlDegenerate(t *testing.T) {
	// Constant channels fall back to mean scaling
	fitted := FitControl([]float64{4, 4, 4}, []float64{2, 2, 2})
	assert.InDeltaSlice(t, []float64{4, 4, 4}, fitted, 1e-12)

	assert.Equal(t, []float64{0, 0}, FitControl([]float64{1, 2}, []float64{1}))
}

func TestCorrectDriftRemovesLinearTrend(t *testing.T) {
	n := 50
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 3.0 + 2.0*float64(i)/float64(n-1)
	}

	detrended, drift, err := CorrectDrift(signal, 1)
	require.NoError(t, err)
	require.Len(t, detrended, n)
	require.Len(t, drift, n)

	for i := range detrended {
		assert.InDelta(t, 0.0, detrended[i], 1e-9)
		assert.InDelta(t, signal[i], drift[i], 1e-9)
	}
}

func TestCorrectDriftErrors(t *testing.T) {
	_, _, err := CorrectDrift([]float64{1, 2}, -1)
	assert.Error(t, err)

	_, _, err = CorrectDrift([]float64{1, 2, 3}, 2)
	assert.Error(t, err)
}

func TestDeltaFOverF(t *testing.T) {
	out := DeltaFOverF([]float64{10, 10, 10, 10}, 10)
	for _, v := range out {
		assert.InDelta(t, 0.0, v, 1e-9)
	}

	// Percent change is monotone in the input
	out = DeltaFOverF([]float64{10, 12, 14, 16}, 10)
	for i := 1; i < len(out); i++ {
		assert.Greater(t, out[i], out[i-1])
	}

	assert.Empty(t, DeltaFOverF(nil, 10))
}

func TestDownsample(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, []float64{0, 3, 6, 9}, Downsample(data, 3))
	assert.Equal(t, data, Downsample(data, 1))
	assert.Equal(t, data, Downsample(data, 0))

	mask := []bool{true, false, false, true, false, false}
	assert.Equal(t, []bool{true, true}, DownsampleMask(mask, 3))
}

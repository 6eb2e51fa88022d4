package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominantFrequency(t *testing.T) {
	const fs = 128.0
	n := 256
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 3.0 + math.Sin(2*math.Pi*8.0*float64(i)/fs)
	}

	ps := NewPowerSpectrum(fs)
	freq, err := ps.DominantFrequency(signal)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, freq, 0.5)
}

func TestComputeShape(t *testing.T) {
	const fs = 100.0
	signal := make([]float64, 200)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 5.0 * float64(i) / fs)
	}

	result, err := NewPowerSpectrum(fs).Compute(signal)
	require.NoError(t, err)

	require.Len(t, result.Frequencies, 101)
	require.Len(t, result.Power, 101)
	assert.Equal(t, 0.0, result.Frequencies[0])
	assert.InDelta(t, fs/2, result.Frequencies[100], 1e-9)

	for _, p := range result.Power {
		assert.GreaterOrEqual(t, p, 0.0)
	}
}

func TestComputeBand(t *testing.T) {
	const fs = 100.0
	signal := make([]float64, 200)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 5.0 * float64(i) / fs)
	}

	result, err := NewPowerSpectrum(fs).ComputeBand(signal, 10)
	require.NoError(t, err)
	require.NotEmpty(t, result.Frequencies)

	for _, f := range result.Frequencies {
		assert.LessOrEqual(t, f, 10.0)
	}
}

func TestComputeErrors(t *testing.T) {
	_, err := NewPowerSpectrum(0).Compute([]float64{1, 2, 3})
	assert.Error(t, err)

	_, err = NewPowerSpectrum(100).Compute([]float64{1})
	assert.Error(t, err)
}

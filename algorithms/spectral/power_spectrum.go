package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// SpectrumResult holds a one-sided power spectrum as two parallel sequences
type SpectrumResult struct {
	Frequencies []float64 `json:"frequencies"` // Hz
	Power       []float64 `json:"power"`
}

// PowerSpectrum computes one-sided power spectra of photometry traces, used
// to inspect periodicity and choose filter cutoffs. The trace is
// Hann-windowed and mean-removed before the transform.
type PowerSpectrum struct {
	sampleRate float64
}

// NewPowerSpectrum creates a spectrum analyzer for the given sampling rate
func NewPowerSpectrum(sampleRate float64) *PowerSpectrum {
	return &PowerSpectrum{sampleRate: sampleRate}
}

// Compute returns the one-sided power spectrum of the signal. Signals shorter
// than 2 samples have no spectral content and return an error.
func (ps *PowerSpectrum) Compute(signal []float64) (*SpectrumResult, error) {
	if ps.sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %f", ps.sampleRate)
	}
	n := len(signal)
	if n < 2 {
		return nil, fmt.Errorf("signal too short for spectral analysis: %d samples", n)
	}

	mean := 0.0
	for _, v := range signal {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	copy(windowed, signal)
	for i := range windowed {
		windowed[i] -= mean
	}
	window.Apply(windowed, window.Hann)

	spectrum := fft.FFTReal(windowed)

	bins := n/2 + 1
	result := &SpectrumResult{
		Frequencies: make([]float64, bins),
		Power:       make([]float64, bins),
	}
	for i := range bins {
		magnitude := cmplx.Abs(spectrum[i])
		result.Frequencies[i] = float64(i) * ps.sampleRate / float64(n)
		result.Power[i] = magnitude * magnitude / float64(n)
	}
	return result, nil
}

// ComputeBand computes the power spectrum truncated to frequencies at or
// below maxFreq
func (ps *PowerSpectrum) ComputeBand(signal []float64, maxFreq float64) (*SpectrumResult, error) {
	full, err := ps.Compute(signal)
	if err != nil {
		return nil, err
	}

	cut := len(full.Frequencies)
	for i, f := range full.Frequencies {
		if f > maxFreq {
			cut = i
			break
		}
	}
	full.Frequencies = full.Frequencies[:cut]
	full.Power = full.Power[:cut]
	return full, nil
}

// DominantFrequency returns the frequency of the strongest non-DC component
func (ps *PowerSpectrum) DominantFrequency(signal []float64) (float64, error) {
	result, err := ps.Compute(signal)
	if err != nil {
		return 0, err
	}

	best := 1
	for i := 2; i < len(result.Power); i++ {
		if result.Power[i] > result.Power[best] {
			best = i
		}
	}
	if math.IsNaN(result.Power[best]) {
		return 0, fmt.Errorf("spectrum contains NaN values")
	}
	return result.Frequencies[best], nil
}

package preprocess

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// FitControl fits the control channel to the signal by least-squares linear
// regression and returns the fitted curve (slope*control + intercept).
// Near-constant inputs degenerate the regression, so they fall back to
// scaling the control by the ratio of the means. An empty control or signal
// yields an all-zero curve of the signal's length.
func FitControl(signal, control []float64) []float64 {
	fitted := make([]float64, len(signal))
	if len(signal) == 0 || len(control) != len(signal) {
		return fitted
	}

	if len(signal) < 2 || stat.StdDev(control, nil) < 1e-9 || stat.StdDev(signal, nil) < 1e-9 {
		controlMean := stat.Mean(control, nil)
		scale := 1.0
		if math.Abs(controlMean) > 1e-9 {
			scale = stat.Mean(signal, nil) / controlMean
		}
		for i, v := range control {
			fitted[i] = v * scale
		}
		return fitted
	}

	alpha, beta := stat.LinearRegression(control, signal, nil, false)
	for i, v := range control {
		fitted[i] = alpha + beta*v
	}
	return fitted
}

// CorrectMotion subtracts the fitted control from the signal, removing
// movement artifacts shared by both channels
func CorrectMotion(signal, control []float64) []float64 {
	fitted := FitControl(signal, control)
	corrected := make([]float64, len(signal))
	for i, v := range signal {
		corrected[i] = v - fitted[i]
	}
	return corrected
}

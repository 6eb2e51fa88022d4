package preprocess

import (
	"gonum.org/v1/gonum/stat"

	"github.com/neurotrace/photometry/algorithms/common"
)

// Denoise replaces artifact samples by linear interpolation across the clean
// neighbors. In aggressive mode, with a control channel and enough clean
// samples, the replacement blends a control-based regression prediction with
// the interpolation for a smoother repair. The input signal is not modified.
func Denoise(signal, timeAxis []float64, mask []bool, control []float64, aggressive bool) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)

	if len(signal) == 0 || len(mask) != len(signal) || !anyTrue(mask) {
		return out
	}

	var validTimes, validValues []float64
	var validIdx []int
	for i, bad := range mask {
		if !bad {
			validTimes = append(validTimes, timeAxis[i])
			validValues = append(validValues, signal[i])
			validIdx = append(validIdx, i)
		}
	}

	// Not enough clean data to interpolate from
	interp := common.NewLinearInterpolator(validTimes, validValues)
	if interp == nil {
		return out
	}

	useRegression := aggressive && len(control) == len(signal) && len(validIdx) > 10
	var alpha, beta float64
	if useRegression {
		validControl := make([]float64, len(validIdx))
		for i, idx := range validIdx {
			validControl[i] = control[idx]
		}
		alpha, beta = stat.LinearRegression(validControl, validValues, nil, false)
	}

	for i, bad := range mask {
		if !bad {
			continue
		}
		interpolated := interp.At(timeAxis[i])
		if useRegression {
			predicted := alpha + beta*control[i]
			out[i] = 0.7*predicted + 0.3*interpolated
		} else {
			out[i] = interpolated
		}
	}
	return out
}

func anyTrue(mask []bool) bool {
	for _, b := range mask {
		if b {
			return true
		}
	}
	return false
}

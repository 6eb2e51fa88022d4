package preprocess

import (
	"math"

	"github.com/neurotrace/photometry/algorithms/common"
)

// DeltaFOverF converts a fluorescence trace to percent change over baseline.
// The baseline F0 is the given percentile of the trace (10 is the
// conventional choice), floored in magnitude at 1e-9 to keep the division
// stable for near-zero baselines.
func DeltaFOverF(signal []float64, percentile float64) []float64 {
	out := make([]float64, len(signal))
	if len(signal) == 0 {
		return out
	}

	f0 := common.Percentile(signal, percentile)
	f0 = math.Max(math.Abs(f0), 1e-9)

	for i, v := range signal {
		out[i] = (v - f0) / f0 * 100.0
	}
	return out
}

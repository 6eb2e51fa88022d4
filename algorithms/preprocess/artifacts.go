package preprocess

import (
	"math"

	"github.com/neurotrace/photometry/algorithms/common"
)

// madToStd converts a median absolute deviation to an equivalent standard
// deviation under a normal distribution
const madToStd = 1.4826

// DetectArtifacts flags samples of the control channel that deviate from its
// median by more than threshold equivalent standard deviations. MAD is used
// instead of the standard deviation because it is robust to the very outliers
// being detected. Inputs with fewer than 2 samples yield an all-false mask.
func DetectArtifacts(control []float64, threshold float64) []bool {
	mask := make([]bool, len(control))
	if len(control) < 2 {
		return mask
	}

	median := common.Median(control)

	deviations := make([]float64, len(control))
	for i, v := range control {
		deviations[i] = math.Abs(v - median)
	}
	mad := common.Median(deviations)

	limit := threshold * mad * madToStd
	for i, d := range deviations {
		mask[i] = d > limit
	}
	return mask
}

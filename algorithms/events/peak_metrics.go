package events

import (
	"math"

	"github.com/neurotrace/photometry/algorithms/common"
)

// PeakMetricSet holds per-peak shape metrics as four parallel sequences, one
// entry per peak in the source ExtremumSet. NaN marks a peak whose metrics
// could not be computed; all four fields of such a peak are NaN together.
type PeakMetricSet struct {
	Area      []float64 `json:"area"`
	FWHM      []float64 `json:"fwhm"`
	RiseTime  []float64 `json:"rise_time"`
	DecayTime []float64 `json:"decay_time"`
}

// Len returns the number of metric rows
func (m *PeakMetricSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Area)
}

// peakRow is the internal tagged result for a single peak; it is flattened to
// the NaN-sentinel representation at the output boundary
type peakRow struct {
	area, fwhm, rise, decay float64
}

// PeakMetrics computes area, FWHM, rise time and decay time for each peak,
// relating it to its bounding valleys
type PeakMetrics struct{}

// NewPeakMetrics creates a new peak metrics calculator
func NewPeakMetrics() *PeakMetrics {
	return &PeakMetrics{}
}

// Compute calculates metrics for every peak. It returns nil when either
// extremum set is empty or absent: no metrics are computable, which is
// distinct from a signal with zero measured peaks. A peak that cannot be
// measured yields a NaN row; it never aborts the remaining peaks.
func (pm *PeakMetrics) Compute(peaks, valleys *ExtremumSet, signal, timeAxis []float64) *PeakMetricSet {
	if peaks.Len() == 0 || valleys.Len() == 0 || len(signal) == 0 {
		return nil
	}

	metrics := &PeakMetricSet{
		Area:      make([]float64, peaks.Len()),
		FWHM:      make([]float64, peaks.Len()),
		RiseTime:  make([]float64, peaks.Len()),
		DecayTime: make([]float64, peaks.Len()),
	}

	for i, p := range peaks.Indices {
		row, ok := measurePeak(p, valleys.Indices, signal, timeAxis)
		if !ok {
			row = peakRow{math.NaN(), math.NaN(), math.NaN(), math.NaN()}
		}
		metrics.Area[i] = row.area
		metrics.FWHM[i] = row.fwhm
		metrics.RiseTime[i] = row.rise
		metrics.DecayTime[i] = row.decay
	}
	return metrics
}

func measurePeak(p int, valleyIndices []int, signal, timeAxis []float64) (peakRow, bool) {
	last := len(signal) - 1
	if p < 0 || p > last {
		return peakRow{}, false
	}

	preValley, postValley := boundingIndices(valleyIndices, p, last)
	if preValley < 0 || postValley > last {
		return peakRow{}, false
	}

	baseLevel := math.Min(signal[preValley], signal[postValley])
	halfHeight := baseLevel + (signal[p]-baseLevel)/2.0

	// Rising crossing: last sample at or below half height on the way up
	rising := -1
	for i := p; i >= preValley; i-- {
		if signal[i] <= halfHeight {
			rising = i
			break
		}
	}

	// Falling crossing: first sample at or below half height on the way down
	falling := -1
	for i := p; i <= postValley; i++ {
		if signal[i] <= halfHeight {
			falling = i
			break
		}
	}

	if rising < 0 || falling < 0 {
		return peakRow{}, false
	}

	segment := make([]float64, postValley-preValley+1)
	for i := range segment {
		segment[i] = signal[preValley+i] - baseLevel
	}

	return peakRow{
		area:  common.Trapezoid(timeAxis[preValley:postValley+1], segment),
		fwhm:  timeAxis[falling] - timeAxis[rising],
		rise:  timeAxis[p] - timeAxis[rising],
		decay: timeAxis[falling] - timeAxis[p],
	}, true
}

// boundingIndices finds the nearest opposite-type extrema before and after
// idx. When no real bounding extremum exists on a side, the signal border (0
// or last) stands in as a synthetic boundary.
func boundingIndices(others []int, idx, last int) (pre, post int) {
	pre, post = 0, last
	for _, o := range others {
		if o < idx {
			pre = o
		} else if o > idx {
			post = o
			break
		}
	}
	return pre, post
}

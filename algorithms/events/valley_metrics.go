package events

import (
	"math"

	"github.com/neurotrace/photometry/algorithms/common"
)

// ValleyMetricSet holds per-valley shape metrics as two parallel sequences,
// one entry per valley in the source ExtremumSet, with the same NaN-row
// policy as PeakMetricSet.
type ValleyMetricSet struct {
	AreaAbove []float64 `json:"area_above"`
	FWHM      []float64 `json:"fwhm"`
}

// Len returns the number of metric rows
func (m *ValleyMetricSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.AreaAbove)
}

type valleyRow struct {
	areaAbove, fwhm float64
}

// ValleyMetrics computes full width at half depth and the area enclosed above
// each valley, relating it to its bounding peaks. It mirrors PeakMetrics with
// the roles of peaks and valleys swapped.
type ValleyMetrics struct{}

// NewValleyMetrics creates a new valley metrics calculator
func NewValleyMetrics() *ValleyMetrics {
	return &ValleyMetrics{}
}

// Compute calculates metrics for every valley. It returns nil when either
// extremum set is empty or absent. An unmeasurable valley yields a NaN row
// and never aborts the batch.
func (vm *ValleyMetrics) Compute(peaks, valleys *ExtremumSet, signal, timeAxis []float64) *ValleyMetricSet {
	if valleys.Len() == 0 || peaks.Len() == 0 || len(signal) == 0 {
		return nil
	}

	metrics := &ValleyMetricSet{
		AreaAbove: make([]float64, valleys.Len()),
		FWHM:      make([]float64, valleys.Len()),
	}

	for i, v := range valleys.Indices {
		row, ok := measureValley(v, peaks.Indices, signal, timeAxis)
		if !ok {
			row = valleyRow{math.NaN(), math.NaN()}
		}
		metrics.AreaAbove[i] = row.areaAbove
		metrics.FWHM[i] = row.fwhm
	}
	return metrics
}

func measureValley(v int, peakIndices []int, signal, timeAxis []float64) (valleyRow, bool) {
	last := len(signal) - 1
	if v < 0 || v > last {
		return valleyRow{}, false
	}

	prePeak, postPeak := boundingIndices(peakIndices, v, last)
	if prePeak < 0 || postPeak > last {
		return valleyRow{}, false
	}

	// The higher bounding peak defines the reference level, so the metric is
	// conservative with respect to asymmetric shoulders
	peakLevel := math.Max(signal[prePeak], signal[postPeak])
	halfDepth := peakLevel - (peakLevel-signal[v])/2.0

	rising := -1
	for i := v; i >= prePeak; i-- {
		if signal[i] >= halfDepth {
			rising = i
			break
		}
	}

	falling := -1
	for i := v; i <= postPeak; i++ {
		if signal[i] >= halfDepth {
			falling = i
			break
		}
	}

	if rising < 0 || falling < 0 {
		return valleyRow{}, false
	}

	// Area between the reference level and the signal over the crossing window
	segment := make([]float64, postPeak-prePeak+1)
	for i := range segment {
		segment[i] = peakLevel - signal[prePeak+i]
	}

	return valleyRow{
		areaAbove: common.Trapezoid(timeAxis[prePeak:postPeak+1], segment),
		fwhm:      timeAxis[falling] - timeAxis[rising],
	}, true
}

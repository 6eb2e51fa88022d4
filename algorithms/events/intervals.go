package events

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/neurotrace/photometry/algorithms/common"
)

// IntervalStats summarizes the consecutive differences of a sequence of event
// times. Std is the population standard deviation (divides by N) for
// consistency with count-based reporting; callers needing the sample form
// must adjust.
type IntervalStats struct {
	Intervals []float64 `json:"intervals"`
	Count     int       `json:"count"`
	Mean      float64   `json:"mean"`
	Median    float64   `json:"median"`
	Std       float64   `json:"std"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
}

// ComputeIntervals computes inter-event-time statistics from a list of event
// times. The times are sorted internally before differencing, so intervals
// are always non-negative. Fewer than 2 times return nil: no interval is
// defined by 0 or 1 events.
func ComputeIntervals(times []float64) *IntervalStats {
	if len(times) < 2 {
		return nil
	}

	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)

	intervals := make([]float64, len(sorted)-1)
	for i := range intervals {
		intervals[i] = sorted[i+1] - sorted[i]
	}

	minInterval, maxInterval := common.MinMax(intervals)
	return &IntervalStats{
		Intervals: intervals,
		Count:     len(intervals),
		Mean:      stat.Mean(intervals, nil),
		Median:    common.Median(intervals),
		Std:       common.PopulationStd(intervals),
		Min:       minInterval,
		Max:       maxInterval,
	}
}

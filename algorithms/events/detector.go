package events

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ExtremumKind distinguishes peaks from valleys
type ExtremumKind int

const (
	// Peak is a local maximum of the signal
	Peak ExtremumKind = iota
	// Valley is a local minimum of the signal
	Valley
)

func (k ExtremumKind) String() string {
	switch k {
	case Peak:
		return "peak"
	case Valley:
		return "valley"
	default:
		return "unknown"
	}
}

// ExtremumSet holds detected extrema as three parallel sequences sharing one
// index domain, ordered ascending by sample index (equivalently by time).
// Amplitudes are the raw signal values at each index: heights for peaks,
// depths for valleys.
type ExtremumSet struct {
	Kind       ExtremumKind `json:"kind"`
	Indices    []int        `json:"indices"`
	Times      []float64    `json:"times"`
	Amplitudes []float64    `json:"amplitudes"`
}

// Len returns the number of detected extrema
func (s *ExtremumSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Indices)
}

// DetectorParams configures extremum detection. Zero or negative values leave
// the corresponding constraint unset, matching an absent parameter.
type DetectorParams struct {
	// Minimum amplitude rise/fall relative to the local baseline,
	// in signal units
	Prominence float64 `json:"prominence" yaml:"prominence"`

	// Minimum horizontal extent of an extremum, measured at half prominence.
	// Interpreted in seconds when SampleRate > 0, otherwise in samples.
	WidthSeconds float64 `json:"width_seconds" yaml:"width_seconds"`

	// Minimum separation between consecutive extrema of the same type.
	// Same unit convention as WidthSeconds.
	DistanceSeconds float64 `json:"distance_seconds" yaml:"distance_seconds"`

	// Sampling rate in samples/second; 0 leaves width/distance in samples
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`
}

// ExtremumDetector scans a sampled signal for local maxima and minima subject
// to prominence, width and distance constraints. Valleys are found by
// detecting peaks on the negated signal with identical constraints.
//
// Detection is deterministic: plateaus resolve to their midpoint sample, and
// the distance constraint keeps the higher of two competing extrema.
type ExtremumDetector struct {
	params DetectorParams
}

// NewExtremumDetector creates a new detector with the given parameters
func NewExtremumDetector(params DetectorParams) *ExtremumDetector {
	return &ExtremumDetector{params: params}
}

// Detect finds peaks and valleys of the signal. An empty or nil signal yields
// two empty sets. Mismatched signal/time lengths, non-monotonic time, or a
// negative sample rate violate the caller contract and fail fast.
func (d *ExtremumDetector) Detect(signal, timeAxis []float64) (*ExtremumSet, *ExtremumSet, error) {
	if len(signal) == 0 {
		return &ExtremumSet{Kind: Peak}, &ExtremumSet{Kind: Valley}, nil
	}
	if err := validateAxes(signal, timeAxis); err != nil {
		return nil, nil, err
	}
	if d.params.SampleRate < 0 {
		return nil, nil, fmt.Errorf("negative sample rate: %f", d.params.SampleRate)
	}

	peaks := d.detectOne(signal, timeAxis, Peak)

	negated := make([]float64, len(signal))
	copy(negated, signal)
	floats.Scale(-1, negated)
	valleys := d.detectOne(negated, timeAxis, Valley)

	// Report raw signal values, not the negated ones
	for i, idx := range valleys.Indices {
		valleys.Amplitudes[i] = signal[idx]
	}

	return peaks, valleys, nil
}

func validateAxes(signal, timeAxis []float64) error {
	if len(signal) != len(timeAxis) {
		return fmt.Errorf("signal length (%d) doesn't match time axis length (%d)",
			len(signal), len(timeAxis))
	}
	for i := 1; i < len(timeAxis); i++ {
		if timeAxis[i] < timeAxis[i-1] {
			return fmt.Errorf("time axis is not monotonic at index %d", i)
		}
	}
	return nil
}

// toSamples converts a width/distance constraint to sample counts. With a
// positive sample rate the value is in seconds and converts via rounding;
// otherwise it is already a sample count.
func (d *ExtremumDetector) toSamples(value float64) float64 {
	if value <= 0 {
		return 0
	}
	if d.params.SampleRate > 0 {
		return math.Round(value * d.params.SampleRate)
	}
	return value
}

func (d *ExtremumDetector) detectOne(x, timeAxis []float64, kind ExtremumKind) *ExtremumSet {
	indices := localMaxima(x)

	if dist := d.toSamples(d.params.DistanceSeconds); dist >= 1 {
		heights := valuesAt(x, indices)
		keep := selectByDistance(indices, heights, int(dist))
		indices = filterIndices(indices, keep)
	}

	if d.params.Prominence > 0 {
		prominences, _, _ := peakProminences(x, indices)
		keep := make([]bool, len(indices))
		for i, p := range prominences {
			keep[i] = p >= d.params.Prominence
		}
		indices = filterIndices(indices, keep)
	}

	if minWidth := d.toSamples(d.params.WidthSeconds); minWidth >= 1 {
		prominences, leftBases, rightBases := peakProminences(x, indices)
		widths := peakWidths(x, indices, prominences, leftBases, rightBases)
		keep := make([]bool, len(indices))
		for i, w := range widths {
			keep[i] = w >= minWidth
		}
		indices = filterIndices(indices, keep)
	}

	set := &ExtremumSet{
		Kind:       kind,
		Indices:    indices,
		Times:      make([]float64, len(indices)),
		Amplitudes: make([]float64, len(indices)),
	}
	for i, idx := range indices {
		set.Times[i] = timeAxis[idx]
		set.Amplitudes[i] = x[idx]
	}
	return set
}

// localMaxima finds strict local maxima, resolving plateaus to their midpoint
// sample. The first and last samples are never extrema.
func localMaxima(x []float64) []int {
	var maxima []int

	i := 1
	iMax := len(x) - 1
	for i < iMax {
		if x[i-1] < x[i] {
			// Skip over a possible plateau
			iAhead := i + 1
			for iAhead < iMax && x[iAhead] == x[i] {
				iAhead++
			}
			if x[iAhead] < x[i] {
				maxima = append(maxima, (i+iAhead-1)/2)
				i = iAhead
			}
		}
		i++
	}
	return maxima
}

// selectByDistance enforces a minimum sample separation between maxima,
// keeping higher maxima in preference to lower ones
func selectByDistance(indices []int, heights []float64, distance int) []bool {
	n := len(indices)
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}

	sorted := make([]float64, n)
	copy(sorted, heights)
	priority := make([]int, n)
	floats.Argsort(sorted, priority)

	// Highest maxima claim their neighborhood first
	for i := n - 1; i >= 0; i-- {
		j := priority[i]
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && indices[j]-indices[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < n && indices[k]-indices[j] < distance; k++ {
			keep[k] = false
		}
	}
	return keep
}

// peakProminences computes the prominence of each maximum together with its
// left and right bases: the minima between the maximum and the nearest
// higher sample (or signal border) on each side.
func peakProminences(x []float64, indices []int) (prominences []float64, leftBases, rightBases []int) {
	n := len(indices)
	prominences = make([]float64, n)
	leftBases = make([]int, n)
	rightBases = make([]int, n)

	for pi, p := range indices {
		leftMin, lb := x[p], p
		for i := p - 1; i >= 0 && x[i] <= x[p]; i-- {
			if x[i] < leftMin {
				leftMin, lb = x[i], i
			}
		}

		rightMin, rb := x[p], p
		for i := p + 1; i < len(x) && x[i] <= x[p]; i++ {
			if x[i] < rightMin {
				rightMin, rb = x[i], i
			}
		}

		prominences[pi] = x[p] - math.Max(leftMin, rightMin)
		leftBases[pi] = lb
		rightBases[pi] = rb
	}
	return prominences, leftBases, rightBases
}

// peakWidths measures each maximum's width in samples at half prominence,
// interpolating the crossing positions between samples. The search is bounded
// by the prominence bases.
func peakWidths(x []float64, indices []int, prominences []float64, leftBases, rightBases []int) []float64 {
	widths := make([]float64, len(indices))

	for pi, p := range indices {
		height := x[p] - prominences[pi]*0.5
		lb, rb := leftBases[pi], rightBases[pi]

		i := p
		for i > lb && x[i] > height {
			i--
		}
		leftIP := float64(i)
		if x[i] < height {
			leftIP += (height - x[i]) / (x[i+1] - x[i])
		}

		i = p
		for i < rb && x[i] > height {
			i++
		}
		rightIP := float64(i)
		if x[i] < height {
			rightIP -= (height - x[i]) / (x[i-1] - x[i])
		}

		widths[pi] = rightIP - leftIP
	}
	return widths
}

func valuesAt(x []float64, indices []int) []float64 {
	vals := make([]float64, len(indices))
	for i, idx := range indices {
		vals[i] = x[idx]
	}
	return vals
}

func filterIndices(indices []int, keep []bool) []int {
	filtered := indices[:0]
	for i, idx := range indices {
		if keep[i] {
			filtered = append(filtered, idx)
		}
	}
	return filtered
}

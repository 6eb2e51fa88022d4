package psth

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/neurotrace/photometry/algorithms/common"
)

// Params configures the peri-stimulus time histogram: the analysis window
// around each event in seconds (WindowPre is negative for time before the
// event) and the bin size
type Params struct {
	WindowPre  float64 `json:"window_pre" yaml:"window_pre"`
	WindowPost float64 `json:"window_post" yaml:"window_post"`
	BinSize    float64 `json:"bin_size" yaml:"bin_size"`
}

// DefaultParams returns a one-second symmetric window with 10 ms bins
func DefaultParams() Params {
	return Params{WindowPre: -1, WindowPost: 1, BinSize: 0.01}
}

// Result holds a computed histogram: the left edge of each bin (relative to
// the event) and the spike count per bin averaged over events
type Result struct {
	BinEdges []float64 `json:"bin_edges"`
	Rates    []float64 `json:"rates"`
}

// PSTH computes peri-stimulus time histograms: the distribution of spike
// times relative to a set of reference events
type PSTH struct {
	params Params
}

// New creates a PSTH calculator
func New(params Params) *PSTH {
	return &PSTH{params: params}
}

func (p *PSTH) validate() error {
	if p.params.BinSize <= 0 {
		return fmt.Errorf("bin size must be positive, got %f", p.params.BinSize)
	}
	if p.params.WindowPre >= p.params.WindowPost {
		return fmt.Errorf("window pre (%f) must be below window post (%f)",
			p.params.WindowPre, p.params.WindowPost)
	}
	return nil
}

// Compute builds the histogram of spikeTimes around eventTimes, normalized by
// the number of events
func (p *PSTH) Compute(spikeTimes, eventTimes []float64) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(eventTimes) == 0 {
		return nil, fmt.Errorf("no event times")
	}

	// A window narrower than a bin still gets one bin covering it
	numBins := max(int(math.Round((p.params.WindowPost-p.params.WindowPre)/p.params.BinSize)), 1)
	result := &Result{
		BinEdges: make([]float64, numBins),
		Rates:    make([]float64, numBins),
	}
	for i := range result.BinEdges {
		result.BinEdges[i] = p.params.WindowPre + float64(i)*p.params.BinSize
	}

	for _, event := range eventTimes {
		for _, spike := range spikeTimes {
			rel := spike - event
			if rel < p.params.WindowPre || rel > p.params.WindowPost {
				continue
			}
			bin := int((rel - p.params.WindowPre) / p.params.BinSize)
			// A spike exactly on the right window edge lands in the last bin
			if bin >= numBins {
				bin = numBins - 1
			}
			result.Rates[bin]++
		}
	}

	for i := range result.Rates {
		result.Rates[i] /= float64(len(eventTimes))
	}
	return result, nil
}

// MeanResult extends Result with the per-bin population std across trials
type MeanResult struct {
	Result
	Std []float64 `json:"std"`
}

// ComputeMean builds per-trial histograms and averages them. Trials assigns a
// trial number to each spike; a nil trials slice treats all spikes as one
// trial, yielding zero std.
func (p *PSTH) ComputeMean(spikeTimes, eventTimes []float64, trials []int) (*MeanResult, error) {
	if trials == nil {
		single, err := p.Compute(spikeTimes, eventTimes)
		if err != nil {
			return nil, err
		}
		return &MeanResult{
			Result: *single,
			Std:    make([]float64, len(single.Rates)),
		}, nil
	}
	if len(trials) != len(spikeTimes) {
		return nil, fmt.Errorf("trials length (%d) doesn't match spike times length (%d)",
			len(trials), len(spikeTimes))
	}

	byTrial := make(map[int][]float64)
	for i, trial := range trials {
		byTrial[trial] = append(byTrial[trial], spikeTimes[i])
	}

	var perTrial [][]float64
	var edges []float64
	for _, trial := range sortedKeys(byTrial) {
		hist, err := p.Compute(byTrial[trial], eventTimes)
		if err != nil {
			return nil, err
		}
		perTrial = append(perTrial, hist.Rates)
		edges = hist.BinEdges
	}

	numBins := len(edges)
	mean := &MeanResult{
		Result: Result{
			BinEdges: edges,
			Rates:    make([]float64, numBins),
		},
		Std: make([]float64, numBins),
	}

	column := make([]float64, len(perTrial))
	for b := range numBins {
		for t, rates := range perTrial {
			column[t] = rates[b]
		}
		mean.Rates[b] = stat.Mean(column, nil)
		mean.Std[b] = common.PopulationStd(column)
	}
	return mean, nil
}

func sortedKeys(m map[int][]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

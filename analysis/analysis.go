// Package analysis ties the photometry algorithms together: preprocessing of
// raw fluorescence traces, extremum detection, per-event shape metrics and
// inter-event statistics.
package analysis

import (
	"github.com/neurotrace/photometry/algorithms/events"
	"github.com/neurotrace/photometry/algorithms/preprocess"
	"github.com/neurotrace/photometry/logging"
)

// Result is the complete outcome of one analysis request. The metric and
// interval fields are nil when they are not computable (no events, or fewer
// than two of them); a nil metric set is distinct from a run that measured
// zero events.
type Result struct {
	Peaks   *events.ExtremumSet `json:"peaks"`
	Valleys *events.ExtremumSet `json:"valleys"`

	PeakMetrics   *events.PeakMetricSet   `json:"peak_metrics,omitempty"`
	ValleyMetrics *events.ValleyMetricSet `json:"valley_metrics,omitempty"`

	PeakIntervals   *events.IntervalStats `json:"peak_intervals,omitempty"`
	ValleyIntervals *events.IntervalStats `json:"valley_intervals,omitempty"`
}

// Analyzer runs the detection and metric chain over prepared signals, and
// optionally the preprocessing pipeline over raw ones
type Analyzer struct {
	config        Config
	detector      *events.ExtremumDetector
	peakMetrics   *events.PeakMetrics
	valleyMetrics *events.ValleyMetrics
	pipeline      *preprocess.Pipeline
	logger        logging.Logger
}

// NewAnalyzer creates an analyzer from the given configuration
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{
		config:        config,
		detector:      events.NewExtremumDetector(config.Detection),
		peakMetrics:   events.NewPeakMetrics(),
		valleyMetrics: events.NewValleyMetrics(),
		pipeline:      preprocess.NewPipeline(config.Pipeline),
		logger:        logging.GetGlobalLogger().WithFields(logging.Fields{"component": "analysis"}),
	}
}

// AnalyzeSignal detects peaks and valleys in an already-processed signal and
// computes their shape metrics and interval statistics. The signal and time
// axis are borrowed read-only; every field of the result is freshly
// allocated and owned by the caller.
func (a *Analyzer) AnalyzeSignal(signal, timeAxis []float64) (*Result, error) {
	peaks, valleys, err := a.detector.Detect(signal, timeAxis)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Peaks:           peaks,
		Valleys:         valleys,
		PeakMetrics:     a.peakMetrics.Compute(peaks, valleys, signal, timeAxis),
		ValleyMetrics:   a.valleyMetrics.Compute(peaks, valleys, signal, timeAxis),
		PeakIntervals:   events.ComputeIntervals(peaks.Times),
		ValleyIntervals: events.ComputeIntervals(valleys.Times),
	}

	a.logger.Debug("signal analyzed", logging.Fields{
		"samples": len(signal),
		"peaks":   peaks.Len(),
		"valleys": valleys.Len(),
	})
	return result, nil
}

// ProcessAndAnalyze runs the preprocessing pipeline on raw traces and then
// analyzes the resulting dF/F signal. The control channel is optional.
func (a *Analyzer) ProcessAndAnalyze(timeRaw, signalRaw, controlRaw []float64) (*preprocess.ProcessedSignal, *Result, error) {
	processed, err := a.pipeline.Process(timeRaw, signalRaw, controlRaw)
	if err != nil {
		return nil, nil, err
	}

	result, err := a.AnalyzeSignal(processed.DFF, processed.Time)
	if err != nil {
		return nil, nil, err
	}
	return processed, result, nil
}

package preprocess

import (
	"fmt"

	"github.com/neurotrace/photometry/algorithms/filters"
	"github.com/neurotrace/photometry/logging"
)

// PipelineParams configures the full preprocessing chain
type PipelineParams struct {
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`

	// Filtering
	FilterType  filters.BandType `json:"filter_type" yaml:"filter_type"`
	FilterOrder int              `json:"filter_order" yaml:"filter_order"`
	LowCutoff   float64          `json:"low_cutoff" yaml:"low_cutoff"`
	HighCutoff  float64          `json:"high_cutoff" yaml:"high_cutoff"`
	ZeroPhase   bool             `json:"zero_phase" yaml:"zero_phase"`

	// Whether the reported raw channels are the filtered ones or the
	// untouched input
	FilterRawSignals bool `json:"filter_raw_signals" yaml:"filter_raw_signals"`

	// Drift correction
	DriftCorrection bool `json:"drift_correction" yaml:"drift_correction"`
	DriftDegree     int  `json:"drift_degree" yaml:"drift_degree"`

	// Baseline percentile for dF/F
	DFFPercentile float64 `json:"dff_percentile" yaml:"dff_percentile"`

	// Artifact detection threshold in equivalent standard deviations
	ArtifactThreshold float64 `json:"artifact_threshold" yaml:"artifact_threshold"`

	// Output decimation
	DownsampleFactor int `json:"downsample_factor" yaml:"downsample_factor"`
}

// DefaultPipelineParams returns the conventional photometry settings
func DefaultPipelineParams(sampleRate float64) PipelineParams {
	return PipelineParams{
		SampleRate:        sampleRate,
		FilterType:        filters.Bandpass,
		FilterOrder:       2,
		LowCutoff:         0.001,
		HighCutoff:        5.0,
		ZeroPhase:         true,
		FilterRawSignals:  true,
		DriftCorrection:   true,
		DriftDegree:       2,
		DFFPercentile:     10,
		ArtifactThreshold: 3,
		DownsampleFactor:  1,
	}
}

// ProcessedSignal is the output of the preprocessing pipeline. All slices are
// decimated to the same length; RawControl, Drift and ArtifactMask are nil
// when the corresponding stage did not run.
type ProcessedSignal struct {
	Time         []float64 `json:"time"`
	DFF          []float64 `json:"dff"`
	RawSignal    []float64 `json:"raw_signal"`
	RawControl   []float64 `json:"raw_control"`
	Drift        []float64 `json:"drift"`
	ArtifactMask []bool    `json:"artifact_mask"`
}

// Pipeline runs the preprocessing chain: filter, motion correction against
// the control channel, polynomial drift correction, dF/F conversion, and
// decimation. Individual stages degrade gracefully on failure (logging a
// warning and passing their input through); only contract violations abort
// the whole run.
type Pipeline struct {
	params PipelineParams
	logger logging.Logger
}

// NewPipeline creates a pipeline with the given parameters, logging through
// the global logger
func NewPipeline(params PipelineParams) *Pipeline {
	return &Pipeline{
		params: params,
		logger: logging.GetGlobalLogger().WithFields(logging.Fields{"component": "preprocess"}),
	}
}

// Process runs the full chain. The control channel is optional; pass nil to
// skip motion correction and artifact detection.
func (p *Pipeline) Process(timeRaw, signalRaw, controlRaw []float64) (*ProcessedSignal, error) {
	if len(signalRaw) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if len(timeRaw) != len(signalRaw) {
		return nil, fmt.Errorf("time length (%d) doesn't match signal length (%d)",
			len(timeRaw), len(signalRaw))
	}
	if p.params.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %f", p.params.SampleRate)
	}
	if needsBothCutoffs(p.params.FilterType) && p.params.LowCutoff >= p.params.HighCutoff {
		return nil, fmt.Errorf("low cutoff %f must be below high cutoff %f",
			p.params.LowCutoff, p.params.HighCutoff)
	}
	if len(controlRaw) > 0 && len(controlRaw) != len(signalRaw) {
		return nil, fmt.Errorf("control length (%d) doesn't match signal length (%d)",
			len(controlRaw), len(signalRaw))
	}

	var artifactMask []bool
	if len(controlRaw) > 0 {
		artifactMask = DetectArtifacts(controlRaw, p.params.ArtifactThreshold)
	}

	signal, control := p.filterStage(signalRaw, controlRaw)

	// Motion correction
	corrected := signal
	if len(control) > 0 {
		corrected = CorrectMotion(signal, control)
	}

	// Drift correction
	detrended := corrected
	var drift []float64
	if p.params.DriftCorrection {
		var err error
		detrended, drift, err = CorrectDrift(corrected, p.params.DriftDegree)
		if err != nil {
			p.logger.Warn("drift correction skipped", logging.Fields{"reason": err.Error()})
			detrended, drift = corrected, nil
		}
	}

	dff := DeltaFOverF(detrended, p.params.DFFPercentile)

	// Report filtered or untouched raw channels, depending on configuration
	rawSignal, rawControl := signal, control
	if !p.params.FilterRawSignals {
		rawSignal, rawControl = signalRaw, controlRaw
	}

	factor := max(p.params.DownsampleFactor, 1)
	out := &ProcessedSignal{
		Time:      Downsample(timeRaw, factor),
		DFF:       Downsample(dff, factor),
		RawSignal: Downsample(rawSignal, factor),
	}
	if len(rawControl) > 0 {
		out.RawControl = Downsample(rawControl, factor)
	}
	if drift != nil {
		out.Drift = Downsample(drift, factor)
	}
	if artifactMask != nil {
		out.ArtifactMask = DownsampleMask(artifactMask, factor)
	}
	return out, nil
}

// filterStage applies the configured Butterworth filter to both channels.
// Filter construction failure degrades to the unfiltered input.
func (p *Pipeline) filterStage(signal, control []float64) ([]float64, []float64) {
	bw, err := filters.NewButterworth(filters.FilterParams{
		SampleRate: p.params.SampleRate,
		Order:      p.params.FilterOrder,
		Type:       p.params.FilterType,
		LowCutoff:  p.params.LowCutoff,
		HighCutoff: p.params.HighCutoff,
	})
	if err != nil {
		p.logger.Warn("filtering skipped", logging.Fields{"reason": err.Error()})
		return signal, control
	}

	apply := bw.Apply
	if p.params.ZeroPhase {
		apply = bw.ApplyZeroPhase
	}

	filtered := apply(signal)
	var filteredControl []float64
	if len(control) > 0 {
		filteredControl = apply(control)
	}
	return filtered, filteredControl
}

func needsBothCutoffs(t filters.BandType) bool {
	return t == filters.Bandpass || t == filters.Bandstop
}

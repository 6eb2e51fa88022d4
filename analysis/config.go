package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neurotrace/photometry/algorithms/events"
	"github.com/neurotrace/photometry/algorithms/preprocess"
)

// Config bundles the settings of a full analysis run
type Config struct {
	Detection events.DetectorParams     `json:"detection" yaml:"detection"`
	Pipeline  preprocess.PipelineParams `json:"pipeline" yaml:"pipeline"`
}

// DefaultConfig returns conventional settings for the given sampling rate
func DefaultConfig(sampleRate float64) Config {
	return Config{
		Detection: events.DetectorParams{
			Prominence: 1.0,
			SampleRate: sampleRate,
		},
		Pipeline: preprocess.DefaultPipelineParams(sampleRate),
	}
}

// LoadConfig reads a YAML configuration file, with defaults for any setting
// the file omits
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %v", path, err)
	}

	config := DefaultConfig(0)
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %v", path, err)
	}

	// A single sampling rate normally serves both stages; filling the
	// detector's from the pipeline's keeps configs short
	if config.Detection.SampleRate == 0 {
		config.Detection.SampleRate = config.Pipeline.SampleRate
	}
	return config, nil
}

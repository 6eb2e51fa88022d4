package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig(250)

	assert.Equal(t, 250.0, config.Detection.SampleRate)
	assert.Equal(t, 1.0, config.Detection.Prominence)
	assert.Equal(t, 250.0, config.Pipeline.SampleRate)
	assert.Equal(t, 5.0, config.Pipeline.HighCutoff)
	assert.True(t, config.Pipeline.ZeroPhase)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	content := []byte(`
detection:
  prominence: 2.5
pipeline:
  sample_rate: 250
  high_cutoff: 8.0
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, config.Detection.Prominence)
	assert.Equal(t, 8.0, config.Pipeline.HighCutoff)

	// Omitted settings keep their defaults, and the detector inherits the
	// pipeline's sampling rate
	assert.Equal(t, 0.001, config.Pipeline.LowCutoff)
	assert.Equal(t, 250.0, config.Detection.SampleRate)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

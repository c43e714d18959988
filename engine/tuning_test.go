package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirou/magiclens/engine"
)

func TestLoadTuningOverlayMissingFileIsNotError(t *testing.T) {
	o, err := engine.LoadTuningOverlay(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Nil(t, o.Weights)
	assert.Nil(t, o.Thresholds)
	assert.Len(t, o.Options(), 2)
}

func TestLoadTuningOverlayParsesPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	doc := `
thresholds:
  chi_squared_max: 40
  ngram_min: 0
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	o, err := engine.LoadTuningOverlay(path)
	require.NoError(t, err)
	assert.Nil(t, o.Weights)
	require.NotNil(t, o.Thresholds)
	assert.Equal(t, 40.0, o.Thresholds.ChiSquaredMax)
}

func TestLoadTuningOverlayInvalidYAMLIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights: [oops"), 0o644))

	_, err := engine.LoadTuningOverlay(path)
	assert.Error(t, err)
}

package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shirou/magiclens/scorekit"
)

// TuningOverlay is the on-disk shape of the optional weights/thresholds
// override document a host can hand to WithWeights/WithThresholds, letting
// operators retune the rank formula without a rebuild.
type TuningOverlay struct {
	Weights    *scorekit.Weights    `yaml:"weights"`
	Thresholds *scorekit.Thresholds `yaml:"thresholds"`
}

// LoadTuningOverlay reads path and returns the parsed overlay. A missing
// file returns a zero-value overlay and no error, so a host can unconditionally
// call this during startup and fall back to scorekit's defaults.
func LoadTuningOverlay(path string) (TuningOverlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return TuningOverlay{}, nil
		}
		return TuningOverlay{}, fmt.Errorf("read tuning overlay %s: %w", path, err)
	}
	var o TuningOverlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return TuningOverlay{}, fmt.Errorf("parse tuning overlay %s: %w", path, err)
	}
	return o, nil
}

// Options returns the Engine construction options implied by o, applying
// scorekit defaults for whichever half (weights or thresholds) o leaves nil.
func (o TuningOverlay) Options() []Option {
	weights := scorekit.DefaultWeights()
	if o.Weights != nil {
		weights = *o.Weights
	}
	thresholds := scorekit.DefaultThresholds()
	if o.Thresholds != nil {
		thresholds = *o.Thresholds
	}
	return []Option{WithWeights(weights), WithThresholds(thresholds)}
}

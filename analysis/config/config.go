// Package config holds plain configuration structs for the analysis pipeline.
package config

import "time"

// EstimatorMethod selects the frame-wise pitch estimation algorithm
type EstimatorMethod string

const (
	// MethodAutocorrelation is the time-domain autocorrelation estimator
	// with parabolic refinement (default)
	MethodAutocorrelation EstimatorMethod = "autocorrelation"

	// MethodHPS is the harmonic product spectrum estimator
	MethodHPS EstimatorMethod = "hps"
)

// AnalysisConfig configures one analysis pass over a clip
type AnalysisConfig struct {
	// Framing
	WindowSize int `json:"window_size"`
	HopSize    int `json:"hop_size"` // 0 means half the window

	// MaxDuration bounds whole-clip analysis to cap compute; samples past
	// the cap are ignored
	MaxDuration time.Duration `json:"max_duration"`

	Method EstimatorMethod `json:"method"`

	// TonicHz > 0 asserts the tonic manually; 0 requests automatic
	// detection from the observed pitch trace
	TonicHz float64 `json:"tonic_hz"`

	// MedianFilter smooths the voiced pitch trace with a centered median
	// window of this many frames; 0 disables smoothing
	MedianFilter int `json:"median_filter"`

	// Workers bounds frame-level parallelism; values below 2 run frames
	// sequentially
	Workers int `json:"workers"`
}

// DefaultAnalysisConfig returns defaults tuned for vocal clips
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		WindowSize:   2048,
		HopSize:      0, // half window
		MaxDuration:  45 * time.Second,
		Method:       MethodAutocorrelation,
		TonicHz:      0,
		MedianFilter: 0,
		Workers:      1,
	}
}

// EffectiveHop resolves the hop size, defaulting to half the window
func (c *AnalysisConfig) EffectiveHop() int {
	if c.HopSize > 0 {
		return c.HopSize
	}
	return c.WindowSize / 2
}

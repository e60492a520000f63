package pitch

import (
	"github.com/chintanpandya89/raagbodh/algorithms/common"
	"github.com/chintanpandya89/raagbodh/algorithms/spectral"
)

// HPSParams contains parameters for the harmonic product spectrum estimator
type HPSParams struct {
	SampleRate   int     `json:"sample_rate"`
	RMSFloor     float64 `json:"rms_floor"`
	MinFreq      float64 `json:"min_freq"`      // Hz, lower search bound
	MaxFreq      float64 `json:"max_freq"`      // Hz, upper search bound
	MaxHarmonics int     `json:"max_harmonics"` // harmonics folded into the product
	ZeroPadding  int     `json:"zero_padding"`  // FFT zero padding factor
}

// DefaultHPSParams returns defaults matching the plausible vocal range
func DefaultHPSParams(sampleRate int) HPSParams {
	return HPSParams{
		SampleRate:   sampleRate,
		RMSFloor:     0.01,
		MinFreq:      50.0,
		MaxFreq:      1000.0,
		MaxHarmonics: 5,
		ZeroPadding:  2,
	}
}

// HPSEstimator estimates fundamental frequency via the harmonic product
// spectrum. It is an alternative to the time-domain Estimator for material
// with strong harmonics and a weak fundamental.
//
// Reference: Schroeder, M.R. (1968). "Period histogram and product spectrum"
type HPSEstimator struct {
	params HPSParams
	fft    *spectral.FFT
}

// NewHPSEstimator creates an HPS estimator with default parameters
func NewHPSEstimator(sampleRate int) *HPSEstimator {
	return &HPSEstimator{
		params: DefaultHPSParams(sampleRate),
		fft:    spectral.NewFFT(),
	}
}

// NewHPSEstimatorWithParams creates an HPS estimator with custom parameters
func NewHPSEstimatorWithParams(params HPSParams) *HPSEstimator {
	return &HPSEstimator{
		params: params,
		fft:    spectral.NewFFT(),
	}
}

// EstimateFrequency returns the dominant fundamental frequency of one audio
// frame in Hz, or Unvoiced for silent frames.
func (h *HPSEstimator) EstimateFrequency(frame []float64) float64 {
	if common.RMS(frame) < h.params.RMSFloor {
		return Unvoiced
	}

	fftSize := len(frame)
	if h.params.ZeroPadding > 1 {
		fftSize = len(frame) * h.params.ZeroPadding
	}

	magnitude := h.fft.MagnitudeSpectrum(frame, fftSize)
	if len(magnitude) == 0 {
		return Unvoiced
	}

	hps := make([]float64, len(magnitude))
	copy(hps, magnitude)

	for harmonic := 2; harmonic <= h.params.MaxHarmonics; harmonic++ {
		for i := 0; i < len(hps)/harmonic; i++ {
			hps[i] *= magnitude[i*harmonic]
		}
	}

	binHz := float64(h.params.SampleRate) / float64(fftSize)
	minBin := int(h.params.MinFreq / binHz)
	maxBin := int(h.params.MaxFreq / binHz)
	if maxBin > len(hps) {
		maxBin = len(hps)
	}
	if minBin >= maxBin {
		return Unvoiced
	}

	maxIdx := minBin
	for i := minBin; i < maxBin; i++ {
		if hps[i] > hps[maxIdx] {
			maxIdx = i
		}
	}

	if hps[maxIdx] <= 0 {
		return Unvoiced
	}

	return common.ParabolicInterpolation(hps, maxIdx) * binHz
}

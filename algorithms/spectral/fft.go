package spectral

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality over mjibson/go-dsp
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the forward transform of a real signal.
// go-dsp handles all sizes efficiently, including non-power-of-2.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// ComputeInverse computes the inverse transform
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// MagnitudeSpectrum computes the single-sided magnitude spectrum of a real
// signal, optionally zero-padded to padLen samples (padLen <= len(x) means
// no padding).
func (f *FFT) MagnitudeSpectrum(x []float64, padLen int) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	buf := x
	if padLen > len(x) {
		buf = make([]float64, padLen)
		copy(buf, x)
	}

	spectrum := fft.FFTReal(buf)
	magnitude := make([]float64, len(spectrum)/2)
	for i := range magnitude {
		magnitude[i] = math.Sqrt(real(spectrum[i])*real(spectrum[i]) + imag(spectrum[i])*imag(spectrum[i]))
	}

	return magnitude
}

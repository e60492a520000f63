// Package pitch implements frame-wise fundamental frequency estimation for
// monophonic signals.
package pitch

import (
	"math"

	"github.com/chintanpandya89/raagbodh/algorithms/common"
)

// Unvoiced is the sentinel frequency returned for frames judged silent or
// too degenerate to carry a pitch.
const Unvoiced = -1.0

// EstimatorParams contains parameters for the autocorrelation estimator
type EstimatorParams struct {
	SampleRate int `json:"sample_rate"`

	// RMSFloor is the frame energy below which the frame is judged silent
	RMSFloor float64 `json:"rms_floor"`

	// TrimThreshold is the absolute amplitude used to trim leading and
	// trailing near-zero regions before correlating
	TrimThreshold float64 `json:"trim_threshold"`
}

// DefaultEstimatorParams returns sensible defaults for vocal and plucked
// string material
func DefaultEstimatorParams(sampleRate int) EstimatorParams {
	return EstimatorParams{
		SampleRate:    sampleRate,
		RMSFloor:      0.01,
		TrimThreshold: 0.2,
	}
}

// Estimator implements time-domain autocorrelation pitch estimation with
// parabolic sub-sample refinement.
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
// - Boersma, P. (1993). "Accurate short-term analysis of the fundamental frequency"
//
// The estimator is stateless and safe for concurrent use on disjoint frames.
type Estimator struct {
	params EstimatorParams
}

// NewEstimator creates an autocorrelation estimator with default parameters
func NewEstimator(sampleRate int) *Estimator {
	return &Estimator{params: DefaultEstimatorParams(sampleRate)}
}

// NewEstimatorWithParams creates an estimator with custom parameters
func NewEstimatorWithParams(params EstimatorParams) *Estimator {
	return &Estimator{params: params}
}

// Params returns the estimator parameters
func (e *Estimator) Params() EstimatorParams {
	return e.params
}

// EstimateFrequency returns the dominant fundamental frequency of one audio
// frame in Hz, or Unvoiced when the frame is silent or too short to
// correlate. Identical input always yields identical output.
func (e *Estimator) EstimateFrequency(frame []float64) float64 {
	if common.RMS(frame) < e.params.RMSFloor {
		return Unvoiced
	}

	buf := e.trim(frame)
	if len(buf) < 3 {
		return Unvoiced
	}

	c := autocorrelate(buf)

	// Skip the zero-lag lobe: advance while the correlation still falls.
	// The scan is bounded so a non-monotonic start cannot run off the end.
	d := 0
	for d < len(c)-1 && c[d] > c[d+1] {
		d++
	}
	if d >= len(c)-1 {
		return Unvoiced
	}

	maxpos := d
	for i := d; i < len(c); i++ {
		if c[i] > c[maxpos] {
			maxpos = i
		}
	}

	period := common.ParabolicInterpolation(c, maxpos)
	if period <= 0 {
		return Unvoiced
	}

	return float64(e.params.SampleRate) / period
}

// trim drops leading and trailing near-zero regions so the correlation only
// sees the sounding portion of the frame. The forward scan covers the first
// half, the backward scan the last half.
func (e *Estimator) trim(frame []float64) []float64 {
	n := len(frame)

	r1 := 0
	for i := 0; i < n/2; i++ {
		if math.Abs(frame[i]) > e.params.TrimThreshold {
			r1 = i
			break
		}
	}

	r2 := n - 1
	for i := 0; i < n/2; i++ {
		if math.Abs(frame[n-1-i]) > e.params.TrimThreshold {
			r2 = n - 1 - i
			break
		}
	}

	if r2 <= r1 {
		return nil
	}

	return frame[r1:r2]
}

// autocorrelate computes c[i] = sum_j buf[j]*buf[j+i] over valid j
func autocorrelate(buf []float64) []float64 {
	n := len(buf)
	c := make([]float64, n)

	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j+i < n; j++ {
			sum += buf[j] * buf[j+i]
		}
		c[i] = sum
	}

	return c
}

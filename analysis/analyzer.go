// Package analysis orchestrates the raga identification pipeline: framing,
// pitch estimation, tonic resolution, swara mapping, condensation and
// scoring. The data flow is strictly forward; every stage is a pure function
// over the previous stage's output.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/chintanpandya89/raagbodh/algorithms/common"
	"github.com/chintanpandya89/raagbodh/algorithms/notestream"
	"github.com/chintanpandya89/raagbodh/algorithms/pitch"
	"github.com/chintanpandya89/raagbodh/algorithms/swara"
	"github.com/chintanpandya89/raagbodh/algorithms/tonic"
	"github.com/chintanpandya89/raagbodh/analysis/config"
	"github.com/chintanpandya89/raagbodh/logging"
	"github.com/chintanpandya89/raagbodh/raga"
)

// Observation is one frame of the raw pitch trace. FrequencyHz is
// pitch.Unvoiced when the frame carried no discernible pitch.
type Observation struct {
	TimestampMs float64 `json:"timestamp_ms"`
	FrequencyHz float64 `json:"frequency_hz"`
}

// TonicSource records how the tonic used for swara mapping was obtained
type TonicSource string

const (
	TonicManual   TonicSource = "manual"
	TonicDetected TonicSource = "detected"
)

// Result is the outcome of one analysis pass
type Result struct {
	Tonic       tonic.Result              `json:"tonic"`
	TonicSource TonicSource               `json:"tonic_source"`
	Trace       []Observation             `json:"trace"`
	Notes       []notestream.DetectedNote `json:"notes"`
	Stats       []notestream.NoteStat     `json:"stats"`
	Scores      []raga.Score              `json:"scores"`

	// Trace quality measures
	VoicedRatio float64 `json:"voiced_ratio"`
	MeanPitchHz float64 `json:"mean_pitch_hz"`
}

// frameEstimator is the per-frame contract both estimators satisfy
type frameEstimator interface {
	EstimateFrequency(frame []float64) float64
}

// Analyzer runs the full pipeline over raw samples. A nil corpus skips
// scoring and returns the note stream and statistics only.
type Analyzer struct {
	cfg    *config.AnalysisConfig
	scorer *raga.Scorer
	logger logging.Logger
}

// NewAnalyzer creates an analyzer. Passing nil config uses defaults.
func NewAnalyzer(cfg *config.AnalysisConfig, corpus *raga.Corpus) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}

	var scorer *raga.Scorer
	if corpus != nil {
		scorer = raga.NewScorer(corpus)
	}

	return &Analyzer{
		cfg:    cfg,
		scorer: scorer,
		logger: logging.WithFields(logging.Fields{"component": "analyzer"}),
	}
}

// Analyze runs one full pass over a clip. Samples are expected in [-1, 1].
// The clip is truncated to the configured maximum duration before framing.
func (a *Analyzer) Analyze(ctx context.Context, samples []float64, sampleRate int) (*Result, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	estimator, err := a.newEstimator(sampleRate)
	if err != nil {
		return nil, err
	}

	samples = a.capSamples(samples, sampleRate)

	trace, err := a.estimateTrace(ctx, estimator, samples, sampleRate)
	if err != nil {
		return nil, err
	}

	if a.cfg.MedianFilter > 1 {
		trace = smoothTrace(trace, a.cfg.MedianFilter)
	}

	result := &Result{Trace: trace}
	result.Tonic, result.TonicSource = a.resolveTonic(trace)

	mapped := make([]notestream.TimedSwara, len(trace))
	for i, obs := range trace {
		mapped[i] = notestream.TimedSwara{
			TimestampMs: obs.TimestampMs,
			Swara:       swara.FromFrequency(obs.FrequencyHz, result.Tonic.Frequency),
		}
	}

	result.Notes, result.Stats = notestream.Condense(mapped)
	if a.scorer != nil {
		result.Scores = a.scorer.Rank(result.Stats, result.Notes)
	}

	result.VoicedRatio, result.MeanPitchHz = traceQuality(trace)

	a.logger.Info("analysis complete", logging.Fields{
		"frames":       len(trace),
		"notes":        len(result.Notes),
		"tonic":        result.Tonic.Name,
		"tonic_source": result.TonicSource,
		"voiced_ratio": result.VoicedRatio,
	})

	return result, nil
}

func (a *Analyzer) newEstimator(sampleRate int) (frameEstimator, error) {
	switch a.cfg.Method {
	case config.MethodAutocorrelation, "":
		return pitch.NewEstimator(sampleRate), nil
	case config.MethodHPS:
		return pitch.NewHPSEstimator(sampleRate), nil
	default:
		return nil, fmt.Errorf("unsupported estimator method %q", a.cfg.Method)
	}
}

func (a *Analyzer) capSamples(samples []float64, sampleRate int) []float64 {
	maxSamples := int(a.cfg.MaxDuration.Seconds() * float64(sampleRate))
	if maxSamples > 0 && len(samples) > maxSamples {
		a.logger.Debug("truncating clip to analysis cap", logging.Fields{
			"max_duration": a.cfg.MaxDuration,
			"dropped":      len(samples) - maxSamples,
		})
		return samples[:maxSamples]
	}
	return samples
}

// estimateTrace hops the clip into frames and estimates each one. Frames
// are independent, so with more than one worker they are estimated
// concurrently and reassembled in timestamp order.
func (a *Analyzer) estimateTrace(ctx context.Context, estimator frameEstimator, samples []float64, sampleRate int) ([]Observation, error) {
	window := a.cfg.WindowSize
	hop := a.cfg.EffectiveHop()
	if window <= 0 || hop <= 0 {
		return nil, fmt.Errorf("invalid framing: window %d hop %d", window, hop)
	}

	starts := frameStarts(len(samples), window, hop)
	trace := make([]Observation, len(starts))

	msPerSample := 1000.0 / float64(sampleRate)

	estimateAt := func(i int) {
		start := starts[i]
		end := start + window
		if end > len(samples) {
			end = len(samples)
		}
		trace[i] = Observation{
			TimestampMs: float64(start) * msPerSample,
			FrequencyHz: estimator.EstimateFrequency(samples[start:end]),
		}
	}

	if a.cfg.Workers < 2 {
		for i := range starts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			estimateAt(i)
		}
		return trace, nil
	}

	var wg sync.WaitGroup
	indices := make(chan int)

	for w := 0; w < a.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				estimateAt(i)
			}
		}()
	}

	var ctxErr error
feed:
	for i := range starts {
		select {
		case indices <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	return trace, nil
}

// frameStarts returns the starting sample index of every analysis frame.
// A clip shorter than one window is analyzed as a single frame.
func frameStarts(totalSamples, window, hop int) []int {
	if totalSamples == 0 {
		return nil
	}
	if totalSamples <= window {
		return []int{0}
	}

	numFrames := (totalSamples-window)/hop + 1
	starts := make([]int, numFrames)
	for i := range starts {
		starts[i] = i * hop
	}
	return starts
}

func (a *Analyzer) resolveTonic(trace []Observation) (tonic.Result, TonicSource) {
	if a.cfg.TonicHz > 0 {
		return tonic.Result{Name: "manual", Frequency: a.cfg.TonicHz}, TonicManual
	}

	frequencies := make([]float64, len(trace))
	for i, obs := range trace {
		frequencies[i] = obs.FrequencyHz
	}

	return tonic.Detect(frequencies), TonicDetected
}

// smoothTrace replaces each voiced observation with the median of the
// voiced observations in a centered window around it. Unvoiced frames pass
// through unchanged so note boundaries survive smoothing.
func smoothTrace(trace []Observation, windowFrames int) []Observation {
	smoothed := make([]Observation, len(trace))
	copy(smoothed, trace)

	half := windowFrames / 2
	for i, obs := range trace {
		if obs.FrequencyHz == pitch.Unvoiced {
			continue
		}

		lo := max(i-half, 0)
		hi := min(i+half+1, len(trace))

		voiced := make([]float64, 0, hi-lo)
		for _, neighbor := range trace[lo:hi] {
			if neighbor.FrequencyHz != pitch.Unvoiced {
				voiced = append(voiced, neighbor.FrequencyHz)
			}
		}

		if len(voiced) >= 3 {
			smoothed[i].FrequencyHz = common.Median(voiced)
		}
	}

	return smoothed
}

func traceQuality(trace []Observation) (voicedRatio, meanPitch float64) {
	if len(trace) == 0 {
		return 0, 0
	}

	voiced := make([]float64, 0, len(trace))
	for _, obs := range trace {
		if obs.FrequencyHz != pitch.Unvoiced {
			voiced = append(voiced, obs.FrequencyHz)
		}
	}

	if len(voiced) == 0 {
		return 0, 0
	}

	return float64(len(voiced)) / float64(len(trace)), common.Mean(voiced)
}

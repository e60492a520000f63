// Package notestream condenses a dense per-frame swara trace into a sparse,
// denoised note stream with durations and per-swara statistics.
package notestream

import (
	"github.com/chintanpandya89/raagbodh/algorithms/common"
	"github.com/chintanpandya89/raagbodh/algorithms/swara"
)

const (
	// MinTrailingDurationMs floors the duration of the final run, which
	// otherwise has no following frame to measure against
	MinTrailingDurationMs = 50.0

	// MinNoteDurationMs is the retention threshold: shorter notes are
	// treated as single-frame pitch glitches and dropped
	MinNoteDurationMs = 40.0
)

// TimedSwara is one frame of the swara trace: a scale degree observed at a
// point in time
type TimedSwara struct {
	TimestampMs float64     `json:"timestamp_ms"`
	Swara       swara.Swara `json:"swara"`
}

// DetectedNote is one continuous sounding of a swara
type DetectedNote struct {
	Note        swara.Swara `json:"note"`
	TimestampMs float64     `json:"timestamp_ms"`
	DurationMs  float64     `json:"duration_ms"`
}

// NoteStat aggregates the total sounding time of one swara over a clip
type NoteStat struct {
	Note               swara.Swara `json:"note"`
	TotalDurationMs    float64     `json:"total_duration_ms"`
	NormalizedDuration float64     `json:"normalized_duration"`
}

// Condense run-length-encodes consecutive identical swaras into notes,
// floors the trailing note duration, drops notes at or below the retention
// threshold, and accumulates duration statistics for all 12 swaras.
//
// The trace must be ordered by timestamp: condensation depends on temporal
// adjacency. Silence runs (swara.None) produce no note and simply end the
// preceding run. An empty trace yields an empty stream and all-zero stats.
func Condense(trace []TimedSwara) ([]DetectedNote, []NoteStat) {
	notes := condenseRuns(trace)
	return notes, accumulateStats(notes)
}

func condenseRuns(trace []TimedSwara) []DetectedNote {
	notes := make([]DetectedNote, 0, len(trace)/4+1)
	if len(trace) == 0 {
		return notes
	}

	runStart := trace[0]
	flush := func(endMs float64, trailing bool) {
		duration := endMs - runStart.TimestampMs
		if trailing && duration < MinTrailingDurationMs {
			duration = MinTrailingDurationMs
		}
		if runStart.Swara != swara.None && duration > MinNoteDurationMs {
			notes = append(notes, DetectedNote{
				Note:        runStart.Swara,
				TimestampMs: runStart.TimestampMs,
				DurationMs:  duration,
			})
		}
	}

	for _, obs := range trace[1:] {
		if obs.Swara == runStart.Swara {
			continue
		}
		flush(obs.TimestampMs, false)
		runStart = obs
	}
	flush(trace[len(trace)-1].TimestampMs, true)

	return notes
}

func accumulateStats(notes []DetectedNote) []NoteStat {
	totals := make([]float64, swara.NumSwaras)
	for _, note := range notes {
		totals[note.Note] += note.DurationMs
	}

	grandTotal := common.Sum(totals)

	stats := make([]NoteStat, swara.NumSwaras)
	for i := range stats {
		stats[i] = NoteStat{Note: swara.Swara(i), TotalDurationMs: totals[i]}
		if grandTotal > 0 {
			stats[i].NormalizedDuration = totals[i] / grandTotal
		}
	}

	return stats
}

// Labels renders a note stream as its ordered swara token sequence
func Labels(notes []DetectedNote) []swara.Swara {
	labels := make([]swara.Swara, len(notes))
	for i, note := range notes {
		labels[i] = note.Note
	}
	return labels
}

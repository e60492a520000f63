// Package tonic infers the tonic (Sa) of a performance from raw pitch
// observations using a 12-bin chroma histogram.
package tonic

import (
	"math"

	"github.com/chintanpandya89/raagbodh/algorithms/swara"
)

// ReferenceHz is the fixed chroma reference pitch (middle C)
const ReferenceHz = 261.63

// Observations outside this range are discarded as noise or octave artifacts
const (
	MinPlausibleHz = 50.0
	MaxPlausibleHz = 1000.0
)

// Candidate is one entry of the fixed pitch-class table the detector
// selects from
type Candidate struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"` // Hz, fourth octave
}

// candidates is ordered by chroma index starting at the reference pitch class
var candidates = []Candidate{
	{"C", 261.63},
	{"C#", 277.18},
	{"D", 293.66},
	{"D#", 311.13},
	{"E", 329.63},
	{"F", 349.23},
	{"F#", 369.99},
	{"G", 392.00},
	{"G#", 415.30},
	{"A", 440.00},
	{"A#", 466.16},
	{"B", 493.88},
}

// Result contains the detected tonic and the histogram it was chosen from
type Result struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
	Histogram [12]int `json:"histogram"`
}

// Detect builds a chroma histogram over all plausible observations and
// returns the pitch class with the greatest count. Octave information is
// discarded, so a voice singing Sa at 523 Hz and at 261 Hz votes for the
// same bin. With no plausible observations the detector falls back to the
// first table entry (C).
//
// Ties keep the first-encountered bin: the comparison is strict-greater.
func Detect(frequencies []float64) Result {
	var histogram [12]int

	for _, freq := range frequencies {
		if freq <= MinPlausibleHz || freq >= MaxPlausibleHz {
			continue
		}

		semitones := 12.0 * math.Log2(freq/ReferenceHz)
		idx := ((int(math.Round(semitones)) % swara.NumSwaras) + swara.NumSwaras) % swara.NumSwaras
		histogram[idx]++
	}

	best := 0
	for i, count := range histogram {
		if count > histogram[best] {
			best = i
		}
	}

	return Result{
		Name:      candidates[best].Name,
		Frequency: candidates[best].Frequency,
		Histogram: histogram,
	}
}

// Candidates returns the fixed pitch-class table, in chroma order
func Candidates() []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	return out
}

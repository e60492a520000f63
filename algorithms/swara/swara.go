// Package swara maps frequencies to Hindustani scale degrees relative to a tonic.
package swara

import (
	"fmt"
	"math"
)

// Swara represents one of the 12 scale degrees of the Hindustani solfège
// system (0=Sa, 1=re, ..., 11=Ni), measured relative to a tonic. The komal
// (flat) variants use lowercase names, shuddha/teevra use capitalized names.
type Swara int

const (
	Sa Swara = iota
	KomalRe
	Re
	KomalGa
	Ga
	ShuddhaMa
	TeevraMa
	Pa
	KomalDha
	Dha
	KomalNi
	Ni

	// None marks an unvoiced or silent frame that carries no scale degree
	None Swara = -1
)

// NumSwaras is the size of the chromatic swara cycle
const NumSwaras = 12

// NoneLabel is the textual token for None
const NoneLabel = "-"

var swaraNames = []string{"Sa", "re", "Re", "ga", "Ga", "ma", "Ma", "Pa", "dha", "Dha", "ni", "Ni"}

// Unvoiced is the sentinel frequency reported for frames with no discernible pitch
const Unvoiced = -1.0

func (s Swara) String() string {
	if s < 0 || int(s) >= len(swaraNames) {
		return NoneLabel
	}
	return swaraNames[s]
}

// Valid reports whether s is one of the 12 scale degrees (None is not valid)
func (s Swara) Valid() bool {
	return s >= 0 && int(s) < NumSwaras
}

// Parse converts a swara label back to its Swara value. The None token "-"
// parses to None; any other unknown label is an error.
func Parse(label string) (Swara, error) {
	if label == NoneLabel {
		return None, nil
	}
	for i, name := range swaraNames {
		if name == label {
			return Swara(i), nil
		}
	}
	return None, fmt.Errorf("unknown swara label %q", label)
}

// FromFrequency maps a frequency to the swara closest to it relative to the
// given tonic. Octave information is discarded: the interval in semitones is
// rounded and reduced modulo 12 with a non-negative result, so frequencies
// below the tonic map correctly. The Unvoiced sentinel maps to None.
func FromFrequency(frequencyHz, tonicHz float64) Swara {
	if frequencyHz == Unvoiced || frequencyHz <= 0 || tonicHz <= 0 {
		return None
	}

	semitones := 12.0 * math.Log2(frequencyHz/tonicHz)
	idx := ((int(math.Round(semitones)) % NumSwaras) + NumSwaras) % NumSwaras

	return Swara(idx)
}

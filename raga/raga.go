// Package raga defines the reference raga corpus consumed by the scorer and
// the scoring engine that ranks ragas against observed note evidence.
package raga

import (
	"encoding/json"
	"fmt"

	"github.com/chintanpandya89/raagbodh/algorithms/swara"
)

// Definition is one reference raga. The corpus is externally supplied and
// read-only: the scorer never mutates it.
type Definition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Thaat    string `json:"thaat"`
	Aaroh    []swara.Swara
	Avaroh   []swara.Swara
	Vaadi    swara.Swara
	Samvaadi swara.Swara

	// Pakad holds one or more alternative renderings of the identifying
	// phrase; Phrases holds additional characteristic phrases
	Pakad   [][]swara.Swara
	Phrases [][]swara.Swara

	IdentifyingFeature string `json:"identifying_feature,omitempty"`
}

// definitionJSON is the wire form of a Definition: swaras as labels, pakad
// as either a single sequence or a list of alternatives
type definitionJSON struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Thaat              string          `json:"thaat"`
	Aaroh              []string        `json:"aaroh"`
	Avaroh             []string        `json:"avaroh"`
	Vaadi              string          `json:"vaadi"`
	Samvaadi           string          `json:"samvaadi"`
	Pakad              json.RawMessage `json:"pakad"`
	Phrases            [][]string      `json:"phrases,omitempty"`
	IdentifyingFeature string          `json:"identifying_feature,omitempty"`
}

// UnmarshalJSON decodes a Definition from its wire form, parsing swara
// labels and normalizing pakad to a list of alternatives
func (d *Definition) UnmarshalJSON(data []byte) error {
	var raw definitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.ID = raw.ID
	d.Name = raw.Name
	d.Thaat = raw.Thaat
	d.IdentifyingFeature = raw.IdentifyingFeature

	var err error
	if d.Aaroh, err = parseSequence(raw.Aaroh); err != nil {
		return fmt.Errorf("raga %q: aaroh: %v", raw.Name, err)
	}
	if d.Avaroh, err = parseSequence(raw.Avaroh); err != nil {
		return fmt.Errorf("raga %q: avaroh: %v", raw.Name, err)
	}
	if d.Vaadi, err = swara.Parse(raw.Vaadi); err != nil {
		return fmt.Errorf("raga %q: vaadi: %v", raw.Name, err)
	}
	if d.Samvaadi, err = swara.Parse(raw.Samvaadi); err != nil {
		return fmt.Errorf("raga %q: samvaadi: %v", raw.Name, err)
	}

	if d.Pakad, err = parsePakad(raw.Pakad); err != nil {
		return fmt.Errorf("raga %q: pakad: %v", raw.Name, err)
	}

	d.Phrases = nil
	for i, phrase := range raw.Phrases {
		parsed, err := parseSequence(phrase)
		if err != nil {
			return fmt.Errorf("raga %q: phrase %d: %v", raw.Name, i, err)
		}
		d.Phrases = append(d.Phrases, parsed)
	}

	return nil
}

// parsePakad accepts either a single label sequence or a list of
// alternative sequences
func parsePakad(raw json.RawMessage) ([][]swara.Swara, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var alternatives [][]string
	if err := json.Unmarshal(raw, &alternatives); err != nil {
		var single []string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("expected a label sequence or list of sequences")
		}
		alternatives = [][]string{single}
	}

	out := make([][]swara.Swara, 0, len(alternatives))
	for _, alt := range alternatives {
		parsed, err := parseSequence(alt)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}

	return out, nil
}

func parseSequence(labels []string) ([]swara.Swara, error) {
	seq := make([]swara.Swara, 0, len(labels))
	for _, label := range labels {
		s, err := swara.Parse(label)
		if err != nil {
			return nil, err
		}
		if !s.Valid() {
			return nil, fmt.Errorf("label %q is not a scale degree", label)
		}
		seq = append(seq, s)
	}
	return seq, nil
}

// Corpus is a validated, ordered collection of raga definitions. Order is
// significant: score ties preserve corpus order.
type Corpus struct {
	defs []Definition
}

// LoadCorpus validates externally supplied definitions and builds a corpus.
// A definition missing required fields is a configuration error surfaced
// here, not inside the scoring algorithm.
func LoadCorpus(defs []Definition) (*Corpus, error) {
	for i, def := range defs {
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("corpus entry %d: %w", i, err)
		}
	}

	out := make([]Definition, len(defs))
	copy(out, defs)

	return &Corpus{defs: out}, nil
}

// DecodeCorpus decodes a JSON array of definitions and validates it
func DecodeCorpus(data []byte) (*Corpus, error) {
	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decoding raga corpus: %w", err)
	}
	return LoadCorpus(defs)
}

func validate(def Definition) error {
	switch {
	case def.Name == "":
		return fmt.Errorf("raga has no name")
	case len(def.Aaroh) == 0:
		return fmt.Errorf("raga %q has no aaroh", def.Name)
	case len(def.Avaroh) == 0:
		return fmt.Errorf("raga %q has no avaroh", def.Name)
	case !def.Vaadi.Valid():
		return fmt.Errorf("raga %q has no vaadi", def.Name)
	case !def.Samvaadi.Valid():
		return fmt.Errorf("raga %q has no samvaadi", def.Name)
	case len(def.Pakad) == 0:
		return fmt.Errorf("raga %q has no pakad", def.Name)
	}

	for _, alt := range def.Pakad {
		if len(alt) == 0 {
			return fmt.Errorf("raga %q has an empty pakad alternative", def.Name)
		}
	}

	return nil
}

// Definitions returns the corpus entries in order
func (c *Corpus) Definitions() []Definition {
	return c.defs
}

// Len returns the number of definitions in the corpus
func (c *Corpus) Len() int {
	return len(c.defs)
}

package raga

import (
	"sort"

	"github.com/chintanpandya89/raagbodh/algorithms/notestream"
	"github.com/chintanpandya89/raagbodh/algorithms/swara"
	"github.com/chintanpandya89/raagbodh/logging"
)

// Scoring weights. Scores are unbounded on both sides: a strongly
// out-of-scale performance can rank below zero.
const (
	vaadiWeight       = 10.0
	samvaadiWeight    = 10.0
	phraseWeight      = 20.0
	presentNoteWeight = 2.0
	forbiddenPenalty  = 5.0

	// significantPresence is the normalized-duration threshold above which
	// a swara counts as evidence for or against a raga
	significantPresence = 0.05

	// dominantCount is the tolerance band for vaadi/samvaadi matching:
	// the true vaadi is expected among the top soundings but need not be
	// exactly first
	dominantCount = 3
)

// MatchDetails records the per-criterion evidence behind a score
type MatchDetails struct {
	VaadiMatch       bool    `json:"vaadi_match"`
	SamvaadiMatch    bool    `json:"samvaadi_match"`
	PhraseMatches    int     `json:"phrase_matches"`
	NoteOverlapScore float64 `json:"note_overlap_score"` // may be negative
}

// Score is one ranked candidate raga
type Score struct {
	RagaID   string       `json:"raga_id"`
	RagaName string       `json:"raga_name"`
	Score    float64      `json:"score"`
	Details  MatchDetails `json:"details"`
}

// Scorer ranks a corpus of raga definitions against observed note evidence.
// It is stateless and safe for concurrent use.
type Scorer struct {
	corpus *Corpus
	logger logging.Logger
}

// NewScorer creates a scorer over a validated corpus
func NewScorer(corpus *Corpus) *Scorer {
	return &Scorer{
		corpus: corpus,
		logger: logging.WithFields(logging.Fields{"component": "raga_scorer"}),
	}
}

// Rank scores every raga in the corpus against the observed statistics and
// note stream, and returns the candidates sorted by descending score.
// The sort is stable: exact ties preserve corpus order.
func (s *Scorer) Rank(stats []notestream.NoteStat, notes []notestream.DetectedNote) []Score {
	dominant := dominantNotes(stats)
	observed := notestream.Labels(notes)

	scores := make([]Score, 0, s.corpus.Len())
	for _, def := range s.corpus.Definitions() {
		scores = append(scores, s.scoreOne(def, stats, dominant, observed))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > 0 {
		s.logger.Debug("ranked raga candidates", logging.Fields{
			"corpus_size": s.corpus.Len(),
			"best":        scores[0].RagaName,
			"best_score":  scores[0].Score,
		})
	}

	return scores
}

func (s *Scorer) scoreOne(def Definition, stats []notestream.NoteStat, dominant []swara.Swara, observed []swara.Swara) Score {
	var details MatchDetails
	score := 0.0

	if containsSwara(dominant, def.Vaadi) {
		details.VaadiMatch = true
		score += vaadiWeight
	}
	if containsSwara(dominant, def.Samvaadi) {
		details.SamvaadiMatch = true
		score += samvaadiWeight
	}

	details.NoteOverlapScore = noteOverlap(stats, scaleUnion(def))
	score += details.NoteOverlapScore

	for _, pattern := range phrasePatterns(def) {
		if containsPhrase(observed, pattern) {
			details.PhraseMatches++
			score += phraseWeight
		}
	}

	return Score{
		RagaID:   def.ID,
		RagaName: def.Name,
		Score:    score,
		Details:  details,
	}
}

// dominantNotes returns the top soundings by total duration. The sort is
// stable so equal durations keep swara table order.
func dominantNotes(stats []notestream.NoteStat) []swara.Swara {
	sorted := make([]notestream.NoteStat, len(stats))
	copy(sorted, stats)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalDurationMs > sorted[j].TotalDurationMs
	})

	n := dominantCount
	if n > len(sorted) {
		n = len(sorted)
	}

	dominant := make([]swara.Swara, 0, n)
	for _, stat := range sorted[:n] {
		dominant = append(dominant, stat.Note)
	}

	return dominant
}

// noteOverlap rewards significantly present swaras inside the raga's scale
// and penalizes those outside it. A significantly present note outside the
// aaroh/avaroh union is strong negative evidence.
func noteOverlap(stats []notestream.NoteStat, scale map[swara.Swara]bool) float64 {
	present := 0.0
	forbidden := 0.0

	for _, stat := range stats {
		if stat.NormalizedDuration <= significantPresence {
			continue
		}
		if scale[stat.Note] {
			present += presentNoteWeight
		} else {
			forbidden += forbiddenPenalty
		}
	}

	return present - forbidden
}

func scaleUnion(def Definition) map[swara.Swara]bool {
	scale := make(map[swara.Swara]bool, len(def.Aaroh)+len(def.Avaroh))
	for _, s := range def.Aaroh {
		scale[s] = true
	}
	for _, s := range def.Avaroh {
		scale[s] = true
	}
	return scale
}

// phrasePatterns flattens the pakad alternatives and any additional
// phrases into one candidate list
func phrasePatterns(def Definition) [][]swara.Swara {
	patterns := make([][]swara.Swara, 0, len(def.Pakad)+len(def.Phrases))
	patterns = append(patterns, def.Pakad...)
	patterns = append(patterns, def.Phrases...)
	return patterns
}

// containsPhrase reports whether pattern occurs contiguously within
// observed. Matching is an exact substring test, not a gapped subsequence.
func containsPhrase(observed, pattern []swara.Swara) bool {
	if len(pattern) == 0 || len(pattern) > len(observed) {
		return false
	}

outer:
	for i := 0; i+len(pattern) <= len(observed); i++ {
		for j, p := range pattern {
			if observed[i+j] != p {
				continue outer
			}
		}
		return true
	}

	return false
}

func containsSwara(set []swara.Swara, target swara.Swara) bool {
	for _, s := range set {
		if s == target {
			return true
		}
	}
	return false
}

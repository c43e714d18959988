package scorekit

import "math"

// Weights are the coefficients w1..w6 in the aggregate rank formula: each
// scales one term of Score before they're summed into a single ordering
// value. Named as constants, not computed, so a host can retune the
// formula without touching Rank itself.
type Weights struct {
	ChiSquared        float64 `yaml:"chi_squared"`        // w1
	PrintableFraction float64 `yaml:"printable_fraction"` // w2
	NgramScore        float64 `yaml:"ngram_score"`        // w3
	EntropyDeviation  float64 `yaml:"entropy_deviation"`  // w4
	MatchesTarget     float64 `yaml:"matches_target"`     // w5
	ValidUTF8         float64 `yaml:"valid_utf8"`         // w6
}

// DefaultWeights returns the engine's default rank weights.
func DefaultWeights() Weights {
	return Weights{
		ChiSquared:        1.0,
		PrintableFraction: 40.0,
		NgramScore:        2.0,
		EntropyDeviation:  3.0,
		MatchesTarget:     10000.0,
		ValidUTF8:         10.0,
	}
}

// Thresholds are the Tχ / Tn constants used by the Interesting predicate.
type Thresholds struct {
	ChiSquaredMax float64 `yaml:"chi_squared_max"` // Tχ
	NgramMin      float64 `yaml:"ngram_min"`       // Tn
}

// DefaultThresholds returns the engine's default interesting-ness
// thresholds. NgramMin is 0 rather than a positive cutoff: a short decode
// with no recognized bigram/trigram should still read as interesting once
// it clears the chi-squared and printable gates, so those two stay the
// discriminating tests while the n-gram term only pulls rank for buffers
// that do carry recognizable English structure.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ChiSquaredMax: 35.0,
		NgramMin:      0.0,
	}
}

// idealEntropy is the center of the |entropy - 4.5| deviation term: roughly
// the entropy of printable English prose, which sits well below the 8
// bits/byte of uniform random bytes but above low-entropy degenerate data.
const idealEntropy = 4.5

// Rank computes the aggregate rank scalar for s: lower means more
// interesting. NaN components propagate to NaN, which callers must sort
// last (see engine tie-breaking).
func Rank(s Score, w Weights) float64 {
	rank := w.ChiSquared*s.ChiSquaredEnglish -
		w.PrintableFraction*s.PrintableFraction -
		w.NgramScore*s.NgramScore +
		w.EntropyDeviation*math.Abs(s.Entropy-idealEntropy)

	if s.MatchesTarget {
		rank -= w.MatchesTarget
	}
	if s.ValidUTF8 {
		rank -= w.ValidUTF8
	}
	return rank
}

// Interesting reports whether s is worth surfacing to a caller: a crib
// match always wins; otherwise the buffer must be valid, mostly printable
// UTF-8 text with English-like statistics.
func Interesting(s Score, t Thresholds) bool {
	if s.MatchesTarget {
		return true
	}
	return s.ValidUTF8 &&
		s.PrintableFraction >= 0.9 &&
		s.ChiSquaredEnglish <= t.ChiSquaredMax &&
		s.NgramScore >= t.NgramMin
}

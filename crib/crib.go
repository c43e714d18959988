// Package crib holds the natural-language scoring resources shared by the
// Magic Analyzer's heuristics: an English byte-frequency table, a small
// bigram/trigram log-probability table, a common-word list, and the
// caller-supplied "target" regex a crib can match against.
package crib

import (
	"strings"

	"github.com/coregx/coregex"
)

// Crib bundles the natural-language reference data used by scorekit and the
// engine's "interesting" verdict. Engine.Analyze builds one per call (the
// target regex is part of the per-call Config) and treats it as read-only
// thereafter.
type Crib struct {
	// LetterFreq holds 26 case-folded English letter frequencies (A-Z),
	// summing to 1, used by scorekit.ChiSquaredEnglish.
	LetterFreq [26]float64

	// Bigrams and Trigrams map upper-cased n-grams to a log-likelihood
	// score; higher (less negative) means more commonly seen in English.
	Bigrams  map[string]float64
	Trigrams map[string]float64

	// CommonWords is a short list of frequent English words, consulted by
	// ngram scoring as a light top-up signal.
	CommonWords map[string]struct{}

	// Target is the caller-supplied crib_regex, compiled once by New. Nil
	// when the caller did not supply one.
	Target *coregex.Regex
}

// New builds the default Crib: the fixed English reference tables plus an
// optional compiled target regex. An empty targetRegex means "no crib".
func New(targetRegex string) (*Crib, error) {
	c := &Crib{
		LetterFreq:  englishLetterFreq,
		Bigrams:     englishBigrams,
		Trigrams:    englishTrigrams,
		CommonWords: commonWords,
	}
	if targetRegex != "" {
		re, err := coregex.Compile(targetRegex)
		if err != nil {
			return nil, err
		}
		c.Target = re
	}
	return c, nil
}

// MatchesTarget reports whether s matches the configured target regex. It
// is false whenever no target regex was configured.
func (c *Crib) MatchesTarget(s string) bool {
	if c == nil || c.Target == nil {
		return false
	}
	return c.Target.MatchString(s)
}

// IsCommonWord reports whether word (case-insensitive) is in the common
// word list.
func (c *Crib) IsCommonWord(word string) bool {
	if c == nil {
		return false
	}
	_, ok := c.CommonWords[strings.ToUpper(word)]
	return ok
}

// englishLetterFreq are standard approximate English letter frequencies
// (A..Z), renormalized to sum to 1.
var englishLetterFreq = [26]float64{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015,
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749,
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758,
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074,
}

// englishBigrams holds 39 of the most frequent English bigrams with a rough
// log-likelihood score (natural log of observed frequency per mille,
// offset so common bigrams score positive).
var englishBigrams = map[string]float64{
	"TH": 3.5, "HE": 3.4, "IN": 3.1, "ER": 3.0, "AN": 2.9, "RE": 2.8,
	"ND": 2.7, "AT": 2.6, "ON": 2.6, "NT": 2.5, "HA": 2.5, "ES": 2.4,
	"ST": 2.4, "EN": 2.4, "ED": 2.3, "TO": 2.3, "IT": 2.3, "OU": 2.2,
	"EA": 2.2, "HI": 2.1, "IS": 2.1, "OR": 2.1, "TI": 2.0, "AS": 2.0,
	"TE": 2.0, "ET": 1.9, "NG": 1.9, "OF": 1.9, "AL": 1.8, "DE": 1.8,
	"SE": 1.8, "LE": 1.7, "SA": 1.7, "SI": 1.6, "AR": 1.6, "VE": 1.6,
	"RA": 1.5, "LD": 1.5, "UR": 1.5,
}

// englishTrigrams holds ~20 common English trigrams, same scoring scheme.
var englishTrigrams = map[string]float64{
	"THE": 5.0, "AND": 4.2, "ING": 3.9, "HER": 3.2, "HAT": 3.1,
	"HIS": 3.0, "THA": 2.9, "ERE": 2.8, "FOR": 2.8, "ENT": 2.7,
	"ION": 2.7, "TER": 2.6, "WAS": 2.5, "YOU": 2.5, "ITH": 2.4,
	"VER": 2.4, "ALL": 2.3, "WIT": 2.2, "THI": 2.2, "TIO": 2.1,
}

var commonWords = func() map[string]struct{} {
	words := []string{
		"THE", "BE", "TO", "OF", "AND", "A", "IN", "THAT", "HAVE", "I",
		"IT", "FOR", "NOT", "ON", "WITH", "HE", "AS", "YOU", "DO", "AT",
		"THIS", "BUT", "HIS", "BY", "FROM", "THEY", "WE", "SAY", "HER", "SHE",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

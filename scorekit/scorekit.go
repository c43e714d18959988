// Package scorekit implements the pure statistical functions the Magic
// Analyzer uses to judge how "interesting" (plausibly decoded) a byte
// buffer is: Shannon entropy, chi-squared against English letter
// frequencies, printable fraction, UTF-8 validity, and an English n-gram
// score. All functions run in O(n) over the buffer length and never mutate
// their input.
package scorekit

import (
	"math"
	"strings"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/crib"
)

// LanguageConfidence records a single detected-language guess.
type LanguageConfidence struct {
	Language   string
	Confidence float64
}

// Score is the statistical fingerprint of a buffer: the individual
// component metrics only. The aggregate scalar used to order candidates is
// returned by Rank and is not stored in Score.
type Score struct {
	Entropy           float64
	ChiSquaredEnglish float64
	PrintableFraction float64
	ValidUTF8         bool
	NgramScore        float64
	MatchesTarget     bool
	LanguagesDetected []LanguageConfidence
}

// Entropy computes the Shannon entropy (bits/byte, in [0, 8]) of b's byte
// histogram. The empty buffer has entropy 0.
func Entropy(b *buffer.ByteBuffer) float64 {
	data := b.Bytes()
	if len(data) == 0 {
		return 0
	}
	var hist [256]int
	for _, c := range data {
		hist[c]++
	}
	n := float64(len(data))
	var h float64
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / n
		h -= p * math.Log2(p)
	}
	return h
}

// ChiSquaredEnglish folds b's bytes to case-insensitive A-Z letters and
// compares the resulting histogram to cr's fixed English letter-frequency
// table. Non-letter bytes are ignored entirely. A buffer with no letters
// scores +Inf.
func ChiSquaredEnglish(b *buffer.ByteBuffer, cr *crib.Crib) float64 {
	var hist [26]int
	total := 0
	for _, c := range b.Bytes() {
		idx := letterIndex(c)
		if idx < 0 {
			continue
		}
		hist[idx]++
		total++
	}
	if total == 0 {
		return math.Inf(1)
	}
	n := float64(total)
	var chi float64
	for i, count := range hist {
		expected := cr.LetterFreq[i] * n
		if expected == 0 {
			continue
		}
		diff := float64(count) - expected
		chi += (diff * diff) / expected
	}
	return chi
}

func letterIndex(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	default:
		return -1
	}
}

// PrintableFraction returns the fraction of bytes in b within the printable
// ASCII ranges 0x09-0x0D and 0x20-0x7E.
func PrintableFraction(b *buffer.ByteBuffer) float64 {
	data := b.Bytes()
	if len(data) == 0 {
		return 0
	}
	printable := 0
	for _, c := range data {
		if (c >= 0x09 && c <= 0x0D) || (c >= 0x20 && c <= 0x7E) {
			printable++
		}
	}
	return float64(printable) / float64(len(data))
}

// ValidUTF8 reports whether b decodes as valid UTF-8.
func ValidUTF8(b *buffer.ByteBuffer) bool {
	_, ok := b.TryUTF8()
	return ok
}

// NgramScore sums the log-likelihood of every English bigram and trigram
// from cr present in b's UTF-8 interpretation. Returns 0 when b is not
// valid UTF-8.
func NgramScore(b *buffer.ByteBuffer, cr *crib.Crib) float64 {
	s, ok := b.TryUTF8()
	if !ok {
		return 0
	}
	upper := strings.ToUpper(s)
	var score float64
	for i := 0; i+1 < len(upper); i++ {
		if v, ok := cr.Bigrams[upper[i:i+2]]; ok {
			score += v
		}
	}
	for i := 0; i+2 < len(upper); i++ {
		if v, ok := cr.Trigrams[upper[i:i+3]]; ok {
			score += v
		}
	}
	for _, word := range strings.Fields(upper) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if cr.IsCommonWord(word) {
			score += 1.0
		}
	}
	return score
}

// MatchesTarget reports whether b's UTF-8 interpretation (if any) matches
// cr's configured target regex.
func MatchesTarget(b *buffer.ByteBuffer, cr *crib.Crib) bool {
	s, ok := b.TryUTF8()
	if !ok {
		return false
	}
	return cr.MatchesTarget(s)
}

// Compute runs every ScoreKit metric over b and assembles a Score. Language
// detection (extensive or not) is left to the caller to populate via
// signature detectors; Compute leaves LanguagesDetected nil.
func Compute(b *buffer.ByteBuffer, cr *crib.Crib) Score {
	return Score{
		Entropy:           Entropy(b),
		ChiSquaredEnglish: ChiSquaredEnglish(b, cr),
		PrintableFraction: PrintableFraction(b),
		ValidUTF8:         ValidUTF8(b),
		NgramScore:        NgramScore(b, cr),
		MatchesTarget:     MatchesTarget(b, cr),
	}
}

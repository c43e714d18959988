package signature

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/shirou/magiclens/buffer"
)

// defaultEncodingDetectors returns the built-in encoding-signature table:
// BOM detectors, a plausible-UTF-8 validator, and the mojibake/codepage
// transcode detectors named in spec §4.3.
func defaultEncodingDetectors() []EncodingDetector {
	detectors := []EncodingDetector{
		{Name: "UTF-8 BOM", Detect: bomDetector([]byte{0xEF, 0xBB, 0xBF})},
		{Name: "UTF-16LE BOM", Detect: bomDetector([]byte{0xFF, 0xFE})},
		{Name: "UTF-16BE BOM", Detect: bomDetector([]byte{0xFE, 0xFF})},
		{Name: "plausible UTF-8", Detect: plausibleUTF8Detector},
	}
	for _, cp := range codepages {
		detectors = append(detectors, EncodingDetector{
			Name:      cp.name,
			Extensive: cp.extensive,
			Detect:    codepageDetector(cp.name, cp.enc),
		})
	}
	return detectors
}

type codepage struct {
	name      string
	enc       encoding.Encoding
	extensive bool
}

// codepages are the small fixed set of legacy encodings consulted for
// mojibake re-scoring, as named in spec §4.3.
var codepages = []codepage{
	{name: "Windows-1251", enc: charmap.Windows1251},
	{name: "Windows-1252", enc: charmap.Windows1252},
	{name: "ISO-8859-1", enc: charmap.ISO8859_1},
	{name: "ISO-8859-2", enc: charmap.ISO8859_2, extensive: true},
	{name: "CP437", enc: charmap.CodePage437, extensive: true},
}

func bomDetector(bom []byte) func(*buffer.ByteBuffer) (EncodingHit, bool) {
	return func(b *buffer.ByteBuffer) (EncodingHit, bool) {
		data := b.Bytes()
		if len(data) < len(bom) || !bytes.Equal(data[:len(bom)], bom) {
			return EncodingHit{}, false
		}
		return EncodingHit{Confidence: 1.0}, true
	}
}

func plausibleUTF8Detector(b *buffer.ByteBuffer) (EncodingHit, bool) {
	s, ok := b.TryUTF8()
	if !ok || len(s) == 0 {
		return EncodingHit{}, false
	}
	return EncodingHit{Confidence: printableRuneFraction(s), Decoded: s}, printableRuneFraction(s) >= 0.85
}

// codepageDetector transcodes b through enc and, if the result decodes to a
// plausible run of printable text that the raw bytes did not already form,
// reports a Hit scaled by how printable the transcoded text is. This is the
// mojibake heuristic described in spec §4.3: try a small fixed set of
// codepages and keep whichever re-scores as "better" than the original.
func codepageDetector(name string, enc encoding.Encoding) func(*buffer.ByteBuffer) (EncodingHit, bool) {
	return func(b *buffer.ByteBuffer) (EncodingHit, bool) {
		data := b.Bytes()
		if len(data) == 0 {
			return EncodingHit{}, false
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil || !utf8.Valid(decoded) {
			return EncodingHit{}, false
		}
		decodedStr := string(decoded)
		confidence := printableRuneFraction(decodedStr)
		if confidence < 0.90 {
			return EncodingHit{}, false
		}
		// Only a genuine transcode candidate when the raw bytes were not
		// already plausible UTF-8 text, or the codepage path scores
		// strictly higher (i.e. resolves more non-ASCII bytes cleanly).
		rawStr, rawOK := b.TryUTF8()
		if rawOK && printableRuneFraction(rawStr) >= confidence {
			return EncodingHit{}, false
		}
		return EncodingHit{Confidence: confidence, Decoded: decodedStr}, true
	}
}

func printableRuneFraction(s string) float64 {
	if s == "" {
		return 0
	}
	total := 0
	printable := 0
	for _, r := range s {
		total++
		if r == '\t' || r == '\n' || r == '\r' || unicode.IsPrint(r) {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

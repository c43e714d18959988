// Package signature implements the SignatureCatalogue: a compiled,
// read-only set of file-type magic-byte patterns and character-encoding
// detectors consulted by the Magic Analyzer at every node.
package signature

import (
	"github.com/coregx/coregex"

	"github.com/shirou/magiclens/buffer"
)

// FileSignature is one row of the file-type signature table, evaluated
// against the window [OffsetMin, OffsetMax) of the buffer's leading bytes.
// Most signatures are raw magic bytes and match via a byte-literal
// bytePattern; a few (XML, JSON) are genuinely textual and match via a
// compiled coregex pattern instead. See compileFileSignatures.
type FileSignature struct {
	Extension   string
	MIME        string
	Description string
	OffsetMin   int
	OffsetMax   int
	textual     bool
	bytes       bytePattern
	regex       *coregex.Regex
}

// findIndex returns the [start, end) location of sig's pattern within
// window, or nil on a miss.
func (sig *FileSignature) findIndex(window []byte) []int {
	if sig.textual {
		return sig.regex.FindIndex(window)
	}
	if sig.bytes.match(window) {
		return []int{0, sig.bytes.length()}
	}
	return nil
}

// DetectedType is what Catalogue.Identify returns on a hit.
type DetectedType struct {
	Extension   string
	MIME        string
	Description string
}

// EncodingHit is returned by an EncodingDetector when it recognizes the
// buffer as (or successfully transcodes it to) a particular encoding.
type EncodingHit struct {
	Confidence float64
	Decoded    string
}

// EncodingDetector pairs a name with a detection function. Detect returns
// (hit, true) on a hit, (zero, false) on a miss.
type EncodingDetector struct {
	Name      string
	Extensive bool // only run when extensive_language_support is set
	Detect    func(b *buffer.ByteBuffer) (EncodingHit, bool)
}

// EncodingResult is the public (name, confidence) pair the engine surfaces.
type EncodingResult struct {
	Name       string
	Confidence float64
	Decoded    string
}

// Catalogue is the compiled, immutable set of file-type signatures and
// encoding detectors built at engine construction time.
type Catalogue struct {
	fileSignatures    []FileSignature
	encodingDetectors []EncodingDetector
}

// New builds the default Catalogue: the built-in file-type signature table
// (§6's "stable list ship with the core") and the encoding detector set
// described in spec §4.3.
func New() (*Catalogue, error) {
	fsigs, err := compileFileSignatures(defaultFileSignatureRows)
	if err != nil {
		return nil, err
	}
	return &Catalogue{
		fileSignatures:    fsigs,
		encodingDetectors: defaultEncodingDetectors(),
	}, nil
}

// WithFileSignatures returns a copy of c with extra rows appended after the
// built-in table (used to layer a YAML-supplied overlay; see
// signature.LoadOverlay).
func (c *Catalogue) WithFileSignatures(rows []FileSignatureRow) (*Catalogue, error) {
	extra, err := compileFileSignatures(rows)
	if err != nil {
		return nil, err
	}
	out := &Catalogue{
		fileSignatures:    append(append([]FileSignature{}, c.fileSignatures...), extra...),
		encodingDetectors: c.encodingDetectors,
	}
	return out, nil
}

// Identify returns the first file-type signature whose pattern matches
// within its offset window — lowest offset first, leftmost table entry as
// tiebreak — or (zero, false) if none match.
func (c *Catalogue) Identify(b *buffer.ByteBuffer) (DetectedType, bool) {
	data := b.Bytes()
	bestOffset := -1
	var best *FileSignature
	for i := range c.fileSignatures {
		sig := &c.fileSignatures[i]
		hi := sig.OffsetMax
		if hi > len(data) {
			hi = len(data)
		}
		if sig.OffsetMin > hi {
			continue
		}
		window := data[sig.OffsetMin:hi]
		loc := sig.findIndex(window)
		if loc == nil {
			continue
		}
		offset := sig.OffsetMin + loc[0]
		if best == nil || offset < bestOffset {
			best = sig
			bestOffset = offset
		}
	}
	if best == nil {
		return DetectedType{}, false
	}
	return DetectedType{Extension: best.Extension, MIME: best.MIME, Description: best.Description}, true
}

// DetectEncodings runs every registered encoding detector (skipping
// Extensive-only detectors unless extensive is true) and returns the hits,
// in table order.
func (c *Catalogue) DetectEncodings(b *buffer.ByteBuffer, extensive bool) []EncodingResult {
	var out []EncodingResult
	for _, d := range c.encodingDetectors {
		if d.Extensive && !extensive {
			continue
		}
		hit, ok := d.Detect(b)
		if !ok {
			continue
		}
		out = append(out, EncodingResult{Name: d.Name, Confidence: hit.Confidence, Decoded: hit.Decoded})
	}
	return out
}

// FileSignatureRow is the plain-data form of a FileSignature, used for
// compiling the built-in table and for YAML overlays. Textual selects how
// Pattern is compiled: false (the default, and right choice for nearly
// every magic-byte row) compiles it as a byte-literal bytePattern; true
// compiles it as a coregex pattern, reserved for rows that describe
// genuinely textual content (XML, JSON) rather than raw binary magic. A
// regex-style Pattern (character classes, quantifiers) written without
// Textual: true does not error — it silently compiles as a byte-literal
// pattern instead, where metacharacters other than a `[...]` single-byte
// class are read as literal bytes. Overlay authors porting a libmagic- or
// regex-flavored pattern must set Textual explicitly.
type FileSignatureRow struct {
	Extension   string `yaml:"extension"`
	MIME        string `yaml:"mime"`
	Description string `yaml:"description"`
	OffsetMin   int    `yaml:"offset_min"`
	OffsetMax   int    `yaml:"offset_max"`
	Pattern     string `yaml:"pattern"`
	Textual     bool   `yaml:"textual"`
}

func compileFileSignatures(rows []FileSignatureRow) ([]FileSignature, error) {
	out := make([]FileSignature, 0, len(rows))
	for _, row := range rows {
		sig := FileSignature{
			Extension:   row.Extension,
			MIME:        row.MIME,
			Description: row.Description,
			OffsetMin:   row.OffsetMin,
			OffsetMax:   row.OffsetMax,
			textual:     row.Textual,
		}
		if row.Textual {
			re, err := coregex.Compile(row.Pattern)
			if err != nil {
				return nil, err
			}
			sig.regex = re
		} else {
			bp, err := compileBytePattern(row.Pattern)
			if err != nil {
				return nil, err
			}
			sig.bytes = bp
		}
		out = append(out, sig)
	}
	return out, nil
}

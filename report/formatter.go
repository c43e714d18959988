// Package report implements the ResultFormatter: it renders the Magic
// Engine's ranked result set into the stable, caller-facing AnalysisReport
// described in spec §4.6 and §6.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/engine"
	"github.com/shirou/magiclens/scorekit"
	"github.com/shirou/magiclens/signature"
)

// previewLimit bounds how many bytes/characters of a terminal buffer are
// shown in a Candidate's preview.
const previewLimit = 256

// NoInterestMessage is the canonical text emitted when no candidate in the
// report is interesting, per spec §4.6 and the §8 scenario 1 literal.
const NoInterestMessage = "Nothing of interest could be detected about the input data.\n" +
	"Have you tried modifying the operation arguments?"

// RecipeStepView is the human-readable (op name, args) pair shown in a
// Candidate's recipe.
type RecipeStepView struct {
	Operation string
	Args      []string
}

// DetectedType mirrors signature.DetectedType for the report's public
// surface.
type DetectedType = signature.DetectedType

// EncodingView is the rendered {name, confidence} pair for a Candidate.
type EncodingView struct {
	Name       string
	Confidence float64
}

// Candidate is one rendered result row, per spec §6.
type Candidate struct {
	Recipe       []RecipeStepView
	DetectedType *DetectedType
	Encodings    []EncodingView
	Score        scorekit.Score
	Preview      string
	Interesting  bool
}

// AnalysisReport is the full caller-facing result of one Analyze call.
type AnalysisReport struct {
	RunID      string
	Candidates []Candidate
	Truncated  bool
	Cancelled  bool
}

// Format renders an engine.Report into the caller-facing AnalysisReport.
// root is the original input buffer, used once to detect the overall
// file-type (a property of the input, not of any one recipe's terminal
// buffer); catalogue is consulted again per-candidate for encoding
// detection, since that is a property of each candidate's own terminal
// bytes. extensive mirrors the Config.ExtensiveLanguageSupport the engine
// call used and selects the codepage set for that encoding detection.
func Format(er engine.Report, root *buffer.ByteBuffer, catalogue *signature.Catalogue, extensive bool) AnalysisReport {
	out := AnalysisReport{
		RunID:     uuid.NewString(),
		Truncated: er.Truncated,
		Cancelled: er.Cancelled,
	}

	var rootType *DetectedType
	if dt, ok := catalogue.Identify(root); ok {
		rootType = &dt
	}

	for _, res := range er.Results {
		out.Candidates = append(out.Candidates, renderCandidate(res, rootType, catalogue, extensive))
	}
	return out
}

func renderCandidate(res engine.Result, rootType *DetectedType, catalogue *signature.Catalogue, extensive bool) Candidate {
	var encodings []EncodingView
	for _, e := range catalogue.DetectEncodings(res.Buffer, extensive) {
		encodings = append(encodings, EncodingView{Name: e.Name, Confidence: e.Confidence})
	}
	return Candidate{
		Recipe:       renderRecipe(res.Recipe),
		DetectedType: rootType,
		Encodings:    encodings,
		Score:        res.Score,
		Preview:      preview(res.Buffer),
		Interesting:  res.Interesting,
	}
}

func renderRecipe(r engine.Recipe) []RecipeStepView {
	steps := make([]RecipeStepView, 0, len(r))
	for _, step := range r {
		args := make([]string, 0, len(step.Args))
		for _, a := range step.Args {
			args = append(args, fmt.Sprintf("%v", a))
		}
		steps = append(steps, RecipeStepView{Operation: step.OpName, Args: args})
	}
	return steps
}

// preview renders a terminal buffer as UTF-8 text when valid, otherwise as
// a hex dump, truncated to previewLimit.
func preview(b *buffer.ByteBuffer) string {
	if s, ok := b.TryUTF8(); ok {
		if len(s) > previewLimit {
			return s[:previewLimit] + "…"
		}
		return s
	}
	data := b.Bytes()
	truncated := false
	if len(data) > previewLimit/2 {
		data = data[:previewLimit/2]
		truncated = true
	}
	hexParts := make([]string, 0, len(data))
	for _, c := range data {
		hexParts = append(hexParts, strconv.FormatUint(uint64(c), 16))
	}
	s := strings.Join(hexParts, " ")
	if truncated {
		s += " …"
	}
	return s
}

// Text renders a full AnalysisReport as the stable textual report used by
// callers, per spec §4.6. When no candidate is interesting — whether
// because there are none at all, or because the only candidate is the
// fallback best-ranked-but-uninteresting node from engine §4.5 step 4 — it
// returns the canonical NoInterestMessage instead of rendering that node.
func Text(r AnalysisReport) string {
	if !anyInteresting(r.Candidates) {
		return NoInterestMessage
	}
	var sb strings.Builder
	for i, c := range r.Candidates {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writeCandidate(&sb, c)
	}
	return sb.String()
}

func anyInteresting(candidates []Candidate) bool {
	for _, c := range candidates {
		if c.Interesting {
			return true
		}
	}
	return false
}

func writeCandidate(sb *strings.Builder, c Candidate) {
	fmt.Fprintf(sb, "Recipe: %s\n", formatRecipe(c.Recipe))
	if c.DetectedType != nil {
		fmt.Fprintf(sb, "Detected type: %s (%s)\n", c.DetectedType.Description, c.DetectedType.MIME)
	}
	for _, e := range c.Encodings {
		fmt.Fprintf(sb, "Encoding: %s (confidence %.2f)\n", e.Name, e.Confidence)
	}
	fmt.Fprintf(sb, "Interesting: %v\n", c.Interesting)
	fmt.Fprintf(sb, "Preview: %s", c.Preview)
}

func formatRecipe(steps []RecipeStepView) string {
	if len(steps) == 0 {
		return "(root, no operations applied)"
	}
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		if len(s.Args) == 0 {
			parts = append(parts, s.Operation)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", s.Operation, strings.Join(s.Args, ", ")))
	}
	return strings.Join(parts, " -> ")
}

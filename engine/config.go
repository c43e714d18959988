package engine

// Config holds the per-call tuning knobs for Engine.Analyze, per spec §4.5.
type Config struct {
	// Depth is the maximum recipe length. 0 means only the root is
	// considered.
	Depth int

	// Intensive relaxes pruning: operations whose MagicUseful hint is
	// false are explored even without a firing PatternHint, and encoding
	// brute-force detectors run more eagerly.
	Intensive bool

	// ExtensiveLanguageSupport selects the wider, Extensive-flagged
	// codepage set when report.Format runs
	// signature.Catalogue.DetectEncodings for a candidate's encodings.
	// Analyze itself does not read it, and the Registry interface receives
	// no Config, so a registry's own encoding detection during the search
	// (e.g. internal/demoops) chooses its codepage set independently.
	ExtensiveLanguageSupport bool

	// CribRegex, when non-empty, defines matches_target for this call.
	CribRegex string

	// MaxNodes hard-caps the number of node expansions; the engine returns
	// its best-so-far result when exceeded.
	MaxNodes int

	// KeepTopK bounds how many candidates survive pruning at each depth.
	KeepTopK int
}

// Default tuning constants, named per spec §9's "expose them as named
// constants" instruction.
const (
	DefaultMaxNodes = 10000
	DefaultKeepTopK = 200
	DefaultDepth    = 3

	// ImprovementFloor is the minimum rank improvement (parent.Rank -
	// child.Rank) a non-intensive expansion must show to survive pruning.
	// Not evidenced numerically by the source; chosen small enough that any
	// real decode step (e.g. From Hex turning "41 42" into "AB") clears it
	// easily, per spec §9's "do not guess values not evidenced" caution —
	// this is the one threshold with no scenario to pin it, so it is kept
	// conservative (near zero, not a chunky cutoff).
	ImprovementFloor = 0.01
)

// DefaultConfig returns the engine's default configuration.
func DefaultConfig() Config {
	return Config{
		Depth:    DefaultDepth,
		MaxNodes: DefaultMaxNodes,
		KeepTopK: DefaultKeepTopK,
	}
}

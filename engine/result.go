package engine

import (
	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/scorekit"
)

// Result is a MagicResult per spec §3: an immutable snapshot of one reached
// node, independent of how it will later be rendered.
type Result struct {
	Recipe      Recipe
	Buffer      *buffer.ByteBuffer
	Score       scorekit.Score
	Rank        float64
	Interesting bool
}

// Report is the engine-level AnalysisReport: the ranked result set plus the
// budget/cancellation flags described in spec §6-§7. ResultFormatter (see
// package report) turns this into the full rendered output.
type Report struct {
	Results   []Result
	Truncated bool
	Cancelled bool
}

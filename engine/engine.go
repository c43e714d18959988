// Package engine implements the MagicEngine: the bounded best-first search
// that composes host-supplied operations into candidate decoding recipes
// and ranks the results, per spec §4.5.
package engine

import (
	"context"
	"log/slog"
	"math"
	"os"
	"sort"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/crib"
	"github.com/shirou/magiclens/registry"
	"github.com/shirou/magiclens/scorekit"
)

// Engine owns the operation registry and the rank weights/thresholds
// consulted by every Analyze call; the crib is built per call from
// Config.CribRegex. Engine holds no mutable state of its own; each Analyze
// call owns its node arena and crib exclusively, so Engine is safe
// for concurrent reuse across goroutines (spec §5).
type Engine struct {
	reg        registry.Registry
	weights    scorekit.Weights
	thresholds scorekit.Thresholds
	logger     *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithWeights overrides the default rank weights.
func WithWeights(w scorekit.Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithThresholds overrides the default interesting-ness thresholds.
func WithThresholds(th scorekit.Thresholds) Option {
	return func(e *Engine) { e.thresholds = th }
}

// WithLogger attaches a structured logger, following the teacher's
// Options.Debug-driven slog.Logger convention (shirou/gofile's
// internal/detector.New).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New builds an Engine over reg, the host-supplied operation catalogue.
func New(reg registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:        reg,
		weights:    scorekit.DefaultWeights(),
		thresholds: scorekit.DefaultThresholds(),
		logger:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs one bounded best-first search over input and returns the
// ranked report. It is synchronous, performs no I/O, and never mutates
// Engine state; independent concurrent calls are safe (spec §5). ctx is
// checked between expansions as the cooperative cancellation token spec §5
// describes; when ctx is done, Analyze returns its best-so-far result with
// Cancelled set.
func (e *Engine) Analyze(ctx context.Context, input []byte, cfg Config) (Report, error) {
	if cfg.Depth < 0 {
		return Report{}, newConfigError("depth", "must be >= 0", nil)
	}
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = DefaultMaxNodes
	}
	if cfg.KeepTopK <= 0 {
		cfg.KeepTopK = DefaultKeepTopK
	}

	cr, err := crib.New(cfg.CribRegex)
	if err != nil {
		return Report{}, newConfigError("crib_regex", "failed to compile", err)
	}

	root := buffer.New(input)
	if root.IsEmpty() {
		return Report{}, nil
	}

	rootScore := scorekit.Compute(root, cr)
	rootRank := scorekit.Rank(rootScore, e.weights)
	rootNode := &node{
		idx: 0, parentIdx: -1, buf: root, depth: 0,
		score: rootScore, rank: rootRank,
		fingerprint: rootFingerprint(root),
		state:       stateScored,
	}

	arena := []*node{rootNode}
	seenGlobal := map[uint64]bool{rootNode.fingerprint: true}
	frontier := []*node{rootNode}

	var truncated, cancelled bool
	nodeCount := 1

loop:
	for d := 0; d < cfg.Depth; d++ {
		sortNodes(frontier)
		var next []*node

		for _, n := range frontier {
			select {
			case <-ctx.Done():
				cancelled = true
				break loop
			default:
			}
			if nodeCount >= cfg.MaxNodes {
				truncated = true
				break loop
			}

			n.state = stateExpanding
			children := e.expand(n, arena, seenGlobal, cr, cfg, &nodeCount, cfg.MaxNodes)
			n.state = stateExpanded
			arena = append(arena, children...)
			next = append(next, children...)
		}

		if len(next) == 0 {
			break
		}
		sortNodes(next)
		if len(next) > cfg.KeepTopK {
			next = next[:cfg.KeepTopK]
		}
		frontier = next
	}

	if nodeCount >= cfg.MaxNodes {
		truncated = true
	}

	results := e.collectResults(arena)
	return Report{Results: results, Truncated: truncated, Cancelled: cancelled}, nil
}

// expand enumerates every type-compatible operation for n, invokes each
// with its default and hint-matched argument vectors, and returns the
// surviving children. It mutates seenGlobal and *nodeCount.
func (e *Engine) expand(n *node, arena []*node, seenGlobal map[uint64]bool, cr *crib.Crib, cfg Config, nodeCount *int, maxNodes int) []*node {
	var children []*node
	for _, opType := range candidateInputTypes(n) {
		for _, op := range e.reg.ListByInputType(opType) {
			op := op
			hints := e.reg.MatchingHints(op.Name, n.buf)
			if !cfg.Intensive && !op.MagicUseful && len(hints) == 0 {
				continue
			}

			argVectors := append([]registry.ArgVector{e.reg.DefaultArgs(op.Name)}, hints...)
			for _, args := range argVectors {
				if *nodeCount >= maxNodes {
					return children
				}

				childBuf, err := e.reg.Invoke(op.Name, args, n.buf)
				if err != nil {
					e.logger.Debug("child rejected: op error", "op", op.Name, "err", err)
					continue
				}
				*nodeCount++

				fp := fingerprintOf(n.fingerprint, op.Name, args, childBuf)
				if onAncestryPath(arena, n, fp) {
					e.logger.Debug("child rejected: cycle", "op", op.Name)
					continue
				}
				if seenGlobal[fp] {
					e.logger.Debug("child rejected: duplicate", "op", op.Name)
					continue
				}

				score := scorekit.Compute(childBuf, cr)
				rank := scorekit.Rank(score, e.weights)

				improved := rank < n.rank-ImprovementFloor
				if !improved && !cfg.Intensive {
					e.logger.Debug("child rejected: pruned", "op", op.Name, "rank", rank, "parent_rank", n.rank)
					continue
				}

				seenGlobal[fp] = true
				child := &node{
					idx:         len(arena) + len(children),
					parentIdx:   n.idx,
					buf:         childBuf,
					op:          &op,
					args:        args,
					depth:       n.depth + 1,
					score:       score,
					rank:        rank,
					fingerprint: fp,
					state:       stateScored,
				}
				children = append(children, child)
			}
		}
	}
	return children
}

// candidateInputTypes returns the operation input types compatible with n's
// output. Non-root nodes carry exactly the type declared by the operation
// that produced them; the root has no declared type, so every type whose
// signal is actually present in the buffer is tried (spec §4.5.a).
func candidateInputTypes(n *node) []registry.Type {
	if n.op != nil {
		return []registry.Type{n.op.OutputType}
	}
	types := []registry.Type{registry.RawBytes}
	if s, ok := n.buf.TryUTF8(); ok {
		types = append(types, registry.Utf8String)
		if isNumberish(s) {
			types = append(types, registry.NumberString)
		}
	}
	return types
}

func isNumberish(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != ' ' && c != ',' && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

// collectResults gathers every "interesting" node in the arena; if none
// qualify, it falls back to the single best-ranked node overall, per spec
// §4.5 step 4.
func (e *Engine) collectResults(arena []*node) []Result {
	var interesting []*node
	var best *node
	for _, n := range arena {
		if scorekit.Interesting(n.score, e.thresholds) {
			interesting = append(interesting, n)
		}
		if best == nil || lessRank(n, best) {
			best = n
		}
	}

	chosen := interesting
	if len(chosen) == 0 && best != nil {
		chosen = []*node{best}
	}

	out := make([]Result, 0, len(chosen))
	for _, n := range chosen {
		out = append(out, Result{
			Recipe:      n.recipe(arena),
			Buffer:      n.buf,
			Score:       n.score,
			Rank:        n.rank,
			Interesting: scorekit.Interesting(n.score, e.thresholds),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessRankValue(out[i].Rank, out[j].Rank)
	})
	return out
}

// sortNodes orders nodes ascending by rank with the tie-break rule from
// spec §4.5: shallower recipe first, then earlier-registered operation,
// then lexicographic operation name.
func sortNodes(nodes []*node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return lessRank(nodes[i], nodes[j])
	})
}

func lessRank(a, b *node) bool {
	if a.rank != b.rank {
		if math.IsNaN(a.rank) {
			return false
		}
		if math.IsNaN(b.rank) {
			return true
		}
		return a.rank < b.rank
	}
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	aOrder, aName := opOrderName(a)
	bOrder, bName := opOrderName(b)
	if aOrder != bOrder {
		return aOrder < bOrder
	}
	return aName < bName
}

func lessRankValue(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

func opOrderName(n *node) (int, string) {
	if n.op == nil {
		return -1, ""
	}
	return n.op.Order(), n.op.Name
}

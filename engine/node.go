package engine

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/registry"
	"github.com/shirou/magiclens/scorekit"
)

// state is a MagicNode's position in the per-node state machine described
// in spec §4.5: Scored -> Expanding -> Expanded. Candidates that expand
// rejects (OpError and Cycle before scoring, Pruned after scoring, per
// §4.5) never become nodes at all — see engine.go's expand, which discards them
// immediately rather than materializing and then abandoning a struct for
// each — so only the three states a committed node actually passes through
// are modeled here.
type state int

const (
	stateScored state = iota
	stateExpanding
	stateExpanded
)

// RecipeStep is one (operation, argument-vector) pair in a Recipe.
type RecipeStep struct {
	OpName string
	Args   registry.ArgVector
}

// Recipe is the ordered path from the root to a node. The root's Recipe is
// empty.
type Recipe []RecipeStep

// node is one reached state in the search arena. Nodes are addressed by
// index rather than pointer so the arena can be a plain slice; parentIdx
// is -1 for the root.
type node struct {
	idx       int
	parentIdx int

	buf  *buffer.ByteBuffer
	op   *registry.Descriptor // nil at the root
	args registry.ArgVector

	depth int
	score scorekit.Score
	rank  float64

	fingerprint uint64
	state       state
}

// recipe reconstructs the node's Recipe by walking parent links in arena.
func (n *node) recipe(arena []*node) Recipe {
	if n.parentIdx < 0 {
		return Recipe{}
	}
	var steps []RecipeStep
	cur := n
	for cur.parentIdx >= 0 {
		steps = append([]RecipeStep{{OpName: cur.op.Name, Args: cur.args}}, steps...)
		cur = arena[cur.parentIdx]
	}
	return steps
}

// onAncestryPath reports whether fingerprint fp already appears among n's
// ancestors (including n itself), used for cycle rejection.
func onAncestryPath(arena []*node, n *node, fp uint64) bool {
	for cur := n; cur != nil; {
		if cur.fingerprint == fp {
			return true
		}
		if cur.parentIdx < 0 {
			break
		}
		cur = arena[cur.parentIdx]
	}
	return false
}

// fingerprintOf computes the fingerprint of a candidate child: a stable
// hash of the parent's fingerprint, the generating operation name and
// argument vector, and the child buffer's own content hash. This realizes
// spec §9's "hash of buffer + recipe prefix" using an arena-friendly
// incremental digest instead of relying on object identity.
func fingerprintOf(parentFingerprint uint64, opName string, args registry.ArgVector, buf *buffer.ByteBuffer) uint64 {
	d := xxhash.New()
	var scratch [8]byte
	putUint64(scratch[:], parentFingerprint)
	d.Write(scratch[:])
	d.Write([]byte(opName))
	d.Write([]byte(argKey(args)))
	putUint64(scratch[:], buf.Hash64())
	d.Write(scratch[:])
	return d.Sum64()
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func rootFingerprint(buf *buffer.ByteBuffer) uint64 {
	return buf.Hash64()
}

// argKey renders an ArgVector deterministically for use in dedup keys that
// also need to distinguish identical buffers reached via different
// arguments (e.g. two From Base differently-alphabet decodes).
func argKey(args registry.ArgVector) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ","
		}
		s += strconv.Quote(fmt.Sprintf("%v", a))
	}
	return s
}

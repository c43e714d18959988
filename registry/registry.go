// Package registry defines the OperationRegistry contract: the Magic
// Analyzer's one interface onto the host-supplied catalogue of reversible
// and detective operations. The engine never inspects operation internals;
// it only queries descriptors and calls Invoke.
package registry

import (
	"fmt"

	"github.com/coregx/coregex"

	"github.com/shirou/magiclens/buffer"
)

// Type is one of the four declared input/output types an operation can
// carry, per spec §3.
type Type int

const (
	RawBytes Type = iota
	Utf8String
	NumberString
	ByteList
)

func (t Type) String() string {
	switch t {
	case RawBytes:
		return "RawBytes"
	case Utf8String:
		return "Utf8String"
	case NumberString:
		return "NumberString"
	case ByteList:
		return "ByteList"
	default:
		return "Unknown"
	}
}

// ArgVector is a typed, opaque-to-the-engine argument vector passed to an
// operation invocation.
type ArgVector []any

// PatternHint pairs a regex evaluated against input bytes with the argument
// vector to try when it fires, per spec §3.
type PatternHint struct {
	Pattern *coregex.Regex
	Args    ArgVector
	Useful  bool
}

// Fires reports whether the hint's pattern matches b.
func (h PatternHint) Fires(b *buffer.ByteBuffer) bool {
	return h.Pattern.Match(b.Bytes())
}

// Descriptor is the immutable catalogue entry for one operation: its name,
// declared input/output types, default argument vector, magic-usefulness
// hint, and any pattern hints.
type Descriptor struct {
	Name          string
	InputType     Type
	OutputType    Type
	DefaultArgs   ArgVector
	MagicUseful   bool
	Hints         []PatternHint
	// order is the descriptor's registration position, used only for the
	// engine's tie-break rule ("prefer the operation registered earlier").
	order int
}

// OpError is returned by Invoke when the host operation fails at runtime.
// Per spec §7 this is always non-fatal to the search: the engine discards
// the child and never propagates it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operation %q failed: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Registry is the host-provided contract §4.4 describes. It must be
// deterministic: the same (name, args, input) always yields the same
// output.
type Registry interface {
	// ListByInputType returns every descriptor whose declared input type is t.
	ListByInputType(t Type) []Descriptor
	// DefaultArgs returns name's default argument vector.
	DefaultArgs(name string) ArgVector
	// MatchingHints returns every argument vector implied by a PatternHint
	// that fires against b for the named operation.
	MatchingHints(name string, b *buffer.ByteBuffer) []ArgVector
	// Invoke runs the named operation with args over input, returning the
	// resulting buffer or an *OpError.
	Invoke(name string, args ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error)
}

// Order returns d's registration order, used by the engine's tie-break.
func (d Descriptor) Order() int { return d.order }

// WithOrder returns a copy of d stamped with a registration index. Table
// implementations (see Static) call this when building their descriptor
// list so registration order is stable and visible to the engine.
func (d Descriptor) WithOrder(i int) Descriptor {
	d.order = i
	return d
}

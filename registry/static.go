package registry

import (
	"github.com/shirou/magiclens/buffer"
)

// Invoker is the host-supplied function that actually runs one operation.
type Invoker func(args ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error)

// Static is a straightforward in-memory Registry: an ordered table of
// descriptors plus one Invoker per operation name, mirroring the teacher's
// DatabaseInterface-over-a-slice pattern (shirou/gofile's
// internal/detector.DatabaseInterface) but for operation metadata instead
// of libmagic rows.
type Static struct {
	descriptors []Descriptor
	byName      map[string]*Descriptor
	invokers    map[string]Invoker
}

// NewStatic builds a Static registry from descriptor/invoker pairs, stamping
// each descriptor with its registration order.
func NewStatic(entries ...StaticEntry) *Static {
	s := &Static{
		byName:   make(map[string]*Descriptor, len(entries)),
		invokers: make(map[string]Invoker, len(entries)),
	}
	for i, e := range entries {
		d := e.Descriptor.WithOrder(i)
		s.descriptors = append(s.descriptors, d)
		s.invokers[d.Name] = e.Invoke
	}
	for i := range s.descriptors {
		s.byName[s.descriptors[i].Name] = &s.descriptors[i]
	}
	return s
}

// StaticEntry pairs a descriptor with its host-side invocation function.
type StaticEntry struct {
	Descriptor Descriptor
	Invoke     Invoker
}

func (s *Static) ListByInputType(t Type) []Descriptor {
	var out []Descriptor
	for _, d := range s.descriptors {
		if d.InputType == t {
			out = append(out, d)
		}
	}
	return out
}

func (s *Static) DefaultArgs(name string) ArgVector {
	if d, ok := s.byName[name]; ok {
		return d.DefaultArgs
	}
	return nil
}

func (s *Static) MatchingHints(name string, b *buffer.ByteBuffer) []ArgVector {
	d, ok := s.byName[name]
	if !ok {
		return nil
	}
	var out []ArgVector
	for _, h := range d.Hints {
		if h.Fires(b) {
			out = append(out, h.Args)
		}
	}
	return out
}

func (s *Static) Invoke(name string, args ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	fn, ok := s.invokers[name]
	if !ok {
		return nil, &OpError{Op: name, Err: errUnknownOperation}
	}
	out, err := fn(args, input)
	if err != nil {
		return nil, &OpError{Op: name, Err: err}
	}
	return out, nil
}

var errUnknownOperation = staticError("unknown operation")

type staticError string

func (e staticError) Error() string { return string(e) }

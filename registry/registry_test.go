package registry_test

import (
	"errors"
	"testing"

	"github.com/coregx/coregex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/registry"
)

func upperOp(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	s := string(input.Bytes())
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 32
		}
		out[i] = c
	}
	return buffer.New(out), nil
}

func failingOp(args registry.ArgVector, input *buffer.ByteBuffer) (*buffer.ByteBuffer, error) {
	return nil, errors.New("boom")
}

func TestStaticListByInputType(t *testing.T) {
	reg := registry.NewStatic(
		registry.StaticEntry{
			Descriptor: registry.Descriptor{Name: "Upper", InputType: registry.Utf8String, OutputType: registry.Utf8String, MagicUseful: true},
			Invoke:     upperOp,
		},
		registry.StaticEntry{
			Descriptor: registry.Descriptor{Name: "Other", InputType: registry.RawBytes, OutputType: registry.RawBytes},
			Invoke:     upperOp,
		},
	)
	ops := reg.ListByInputType(registry.Utf8String)
	require.Len(t, ops, 1)
	assert.Equal(t, "Upper", ops[0].Name)
	assert.Equal(t, 0, ops[0].Order())
}

func TestStaticInvokeAndOpError(t *testing.T) {
	reg := registry.NewStatic(
		registry.StaticEntry{
			Descriptor: registry.Descriptor{Name: "Fail", InputType: registry.RawBytes, OutputType: registry.RawBytes},
			Invoke:     failingOp,
		},
	)
	_, err := reg.Invoke("Fail", nil, buffer.New([]byte("x")))
	require.Error(t, err)
	var opErr *registry.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "Fail", opErr.Op)
}

func TestStaticInvokeUnknownOperation(t *testing.T) {
	reg := registry.NewStatic()
	_, err := reg.Invoke("Nope", nil, buffer.New(nil))
	assert.Error(t, err)
}

func TestMatchingHintsFires(t *testing.T) {
	re := coregex.MustCompile(`^41 42`)
	reg := registry.NewStatic(
		registry.StaticEntry{
			Descriptor: registry.Descriptor{
				Name: "FromHex", InputType: registry.Utf8String, OutputType: registry.RawBytes,
				Hints: []registry.PatternHint{{Pattern: re, Args: registry.ArgVector{"Space"}, Useful: true}},
			},
			Invoke: upperOp,
		},
	)
	hints := reg.MatchingHints("FromHex", buffer.New([]byte("41 42 43")))
	require.Len(t, hints, 1)
	assert.Equal(t, registry.ArgVector{"Space"}, hints[0])

	noHints := reg.MatchingHints("FromHex", buffer.New([]byte("zz")))
	assert.Empty(t, noHints)
}

func TestDefaultArgs(t *testing.T) {
	reg := registry.NewStatic(
		registry.StaticEntry{
			Descriptor: registry.Descriptor{Name: "Op", DefaultArgs: registry.ArgVector{1, "two"}},
			Invoke:     upperOp,
		},
	)
	assert.Equal(t, registry.ArgVector{1, "two"}, reg.DefaultArgs("Op"))
	assert.Nil(t, reg.DefaultArgs("Missing"))
}

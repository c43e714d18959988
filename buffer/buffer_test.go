package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirou/magiclens/buffer"
)

func TestNewAndLen(t *testing.T) {
	b := buffer.New([]byte("hello"))
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, []byte("hello"), b.Bytes())
}

func TestNewNilIsEmpty(t *testing.T) {
	b := buffer.New(nil)
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Len())
}

func TestSlice(t *testing.T) {
	b := buffer.New([]byte("ABCDEFG"))
	s := b.Slice(2, 5)
	assert.Equal(t, "CDE", string(s.Bytes()))
}

func TestSliceClampsOutOfRange(t *testing.T) {
	b := buffer.New([]byte("ABC"))
	assert.Equal(t, "ABC", string(b.Slice(-5, 100).Bytes()))
	assert.True(t, b.Slice(5, 2).IsEmpty())
}

func TestTryUTF8Valid(t *testing.T) {
	b := buffer.New([]byte("hello world"))
	s, ok := b.TryUTF8()
	assert.True(t, ok)
	assert.Equal(t, "hello world", s)
}

func TestTryUTF8Invalid(t *testing.T) {
	b := buffer.New([]byte{0xff, 0xfe, 0x00})
	_, ok := b.TryUTF8()
	assert.False(t, ok)
}

func TestHash64StableAndDistinct(t *testing.T) {
	a := buffer.New([]byte("same bytes"))
	b := buffer.New([]byte("same bytes"))
	c := buffer.New([]byte("different"))

	assert.Equal(t, a.Hash64(), b.Hash64())
	assert.NotEqual(t, a.Hash64(), c.Hash64())
	// cached value must not change across repeated calls
	assert.Equal(t, a.Hash64(), a.Hash64())
}

func TestEmptyBufferHash(t *testing.T) {
	a := buffer.New(nil)
	b := buffer.New([]byte{})
	assert.Equal(t, a.Hash64(), b.Hash64())
}
